package keys

// PreventPolicy decides when activation keys call PreventDefault.
type PreventPolicy string

const (
	PreventAlways    PreventPolicy = "always"
	PreventNever     PreventPolicy = "never"
	PreventSpaceOnly PreventPolicy = "space-only"
)

// Activation key names passed to activation callbacks.
const (
	ActivateEnter = "Enter"
	ActivateSpace = "Space"
)

// NormalizeActivationKey returns "Enter" or "Space" for activation keys and
// "" for anything else.
func NormalizeActivationKey(e *Event) string {
	switch {
	case e.Key == Enter:
		return ActivateEnter
	case e.IsSpace():
		return ActivateSpace
	default:
		return ""
	}
}

// HandleActivation calls onActivate with the normalized key when e is Enter
// or Space. The default policy is PreventSpaceOnly, which stops the page from
// scrolling without swallowing form submission on Enter.
func HandleActivation(e *Event, policy PreventPolicy, onActivate func(key string, e *Event)) bool {
	key := NormalizeActivationKey(e)
	if key == "" {
		return false
	}
	switch policy {
	case PreventAlways:
		e.PreventDefault()
	case PreventNever:
	default:
		if key == ActivateSpace {
			e.PreventDefault()
		}
	}
	if onActivate != nil {
		onActivate(key, e)
	}
	return true
}
