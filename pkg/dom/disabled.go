package dom

// Disableable reports whether an element is currently disabled.
type Disableable interface {
	IsDisabled() bool
}

// nativeDisable covers form controls that carry a real disabled property;
// they also honor aria-disabled.
type nativeDisable struct{ n *Node }

func (d nativeDisable) IsDisabled() bool {
	return d.n.HasAttr("disabled") || d.n.Attr("aria-disabled") == "true"
}

// ariaDisable covers every other element, which can only be disabled
// through aria-disabled.
type ariaDisable struct{ n *Node }

func (d ariaDisable) IsDisabled() bool {
	return d.n.Attr("aria-disabled") == "true"
}

var nativeDisableTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"option":   true,
	"optgroup": true,
	"fieldset": true,
}

// Disableable returns the disabled capability matching the element kind.
func (n *Node) Disableable() Disableable {
	if nativeDisableTags[n.tag] {
		return nativeDisable{n}
	}
	return ariaDisable{n}
}

// IsDisabled is shorthand for n.Disableable().IsDisabled().
func (n *Node) IsDisabled() bool {
	return n.Disableable().IsDisabled()
}

// SetDisabled toggles the disabled state the way the element kind supports:
// the disabled attribute on form controls, aria-disabled elsewhere.
func (n *Node) SetDisabled(disabled bool) {
	attr := "aria-disabled"
	if nativeDisableTags[n.tag] {
		attr = "disabled"
	}
	if !disabled {
		n.RemoveAttr(attr)
		return
	}
	if attr == "disabled" {
		n.SetAttr(attr, "")
		return
	}
	n.SetAttr(attr, "true")
}
