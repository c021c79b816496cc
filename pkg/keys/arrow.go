package keys

// Orientation restricts which arrow keys a composite widget responds to.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
	Both       Orientation = "both"
)

// IncludesHorizontal reports whether ArrowLeft/ArrowRight apply.
func (o Orientation) IncludesHorizontal() bool {
	return o == Horizontal || o == Both
}

// IncludesVertical reports whether ArrowUp/ArrowDown apply.
func (o Orientation) IncludesVertical() bool {
	return o == Vertical || o == Both
}

// OrDefault returns o, or def when o is empty.
func (o Orientation) OrDefault(def Orientation) Orientation {
	if o == "" {
		return def
	}
	return o
}

// Move is a logical navigation step.
type Move int

const (
	MoveNone Move = iota
	MovePrevious
	MoveNext
	MoveFirst
	MoveLast
)

func (m Move) String() string {
	switch m {
	case MovePrevious:
		return "previous"
	case MoveNext:
		return "next"
	case MoveFirst:
		return "first"
	case MoveLast:
		return "last"
	default:
		return "none"
	}
}

// MapArrow maps a physical key to a logical move. In right-to-left layouts
// the horizontal arrows are mirrored. Keys outside the orientation map to
// MoveNone.
func MapArrow(key string, o Orientation, rtl bool) Move {
	switch key {
	case Home:
		return MoveFirst
	case End:
		return MoveLast
	case ArrowUp:
		if o.IncludesVertical() {
			return MovePrevious
		}
	case ArrowDown:
		if o.IncludesVertical() {
			return MoveNext
		}
	case ArrowLeft:
		if o.IncludesHorizontal() {
			if rtl {
				return MoveNext
			}
			return MovePrevious
		}
	case ArrowRight:
		if o.IncludesHorizontal() {
			if rtl {
				return MovePrevious
			}
			return MoveNext
		}
	}
	return MoveNone
}

// ArrowOptions configures HandleArrow.
type ArrowOptions struct {
	Orientation Orientation
	RTL         bool
	OnMove      func(m Move, e *Event)
}

// HandleArrow maps e and, on a match, prevents the default action and calls
// OnMove. Non-matching keys are left untouched. It reports whether the key
// matched.
func HandleArrow(e *Event, opts ArrowOptions) bool {
	m := MapArrow(e.Key, opts.Orientation.OrDefault(Both), opts.RTL)
	if m == MoveNone {
		return false
	}
	e.PreventDefault()
	if opts.OnMove != nil {
		opts.OnMove(m, e)
	}
	return true
}
