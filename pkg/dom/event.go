package dom

import "github.com/dshills/headless/pkg/keys"

// Event types dispatched through the tree.
const (
	EventKeyDown      = "keydown"
	EventFocusIn      = "focusin"
	EventFocusOut     = "focusout"
	EventClick        = "click"
	EventPointerDown  = "pointerdown"
	EventAnimationEnd = "animationend"
)

// Event is a dispatched DOM event. All events bubble.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node
	RelatedTarget *Node
	Key           *keys.Event
	Point         Point

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event (and its key event, if any) as consumed.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
	if e.Key != nil {
		e.Key.PreventDefault()
	}
}

// DefaultPrevented reports whether a listener consumed the event.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented || (e.Key != nil && e.Key.DefaultPrevented())
}

// StopPropagation stops the event from reaching ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

type listener struct {
	fn      func(*Event)
	removed bool
}

// AddEventListener registers fn for events of typ reaching n. The returned
// function removes the registration and is safe to call more than once.
func (n *Node) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	l := &listener{fn: fn}
	n.listeners[typ] = append(n.listeners[typ], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		ls := n.listeners[typ]
		for i, x := range ls {
			if x == l {
				n.listeners[typ] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount returns the number of live listeners for typ on n.
func (n *Node) ListenerCount(typ string) int {
	return len(n.listeners[typ])
}

// Dispatch fires e at n and bubbles it to the root.
func (n *Node) Dispatch(e *Event) *Event {
	if e.Target == nil {
		e.Target = n
	}
	for cur := n; cur != nil && !e.stopped; cur = cur.parent {
		e.CurrentTarget = cur
		ls := make([]*listener, len(cur.listeners[e.Type]))
		copy(ls, cur.listeners[e.Type])
		for _, l := range ls {
			if l.removed {
				continue
			}
			l.fn(e)
		}
	}
	e.CurrentTarget = nil
	return e
}
