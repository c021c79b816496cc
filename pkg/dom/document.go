package dom

import "github.com/dshills/headless/pkg/keys"

// Document owns a tree of nodes and tracks focus.
type Document struct {
	root     *Node
	body     *Node
	active   *Node
	scroller func(n *Node, block string)
}

// NewDocument creates an empty document with an html root and a body.
func NewDocument() *Document {
	d := &Document{}
	d.root = newNode(d, "html")
	d.body = d.root.AppendChild(newNode(d, "body"))
	return d
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string) *Node {
	return newNode(d, tag)
}

// Root returns the html element; listeners here see every bubbling event.
func (d *Document) Root() *Node { return d.root }

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// ActiveElement returns the focused element, or the body when nothing is.
func (d *Document) ActiveElement() *Node {
	if d.active == nil {
		return d.body
	}
	return d.active
}

// Focus moves focus to n, dispatching focusout on the previous element and
// focusin on n. Focusing the current element is a no-op.
func (d *Document) Focus(n *Node) {
	if n == nil || n == d.active {
		return
	}
	prev := d.active
	d.active = n
	if prev != nil {
		prev.Dispatch(&Event{Type: EventFocusOut, RelatedTarget: n})
	}
	n.Dispatch(&Event{Type: EventFocusIn, RelatedTarget: prev})
}

// Blur clears focus.
func (d *Document) Blur() {
	if prev := d.active; prev != nil {
		d.active = nil
		prev.Dispatch(&Event{Type: EventFocusOut})
	}
}

// KeyDown dispatches a keydown at the focused element.
func (d *Document) KeyDown(k *keys.Event) *Event {
	return d.ActiveElement().Dispatch(&Event{Type: EventKeyDown, Key: k})
}

// PointerDown dispatches a pointerdown at n.
func (d *Document) PointerDown(n *Node, p Point) *Event {
	return n.Dispatch(&Event{Type: EventPointerDown, Point: p})
}

// Click simulates a primary click on n: pointerdown, focus when n is
// focusable, then click.
func (d *Document) Click(n *Node) *Event {
	r := n.BoundingRect()
	p := Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
	down := d.PointerDown(n, p)
	if !down.DefaultPrevented() && n.IsFocusable() {
		d.Focus(n)
	}
	return n.Dispatch(&Event{Type: EventClick, Point: p})
}

// SetScroller installs the handler ScrollIntoView calls. It returns a
// function restoring the previous handler.
func (d *Document) SetScroller(fn func(n *Node, block string)) (restore func()) {
	prev := d.scroller
	d.scroller = fn
	return func() { d.scroller = prev }
}

// GetElementByID finds a connected element by id.
func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	walk(d.root, func(n *Node) bool {
		if n.ID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

var focusableTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"a":        true,
}

// IsFocusable reports whether n can take focus: it has a tabindex or is a
// native control, and it is not disabled.
func (n *Node) IsFocusable() bool {
	if n.IsDisabled() {
		return false
	}
	if _, ok := n.TabIndex(); ok {
		return true
	}
	return focusableTags[n.tag]
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
