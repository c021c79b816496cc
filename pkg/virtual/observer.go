package virtual

import (
	"github.com/dshills/headless/pkg/dom"
)

// Entry reports one element's intersection state.
type Entry struct {
	Target       *dom.Node
	Intersecting bool
}

// Observer is a viewport-intersection signal over a set of elements.
type Observer interface {
	Observe(el *dom.Node)
	Unobserve(el *dom.Node)
	Disconnect()
}

// ObserverFactory creates an Observer delivering batches to callback, with
// the root rectangle grown by rootMargin pixels on both vertical sides.
type ObserverFactory func(callback func([]Entry), rootMargin float64) Observer

// Viewport is an in-memory scroll container that computes intersections from
// element rectangles. Entries are queued and delivered in batches by Flush,
// which ScrollTo and Resize call for you.
type Viewport struct {
	doc       *dom.Document
	rect      dom.Rect
	scrollTop float64
	observers []*viewportObserver
	restore   func()
}

// NewViewport creates a viewport of the given visible height. When doc is
// non-nil, ScrollIntoView calls on its elements scroll this viewport.
func NewViewport(doc *dom.Document, height float64) *Viewport {
	v := &Viewport{doc: doc, rect: dom.Rect{Height: height}}
	if doc != nil {
		v.restore = doc.SetScroller(v.reveal)
	}
	return v
}

// Factory returns an ObserverFactory bound to this viewport.
func (v *Viewport) Factory() ObserverFactory {
	return func(callback func([]Entry), rootMargin float64) Observer {
		o := &viewportObserver{vp: v, callback: callback, margin: rootMargin, state: make(map[*dom.Node]bool)}
		o.attach()
		return o
	}
}

// ScrollTop returns the current scroll offset.
func (v *Viewport) ScrollTop() float64 { return v.scrollTop }

// ScrollTo moves the viewport and delivers the resulting entries.
func (v *Viewport) ScrollTo(top float64) {
	v.scrollTop = max(0, top)
	v.recompute()
	v.Flush()
}

// Resize changes the visible height and delivers the resulting entries.
func (v *Viewport) Resize(height float64) {
	v.rect.Height = height
	v.recompute()
	v.Flush()
}

// Flush delivers every queued batch.
func (v *Viewport) Flush() {
	observers := make([]*viewportObserver, len(v.observers))
	copy(observers, v.observers)
	for _, o := range observers {
		o.flush()
	}
}

// Close detaches the viewport from its document scroller.
func (v *Viewport) Close() {
	if v.restore != nil {
		v.restore()
		v.restore = nil
	}
}

func (v *Viewport) visible(margin float64) dom.Rect {
	r := v.rect
	r.Y = v.scrollTop
	return r.Expand(margin)
}

func (v *Viewport) recompute() {
	for _, o := range v.observers {
		o.recompute()
	}
}

// reveal implements block "nearest": scroll the minimum distance that brings
// the element fully into view. Other block values align the top edge.
func (v *Viewport) reveal(el *dom.Node, block string) {
	r := el.BoundingRect()
	top := v.scrollTop
	switch block {
	case "nearest":
		if r.Y < top {
			top = r.Y
		} else if r.Bottom() > top+v.rect.Height {
			top = r.Bottom() - v.rect.Height
		}
	case "end":
		top = r.Bottom() - v.rect.Height
	case "center":
		top = r.Y + r.Height/2 - v.rect.Height/2
	default:
		top = r.Y
	}
	if top != v.scrollTop {
		v.ScrollTo(top)
	}
}

type viewportObserver struct {
	vp       *Viewport
	callback func([]Entry)
	margin   float64
	targets  []*dom.Node
	state    map[*dom.Node]bool
	queue    []Entry
	attached bool
}

func (o *viewportObserver) attach() {
	if !o.attached {
		o.vp.observers = append(o.vp.observers, o)
		o.attached = true
	}
}

func (o *viewportObserver) Observe(el *dom.Node) {
	if _, ok := o.state[el]; ok {
		return
	}
	o.attach()
	o.targets = append(o.targets, el)
	in := o.intersects(el)
	o.state[el] = in
	// Like the platform, every newly observed target gets an initial entry.
	o.queue = append(o.queue, Entry{Target: el, Intersecting: in})
}

func (o *viewportObserver) Unobserve(el *dom.Node) {
	if _, ok := o.state[el]; !ok {
		return
	}
	delete(o.state, el)
	for i, t := range o.targets {
		if t == el {
			o.targets = append(o.targets[:i], o.targets[i+1:]...)
			break
		}
	}
	kept := o.queue[:0]
	for _, e := range o.queue {
		if e.Target != el {
			kept = append(kept, e)
		}
	}
	o.queue = kept
}

func (o *viewportObserver) Disconnect() {
	o.targets = nil
	o.state = make(map[*dom.Node]bool)
	o.queue = nil
	if !o.attached {
		return
	}
	o.attached = false
	for i, x := range o.vp.observers {
		if x == o {
			o.vp.observers = append(o.vp.observers[:i], o.vp.observers[i+1:]...)
			break
		}
	}
}

func (o *viewportObserver) intersects(el *dom.Node) bool {
	view := o.vp.visible(o.margin)
	r := el.BoundingRect()
	return r.Y < view.Bottom() && r.Bottom() > view.Y
}

func (o *viewportObserver) recompute() {
	for _, el := range o.targets {
		in := o.intersects(el)
		if in != o.state[el] {
			o.state[el] = in
			o.queue = append(o.queue, Entry{Target: el, Intersecting: in})
		}
	}
}

func (o *viewportObserver) flush() {
	if len(o.queue) == 0 {
		return
	}
	batch := o.queue
	o.queue = nil
	o.callback(batch)
}
