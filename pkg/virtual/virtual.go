// Package virtual windows a long list of placeholder elements: only the
// placeholders near the viewport are reported as rendered.
//
// The list listens to a viewport-intersection signal (see Observer) whose root
// is grown by Buffer pixels, so items render a little before they scroll in.
package virtual

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/dom"
)

// DefaultBuffer is the default root margin in pixels.
const DefaultBuffer = 200

// Options configures a List.
type Options struct {
	// Observers builds the intersection signal. Required.
	Observers ObserverFactory
	// Buffer grows the viewport by this many pixels above and below.
	Buffer float64
	// ItemHeightHint is applied as min-height to placeholders so the
	// scrollbar is stable before real content renders. Zero skips it.
	ItemHeightHint float64
	// OnRender fires when a placeholder starts intersecting.
	OnRender func(id string, el *dom.Node)
	// OnUnrender fires when a placeholder stops intersecting.
	OnUnrender func(id string, el *dom.Node)

	Logger *zap.Logger
}

// State is a snapshot of the list.
type State struct {
	Registered int      `json:"registered" msgpack:"registered"`
	Visible    []string `json:"visible" msgpack:"visible"`
}

// List tracks which registered placeholders are rendered.
type List struct {
	opts     Options
	logger   *zap.Logger
	observer Observer

	order   []string
	byID    map[string]*dom.Node
	byNode  map[*dom.Node]string
	visible map[string]bool
}

// New creates a List and its observer.
func New(opts Options) *List {
	if opts.Buffer == 0 {
		opts.Buffer = DefaultBuffer
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &List{
		opts:    opts,
		logger:  logger.Named("virtual"),
		byID:    make(map[string]*dom.Node),
		byNode:  make(map[*dom.Node]string),
		visible: make(map[string]bool),
	}
	l.observer = l.newObserver()
	return l
}

func (l *List) newObserver() Observer {
	if l.opts.Observers == nil {
		return nopObserver{}
	}
	return l.opts.Observers(l.handle, max(0, l.opts.Buffer))
}

// Register starts observing el under id. Re-registering an id swaps its
// element.
func (l *List) Register(id string, el *dom.Node) {
	if old, ok := l.byID[id]; ok {
		if old == el {
			return
		}
		l.Unregister(id)
	}
	if l.opts.ItemHeightHint > 0 {
		el.SetStyle("min-height", strconv.FormatFloat(l.opts.ItemHeightHint, 'f', -1, 64)+"px")
	}
	l.order = append(l.order, id)
	l.byID[id] = el
	l.byNode[el] = id
	l.observer.Observe(el)
}

// Unregister stops observing id. It is removed from the visible set without
// an unrender callback since its element is going away.
func (l *List) Unregister(id string) {
	el, ok := l.byID[id]
	if !ok {
		return
	}
	l.observer.Unobserve(el)
	delete(l.byID, id)
	delete(l.byNode, el)
	delete(l.visible, id)
	for i, x := range l.order {
		if x == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *List) handle(entries []Entry) {
	for _, e := range entries {
		id, ok := l.byNode[e.Target]
		if !ok {
			continue
		}
		switch {
		case e.Intersecting && !l.visible[id]:
			l.visible[id] = true
			l.logger.Debug("render", zap.String("id", id))
			if l.opts.OnRender != nil {
				l.opts.OnRender(id, e.Target)
			}
		case !e.Intersecting && l.visible[id]:
			delete(l.visible, id)
			l.logger.Debug("unrender", zap.String("id", id))
			if l.opts.OnUnrender != nil {
				l.opts.OnUnrender(id, e.Target)
			}
		}
	}
}

// Refresh unrenders everything, then rebuilds the observer and re-observes
// every registered element so visibility is computed from scratch.
func (l *List) Refresh() {
	for _, id := range l.VisibleIDs() {
		delete(l.visible, id)
		if l.opts.OnUnrender != nil {
			l.opts.OnUnrender(id, l.byID[id])
		}
	}
	l.observer.Disconnect()
	l.observer = l.newObserver()
	for _, id := range l.order {
		l.observer.Observe(l.byID[id])
	}
	l.logger.Debug("refreshed", zap.Int("registered", len(l.order)))
}

// ScrollToID scrolls a registered element into view with block "nearest".
// It reports whether id is registered.
func (l *List) ScrollToID(id string) bool {
	el, ok := l.byID[id]
	if !ok {
		return false
	}
	el.ScrollIntoView("nearest")
	return true
}

// IsVisible reports whether id is currently rendered.
func (l *List) IsVisible(id string) bool {
	return l.visible[id]
}

// VisibleIDs returns the rendered ids in registration order.
func (l *List) VisibleIDs() []string {
	out := make([]string, 0, len(l.visible))
	for _, id := range l.order {
		if l.visible[id] {
			out = append(out, id)
		}
	}
	return out
}

// State returns a snapshot.
func (l *List) State() State {
	return State{Registered: len(l.order), Visible: l.VisibleIDs()}
}

// Destroy disconnects the observer and forgets every element.
func (l *List) Destroy() {
	l.observer.Disconnect()
	l.order = nil
	l.byID = make(map[string]*dom.Node)
	l.byNode = make(map[*dom.Node]string)
	l.visible = make(map[string]bool)
}

type nopObserver struct{}

func (nopObserver) Observe(*dom.Node)   {}
func (nopObserver) Unobserve(*dom.Node) {}
func (nopObserver) Disconnect()         {}
