package overlay

import (
	"slices"
	"strconv"

	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
)

// DismissReason says why a layer asked to close.
type DismissReason string

const (
	DismissEscape       DismissReason = "escape"
	DismissOutsideClick DismissReason = "outside-click"
)

// DismissableLayer closes layered UI on Escape or a pointer press outside.
type DismissableLayer interface {
	Activate()
	Deactivate()
}

// DismissOptions configures a dismissable layer.
type DismissOptions struct {
	Container *dom.Node
	// Exclude lists elements (typically the trigger) whose presses do not
	// count as outside.
	Exclude             []*dom.Node
	OnDismiss           func(reason DismissReason)
	CloseOnEscape       bool
	CloseOnOutsideClick bool
	// Stack orders nested layers. Nil gives the layer a private stack.
	Stack *Stack
}

// DismissFactory creates a DismissableLayer.
type DismissFactory func(DismissOptions) DismissableLayer

// Stack tracks active layers so only the topmost handles Escape and presses
// inside a higher layer do not dismiss the ones below.
type Stack struct {
	layers []*layer
}

// NewStack creates an empty layer stack.
func NewStack() *Stack { return &Stack{} }

// Depth returns the number of active layers.
func (s *Stack) Depth() int { return len(s.layers) }

func (s *Stack) push(l *layer) { s.layers = append(s.layers, l) }

func (s *Stack) remove(l *layer) {
	if i := slices.Index(s.layers, l); i >= 0 {
		s.layers = slices.Delete(s.layers, i, i+1)
	}
}

func (s *Stack) top() *layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// above returns the layers stacked over l.
func (s *Stack) above(l *layer) []*layer {
	i := slices.Index(s.layers, l)
	if i < 0 {
		return nil
	}
	return s.layers[i+1:]
}

// NewDismissableLayer is the default DismissFactory. It listens on the
// container's document root while active.
func NewDismissableLayer(opts DismissOptions) DismissableLayer {
	if opts.Stack == nil {
		opts.Stack = NewStack()
	}
	return &layer{opts: opts}
}

type layer struct {
	opts    DismissOptions
	removes []func()
	active  bool
}

func (l *layer) Activate() {
	if l.active || l.opts.Container == nil || l.opts.Container.Document() == nil {
		return
	}
	l.active = true
	l.opts.Stack.push(l)
	root := l.opts.Container.Document().Root()
	l.removes = append(l.removes,
		root.AddEventListener(dom.EventKeyDown, l.onKeyDown),
		root.AddEventListener(dom.EventPointerDown, l.onPointerDown),
	)
	l.opts.Container.SetAttr("data-layer", strconv.Itoa(l.opts.Stack.Depth()))
}

func (l *layer) Deactivate() {
	if !l.active {
		return
	}
	l.active = false
	l.opts.Stack.remove(l)
	for _, remove := range l.removes {
		remove()
	}
	l.removes = nil
	l.opts.Container.RemoveAttr("data-layer")
}

func (l *layer) onKeyDown(e *dom.Event) {
	if !l.opts.CloseOnEscape || e.Key == nil || e.Key.Key != keys.Escape {
		return
	}
	if l.opts.Stack.top() != l || e.DefaultPrevented() {
		return
	}
	e.PreventDefault()
	l.dismiss(DismissEscape)
}

func (l *layer) onPointerDown(e *dom.Event) {
	if !l.opts.CloseOnOutsideClick || e.Target == nil {
		return
	}
	if l.opts.Container.Contains(e.Target) {
		return
	}
	for _, ex := range l.opts.Exclude {
		if ex != nil && ex.Contains(e.Target) {
			return
		}
	}
	for _, higher := range l.opts.Stack.above(l) {
		if higher.opts.Container.Contains(e.Target) {
			return
		}
	}
	l.dismiss(DismissOutsideClick)
}

func (l *layer) dismiss(reason DismissReason) {
	if l.opts.OnDismiss != nil {
		l.opts.OnDismiss(reason)
	}
}
