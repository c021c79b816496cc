package overlay

import (
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
)

// FocusScope keeps focus inside a container while active and can restore it
// afterwards.
type FocusScope interface {
	Activate()
	Deactivate()
}

// FocusScopeOptions configures a focus scope.
type FocusScopeOptions struct {
	Container *dom.Node
	// Trap pulls focus back inside and wraps Tab at the edges.
	Trap bool
	// AutoFocus focuses the first focusable descendant on activation.
	AutoFocus bool
	// RestoreFocus refocuses the previously active element on deactivation.
	RestoreFocus bool
}

// NewFocusScope creates the default FocusScope.
func NewFocusScope(opts FocusScopeOptions) FocusScope {
	return &scope{opts: opts}
}

type scope struct {
	opts     FocusScopeOptions
	previous *dom.Node
	removes  []func()
	active   bool
}

func (s *scope) doc() *dom.Document {
	if s.opts.Container == nil {
		return nil
	}
	return s.opts.Container.Document()
}

func (s *scope) Activate() {
	doc := s.doc()
	if s.active || doc == nil {
		return
	}
	s.active = true
	s.previous = doc.ActiveElement()
	if s.opts.Trap {
		root := doc.Root()
		s.removes = append(s.removes,
			root.AddEventListener(dom.EventFocusIn, s.onFocusIn),
			s.opts.Container.AddEventListener(dom.EventKeyDown, s.onKeyDown),
		)
	}
	if s.opts.AutoFocus && !s.opts.Container.Contains(doc.ActiveElement()) {
		if first := s.focusable(); len(first) > 0 {
			first[0].Focus()
		}
	}
}

func (s *scope) Deactivate() {
	if !s.active {
		return
	}
	s.active = false
	for _, remove := range s.removes {
		remove()
	}
	s.removes = nil
	prev := s.previous
	s.previous = nil
	if s.opts.RestoreFocus && prev != nil && prev.IsConnected() {
		prev.Focus()
	}
}

// focusable lists tabbable descendants in document order.
func (s *scope) focusable() []*dom.Node {
	var out []*dom.Node
	for _, n := range s.opts.Container.QueryAll("*") {
		if !n.IsFocusable() {
			continue
		}
		if ti, ok := n.TabIndex(); ok && ti < 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}

func (s *scope) onFocusIn(e *dom.Event) {
	if e.Target == nil || s.opts.Container.Contains(e.Target) {
		return
	}
	if items := s.focusable(); len(items) > 0 {
		items[0].Focus()
	}
}

func (s *scope) onKeyDown(e *dom.Event) {
	if e.Key == nil || e.Key.Key != keys.Tab {
		return
	}
	items := s.focusable()
	if len(items) == 0 {
		e.PreventDefault()
		return
	}
	active := s.doc().ActiveElement()
	first, last := items[0], items[len(items)-1]
	switch {
	case e.Key.Shift && active == first:
		e.PreventDefault()
		last.Focus()
	case !e.Key.Shift && active == last:
		e.PreventDefault()
		first.Focus()
	}
}
