package overlay

import "github.com/dshills/headless/pkg/dom"

// Presence defers unmounting until an exit animation finishes.
type Presence interface {
	Hide(el *dom.Node)
	Destroy()
}

// PresenceOptions configures presence.
type PresenceOptions struct {
	OnExitComplete func()
}

// PresenceFactory creates a Presence.
type PresenceFactory func(PresenceOptions) Presence

// NewPresence is the default PresenceFactory. Hide marks the element with
// data-state="closed"; if its animation-name style is set the exit completes
// on animationend, otherwise at once.
func NewPresence(opts PresenceOptions) Presence {
	return &presence{opts: opts}
}

type presence struct {
	opts    PresenceOptions
	pending func()
}

func (p *presence) Hide(el *dom.Node) {
	p.cancel()
	if el == nil {
		p.complete()
		return
	}
	el.SetAttr("data-state", "closed")
	if name := el.Style("animation-name"); name == "" || name == "none" {
		p.complete()
		return
	}
	var remove func()
	remove = el.AddEventListener(dom.EventAnimationEnd, func(e *dom.Event) {
		if e.Target != el {
			return
		}
		remove()
		p.pending = nil
		p.complete()
	})
	p.pending = remove
}

func (p *presence) complete() {
	if p.opts.OnExitComplete != nil {
		p.opts.OnExitComplete()
	}
}

func (p *presence) cancel() {
	if p.pending != nil {
		p.pending()
		p.pending = nil
	}
}

func (p *presence) Destroy() { p.cancel() }
