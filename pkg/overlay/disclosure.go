package overlay

import (
	"github.com/dshills/headless/pkg/aria"
	"github.com/dshills/headless/pkg/dom"
)

// Disclosure is the open/close sub-behavior of an overlay. It owns the
// overlay's dismissable layer and exit presence.
type Disclosure interface {
	Open()
	Close()
	Toggle()
	IsOpen() bool
	SetTriggerElement(el *dom.Node)
	SetContentElement(el *dom.Node)
	Destroy()
}

// DisclosureOptions configures a Disclosure.
type DisclosureOptions struct {
	DefaultOpen  bool
	OnOpenChange func(open bool)
	// OnDismiss receives Escape and outside presses. Nil closes directly.
	OnDismiss func(reason DismissReason)
	// OnExitComplete fires once the content's exit animation has finished.
	OnExitComplete func()

	DisableEscape       bool
	DisableOutsideClick bool

	Stack    *Stack
	Dismiss  DismissFactory
	Presence PresenceFactory
}

// NewDisclosure creates the default Disclosure.
func NewDisclosure(opts DisclosureOptions) Disclosure {
	if opts.Dismiss == nil {
		opts.Dismiss = NewDismissableLayer
	}
	if opts.Presence == nil {
		opts.Presence = NewPresence
	}
	d := &disclosure{opts: opts, open: opts.DefaultOpen}
	d.presence = opts.Presence(PresenceOptions{OnExitComplete: d.exitComplete})
	return d
}

type disclosure struct {
	opts     DisclosureOptions
	open     bool
	trigger  *dom.Node
	content  *dom.Node
	layer    DismissableLayer
	presence Presence
}

func (d *disclosure) IsOpen() bool { return d.open }

func (d *disclosure) Open() { d.set(true) }

func (d *disclosure) Close() { d.set(false) }

func (d *disclosure) Toggle() { d.set(!d.open) }

func (d *disclosure) set(open bool) {
	if d.open == open {
		return
	}
	d.open = open
	if open {
		d.activate()
	} else {
		d.deactivate()
		d.presence.Hide(d.content)
	}
	if d.trigger != nil {
		d.trigger.SetAttr("aria-expanded", aria.Bool(open))
	}
	if d.opts.OnOpenChange != nil {
		d.opts.OnOpenChange(open)
	}
}

func (d *disclosure) SetTriggerElement(el *dom.Node) {
	d.trigger = el
	if el != nil {
		el.SetAttr("aria-expanded", aria.Bool(d.open))
	}
	if d.layer != nil {
		d.deactivate()
		d.activate()
	}
}

// SetContentElement attaches the overlay content. While open, attaching
// activates dismissal on the new element.
func (d *disclosure) SetContentElement(el *dom.Node) {
	d.deactivate()
	d.content = el
	if el != nil && d.open {
		el.SetAttr("data-state", "open")
		d.activate()
	}
}

func (d *disclosure) activate() {
	if d.content == nil || d.layer != nil {
		return
	}
	d.content.SetAttr("data-state", "open")
	var exclude []*dom.Node
	if d.trigger != nil {
		exclude = append(exclude, d.trigger)
	}
	d.layer = d.opts.Dismiss(DismissOptions{
		Container:           d.content,
		Exclude:             exclude,
		OnDismiss:           d.dismiss,
		CloseOnEscape:       !d.opts.DisableEscape,
		CloseOnOutsideClick: !d.opts.DisableOutsideClick,
		Stack:               d.opts.Stack,
	})
	d.layer.Activate()
}

func (d *disclosure) deactivate() {
	if d.layer == nil {
		return
	}
	d.layer.Deactivate()
	d.layer = nil
}

func (d *disclosure) dismiss(reason DismissReason) {
	if d.opts.OnDismiss != nil {
		d.opts.OnDismiss(reason)
		return
	}
	d.Close()
}

func (d *disclosure) exitComplete() {
	if d.opts.OnExitComplete != nil {
		d.opts.OnExitComplete()
	}
}

func (d *disclosure) Destroy() {
	d.deactivate()
	d.presence.Destroy()
	d.open = false
}
