// Package menu implements the menu button and select composite: open/close
// state, a highlighted item and value selection.
//
// The menu drives an overlay.Disclosure for open/close and dismissal. When
// content is attached while open it builds a roving-focus controller and a
// type-ahead matcher over the registered items, positions the content
// against the trigger and focuses the first enabled item (or the last one
// when opened from the bottom). Closing tears those down and returns focus to
// the trigger.
package menu

import (
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/idgen"
	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/overlay"
	"github.com/dshills/headless/pkg/roving"
	"github.com/dshills/headless/pkg/timer"
	"github.com/dshills/headless/pkg/typeahead"
)

// Kind picks menu or select semantics.
type Kind string

const (
	KindMenu   Kind = "menu"
	KindSelect Kind = "select"
)

// Status is the open/close lifecycle.
type Status string

const (
	StatusClosed  Status = "closed"
	StatusOpening Status = "opening"
	StatusOpen    Status = "open"
)

// FocusHint says which item receives focus on open.
type FocusHint string

const (
	FocusFirst FocusHint = "first"
	FocusLast  FocusHint = "last"
)

// EventType names an input to the menu state machine.
type EventType string

const (
	EventOpen      EventType = "OPEN"
	EventClose     EventType = "CLOSE"
	EventSelect    EventType = "SELECT"
	EventDismiss   EventType = "DISMISS"
	EventFocusItem EventType = "FOCUS_ITEM"
)

// Event is a state machine input. Focus applies to OPEN, Value to SELECT,
// Reason to DISMISS and Index to FOCUS_ITEM.
type Event struct {
	Type   EventType
	Focus  FocusHint
	Value  string
	Reason overlay.DismissReason
	Index  int
}

// Open builds an OPEN event.
func Open(hint FocusHint) Event { return Event{Type: EventOpen, Focus: hint} }

// Close builds a CLOSE event.
func Close() Event { return Event{Type: EventClose} }

// Select builds a SELECT event.
func Select(value string) Event { return Event{Type: EventSelect, Value: value} }

// Dismiss builds a DISMISS event.
func Dismiss(reason overlay.DismissReason) Event {
	return Event{Type: EventDismiss, Reason: reason}
}

// FocusItem builds a FOCUS_ITEM event.
func FocusItem(index int) Event { return Event{Type: EventFocusItem, Index: index} }

// Item is a registered menu item.
type Item struct {
	Value    string
	Label    string
	Disabled bool
}

// Options configures a Menu.
type Options struct {
	ID   string
	Kind Kind
	// Value is the initial select value.
	Value string
	Loop  bool

	Placement overlay.Placement
	Offset    float64
	Flip      bool
	Boundary  dom.Rect

	OnSelect      func(value string)
	OnValueChange func(value string)
	OnOpenChange  func(open bool)

	// Disclosure replaces the default open/close sub-behavior.
	Disclosure overlay.Disclosure
	Anchors    overlay.AnchorFactory
	Stack      *overlay.Stack

	TypeaheadTimeout time.Duration
	Scheduler        timer.Scheduler
	Locale           language.Tag
	IDs              idgen.Generator
	Logger           *zap.Logger
}

// State is the menu snapshot. ActiveIndex is -1 when nothing is highlighted.
type State struct {
	Status      Status `json:"status" msgpack:"status"`
	ActiveIndex int    `json:"activeIndex" msgpack:"activeIndex"`
	Value       string `json:"value,omitempty" msgpack:"value,omitempty"`
}

// Open reports whether the menu is open or opening.
func (s State) Open() bool { return s.Status != StatusClosed }

// Menu is the menu/select composite.
type Menu struct {
	opts       Options
	id         string
	logger     *zap.Logger
	disclosure overlay.Disclosure

	state   State
	items   []Item
	hint    FocusHint
	trigger *dom.Node
	content *dom.Node

	// live while open with content attached
	roving  *roving.Controller
	search  *typeahead.Matcher[Item]
	anchor  overlay.Anchor
	removes []func()
}

// New creates a closed Menu.
func New(opts Options) *Menu {
	if opts.Kind != KindSelect {
		opts.Kind = KindMenu
	}
	if opts.Anchors == nil {
		opts.Anchors = overlay.NewAnchor
	}
	if opts.Placement.Side == "" {
		opts.Placement = overlay.Placement{Side: overlay.SideBottom, Align: overlay.AlignStart}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := opts.ID
	if id == "" {
		id = idgen.OrSequence(opts.IDs, string(opts.Kind)).Next()
	}
	m := &Menu{
		opts:   opts,
		id:     id,
		logger: logger.Named("menu"),
		state:  State{Status: StatusClosed, ActiveIndex: -1, Value: opts.Value},
	}
	m.disclosure = opts.Disclosure
	if m.disclosure == nil {
		m.disclosure = overlay.NewDisclosure(overlay.DisclosureOptions{
			OnDismiss: func(r overlay.DismissReason) { m.Send(Dismiss(r)) },
			Stack:     opts.Stack,
		})
	}
	return m
}

// ID returns the menu id; trigger, content and item ids derive from it.
func (m *Menu) ID() string { return m.id }

// State returns the current snapshot.
func (m *Menu) State() State { return m.state }

// Value returns the selected value of a select.
func (m *Menu) Value() string { return m.state.Value }

// Items returns the registered items.
func (m *Menu) Items() []Item { return append([]Item(nil), m.items...) }

// RegisterItem adds an item and returns its index. Items are expected in
// the same order as their elements inside the content.
func (m *Menu) RegisterItem(item Item) int {
	m.items = append(m.items, item)
	return len(m.items) - 1
}

// SetItems replaces the registered items. A highlight past the end is
// cleared.
func (m *Menu) SetItems(items []Item) {
	m.items = append([]Item(nil), items...)
	if m.state.ActiveIndex >= len(m.items) {
		m.state.ActiveIndex = -1
	}
}

// SetTriggerElement attaches the trigger.
func (m *Menu) SetTriggerElement(el *dom.Node) {
	m.trigger = el
	m.disclosure.SetTriggerElement(el)
}

// SetContentElement attaches the content. Attaching while open finishes
// opening.
func (m *Menu) SetContentElement(el *dom.Node) {
	if m.content != nil && m.content != el {
		m.teardown()
	}
	m.content = el
	m.disclosure.SetContentElement(el)
	if el != nil && m.state.Open() && m.roving == nil {
		m.setup()
	}
}

// Send feeds an event to the state machine.
func (m *Menu) Send(e Event) {
	switch e.Type {
	case EventOpen:
		m.open(e.Focus)
	case EventClose, EventDismiss:
		if e.Type == EventDismiss {
			m.logger.Debug("dismiss", zap.String("reason", string(e.Reason)))
		}
		m.close()
	case EventSelect:
		m.selectValue(e.Value)
	case EventFocusItem:
		m.focusItem(e.Index)
	default:
		m.logger.Debug("event ignored", zap.String("type", string(e.Type)), zap.String("reason", "unknown event"))
	}
}

// Toggle opens a closed menu on its first item and closes an open one.
func (m *Menu) Toggle() {
	if m.state.Open() {
		m.Send(Close())
		return
	}
	m.Send(Open(FocusFirst))
}

func (m *Menu) open(hint FocusHint) {
	if m.state.Open() {
		m.logger.Debug("open ignored", zap.String("reason", "already open"))
		return
	}
	m.hint = hint
	m.state = State{Status: StatusOpening, ActiveIndex: -1, Value: m.state.Value}
	m.logger.Debug("opening", zap.String("focus", string(hint)))
	m.disclosure.Open()
	if m.opts.OnOpenChange != nil {
		m.opts.OnOpenChange(true)
	}
	if m.content != nil && m.roving == nil && m.state.Status == StatusOpening {
		m.setup()
	}
}

func (m *Menu) close() {
	if !m.state.Open() {
		return
	}
	m.teardown()
	m.state = State{Status: StatusClosed, ActiveIndex: -1, Value: m.state.Value}
	m.disclosure.Close()
	m.logger.Debug("closed")
	if m.trigger != nil {
		m.trigger.Focus()
	}
	if m.opts.OnOpenChange != nil {
		m.opts.OnOpenChange(false)
	}
}

func (m *Menu) selectValue(value string) {
	if i := m.indexOf(value); i >= 0 && m.items[i].Disabled {
		m.logger.Debug("select ignored", zap.String("value", value), zap.String("reason", "disabled item"))
		return
	}
	m.logger.Debug("select", zap.String("value", value))
	if m.opts.OnSelect != nil {
		m.opts.OnSelect(value)
	}
	if m.opts.Kind == KindSelect && value != m.state.Value {
		m.state.Value = value
		if m.opts.OnValueChange != nil {
			m.opts.OnValueChange(value)
		}
	}
	m.close()
}

func (m *Menu) focusItem(index int) {
	if index < 0 || index >= len(m.items) {
		m.logger.Debug("focus ignored", zap.Int("index", index), zap.String("reason", "index out of range"))
		return
	}
	if m.roving != nil {
		m.roving.SetFocusedIndex(index)
		return
	}
	m.state.ActiveIndex = index
}

func (m *Menu) indexOf(value string) int {
	for i, it := range m.items {
		if it.Value == value {
			return i
		}
	}
	return -1
}

func itemText(it Item) string {
	if it.Label == "" {
		return it.Value
	}
	return it.Label
}

func (m *Menu) itemSelector() string {
	return "[data-menu-item]"
}

// setup runs once content is attached while open.
func (m *Menu) setup() {
	m.roving = roving.New(roving.Options{
		Container:    m.content,
		Selector:     m.itemSelector(),
		Orientation:  keys.Vertical,
		Loop:         m.opts.Loop,
		SkipDisabled: true,
		OnFocus:      func(i int, _ *dom.Node) { m.state.ActiveIndex = i },
		Logger:       m.logger,
	})
	m.search = typeahead.New(typeahead.Options[Item]{
		Items:      func() []Item { return m.items },
		Text:       itemText,
		Skip:       func(it Item, _ int) bool { return it.Disabled },
		StartIndex: func() int { return m.state.ActiveIndex + 1 },
		OnMatch:    func(_ Item, i int) { m.focusItem(i) },
		Timeout:    m.opts.TypeaheadTimeout,
		Scheduler:  m.opts.Scheduler,
		Locale:     m.opts.Locale,
		Logger:     m.logger,
	})
	m.removes = append(m.removes,
		m.content.AddEventListener(dom.EventKeyDown, m.handleContentKeyDown),
		m.content.AddEventListener(dom.EventClick, m.handleContentClick),
		m.content.AddEventListener(dom.EventFocusIn, m.handleContentFocusIn),
	)
	if m.trigger != nil {
		m.anchor = m.opts.Anchors(overlay.AnchorOptions{
			Anchor:    m.trigger,
			Floating:  m.content,
			Placement: m.opts.Placement,
			Offset:    m.opts.Offset,
			Flip:      m.opts.Flip,
			Boundary:  m.opts.Boundary,
		})
	}

	m.state.Status = StatusOpen
	m.focusInitial()
}

// focusInitial highlights the selected option of a select, else the first
// enabled item, or the last enabled one for FocusLast.
func (m *Menu) focusInitial() {
	if m.opts.Kind == KindSelect && m.hint != FocusLast {
		if i := m.indexOf(m.state.Value); i >= 0 && !m.items[i].Disabled {
			m.roving.SetFocusedIndex(i)
			return
		}
	}
	els := m.content.QueryAll(m.itemSelector())
	order := make([]int, len(els))
	for i := range els {
		order[i] = i
		if m.hint == FocusLast {
			order[i] = len(els) - 1 - i
		}
	}
	for _, i := range order {
		if !els[i].IsDisabled() {
			m.roving.SetFocusedIndex(i)
			return
		}
	}
	m.logger.Debug("focus ignored", zap.String("reason", "no enabled item"))
}

func (m *Menu) teardown() {
	for _, remove := range m.removes {
		remove()
	}
	m.removes = nil
	if m.roving != nil {
		m.roving.Destroy()
		m.roving = nil
	}
	if m.search != nil {
		m.search.Destroy()
		m.search = nil
	}
	if m.anchor != nil {
		m.anchor.Destroy()
		m.anchor = nil
	}
}

func (m *Menu) handleContentKeyDown(e *dom.Event) {
	if e.Key == nil || e.DefaultPrevented() {
		return
	}
	switch {
	case e.Key.Key == keys.Tab:
		m.Send(Close())
	case keys.HandleActivation(e.Key, keys.PreventAlways, func(string, *keys.Event) {
		if i := m.state.ActiveIndex; i >= 0 && i < len(m.items) {
			m.Send(Select(m.items[i].Value))
		}
	}):
	default:
		if m.search != nil && m.search.HandleKeyDown(e.Key) {
			e.PreventDefault()
		}
	}
}

func (m *Menu) handleContentClick(e *dom.Event) {
	for n := e.Target; n != nil && n != m.content; n = n.Parent() {
		if !n.HasAttr("data-menu-item") {
			continue
		}
		i, err := strconv.Atoi(n.Attr("data-index"))
		if err != nil || i < 0 || i >= len(m.items) {
			return
		}
		m.Send(Select(m.items[i].Value))
		return
	}
}

func (m *Menu) handleContentFocusIn(*dom.Event) {
	if m.roving != nil {
		m.state.ActiveIndex = m.roving.FocusedIndex()
	}
}

// HandleTriggerKeyDown opens from the trigger: ArrowDown, Enter and Space
// open on the first item, ArrowUp on the last. It reports whether the key
// was handled.
func (m *Menu) HandleTriggerKeyDown(e *keys.Event) bool {
	if e.HasModifier() {
		return false
	}
	var hint FocusHint
	switch {
	case e.Key == keys.ArrowDown:
		hint = FocusFirst
	case e.Key == keys.ArrowUp:
		hint = FocusLast
	case keys.NormalizeActivationKey(e) != "":
		hint = FocusFirst
	default:
		return false
	}
	e.PreventDefault()
	if m.state.Open() {
		return true
	}
	m.Send(Open(hint))
	return true
}

// Destroy closes without refocusing and releases the disclosure.
func (m *Menu) Destroy() {
	m.teardown()
	m.state = State{Status: StatusClosed, ActiveIndex: -1, Value: m.state.Value}
	m.disclosure.Destroy()
}
