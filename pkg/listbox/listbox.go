// Package listbox implements a generic listbox: selection in none, single or
// multiple mode, keyboard navigation with wraparound and type-ahead.
//
// The listbox never owns its items. Callers pass the current item ids (and an
// element lookup for text and focus) on each keyboard call, so item slices may
// be rebuilt on every render.
package listbox

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/dshills/headless/pkg/aria"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/idgen"
	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/selection"
	"github.com/dshills/headless/pkg/timer"
	"github.com/dshills/headless/pkg/typeahead"
)

// Lookup resolves an item id to its element. It may return nil.
type Lookup func(id string) *dom.Node

// Options configures a Listbox.
type Options struct {
	ID              string
	SelectionMode   selection.Mode
	Orientation     keys.Orientation
	RTL             bool
	InitialSelected []string
	// Label is applied as aria-label on the listbox element.
	Label string

	OnSelectionChange func(selected selection.Set)
	OnFocusChange     func(id string)

	TypeaheadTimeout time.Duration
	Scheduler        timer.Scheduler
	Locale           language.Tag
	IDs              idgen.Generator
	Logger           *zap.Logger
}

// State is the listbox snapshot. FocusedID is empty when nothing is focused.
type State struct {
	SelectedIDs     selection.Set `json:"selectedIds" msgpack:"selectedIds"`
	FocusedID       string        `json:"focusedId" msgpack:"focusedId"`
	TypeaheadBuffer string        `json:"typeaheadBuffer" msgpack:"typeaheadBuffer"`
}

// Listbox is the list behavior.
type Listbox struct {
	opts   Options
	id     string
	logger *zap.Logger
	search *typeahead.Matcher[string]

	mu    sync.Mutex
	state State
	items []string
	// lookup is the element accessor from the current keyboard call.
	lookup Lookup
}

// New creates a Listbox. The default mode is single, the default orientation
// vertical.
func New(opts Options) *Listbox {
	opts.SelectionMode = opts.SelectionMode.OrDefault(selection.ModeSingle)
	opts.Orientation = opts.Orientation.OrDefault(keys.Vertical)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := opts.ID
	if id == "" {
		id = idgen.OrSequence(opts.IDs, "listbox").Next()
	}

	l := &Listbox{
		opts:   opts,
		id:     id,
		logger: logger.Named("listbox"),
	}
	if opts.SelectionMode != selection.ModeNone && len(opts.InitialSelected) > 0 {
		initial := opts.InitialSelected
		if opts.SelectionMode == selection.ModeSingle {
			initial = initial[:1]
		}
		l.state.SelectedIDs = selection.NewSet(initial...)
	}

	l.search = typeahead.New(typeahead.Options[string]{
		Items:          l.currentItems,
		Text:           l.text,
		OnMatch:        func(id string, _ int) { l.focus(id) },
		StartIndex:     l.searchStart,
		Skip:           func(id string, _ int) bool { return l.disabled(id) },
		OnBufferChange: l.setBuffer,
		Timeout:        opts.TypeaheadTimeout,
		Scheduler:      opts.Scheduler,
		Locale:         opts.Locale,
		Logger:         l.logger,
	})
	return l
}

// ID returns the listbox element id.
func (l *Listbox) ID() string { return l.id }

// State returns the current snapshot.
func (l *Listbox) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// FocusedID returns the focused item id, or "".
func (l *Listbox) FocusedID() string { return l.State().FocusedID }

// IsSelected reports whether id is selected.
func (l *Listbox) IsSelected(id string) bool { return l.State().SelectedIDs.Has(id) }

// SetItems records the current item ids and drops focus from an id that is
// no longer present.
func (l *Listbox) SetItems(ids []string) {
	l.mu.Lock()
	l.items = slices.Clone(ids)
	dropped := l.state.FocusedID != "" && !slices.Contains(l.items, l.state.FocusedID)
	if dropped {
		l.state.FocusedID = ""
	}
	l.mu.Unlock()

	if dropped {
		l.logger.Debug("focused item removed")
		l.notifyFocus("")
	}
}

// Select adds id to the selection. Single mode replaces the selection.
func (l *Listbox) Select(id string) { l.mutate("select", id, selection.Select) }

// Deselect removes id from the selection.
func (l *Listbox) Deselect(id string) { l.mutate("deselect", id, selection.Deselect) }

// ToggleSelection flips id's membership.
func (l *Listbox) ToggleSelection(id string) { l.mutate("toggle", id, selection.Toggle) }

func (l *Listbox) mutate(op, id string, fn func(selection.Mode, selection.Set, string) (selection.Set, bool)) {
	l.mu.Lock()
	next, ok := fn(l.opts.SelectionMode, l.state.SelectedIDs, id)
	if ok {
		l.state.SelectedIDs = next
	}
	l.mu.Unlock()

	if !ok {
		l.logger.Debug("selection ignored", zap.String("op", op), zap.String("id", id),
			zap.String("reason", "selection mode none"))
		return
	}
	l.logger.Debug(op, zap.String("id", id), zap.Int("selected", next.Len()))
	l.notifySelection(next)
}

// SelectAll selects every id. It only applies in multiple mode.
func (l *Listbox) SelectAll(ids []string) {
	next, ok := selection.SelectAll(l.opts.SelectionMode, ids)
	if !ok {
		l.logger.Debug("select all ignored", zap.String("reason", "not multiple mode"))
		return
	}
	l.mu.Lock()
	l.state.SelectedIDs = next
	l.mu.Unlock()
	l.notifySelection(next)
}

// ClearSelection empties the selection.
func (l *Listbox) ClearSelection() {
	if l.opts.SelectionMode == selection.ModeNone {
		return
	}
	l.mu.Lock()
	l.state.SelectedIDs = selection.Set{}
	l.mu.Unlock()
	l.notifySelection(selection.Set{})
}

// SetFocusedID moves focus to id without touching the DOM.
func (l *Listbox) SetFocusedID(id string) {
	l.mu.Lock()
	changed := l.state.FocusedID != id
	l.state.FocusedID = id
	l.mu.Unlock()
	if changed {
		l.notifyFocus(id)
	}
}

// HandleKeyDown processes a key against the current items. It reports
// whether the key was handled.
func (l *Listbox) HandleKeyDown(e *keys.Event, itemIDs []string, lookup Lookup) bool {
	l.mu.Lock()
	l.items = slices.Clone(itemIDs)
	l.lookup = lookup
	l.mu.Unlock()

	if e.IsCommand() && !e.Alt && (e.Key == "a" || e.Key == "A") {
		if l.opts.SelectionMode != selection.ModeMultiple {
			return false
		}
		e.PreventDefault()
		l.SelectAll(itemIDs)
		return true
	}
	if e.HasModifier() {
		return false
	}

	if m := keys.MapArrow(e.Key, l.opts.Orientation, l.opts.RTL); m != keys.MoveNone {
		e.PreventDefault()
		l.move(m)
		return true
	}

	if keys.HandleActivation(e, keys.PreventAlways, func(string, *keys.Event) {
		if id := l.FocusedID(); id != "" {
			l.ToggleSelection(id)
		}
	}) {
		return true
	}

	return l.search.HandleKeyDown(e)
}

func (l *Listbox) move(m keys.Move) {
	l.mu.Lock()
	items := l.items
	current := slices.Index(items, l.state.FocusedID)
	l.mu.Unlock()

	n := len(items)
	if n == 0 {
		return
	}
	var idx, step int
	switch m {
	case keys.MoveFirst:
		idx, step = 0, 1
	case keys.MoveLast:
		idx, step = n-1, -1
	case keys.MoveNext:
		idx, step = current+1, 1
	case keys.MovePrevious:
		if current < 0 {
			current = n
		}
		idx, step = current-1, -1
	}
	for i := 0; i < n; i++ {
		cand := ((idx+i*step)%n + n) % n
		if !l.disabled(items[cand]) {
			l.focus(items[cand])
			return
		}
	}
	l.logger.Debug("move ignored", zap.String("move", m.String()), zap.String("reason", "all items disabled"))
}

func (l *Listbox) focus(id string) {
	l.SetFocusedID(id)
	if el := l.element(id); el != nil {
		el.Focus()
	}
}

func (l *Listbox) element(id string) *dom.Node {
	l.mu.Lock()
	lookup := l.lookup
	l.mu.Unlock()
	if lookup == nil {
		return nil
	}
	return lookup(id)
}

func (l *Listbox) disabled(id string) bool {
	el := l.element(id)
	return el != nil && el.IsDisabled()
}

func (l *Listbox) text(id string) string {
	if el := l.element(id); el != nil {
		if t := el.Text(); t != "" {
			return t
		}
	}
	return id
}

func (l *Listbox) currentItems() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.items
}

// searchStart begins after the focused item; with nothing focused it begins
// at the first item.
func (l *Listbox) searchStart() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Index(l.items, l.state.FocusedID) + 1
}

func (l *Listbox) setBuffer(buffer string) {
	l.mu.Lock()
	l.state.TypeaheadBuffer = buffer
	l.mu.Unlock()
}

func (l *Listbox) notifySelection(s selection.Set) {
	if l.opts.OnSelectionChange != nil {
		l.opts.OnSelectionChange(s)
	}
}

func (l *Listbox) notifyFocus(id string) {
	if l.opts.OnFocusChange != nil {
		l.opts.OnFocusChange(id)
	}
}

// ListboxProps returns the attributes for the listbox element.
func (l *Listbox) ListboxProps() aria.Props {
	s := l.State()
	p := aria.Props{
		"id":               l.id,
		"role":             "listbox",
		"tabIndex":         0,
		"aria-orientation": string(l.opts.Orientation),
	}
	if l.opts.Orientation == keys.Both {
		delete(p, "aria-orientation")
	}
	if l.opts.SelectionMode == selection.ModeMultiple {
		p["aria-multiselectable"] = "true"
	}
	if l.opts.Label != "" {
		p["aria-label"] = l.opts.Label
	}
	if s.FocusedID != "" {
		p["aria-activedescendant"] = s.FocusedID
	}
	return p
}

// OptionProps returns the attributes for the option with id.
func (l *Listbox) OptionProps(id string) aria.Props {
	s := l.State()
	p := aria.Props{
		"id":       id,
		"role":     "option",
		"tabIndex": -1,
	}
	if l.opts.SelectionMode != selection.ModeNone {
		p["aria-selected"] = aria.Bool(s.SelectedIDs.Has(id))
	}
	if s.FocusedID == id {
		p["data-focused"] = "true"
	}
	return p
}

// Destroy clears selection, focus and the type-ahead timer.
func (l *Listbox) Destroy() {
	l.search.Destroy()
	l.mu.Lock()
	l.state = State{}
	l.items = nil
	l.lookup = nil
	l.mu.Unlock()
}
