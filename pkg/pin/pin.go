// Package pin implements a fixed-length PIN / one-time-code input made of
// single-character slots.
//
// The value is held padded with spaces for empty slots; every value handed to
// callers has the spaces stripped.
package pin

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/aria"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/idgen"
	"github.com/dshills/headless/pkg/keys"
)

// DefaultLength is the slot count when Options.Length is zero.
const DefaultLength = 4

const empty = ' '

var (
	numeric      = regexp.MustCompile(`^[0-9]$`)
	alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]$`)
)

// Options configures a PIN input.
type Options struct {
	ID           string
	Length       int
	Alphanumeric bool
	// Mask renders slots as password inputs.
	Mask         bool
	Disabled     bool
	InitialValue string
	Label        string

	OnValueChange func(value string)
	OnComplete    func(value string)
	// Element resolves a slot index to its input element for focus moves.
	Element func(index int) *dom.Node

	IDs    idgen.Generator
	Logger *zap.Logger
}

// State is the PIN snapshot. Value always has Length characters, with a
// space for each empty slot.
type State struct {
	Value        string `json:"value" msgpack:"value"`
	FocusedIndex int    `json:"focusedIndex" msgpack:"focusedIndex"`
	Disabled     bool   `json:"disabled" msgpack:"disabled"`
	Complete     bool   `json:"complete" msgpack:"complete"`
}

// Input is the PIN behavior.
type Input struct {
	opts   Options
	id     string
	valid  *regexp.Regexp
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates a PIN input. InitialValue is filtered to valid characters and
// does not fire callbacks.
func New(opts Options) *Input {
	if opts.Length <= 0 {
		opts.Length = DefaultLength
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := opts.ID
	if id == "" {
		id = idgen.OrSequence(opts.IDs, "pin").Next()
	}
	p := &Input{
		opts:   opts,
		id:     id,
		valid:  numeric,
		logger: logger.Named("pin"),
	}
	if opts.Alphanumeric {
		p.valid = alphanumeric
	}

	slots := p.blank()
	for i, ch := range p.filter(opts.InitialValue) {
		if i >= len(slots) {
			break
		}
		slots[i] = ch
	}
	p.state = State{
		Value:    string(slots),
		Disabled: opts.Disabled,
		Complete: isComplete(slots),
	}
	return p
}

func (p *Input) blank() []rune {
	slots := make([]rune, p.opts.Length)
	for i := range slots {
		slots[i] = empty
	}
	return slots
}

func (p *Input) filter(s string) []rune {
	var out []rune
	for _, r := range s {
		if p.valid.MatchString(string(r)) {
			out = append(out, r)
		}
	}
	return out
}

func isComplete(slots []rune) bool {
	for _, r := range slots {
		if r == empty {
			return false
		}
	}
	return true
}

func strip(value string) string {
	return strings.ReplaceAll(value, string(empty), "")
}

// ID returns the container id.
func (p *Input) ID() string { return p.id }

// Length returns the slot count.
func (p *Input) Length() int { return p.opts.Length }

// State returns the current snapshot.
func (p *Input) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Value returns the entered characters with empty slots removed.
func (p *Input) Value() string { return strip(p.State().Value) }

// IsComplete reports whether every slot is filled.
func (p *Input) IsComplete() bool { return p.State().Complete }

// GetValueAt returns the character in slot index, or "" when the slot is
// empty or out of range.
func (p *Input) GetValueAt(index int) string {
	slots := []rune(p.State().Value)
	if index < 0 || index >= len(slots) || slots[index] == empty {
		return ""
	}
	return string(slots[index])
}

// Input writes char into slot index and advances focus to the next slot.
func (p *Input) Input(index int, char string) {
	if reason := p.reject(index); reason != "" {
		p.ignored("input", index, reason)
		return
	}
	if !p.valid.MatchString(char) {
		p.ignored("input", index, "invalid character")
		return
	}
	p.apply(func(slots []rune, _ int) ([]rune, int) {
		slots[index] = []rune(char)[0]
		return slots, min(index+1, len(slots)-1)
	})
}

// Backspace clears slot index and moves focus back one slot. When slot index
// is already empty the previous slot is cleared instead. At index 0 with an
// empty slot nothing changes.
func (p *Input) Backspace(index int) {
	if reason := p.reject(index); reason != "" {
		p.ignored("backspace", index, reason)
		return
	}
	p.apply(func(slots []rune, focus int) ([]rune, int) {
		if slots[index] != empty {
			slots[index] = empty
			return slots, max(index-1, 0)
		}
		if index == 0 {
			return slots, 0
		}
		slots[index-1] = empty
		return slots, index - 1
	})
}

// Delete clears slot index without moving focus.
func (p *Input) Delete(index int) {
	if reason := p.reject(index); reason != "" {
		p.ignored("delete", index, reason)
		return
	}
	p.apply(func(slots []rune, _ int) ([]rune, int) {
		slots[index] = empty
		return slots, index
	})
}

// Paste distributes the valid characters of value across the slots starting
// at the focused slot, then focuses the last slot written.
func (p *Input) Paste(value string) {
	if p.State().Disabled {
		p.ignored("paste", -1, "disabled")
		return
	}
	chars := p.filter(value)
	if len(chars) == 0 {
		p.ignored("paste", -1, "no valid characters")
		return
	}
	p.apply(func(slots []rune, focus int) ([]rune, int) {
		start := max(focus, 0)
		last := start
		for i, ch := range chars {
			at := start + i
			if at >= len(slots) {
				break
			}
			slots[at] = ch
			last = at
		}
		return slots, last
	})
}

// Clear empties every slot and focuses the first.
func (p *Input) Clear() {
	p.apply(func(_ []rune, _ int) ([]rune, int) {
		return p.blank(), 0
	})
}

// Focus moves focus to slot index.
func (p *Input) Focus(index int) {
	if index < 0 || index >= p.opts.Length {
		p.ignored("focus", index, "index out of range")
		return
	}
	p.mu.Lock()
	p.state.FocusedIndex = index
	p.mu.Unlock()
	p.focusElement(index)
}

// SetDisabled enables or disables every slot.
func (p *Input) SetDisabled(disabled bool) {
	p.mu.Lock()
	p.state.Disabled = disabled
	p.mu.Unlock()
}

// HandleKeyDown handles a key on slot index: Backspace and Delete clear,
// ArrowLeft/ArrowRight move between slots, Home/End jump to the ends and a
// printable character is input. It reports whether the key was handled.
func (p *Input) HandleKeyDown(index int, e *keys.Event) bool {
	if e.HasModifier() {
		return false
	}
	switch e.Key {
	case keys.Backspace:
		e.PreventDefault()
		p.Backspace(index)
	case keys.Delete:
		e.PreventDefault()
		p.Delete(index)
	case keys.ArrowLeft:
		e.PreventDefault()
		p.Focus(max(index-1, 0))
	case keys.ArrowRight:
		e.PreventDefault()
		p.Focus(min(index+1, p.opts.Length-1))
	case keys.Home:
		e.PreventDefault()
		p.Focus(0)
	case keys.End:
		e.PreventDefault()
		p.Focus(p.opts.Length - 1)
	default:
		if !e.IsPrintable() {
			return false
		}
		e.PreventDefault()
		p.Input(index, e.Key)
	}
	return true
}

func (p *Input) reject(index int) string {
	switch {
	case p.State().Disabled:
		return "disabled"
	case index < 0 || index >= p.opts.Length:
		return "index out of range"
	}
	return ""
}

func (p *Input) ignored(op string, index int, reason string) {
	p.logger.Debug(op+" ignored", zap.Int("index", index), zap.String("reason", reason))
}

// apply runs fn on a copy of the slots, installs the result and then fires
// callbacks. OnComplete fires only on the incomplete to complete transition.
func (p *Input) apply(fn func(slots []rune, focus int) ([]rune, int)) {
	p.mu.Lock()
	slots, focus := fn([]rune(p.state.Value), p.state.FocusedIndex)
	wasComplete := p.state.Complete
	next := p.state
	next.Value = string(slots)
	next.FocusedIndex = focus
	next.Complete = isComplete(slots)
	p.state = next
	p.mu.Unlock()

	value := strip(next.Value)
	p.logger.Debug("value", zap.Int("filled", len([]rune(value))), zap.Int("focus", focus))
	p.focusElement(focus)
	if p.opts.OnValueChange != nil {
		p.opts.OnValueChange(value)
	}
	if next.Complete && !wasComplete && p.opts.OnComplete != nil {
		p.opts.OnComplete(value)
	}
}

func (p *Input) focusElement(index int) {
	if p.opts.Element == nil {
		return
	}
	if el := p.opts.Element(index); el != nil {
		el.Focus()
	}
}

// ContainerProps returns the attributes for the element wrapping the slots.
func (p *Input) ContainerProps() aria.Props {
	label := p.opts.Label
	if label == "" {
		label = "PIN"
	}
	props := aria.Props{"id": p.id, "role": "group", "aria-label": label}
	if p.State().Disabled {
		props["aria-disabled"] = "true"
	}
	return props
}

// InputProps returns the attributes for slot index.
func (p *Input) InputProps(index int) aria.Props {
	s := p.State()
	unit, mode, pattern := "Digit", "numeric", "[0-9]*"
	if p.opts.Alphanumeric {
		unit, mode, pattern = "Character", "text", "[a-zA-Z0-9]*"
	}
	typ := "text"
	if p.opts.Mask {
		typ = "password"
	}
	autocomplete := "off"
	if index == 0 {
		autocomplete = "one-time-code"
	}
	props := aria.Props{
		"id":           p.id + "-" + strconv.Itoa(index),
		"type":         typ,
		"inputmode":    mode,
		"pattern":      pattern,
		"maxlength":    1,
		"autocomplete": autocomplete,
		"aria-label":   unit + " " + strconv.Itoa(index+1) + " of " + strconv.Itoa(p.opts.Length),
		"value":        p.GetValueAt(index),
		"tabIndex":     -1,
	}
	if index == s.FocusedIndex {
		props["tabIndex"] = 0
	}
	if s.Disabled {
		props["disabled"] = true
	}
	return props
}

// Destroy clears the value.
func (p *Input) Destroy() {
	p.mu.Lock()
	p.state = State{Value: string(p.blank())}
	p.mu.Unlock()
}
