package keys

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Named keys.
const (
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
	Home       = "Home"
	End        = "End"
	PageUp     = "PageUp"
	PageDown   = "PageDown"
	Enter      = "Enter"
	Space      = " "
	Escape     = "Escape"
	Tab        = "Tab"
	Backspace  = "Backspace"
	Delete     = "Delete"
)

// Event is a single key press.
type Event struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool

	defaultPrevented bool
}

// New creates an event for key with no modifiers.
func New(key string) *Event {
	return &Event{Key: key}
}

// PreventDefault marks the event as consumed so the host skips its default
// action (page scroll on Space, caret movement on arrows).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// HasModifier reports whether Ctrl, Alt or Meta is held. Shift is not a
// modifier for this purpose since it only changes the produced character.
func (e *Event) HasModifier() bool {
	return e.Ctrl || e.Alt || e.Meta
}

// IsCommand reports whether the platform command key (Ctrl or Meta) is held.
func (e *Event) IsCommand() bool {
	return e.Ctrl || e.Meta
}

// IsPrintable reports whether the event produces exactly one printable
// character: one grapheme cluster, no Ctrl/Alt/Meta, not a control rune.
func (e *Event) IsPrintable() bool {
	if e.HasModifier() || e.Key == "" {
		return false
	}
	if uniseg.GraphemeClusterCount(e.Key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(e.Key)
	if r == utf8.RuneError {
		return false
	}
	return !unicode.IsControl(r)
}

// IsSpace reports whether the event is the space bar, in either spelling.
func (e *Event) IsSpace() bool {
	return e.Key == Space || e.Key == "Space" || e.Key == "Spacebar"
}
