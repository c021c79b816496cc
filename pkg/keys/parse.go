package keys

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Builder provides a fluent interface for creating events.
type Builder struct {
	event Event
}

// NewBuilder starts an event for key.
func NewBuilder(key string) *Builder {
	return &Builder{event: Event{Key: key}}
}

// WithCtrl adds the Ctrl modifier
func (b *Builder) WithCtrl() *Builder {
	b.event.Ctrl = true
	return b
}

// WithShift adds the Shift modifier
func (b *Builder) WithShift() *Builder {
	b.event.Shift = true
	return b
}

// WithAlt adds the Alt modifier
func (b *Builder) WithAlt() *Builder {
	b.event.Alt = true
	return b
}

// WithMeta adds the Meta (Cmd) modifier
func (b *Builder) WithMeta() *Builder {
	b.event.Meta = true
	return b
}

// Build returns a fresh copy of the constructed event.
func (b *Builder) Build() *Event {
	e := b.event
	return &e
}

// aliases maps accepted spellings to DOM key names.
var aliases = map[string]string{
	"up":         ArrowUp,
	"arrowup":    ArrowUp,
	"down":       ArrowDown,
	"arrowdown":  ArrowDown,
	"left":       ArrowLeft,
	"arrowleft":  ArrowLeft,
	"right":      ArrowRight,
	"arrowright": ArrowRight,
	"home":       Home,
	"end":        End,
	"pageup":     PageUp,
	"pgup":       PageUp,
	"pagedown":   PageDown,
	"pgdn":       PageDown,
	"enter":      Enter,
	"return":     Enter,
	"space":      Space,
	"spacebar":   Space,
	"escape":     Escape,
	"esc":        Escape,
	"tab":        Tab,
	"backspace":  Backspace,
	"delete":     Delete,
	"del":        Delete,
}

// Parse converts a key spec into an event.
// Examples: "a", "ArrowDown", "Space", "Ctrl+A", "Shift+Tab", "Meta+a".
// Both "+" and "-" separate modifiers; a lone "+" or "-" is the character.
func Parse(s string) (*Event, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty key string")
	}
	if s == "+" || s == "-" {
		return New(s), nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == '-' })
	if len(parts) == 0 {
		return nil, fmt.Errorf("invalid key: %s", s)
	}

	event := &Event{}
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl", "control":
			event.Ctrl = true
		case "shift":
			event.Shift = true
		case "alt", "option":
			event.Alt = true
		case "meta", "cmd", "command", "super":
			event.Meta = true
		default:
			return nil, fmt.Errorf("unknown modifier: %s", mod)
		}
	}

	keyPart := parts[len(parts)-1]
	if name, ok := aliases[strings.ToLower(keyPart)]; ok {
		event.Key = name
		return event, nil
	}
	if utf8.RuneCountInString(keyPart) != 1 {
		return nil, fmt.Errorf("invalid key: %s", keyPart)
	}
	event.Key = keyPart
	return event, nil
}

// MustParse is Parse for specs known at compile time.
func MustParse(s string) *Event {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Format returns a human-readable spec that Parse accepts.
func Format(e *Event) string {
	parts := make([]string, 0, 5)
	if e.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if e.Alt {
		parts = append(parts, "Alt")
	}
	if e.Meta {
		parts = append(parts, "Meta")
	}
	if e.Shift && utf8.RuneCountInString(e.Key) != 1 {
		parts = append(parts, "Shift")
	}

	key := e.Key
	if e.IsSpace() {
		key = "Space"
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}

// Equal compares key and modifiers, ignoring the prevented flag.
func Equal(a, b *Event) bool {
	return a.Key == b.Key &&
		a.Ctrl == b.Ctrl &&
		a.Alt == b.Alt &&
		a.Shift == b.Shift &&
		a.Meta == b.Meta
}
