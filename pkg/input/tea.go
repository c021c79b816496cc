package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/headless/pkg/keys"
)

// FromTea converts a Bubble Tea key message. Multi-rune messages (pastes)
// and keys with no DOM equivalent return nil.
func FromTea(msg tea.KeyMsg) *keys.Event {
	e := &keys.Event{Alt: msg.Alt}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Paste {
			return nil
		}
		r := msg.Runes[0]
		e.Key = string(r)
		e.Shift = r >= 'A' && r <= 'Z'
	case tea.KeySpace:
		e.Key = keys.Space
	case tea.KeyUp:
		e.Key = keys.ArrowUp
	case tea.KeyDown:
		e.Key = keys.ArrowDown
	case tea.KeyLeft:
		e.Key = keys.ArrowLeft
	case tea.KeyRight:
		e.Key = keys.ArrowRight
	case tea.KeyHome:
		e.Key = keys.Home
	case tea.KeyEnd:
		e.Key = keys.End
	case tea.KeyPgUp:
		e.Key = keys.PageUp
	case tea.KeyPgDown:
		e.Key = keys.PageDown
	case tea.KeyEnter:
		e.Key = keys.Enter
	case tea.KeyEsc:
		e.Key = keys.Escape
	case tea.KeyTab:
		e.Key = keys.Tab
	case tea.KeyShiftTab:
		e.Key = keys.Tab
		e.Shift = true
	case tea.KeyBackspace:
		e.Key = keys.Backspace
	case tea.KeyDelete:
		e.Key = keys.Delete
	default:
		if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			e.Key = string(rune('a' + int(msg.Type-tea.KeyCtrlA)))
			e.Ctrl = true
			return e
		}
		return nil
	}
	return e
}
