package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/headless/pkg/keys"
)

// FromTcell converts a tcell key event. Keys with no DOM equivalent (function
// keys, Insert) return nil.
func FromTcell(ev *tcell.EventKey) *keys.Event {
	e := &keys.Event{}
	mods := ev.Modifiers()
	e.Shift = mods&tcell.ModShift != 0
	e.Ctrl = mods&tcell.ModCtrl != 0
	e.Alt = mods&tcell.ModAlt != 0
	e.Meta = mods&tcell.ModMeta != 0

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		e.Key = string(ev.Rune())
	case tcell.KeyUp:
		e.Key = keys.ArrowUp
	case tcell.KeyDown:
		e.Key = keys.ArrowDown
	case tcell.KeyLeft:
		e.Key = keys.ArrowLeft
	case tcell.KeyRight:
		e.Key = keys.ArrowRight
	case tcell.KeyHome:
		e.Key = keys.Home
	case tcell.KeyEnd:
		e.Key = keys.End
	case tcell.KeyPgUp:
		e.Key = keys.PageUp
	case tcell.KeyPgDn:
		e.Key = keys.PageDown
	case tcell.KeyEnter:
		e.Key = keys.Enter
	case tcell.KeyEscape:
		e.Key = keys.Escape
	case tcell.KeyTab:
		e.Key = keys.Tab
	case tcell.KeyBacktab:
		e.Key = keys.Tab
		e.Shift = true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.Key = keys.Backspace
		e.Ctrl = false
	case tcell.KeyDelete:
		e.Key = keys.Delete
	case tcell.KeyCtrlSpace:
		e.Key = keys.Space
		e.Ctrl = true
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			e.Key = string(rune('a' + int(k-tcell.KeyCtrlA)))
			e.Ctrl = true
			return e
		}
		return nil
	}
	return e
}
