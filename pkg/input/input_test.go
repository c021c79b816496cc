package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/headless/pkg/keys"
)

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want keys.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), keys.Event{Key: "q"}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), keys.Event{Key: keys.ArrowDown}},
		{"shift right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), keys.Event{Key: keys.ArrowRight, Shift: true}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), keys.Event{Key: keys.PageDown}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), keys.Event{Key: keys.Enter}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), keys.Event{Key: keys.Escape}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), keys.Event{Key: keys.Backspace}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTcell(tt.ev)
			require.NotNil(t, got)
			assert.True(t, keys.Equal(&tt.want, got), "got %+v", got)
		})
	}

	assert.Nil(t, FromTcell(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)))
}

func TestFromTea(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want keys.Event
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}}, keys.Event{Key: "b"}},
		{"upper", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'B'}}, keys.Event{Key: "B", Shift: true}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, keys.Event{Key: "x", Alt: true}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, keys.Event{Key: keys.Space}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, keys.Event{Key: keys.ArrowUp}},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, keys.Event{Key: keys.Home}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, keys.Event{Key: keys.Tab, Shift: true}},
		{"ctrl a", tea.KeyMsg{Type: tea.KeyCtrlA}, keys.Event{Key: "a", Ctrl: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTea(tt.msg)
			require.NotNil(t, got)
			assert.True(t, keys.Equal(&tt.want, got), "got %+v", got)
		})
	}

	assert.Nil(t, FromTea(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("paste"), Paste: true}))
}
