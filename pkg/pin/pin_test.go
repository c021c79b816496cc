package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/headless/internal/testutil"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
)

type recorder struct {
	values    []string
	completes []string
}

func newPIN(opts Options) (*Input, *recorder) {
	r := &recorder{}
	opts.OnValueChange = func(v string) { r.values = append(r.values, v) }
	opts.OnComplete = func(v string) { r.completes = append(r.completes, v) }
	return New(opts), r
}

func valuesAt(p *Input) []string {
	out := make([]string, p.Length())
	for i := range out {
		out[i] = p.GetValueAt(i)
	}
	return out
}

func TestInput_CompleteFiresOnce(t *testing.T) {
	p, r := newPIN(Options{Length: 4})

	p.Input(0, "1")
	p.Input(1, "2")
	p.Input(2, "3")
	p.Input(3, "4")
	assert.Equal(t, []string{"1234"}, r.completes)
	assert.Equal(t, []string{"1", "12", "123", "1234"}, r.values)

	p.Input(3, "5")
	assert.Len(t, r.completes, 1, "still complete, no second fire")

	p.Backspace(3)
	p.Input(3, "6")
	assert.Equal(t, []string{"1234", "1236"}, r.completes, "fires again after becoming incomplete")
}

func TestInput_AutoAdvance(t *testing.T) {
	p, _ := newPIN(Options{Length: 3})

	p.Input(0, "1")
	assert.Equal(t, 1, p.State().FocusedIndex)
	p.Input(2, "9")
	assert.Equal(t, 2, p.State().FocusedIndex, "last slot does not advance")
	assert.Equal(t, "1 9", p.State().Value)
	assert.Equal(t, "19", p.Value())
}

func TestInput_Rejections(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	p, r := newPIN(Options{Length: 4, Logger: logger})

	p.Input(0, "a")
	p.Input(-1, "1")
	p.Input(4, "1")
	p.Input(0, "12")
	p.SetDisabled(true)
	p.Input(0, "1")

	assert.Empty(t, r.values)
	assert.Equal(t, "    ", p.State().Value)
	assert.Equal(t, []string{
		"invalid character", "index out of range", "index out of range", "invalid character", "disabled",
	}, testutil.Reasons(logs, "input ignored"))
}

func TestInput_Alphanumeric(t *testing.T) {
	p, _ := newPIN(Options{Length: 2, Alphanumeric: true})
	p.Input(0, "a")
	p.Input(1, "Z")
	p.Input(1, "-")
	assert.Equal(t, "aZ", p.Value())
}

func TestInput_Backspace(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		focus     int
		index     int
		wantValue string
		wantFocus int
	}{
		{"filled clears and moves back", "1234", 3, 3, "123 ", 2},
		{"empty clears previous", "12", 2, 2, "1   ", 1},
		{"filled first slot stays at zero", "1", 0, 0, "    ", 0},
		{"empty first slot is a no-op", "", 0, 0, "    ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPIN(Options{Length: 4, InitialValue: tt.initial})
			p.Focus(tt.focus)
			p.Backspace(tt.index)
			assert.Equal(t, tt.wantValue, p.State().Value)
			assert.Equal(t, tt.wantFocus, p.State().FocusedIndex)
		})
	}
}

func TestInput_Paste(t *testing.T) {
	p, r := newPIN(Options{Length: 4})

	p.Paste("12ab34")
	assert.Equal(t, []string{"1", "2", "3", "4"}, valuesAt(p))
	assert.Equal(t, 3, p.State().FocusedIndex)
	assert.Equal(t, []string{"1234"}, r.completes)
}

func TestInput_PasteFromFocusedSlotTruncates(t *testing.T) {
	p, _ := newPIN(Options{Length: 4})
	p.Focus(2)

	p.Paste("98765")
	assert.Equal(t, []string{"", "", "9", "8"}, valuesAt(p))
	assert.Equal(t, 3, p.State().FocusedIndex)

	p.Paste("xyz")
	assert.Equal(t, "98", p.Value(), "nothing valid to paste")
}

func TestInput_HandleKeyDown(t *testing.T) {
	d := dom.NewDocument()
	var els []*dom.Node
	for i := 0; i < 4; i++ {
		els = append(els, d.Body().AppendChild(d.CreateElement("input")))
	}
	p, _ := newPIN(Options{Length: 4, Element: func(i int) *dom.Node { return els[i] }})

	e := keys.New("7")
	require.True(t, p.HandleKeyDown(0, e))
	assert.True(t, e.DefaultPrevented())
	assert.Same(t, els[1], d.ActiveElement())

	p.HandleKeyDown(1, keys.New(keys.End))
	assert.Equal(t, 3, p.State().FocusedIndex)
	p.HandleKeyDown(3, keys.New(keys.ArrowLeft))
	assert.Equal(t, 2, p.State().FocusedIndex)
	p.HandleKeyDown(2, keys.New(keys.Home))
	assert.Same(t, els[0], d.ActiveElement())

	p.HandleKeyDown(0, keys.New(keys.Delete))
	assert.Equal(t, "", p.Value())
	assert.Equal(t, 0, p.State().FocusedIndex)

	assert.False(t, p.HandleKeyDown(0, keys.New(keys.Tab)))
	assert.False(t, p.HandleKeyDown(0, keys.MustParse("Ctrl+v")))
}

func TestInput_ClearAndInitialValue(t *testing.T) {
	p, r := newPIN(Options{Length: 4, InitialValue: "1x234"})
	assert.Equal(t, "1234", p.Value())
	assert.True(t, p.IsComplete())
	assert.Empty(t, r.values, "initial value is silent")

	p.Clear()
	assert.Equal(t, "    ", p.State().Value)
	assert.False(t, p.IsComplete())
	assert.Equal(t, []string{""}, r.values)
}

func TestInput_Props(t *testing.T) {
	p := New(Options{ID: "otp", Length: 6, Mask: true, InitialValue: "12"})

	first := p.InputProps(0)
	assert.Equal(t, "otp-0", first["id"])
	assert.Equal(t, "one-time-code", first["autocomplete"])
	assert.Equal(t, "numeric", first["inputmode"])
	assert.Equal(t, "password", first["type"])
	assert.Equal(t, "Digit 1 of 6", first["aria-label"])
	assert.Equal(t, "1", first["value"])
	assert.Equal(t, 0, first["tabIndex"])

	third := p.InputProps(2)
	assert.Equal(t, "off", third["autocomplete"])
	assert.Equal(t, "", third["value"])
	assert.Equal(t, -1, third["tabIndex"])

	c := p.ContainerProps()
	assert.Equal(t, "group", c["role"])
	assert.Equal(t, "PIN", c["aria-label"])

	alpha := New(Options{Alphanumeric: true})
	assert.Equal(t, "Character 2 of 4", alpha.InputProps(1)["aria-label"])
	assert.Equal(t, "text", alpha.InputProps(1)["inputmode"])

	p.SetDisabled(true)
	assert.Equal(t, true, p.InputProps(0)["disabled"])
	assert.Equal(t, "true", p.ContainerProps()["aria-disabled"])
}

func TestInput_ClearFromValueCallback(t *testing.T) {
	var p *Input
	var values, completes []string
	p = New(Options{
		Length: 4,
		OnValueChange: func(v string) {
			values = append(values, v)
			if len(v) == 4 {
				p.Clear()
			}
		},
		OnComplete: func(v string) { completes = append(completes, v) },
	})

	p.Paste("1234")
	assert.Equal(t, "", p.Value())
	assert.False(t, p.IsComplete())
	assert.Equal(t, 0, p.State().FocusedIndex)
	assert.Equal(t, []string{"1234", ""}, values)
	assert.Equal(t, []string{"1234"}, completes)

	p.Paste("5678")
	assert.Equal(t, "", p.Value())
	assert.Equal(t, []string{"1234", "5678"}, completes)
}
