package roving

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
)

func setup(n int) (*dom.Document, *dom.Node, []*dom.Node) {
	d := dom.NewDocument()
	bar := d.Body().AppendChild(d.CreateElement("div"))
	bar.SetAttr("role", "toolbar")
	var items []*dom.Node
	for i := 0; i < n; i++ {
		b := bar.AppendChild(d.CreateElement("button"))
		items = append(items, b)
	}
	return d, bar, items
}

func tabIndexes(items []*dom.Node) []int {
	out := make([]int, len(items))
	for i, el := range items {
		out[i], _ = el.TabIndex()
	}
	return out
}

func TestController_InitialRoving(t *testing.T) {
	_, bar, items := setup(3)
	c := New(Options{Container: bar, Selector: "button"})
	defer c.Destroy()

	assert.Equal(t, 0, c.FocusedIndex())
	assert.Equal(t, []int{0, -1, -1}, tabIndexes(items))
}

func TestController_InitialIndexFromExistingTabIndex(t *testing.T) {
	_, bar, items := setup(3)
	items[2].SetTabIndex(0)
	c := New(Options{Container: bar, Selector: "button"})

	assert.Equal(t, 2, c.FocusedIndex())
	assert.Equal(t, []int{-1, -1, 0}, tabIndexes(items))
}

func TestController_ArrowKeys(t *testing.T) {
	d, bar, items := setup(4)
	var focused []int
	c := New(Options{
		Container:   bar,
		Selector:    "button",
		Orientation: keys.Horizontal,
		Loop:        true,
		OnFocus:     func(i int, _ *dom.Node) { focused = append(focused, i) },
	})
	items[0].Focus()

	ev := d.KeyDown(keys.New(keys.ArrowRight))
	assert.True(t, ev.DefaultPrevented())
	assert.Equal(t, 1, c.FocusedIndex())
	assert.Equal(t, items[1], d.ActiveElement())

	d.KeyDown(keys.New(keys.End))
	assert.Equal(t, 3, c.FocusedIndex())

	d.KeyDown(keys.New(keys.ArrowRight))
	assert.Equal(t, 0, c.FocusedIndex(), "loops past the end")

	d.KeyDown(keys.New(keys.ArrowLeft))
	assert.Equal(t, 3, c.FocusedIndex(), "loops past the start")

	ev = d.KeyDown(keys.New(keys.ArrowDown))
	assert.False(t, ev.DefaultPrevented(), "vertical arrows ignored when horizontal")
	assert.Equal(t, 3, c.FocusedIndex())

	d.KeyDown(keys.New(keys.Home))
	assert.Equal(t, 0, c.FocusedIndex())
	assert.Equal(t, []int{1, 3, 0, 3, 0}, focused)
	assert.Equal(t, []int{0, -1, -1, -1}, tabIndexes(items))
}

func TestController_RTLMirrorsHorizontal(t *testing.T) {
	d, bar, items := setup(3)
	c := New(Options{Container: bar, Selector: "button", Orientation: keys.Horizontal, RTL: true})
	items[0].Focus()

	d.KeyDown(keys.New(keys.ArrowLeft))
	assert.Equal(t, 1, c.FocusedIndex())
}

func TestController_BoundaryClampAndLoop(t *testing.T) {
	tests := []struct {
		name     string
		loop     bool
		disabled []int
		target   int
		want     int
	}{
		{"clamp beyond last", false, nil, 10, 4},
		{"clamp beyond last skips disabled tail", false, []int{4}, 10, 3},
		{"loop beyond last", true, nil, 5, 0},
		{"loop beyond last skips disabled head", true, []int{0, 1}, 5, 2},
		{"clamp below zero", false, nil, -3, 0},
		{"loop below zero", true, nil, -1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bar, items := setup(5)
			for _, i := range tt.disabled {
				items[i].SetDisabled(true)
			}
			c := New(Options{Container: bar, Selector: "button", Loop: tt.loop, SkipDisabled: true})
			c.SetFocusedIndex(tt.target)
			assert.Equal(t, tt.want, c.FocusedIndex())
		})
	}
}

func TestController_SkipsDisabledWhileMoving(t *testing.T) {
	d, bar, items := setup(4)
	items[1].SetDisabled(true)
	items[2].SetAttr("aria-disabled", "true")
	c := New(Options{Container: bar, Selector: "button", Orientation: keys.Vertical, SkipDisabled: true})
	items[0].Focus()

	d.KeyDown(keys.New(keys.ArrowDown))
	assert.Equal(t, 3, c.FocusedIndex())

	d.KeyDown(keys.New(keys.ArrowUp))
	assert.Equal(t, 0, c.FocusedIndex())
}

func TestController_AllDisabledNeverChanges(t *testing.T) {
	_, bar, items := setup(3)
	c := New(Options{Container: bar, Selector: "button", Loop: true})
	c.SetFocusedIndex(1)
	require.Equal(t, 1, c.FocusedIndex())

	for _, el := range items {
		el.SetDisabled(true)
	}
	focused := 0
	c.opts.SkipDisabled = true
	c.opts.OnFocus = func(int, *dom.Node) { focused++ }
	for _, target := range []int{0, 2, 5, -1} {
		c.SetFocusedIndex(target)
		assert.Equal(t, 1, c.FocusedIndex())
	}
	for _, k := range []string{keys.ArrowDown, keys.ArrowUp, keys.Home, keys.End} {
		items[1].Dispatch(&dom.Event{Type: dom.EventKeyDown, Key: keys.New(k)})
		assert.Equal(t, 1, c.FocusedIndex())
	}
	assert.Zero(t, focused)
	assert.Equal(t, []int{-1, 0, -1}, tabIndexes(items))
}

func TestController_AllDisabledFromStart(t *testing.T) {
	_, bar, items := setup(2)
	for _, el := range items {
		el.SetDisabled(true)
	}
	c := New(Options{Container: bar, Selector: "button", SkipDisabled: true})
	c.SetFocusedIndex(1)
	assert.Equal(t, -1, c.FocusedIndex())
}

func TestController_FocusInResyncs(t *testing.T) {
	d, bar, items := setup(3)
	c := New(Options{Container: bar, Selector: "button"})

	d.Click(items[2])
	assert.Equal(t, 2, c.FocusedIndex())
	assert.Equal(t, []int{-1, -1, 0}, tabIndexes(items))

	d.KeyDown(keys.New(keys.ArrowUp))
	assert.Equal(t, 1, c.FocusedIndex())
}

func TestController_LiveItemSet(t *testing.T) {
	d, bar, items := setup(2)
	c := New(Options{Container: bar, Selector: "button"})
	items[0].Focus()

	extra := bar.AppendChild(d.CreateElement("button"))
	d.KeyDown(keys.New(keys.End))
	assert.Equal(t, 2, c.FocusedIndex())
	assert.Equal(t, extra, d.ActiveElement())
}

func TestController_DestroyDetachesListeners(t *testing.T) {
	d, bar, items := setup(3)
	c := New(Options{Container: bar, Selector: "button"})
	items[0].Focus()
	c.Destroy()
	c.Destroy()

	assert.Equal(t, 0, bar.ListenerCount(dom.EventKeyDown))
	assert.Equal(t, 0, bar.ListenerCount(dom.EventFocusIn))

	d.KeyDown(keys.New(keys.ArrowDown))
	assert.Equal(t, 0, c.FocusedIndex())
	assert.Equal(t, []int{0, -1, -1}, tabIndexes(items), "tabindex left untouched")
}
