package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/headless/pkg/keys"
)

func buildList(d *Document, n int) (*Node, []*Node) {
	ul := d.Body().AppendChild(d.CreateElement("ul"))
	var items []*Node
	for i := 0; i < n; i++ {
		li := ul.AppendChild(d.CreateElement("li"))
		li.SetAttr("role", "option").SetAttr("class", "item")
		li.SetText(string(rune('a' + i)))
		items = append(items, li)
	}
	return ul, items
}

func TestQueryAll(t *testing.T) {
	d := NewDocument()
	ul, items := buildList(d, 3)
	items[1].SetAttr("class", "item active")
	btn := ul.AppendChild(d.CreateElement("button"))
	btn.SetID("go")

	assert.Len(t, ul.QueryAll("[role=option]"), 3)
	assert.Len(t, ul.QueryAll(`li[role="option"]`), 3)
	assert.Equal(t, []*Node{items[1]}, ul.QueryAll(".item.active"))
	assert.Equal(t, btn, ul.Query("#go"))
	assert.Len(t, ul.QueryAll("button, .active"), 2)
	assert.Len(t, ul.QueryAll("*"), 4)
	assert.Nil(t, ul.Query("[aria-disabled]"))
	assert.True(t, items[0].Matches("li.item"))
	assert.Equal(t, btn, d.GetElementByID("go"))
}

func TestDisableableCapability(t *testing.T) {
	d := NewDocument()
	btn := d.CreateElement("button")
	div := d.CreateElement("div")

	btn.SetAttr("disabled", "")
	div.SetAttr("disabled", "")
	assert.True(t, btn.IsDisabled(), "native control honors the disabled property")
	assert.False(t, div.IsDisabled(), "plain elements only honor aria-disabled")

	div.SetAttr("aria-disabled", "true")
	assert.True(t, div.IsDisabled())

	btn.SetDisabled(false)
	assert.False(t, btn.IsDisabled())
	div.SetDisabled(false)
	assert.False(t, div.IsDisabled())
	div.SetDisabled(true)
	assert.Equal(t, "true", div.Attr("aria-disabled"))
}

func TestFocusDispatchesBubblingFocusIn(t *testing.T) {
	d := NewDocument()
	ul, items := buildList(d, 2)

	var seen []*Node
	remove := ul.AddEventListener(EventFocusIn, func(e *Event) { seen = append(seen, e.Target) })

	items[0].Focus()
	items[0].Focus()
	items[1].Focus()
	assert.Equal(t, []*Node{items[0], items[1]}, seen)
	assert.Equal(t, items[1], d.ActiveElement())

	remove()
	remove()
	items[0].Focus()
	assert.Len(t, seen, 2)
	assert.Equal(t, 0, ul.ListenerCount(EventFocusIn))
}

func TestKeyDownAndStopPropagation(t *testing.T) {
	d := NewDocument()
	ul, items := buildList(d, 1)
	items[0].SetTabIndex(0)
	items[0].Focus()

	rootSaw := false
	d.Root().AddEventListener(EventKeyDown, func(e *Event) { rootSaw = true })
	ul.AddEventListener(EventKeyDown, func(e *Event) {
		e.PreventDefault()
		e.StopPropagation()
	})

	k := keys.New(keys.ArrowDown)
	ev := d.KeyDown(k)
	assert.True(t, ev.DefaultPrevented())
	assert.True(t, k.DefaultPrevented())
	assert.False(t, rootSaw)
}

func TestClickFocusesFocusableTarget(t *testing.T) {
	d := NewDocument()
	_, items := buildList(d, 2)
	items[1].SetTabIndex(-1)

	d.Click(items[0])
	assert.Equal(t, d.Body(), d.ActiveElement(), "no tabindex, not focusable")

	d.Click(items[1])
	assert.Equal(t, items[1], d.ActiveElement())
}

func TestRemoveDropsFocus(t *testing.T) {
	d := NewDocument()
	ul, items := buildList(d, 1)
	items[0].Focus()
	ul.Remove()

	assert.Equal(t, d.Body(), d.ActiveElement())
	assert.False(t, items[0].IsConnected())
}

func TestScrollIntoViewUsesScroller(t *testing.T) {
	d := NewDocument()
	_, items := buildList(d, 1)

	var got string
	restore := d.SetScroller(func(n *Node, block string) { got = block })
	items[0].ScrollIntoView("nearest")
	restore()
	items[0].ScrollIntoView("start")

	assert.Equal(t, "nearest", got)
	require.Equal(t, []string{"nearest", "start"}, items[0].ScrollRequests())
}

func TestTextAndTabIndex(t *testing.T) {
	d := NewDocument()
	ul, _ := buildList(d, 3)
	assert.Equal(t, "abc", ul.Text())

	_, ok := ul.TabIndex()
	assert.False(t, ok)
	ul.SetTabIndex(-1)
	v, ok := ul.TabIndex()
	assert.True(t, ok)
	assert.Equal(t, -1, v)
}

func TestRect(t *testing.T) {
	vp := Rect{Y: 100, Width: 10, Height: 100}
	assert.True(t, vp.Intersects(Rect{Y: 150, Width: 10, Height: 20}))
	assert.False(t, vp.Intersects(Rect{Y: 200, Width: 10, Height: 20}), "touching edge")
	assert.True(t, vp.Expand(50).Intersects(Rect{Y: 220, Width: 10, Height: 20}))
	assert.True(t, vp.Contains(Point{X: 1, Y: 150}))
}

func TestApplyProps(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("div").SetAttr("hidden", "")

	n.Apply(map[string]any{
		"role":       "option",
		"tabIndex":   -1,
		"aria-level": 2,
		"disabled":   true,
		"hidden":     false,
	})

	assert.Equal(t, "option", n.Attr("role"))
	ti, ok := n.TabIndex()
	assert.True(t, ok)
	assert.Equal(t, -1, ti)
	assert.Equal(t, "2", n.Attr("aria-level"))
	assert.True(t, n.HasAttr("disabled"))
	assert.False(t, n.HasAttr("hidden"))
}
