package menu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/headless/internal/testutil"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/overlay"
	"github.com/dshills/headless/pkg/timer"
)

type page struct {
	doc     *dom.Document
	trigger *dom.Node
	content *dom.Node
	outside *dom.Node
	items   []*dom.Node
	clock   *timer.Manual
}

func newPage() *page {
	d := dom.NewDocument()
	p := &page{doc: d, clock: timer.NewManual()}
	p.trigger = d.Body().AppendChild(d.CreateElement("button"))
	p.content = d.Body().AppendChild(d.CreateElement("div"))
	p.outside = d.Body().AppendChild(d.CreateElement("p"))
	return p
}

// mount registers items and renders their elements into the content.
func (p *page) mount(m *Menu, items ...Item) {
	for _, it := range items {
		i := m.RegisterItem(it)
		el := p.doc.CreateElement("div").SetText(it.Label)
		p.content.AppendChild(el.Apply(m.ItemProps(i)))
		p.items = append(p.items, el)
	}
	m.SetTriggerElement(p.trigger.Apply(m.TriggerProps()))
	m.SetContentElement(p.content.Apply(m.ContentProps()))
}

var fruits = []Item{
	{Value: "apple", Label: "Apple"},
	{Value: "banana", Label: "Banana"},
	{Value: "blueberry", Label: "Blueberry"},
	{Value: "cherry", Label: "Cherry"},
}

func TestMenu_OpenNavigateSelect(t *testing.T) {
	p := newPage()
	var selected []string
	var changes []bool
	m := New(Options{
		OnSelect:     func(v string) { selected = append(selected, v) },
		OnOpenChange: func(open bool) { changes = append(changes, open) },
	})
	p.mount(m, fruits...)
	p.trigger.Focus()

	assert.True(t, m.HandleTriggerKeyDown(keys.New(keys.ArrowDown)))
	assert.Equal(t, StatusOpen, m.State().Status)
	assert.Equal(t, 0, m.State().ActiveIndex)
	assert.Same(t, p.items[0], p.doc.ActiveElement())
	assert.Equal(t, "true", p.trigger.Attr("aria-expanded"))

	p.doc.KeyDown(keys.New(keys.ArrowDown))
	assert.Equal(t, 1, m.State().ActiveIndex)

	e := p.doc.KeyDown(keys.New(keys.Enter))
	assert.True(t, e.DefaultPrevented())
	assert.Equal(t, []string{"banana"}, selected)
	assert.Equal(t, StatusClosed, m.State().Status)
	assert.Equal(t, -1, m.State().ActiveIndex)
	assert.Same(t, p.trigger, p.doc.ActiveElement())
	assert.Equal(t, "false", p.trigger.Attr("aria-expanded"))
	assert.Equal(t, []bool{true, false}, changes)
	assert.Empty(t, m.Value(), "a plain menu keeps no value")
}

func TestMenu_OpeningWaitsForContent(t *testing.T) {
	p := newPage()
	m := New(Options{})
	for _, it := range fruits {
		i := m.RegisterItem(it)
		p.content.AppendChild(p.doc.CreateElement("div").Apply(m.ItemProps(i)))
	}

	m.Send(Open(FocusFirst))
	assert.Equal(t, StatusOpening, m.State().Status)
	assert.True(t, m.State().Open())
	assert.Equal(t, -1, m.State().ActiveIndex)

	m.SetContentElement(p.content)
	assert.Equal(t, StatusOpen, m.State().Status)
	assert.Equal(t, 0, m.State().ActiveIndex)
}

func TestMenu_OpenLastSkipsDisabled(t *testing.T) {
	p := newPage()
	m := New(Options{})
	p.mount(m,
		Item{Value: "a", Label: "A", Disabled: true},
		Item{Value: "b", Label: "B"},
		Item{Value: "c", Label: "C"},
		Item{Value: "d", Label: "D", Disabled: true},
	)

	m.HandleTriggerKeyDown(keys.New(keys.ArrowUp))
	assert.Equal(t, 2, m.State().ActiveIndex)
	m.Send(Close())

	m.HandleTriggerKeyDown(keys.New(keys.Enter))
	assert.Equal(t, 1, m.State().ActiveIndex)
}

func TestMenu_TriggerKeysIgnored(t *testing.T) {
	m := New(Options{})
	assert.False(t, m.HandleTriggerKeyDown(keys.New("x")))
	assert.False(t, m.HandleTriggerKeyDown(keys.NewBuilder(keys.ArrowDown).WithCtrl().Build()))
	assert.Equal(t, StatusClosed, m.State().Status)
}

func TestMenu_Dismissal(t *testing.T) {
	t.Run("escape", func(t *testing.T) {
		p := newPage()
		m := New(Options{})
		p.mount(m, fruits...)
		m.Send(Open(FocusFirst))

		e := p.doc.KeyDown(keys.New(keys.Escape))
		assert.True(t, e.DefaultPrevented())
		assert.Equal(t, StatusClosed, m.State().Status)
		assert.Same(t, p.trigger, p.doc.ActiveElement())
	})

	t.Run("outside press", func(t *testing.T) {
		p := newPage()
		m := New(Options{})
		p.mount(m, fruits...)
		m.Send(Open(FocusFirst))

		p.doc.PointerDown(p.items[2], dom.Point{})
		assert.True(t, m.State().Open(), "inside press keeps the menu open")
		p.doc.PointerDown(p.outside, dom.Point{})
		assert.False(t, m.State().Open())
	})

	t.Run("tab", func(t *testing.T) {
		p := newPage()
		m := New(Options{})
		p.mount(m, fruits...)
		m.Send(Open(FocusFirst))

		p.doc.KeyDown(keys.New(keys.Tab))
		assert.False(t, m.State().Open())
	})
}

func TestMenu_ClickSelects(t *testing.T) {
	p := newPage()
	var selected []string
	m := New(Options{OnSelect: func(v string) { selected = append(selected, v) }})
	p.mount(m, fruits...)
	m.Send(Open(FocusFirst))

	p.doc.Click(p.items[3])
	assert.Equal(t, []string{"cherry"}, selected)
	assert.False(t, m.State().Open())
}

func TestMenu_Typeahead(t *testing.T) {
	p := newPage()
	m := New(Options{Scheduler: p.clock})
	p.mount(m, fruits...)
	m.Send(Open(FocusFirst))

	p.doc.KeyDown(keys.New("b"))
	assert.Equal(t, 1, m.State().ActiveIndex)
	p.doc.KeyDown(keys.New("l"))
	assert.Equal(t, 2, m.State().ActiveIndex)

	p.clock.Advance(time.Second)
	p.doc.KeyDown(keys.New("c"))
	assert.Equal(t, 3, m.State().ActiveIndex)
	assert.Same(t, p.items[3], p.doc.ActiveElement())
}

func TestMenu_FocusItemEvent(t *testing.T) {
	p := newPage()
	m := New(Options{})
	p.mount(m, fruits...)

	m.Send(FocusItem(2))
	assert.Equal(t, 2, m.State().ActiveIndex, "closed menus just record the index")

	m.Send(Open(FocusFirst))
	m.Send(FocusItem(3))
	assert.Equal(t, 3, m.State().ActiveIndex)
	assert.Same(t, p.items[3], p.doc.ActiveElement())

	m.Send(FocusItem(9))
	assert.Equal(t, 3, m.State().ActiveIndex)
}

func TestSelect_ValueAndProps(t *testing.T) {
	p := newPage()
	var values []string
	m := New(Options{
		ID:            "fruit",
		Kind:          KindSelect,
		Value:         "banana",
		OnValueChange: func(v string) { values = append(values, v) },
	})
	p.mount(m, fruits...)

	tp := m.TriggerProps()
	assert.Equal(t, "combobox", tp["role"])
	assert.Equal(t, "listbox", tp["aria-haspopup"])
	assert.Equal(t, "fruit-content", tp["aria-controls"])
	assert.Equal(t, "Banana", tp["aria-label"])
	assert.Equal(t, "false", tp["aria-expanded"])

	m.Toggle()
	assert.Equal(t, 1, m.State().ActiveIndex, "opens on the selected option")
	cp := m.ContentProps()
	assert.Equal(t, "listbox", cp["role"])
	assert.NotContains(t, cp, "hidden")

	ip := m.ItemProps(1)
	assert.Equal(t, "option", ip["role"])
	assert.Equal(t, "true", ip["aria-selected"])
	assert.Equal(t, 0, ip["tabIndex"])
	assert.Equal(t, "false", m.ItemProps(0)["aria-selected"])

	m.Send(Select("cherry"))
	assert.Equal(t, "cherry", m.Value())
	assert.Equal(t, []string{"cherry"}, values)

	m.Toggle()
	m.Send(Select("cherry"))
	assert.Equal(t, []string{"cherry"}, values, "reselecting the same value does not notify")
	assert.Equal(t, true, m.ContentProps()["hidden"])
}

func TestMenu_SelectDisabledIgnored(t *testing.T) {
	logger, logs := testutil.ObservedLogger()
	p := newPage()
	var selected []string
	m := New(Options{
		OnSelect: func(v string) { selected = append(selected, v) },
		Logger:   logger,
	})
	p.mount(m, Item{Value: "a", Label: "A", Disabled: true}, Item{Value: "b", Label: "B"})
	m.Send(Open(FocusFirst))

	m.Send(Select("a"))
	assert.Empty(t, selected)
	assert.True(t, m.State().Open())
	assert.Equal(t, []string{"disabled item"}, testutil.Reasons(logs, "select ignored"))

	assert.Equal(t, "true", m.ItemProps(0)["aria-disabled"])
	assert.Equal(t, "menuitem", m.ItemProps(1)["role"])
}

type anchorSpy struct {
	opts      overlay.AnchorOptions
	destroyed bool
}

func (a *anchorSpy) Update()  {}
func (a *anchorSpy) Destroy() { a.destroyed = true }

func TestMenu_AnchorLifecycle(t *testing.T) {
	p := newPage()
	var spies []*anchorSpy
	m := New(Options{
		Placement: overlay.ParsePlacement("top-end"),
		Offset:    4,
		Anchors: func(o overlay.AnchorOptions) overlay.Anchor {
			s := &anchorSpy{opts: o}
			spies = append(spies, s)
			return s
		},
	})
	p.mount(m, fruits...)

	m.Send(Open(FocusFirst))
	require.Len(t, spies, 1)
	assert.Same(t, p.trigger, spies[0].opts.Anchor)
	assert.Same(t, p.content, spies[0].opts.Floating)
	assert.Equal(t, overlay.SideTop, spies[0].opts.Placement.Side)
	assert.Equal(t, 4.0, spies[0].opts.Offset)

	m.Send(Close())
	assert.True(t, spies[0].destroyed)
}

func TestMenu_DefaultIDAndDestroy(t *testing.T) {
	p := newPage()
	m := New(Options{})
	assert.Regexp(t, `^menu-\d+$`, m.ID())
	assert.Equal(t, m.ID()+"-item-2", m.ItemID(2))
	p.mount(m, fruits...)
	m.Send(Open(FocusFirst))

	m.Destroy()
	assert.False(t, m.State().Open())
	assert.Equal(t, 0, p.doc.Root().ListenerCount(dom.EventKeyDown))
	assert.Equal(t, 0, p.content.ListenerCount(dom.EventKeyDown))
}

func TestMenu_CloseFromSelectCallback(t *testing.T) {
	p := newPage()
	var m *Menu
	var changes []bool
	m = New(Options{
		OnSelect:     func(string) { m.Send(Close()) },
		OnOpenChange: func(open bool) { changes = append(changes, open) },
	})
	p.mount(m, fruits...)

	m.Send(Open(FocusFirst))
	m.Send(Select("banana"))
	assert.Equal(t, StatusClosed, m.State().Status)
	assert.Equal(t, -1, m.State().ActiveIndex)
	assert.Equal(t, []bool{true, false}, changes)
	assert.Same(t, p.trigger, p.doc.ActiveElement())
}

func TestMenu_OpenFromSelectCallbackIsIgnored(t *testing.T) {
	p := newPage()
	var m *Menu
	var selected []string
	m = New(Options{
		OnSelect: func(v string) {
			selected = append(selected, v)
			m.Send(Open(FocusLast))
		},
	})
	p.mount(m, fruits...)

	m.Send(Open(FocusFirst))
	m.Send(Select("apple"))
	assert.Equal(t, StatusClosed, m.State().Status)
	assert.Equal(t, -1, m.State().ActiveIndex)
	assert.Equal(t, []string{"apple"}, selected)
	assert.Same(t, p.trigger, p.doc.ActiveElement())
}

func TestMenu_ReopenFromOpenChangeCallback(t *testing.T) {
	p := newPage()
	var m *Menu
	reopened := false
	m = New(Options{
		OnOpenChange: func(open bool) {
			if !open && !reopened {
				reopened = true
				m.Send(Open(FocusLast))
			}
		},
	})
	p.mount(m, fruits...)

	m.Send(Open(FocusFirst))
	m.Send(Select("apple"))
	assert.True(t, reopened)
	assert.Equal(t, StatusOpen, m.State().Status)
	assert.Equal(t, 3, m.State().ActiveIndex)
	assert.Same(t, p.items[3], p.doc.ActiveElement())

	p.doc.KeyDown(keys.New(keys.ArrowUp))
	assert.Equal(t, 2, m.State().ActiveIndex)
}
