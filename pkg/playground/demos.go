package playground

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/goterm"
	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/listbox"
	"github.com/dshills/headless/pkg/pin"
	"github.com/dshills/headless/pkg/selection"
	"github.com/dshills/headless/pkg/slider"
)

// ErrUnknownDemo is returned by NewDemo for names Demos does not list.
var ErrUnknownDemo = errors.New("unknown demo")

// Demo is one behavior wired to the terminal.
type Demo interface {
	Name() string
	Help() string
	// HandleKey reports whether the behavior consumed the key.
	HandleKey(e *keys.Event) bool
	// Render draws from row y and returns the next free row.
	Render(c Canvas, y int) int
	Close()
}

// Demos lists the available demo names.
func Demos() []string { return []string{"listbox", "pin", "slider"} }

// NewDemo builds a demo from the configured behavior defaults.
func NewDemo(name string, cfg *config.Config, logger *zap.Logger) (Demo, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	switch name {
	case "listbox":
		return newListboxDemo(cfg, logger), nil
	case "pin":
		return newPINDemo(cfg, logger), nil
	case "slider":
		return newSliderDemo(cfg, logger), nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownDemo, name, strings.Join(Demos(), ", "))
}

type fruit struct {
	id, label string
	disabled  bool
}

var fruits = []fruit{
	{"apple", "Apple", false},
	{"banana", "Banana", false},
	{"cherry", "Cherry (out of season)", true},
	{"kiwi", "Kiwi 🥝", false},
	{"mango", "Mango", false},
	{"yuzu", "柚子 Yuzu", false},
}

type listboxDemo struct {
	lb  *listbox.Listbox
	ids []string
	els map[string]*dom.Node
}

func newListboxDemo(cfg *config.Config, logger *zap.Logger) *listboxDemo {
	d := &listboxDemo{els: make(map[string]*dom.Node, len(fruits))}
	doc := dom.NewDocument()
	list := doc.Body().AppendChild(doc.CreateElement("ul"))
	for _, f := range fruits {
		el := doc.CreateElement("li").SetID(f.id).SetText(f.label)
		if f.disabled {
			el.SetAttr("aria-disabled", "true")
		}
		list.AppendChild(el)
		d.ids = append(d.ids, f.id)
		d.els[f.id] = el
	}
	opts := cfg.ListboxOptions()
	if opts.SelectionMode == "" || opts.SelectionMode == selection.ModeNone {
		opts.SelectionMode = selection.ModeMultiple
	}
	opts.Label = "Fruit"
	opts.Logger = logger
	d.lb = listbox.New(opts)
	d.lb.SetItems(d.ids)
	return d
}

func (d *listboxDemo) Name() string { return "listbox" }

func (d *listboxDemo) Help() string {
	return "↑/↓ move  Home/End ends  Space select  Ctrl+A all  type to search"
}

func (d *listboxDemo) HandleKey(e *keys.Event) bool {
	return d.lb.HandleKeyDown(e, d.ids, func(id string) *dom.Node { return d.els[id] })
}

func (d *listboxDemo) Render(c Canvas, y int) int {
	width, _ := c.Size()
	st := d.lb.State()
	fg, bg := colorText, goterm.ColorDefault()
	for _, f := range fruits {
		cursor := "  "
		style := goterm.StyleNone
		if f.id == st.FocusedID {
			cursor = "› "
			style = goterm.StyleReverse
		}
		box := "[ ] "
		if st.SelectedIDs.Has(f.id) {
			box = "[x] "
		}
		itemFg := fg
		if f.disabled {
			itemFg = colorMuted
			style = goterm.StyleDim
		}
		c.DrawText(0, y, cursor+box, itemFg, bg, goterm.StyleNone)
		c.DrawText(6, y, fit(f.label, max(width-6, 0)), itemFg, bg, style)
		y++
	}
	y++
	status := fmt.Sprintf("selected: %s", strings.Join(st.SelectedIDs.IDs(), ", "))
	if st.TypeaheadBuffer != "" {
		status += fmt.Sprintf("   search: %q", st.TypeaheadBuffer)
	}
	c.DrawText(0, y, fit(status, width), colorMuted, bg, goterm.StyleNone)
	return y + 1
}

func (d *listboxDemo) Close() { d.lb.Destroy() }

type pinDemo struct {
	p *pin.Input
}

func newPINDemo(cfg *config.Config, logger *zap.Logger) *pinDemo {
	opts := cfg.PINOptions()
	opts.Logger = logger
	return &pinDemo{p: pin.New(opts)}
}

func (d *pinDemo) Name() string { return "pin" }

func (d *pinDemo) Help() string {
	return "type digits  ←/→ move  Backspace/Delete clear  Home/End ends"
}

func (d *pinDemo) HandleKey(e *keys.Event) bool {
	return d.p.HandleKeyDown(d.p.State().FocusedIndex, e)
}

func (d *pinDemo) Render(c Canvas, y int) int {
	st := d.p.State()
	bg := goterm.ColorDefault()
	x := 0
	for i := 0; i < d.p.Length(); i++ {
		ch := d.p.GetValueAt(i)
		switch {
		case ch == "":
			ch = "_"
		case d.p.InputProps(i)["type"] == "password":
			ch = "•"
		}
		style := goterm.StyleNone
		if i == st.FocusedIndex {
			style = goterm.StyleReverse
		}
		c.DrawText(x, y, "["+ch+"]", colorText, bg, style)
		x += 4
	}
	y += 2
	status := "incomplete"
	if st.Complete {
		status = "complete: " + d.p.Value()
	}
	c.DrawText(0, y, status, colorMuted, bg, goterm.StyleNone)
	return y + 1
}

func (d *pinDemo) Close() { d.p.Destroy() }

// sliderWidth is the gauge width in cells.
const sliderWidth = 40

type sliderDemo struct {
	s *slider.Slider
}

func newSliderDemo(cfg *config.Config, logger *zap.Logger) *sliderDemo {
	opts := cfg.SliderOptions()
	opts.Label = "Volume"
	opts.Logger = logger
	return &sliderDemo{s: slider.New(opts)}
}

func (d *sliderDemo) Name() string { return "slider" }

func (d *sliderDemo) Help() string {
	return "←/→ step  PgUp/PgDn large step  Home/End bounds"
}

func (d *sliderDemo) HandleKey(e *keys.Event) bool {
	return d.s.HandleKeyDown(slider.ThumbValue, e)
}

func (d *sliderDemo) Render(c Canvas, y int) int {
	st := d.s.State()
	bg := goterm.ColorDefault()
	c.DrawText(0, y, bar(d.s.ValueToPercent(st.Value), sliderWidth), colorTitle, bg, goterm.StyleNone)
	label := fmt.Sprintf(" %g", st.Value)
	if text, ok := d.s.ThumbProps(slider.ThumbValue)["aria-valuetext"].(string); ok {
		label = " " + text
	}
	c.DrawText(sliderWidth, y, label, colorText, bg, goterm.StyleBold)
	y += 2
	c.DrawText(0, y, fmt.Sprintf("min %g  max %g  step %g", st.Min, st.Max, st.Step), colorMuted, bg, goterm.StyleNone)
	return y + 1
}

func (d *sliderDemo) Close() { d.s.Destroy() }
