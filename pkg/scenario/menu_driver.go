package scenario

import (
	"fmt"

	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/menu"
)

type menuSettings struct {
	config.Menu `yaml:",inline"`
	Kind        menu.Kind `yaml:"kind"`
	Value       string    `yaml:"value"`
}

type menuDriver struct {
	m       *menu.Menu
	doc     *dom.Document
	outside *dom.Node
	index   map[string]int
	items   []*dom.Node
}

type menuSnapshot struct {
	menu.State
	IsOpen bool `json:"open"`
}

func newMenuDriver(e *env, sc *Scenario) (driver, error) {
	cfg := *e.cfg
	settings := menuSettings{Menu: cfg.Menu}
	if err := decodeOptions(sc, &settings); err != nil {
		return nil, err
	}
	cfg.Menu = settings.Menu

	opts := cfg.MenuOptions()
	opts.Kind = settings.Kind
	opts.Value = settings.Value
	opts.Scheduler = e.clock
	opts.Logger = e.logger

	d := &menuDriver{doc: dom.NewDocument(), index: make(map[string]int, len(sc.Items))}
	d.m = menu.New(opts)
	body := d.doc.Body()
	trigger := body.AppendChild(d.doc.CreateElement("button").SetText(sc.Name))
	content := body.AppendChild(d.doc.CreateElement("div"))
	d.outside = body.AppendChild(d.doc.CreateElement("p"))
	for _, it := range sc.Items {
		i := d.m.RegisterItem(menu.Item{Value: it.ID, Label: it.Text(), Disabled: it.Disabled})
		d.index[it.ID] = i
		el := d.doc.CreateElement("div").SetText(it.Text()).Apply(d.m.ItemProps(i))
		content.AppendChild(el)
		d.items = append(d.items, el)
	}
	d.m.SetTriggerElement(trigger.Apply(d.m.TriggerProps()))
	d.m.SetContentElement(content.Apply(d.m.ContentProps()))
	trigger.Focus()
	return d, nil
}

func (d *menuDriver) item(id string) (int, error) {
	i, ok := d.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: no menu item %q", ErrInvalidScenario, id)
	}
	return i, nil
}

func (d *menuDriver) do(st Step) error {
	switch st.Do {
	case "key":
		e, err := st.keyEvent()
		if err != nil {
			return err
		}
		d.doc.KeyDown(e)
	case "trigger-key":
		e, err := st.keyEvent()
		if err != nil {
			return err
		}
		d.m.HandleTriggerKeyDown(e)
	case "open":
		hint := menu.FocusFirst
		if st.Text == string(menu.FocusLast) {
			hint = menu.FocusLast
		}
		d.m.Send(menu.Open(hint))
	case "close":
		d.m.Send(menu.Close())
	case "toggle":
		d.m.Toggle()
	case "select":
		d.m.Send(menu.Select(st.ID))
	case "click":
		i, err := d.item(st.ID)
		if err != nil {
			return err
		}
		d.doc.Click(d.items[i])
	case "focus":
		i, err := d.item(st.ID)
		if err != nil {
			return err
		}
		d.m.Send(menu.FocusItem(i))
	case "dismiss":
		d.doc.PointerDown(d.outside, dom.Point{})
	default:
		return unsupported(st)
	}
	return nil
}

func (d *menuDriver) snapshot() any {
	st := d.m.State()
	return menuSnapshot{State: st, IsOpen: st.Open()}
}

func (d *menuDriver) close() { d.m.Destroy() }
