package scenario

import (
	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/listbox"
)

type listboxSettings struct {
	config.Listbox  `yaml:",inline"`
	InitialSelected []string `yaml:"initial_selected"`
}

type listboxDriver struct {
	lb  *listbox.Listbox
	ids []string
	els map[string]*dom.Node
}

func newListboxDriver(e *env, sc *Scenario) (driver, error) {
	cfg := *e.cfg
	settings := listboxSettings{Listbox: cfg.Listbox}
	if err := decodeOptions(sc, &settings); err != nil {
		return nil, err
	}
	cfg.Listbox = settings.Listbox

	d := &listboxDriver{els: make(map[string]*dom.Node, len(sc.Items))}
	doc := dom.NewDocument()
	list := doc.Body().AppendChild(doc.CreateElement("ul"))
	for _, it := range sc.Items {
		el := doc.CreateElement("li").SetID(it.ID).SetText(it.Text())
		if it.Disabled {
			el.SetAttr("aria-disabled", "true")
		}
		list.AppendChild(el)
		d.ids = append(d.ids, it.ID)
		d.els[it.ID] = el
	}

	opts := cfg.ListboxOptions()
	opts.InitialSelected = settings.InitialSelected
	opts.Scheduler = e.clock
	opts.Logger = e.logger
	d.lb = listbox.New(opts)
	d.lb.SetItems(d.ids)
	list.Apply(d.lb.ListboxProps())
	return d, nil
}

func (d *listboxDriver) lookup(id string) *dom.Node { return d.els[id] }

func (d *listboxDriver) do(st Step) error {
	switch st.Do {
	case "key":
		e, err := st.keyEvent()
		if err != nil {
			return err
		}
		d.lb.HandleKeyDown(e, d.ids, d.lookup)
	case "select":
		d.lb.Select(st.ID)
	case "deselect":
		d.lb.Deselect(st.ID)
	case "toggle":
		d.lb.ToggleSelection(st.ID)
	case "select-all":
		d.lb.SelectAll(d.ids)
	case "clear":
		d.lb.ClearSelection()
	case "focus":
		d.lb.SetFocusedID(st.ID)
	default:
		return unsupported(st)
	}
	return nil
}

func (d *listboxDriver) snapshot() any { return d.lb.State() }

func (d *listboxDriver) close() { d.lb.Destroy() }
