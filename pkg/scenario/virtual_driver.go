package scenario

import (
	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/virtual"
)

// defaultRowHeight lays out rows that give neither a height nor a hint.
const defaultRowHeight = 40

type virtualSettings struct {
	config.Virtual `yaml:",inline"`
	ViewportHeight float64 `yaml:"viewport_height"`
}

type virtualDriver struct {
	vp *virtual.Viewport
	l  *virtual.List
}

type virtualSnapshot struct {
	virtual.State
	ScrollTop float64 `json:"scrollTop"`
}

func newVirtualDriver(e *env, sc *Scenario) (driver, error) {
	cfg := *e.cfg
	settings := virtualSettings{Virtual: cfg.Virtual, ViewportHeight: 400}
	if err := decodeOptions(sc, &settings); err != nil {
		return nil, err
	}
	cfg.Virtual = settings.Virtual

	doc := dom.NewDocument()
	d := &virtualDriver{vp: virtual.NewViewport(doc, settings.ViewportHeight)}
	opts := cfg.VirtualOptions()
	opts.Observers = d.vp.Factory()
	opts.Logger = e.logger
	d.l = virtual.New(opts)

	y := 0.0
	for _, it := range sc.Items {
		h := it.Height
		if h <= 0 {
			h = settings.ItemHeightHint
		}
		if h <= 0 {
			h = defaultRowHeight
		}
		el := doc.Body().AppendChild(doc.CreateElement("div").SetID(it.ID))
		el.SetRect(dom.Rect{Y: y, Width: 100, Height: h})
		y += h
		d.l.Register(it.ID, el)
	}
	d.vp.Flush()
	return d, nil
}

func (d *virtualDriver) do(st Step) error {
	switch st.Do {
	case "scroll":
		d.vp.ScrollTo(st.Value)
	case "scroll-to":
		d.l.ScrollToID(st.ID)
	case "resize":
		d.vp.Resize(st.Value)
	case "unregister":
		d.l.Unregister(st.ID)
	case "refresh":
		d.l.Refresh()
	default:
		return unsupported(st)
	}
	d.vp.Flush()
	return nil
}

func (d *virtualDriver) snapshot() any {
	return virtualSnapshot{State: d.l.State(), ScrollTop: d.vp.ScrollTop()}
}

func (d *virtualDriver) close() {
	d.l.Destroy()
	d.vp.Close()
}
