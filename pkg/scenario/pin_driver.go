package scenario

import (
	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/pin"
)

type pinSettings struct {
	config.PIN   `yaml:",inline"`
	InitialValue string `yaml:"initial_value"`
	Disabled     bool   `yaml:"disabled"`
}

type pinDriver struct {
	p *pin.Input
}

func newPINDriver(e *env, sc *Scenario) (driver, error) {
	cfg := *e.cfg
	settings := pinSettings{PIN: cfg.PIN}
	if err := decodeOptions(sc, &settings); err != nil {
		return nil, err
	}
	cfg.PIN = settings.PIN

	opts := cfg.PINOptions()
	opts.InitialValue = settings.InitialValue
	opts.Disabled = settings.Disabled
	opts.Logger = e.logger
	return &pinDriver{p: pin.New(opts)}, nil
}

func (d *pinDriver) do(st Step) error {
	switch st.Do {
	case "key":
		e, err := st.keyEvent()
		if err != nil {
			return err
		}
		d.p.HandleKeyDown(st.Index, e)
	case "input":
		d.p.Input(st.Index, st.Text)
	case "backspace":
		d.p.Backspace(st.Index)
	case "delete":
		d.p.Delete(st.Index)
	case "paste":
		d.p.Paste(st.Text)
	case "clear":
		d.p.Clear()
	case "focus":
		d.p.Focus(st.Index)
	case "disable":
		d.p.SetDisabled(true)
	case "enable":
		d.p.SetDisabled(false)
	default:
		return unsupported(st)
	}
	return nil
}

func (d *pinDriver) snapshot() any { return d.p.State() }

func (d *pinDriver) close() { d.p.Destroy() }
