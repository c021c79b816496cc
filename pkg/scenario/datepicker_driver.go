package scenario

import (
	"fmt"
	"slices"
	"time"

	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/datepicker"
)

type datepickerSettings struct {
	config.Datepicker `yaml:",inline"`
	Mode              datepicker.Mode `yaml:"mode"`
	Value             string          `yaml:"value"`
	Min               string          `yaml:"min"`
	Max               string          `yaml:"max"`
	DisabledDates     []string        `yaml:"disabled_dates"`
	Disabled          bool            `yaml:"disabled"`
	ReadOnly          bool            `yaml:"read_only"`
}

type datepickerDriver struct {
	p *datepicker.DatePicker
}

func newDatepickerDriver(e *env, sc *Scenario) (driver, error) {
	cfg := *e.cfg
	settings := datepickerSettings{Datepicker: cfg.Datepicker}
	if err := decodeOptions(sc, &settings); err != nil {
		return nil, err
	}
	cfg.Datepicker = settings.Datepicker

	opts := cfg.DatepickerOptions()
	opts.Mode = settings.Mode
	opts.Disabled = settings.Disabled
	opts.ReadOnly = settings.ReadOnly
	var err error
	if opts.Value, err = optionalDate(settings.Value); err != nil {
		return nil, err
	}
	if opts.MinDate, err = optionalDate(settings.Min); err != nil {
		return nil, err
	}
	if opts.MaxDate, err = optionalDate(settings.Max); err != nil {
		return nil, err
	}
	if len(settings.DisabledDates) > 0 {
		blocked := make([]string, 0, len(settings.DisabledDates))
		for _, s := range settings.DisabledDates {
			t, err := optionalDate(s)
			if err != nil {
				return nil, err
			}
			blocked = append(blocked, t.Format("2006-01-02"))
		}
		opts.IsDateDisabled = func(date time.Time) bool {
			return slices.Contains(blocked, date.Format("2006-01-02"))
		}
	}
	now := e.now
	opts.Now = func() time.Time { return now }
	opts.Logger = e.logger
	return &datepickerDriver{p: datepicker.New(opts)}, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: options: %v", ErrInvalidScenario, err)
	}
	return t, nil
}

func (d *datepickerDriver) do(st Step) error {
	switch st.Do {
	case "key":
		e, err := st.keyEvent()
		if err != nil {
			return err
		}
		d.p.HandleKeyDown(e)
	case "open":
		d.p.Open()
	case "close":
		d.p.Close()
	case "toggle":
		d.p.Toggle()
	case "select", "focus":
		date, err := parseDate(st.Date)
		if err != nil {
			return fmt.Errorf("%w: date: %v", ErrInvalidScenario, err)
		}
		if st.Do == "select" {
			d.p.SelectDate(date)
		} else {
			d.p.SetFocusedDate(date)
		}
	case "clear":
		d.p.ClearSelection()
	case "next-month":
		d.p.NextMonth()
	case "previous-month":
		d.p.PreviousMonth()
	case "next-year":
		d.p.NextYear()
	case "previous-year":
		d.p.PreviousYear()
	default:
		return unsupported(st)
	}
	return nil
}

func (d *datepickerDriver) snapshot() any { return d.p.State() }

func (d *datepickerDriver) close() { d.p.Destroy() }
