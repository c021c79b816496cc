package scenario

import (
	"fmt"

	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/slider"
)

type sliderSettings struct {
	config.Slider `yaml:",inline"`
	Value         *float64  `yaml:"value"`
	Range         []float64 `yaml:"range"`
	RTL           bool      `yaml:"rtl"`
	Disabled      bool      `yaml:"disabled"`
}

// track is the slider track in scenario coordinates: percentages map to
// pixels one to one.
var track = dom.Rect{Width: 100, Height: 100}

type sliderDriver struct {
	s        *slider.Slider
	vertical bool
}

func newSliderDriver(e *env, sc *Scenario) (driver, error) {
	cfg := *e.cfg
	settings := sliderSettings{Slider: cfg.Slider}
	if err := decodeOptions(sc, &settings); err != nil {
		return nil, err
	}
	cfg.Slider = settings.Slider

	opts := cfg.SliderOptions()
	if settings.Value != nil {
		opts.Value = *settings.Value
	}
	switch len(settings.Range) {
	case 0:
	case 2:
		opts.Range = &slider.Range{Min: settings.Range[0], Max: settings.Range[1]}
	default:
		return nil, fmt.Errorf("%w: options: range needs two values", ErrInvalidScenario)
	}
	opts.RTL = settings.RTL
	opts.Disabled = settings.Disabled
	opts.Logger = e.logger
	return &sliderDriver{s: slider.New(opts), vertical: opts.Orientation == keys.Vertical}, nil
}

func (d *sliderDriver) point(percent float64) dom.Point {
	if d.vertical {
		return dom.Point{Y: percent}
	}
	return dom.Point{X: percent}
}

func (d *sliderDriver) thumb(st Step) slider.Thumb {
	if st.Thumb == "" && !d.s.State().IsRange {
		return slider.ThumbValue
	}
	return slider.Thumb(st.Thumb)
}

func (d *sliderDriver) do(st Step) error {
	switch st.Do {
	case "key":
		e, err := st.keyEvent()
		if err != nil {
			return err
		}
		d.s.HandleKeyDown(d.thumb(st), e)
	case "set":
		d.s.SetThumbValue(d.thumb(st), st.Value)
	case "drag":
		if len(st.Percent) == 0 {
			return fmt.Errorf("%w: drag needs percent", ErrInvalidScenario)
		}
		// An empty thumb lets range sliders pick the nearest one.
		d.s.StartDrag(slider.Thumb(st.Thumb), d.point(st.Percent[0]), track)
		for _, p := range st.Percent[1:] {
			d.s.Drag(d.point(p))
		}
		d.s.EndDrag()
	case "disable":
		d.s.SetDisabled(true)
	case "enable":
		d.s.SetDisabled(false)
	default:
		return unsupported(st)
	}
	return nil
}

func (d *sliderDriver) snapshot() any { return d.s.State() }

func (d *sliderDriver) close() { d.s.Destroy() }
