// Package config loads behavior defaults from YAML and turns them into the
// Options of each behavior.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dshills/headless/pkg/datepicker"
	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/listbox"
	"github.com/dshills/headless/pkg/menu"
	"github.com/dshills/headless/pkg/overlay"
	"github.com/dshills/headless/pkg/pin"
	"github.com/dshills/headless/pkg/selection"
	"github.com/dshills/headless/pkg/slider"
	"github.com/dshills/headless/pkg/table"
	"github.com/dshills/headless/pkg/typeahead"
	"github.com/dshills/headless/pkg/virtual"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "HEADLESS_CONFIG"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds behavior defaults.
type Config struct {
	Typeahead  Typeahead  `yaml:"typeahead"`
	Listbox    Listbox    `yaml:"listbox"`
	Table      Table      `yaml:"table"`
	Datepicker Datepicker `yaml:"datepicker"`
	PIN        PIN        `yaml:"pin"`
	Slider     Slider     `yaml:"slider"`
	Virtual    Virtual    `yaml:"virtual"`
	Menu       Menu       `yaml:"menu"`
}

// Typeahead is shared by the list and menu behaviors.
type Typeahead struct {
	Timeout time.Duration `yaml:"timeout"`
	Locale  string        `yaml:"locale"`
}

type Listbox struct {
	SelectionMode selection.Mode   `yaml:"selection_mode"`
	Orientation   keys.Orientation `yaml:"orientation"`
	RTL           bool             `yaml:"rtl"`
}

type Table struct {
	SelectionMode selection.Mode `yaml:"selection_mode"`
}

type Datepicker struct {
	Locale string `yaml:"locale"`
	// FirstDayOfWeek is an English weekday name.
	FirstDayOfWeek string `yaml:"first_day_of_week"`
	RTL            bool   `yaml:"rtl"`
}

type PIN struct {
	Length       int  `yaml:"length"`
	Alphanumeric bool `yaml:"alphanumeric"`
	Mask         bool `yaml:"mask"`
}

type Slider struct {
	Min         float64          `yaml:"min"`
	Max         float64          `yaml:"max"`
	Step        float64          `yaml:"step"`
	LargeStep   float64          `yaml:"large_step"`
	Orientation keys.Orientation `yaml:"orientation"`
}

type Virtual struct {
	Buffer         float64 `yaml:"buffer"`
	ItemHeightHint float64 `yaml:"item_height_hint"`
}

type Menu struct {
	Placement string  `yaml:"placement"`
	Offset    float64 `yaml:"offset"`
	Flip      bool    `yaml:"flip"`
	Loop      bool    `yaml:"loop"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Typeahead:  Typeahead{Timeout: typeahead.DefaultTimeout, Locale: "und"},
		Listbox:    Listbox{SelectionMode: selection.ModeSingle, Orientation: keys.Vertical},
		Table:      Table{SelectionMode: selection.ModeNone},
		Datepicker: Datepicker{Locale: datepicker.DefaultLocale, FirstDayOfWeek: "sunday"},
		PIN:        PIN{Length: pin.DefaultLength},
		Slider:     Slider{Min: 0, Max: 100, Step: 1, LargeStep: 10, Orientation: keys.Horizontal},
		Virtual:    Virtual{Buffer: virtual.DefaultBuffer},
		Menu:       Menu{Placement: "bottom-start", Flip: true, Loop: true},
	}
}

// Load reads path, or the file named by HEADLESS_CONFIG when path is empty.
// With neither set it returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	cfg, err := LoadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFrom decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func LoadFrom(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Typeahead.Timeout <= 0 {
		bad("typeahead.timeout must be positive, got %s", c.Typeahead.Timeout)
	}
	if _, err := language.Parse(c.Typeahead.Locale); err != nil {
		bad("typeahead.locale %q: %v", c.Typeahead.Locale, err)
	}
	if !c.Listbox.SelectionMode.Valid() {
		bad("listbox.selection_mode %q", c.Listbox.SelectionMode)
	}
	if !validOrientation(c.Listbox.Orientation) {
		bad("listbox.orientation %q", c.Listbox.Orientation)
	}
	if !c.Table.SelectionMode.Valid() {
		bad("table.selection_mode %q", c.Table.SelectionMode)
	}
	if _, err := language.Parse(c.Datepicker.Locale); err != nil {
		bad("datepicker.locale %q: %v", c.Datepicker.Locale, err)
	}
	if _, ok := parseWeekday(c.Datepicker.FirstDayOfWeek); !ok {
		bad("datepicker.first_day_of_week %q", c.Datepicker.FirstDayOfWeek)
	}
	if c.PIN.Length < 1 {
		bad("pin.length must be at least 1, got %d", c.PIN.Length)
	}
	if c.Slider.Max <= c.Slider.Min {
		bad("slider.max (%g) must exceed slider.min (%g)", c.Slider.Max, c.Slider.Min)
	}
	if c.Slider.Step <= 0 {
		bad("slider.step must be positive, got %g", c.Slider.Step)
	}
	if c.Slider.LargeStep < c.Slider.Step {
		bad("slider.large_step (%g) is smaller than slider.step (%g)", c.Slider.LargeStep, c.Slider.Step)
	}
	if c.Slider.Orientation != keys.Horizontal && c.Slider.Orientation != keys.Vertical {
		bad("slider.orientation %q", c.Slider.Orientation)
	}
	if c.Virtual.Buffer < 0 {
		bad("virtual.buffer must not be negative, got %g", c.Virtual.Buffer)
	}
	if c.Virtual.ItemHeightHint < 0 {
		bad("virtual.item_height_hint must not be negative, got %g", c.Virtual.ItemHeightHint)
	}
	if overlay.ParsePlacement(c.Menu.Placement).String() != c.Menu.Placement {
		bad("menu.placement %q", c.Menu.Placement)
	}
	return errors.Join(errs...)
}

func validOrientation(o keys.Orientation) bool {
	return o == keys.Horizontal || o == keys.Vertical || o == keys.Both
}

func parseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), s) {
			return d, true
		}
	}
	return 0, false
}

// TypeaheadLocale returns the parsed type-ahead locale, or language.Und.
func (c *Config) TypeaheadLocale() language.Tag {
	tag, err := language.Parse(c.Typeahead.Locale)
	if err != nil {
		return language.Und
	}
	return tag
}

// ListboxOptions returns list Options carrying the configured defaults.
func (c *Config) ListboxOptions() listbox.Options {
	return listbox.Options{
		SelectionMode:    c.Listbox.SelectionMode,
		Orientation:      c.Listbox.Orientation,
		RTL:              c.Listbox.RTL,
		TypeaheadTimeout: c.Typeahead.Timeout,
		Locale:           c.TypeaheadLocale(),
	}
}

// TableOptions returns table Options carrying the configured defaults.
func (c *Config) TableOptions() table.Options {
	return table.Options{SelectionMode: c.Table.SelectionMode}
}

// DatepickerOptions returns date picker Options carrying the configured
// defaults.
func (c *Config) DatepickerOptions() datepicker.Options {
	first, _ := parseWeekday(c.Datepicker.FirstDayOfWeek)
	return datepicker.Options{
		Locale:         c.Datepicker.Locale,
		FirstDayOfWeek: first,
		RTL:            c.Datepicker.RTL,
	}
}

// PINOptions returns PIN Options carrying the configured defaults.
func (c *Config) PINOptions() pin.Options {
	return pin.Options{
		Length:       c.PIN.Length,
		Alphanumeric: c.PIN.Alphanumeric,
		Mask:         c.PIN.Mask,
	}
}

// SliderOptions returns slider Options carrying the configured defaults.
func (c *Config) SliderOptions() slider.Options {
	return slider.Options{
		Min:         c.Slider.Min,
		Max:         c.Slider.Max,
		Step:        c.Slider.Step,
		LargeStep:   c.Slider.LargeStep,
		Value:       c.Slider.Min,
		Orientation: c.Slider.Orientation,
	}
}

// VirtualOptions returns virtual list Options carrying the configured
// defaults.
func (c *Config) VirtualOptions() virtual.Options {
	return virtual.Options{
		Buffer:         c.Virtual.Buffer,
		ItemHeightHint: c.Virtual.ItemHeightHint,
	}
}

// MenuOptions returns menu Options carrying the configured defaults.
func (c *Config) MenuOptions() menu.Options {
	return menu.Options{
		Placement:        overlay.ParsePlacement(c.Menu.Placement),
		Offset:           c.Menu.Offset,
		Flip:             c.Menu.Flip,
		Loop:             c.Menu.Loop,
		TypeaheadTimeout: c.Typeahead.Timeout,
		Locale:           c.TypeaheadLocale(),
	}
}
