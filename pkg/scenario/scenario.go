// Package scenario drives behaviors from YAML documents: a widget, its
// options, the items it manages and an ordered list of steps mixing actions
// with expectations about the resulting state.
//
// A scenario looks like this:
//
//	name: arrow through a list
//	widget: listbox
//	items:
//	  - {id: a, label: Apple}
//	  - {id: b, label: Banana}
//	steps:
//	  - {do: key, key: ArrowDown}
//	  - expect: focusedId == "a"
//	  - {path: selectedIds.#, equals: 0}
//
// Expectations are either boolean expr expressions over the state snapshot
// or gjson paths compared against a value. Time only moves through explicit
// advance steps.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Sentinel errors.
var (
	ErrInvalidScenario   = errors.New("invalid scenario")
	ErrUnknownWidget     = errors.New("unknown widget")
	ErrUnknownAction     = errors.New("unknown action")
	ErrExpectationFailed = errors.New("expectation failed")
)

// ActionAdvance moves the manual clock and is available to every widget.
const ActionAdvance = "advance"

// Scenario is a parsed scenario document.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Widget      string `yaml:"widget"`
	// Now fixes "today" for date pickers; RFC 3339 or YYYY-MM-DD.
	Now string `yaml:"now,omitempty"`
	// Options is decoded by the widget driver over the configured defaults.
	Options yaml.Node `yaml:"options,omitempty"`
	Items   []Item    `yaml:"items,omitempty"`
	Steps   []Step    `yaml:"steps"`
}

// Item is an entry managed by the widget: a list option, table row, menu
// item or virtual list row.
type Item struct {
	ID       string         `yaml:"id"`
	Label    string         `yaml:"label,omitempty"`
	Disabled bool           `yaml:"disabled,omitempty"`
	Height   float64        `yaml:"height,omitempty"`
	Fields   map[string]any `yaml:"fields,omitempty"`
}

// Text returns the label, or the id when there is none.
func (it Item) Text() string {
	if it.Label == "" {
		return it.ID
	}
	return it.Label
}

// Step is either an action (Do) or an expectation (Expect, or Path with
// Equals). Which of the argument fields an action reads depends on the
// widget.
type Step struct {
	Do       string        `yaml:"do,omitempty"`
	Key      string        `yaml:"key,omitempty"`
	ID       string        `yaml:"id,omitempty"`
	Index    int           `yaml:"index,omitempty"`
	Text     string        `yaml:"text,omitempty"`
	Value    float64       `yaml:"value,omitempty"`
	Thumb    string        `yaml:"thumb,omitempty"`
	Percent  []float64     `yaml:"percent,omitempty"`
	Date     string        `yaml:"date,omitempty"`
	Column   string        `yaml:"column,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`

	Expect string `yaml:"expect,omitempty"`
	Path   string `yaml:"path,omitempty"`
	Equals any    `yaml:"equals,omitempty"`
}

// Kind returns "action" or "expect".
func (s Step) Kind() string {
	if s.Do != "" {
		return "action"
	}
	return "expect"
}

// Label names the step in logs and errors.
func (s Step) Label() string {
	switch {
	case s.Do != "":
		return s.Do
	case s.Expect != "":
		return "expect"
	default:
		return "expect path"
	}
}

// LoadFile reads, schema-validates and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Load schema-validates and parses a scenario document.
func Load(data []byte) (*Scenario, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scenario and checks it semantically: known widget, actions
// the widget supports, parseable keys, dates and expressions. It does not
// apply the JSON schema; Load does both.
func Parse(data []byte) (*Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}
