package scenario

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/keys"
	"github.com/dshills/headless/pkg/timer"
)

// driver applies actions to one behavior and exposes its state.
type driver interface {
	do(st Step) error
	snapshot() any
	close()
}

// env is what a driver is built from.
type env struct {
	cfg    *config.Config
	clock  *timer.Manual
	now    time.Time
	logger *zap.Logger
}

type widget struct {
	actions map[string]bool
	build   func(e *env, sc *Scenario) (driver, error)
}

func newWidget(build func(*env, *Scenario) (driver, error), actions ...string) widget {
	w := widget{actions: make(map[string]bool, len(actions)), build: build}
	for _, a := range actions {
		w.actions[a] = true
	}
	return w
}

var widgets map[string]widget

func init() {
	widgets = map[string]widget{
		"listbox": newWidget(newListboxDriver,
			"key", "select", "deselect", "toggle", "select-all", "clear", "focus"),
		"table": newWidget(newTableDriver,
			"click-column", "sort", "clear-sort", "select", "deselect", "toggle", "select-all", "toggle-all", "clear"),
		"pin": newWidget(newPINDriver,
			"key", "input", "backspace", "delete", "paste", "clear", "focus", "disable", "enable"),
		"slider": newWidget(newSliderDriver,
			"key", "set", "drag", "disable", "enable"),
		"datepicker": newWidget(newDatepickerDriver,
			"key", "open", "close", "toggle", "select", "focus", "clear", "next-month", "previous-month", "next-year", "previous-year"),
		"virtual": newWidget(newVirtualDriver,
			"scroll", "scroll-to", "resize", "unregister", "refresh"),
		"menu": newWidget(newMenuDriver,
			"key", "trigger-key", "open", "close", "toggle", "select", "click", "focus", "dismiss"),
	}
}

// Widgets returns the supported widget names.
func Widgets() []string {
	return []string{"listbox", "table", "pin", "slider", "datepicker", "virtual", "menu"}
}

// Actions returns the sorted actions a widget accepts besides advance.
func Actions(widgetName string) []string {
	w, ok := widgets[widgetName]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(w.actions))
	for a := range w.actions {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// decodeOptions decodes the scenario options over out, which the caller
// fills with configured defaults first.
func decodeOptions(sc *Scenario, out any) error {
	if sc.Options.Kind == 0 {
		return nil
	}
	if err := sc.Options.Decode(out); err != nil {
		return fmt.Errorf("%w: options: %v", ErrInvalidScenario, err)
	}
	return nil
}

func (st Step) keyEvent() (*keys.Event, error) {
	e, err := keys.Parse(st.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrInvalidScenario, err)
	}
	return e, nil
}

func unsupported(st Step) error {
	return fmt.Errorf("%w: %q", ErrUnknownAction, st.Do)
}
