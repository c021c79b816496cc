package scenario

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"

	"github.com/dshills/headless/pkg/keys"
)

// Validate checks what the schema cannot: the widget exists, each step is
// exactly one of action or expectation, actions belong to the widget and
// their arguments parse.
func (sc *Scenario) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(sc.Name) == "" {
		bad("%w: missing required field: name", ErrInvalidScenario)
	}
	w, ok := widgets[sc.Widget]
	if !ok {
		bad("%w: %q", ErrUnknownWidget, sc.Widget)
	}
	if sc.Now != "" {
		if _, err := parseDate(sc.Now); err != nil {
			bad("%w: now: %v", ErrInvalidScenario, err)
		}
	}
	seen := make(map[string]bool, len(sc.Items))
	for i, it := range sc.Items {
		if it.ID == "" {
			bad("%w: item %d: missing id", ErrInvalidScenario, i)
		} else if !validID(it.ID) {
			bad("%w: item %d: id %q may only hold letters, digits, '-' and '_'", ErrInvalidScenario, i, it.ID)
		} else if seen[it.ID] {
			bad("%w: item %d: duplicate id %q", ErrInvalidScenario, i, it.ID)
		}
		seen[it.ID] = true
	}
	if len(sc.Steps) == 0 {
		bad("%w: no steps", ErrInvalidScenario)
	}

	for i, st := range sc.Steps {
		kinds := 0
		for _, set := range []bool{st.Do != "", st.Expect != "", st.Path != ""} {
			if set {
				kinds++
			}
		}
		if kinds != 1 {
			bad("%w: step %d: exactly one of do, expect or path is required", ErrInvalidScenario, i)
			continue
		}
		switch {
		case st.Expect != "":
			if _, err := expr.Compile(st.Expect, expr.AllowUndefinedVariables()); err != nil {
				bad("%w: step %d: expect: %v", ErrInvalidScenario, i, err)
			}
		case st.Path != "":
			if st.Equals == nil {
				bad("%w: step %d: path %q needs equals", ErrInvalidScenario, i, st.Path)
			}
		default:
			if err := validateAction(w, ok, st); err != nil {
				bad("step %d: %w", i, err)
			}
		}
	}
	return errors.Join(errs...)
}

func validateAction(w widget, known bool, st Step) error {
	if st.Do == ActionAdvance {
		if st.Duration <= 0 {
			return fmt.Errorf("%w: advance needs a positive duration", ErrInvalidScenario)
		}
		return nil
	}
	if known && !w.actions[st.Do] {
		return fmt.Errorf("%w: %q", ErrUnknownAction, st.Do)
	}
	if st.Key != "" {
		if _, err := keys.Parse(st.Key); err != nil {
			return fmt.Errorf("%w: key: %v", ErrInvalidScenario, err)
		}
	} else if st.Do == "key" || st.Do == "trigger-key" {
		return fmt.Errorf("%w: %s needs a key", ErrInvalidScenario, st.Do)
	}
	if st.Date != "" {
		if _, err := parseDate(st.Date); err != nil {
			return fmt.Errorf("%w: date: %v", ErrInvalidScenario, err)
		}
	}
	return nil
}

// validID reports whether id is usable as an element id and a gjson path
// segment: non-empty ASCII letters, digits, hyphens and underscores.
func validID(id string) bool {
	if id == "" {
		return false
	}
	for _, ch := range id {
		if !(ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' || ch == '-' || ch == '_') {
			return false
		}
	}
	return true
}

// parseDate accepts YYYY-MM-DD or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
