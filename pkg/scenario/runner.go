package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/expr-lang/expr"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/config"
	herrors "github.com/dshills/headless/pkg/errors"
	"github.com/dshills/headless/pkg/snapshot"
	"github.com/dshills/headless/pkg/timer"
)

// RunOptions configures Run.
type RunOptions struct {
	// Config supplies behavior defaults; nil uses config.Default().
	Config *config.Config
	Logger *zap.Logger
}

// Result summarizes a passing run.
type Result struct {
	Name         string         `json:"name"`
	Widget       string         `json:"widget"`
	Actions      int            `json:"actions"`
	Expectations int            `json:"expectations"`
	Elapsed      time.Duration  `json:"elapsed"`
	Final        map[string]any `json:"final"`
}

// Run executes the steps of sc in order and stops at the first failing step.
// Step failures are *errors.StepError values wrapping ErrExpectationFailed,
// ErrUnknownAction or ErrInvalidScenario. The context is checked between
// steps.
func Run(ctx context.Context, sc *Scenario, opts RunOptions) (*Result, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scenario").With(zap.String("scenario", sc.Name))

	w, ok := widgets[sc.Widget]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, sc.Widget)
	}
	e := &env{cfg: opts.Config, clock: timer.NewManual(), now: time.Now(), logger: logger}
	if sc.Now != "" {
		now, err := parseDate(sc.Now)
		if err != nil {
			return nil, fmt.Errorf("%w: now: %v", ErrInvalidScenario, err)
		}
		e.now = now
	}
	d, err := w.build(e, sc)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", sc.Widget, err)
	}
	defer d.close()

	res := &Result{Name: sc.Name, Widget: sc.Widget}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Debug("step", zap.Int("index", i), zap.String("step", st.Label()))

		var stepErr error
		switch {
		case st.Do == ActionAdvance:
			e.clock.Advance(st.Duration)
			res.Actions++
		case st.Do != "":
			stepErr = d.do(st)
			res.Actions++
		default:
			stepErr = expect(st, d.snapshot())
			res.Expectations++
		}
		if stepErr != nil {
			logger.Debug("step failed", zap.Int("index", i), zap.Error(stepErr))
			return nil, herrors.NewStepErrorWithAttrs(sc.Name, i, st.Label(), stepErr, map[string]any{"widget": sc.Widget})
		}
	}

	res.Elapsed = e.clock.Elapsed()
	if res.Final, err = snapshot.ToMap(d.snapshot()); err != nil {
		return nil, err
	}
	return res, nil
}

// expect evaluates one expectation against a state snapshot.
func expect(st Step, state any) error {
	data, err := snapshot.Encode(state, snapshot.FormatJSON)
	if err != nil {
		return err
	}
	if st.Expect != "" {
		return expectExpr(st.Expect, data)
	}
	return expectPath(st.Path, st.Equals, data)
}

// expectExpr evaluates a boolean expression. Top-level state fields are
// variables, and the whole snapshot is also available as "state".
func expectExpr(expression string, data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	env := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		env[k] = v
	}
	env["state"] = fields

	program, err := expr.Compile(expression, expr.Env(env), expr.AsBool())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExpectationFailed, expression, err)
	}
	if ok, _ := out.(bool); !ok {
		return fmt.Errorf("%w: %s (state %s)", ErrExpectationFailed, expression, data)
	}
	return nil
}

// expectPath compares the gjson path result with want after normalizing want
// through JSON, so YAML ints and JSON numbers compare equal.
func expectPath(path string, want any, data []byte) error {
	got := gjson.GetBytes(data, path)
	if !got.Exists() {
		return fmt.Errorf("%w: path %q not found in %s", ErrExpectationFailed, path, data)
	}
	raw, err := json.Marshal(want)
	if err != nil {
		return fmt.Errorf("%w: equals: %v", ErrInvalidScenario, err)
	}
	var norm any
	if err := json.Unmarshal(raw, &norm); err != nil {
		return fmt.Errorf("%w: equals: %v", ErrInvalidScenario, err)
	}
	if !reflect.DeepEqual(got.Value(), norm) {
		return fmt.Errorf("%w: %s = %s, want %s", ErrExpectationFailed, path, got.Raw, raw)
	}
	return nil
}
