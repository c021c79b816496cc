// Package slider implements single and dual-thumb numeric sliders.
//
// Every value is clamped to [Min, Max] and quantized to Step. In range mode
// the thumbs never cross: moving one past the other clamps it to the other's
// value.
package slider

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/aria"
	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/idgen"
	"github.com/dshills/headless/pkg/keys"
)

// Thumb names a slider handle.
type Thumb string

const (
	ThumbNone  Thumb = ""
	ThumbValue Thumb = "value"
	ThumbMin   Thumb = "min"
	ThumbMax   Thumb = "max"
)

// Range is the value of a dual-thumb slider. Min never exceeds Max.
type Range struct {
	Min float64 `json:"min" msgpack:"min"`
	Max float64 `json:"max" msgpack:"max"`
}

// Options configures a Slider. Setting Range selects range mode.
type Options struct {
	ID        string
	Min       float64
	Max       float64
	Step      float64
	LargeStep float64
	Value     float64
	Range     *Range

	Orientation keys.Orientation
	RTL         bool
	Disabled    bool
	Label       string
	// ValueText formats aria-valuetext. Nil omits it.
	ValueText func(v float64) string

	OnValueChange func(v float64)
	OnRangeChange func(r Range)
	// OnChangeEnd fires when a drag ends or a keyboard change lands.
	OnChangeEnd func(s State)

	IDs    idgen.Generator
	Logger *zap.Logger
}

// State is the slider snapshot.
type State struct {
	Value         float64 `json:"value" msgpack:"value"`
	RangeValue    Range   `json:"rangeValue" msgpack:"rangeValue"`
	IsRange       bool    `json:"isRange" msgpack:"isRange"`
	Min           float64 `json:"min" msgpack:"min"`
	Max           float64 `json:"max" msgpack:"max"`
	Step          float64 `json:"step" msgpack:"step"`
	DraggingThumb Thumb   `json:"draggingThumb" msgpack:"draggingThumb"`
	Disabled      bool    `json:"disabled" msgpack:"disabled"`
}

// Slider is the slider behavior.
type Slider struct {
	opts      Options
	id        string
	precision int
	logger    *zap.Logger

	mu    sync.Mutex
	state State
	track dom.Rect
}

// New creates a Slider. Zero Min and Max mean 0..100, zero Step means 1 and
// zero LargeStep means ten steps.
func New(opts Options) *Slider {
	if opts.Min == 0 && opts.Max == 0 {
		opts.Max = 100
	}
	if opts.Max < opts.Min {
		opts.Min, opts.Max = opts.Max, opts.Min
	}
	if opts.Step <= 0 {
		opts.Step = 1
	}
	if opts.LargeStep <= 0 {
		opts.LargeStep = opts.Step * 10
	}
	opts.Orientation = opts.Orientation.OrDefault(keys.Horizontal)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := opts.ID
	if id == "" {
		id = idgen.OrSequence(opts.IDs, "slider").Next()
	}

	s := &Slider{
		opts:      opts,
		id:        id,
		precision: decimals(opts.Step),
		logger:    logger.Named("slider"),
	}
	s.state = State{
		Min:      opts.Min,
		Max:      opts.Max,
		Step:     opts.Step,
		Disabled: opts.Disabled,
		Value:    s.quantize(opts.Value),
	}
	if opts.Range != nil {
		lo, hi := s.quantize(opts.Range.Min), s.quantize(opts.Range.Max)
		if lo > hi {
			lo, hi = hi, lo
		}
		s.state.IsRange = true
		s.state.RangeValue = Range{Min: lo, Max: hi}
		s.state.Value = lo
	}
	return s
}

// decimals counts the fractional digits of step so quantized values carry no
// float noise.
func decimals(step float64) int {
	str := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(str, '.'); i >= 0 {
		return len(str) - i - 1
	}
	return 0
}

// quantize clamps v to the bounds and snaps it to the step grid anchored at
// Min.
func (s *Slider) quantize(v float64) float64 {
	lo, hi, step := s.opts.Min, s.opts.Max, s.opts.Step
	v = math.Max(lo, math.Min(hi, v))
	v = lo + math.Round((v-lo)/step)*step
	scale := math.Pow(10, float64(s.precision))
	v = math.Round(v*scale) / scale
	return math.Max(lo, math.Min(hi, v))
}

// ID returns the slider id. Thumb ids derive from it.
func (s *Slider) ID() string { return s.id }

// ThumbID returns the element id of a thumb.
func (s *Slider) ThumbID(t Thumb) string {
	if t == ThumbNone || t == ThumbValue {
		return s.id + "-thumb"
	}
	return s.id + "-thumb-" + string(t)
}

// State returns the current snapshot.
func (s *Slider) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// PercentToValue maps a track percentage to a value. Vertical sliders put
// Max at the top, so percent 0 maps to Max.
func (s *Slider) PercentToValue(percent float64) float64 {
	percent = math.Max(0, math.Min(100, percent))
	if s.opts.Orientation == keys.Vertical {
		percent = 100 - percent
	}
	return s.opts.Min + (s.opts.Max-s.opts.Min)*percent/100
}

// ValueToPercent is the inverse of PercentToValue.
func (s *Slider) ValueToPercent(v float64) float64 {
	span := s.opts.Max - s.opts.Min
	if span == 0 {
		return 0
	}
	percent := (v - s.opts.Min) / span * 100
	percent = math.Max(0, math.Min(100, percent))
	if s.opts.Orientation == keys.Vertical {
		percent = 100 - percent
	}
	return percent
}

// pointerPercent measures p along the track from its leading edge: left, or
// right in RTL, for horizontal tracks and top for vertical ones.
func (s *Slider) pointerPercent(p dom.Point, track dom.Rect) float64 {
	var percent float64
	if s.opts.Orientation == keys.Vertical {
		if track.Height <= 0 {
			return 0
		}
		percent = (p.Y - track.Y) / track.Height * 100
	} else {
		if track.Width <= 0 {
			return 0
		}
		percent = (p.X - track.X) / track.Width * 100
		if s.opts.RTL {
			percent = 100 - percent
		}
	}
	return math.Max(0, math.Min(100, percent))
}

// SetValue sets the single-thumb value.
func (s *Slider) SetValue(v float64) { s.SetThumbValue(ThumbValue, v) }

// SetRange sets both thumbs. A reversed pair is swapped.
func (s *Slider) SetRange(lo, hi float64) {
	if s.reject("set range") {
		return
	}
	lo, hi = s.quantize(lo), s.quantize(hi)
	if lo > hi {
		lo, hi = hi, lo
	}
	s.commit(func(st *State) {
		st.RangeValue = Range{Min: lo, Max: hi}
	})
}

// SetThumbValue sets one thumb, clamped so range thumbs never cross.
func (s *Slider) SetThumbValue(t Thumb, v float64) {
	if s.reject("set value") {
		return
	}
	v = s.quantize(v)
	s.commit(func(st *State) {
		if !st.IsRange {
			st.Value = v
			return
		}
		switch t {
		case ThumbMin:
			st.RangeValue.Min = math.Min(v, st.RangeValue.Max)
		case ThumbMax:
			st.RangeValue.Max = math.Max(v, st.RangeValue.Min)
		}
	})
}

// ThumbValue returns the current value of a thumb.
func (s *Slider) ThumbValue(t Thumb) float64 {
	st := s.State()
	return thumbValue(st, t)
}

func thumbValue(st State, t Thumb) float64 {
	if !st.IsRange {
		return st.Value
	}
	if t == ThumbMax {
		return st.RangeValue.Max
	}
	return st.RangeValue.Min
}

// Increment raises a thumb by one step.
func (s *Slider) Increment(t Thumb) { s.stepBy(t, s.opts.Step) }

// Decrement lowers a thumb by one step.
func (s *Slider) Decrement(t Thumb) { s.stepBy(t, -s.opts.Step) }

// IncrementLarge raises a thumb by the large step.
func (s *Slider) IncrementLarge(t Thumb) { s.stepBy(t, s.opts.LargeStep) }

// DecrementLarge lowers a thumb by the large step.
func (s *Slider) DecrementLarge(t Thumb) { s.stepBy(t, -s.opts.LargeStep) }

// SetToMin moves a thumb to its lowest reachable value.
func (s *Slider) SetToMin(t Thumb) { s.SetThumbValue(t, s.opts.Min) }

// SetToMax moves a thumb to its highest reachable value.
func (s *Slider) SetToMax(t Thumb) { s.SetThumbValue(t, s.opts.Max) }

func (s *Slider) stepBy(t Thumb, delta float64) {
	s.SetThumbValue(t, s.ThumbValue(t)+delta)
}

// StartDrag begins dragging at pointer p over the track rectangle. In range
// mode ThumbNone picks the thumb nearest the pointer.
func (s *Slider) StartDrag(t Thumb, p dom.Point, track dom.Rect) {
	if s.reject("start drag") {
		return
	}
	v := s.quantize(s.PercentToValue(s.pointerPercent(p, track)))
	s.mu.Lock()
	st := s.state
	if !st.IsRange {
		t = ThumbValue
	} else if t != ThumbMin && t != ThumbMax {
		t = ThumbMin
		if math.Abs(v-st.RangeValue.Max) < math.Abs(v-st.RangeValue.Min) ||
			(v > st.RangeValue.Max && st.RangeValue.Min == st.RangeValue.Max) {
			t = ThumbMax
		}
	}
	s.state.DraggingThumb = t
	s.track = track
	s.mu.Unlock()

	s.logger.Debug("drag start", zap.String("thumb", string(t)))
	s.SetThumbValue(t, v)
}

// Drag moves the dragged thumb to pointer p. It is ignored when no drag is
// in progress.
func (s *Slider) Drag(p dom.Point) {
	s.mu.Lock()
	t, track := s.state.DraggingThumb, s.track
	s.mu.Unlock()
	if t == ThumbNone {
		s.logger.Debug("drag ignored", zap.String("reason", "not dragging"))
		return
	}
	s.SetThumbValue(t, s.PercentToValue(s.pointerPercent(p, track)))
}

// EndDrag finishes the drag and fires OnChangeEnd.
func (s *Slider) EndDrag() {
	s.mu.Lock()
	was := s.state.DraggingThumb
	s.state.DraggingThumb = ThumbNone
	st := s.state
	s.mu.Unlock()
	if was == ThumbNone {
		return
	}
	s.logger.Debug("drag end", zap.String("thumb", string(was)))
	s.changeEnd(st)
}

// HandleKeyDown adjusts a thumb: ArrowRight/ArrowUp step up, ArrowLeft and
// ArrowDown step down (horizontal arrows mirror in RTL), PageUp/PageDown use
// the large step and Home/End jump to the bounds.
func (s *Slider) HandleKeyDown(t Thumb, e *keys.Event) bool {
	st := s.State()
	if e.HasModifier() || st.Disabled {
		return false
	}
	if st.IsRange && t != ThumbMin && t != ThumbMax {
		s.logger.Debug("key ignored", zap.String("thumb", string(t)), zap.String("reason", "range slider needs min or max thumb"))
		return false
	}
	switch e.Key {
	case keys.ArrowUp:
		s.Increment(t)
	case keys.ArrowDown:
		s.Decrement(t)
	case keys.PageUp:
		s.IncrementLarge(t)
	case keys.PageDown:
		s.DecrementLarge(t)
	default:
		switch keys.MapArrow(e.Key, keys.Horizontal, s.opts.RTL) {
		case keys.MoveNext:
			s.Increment(t)
		case keys.MovePrevious:
			s.Decrement(t)
		case keys.MoveFirst:
			s.SetToMin(t)
		case keys.MoveLast:
			s.SetToMax(t)
		default:
			return false
		}
	}
	e.PreventDefault()
	s.changeEnd(s.State())
	return true
}

// SetDisabled toggles the disabled state. Disabling ends a drag.
func (s *Slider) SetDisabled(disabled bool) {
	s.mu.Lock()
	s.state.Disabled = disabled
	if disabled {
		s.state.DraggingThumb = ThumbNone
	}
	s.mu.Unlock()
}

func (s *Slider) reject(op string) bool {
	if s.State().Disabled {
		s.logger.Debug(op+" ignored", zap.String("reason", "disabled"))
		return true
	}
	return false
}

// commit applies fn to a copy of the state, installs it and fires the change
// callback when the value moved.
func (s *Slider) commit(fn func(st *State)) {
	s.mu.Lock()
	prev := s.state
	next := prev
	fn(&next)
	s.state = next
	s.mu.Unlock()

	if next.IsRange {
		if next.RangeValue != prev.RangeValue {
			s.logger.Debug("range", zap.Float64("min", next.RangeValue.Min), zap.Float64("max", next.RangeValue.Max))
			if s.opts.OnRangeChange != nil {
				s.opts.OnRangeChange(next.RangeValue)
			}
		}
		return
	}
	if next.Value != prev.Value {
		s.logger.Debug("value", zap.Float64("value", next.Value))
		if s.opts.OnValueChange != nil {
			s.opts.OnValueChange(next.Value)
		}
	}
}

func (s *Slider) changeEnd(st State) {
	if s.opts.OnChangeEnd != nil {
		s.opts.OnChangeEnd(st)
	}
}

// ThumbProps returns the attributes for a thumb. In range mode each thumb's
// bounds stop at the other thumb and aria-controls points at it.
func (s *Slider) ThumbProps(t Thumb) aria.Props {
	st := s.State()
	lo, hi := st.Min, st.Max
	label := s.opts.Label
	if st.IsRange {
		if t != ThumbMax {
			t = ThumbMin
		}
		if t == ThumbMin {
			hi = st.RangeValue.Max
		} else {
			lo = st.RangeValue.Min
		}
		if label == "" {
			label = map[Thumb]string{ThumbMin: "Minimum", ThumbMax: "Maximum"}[t]
		}
	} else {
		t = ThumbValue
	}
	now := thumbValue(st, t)

	p := aria.Props{
		"id":               s.ThumbID(t),
		"role":             "slider",
		"tabIndex":         0,
		"aria-valuemin":    aria.Number(lo),
		"aria-valuemax":    aria.Number(hi),
		"aria-valuenow":    aria.Number(now),
		"aria-orientation": string(s.opts.Orientation),
		"data-percent":     aria.Number(s.ValueToPercent(now)),
	}
	if label != "" {
		p["aria-label"] = label
	}
	if s.opts.ValueText != nil {
		p["aria-valuetext"] = s.opts.ValueText(now)
	}
	if st.IsRange {
		other := ThumbMax
		if t == ThumbMax {
			other = ThumbMin
		}
		p["aria-controls"] = s.ThumbID(other)
	}
	if st.Disabled {
		p["aria-disabled"] = "true"
		p["tabIndex"] = -1
	}
	if st.DraggingThumb == t {
		p["data-dragging"] = "true"
	}
	return p
}

// TrackProps returns the attributes for the track element.
func (s *Slider) TrackProps() aria.Props {
	st := s.State()
	p := aria.Props{
		"id":               s.id + "-track",
		"data-orientation": string(s.opts.Orientation),
	}
	if st.Disabled {
		p["data-disabled"] = "true"
	}
	return p
}

// Destroy ends any drag in progress.
func (s *Slider) Destroy() {
	s.mu.Lock()
	s.state.DraggingThumb = ThumbNone
	s.track = dom.Rect{}
	s.mu.Unlock()
}
