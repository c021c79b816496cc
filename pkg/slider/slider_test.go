package slider

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/headless/pkg/dom"
	"github.com/dshills/headless/pkg/keys"
)

var track = dom.Rect{X: 100, Y: 0, Width: 200, Height: 200}

func at(x, y float64) dom.Point { return dom.Point{X: x, Y: y} }

func TestSlider_Defaults(t *testing.T) {
	s := New(Options{Value: 42})
	st := s.State()
	assert.Equal(t, 0.0, st.Min)
	assert.Equal(t, 100.0, st.Max)
	assert.Equal(t, 1.0, st.Step)
	assert.Equal(t, 42.0, st.Value)
	assert.False(t, st.IsRange)
}

func TestSlider_Quantize(t *testing.T) {
	tests := []struct {
		opts Options
		in   float64
		want float64
	}{
		{Options{Min: 0, Max: 1, Step: 0.1}, 0.3333, 0.3},
		{Options{Min: 0, Max: 1, Step: 0.1}, 0.36, 0.4},
		{Options{Min: 0, Max: 100, Step: 5}, 12, 10},
		{Options{Min: 0, Max: 100, Step: 5}, 13, 15},
		{Options{Min: 0, Max: 100, Step: 5}, 500, 100},
		{Options{Min: 10, Max: 20, Step: 3}, 20, 19},
		{Options{Min: -10, Max: 10, Step: 1}, -50, -10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.opts.Step, "/", tt.in), func(t *testing.T) {
			s := New(tt.opts)
			s.SetValue(tt.in)
			assert.InDelta(t, tt.want, s.State().Value, 1e-9)
		})
	}
}

func TestSlider_PercentConversion(t *testing.T) {
	h := New(Options{Min: 0, Max: 200})
	assert.Equal(t, 50.0, h.PercentToValue(25))
	assert.Equal(t, 25.0, h.ValueToPercent(50))
	assert.Equal(t, 200.0, h.PercentToValue(150), "percent is clamped")

	v := New(Options{Min: 0, Max: 200, Orientation: keys.Vertical})
	assert.Equal(t, 200.0, v.PercentToValue(0), "top is max")
	assert.Equal(t, 150.0, v.PercentToValue(25))
	assert.Equal(t, 25.0, v.ValueToPercent(150))
}

func TestSlider_Drag(t *testing.T) {
	var values []float64
	var ended []State
	s := New(Options{
		OnValueChange: func(v float64) { values = append(values, v) },
		OnChangeEnd:   func(st State) { ended = append(ended, st) },
	})

	s.StartDrag(ThumbValue, at(150, 5), track)
	assert.Equal(t, ThumbValue, s.State().DraggingThumb)
	s.Drag(at(250, 5))
	s.Drag(at(1000, 5))
	s.EndDrag()

	assert.Equal(t, []float64{25, 75, 100}, values)
	require.Len(t, ended, 1)
	assert.Equal(t, ThumbNone, ended[0].DraggingThumb)
	assert.Equal(t, 100.0, ended[0].Value)

	s.Drag(at(100, 5))
	assert.Equal(t, 100.0, s.State().Value, "drag after end is ignored")
	s.EndDrag()
	assert.Len(t, ended, 1)
}

func TestSlider_DragOrientation(t *testing.T) {
	rtl := New(Options{RTL: true})
	rtl.StartDrag(ThumbValue, at(150, 0), track)
	assert.Equal(t, 75.0, rtl.State().Value)

	vertical := New(Options{Orientation: keys.Vertical})
	vertical.StartDrag(ThumbValue, at(0, 50), track)
	assert.Equal(t, 75.0, vertical.State().Value, "pointer near the top is near max")
}

func TestSlider_RangeThumbsClampInsteadOfCrossing(t *testing.T) {
	var ranges []Range
	s := New(Options{
		Range:         &Range{Min: 20, Max: 60},
		OnRangeChange: func(r Range) { ranges = append(ranges, r) },
	})

	s.StartDrag(ThumbMin, at(260, 0), track)
	st := s.State()
	assert.Equal(t, st.RangeValue.Max, st.RangeValue.Min)
	assert.Equal(t, Range{Min: 60, Max: 60}, st.RangeValue)
	s.EndDrag()

	s.SetThumbValue(ThumbMax, 10)
	assert.Equal(t, Range{Min: 60, Max: 60}, s.State().RangeValue)
	assert.Equal(t, []Range{{Min: 60, Max: 60}}, ranges)
}

func TestSlider_StartDragPicksNearestThumb(t *testing.T) {
	s := New(Options{Range: &Range{Min: 20, Max: 60}})

	s.StartDrag(ThumbNone, at(280, 0), track)
	assert.Equal(t, ThumbMax, s.State().DraggingThumb)
	assert.Equal(t, Range{Min: 20, Max: 90}, s.State().RangeValue)
	s.EndDrag()

	s.StartDrag(ThumbNone, at(110, 0), track)
	assert.Equal(t, ThumbMin, s.State().DraggingThumb)
	assert.Equal(t, Range{Min: 5, Max: 90}, s.State().RangeValue)
}

func TestSlider_SetRangeOrders(t *testing.T) {
	s := New(Options{Range: &Range{Min: 80, Max: 10}})
	assert.Equal(t, Range{Min: 10, Max: 80}, s.State().RangeValue)

	s.SetRange(70, 30)
	assert.Equal(t, Range{Min: 30, Max: 70}, s.State().RangeValue)
}

func TestSlider_Keyboard(t *testing.T) {
	tests := []struct {
		key  string
		rtl  bool
		want float64
	}{
		{keys.ArrowRight, false, 51},
		{keys.ArrowUp, false, 51},
		{keys.ArrowLeft, false, 49},
		{keys.ArrowDown, false, 49},
		{keys.ArrowRight, true, 49},
		{keys.ArrowLeft, true, 51},
		{keys.PageUp, false, 60},
		{keys.PageDown, false, 40},
		{keys.Home, false, 0},
		{keys.End, false, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.key, " rtl=", tt.rtl), func(t *testing.T) {
			s := New(Options{Value: 50, RTL: tt.rtl})
			e := keys.New(tt.key)
			require.True(t, s.HandleKeyDown(ThumbValue, e))
			assert.True(t, e.DefaultPrevented())
			assert.Equal(t, tt.want, s.State().Value)
		})
	}

	s := New(Options{Value: 50})
	assert.False(t, s.HandleKeyDown(ThumbValue, keys.New(keys.Tab)))
	assert.False(t, s.HandleKeyDown(ThumbValue, keys.MustParse("Ctrl+ArrowRight")))
}

func TestSlider_RangeKeyboardStopsAtOtherThumb(t *testing.T) {
	s := New(Options{Range: &Range{Min: 20, Max: 60}})

	s.HandleKeyDown(ThumbMin, keys.New(keys.End))
	assert.Equal(t, Range{Min: 60, Max: 60}, s.State().RangeValue)

	s.HandleKeyDown(ThumbMax, keys.New(keys.Home))
	assert.Equal(t, Range{Min: 60, Max: 60}, s.State().RangeValue)

	s.HandleKeyDown(ThumbMax, keys.New(keys.PageUp))
	assert.Equal(t, Range{Min: 60, Max: 70}, s.State().RangeValue)
}

func TestSlider_RangeKeyboardNeedsThumb(t *testing.T) {
	ended := 0
	s := New(Options{Range: &Range{Min: 20, Max: 80}, OnChangeEnd: func(State) { ended++ }})

	for _, thumb := range []Thumb{ThumbNone, ThumbValue} {
		e := keys.New(keys.ArrowRight)
		assert.False(t, s.HandleKeyDown(thumb, e), thumb)
		assert.False(t, e.DefaultPrevented())
	}
	assert.Equal(t, Range{Min: 20, Max: 80}, s.State().RangeValue)
	assert.Zero(t, ended)

	require.True(t, s.HandleKeyDown(ThumbMin, keys.New(keys.ArrowRight)))
	assert.Equal(t, Range{Min: 21, Max: 80}, s.State().RangeValue)
	assert.Equal(t, 1, ended)
}

func TestSlider_Disabled(t *testing.T) {
	s := New(Options{Value: 10, Disabled: true})

	s.SetValue(20)
	s.StartDrag(ThumbValue, at(300, 0), track)
	assert.False(t, s.HandleKeyDown(ThumbValue, keys.New(keys.End)))
	assert.Equal(t, 10.0, s.State().Value)
	assert.Equal(t, -1, s.ThumbProps(ThumbValue)["tabIndex"])

	s.SetDisabled(false)
	s.SetValue(20)
	assert.Equal(t, 20.0, s.State().Value)
}

func TestSlider_ThumbProps(t *testing.T) {
	single := New(Options{ID: "vol", Value: 30, Label: "Volume", ValueText: func(v float64) string {
		return fmt.Sprintf("%.0f%%", v)
	}})
	p := single.ThumbProps(ThumbValue)
	assert.Equal(t, "vol-thumb", p["id"])
	assert.Equal(t, "slider", p["role"])
	assert.Equal(t, "0", p["aria-valuemin"])
	assert.Equal(t, "100", p["aria-valuemax"])
	assert.Equal(t, "30", p["aria-valuenow"])
	assert.Equal(t, "30%", p["aria-valuetext"])
	assert.Equal(t, "Volume", p["aria-label"])
	assert.NotContains(t, p, "aria-controls")

	r := New(Options{ID: "price", Range: &Range{Min: 20, Max: 60}})
	lo := r.ThumbProps(ThumbMin)
	assert.Equal(t, "0", lo["aria-valuemin"])
	assert.Equal(t, "60", lo["aria-valuemax"], "min thumb stops at the max thumb")
	assert.Equal(t, "20", lo["aria-valuenow"])
	assert.Equal(t, "price-thumb-max", lo["aria-controls"])
	assert.Equal(t, "Minimum", lo["aria-label"])

	hi := r.ThumbProps(ThumbMax)
	assert.Equal(t, "20", hi["aria-valuemin"], "max thumb starts at the min thumb")
	assert.Equal(t, "100", hi["aria-valuemax"])
	assert.Equal(t, "price-thumb-min", hi["aria-controls"])

	assert.Equal(t, "horizontal", r.TrackProps()["data-orientation"])
}

func TestSlider_SetValueFromChangeCallback(t *testing.T) {
	var s *Slider
	var values []float64
	var ended []float64
	s = New(Options{
		Value: 10,
		OnValueChange: func(v float64) {
			values = append(values, v)
			if v > 50 {
				s.SetValue(50)
			}
		},
		OnChangeEnd: func(st State) { ended = append(ended, st.Value) },
	})

	require.True(t, s.HandleKeyDown(ThumbValue, keys.New(keys.End)))
	assert.Equal(t, 50.0, s.State().Value)
	assert.Equal(t, []float64{100, 50}, values)
	assert.Equal(t, []float64{50}, ended)

	s.SetValue(30)
	assert.Equal(t, 30.0, s.State().Value)
	assert.Equal(t, []float64{100, 50, 30}, values)
}

func TestSlider_SetRangeFromRangeCallback(t *testing.T) {
	var s *Slider
	calls := 0
	s = New(Options{
		Range: &Range{Min: 20, Max: 80},
		OnRangeChange: func(r Range) {
			calls++
			if r.Max-r.Min < 10 {
				s.SetRange(r.Min, r.Min+10)
			}
		},
	})

	s.SetThumbValue(ThumbMax, 22)
	assert.Equal(t, Range{Min: 20, Max: 30}, s.State().RangeValue)
	assert.Equal(t, 2, calls)
}
