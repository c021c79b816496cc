package datepicker

import (
	"time"

	"github.com/dshills/headless/pkg/aria"
	"github.com/dshills/headless/pkg/keys"
)

// HandleKeyDown navigates the open grid. Arrows move by day (mirrored in RTL)
// and week, Home/End go to the week bounds, PageUp/PageDown change month
// (with Shift, year), Enter and Space select the focused day and Escape
// closes. It reports whether the key was handled.
func (d *DatePicker) HandleKeyDown(e *keys.Event) bool {
	if !d.State().Open || e.IsCommand() || e.Alt {
		return false
	}
	switch e.Key {
	case keys.ArrowUp:
		d.FocusPreviousWeek()
	case keys.ArrowDown:
		d.FocusNextWeek()
	case keys.PageUp:
		if e.Shift {
			d.FocusPreviousYear()
		} else {
			d.FocusPreviousMonth()
		}
	case keys.PageDown:
		if e.Shift {
			d.FocusNextYear()
		} else {
			d.FocusNextMonth()
		}
	case keys.Escape:
		d.Close()
	default:
		if keys.HandleActivation(e, keys.PreventAlways, func(string, *keys.Event) {
			d.SelectDate(d.State().FocusedDate)
		}) {
			return true
		}
		switch keys.MapArrow(e.Key, keys.Horizontal, d.opts.RTL) {
		case keys.MoveNext:
			d.FocusNextDay()
		case keys.MovePrevious:
			d.FocusPreviousDay()
		case keys.MoveFirst:
			d.FocusStartOfWeek()
		case keys.MoveLast:
			d.FocusEndOfWeek()
		default:
			return false
		}
	}
	e.PreventDefault()
	return true
}

// TriggerProps returns the attributes for the button that opens the grid.
func (d *DatePicker) TriggerProps() aria.Props {
	s := d.State()
	p := aria.Props{
		"id":            d.id + "-trigger",
		"aria-haspopup": "dialog",
		"aria-expanded": aria.Bool(s.Open),
		"aria-controls": d.id,
	}
	if d.opts.Disabled {
		p["disabled"] = true
	}
	return p
}

// GridProps returns the attributes for the calendar grid.
func (d *DatePicker) GridProps() aria.Props {
	s := d.State()
	p := aria.Props{
		"id":              d.id,
		"role":            "grid",
		"aria-label":      d.MonthName(s.ViewingMonth.Month()) + " " + s.ViewingMonth.Format("2006"),
		"aria-labelledby": d.id + "-heading",
	}
	if d.opts.Mode == ModeRange {
		p["aria-multiselectable"] = "true"
	}
	if d.opts.ReadOnly {
		p["aria-readonly"] = "true"
	}
	if d.opts.Disabled {
		p["aria-disabled"] = "true"
	}
	return p
}

// DayProps returns the attributes for one grid cell. Only the focused day is
// a tab stop.
func (d *DatePicker) DayProps(date time.Time) aria.Props {
	s := d.State()
	p := aria.Props{
		"role":          "gridcell",
		"tabIndex":      -1,
		"aria-selected": aria.Bool(d.IsSelected(date) || d.IsInRange(date)),
		"aria-label":    d.FormatDate(date, ""),
		"data-date":     dateOnly(date).Format(time.DateOnly),
	}
	if sameDay(date, s.FocusedDate) {
		p["tabIndex"] = 0
	}
	if d.IsToday(date) {
		p["aria-current"] = "date"
	}
	if !d.IsDateSelectable(date) {
		p["aria-disabled"] = "true"
	}
	if d.IsOutsideMonth(date) {
		p["data-outside-month"] = "true"
	}
	if d.IsInRange(date) {
		p["data-in-range"] = "true"
	}
	return p
}
