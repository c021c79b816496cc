// Package datepicker implements calendar grid state: single or range date
// selection, keyboard grid navigation, month and year paging, min/max
// constraints and locale-aware names.
//
// All dates are treated as calendar days; the time of day is dropped on
// entry.
package datepicker

import (
	"sync"
	"time"

	"github.com/goodsign/monday"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/dshills/headless/pkg/idgen"
)

// Mode selects single dates or ranges.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeRange  Mode = "range"
)

// DateRange is a selected range. End is zero while the second date is being
// picked.
type DateRange struct {
	Start time.Time `json:"start" msgpack:"start"`
	End   time.Time `json:"end" msgpack:"end"`
}

// IsZero reports whether no range is selected.
func (r DateRange) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

// Options configures a DatePicker.
type Options struct {
	ID             string
	Mode           Mode
	Value          time.Time
	Range          DateRange
	MinDate        time.Time
	MaxDate        time.Time
	Disabled       bool
	ReadOnly       bool
	Locale         string
	FirstDayOfWeek time.Weekday
	RTL            bool
	// IsDateDisabled marks extra days as unselectable.
	IsDateDisabled func(date time.Time) bool
	// Now supplies "today". Defaults to time.Now.
	Now func() time.Time

	OnDateChange  func(date time.Time)
	OnRangeChange func(r DateRange)
	OnOpenChange  func(open bool)

	IDs    idgen.Generator
	Logger *zap.Logger
}

// State is the date picker snapshot. ViewingMonth is the first day of the
// displayed month.
type State struct {
	Open             bool      `json:"open" msgpack:"open"`
	SelectedDate     time.Time `json:"selectedDate" msgpack:"selectedDate"`
	SelectedRange    DateRange `json:"selectedRange" msgpack:"selectedRange"`
	IsSelectingRange bool      `json:"isSelectingRange" msgpack:"isSelectingRange"`
	FocusedDate      time.Time `json:"focusedDate" msgpack:"focusedDate"`
	ViewingMonth     time.Time `json:"viewingMonth" msgpack:"viewingMonth"`
}

// DatePicker is the date picker behavior.
type DatePicker struct {
	opts   Options
	id     string
	tag    language.Tag
	locale monday.Locale
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates a DatePicker, closed, viewing the month of the initial
// selection or of today.
func New(opts Options) *DatePicker {
	if opts.Mode != ModeRange {
		opts.Mode = ModeSingle
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := opts.ID
	if id == "" {
		id = idgen.OrSequence(opts.IDs, "datepicker").Next()
	}
	tag, locale := resolveLocale(opts.Locale)
	d := &DatePicker{
		opts:   opts,
		id:     id,
		tag:    tag,
		locale: locale,
		logger: logger.Named("datepicker"),
	}
	if !opts.Value.IsZero() {
		d.state.SelectedDate = dateOnly(opts.Value)
	}
	if !opts.Range.Start.IsZero() {
		d.state.SelectedRange = ordered(dateOnly(opts.Range.Start), dateOnly(opts.Range.End))
	}
	focus := d.anchor(d.state)
	d.state.FocusedDate = focus
	d.state.ViewingMonth = startOfMonth(focus)
	return d
}

// dateOnly drops the time of day, keeping the location.
func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return dateOnly(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, -1)
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// ordered returns a range with Start <= End. A zero end stays zero.
func ordered(a, b time.Time) DateRange {
	if !b.IsZero() && b.Before(a) {
		a, b = b, a
	}
	return DateRange{Start: a, End: b}
}

// addMonths moves t by n months, clamping the day to the target month's
// length so Jan 31 + 1 month is the last day of February.
func addMonths(t time.Time, n int) time.Time {
	first := startOfMonth(t).AddDate(0, n, 0)
	day := min(t.Day(), endOfMonth(first).Day())
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// anchor is the date the grid opens on: the selection or today.
func (d *DatePicker) anchor(s State) time.Time {
	switch {
	case d.opts.Mode == ModeSingle && !s.SelectedDate.IsZero():
		return s.SelectedDate
	case d.opts.Mode == ModeRange && !s.SelectedRange.Start.IsZero():
		return s.SelectedRange.Start
	default:
		return d.Today()
	}
}

// ID returns the grid id.
func (d *DatePicker) ID() string { return d.id }

// Locale returns the resolved locale tag.
func (d *DatePicker) Locale() language.Tag { return d.tag }

// Today returns the current day from the injected clock.
func (d *DatePicker) Today() time.Time { return dateOnly(d.opts.Now()) }

// State returns the current snapshot.
func (d *DatePicker) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// update applies fn to a copy of the state and installs it.
func (d *DatePicker) update(fn func(s *State)) (prev, next State) {
	d.mu.Lock()
	prev = d.state
	next = prev
	fn(&next)
	d.state = next
	d.mu.Unlock()
	return prev, next
}

// Open shows the grid, focusing the selection (or today) and viewing its
// month.
func (d *DatePicker) Open() {
	prev, _ := d.update(func(s *State) {
		focus := d.anchor(*s)
		s.Open = true
		s.FocusedDate = focus
		s.ViewingMonth = startOfMonth(focus)
	})
	if !prev.Open {
		d.logger.Debug("open")
		d.notifyOpen(true)
	}
}

// Close hides the grid. An unfinished range keeps its start.
func (d *DatePicker) Close() {
	prev, _ := d.update(func(s *State) {
		s.Open = false
		s.IsSelectingRange = false
	})
	if prev.Open {
		d.logger.Debug("close")
		d.notifyOpen(false)
	}
}

// Toggle opens a closed grid and closes an open one.
func (d *DatePicker) Toggle() {
	if d.State().Open {
		d.Close()
		return
	}
	d.Open()
}

func (d *DatePicker) notifyOpen(open bool) {
	if d.opts.OnOpenChange != nil {
		d.opts.OnOpenChange(open)
	}
}

// IsDateSelectable reports whether date may be selected: the picker is
// enabled and writable, date is not before MinDate's day, not after the end
// of MaxDate's day and not excluded by IsDateDisabled.
func (d *DatePicker) IsDateSelectable(date time.Time) bool {
	switch {
	case d.opts.Disabled || d.opts.ReadOnly:
		return false
	case !d.opts.MinDate.IsZero() && dateOnly(date).Before(dateOnly(d.opts.MinDate)):
		return false
	case !d.opts.MaxDate.IsZero() && date.After(endOfDay(d.opts.MaxDate)):
		return false
	case d.opts.IsDateDisabled != nil && d.opts.IsDateDisabled(dateOnly(date)):
		return false
	}
	return true
}

// SelectDate selects date. Single mode sets the date and closes. Range mode
// starts a range on the first call and completes it, ordered, on the second,
// then closes.
func (d *DatePicker) SelectDate(date time.Time) {
	if !d.IsDateSelectable(date) {
		d.logger.Debug("select ignored", zap.Time("date", date), zap.String("reason", "not selectable"))
		return
	}
	date = dateOnly(date)

	if d.opts.Mode == ModeSingle {
		d.update(func(s *State) {
			s.SelectedDate = date
			s.FocusedDate = date
		})
		d.logger.Debug("date", zap.Time("date", date))
		if d.opts.OnDateChange != nil {
			d.opts.OnDateChange(date)
		}
		d.Close()
		return
	}

	_, next := d.update(func(s *State) {
		s.FocusedDate = date
		if !s.IsSelectingRange {
			s.SelectedRange = DateRange{Start: date}
			s.IsSelectingRange = true
			return
		}
		s.SelectedRange = ordered(s.SelectedRange.Start, date)
		s.IsSelectingRange = false
	})
	if next.IsSelectingRange {
		d.logger.Debug("range started", zap.Time("start", date))
		return
	}
	d.logger.Debug("range", zap.Time("start", next.SelectedRange.Start), zap.Time("end", next.SelectedRange.End))
	if d.opts.OnRangeChange != nil {
		d.opts.OnRangeChange(next.SelectedRange)
	}
	d.Close()
}

// ClearSelection drops the selected date or range.
func (d *DatePicker) ClearSelection() {
	d.update(func(s *State) {
		s.SelectedDate = time.Time{}
		s.SelectedRange = DateRange{}
		s.IsSelectingRange = false
	})
}

// SetFocusedDate focuses date; the viewing month follows it.
func (d *DatePicker) SetFocusedDate(date time.Time) {
	date = dateOnly(date)
	d.update(func(s *State) {
		s.FocusedDate = date
		if !sameMonth(date, s.ViewingMonth) {
			s.ViewingMonth = startOfMonth(date)
		}
	})
}

func (d *DatePicker) moveFocus(fn func(time.Time) time.Time) {
	d.SetFocusedDate(fn(d.State().FocusedDate))
}

// FocusNextDay moves focus forward one day.
func (d *DatePicker) FocusNextDay() {
	d.moveFocus(func(t time.Time) time.Time { return t.AddDate(0, 0, 1) })
}

// FocusPreviousDay moves focus back one day.
func (d *DatePicker) FocusPreviousDay() {
	d.moveFocus(func(t time.Time) time.Time { return t.AddDate(0, 0, -1) })
}

// FocusNextWeek moves focus forward seven days.
func (d *DatePicker) FocusNextWeek() {
	d.moveFocus(func(t time.Time) time.Time { return t.AddDate(0, 0, 7) })
}

// FocusPreviousWeek moves focus back seven days.
func (d *DatePicker) FocusPreviousWeek() {
	d.moveFocus(func(t time.Time) time.Time { return t.AddDate(0, 0, -7) })
}

// FocusStartOfWeek moves focus to the first day of its week.
func (d *DatePicker) FocusStartOfWeek() { d.moveFocus(d.StartOfWeek) }

// FocusEndOfWeek moves focus to the last day of its week.
func (d *DatePicker) FocusEndOfWeek() { d.moveFocus(d.EndOfWeek) }

// FocusNextMonth moves focus one month forward, clamping the day.
func (d *DatePicker) FocusNextMonth() {
	d.moveFocus(func(t time.Time) time.Time { return addMonths(t, 1) })
}

// FocusPreviousMonth moves focus one month back, clamping the day.
func (d *DatePicker) FocusPreviousMonth() {
	d.moveFocus(func(t time.Time) time.Time { return addMonths(t, -1) })
}

// FocusNextYear moves focus one year forward.
func (d *DatePicker) FocusNextYear() {
	d.moveFocus(func(t time.Time) time.Time { return addMonths(t, 12) })
}

// FocusPreviousYear moves focus one year back.
func (d *DatePicker) FocusPreviousYear() {
	d.moveFocus(func(t time.Time) time.Time { return addMonths(t, -12) })
}

// NextMonth pages the grid forward without moving focus.
func (d *DatePicker) NextMonth() { d.shiftView(1) }

// PreviousMonth pages the grid back without moving focus.
func (d *DatePicker) PreviousMonth() { d.shiftView(-1) }

// NextYear pages the grid forward a year.
func (d *DatePicker) NextYear() { d.shiftView(12) }

// PreviousYear pages the grid back a year.
func (d *DatePicker) PreviousYear() { d.shiftView(-12) }

func (d *DatePicker) shiftView(months int) {
	d.update(func(s *State) {
		s.ViewingMonth = startOfMonth(s.ViewingMonth).AddDate(0, months, 0)
	})
}

// SetViewingMonth shows the month containing t.
func (d *DatePicker) SetViewingMonth(t time.Time) {
	d.update(func(s *State) { s.ViewingMonth = startOfMonth(t) })
}

// StartOfWeek returns the first day of t's week under FirstDayOfWeek.
func (d *DatePicker) StartOfWeek(t time.Time) time.Time {
	diff := (int(t.Weekday()) - int(d.opts.FirstDayOfWeek) + 7) % 7
	return dateOnly(t).AddDate(0, 0, -diff)
}

// EndOfWeek returns the last day of t's week under FirstDayOfWeek.
func (d *DatePicker) EndOfWeek(t time.Time) time.Time {
	return d.StartOfWeek(t).AddDate(0, 0, 6)
}

// GetMonthDays returns the viewing month's grid: complete weeks from the
// start of the week holding the 1st through the end of the week holding the
// last day, so leading and trailing days may belong to adjacent months.
func (d *DatePicker) GetMonthDays() []time.Time {
	view := d.State().ViewingMonth
	first := d.StartOfWeek(view)
	last := d.EndOfWeek(endOfMonth(view))
	var days []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// Weeks splits GetMonthDays into rows of seven.
func (d *DatePicker) Weeks() [][]time.Time {
	days := d.GetMonthDays()
	weeks := make([][]time.Time, 0, len(days)/7)
	for i := 0; i+7 <= len(days); i += 7 {
		weeks = append(weeks, days[i:i+7])
	}
	return weeks
}

// IsToday reports whether date is today.
func (d *DatePicker) IsToday(date time.Time) bool { return sameDay(date, d.Today()) }

// IsSelected reports whether date is the selected date or a range endpoint.
func (d *DatePicker) IsSelected(date time.Time) bool {
	s := d.State()
	if d.opts.Mode == ModeSingle {
		return sameDay(date, s.SelectedDate)
	}
	return sameDay(date, s.SelectedRange.Start) || sameDay(date, s.SelectedRange.End)
}

// IsInRange reports whether date falls inside the completed range, endpoints
// included.
func (d *DatePicker) IsInRange(date time.Time) bool {
	r := d.State().SelectedRange
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	day := dateOnly(date)
	return !day.Before(r.Start) && !day.After(r.End)
}

// IsOutsideMonth reports whether date is a leading or trailing grid day.
func (d *DatePicker) IsOutsideMonth(date time.Time) bool {
	return !sameMonth(date, d.State().ViewingMonth)
}

// WeekdayNames returns long weekday names starting at FirstDayOfWeek.
func (d *DatePicker) WeekdayNames() []string { return d.weekdays("Monday") }

// ShortWeekdayNames returns abbreviated weekday names starting at
// FirstDayOfWeek.
func (d *DatePicker) ShortWeekdayNames() []string { return d.weekdays("Mon") }

func (d *DatePicker) weekdays(layout string) []string {
	names := make([]string, 7)
	for i := range names {
		w := time.Weekday((int(d.opts.FirstDayOfWeek) + i) % 7)
		names[i] = weekdayName(w, layout, d.locale)
	}
	return names
}

// MonthName returns the localized name of m.
func (d *DatePicker) MonthName(m time.Month) string { return monthName(m, d.locale) }

// FormatDate formats t with a Go layout, translating names to the locale.
// An empty layout uses the locale's full date format.
func (d *DatePicker) FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = fullLayout(d.locale)
	}
	return monday.Format(t, layout, d.locale)
}

// Destroy closes the grid without callbacks.
func (d *DatePicker) Destroy() {
	d.update(func(s *State) {
		s.Open = false
		s.IsSelectingRange = false
	})
}
