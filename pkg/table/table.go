// Package table implements column sorting and row selection for data tables.
package table

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/aria"
	"github.com/dshills/headless/pkg/idgen"
	"github.com/dshills/headless/pkg/selection"
)

// Direction is a column's sort direction.
type Direction string

const (
	DirectionNone Direction = "none"
	Ascending     Direction = "asc"
	Descending    Direction = "desc"
)

// next advances the three-way cycle asc -> desc -> none.
func (d Direction) next() Direction {
	switch d {
	case Ascending:
		return Descending
	case Descending:
		return DirectionNone
	default:
		return Ascending
	}
}

// Sort is the active sort. Column is empty when unsorted.
type Sort struct {
	Column    string    `json:"column" msgpack:"column"`
	Direction Direction `json:"direction" msgpack:"direction"`
}

// Unsorted is the zero sort state.
var Unsorted = Sort{Direction: DirectionNone}

// Options configures a Table.
type Options struct {
	ID            string
	SelectionMode selection.Mode
	InitialSort   Sort

	OnSortChange      func(Sort)
	OnSelectionChange func(selection.Set)

	IDs    idgen.Generator
	Logger *zap.Logger
}

// State is the table snapshot.
type State struct {
	Sort           Sort          `json:"sort" msgpack:"sort"`
	SelectedRowIDs selection.Set `json:"selectedRowIds" msgpack:"selectedRowIds"`
}

// Table is the table behavior.
type Table struct {
	opts   Options
	id     string
	logger *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates a Table. Selection is off unless SelectionMode is set.
func New(opts Options) *Table {
	opts.SelectionMode = opts.SelectionMode.OrDefault(selection.ModeNone)
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := opts.ID
	if id == "" {
		id = idgen.OrSequence(opts.IDs, "table").Next()
	}
	t := &Table{opts: opts, id: id, logger: logger.Named("table")}
	t.state.Sort = normalize(opts.InitialSort)
	return t
}

func normalize(s Sort) Sort {
	if s.Column == "" || (s.Direction != Ascending && s.Direction != Descending) {
		return Unsorted
	}
	return s
}

// ID returns the table element id.
func (t *Table) ID() string { return t.id }

// State returns the current snapshot.
func (t *Table) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ToggleSort advances column through unsorted -> asc -> desc -> unsorted.
// A column other than the sorted one starts over at asc.
func (t *Table) ToggleSort(column string) {
	if column == "" {
		return
	}
	t.mu.Lock()
	cur := t.state.Sort
	next := Sort{Column: column, Direction: Ascending}
	if cur.Column == column {
		next.Direction = cur.Direction.next()
	}
	t.state.Sort = normalize(next)
	next = t.state.Sort
	t.mu.Unlock()

	t.logger.Debug("sort", zap.String("column", next.Column), zap.String("direction", string(next.Direction)))
	t.notifySort(next)
}

// SetSort sets the sort directly. An empty column or DirectionNone clears it.
func (t *Table) SetSort(column string, dir Direction) {
	next := normalize(Sort{Column: column, Direction: dir})
	t.mu.Lock()
	changed := t.state.Sort != next
	t.state.Sort = next
	t.mu.Unlock()
	if changed {
		t.notifySort(next)
	}
}

// ClearSort removes the sort.
func (t *Table) ClearSort() { t.SetSort("", DirectionNone) }

// SortDirection returns column's direction, DirectionNone when it is not the
// sorted column.
func (t *Table) SortDirection(column string) Direction {
	s := t.State().Sort
	if s.Column != column {
		return DirectionNone
	}
	return s.Direction
}

// SelectRow selects a row. Single mode replaces the selection.
func (t *Table) SelectRow(id string) { t.mutate("select row", id, selection.Select) }

// DeselectRow deselects a row.
func (t *Table) DeselectRow(id string) { t.mutate("deselect row", id, selection.Deselect) }

// ToggleRow flips a row's selection.
func (t *Table) ToggleRow(id string) { t.mutate("toggle row", id, selection.Toggle) }

func (t *Table) mutate(op, id string, fn func(selection.Mode, selection.Set, string) (selection.Set, bool)) {
	t.mu.Lock()
	next, ok := fn(t.opts.SelectionMode, t.state.SelectedRowIDs, id)
	if ok {
		t.state.SelectedRowIDs = next
	}
	t.mu.Unlock()
	if !ok {
		t.logger.Debug("selection ignored", zap.String("op", op), zap.String("row", id),
			zap.String("reason", "selection mode none"))
		return
	}
	t.notifySelection(next)
}

// SelectAll selects every row id. Only multiple mode allows it.
func (t *Table) SelectAll(rowIDs []string) {
	next, ok := selection.SelectAll(t.opts.SelectionMode, rowIDs)
	if !ok {
		t.logger.Debug("select all ignored", zap.String("reason", "not multiple mode"))
		return
	}
	t.mu.Lock()
	t.state.SelectedRowIDs = next
	t.mu.Unlock()
	t.notifySelection(next)
}

// ToggleAll selects every row unless all are already selected, in which case
// it clears the selection. It backs the header checkbox.
func (t *Table) ToggleAll(rowIDs []string) {
	if t.SelectionStatus(len(rowIDs)) == selection.StatusAll {
		t.ClearSelection()
		return
	}
	t.SelectAll(rowIDs)
}

// ClearSelection deselects every row.
func (t *Table) ClearSelection() {
	if t.opts.SelectionMode == selection.ModeNone {
		return
	}
	t.mu.Lock()
	t.state.SelectedRowIDs = selection.Set{}
	t.mu.Unlock()
	t.notifySelection(selection.Set{})
}

// IsRowSelected reports whether a row is selected.
func (t *Table) IsRowSelected(id string) bool { return t.State().SelectedRowIDs.Has(id) }

// SelectionStatus returns none, some or all for a header checkbox.
func (t *Table) SelectionStatus(totalRows int) selection.Status {
	return selection.StatusOf(t.State().SelectedRowIDs, totalRows)
}

func (t *Table) notifySort(s Sort) {
	if t.opts.OnSortChange != nil {
		t.opts.OnSortChange(s)
	}
}

func (t *Table) notifySelection(s selection.Set) {
	if t.opts.OnSelectionChange != nil {
		t.opts.OnSelectionChange(s)
	}
}

// TableProps returns the attributes for the table element.
func (t *Table) TableProps() aria.Props {
	p := aria.Props{"id": t.id, "role": "grid"}
	if t.opts.SelectionMode == selection.ModeMultiple {
		p["aria-multiselectable"] = "true"
	}
	return p
}

// ColumnHeaderProps returns the attributes for a column header. Only sortable
// headers carry aria-sort and a tab stop.
func (t *Table) ColumnHeaderProps(column string, sortable bool) aria.Props {
	p := aria.Props{"role": "columnheader", "data-column": column}
	if !sortable {
		return p
	}
	p["tabIndex"] = 0
	switch t.SortDirection(column) {
	case Ascending:
		p["aria-sort"] = "ascending"
	case Descending:
		p["aria-sort"] = "descending"
	default:
		p["aria-sort"] = "none"
	}
	return p
}

// RowProps returns the attributes for a body row.
func (t *Table) RowProps(rowID string) aria.Props {
	p := aria.Props{"role": "row", "data-row-id": rowID}
	if t.opts.SelectionMode != selection.ModeNone {
		p["aria-selected"] = aria.Bool(t.IsRowSelected(rowID))
	}
	return p
}

// SelectAllProps returns the attributes for the header checkbox. A partial
// selection is reported as "mixed".
func (t *Table) SelectAllProps(totalRows int) aria.Props {
	checked := "false"
	switch t.SelectionStatus(totalRows) {
	case selection.StatusAll:
		checked = "true"
	case selection.StatusSome:
		checked = "mixed"
	}
	p := aria.Props{
		"role":         "checkbox",
		"aria-checked": checked,
		"aria-label":   "Select all rows",
	}
	if t.opts.SelectionMode != selection.ModeMultiple {
		p["aria-disabled"] = "true"
	}
	return p
}

// Destroy clears sort and selection.
func (t *Table) Destroy() {
	t.mu.Lock()
	t.state = State{Sort: Unsorted}
	t.mu.Unlock()
}
