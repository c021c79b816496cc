package scenario

import (
	"golang.org/x/text/language"

	"github.com/dshills/headless/pkg/config"
	"github.com/dshills/headless/pkg/selection"
	"github.com/dshills/headless/pkg/table"
)

type tableSettings struct {
	config.Table `yaml:",inline"`
	Locale       string `yaml:"locale"`
	Sort         struct {
		Column    string          `yaml:"column"`
		Direction table.Direction `yaml:"direction"`
	} `yaml:"sort"`
}

type tableDriver struct {
	t      *table.Table
	rows   []Item
	ids    []string
	locale language.Tag
}

// tableSnapshot adds the row order implied by the current sort.
type tableSnapshot struct {
	table.State
	Rows            []string         `json:"rows"`
	SelectionStatus selection.Status `json:"selectionStatus"`
}

func newTableDriver(e *env, sc *Scenario) (driver, error) {
	cfg := *e.cfg
	settings := tableSettings{Table: cfg.Table, Locale: "und"}
	if err := decodeOptions(sc, &settings); err != nil {
		return nil, err
	}
	cfg.Table = settings.Table

	tag, err := language.Parse(settings.Locale)
	if err != nil {
		tag = language.Und
	}
	opts := cfg.TableOptions()
	opts.InitialSort = table.Sort{Column: settings.Sort.Column, Direction: settings.Sort.Direction}
	opts.Logger = e.logger

	d := &tableDriver{t: table.New(opts), rows: sc.Items, locale: tag}
	for _, it := range sc.Items {
		d.ids = append(d.ids, it.ID)
	}
	return d, nil
}

func (d *tableDriver) do(st Step) error {
	switch st.Do {
	case "click-column":
		d.t.ToggleSort(st.Column)
	case "sort":
		d.t.SetSort(st.Column, table.Direction(st.Text))
	case "clear-sort":
		d.t.ClearSort()
	case "select":
		d.t.SelectRow(st.ID)
	case "deselect":
		d.t.DeselectRow(st.ID)
	case "toggle":
		d.t.ToggleRow(st.ID)
	case "select-all":
		d.t.SelectAll(d.ids)
	case "toggle-all":
		d.t.ToggleAll(d.ids)
	case "clear":
		d.t.ClearSelection()
	default:
		return unsupported(st)
	}
	return nil
}

func (d *tableDriver) snapshot() any {
	st := d.t.State()
	rows := d.rows
	if st.Sort.Column != "" {
		col := st.Sort.Column
		rows = table.SortData(rows, func(it Item) any { return it.Fields[col] }, st.Sort.Direction, d.locale)
	}
	ids := make([]string, len(rows))
	for i, it := range rows {
		ids[i] = it.ID
	}
	return tableSnapshot{State: st, Rows: ids, SelectionStatus: d.t.SelectionStatus(len(d.ids))}
}

func (d *tableDriver) close() { d.t.Destroy() }
