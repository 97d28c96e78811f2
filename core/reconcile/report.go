package reconcile

import "master-sync/core/table"

const (
	// StatusColumn names the report column that flags appended rows.
	StatusColumn = "Status"
	// StatusNewRow is the status text of an appended row.
	StatusNewRow = "NEW ROW ADDED"
)

// Report is the display-ready change summary.
type Report struct {
	// Columns lists the report columns in display order.
	Columns []string `json:"columns"`

	// Rows holds one entry per change record. Every row has a value for
	// every column.
	Rows []table.Row `json:"rows"`

	// Count is the number of change records.
	Count int `json:"count"`
}

// OldColumn names the report column holding a tracked column's old value.
func OldColumn(col string) string { return col + " (Old)" }

// NewColumn names the report column holding a tracked column's new value.
func NewColumn(col string) string { return col + " (New)" }

// BuildReport lays out change records as a table: the key column, an old/new
// pair for every tracked column that changed at least once (in tracked
// order), and a status column when any row was appended.
func BuildReport(key string, tracked []string, changes []ChangeRecord) Report {
	report := Report{Columns: []string{}, Rows: []table.Row{}, Count: len(changes)}
	if len(changes) == 0 {
		return report
	}

	changed := make(map[string]bool)
	hasNew := false
	for _, c := range changes {
		if c.New {
			hasNew = true
		}
		for _, d := range c.Diffs {
			changed[d.Column] = true
		}
	}

	report.Columns = append(report.Columns, key)
	for _, col := range tracked {
		if changed[col] {
			report.Columns = append(report.Columns, OldColumn(col), NewColumn(col))
		}
	}
	if hasNew {
		report.Columns = append(report.Columns, StatusColumn)
	}

	for _, c := range changes {
		row := make(table.Row, len(report.Columns))
		for _, col := range report.Columns {
			row[col] = table.Empty()
		}
		row[key] = c.KeyValue
		for _, d := range c.Diffs {
			row[OldColumn(d.Column)] = d.Old
			row[NewColumn(d.Column)] = d.New
		}
		if c.New {
			row[StatusColumn] = table.Text(StatusNewRow)
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}

// Table returns the report as a table, e.g. for CSV export.
func (r Report) Table() *table.Table {
	t := table.New(r.Columns)
	for _, row := range r.Rows {
		t.Append(row)
	}
	return t
}
