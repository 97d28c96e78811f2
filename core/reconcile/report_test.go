package reconcile

import (
	"testing"

	"master-sync/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildReport_Layout tests column selection and row contents.
func TestBuildReport_Layout(t *testing.T) {
	changes := []ChangeRecord{
		{
			KeyValue: txt("A1"),
			Diffs:    []ColumnDiff{{Column: "Total FTE", Old: num(2.0), New: num(3.0)}},
		},
		{
			KeyValue: txt("B2"),
			New:      true,
		},
	}

	report := BuildReport("ID", DefaultTrackedColumns, changes)

	assert.Equal(t, []string{"ID", "Total FTE (Old)", "Total FTE (New)", StatusColumn}, report.Columns)
	assert.Equal(t, 2, report.Count)
	require.Len(t, report.Rows, 2)

	assert.Equal(t, num(2.0), report.Rows[0]["Total FTE (Old)"])
	assert.Equal(t, num(3.0), report.Rows[0]["Total FTE (New)"])
	assert.True(t, report.Rows[0][StatusColumn].IsEmpty())

	assert.Equal(t, txt("B2"), report.Rows[1]["ID"])
	assert.Equal(t, txt(StatusNewRow), report.Rows[1][StatusColumn])
	assert.True(t, report.Rows[1]["Total FTE (Old)"].IsEmpty())
}

// TestBuildReport_TrackedOrder tests that pairs follow the tracked order.
func TestBuildReport_TrackedOrder(t *testing.T) {
	changes := []ChangeRecord{
		{KeyValue: txt("A1"), Diffs: []ColumnDiff{{Column: "FTE Count", Old: num(1), New: num(2)}}},
		{KeyValue: txt("A2"), Diffs: []ColumnDiff{{Column: "Sec Faculty Info", Old: txt("x"), New: txt("y")}}},
	}

	report := BuildReport("Sec Name", DefaultTrackedColumns, changes)

	assert.Equal(t, []string{
		"Sec Name",
		"Sec Faculty Info (Old)", "Sec Faculty Info (New)",
		"FTE Count (Old)", "FTE Count (New)",
	}, report.Columns)
	assert.NotContains(t, report.Columns, StatusColumn)
}

// TestBuildReport_Empty tests that no records produce an empty report.
func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport("ID", DefaultTrackedColumns, nil)

	assert.Equal(t, 0, report.Count)
	assert.Empty(t, report.Columns)
	assert.Empty(t, report.Rows)
	assert.Equal(t, 0, report.Table().Len())
}

// TestBuildReport_FromReconcile tests the scenario end to end.
func TestBuildReport_FromReconcile(t *testing.T) {
	master := newTable([]string{"ID", "Total FTE"}, []table.Value{txt("A1"), num(2.0)})
	incoming := newTable([]string{"ID", "Total FTE"},
		[]table.Value{txt("A1"), num(3.0)},
		[]table.Value{txt("B2"), num(1.0)},
	)

	result := Reconcile(incoming, master, "ID", []string{"Total FTE"})
	report := BuildReport(result.Key, []string{"Total FTE"}, result.Changes)

	tbl := report.Table()
	assert.Equal(t, [][]string{
		{"ID", "Total FTE (Old)", "Total FTE (New)", "Status"},
		{"A1", "2", "3", ""},
		{"B2", "", "", "NEW ROW ADDED"},
	}, tbl.Records())
}
