package writer

import (
	"errors"
	"testing"

	apperrors "master-sync/core/errors"
	"master-sync/core/reconcile"
	"master-sync/core/table"
	"master-sync/core/table/tabletest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTable(columns []string, rows ...[]table.Value) *table.Table {
	t := table.New(columns)
	for _, values := range rows {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			if i < len(values) {
				row[col] = values[i]
			}
		}
		t.Append(row)
	}
	return t
}

type cellWrite struct {
	Row, Col int
	Value    table.Value
}

// recordingWriter captures every write instead of touching a workbook.
type recordingWriter struct {
	writes []cellWrite
	failAt int
}

func (w *recordingWriter) WriteCell(row, col int, v table.Value) error {
	if w.failAt > 0 && len(w.writes)+1 == w.failAt {
		return errors.New("sheet is protected")
	}
	w.writes = append(w.writes, cellWrite{Row: row, Col: col, Value: v})
	return nil
}

// TestApplyCells_Coordinates tests that cells land at master positions even
// when the incoming column order differs.
func TestApplyCells_Coordinates(t *testing.T) {
	master := newTable([]string{"ID", "Room", "Total FTE"},
		[]table.Value{table.Text("A1"), table.Text("R1"), table.Number(2)},
		[]table.Value{table.Text("A2"), table.Text("R2"), table.Number(1)},
	)
	incoming := newTable([]string{"Total FTE", "ID", "Extra"},
		[]table.Value{table.Number(1.5), table.Text("A2"), table.Text("x")},
		[]table.Value{table.Number(4), table.Text("B1"), table.Text("y")},
	)
	result := reconcile.Reconcile(incoming, master, "ID", []string{"Total FTE"})

	w := &recordingWriter{}
	require.NoError(t, ApplyCells(w, result))

	assert.Equal(t, []cellWrite{
		{Row: 3, Col: 3, Value: table.Number(1.5)},
		{Row: 3, Col: 1, Value: table.Text("A2")},
		{Row: 4, Col: 3, Value: table.Number(4)},
		{Row: 4, Col: 1, Value: table.Text("B1")},
	}, w.writes)
}

// TestApplyCells_DuplicateIncomingKeys tests that a master row matched twice is
// written once with its final values.
func TestApplyCells_DuplicateIncomingKeys(t *testing.T) {
	master := newTable([]string{"ID", "Total FTE"},
		[]table.Value{table.Text("A1"), table.Number(1)},
	)
	incoming := newTable([]string{"ID", "Total FTE"},
		[]table.Value{table.Text("A1"), table.Number(2)},
		[]table.Value{table.Text("A1"), table.Number(3)},
	)
	result := reconcile.Reconcile(incoming, master, "ID", []string{"Total FTE"})

	w := &recordingWriter{}
	require.NoError(t, ApplyCells(w, result))

	assert.Equal(t, []cellWrite{
		{Row: 2, Col: 1, Value: table.Text("A1")},
		{Row: 2, Col: 2, Value: table.Number(3)},
	}, w.writes)
}

// TestApplyCells_WriterError tests that a failing cell write stops the pass.
func TestApplyCells_WriterError(t *testing.T) {
	master := newTable([]string{"ID"}, []table.Value{table.Text("A1")})
	incoming := newTable([]string{"ID"}, []table.Value{table.Text("A1")}, []table.Value{table.Text("B1")})
	result := reconcile.Reconcile(incoming, master, "ID", nil)

	err := ApplyCells(&recordingWriter{failAt: 2}, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

// TestWriteSpreadsheet_PreservesWorkbook tests that values change in place
// while styles, formulas and untouched cells survive.
func TestWriteSpreadsheet_PreservesWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := tabletest.DefaultSheet
	for cell, v := range map[string]any{
		"A1": "ID", "B1": "Name", "C1": "Total FTE", "D1": "Doubled",
		"A2": "A1", "B2": "Smith", "C2": 2,
		"A3": "A2", "B3": "Lee", "C3": 1, "D3": "keep",
	} {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	require.NoError(t, f.SetCellFormula(sheet, "D2", "C2*2"))
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C2", "C2", bold))
	_, err = f.NewSheet("Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notes", "A1", "do not touch"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())
	original := buf.Bytes()

	master, err := table.LoadSpreadsheet(original, table.LoadOptions{Source: "master.xlsx"})
	require.NoError(t, err)
	incoming := newTable([]string{"Total FTE", "ID", "Name"},
		[]table.Value{table.Number(3), table.Text("A1"), table.Text("Smith")},
		[]table.Value{table.Number(5), table.Text("B9"), table.Text("Ng")},
	)
	result := reconcile.Reconcile(incoming, master, "ID", []string{"Total FTE"})

	out, err := WriteSpreadsheet(original, result)
	require.NoError(t, err)

	got := tabletest.Open(t, out)
	value, err := got.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "3", value)

	style, err := got.GetCellStyle(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, bold, style)

	formula, err := got.GetCellFormula(sheet, "D2")
	require.NoError(t, err)
	assert.Contains(t, formula, "C2*2")

	untouched, err := got.GetCellValue(sheet, "D3")
	require.NoError(t, err)
	assert.Equal(t, "keep", untouched)

	appended, err := got.GetCellValue(sheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "B9", appended)
	blank, err := got.GetCellValue(sheet, "D4")
	require.NoError(t, err)
	assert.Empty(t, blank)

	notes, err := got.GetCellValue("Notes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "do not touch", notes)

	reloaded, err := table.LoadSpreadsheet(out, table.LoadOptions{Source: "updated.xlsx"})
	require.NoError(t, err)
	require.Equal(t, result.Master.Len(), reloaded.Len())
	for i := range reloaded.Rows {
		for _, col := range []string{"ID", "Name", "Total FTE"} {
			assert.Equal(t, result.Master.Rows[i][col], reloaded.Rows[i][col], "row %d column %s", i, col)
		}
	}
}

// TestWriteSpreadsheet_CorruptOriginal tests that unreadable originals surface
// as write errors.
func TestWriteSpreadsheet_CorruptOriginal(t *testing.T) {
	result := reconcile.Reconcile(table.New([]string{"ID"}), table.New([]string{"ID"}), "ID", nil)

	_, err := WriteSpreadsheet([]byte("not a workbook"), result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrWrite))
}

// TestWriteDelimited tests full-table CSV rendering.
func TestWriteDelimited(t *testing.T) {
	master := newTable([]string{"ID", "Name", "Total FTE"},
		[]table.Value{table.Text("A1"), table.Text("Smith, J"), table.Number(0.5)},
		[]table.Value{table.Text("A2"), table.Empty(), table.Number(2)},
	)

	out, err := Write(nil, table.FormatDelimited, &reconcile.Result{Master: master})
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Total FTE\nA1,\"Smith, J\",0.5\nA2,,2\n", string(out))
}

// TestWrite_UnsupportedFormat tests dispatch on an unknown format.
func TestWrite_UnsupportedFormat(t *testing.T) {
	_, err := Write(nil, table.Format("ods"), &reconcile.Result{Master: table.New(nil)})
	assert.True(t, errors.Is(err, apperrors.ErrWrite))
}

func TestMIMETypeAndExtension(t *testing.T) {
	assert.Equal(t, MIMEDelimited, MIMEType(table.FormatDelimited))
	assert.Equal(t, MIMESpreadsheet, MIMEType(table.FormatSpreadsheet))
	assert.Equal(t, ".csv", Extension(table.FormatDelimited))
	assert.Equal(t, ".xlsx", Extension(table.FormatSpreadsheet))
}
