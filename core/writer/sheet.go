package writer

import (
	"bytes"
	"fmt"

	apperrors "master-sync/core/errors"
	"master-sync/core/reconcile"
	"master-sync/core/table"

	"github.com/xuri/excelize/v2"
)

// CellWriter sets a single cell. Coordinates are 1-based, as in a sheet.
type CellWriter interface {
	WriteCell(row, col int, v table.Value) error
}

// SheetWriter writes cells into one sheet of an excelize workbook, keeping
// each cell's existing style.
type SheetWriter struct {
	file  *excelize.File
	sheet string
}

// NewSheetWriter binds a CellWriter to a sheet of f.
func NewSheetWriter(f *excelize.File, sheet string) *SheetWriter {
	return &SheetWriter{file: f, sheet: sheet}
}

// WriteCell implements CellWriter.
func (w *SheetWriter) WriteCell(row, col int, v table.Value) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	switch v.Kind {
	case table.KindNumber:
		return w.file.SetCellFloat(w.sheet, cell, v.Number, -1, 64)
	case table.KindText:
		return w.file.SetCellStr(w.sheet, cell, v.Text)
	default:
		return w.file.SetCellDefault(w.sheet, cell, "")
	}
}

// ApplyCells replays a reconciliation onto a sheet laid out like the original
// master: shared columns of matched rows are overwritten in place and
// appended rows are written below the last data row. Master-only cells are
// never written.
func ApplyCells(w CellWriter, result *reconcile.Result) error {
	master := result.Master

	written := make(map[int]bool, len(result.Matches))
	for _, m := range result.Matches {
		if written[m.MasterRow] {
			continue
		}
		written[m.MasterRow] = true
		if err := writeRow(w, master, m.MasterRow, result.SharedColumns); err != nil {
			return err
		}
	}

	for _, idx := range result.Appended {
		if err := writeRow(w, master, idx, result.SharedColumns); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w CellWriter, master *table.Table, idx int, columns []string) error {
	row := master.Rows[idx]
	for _, col := range columns {
		pos := master.ColumnIndex(col)
		if pos < 0 {
			continue
		}
		if err := w.WriteCell(idx+table.HeaderRowOffset, pos+1, row[col]); err != nil {
			return fmt.Errorf("row %d column %q: %w", idx+table.HeaderRowOffset, col, err)
		}
	}
	return nil
}

// WriteSpreadsheet reopens the original workbook, applies the reconciliation
// to its active sheet and returns the encoded result.
func WriteSpreadsheet(original []byte, result *reconcile.Result) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(original))
	if err != nil {
		return nil, apperrors.NewWriteError(string(table.FormatSpreadsheet), err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := ApplyCells(NewSheetWriter(f, sheet), result); err != nil {
		return nil, apperrors.NewWriteError(string(table.FormatSpreadsheet), err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.NewWriteError(string(table.FormatSpreadsheet), err)
	}
	return buf.Bytes(), nil
}
