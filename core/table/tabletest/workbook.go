// Package tabletest builds in-memory workbooks for tests.
package tabletest

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet excelize creates for a new workbook.
const DefaultSheet = "Sheet1"

// Workbook writes rows (header first) into the first sheet of a new workbook
// and returns the encoded bytes. Nil cells are left unset.
func Workbook(t testing.TB, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(DefaultSheet, cell, v); err != nil {
				t.Fatalf("set %s: %v", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("encode workbook: %v", err)
	}
	return buf.Bytes()
}

// Open decodes workbook bytes for inspection. The file is closed when the test
// ends.
func Open(t testing.TB, data []byte) *excelize.File {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}
