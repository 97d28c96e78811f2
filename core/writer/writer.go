package writer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	apperrors "master-sync/core/errors"
	"master-sync/core/reconcile"
	"master-sync/core/table"
)

const (
	// MIMEDelimited is the content type of delimited output.
	MIMEDelimited = "text/csv"
	// MIMESpreadsheet is the content type of OOXML workbooks.
	MIMESpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Write serializes result.Master in the given format. original must hold the
// master's source bytes when format is a spreadsheet; it is ignored for
// delimited output.
func Write(original []byte, format table.Format, result *reconcile.Result) ([]byte, error) {
	switch format {
	case table.FormatSpreadsheet:
		return WriteSpreadsheet(original, result)
	case table.FormatDelimited:
		return WriteDelimited(result.Master)
	default:
		return nil, apperrors.NewWriteError(string(format), fmt.Errorf("unsupported format"))
	}
}

// WriteDelimited renders every column and row of t as CSV.
func WriteDelimited(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(t.Records()); err != nil {
		return nil, apperrors.NewWriteError(string(table.FormatDelimited), err)
	}
	return buf.Bytes(), nil
}

// MIMEType returns the content type for a format.
func MIMEType(format table.Format) string {
	if format == table.FormatSpreadsheet {
		return MIMESpreadsheet
	}
	return MIMEDelimited
}

// Extension returns the file extension, dot included, for a format.
func Extension(format table.Format) string {
	if format == table.FormatSpreadsheet {
		return ".xlsx"
	}
	return ".csv"
}
