package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "master-sync/core/errors"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Format is the on-disk representation of a table.
type Format string

const (
	// FormatDelimited is comma separated text.
	FormatDelimited Format = "csv"
	// FormatSpreadsheet is an OOXML workbook.
	FormatSpreadsheet Format = "xlsx"
)

// HeaderRowOffset converts a zero-based data row index into a 1-based sheet
// row: one for the 1-based numbering and one for the header row.
const HeaderRowOffset = 2

// zipMagic prefixes every OOXML workbook.
var zipMagic = []byte("PK\x03\x04")

// LoadOptions tunes how a source is parsed.
type LoadOptions struct {
	// Source names the input in errors and logs (usually the upload filename).
	Source string

	// InferNumbers turns delimited cells that parse as numbers into numeric
	// values. Spreadsheet cells always keep their stored type.
	InferNumbers bool
}

// DetectFormat picks a format from the filename extension, falling back to
// sniffing the content for a zip container.
func DetectFormat(filename string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", ".xls":
		return FormatSpreadsheet
	case ".csv", ".txt":
		return FormatDelimited
	}
	if bytes.HasPrefix(data, zipMagic) {
		return FormatSpreadsheet
	}
	return FormatDelimited
}

// Load parses data in the given format.
//
// A source with a header but no data rows returns the (empty) table together
// with an *errors.EmptyInputError, so callers can continue with it.
func Load(data []byte, format Format, opts LoadOptions) (*Table, error) {
	if opts.Source == "" {
		opts.Source = string(format)
	}
	switch format {
	case FormatSpreadsheet:
		return LoadSpreadsheet(data, opts)
	case FormatDelimited:
		return LoadDelimited(data, opts)
	default:
		return nil, apperrors.NewFormatError(opts.Source, fmt.Errorf("unsupported format %q", format))
	}
}

// LoadDelimited parses comma separated text. A leading UTF-8 byte order mark
// is dropped and blank lines are skipped.
func LoadDelimited(data []byte, opts LoadOptions) (*Table, error) {
	decoded := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewFormatError(opts.Source, errors.New("no header row"))
	}
	if err != nil {
		return nil, apperrors.NewFormatError(opts.Source, err)
	}

	t := New(normalizeHeader(header))

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewFormatError(opts.Source, err)
		}
		if len(record) > len(t.Columns) {
			line, _ := reader.FieldPos(0)
			return nil, apperrors.NewFormatError(opts.Source,
				fmt.Errorf("line %d: expected %d fields, saw %d", line, len(t.Columns), len(record)))
		}

		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(record) {
				row[col] = delimitedValue(record[i], opts.InferNumbers)
			} else {
				row[col] = Empty()
			}
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return t, &apperrors.EmptyInputError{Source: opts.Source}
	}
	return t, nil
}

// LoadSpreadsheet reads the active sheet of an OOXML workbook. Row 1 is the
// header; blank rows between data rows are kept so that row i of the table is
// always sheet row i+HeaderRowOffset.
func LoadSpreadsheet(data []byte, opts LoadOptions) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewFormatError(opts.Source, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewFormatError(opts.Source, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewFormatError(opts.Source, fmt.Errorf("sheet %q has no rows", sheet))
	}

	t := New(normalizeHeader(rows[0]))
	if len(t.Columns) == 0 {
		return nil, apperrors.NewFormatError(opts.Source, fmt.Errorf("sheet %q has an empty header row", sheet))
	}

	for r := 1; r < len(rows); r++ {
		row := make(Row, len(t.Columns))
		for c, col := range t.Columns {
			raw := ""
			if c < len(rows[r]) {
				raw = rows[r][c]
			}
			if raw == "" {
				row[col] = Empty()
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, apperrors.NewFormatError(opts.Source, err)
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, apperrors.NewFormatError(opts.Source, err)
			}
			row[col] = spreadsheetValue(raw, typ)
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return t, &apperrors.EmptyInputError{Source: opts.Source}
	}
	return t, nil
}

// normalizeHeader trims column names, names blank headers by position and
// suffixes repeated names (".1", ".2", ...) so every column is unique.
func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	used := make(map[string]bool, len(header))
	repeats := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for used[candidate] {
			repeats[name]++
			candidate = fmt.Sprintf("%s.%d", name, repeats[name])
		}
		used[candidate] = true
		columns[i] = candidate
	}
	return columns
}

func delimitedValue(raw string, inferNumbers bool) Value {
	if raw == "" {
		return Empty()
	}
	if inferNumbers {
		if f, ok := parseNumber(raw); ok {
			return Number(f)
		}
	}
	return Text(raw)
}

func spreadsheetValue(raw string, typ excelize.CellType) Value {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if f, ok := parseNumber(raw); ok {
			return Number(f)
		}
		return Text(raw)
	case excelize.CellTypeBool:
		if raw == "1" || strings.EqualFold(raw, "true") {
			return Text("TRUE")
		}
		return Text("FALSE")
	default:
		return Text(raw)
	}
}

func parseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
