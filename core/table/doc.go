// Package table holds the in-memory table model and the loaders that build it
// from delimited text or OOXML workbooks.
//
// Column names are trimmed at load time, before any comparison happens. Cell
// values keep their native type: text stays text, numeric spreadsheet cells
// stay numeric, and no coercion happens across formats.
//
// # Usage
//
//	t, err := table.Load(data, table.DetectFormat(name, data), table.LoadOptions{Source: name})
//	if errors.Is(err, apperrors.ErrEmptyInput) {
//	    // t is valid, just empty
//	}
package table
