// Package writer serializes a reconciled master back into the format it came
// from.
//
// Delimited output is rewritten in full. Spreadsheet output is produced by
// opening the original workbook and mutating only the cells the
// reconciliation touched, so styles, formulas in other cells, column widths
// and additional sheets survive. Cell mutation goes through the CellWriter
// capability; SheetWriter is its excelize binding.
package writer
