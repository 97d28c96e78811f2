package reconcile

import "master-sync/core/table"

// Reconcile merges incoming into a copy of master, matching rows on key.
//
// For each incoming row, in order, the first master row with an equal key is
// updated: every shared column takes the incoming value, and tracked columns
// whose values differ are recorded. Rows without a match are appended with
// master-only columns left blank. Blank keys never match.
func Reconcile(incoming, master *table.Table, key string, tracked []string) *Result {
	result := &Result{
		Key:             key,
		Master:          master.Clone(),
		Changes:         []ChangeRecord{},
		SharedColumns:   []string{},
		IgnoredColumns:  []string{},
		ComparedColumns: []string{},
	}

	for _, col := range incoming.Columns {
		if master.HasColumn(col) {
			result.SharedColumns = append(result.SharedColumns, col)
		} else {
			result.IgnoredColumns = append(result.IgnoredColumns, col)
		}
	}
	for _, col := range tracked {
		if incoming.HasColumn(col) && master.HasColumn(col) {
			result.ComparedColumns = append(result.ComparedColumns, col)
		}
	}

	index, duplicates := buildIndex(master, key)
	result.Duplicates = duplicates

	for i, row := range incoming.Rows {
		keyValue := row[key]

		matches := index[keyValue]
		if keyValue.IsEmpty() || len(matches) == 0 {
			result.Master.Append(row)
			result.Appended = append(result.Appended, result.Master.Len()-1)
			result.AppendedFrom = append(result.AppendedFrom, i)
			result.Changes = append(result.Changes, ChangeRecord{
				KeyValue:    keyValue,
				IncomingRow: i,
				MasterRow:   -1,
				New:         true,
			})
			continue
		}

		m := matches[0]
		diffs := compareRow(master.Rows[m], row, result.ComparedColumns)

		target := result.Master.Rows[m]
		for _, col := range result.SharedColumns {
			target[col] = row[col]
		}
		result.PropagatedCells += len(result.SharedColumns)
		result.Matches = append(result.Matches, RowMatch{IncomingRow: i, MasterRow: m})

		if len(diffs) > 0 {
			result.Changes = append(result.Changes, ChangeRecord{
				KeyValue:    keyValue,
				IncomingRow: i,
				MasterRow:   m,
				Diffs:       diffs,
			})
		}
	}

	return result
}

// buildIndex maps every non-blank key value to its master rows, in master
// order, and collects the values that occur more than once.
func buildIndex(master *table.Table, key string) (map[table.Value][]int, []DuplicateKey) {
	index := make(map[table.Value][]int, master.Len())
	var order []table.Value
	for i, row := range master.Rows {
		v := row[key]
		if v.IsEmpty() {
			continue
		}
		if _, seen := index[v]; !seen {
			order = append(order, v)
		}
		index[v] = append(index[v], i)
	}

	var duplicates []DuplicateKey
	for _, v := range order {
		if rows := index[v]; len(rows) > 1 {
			duplicates = append(duplicates, DuplicateKey{KeyValue: v, MasterRows: rows})
		}
	}
	return index, duplicates
}

// compareRow returns the compared columns whose values differ.
func compareRow(masterRow, incomingRow table.Row, columns []string) []ColumnDiff {
	var diffs []ColumnDiff
	for _, col := range columns {
		old, updated := masterRow[col], incomingRow[col]
		if !old.Equal(updated) {
			diffs = append(diffs, ColumnDiff{Column: col, Old: old, New: updated})
		}
	}
	return diffs
}
