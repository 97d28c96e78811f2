package table

// Row maps column names to cell values.
type Row map[string]Value

// Table is an ordered set of uniquely named columns and the rows under them.
// Every row holds a value for every column.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

// New creates an empty table with the given columns.
func New(columns []string) *Table {
	t := &Table{Columns: append([]string(nil), columns...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		t.index[col] = i
	}
}

// ColumnIndex returns the zero-based position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t.index == nil || len(t.index) != len(t.Columns) {
		t.reindex()
	}
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// HasColumn reports whether the table declares the column.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a copy of row, keeping only declared columns and filling the
// rest with blanks.
func (t *Table) Append(row Row) {
	out := make(Row, len(t.Columns))
	for _, col := range t.Columns {
		out[col] = row[col]
	}
	t.Rows = append(t.Rows, out)
}

// Clone returns a deep copy. Mutating the clone never affects t.
func (t *Table) Clone() *Table {
	c := New(t.Columns)
	c.Rows = make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		c.Append(row)
	}
	return c
}

// Head returns a copy holding at most n rows, for previews.
func (t *Table) Head(n int) *Table {
	h := New(t.Columns)
	for i := 0; i < len(t.Rows) && i < n; i++ {
		h.Append(t.Rows[i])
	}
	return h
}

// Records renders the table as a header line followed by one string slice
// per row, in column order.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			record[i] = row[col].String()
		}
		records = append(records, record)
	}
	return records
}
