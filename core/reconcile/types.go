package reconcile

import "master-sync/core/table"

// DefaultTrackedColumns are the columns whose changes are reported when no
// configuration overrides them.
var DefaultTrackedColumns = []string{"Sec Faculty Info", "Sec All Faculty Last Names", "Total FTE", "FTE Count"}

// DefaultKeyCandidates are the conventional key names, in priority order.
var DefaultKeyCandidates = []string{"Sec Name", "Section Name", "ID", "Section", "Name"}

// Rules bundles the deployment-level settings of a reconciliation.
type Rules struct {
	// TrackedColumns lists the columns compared for the change report.
	// Columns missing from either table are skipped.
	TrackedColumns []string

	// KeyCandidates lists conventional key column names in priority order.
	KeyCandidates []string
}

// DefaultRules returns a Rules value populated with the default column lists.
func DefaultRules() Rules {
	return Rules{
		TrackedColumns: append([]string(nil), DefaultTrackedColumns...),
		KeyCandidates:  append([]string(nil), DefaultKeyCandidates...),
	}
}

// KeySource records how a key column was chosen.
type KeySource string

const (
	// KeySourceCandidate means a configured candidate name matched.
	KeySourceCandidate KeySource = "candidate"
	// KeySourceFirstColumn means both tables start with the same column.
	KeySourceFirstColumn KeySource = "first_column"
)

// ResolvedKey is the outcome of key resolution.
type ResolvedKey struct {
	// Name is the key column name, present in both tables.
	Name string `json:"name"`

	// Source tells whether the key came from the candidate list or from
	// positional inference.
	Source KeySource `json:"source"`
}

// ColumnDiff is one tracked column whose value changed.
type ColumnDiff struct {
	Column string      `json:"column"`
	Old    table.Value `json:"old"`
	New    table.Value `json:"new"`
}

// ChangeRecord describes what happened to one incoming row.
type ChangeRecord struct {
	// KeyValue is the incoming row's key value.
	KeyValue table.Value `json:"key_value"`

	// IncomingRow is the zero-based index of the row in the incoming table.
	IncomingRow int `json:"incoming_row"`

	// MasterRow is the zero-based index of the matched master row, or -1 for
	// new rows.
	MasterRow int `json:"master_row"`

	// New is true when the row was appended to the master.
	New bool `json:"new"`

	// Diffs lists the tracked columns that differ. Always empty for new rows.
	Diffs []ColumnDiff `json:"diffs,omitempty"`
}

// RowMatch pairs an incoming row with the master row it updated.
type RowMatch struct {
	IncomingRow int `json:"incoming_row"`
	MasterRow   int `json:"master_row"`
}

// DuplicateKey reports a key value held by more than one master row. Only the
// first row is ever matched.
type DuplicateKey struct {
	KeyValue   table.Value `json:"key_value"`
	MasterRows []int       `json:"master_rows"`
}

// Result is the output of Reconcile.
type Result struct {
	// Key is the column used for matching.
	Key string

	// Master is the reconciled copy of the master table.
	Master *table.Table

	// Changes holds one record per reported incoming row, in incoming order.
	// Matched rows without tracked differences are not included.
	Changes []ChangeRecord

	// Matches pairs every matched incoming row with its master row, in
	// incoming order.
	Matches []RowMatch

	// Appended holds the indexes in Master of rows added from the incoming
	// table, in incoming order.
	Appended []int

	// AppendedFrom holds, for each entry of Appended, the incoming row it
	// came from.
	AppendedFrom []int

	// SharedColumns lists the columns present in both tables, in incoming
	// column order. These are overwritten on every matched row.
	SharedColumns []string

	// IgnoredColumns lists incoming columns the master does not declare.
	IgnoredColumns []string

	// ComparedColumns lists the tracked columns present in both tables.
	ComparedColumns []string

	// Duplicates lists master key values held by more than one row.
	Duplicates []DuplicateKey

	// PropagatedCells counts the cells overwritten on matched rows.
	PropagatedCells int
}

// NewRows returns how many rows were appended.
func (r *Result) NewRows() int {
	return len(r.Appended)
}

// UpdatedRows returns how many matched rows reported tracked differences.
func (r *Result) UpdatedRows() int {
	n := 0
	for _, c := range r.Changes {
		if !c.New {
			n++
		}
	}
	return n
}
