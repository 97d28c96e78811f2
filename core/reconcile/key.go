package reconcile

import (
	apperrors "master-sync/core/errors"
	"master-sync/core/table"
)

// ResolveKey picks the column used to match rows between the two tables.
//
// The first candidate present in both tables wins. Without one, the first
// column is used when both tables name it identically. Otherwise the result
// is a *errors.NoKeyFoundError.
func ResolveKey(incoming, master *table.Table, candidates []string) (ResolvedKey, error) {
	for _, name := range candidates {
		if incoming.HasColumn(name) && master.HasColumn(name) {
			return ResolvedKey{Name: name, Source: KeySourceCandidate}, nil
		}
	}

	if len(incoming.Columns) > 0 && len(master.Columns) > 0 && incoming.Columns[0] == master.Columns[0] {
		return ResolvedKey{Name: incoming.Columns[0], Source: KeySourceFirstColumn}, nil
	}

	return ResolvedKey{}, &apperrors.NoKeyFoundError{
		IncomingColumns: append([]string(nil), incoming.Columns...),
		MasterColumns:   append([]string(nil), master.Columns...),
	}
}
