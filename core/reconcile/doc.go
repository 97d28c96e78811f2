// Package reconcile merges an incoming table into a master table.
//
// The package is pure: it never touches files, storage or the network, and it
// holds no package-level mutable state, so independent runs can execute
// concurrently as long as each one works on its own tables.
//
// # Architecture
//
// The reconcile system consists of three components:
//
// 1. Key resolution: ResolveKey picks the single column used to match rows.
//    Configured candidate names win over positional inference; the first
//    column is only used when both tables name it identically.
//
// 2. Engine: Reconcile walks the incoming rows in order, finds the first master
//    row with an equal key, diffs the tracked columns, overwrites every shared
//    column on a copy of the master and appends unmatched rows.
//
// 3. Report: BuildReport turns the change records into an old/new summary
//    table for display.
//
// # Usage Example
//
//	key, err := reconcile.ResolveKey(incoming, master, rules.KeyCandidates)
//	if err != nil {
//	    return err // errors.ErrNoKeyFound
//	}
//	result := reconcile.Reconcile(incoming, master, key.Name, rules.TrackedColumns)
//	report := reconcile.BuildReport(result.Key, rules.TrackedColumns, result.Changes)
//
// The original master table is never mutated; Result.Master is a copy.
package reconcile
