// Package pipeline runs a complete reconciliation over two uploaded sources:
// load both tables, resolve the key, reconcile, build the change report and
// serialize the updated master in its original format.
//
// Each call works on its own inputs and returns its own Outcome; nothing is
// shared between runs.
package pipeline

import (
	"errors"
	"fmt"

	apperrors "master-sync/core/errors"
	"master-sync/core/reconcile"
	"master-sync/core/table"
	"master-sync/core/writer"

	"go.uber.org/zap"
)

// OutputBaseName is the filename, without extension, of the updated master.
const OutputBaseName = "updated_master"

// Source is one uploaded table.
type Source struct {
	Name   string
	Format table.Format
	Data   []byte
}

// NewSource detects the format of data from its name and content.
func NewSource(name string, data []byte) Source {
	return Source{Name: name, Format: table.DetectFormat(name, data), Data: data}
}

// Warning codes.
const (
	WarnEmptyInput     = "empty_input"
	WarnDuplicateKey   = "duplicate_key"
	WarnIgnoredColumns = "ignored_columns"
)

// Warning is a non-fatal condition met during a run.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Outcome is everything a run produces.
type Outcome struct {
	Key      reconcile.ResolvedKey
	Result   *reconcile.Result
	Report   reconcile.Report
	Output   []byte
	Format   table.Format
	MIMEType string
	Filename string
	Warnings []Warning
}

// Load parses a source. An empty table is returned with a warning instead of
// an error.
func Load(cfg Config, src Source) (*table.Table, []Warning, error) {
	t, err := table.Load(src.Data, src.Format, table.LoadOptions{
		Source:       src.Name,
		InferNumbers: cfg.InferNumbers,
	})
	if errors.Is(err, apperrors.ErrEmptyInput) {
		return t, []Warning{{Code: WarnEmptyInput, Message: err.Error()}}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return t, nil, nil
}

// Run reconciles incoming into master. Nothing is returned on failure, so a
// caller never persists partial output.
func Run(cfg Config, incoming, master Source, logger *zap.Logger) (*Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	incomingTable, warnings, err := Load(cfg, incoming)
	if err != nil {
		return nil, fmt.Errorf("failed to load incoming table: %w", err)
	}
	masterTable, masterWarnings, err := Load(cfg, master)
	if err != nil {
		return nil, fmt.Errorf("failed to load master table: %w", err)
	}
	warnings = append(warnings, masterWarnings...)

	rules := cfg.Rules()
	key, err := reconcile.ResolveKey(incomingTable, masterTable, rules.KeyCandidates)
	if err != nil {
		return nil, err
	}
	logger.Debug("Resolved key column",
		zap.String("key", key.Name),
		zap.String("source", string(key.Source)))

	result := reconcile.Reconcile(incomingTable, masterTable, key.Name, rules.TrackedColumns)
	for _, d := range result.Duplicates {
		warnings = append(warnings, Warning{
			Code:    WarnDuplicateKey,
			Message: fmt.Sprintf("key %q appears on %d master rows; the first is updated", d.KeyValue.String(), len(d.MasterRows)),
		})
	}
	if len(result.IgnoredColumns) > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnIgnoredColumns,
			Message: fmt.Sprintf("%d incoming columns are not in the master and were ignored", len(result.IgnoredColumns)),
		})
	}

	output, err := writer.Write(master.Data, master.Format, result)
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		logger.Warn("Reconciliation warning", zap.String("code", w.Code), zap.String("message", w.Message))
	}
	logger.Info("Reconciliation completed",
		zap.String("key", key.Name),
		zap.Int("changes", len(result.Changes)),
		zap.Int("updated", result.UpdatedRows()),
		zap.Int("appended", result.NewRows()),
		zap.Int("propagated_cells", result.PropagatedCells))

	return &Outcome{
		Key:      key,
		Result:   result,
		Report:   reconcile.BuildReport(key.Name, rules.TrackedColumns, result.Changes),
		Output:   output,
		Format:   master.Format,
		MIMEType: writer.MIMEType(master.Format),
		Filename: OutputBaseName + writer.Extension(master.Format),
		Warnings: warnings,
	}, nil
}
