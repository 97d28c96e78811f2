package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"master-sync/core/config"
	"master-sync/core/database"
	"master-sync/core/logger"
	"master-sync/core/pipeline"
	coreReconcile "master-sync/core/reconcile"
	"master-sync/core/storage"
	"master-sync/core/table"
	"master-sync/core/writer"
	"master-sync/feature/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxReportSample caps how many report rows are logged.
const maxReportSample = 5

// reconcileOptions holds the flags of the reconcile command.
type reconcileOptions struct {
	Incoming string
	Master   string
	OutDir   string
	Report   string
	Upload   bool
	Yes      bool
}

var reconcileOpts reconcileOptions

// reconcileCmd reconciles two local files.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge an incoming table into a master table",
	Long: `Reconcile an incoming CSV/XLSX table into a master table.

Rows are matched on a shared key column. Tracked columns that differ are
updated, unknown keys are appended, and the updated master is written next to
the chosen output directory in the master's own format.

Examples:
  # Write ./updated_master.xlsx
  reconcile --incoming roster.csv --master master.xlsx

  # Also save the change report as CSV
  reconcile --incoming roster.csv --master master.xlsx --report changes.csv

  # Overwrite an existing output without asking
  reconcile --incoming roster.csv --master master.xlsx --out build --yes

  # Store the run in object storage and the run history
  reconcile --incoming roster.csv --master master.xlsx --upload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		l, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer l.Sync()

		if reconcileOpts.Upload {
			return uploadReconcile(cmd.Context(), cfg, reconcileOpts, l)
		}

		_, err = reconcileLocal(reconcileOpts, cfg.Reconcile, l, os.Stdin)
		return err
	},
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileOpts.Incoming, "incoming", "", "Path to the incoming table")
	reconcileCmd.Flags().StringVar(&reconcileOpts.Master, "master", "", "Path to the master table")
	reconcileCmd.Flags().StringVar(&reconcileOpts.OutDir, "out", ".", "Directory for the updated master")
	reconcileCmd.Flags().StringVar(&reconcileOpts.Report, "report", "", "Optional path for the change report (CSV)")
	reconcileCmd.Flags().BoolVar(&reconcileOpts.Upload, "upload", false, "Run through object storage and record the run")
	reconcileCmd.Flags().BoolVar(&reconcileOpts.Yes, "yes", false, "Overwrite existing output files without asking")
	_ = reconcileCmd.MarkFlagRequired("incoming")
	_ = reconcileCmd.MarkFlagRequired("master")

	RootCmd.AddCommand(reconcileCmd)
}

// reconcileLocal runs a reconciliation on local files and writes the results.
// It returns the path of the updated master. Nothing is written when the run
// fails or the user declines to overwrite.
func reconcileLocal(opts reconcileOptions, cfg pipeline.Config, l *zap.Logger, in io.Reader) (string, error) {
	incoming, err := readSource(opts.Incoming)
	if err != nil {
		return "", err
	}
	master, err := readSource(opts.Master)
	if err != nil {
		return "", err
	}

	outcome, err := pipeline.Run(cfg, incoming, master, l)
	if err != nil {
		return "", fmt.Errorf("reconciliation failed: %w", err)
	}
	printReconcileReport(l, outcome)

	outPath := filepath.Join(opts.OutDir, outcome.Filename)
	targets := []string{outPath}
	if opts.Report != "" {
		targets = append(targets, opts.Report)
	}
	if !opts.Yes && anyExists(targets) && !confirmOverwrite(in) {
		l.Warn("Operation cancelled by user. No files were written.")
		return "", nil
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, outcome.Output, 0644); err != nil {
		return "", fmt.Errorf("failed to write updated master: %w", err)
	}
	l.Info("Updated master written", zap.String("file", outPath))

	if opts.Report != "" {
		data, err := reportCSV(outcome.Report)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(opts.Report, data, 0644); err != nil {
			return "", fmt.Errorf("failed to write report: %w", err)
		}
		l.Info("Change report written", zap.String("file", opts.Report), zap.Int("rows", outcome.Report.Count))
	}

	return outPath, nil
}

// uploadReconcile runs the reconciliation through the service so the result
// is stored and recorded like an API run.
func uploadReconcile(ctx context.Context, cfg *config.Config, opts reconcileOptions, l *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	ensureBucket(ctx, store, cfg.Storage, l)

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed, run will not be recorded", zap.Error(err))
	} else {
		db = conn
	}

	svc := reconcile.NewService(store, cfg.Storage.Bucket, l, db, cfg.Reconcile)
	if svc.History().Enabled() {
		if err := svc.History().Migrate(); err != nil {
			return fmt.Errorf("failed to migrate run history: %w", err)
		}
	}

	incoming, err := os.ReadFile(opts.Incoming)
	if err != nil {
		return fmt.Errorf("failed to read incoming table: %w", err)
	}
	master, err := os.ReadFile(opts.Master)
	if err != nil {
		return fmt.Errorf("failed to read master table: %w", err)
	}

	summary, err := svc.ReconcileFiles(ctx, filepath.Base(opts.Incoming), incoming, filepath.Base(opts.Master), master)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	printReconcileReport(l, summary.Outcome)
	l.Info("Run stored",
		zap.String("run_id", summary.RunID),
		zap.String("artifact", summary.ArtifactKey))
	return nil
}

func readSource(path string) (pipeline.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return pipeline.NewSource(filepath.Base(path), data), nil
}

// reportCSV renders the change report as delimited text.
func reportCSV(report coreReconcile.Report) ([]byte, error) {
	t := table.New(report.Columns)
	for _, row := range report.Rows {
		t.Append(row)
	}
	return writer.WriteDelimited(t)
}

// printReconcileReport logs the run summary and a sample of changed rows.
func printReconcileReport(l *zap.Logger, outcome *pipeline.Outcome) {
	res := outcome.Result

	l.Info("Reconciliation report",
		zap.String("key", outcome.Key.Name),
		zap.String("key_source", string(outcome.Key.Source)),
		zap.Int("changes", len(res.Changes)),
		zap.Int("updated_rows", res.UpdatedRows()),
		zap.Int("appended_rows", res.NewRows()),
		zap.Int("propagated_cells", res.PropagatedCells),
	)

	if len(res.IgnoredColumns) > 0 {
		l.Info("Ignored incoming columns", zap.Strings("columns", res.IgnoredColumns))
	}

	shown := min(len(outcome.Report.Rows), maxReportSample)
	for i := 0; i < shown; i++ {
		row := outcome.Report.Rows[i]
		fields := make([]zap.Field, 0, len(outcome.Report.Columns))
		for _, col := range outcome.Report.Columns {
			fields = append(fields, zap.String(col, row[col].String()))
		}
		l.Info("Sample change", fields...)
	}
	if len(outcome.Report.Rows) > shown {
		l.Info("Additional changes not shown", zap.Int("count", len(outcome.Report.Rows)-shown))
	}
}

func anyExists(paths []string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil || !errors.Is(err, os.ErrNotExist) {
			return true
		}
	}
	return false
}

// confirmOverwrite prompts the user before replacing existing files.
func confirmOverwrite(in io.Reader) bool {
	fmt.Print("\n⚠️  Output files already exist. Type 'yes' to overwrite: ")
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
