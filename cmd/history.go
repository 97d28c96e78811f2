package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"master-sync/core/config"
	"master-sync/core/database"
	"master-sync/feature/reconcile"
	"master-sync/feature/reconcile/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C42"))

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd lists recorded reconciliation runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reconciliation runs",
	Long:  `Lists reconciliation runs recorded in the history database, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		history := reconcile.NewHistory(db)
		if err := history.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate run history: %w", err)
		}

		runs, err := history.List(cmd.Context(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if historyJSON {
			return printRunsJSON(os.Stdout, runs)
		}
		return printRuns(os.Stdout, runs)
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", reconcile.DefaultHistoryLimit, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print runs as JSON")

	RootCmd.AddCommand(historyCmd)
}

func printRuns(w io.Writer, runs []models.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN ID", "CREATED", "INCOMING", "MASTER", "KEY", "CHANGES", "UPDATED", "APPENDED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	for _, r := range runs {
		t.Row(
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.IncomingName,
			r.MasterName,
			r.KeyColumn,
			fmt.Sprint(r.Changes),
			fmt.Sprint(r.UpdatedRows),
			fmt.Sprint(r.AppendedRows),
		)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func printRunsJSON(w io.Writer, runs []models.Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}
