package cmd

import (
	"fmt"
	"os"

	"master-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "master-sync",
	Short: "Master table reconciliation service",
	Long: `master-sync merges an incoming table into a master table.
Rows are matched on a shared key, tracked column changes are reported and the
updated master is written back in its original CSV or XLSX format.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding at debug level gives readable ISO8601 timestamps
		// for CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: logger.FormatConsole,
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
