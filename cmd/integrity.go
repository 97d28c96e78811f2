package cmd

import (
	"context"
	"fmt"
	"os"

	"master-sync/core/config"
	"master-sync/core/database"
	"master-sync/core/logger"
	"master-sync/core/storage"
	"master-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and the run history database",
	Long:  `Checks that the storage bucket has the required prefixes and that the run history schema matches the models.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket prefixes",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the run history database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing prefixes")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema bool) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	// Connect to Database (Optional)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
		logg = logg.With(zap.String("driver", cfg.Database.Driver))
	}

	svc := integrity.NewService(store, cfg.Storage.Bucket, logg, db)

	if runStructure {
		// --fix only applies to the structure subcommand.
		fix := fixFlag && !runSchema
		logg.Info("Checking bucket structure...", zap.String("bucket", cfg.Storage.Bucket))
		report, err := svc.Structure(ctx, fix)
		if err != nil {
			logg.Fatal("Structure check failed", zap.Error(err))
		}

		switch report.Status {
		case integrity.StatusOK:
			logg.Info("Structure is intact.")
		case integrity.StatusFixed:
			logg.Info("Structure fixed successfully.", zap.Strings("created", report.Fixed))
		default:
			if !runSchema {
				logg.Info("Run with --fix to create missing prefixes.")
			}
		}
	}

	if runSchema {
		if db == nil {
			logg.Warn("Skipping schema check, no database connection")
			return
		}
		logg.Info("Checking run history schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
			return
		}
		if report.Matched {
			logg.Info("Schema matches the run history models.", zap.String("driver", report.Driver))
			return
		}

		logg.Warn("Schema mismatches found", zap.String("driver", report.Driver))
		for name, tbl := range report.Tables {
			if tbl.Status == "ok" {
				continue
			}
			if tbl.Status == "missing" {
				logg.Warn("Missing table", zap.String("table", name))
			}
			if len(tbl.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", name), zap.Strings("columns", tbl.MissingColumns))
			}
			if len(tbl.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", name), zap.Strings("mismatches", tbl.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
	}
}
