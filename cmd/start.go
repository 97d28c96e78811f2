package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"master-sync/core/config"
	"master-sync/core/database"
	"master-sync/core/loader"
	"master-sync/core/logger"
	"master-sync/core/middleware/auth"
	"master-sync/core/middleware/rayid"
	"master-sync/core/storage"

	"master-sync/feature/integrity"
	"master-sync/feature/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "master-sync/docs/swagger"
)

// @title master-sync API
// @version 1.0
// @description API for reconciling incoming tables into master tables.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Run history is optional; without it runs are still stored and
		// downloadable.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, run history disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		ensureBucket(cmd.Context(), store, cfg.Storage, logg)

		mgr := loader.NewManager()
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, logg, db))
		mgr.Register(reconcile.NewFeature(store, cfg.Storage.Bucket, logg, db, cfg.Reconcile))

		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger documentation stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", mgr.Loaded()))

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

// ensureBucket creates the configured bucket if needed. Failures are only
// logged; the integrity feature reports them in detail.
func ensureBucket(ctx context.Context, store storage.Client, cfg storage.Config, logg *zap.Logger) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	created, err := storage.EnsureBucket(ctx, store, cfg.Bucket, cfg.Region)
	if err != nil {
		logg.Warn("Could not verify storage bucket", zap.String("bucket", cfg.Bucket), zap.Error(err))
		return
	}
	if created {
		logg.Info("Created storage bucket", zap.String("bucket", cfg.Bucket))
	}
}
