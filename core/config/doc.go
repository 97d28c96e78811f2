// Package config provides configuration management for master-sync.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults live in the `default` struct tags of each
// section and are registered by walking the structs with reflection.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, upload limit)
//   - Database: run history connection details (mysql or sqlite)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Reconcile: tracked columns, key candidates, number inference, preview size
//
// List settings are comma separated in the environment:
//
//	RECONCILE_TRACKED_COLUMNS="Total FTE,FTE Count"
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
