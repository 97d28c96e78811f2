// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure the run history database
// from the application's configuration. MySQL is the production driver;
// SQLite serves local runs and tests.
//
// # Schema Inspection
//
// TableColumns reads a table's column definitions so the integrity feature
// can compare the live schema with the GORM models it expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.TableColumns(db, "reconcile_runs")
package database
