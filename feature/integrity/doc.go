// Package integrity provides system health checks.
//
// Unlike the 'reconcile' package which processes tables, this package
// validates the infrastructure the service depends on.
//
// # Checks Provided
//
//   - Structure: Checks that the artifact prefixes (incoming/, results/) exist in the storage bucket.
//   - Schema: Validates that the run history table matches its GORM model (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check.
package integrity
