// Package reconcile exposes table reconciliation over HTTP.
//
// A client first uploads the incoming table, which is validated, previewed and
// staged in object storage under an upload id. Uploading a master against that
// id runs the reconciliation, stores the updated master under a run id and
// records the run in the history database when one is configured. Both tables
// can also be sent in a single request.
//
// # HTTP Endpoints
//
//   - POST /reconcile/incoming : stage an incoming table (multipart "file").
//   - POST /reconcile/incoming/:uploadID/master : run against a master (multipart "master_file").
//   - POST /reconcile : run with both tables (multipart "incoming" and "master").
//   - GET /reconcile/runs : list recorded runs (?limit=N).
//   - GET /reconcile/runs/:runID : one recorded run.
//   - GET /reconcile/runs/:runID/download : the updated master.
package reconcile
