// Package logger builds the zap logger shared by the server, the CLI and the
// reconciliation pipeline.
//
// Config selects the level (debug, info, warn, error; anything else falls
// back to info) and the encoding: json for the server, console for humans.
//
// Request handlers derive a child logger with WithRayID so every line
// written while serving a request, including pipeline warnings, carries the
// request's ray_id:
//
//	l := logger.WithRayID(log, c)
//	l.Warn("Reconciliation failed", zap.Error(err))
package logger
