// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package
// only defines the settings it reads: the listen port, the API key guarding
// every route and the upload size limit applied to the Fiber app.
package server
