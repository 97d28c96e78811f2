package storage

import (
	"path"
	"strings"
)

// Artifact prefixes. Every object the service writes lives under one of them.
const (
	IncomingPrefix = "incoming"
	ResultsPrefix  = "results"
)

// RequiredPrefixes lists the folders the bucket is expected to hold.
var RequiredPrefixes = []string{IncomingPrefix, ResultsPrefix}

// IncomingKey returns the object name of a staged incoming upload.
func IncomingKey(uploadID, filename string) string {
	return path.Join(IncomingPrefix, uploadID, SafeName(filename))
}

// IncomingDir returns the prefix holding every object of one upload.
func IncomingDir(uploadID string) string {
	return path.Join(IncomingPrefix, uploadID) + "/"
}

// ResultKey returns the object name of a run's updated master.
func ResultKey(runID, filename string) string {
	return path.Join(ResultsPrefix, runID, SafeName(filename))
}

// SafeName strips directories from a client supplied filename.
func SafeName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return "upload"
	}
	return name
}

// ResultDir returns the prefix holding a run's artifacts.
func ResultDir(runID string) string {
	return path.Join(ResultsPrefix, runID) + "/"
}
