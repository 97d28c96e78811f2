// Package errors defines the typed errors returned by the reconciliation core.
//
// Every typed error matches a sentinel through errors.Is, so callers can branch
// on the kind of failure without depending on the concrete type:
//
//	if errors.Is(err, apperrors.ErrNoKeyFound) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the reconciliation core.
var (
	// ErrFormat indicates a source that cannot be parsed as a table.
	ErrFormat = errors.New("malformed table")

	// ErrEmptyInput indicates a well-formed table with zero data rows.
	ErrEmptyInput = errors.New("table has no data rows")

	// ErrNoKeyFound indicates that no common key column could be determined.
	ErrNoKeyFound = errors.New("no common key column")

	// ErrWrite indicates the reconciled master could not be serialized.
	ErrWrite = errors.New("write failed")

	// ErrNotFound indicates that a stored artifact or record does not exist.
	ErrNotFound = errors.New("not found")
)

// FormatError reports a source that could not be parsed.
type FormatError struct {
	Source string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Source, ErrFormat)
	}
	return fmt.Sprintf("%s: %s: %v", e.Source, ErrFormat, e.Err)
}

// Is implements errors.Is support.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error { return e.Err }

// NewFormatError creates a FormatError for the named source.
func NewFormatError(source string, err error) *FormatError {
	return &FormatError{Source: source, Err: err}
}

// EmptyInputError reports a table whose header parsed but which holds no rows.
// It is not fatal: the loader still returns a usable, empty table.
type EmptyInputError struct {
	Source string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Source, ErrEmptyInput)
}

// Is implements errors.Is support.
func (e *EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

// NoKeyFoundError reports that the two tables share no usable key column.
type NoKeyFoundError struct {
	IncomingColumns []string
	MasterColumns   []string
}

func (e *NoKeyFoundError) Error() string {
	return fmt.Sprintf("%s: incoming columns [%s], master columns [%s]",
		ErrNoKeyFound,
		strings.Join(e.IncomingColumns, ", "),
		strings.Join(e.MasterColumns, ", "))
}

// Is implements errors.Is support.
func (e *NoKeyFoundError) Is(target error) bool { return target == ErrNoKeyFound }

// WriteError reports a failure producing the output artifact.
type WriteError struct {
	Format string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s output: %v", ErrWrite, e.Format, e.Err)
}

// Is implements errors.Is support.
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// Unwrap returns the underlying serialization error.
func (e *WriteError) Unwrap() error { return e.Err }

// NewWriteError creates a WriteError for the given output format.
func NewWriteError(format string, err error) *WriteError {
	return &WriteError{Format: format, Err: err}
}

// NotFoundError represents a missing upload, run or artifact.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
