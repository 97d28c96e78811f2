package errors_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	apperrors "master-sync/core/errors"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"Format", apperrors.NewFormatError("master.csv", io.ErrUnexpectedEOF), apperrors.ErrFormat},
		{"EmptyInput", &apperrors.EmptyInputError{Source: "incoming.csv"}, apperrors.ErrEmptyInput},
		{"NoKey", &apperrors.NoKeyFoundError{IncomingColumns: []string{"Name"}, MasterColumns: []string{"ID"}}, apperrors.ErrNoKeyFound},
		{"Write", apperrors.NewWriteError("xlsx", io.ErrShortWrite), apperrors.ErrWrite},
		{"NotFound", apperrors.NewNotFoundError("run", "abc"), apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("run failed: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestFormatError_Unwrap(t *testing.T) {
	err := apperrors.NewFormatError("master.xlsx", io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "master.xlsx")

	var fe *apperrors.FormatError
	assert.True(t, errors.As(fmt.Errorf("load: %w", err), &fe))
	assert.Equal(t, "master.xlsx", fe.Source)
}

func TestNoKeyFoundError_ListsColumns(t *testing.T) {
	err := &apperrors.NoKeyFoundError{
		IncomingColumns: []string{"Name", "Total FTE"},
		MasterColumns:   []string{"ID", "Total FTE"},
	}
	assert.Contains(t, err.Error(), "Name, Total FTE")
	assert.Contains(t, err.Error(), "ID, Total FTE")
	assert.False(t, errors.Is(err, apperrors.ErrFormat))
}
