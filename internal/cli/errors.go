package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/session"
	"github.com/aidanlsb/ironlog/internal/store"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Input errors
	ErrInvalidDate     = "INVALID_DATE"
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"
	ErrPartialWrite   = "PARTIAL_WRITE"

	// Capture errors
	ErrSessionNotFound = "SESSION_NOT_FOUND"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrDatabaseError   = "DATABASE_ERROR"

	// Validation errors
	ErrValidationFailed = "VALIDATION_FAILED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnDigestStale = "DIGEST_STALE"
)

// errorCode maps an error to its stable code.
func errorCode(err error) string {
	var partial *store.PartialWriteError
	var docErr *store.DocumentError
	switch {
	case errors.Is(err, dates.ErrInvalidDate):
		return ErrInvalidDate
	case errors.As(err, &partial):
		if partial.Inconsistent() {
			return ErrPartialWrite
		}
		return ErrFileWriteError
	case errors.As(err, &docErr):
		return ErrFileReadError
	case errors.Is(err, session.ErrNotFound):
		return ErrSessionNotFound
	case errors.Is(err, session.ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, session.ErrInvalidEvent), errors.Is(err, session.ErrClosed):
		return ErrInvalidInput
	}
	return ErrInternal
}

// errorDetails returns structured details for errors that carry them.
func errorDetails(err error) interface{} {
	var partial *store.PartialWriteError
	if !errors.As(err, &partial) {
		return nil
	}
	failed := make([]map[string]string, 0, len(partial.Failures))
	for _, f := range partial.Failures {
		failed = append(failed, map[string]string{
			"document": f.Document,
			"path":     f.Path,
			"error":    f.Err.Error(),
		})
	}
	return map[string]interface{}{
		"date":    partial.Date,
		"written": partial.Written,
		"failed":  failed,
	}
}

// failErr reports err with the code and details derived from it.
func (a *app) failErr(cmd *cobra.Command, err error, suggestion string) error {
	return a.failWithDetails(cmd, errorCode(err), err, suggestion, errorDetails(err))
}
