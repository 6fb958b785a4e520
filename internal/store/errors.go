package store

import (
	"fmt"
	"strings"
)

// DocumentError is an I/O failure on one document. The document on disk is
// left as it was before the write.
type DocumentError struct {
	Document string
	Path     string
	Err      error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s document %s: %v", e.Document, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// PartialWriteError reports an operation where at least one document failed.
// Documents listed in Written were updated and are not rolled back.
type PartialWriteError struct {
	Op       Op
	Date     string
	Written  []string
	Failures []*DocumentError
}

func (e *PartialWriteError) Error() string {
	failed := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		failed = append(failed, f.Error())
	}
	written := "none"
	if len(e.Written) > 0 {
		written = strings.Join(e.Written, ", ")
	}
	return fmt.Sprintf("%s %s: wrote %s; failed: %s", e.Op, e.Date, written, strings.Join(failed, "; "))
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *PartialWriteError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// Inconsistent reports whether some documents were written while others
// failed, leaving the views out of step.
func (e *PartialWriteError) Inconsistent() bool {
	return len(e.Written) > 0
}
