// Package extract turns Nextflow run artifacts (log output, trace file,
// BCO provenance document) into provenance store records.
package extract

import (
	"errors"
	"fmt"
)

// Standard extraction error kinds.
var (
	// ErrSourceUnavailable indicates a log or trace source is missing or the
	// producing command failed.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrFormat indicates a required value could not be parsed into its
	// expected shape.
	ErrFormat = errors.New("unparsable value")

	// ErrMissingField indicates an expected column or key is absent.
	ErrMissingField = errors.New("missing field")

	// ErrUnresolvedReference indicates a provenance URI does not map to an
	// existing file or directory. Not fatal: the fingerprint stays absent.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// Error wraps an extraction failure with the source, row and field it came
// from, so every user-visible failure names the offending location.
type Error struct {
	Source string // file or command the value came from
	Row    int    // 1-based data row, 0 when not row-scoped
	Field  string // column or key name, empty when not field-scoped
	Err    error
}

func (e *Error) Error() string {
	msg := e.Source
	if e.Row > 0 {
		msg = fmt.Sprintf("%s row %d", msg, e.Row)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s field %q", msg, e.Field)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error comparison against the standard kinds.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}
