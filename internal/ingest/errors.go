package ingest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is wrapped by every schema and parse failure so callers can
	// treat the whole class as a rejected batch.
	ErrValidation = errors.New("data validation error")

	// ErrUnsupportedFormat is returned for file extensions with no reader.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptyInput is returned when the input has no header row.
	ErrEmptyInput = errors.New("input has no header row")
)

// MissingColumnsError names the required columns absent after normalization.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrValidation }

// InvalidDateError reports date cells that could not be parsed.
// Row is the 1-based data row of the first bad cell.
type InvalidDateError struct {
	Value string
	Row   int
	Count int
}

func (e *InvalidDateError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("invalid date format in date column: row %d %q (and %d more)", e.Row, e.Value, e.Count-1)
	}
	return fmt.Sprintf("invalid date format in date column: row %d %q", e.Row, e.Value)
}

func (e *InvalidDateError) Unwrap() error { return ErrValidation }

// InvalidNumberError reports a numeric cell that could not be parsed.
type InvalidNumberError struct {
	Column string
	Value  string
	Row    int
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid number in %s column: row %d %q", e.Column, e.Row, e.Value)
}

func (e *InvalidNumberError) Unwrap() error { return ErrValidation }
