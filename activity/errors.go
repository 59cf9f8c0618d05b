// SPDX-License-Identifier: MIT
// Package activity: sentinel errors and the typed record error.
// Callers match with errors.Is / errors.As; messages carry the "activity:" prefix.

package activity

import (
	"errors"
	"fmt"
)

var (
	// ErrDataNotFound is returned when the raw telemetry file is absent.
	ErrDataNotFound = errors.New("activity: data file not found")

	// ErrMissingColumn signals that a required CSV header is absent.
	ErrMissingColumn = errors.New("activity: required column missing")

	// ErrMalformedRecord signals an unparsable CSV field.
	ErrMalformedRecord = errors.New("activity: malformed record")

	// ErrInvalidSample signals a parsable but illegal sample (e.g. negative value).
	ErrInvalidSample = errors.New("activity: invalid sample")

	// ErrUnknownState signals a state label outside the closed alphabet.
	ErrUnknownState = errors.New("activity: unknown state")

	// ErrNoSamples is returned when the requested subject has no samples.
	ErrNoSamples = errors.New("activity: no samples for subject")

	// ErrNotContiguous is returned when adjacent records are not one day apart
	// (or not strictly increasing).
	ErrNotContiguous = errors.New("activity: sequence is not contiguous")
)

// RecordError pins a CSV parsing failure to its line and column.
// It unwraps to one of the sentinels above.
type RecordError struct {
	Line   int    // 1-based line number in the source file (header is line 1)
	Column string // header name of the offending field
	Err    error  // underlying sentinel, possibly wrapping a strconv/time error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
