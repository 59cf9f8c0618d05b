// SPDX-License-Identifier: MIT

package activity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Raw telemetry column names.
const (
	ColUserID = "user_id"
	ColStart  = "start"
	ColEnd    = "end"
	ColValue  = "value"
)

// timestampLayouts are tried in order. Fractional seconds are accepted by
// time.Parse after the seconds field even when a layout omits them.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// ParseTimestamp parses the timestamp formats found in step-count exports.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// ReadRawFile opens path and decodes it with ReadRaw.
// A missing file yields ErrDataNotFound.
func ReadRawFile(path string) ([]RawSample, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrDataNotFound)
		}
		return nil, fmt.Errorf("open raw data: %w", err)
	}
	defer f.Close()

	samples, err := ReadRaw(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// ReadRaw decodes a delimited telemetry file with at least the columns
// user_id, start, end and value (any order, extra columns ignored).
//
// Behavior highlights:
//   - An empty or "NaN" value counts as a missing value and contributes 0.
//   - A negative value is rejected with ErrInvalidSample.
//   - Parse failures are *RecordError values wrapping ErrMalformedRecord.
func ReadRaw(r io.Reader) ([]RawSample, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header, ColUserID, ColStart, ColEnd, ColValue)
	if err != nil {
		return nil, err
	}

	var (
		out  []RawSample
		line = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &RecordError{Line: line, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}

		var s RawSample
		if s.SubjectID, err = parseSubjectID(rec[idx[ColUserID]]); err != nil {
			return nil, &RecordError{Line: line, Column: ColUserID, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		if s.Start, err = ParseTimestamp(rec[idx[ColStart]]); err != nil {
			return nil, &RecordError{Line: line, Column: ColStart, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		if s.End, err = ParseTimestamp(rec[idx[ColEnd]]); err != nil {
			return nil, &RecordError{Line: line, Column: ColEnd, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		if s.Value, err = parseValue(rec[idx[ColValue]]); err != nil {
			return nil, &RecordError{Line: line, Column: ColValue, Err: err}
		}
		out = append(out, s)
	}

	return out, nil
}

func parseSubjectID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.Atoi(s); err == nil {
		return id, nil
	}
	// Exports that went through a float column write "4.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("non-integral id %q", s)
	}
	return int(f), nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if math.IsNaN(v) {
		return 0, nil
	}
	if v < 0 || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: value %v", ErrInvalidSample, v)
	}
	return v, nil
}

// columnIndex maps each required header name to its position.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrMissingColumn)
		}
	}
	return idx, nil
}
