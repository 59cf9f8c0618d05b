// SPDX-License-Identifier: MIT

package activity

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Daily sequence column names, as written by the original tooling.
const (
	ColDay   = "gun"
	ColTotal = "value"
	ColState = "durum"
)

// WriteSequence encodes seq as "gun,value,durum" rows in stored order.
// Totals use the shortest round-trip decimal form, so identical sequences
// always encode to identical bytes.
func WriteSequence(w io.Writer, seq DailySequence, vocab Vocabulary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColDay, ColTotal, ColState}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, 3)
	for _, r := range seq {
		row[0] = r.Day.Format(DateLayout)
		row[1] = strconv.FormatFloat(r.Total, 'f', -1, 64)
		row[2] = vocab.Label(r.State)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", row[0], err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteSequenceFile writes seq to path atomically: the CSV is written to a
// temporary file in the same directory and renamed over path.
func WriteSequenceFile(path string, seq DailySequence, vocab Vocabulary) error {
	var buf bytes.Buffer
	if err := WriteSequence(&buf, seq, vocab); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stepchain-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}

	return nil
}

// ReadSequenceFile opens path and decodes it with ReadSequence.
// A missing file yields ErrDataNotFound.
func ReadSequenceFile(path string) (DailySequence, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrDataNotFound)
		}
		return nil, fmt.Errorf("open sequence: %w", err)
	}
	defer f.Close()

	seq, err := ReadSequence(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// ReadSequence decodes "gun,value,durum" rows in stored order. It does not
// enforce contiguity; call DailySequence.Validate for that.
// The "durum" column accepts any label understood by ParseState.
func ReadSequence(r io.Reader) (DailySequence, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header, ColDay, ColTotal, ColState)
	if err != nil {
		return nil, err
	}

	var (
		seq  DailySequence
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

		var d DailyRecord
		if d.Day, err = parseDay(rec[idx[ColDay]]); err != nil {
			return nil, &RecordError{Line: line, Column: ColDay, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		if d.Total, err = parseValue(rec[idx[ColTotal]]); err != nil {
			return nil, &RecordError{Line: line, Column: ColTotal, Err: err}
		}
		if d.State, err = ParseState(rec[idx[ColState]]); err != nil {
			return nil, &RecordError{Line: line, Column: ColState, Err: err}
		}
		seq = append(seq, d)
	}

	return seq, nil
}

// parseDay accepts a plain ISO date or a midnight timestamp
// ("2024-03-01 00:00:00"), which is how date columns round-trip through
// datetime-typed tooling.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	return calendarDay(t), nil
}
