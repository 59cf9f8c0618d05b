// SPDX-License-Identifier: MIT

package activity_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepchain/activity"
)

const rawFixture = "\ufeffuser_id,start,end,value,source\n" +
	"4,2024-03-01 08:00:00,2024-03-01 08:10:00,600,phone\n" +
	"4,2024-03-01 19:00:00.250,2024-03-01 19:30:00,,phone\n" +
	"4.0,2024-03-02T07:00:00Z,2024-03-02T07:05:00Z,NaN,watch\n" +
	"1,2024-03-02 07:00,2024-03-02 07:05,123.5,watch\n"

func TestReadRaw(t *testing.T) {
	got, err := activity.ReadRaw(strings.NewReader(rawFixture))
	require.NoError(t, err)
	require.Len(t, got, 4)

	require.Equal(t, 4, got[0].SubjectID)
	require.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), got[0].Start)
	require.Equal(t, 600.0, got[0].Value)
	require.Equal(t, 0.0, got[1].Value, "empty value counts as zero")
	require.Equal(t, 250*time.Millisecond, got[1].Start.Sub(time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC)))
	require.Equal(t, 4, got[2].SubjectID)
	require.Equal(t, 0.0, got[2].Value, "NaN counts as zero")
	require.Equal(t, 1, got[3].SubjectID)
	require.Equal(t, 123.5, got[3].Value)
}

func TestReadRaw_Errors(t *testing.T) {
	_, err := activity.ReadRaw(strings.NewReader(""))
	require.ErrorIs(t, err, activity.ErrMissingColumn)

	_, err = activity.ReadRaw(strings.NewReader("user_id,start,value\n"))
	require.ErrorIs(t, err, activity.ErrMissingColumn)

	_, err = activity.ReadRaw(strings.NewReader("user_id,start,end,value\n4,yesterday,2024-03-01 08:00:00,1\n"))
	require.ErrorIs(t, err, activity.ErrMalformedRecord)
	var rerr *activity.RecordError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, 2, rerr.Line)
	require.Equal(t, activity.ColStart, rerr.Column)

	_, err = activity.ReadRaw(strings.NewReader("user_id,start,end,value\n4,2024-03-01,2024-03-01,-5\n"))
	require.ErrorIs(t, err, activity.ErrInvalidSample)

	_, err = activity.ReadRaw(strings.NewReader("user_id,start,end,value\n4.5,2024-03-01,2024-03-01,5\n"))
	require.ErrorIs(t, err, activity.ErrMalformedRecord)

	_, err = activity.ReadRaw(strings.NewReader("user_id,start,end,value\n4,2024-03-01,2024-03-01\n"))
	require.ErrorIs(t, err, activity.ErrMalformedRecord)
}

func TestReadRawFile_Missing(t *testing.T) {
	_, err := activity.ReadRawFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, activity.ErrDataNotFound)

	_, err = activity.ReadSequenceFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, activity.ErrDataNotFound)
}

func TestWriteSequence_Format(t *testing.T) {
	seq := activity.DailySequence{record(1, 1000), record(2, 5000.5), record(3, 12000)}

	var buf bytes.Buffer
	require.NoError(t, activity.WriteSequence(&buf, seq, activity.Turkish))
	require.Equal(t,
		"gun,value,durum\n"+
			"2024-03-01,1000,Düşük Aktivite\n"+
			"2024-03-02,5000.5,Orta Aktivite\n"+
			"2024-03-03,12000,Yüksek Aktivite\n",
		buf.String())
}

func TestSequenceFile_RoundTripIsIdempotent(t *testing.T) {
	seq := activity.DailySequence{record(1, 0), record(2, 4000), record(3, 4000.25), record(4, 9001)}
	path := filepath.Join(t.TempDir(), "gunluk_veriler.csv")

	require.NoError(t, activity.WriteSequenceFile(path, seq, activity.Turkish))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	back, err := activity.ReadSequenceFile(path)
	require.NoError(t, err)
	require.Equal(t, seq, back)
	mustValid(t, back)

	// Rewriting what was read produces the same bytes.
	require.NoError(t, activity.WriteSequenceFile(path, back, activity.Turkish))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadSequence_AcceptsTimestampsAndEnglishLabels(t *testing.T) {
	in := "gun,value,durum\n" +
		"2024-03-01 00:00:00,100,Low Activity\n" +
		"2024-03-02,9500,High\n"
	seq, err := activity.ReadSequence(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, days(seq))
	require.Equal(t, []activity.State{activity.Low, activity.High}, seq.States())
}

func TestReadSequence_Errors(t *testing.T) {
	_, err := activity.ReadSequence(strings.NewReader("gun,value\n"))
	require.ErrorIs(t, err, activity.ErrMissingColumn)

	_, err = activity.ReadSequence(strings.NewReader("gun,value,durum\n2024-03-01,1,Bilinmiyor\n"))
	require.ErrorIs(t, err, activity.ErrUnknownState)
	var rerr *activity.RecordError
	require.True(t, errors.As(err, &rerr))
	require.Equal(t, activity.ColState, rerr.Column)

	_, err = activity.ReadSequence(strings.NewReader("gun,value,durum\nmarch,1,Low\n"))
	require.ErrorIs(t, err, activity.ErrMalformedRecord)

	// Gaps are read as-is; contiguity is the caller's check.
	seq, err := activity.ReadSequence(strings.NewReader("gun,value,durum\n2024-03-01,1,Low\n2024-03-04,1,Low\n"))
	require.NoError(t, err)
	require.ErrorIs(t, seq.Validate(), activity.ErrNotContiguous)
}
