package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleShape(t *testing.T) {
	ds := Sample(DefaultSchema())

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, []string{"Entered Interval", "Exited Interval", "Entry Count", "Time in Session", "OTO/Non OTO", "Workshop Date"}, ds.Columns())

	sessions, err := ds.DistinctCount("Time in Session")
	require.NoError(t, err)
	assert.Equal(t, 3, sessions)

	dates, err := ds.DistinctCount("Workshop Date")
	require.NoError(t, err)
	assert.Equal(t, 3, dates)
}

func TestNewPadsShortRows(t *testing.T) {
	ds := New([]string{"a", "b", "c"}, [][]Value{
		{NewStringValue("x")},
		{NewStringValue("y"), NewNumericValue(1), NewNumericValue(2), NewNumericValue(3)},
	})

	assert.Len(t, ds.Row(0), 3)
	assert.True(t, ds.Row(0)[2].IsMissing())
	assert.Len(t, ds.Row(1), 3)
}

func TestDistinctCountSkipsMissing(t *testing.T) {
	ds := New([]string{"d"}, [][]Value{
		{NewMissingValue()},
		{NewStringValue("a")},
		{NewStringValue("a")},
		{NewStringValue("")},
	})

	n, err := ds.DistinctCount("d")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = ds.DistinctCount("nope")
	assert.Error(t, err)
}

func TestDistinctCountSeparatesTypes(t *testing.T) {
	ds := New([]string{"v"}, [][]Value{
		{NewNumericValue(1)},
		{NewStringValue("1")},
	})

	n, err := ds.DistinctCount("v")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReplaceColumn(t *testing.T) {
	ds := Sample(DefaultSchema())
	values := make([]Value, ds.Len())
	for i := range values {
		values[i] = NewTimestampValue(time.Date(2025, 1, 15+i, 0, 0, 0, 0, time.UTC))
	}

	require.NoError(t, ds.ReplaceColumn("Workshop Date", values))
	v, ok := ds.Cell(3, "Workshop Date")
	require.True(t, ok)
	assert.Equal(t, "2025-01-18", v.String())

	assert.Error(t, ds.ReplaceColumn("Workshop Date", values[:2]))
	assert.Error(t, ds.ReplaceColumn("missing", values))
}

func TestRecords(t *testing.T) {
	ds := New([]string{"n", "s"}, [][]Value{
		{NewNumericValue(2.5), NewMissingValue()},
		{NewNumericValue(10), NewStringValue("x")},
	})

	assert.Equal(t, [][]string{{"n", "s"}, {"2.5", ""}, {"10", "x"}}, ds.Records())
}

func TestValueFormatting(t *testing.T) {
	assert.Equal(t, "12", NewNumericValue(12).String())
	assert.Equal(t, "", NewMissingValue().String())
	assert.Nil(t, NewMissingValue().Interface())
	assert.Equal(t, 3.0, NewNumericValue(3).Interface())
	assert.True(t, Value{}.IsMissing())

	ts := NewTimestampValue(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, "2025-01-02 03:04:05", ts.String())

	_, ok := NewStringValue("a").AsFloat64()
	assert.False(t, ok)
}
