package coercer

import (
	"testing"
	"time"

	"edadash/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "us date", input: "01/15/2025", want: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "us date without padding", input: "1/5/2025", want: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "iso date", input: "2025-01-16", want: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "iso datetime", input: "2025-01-16 10:30:00", want: time.Date(2025, 1, 16, 10, 30, 0, 0, time.UTC), ok: true},
		{name: "invalid month", input: "13/40/2025", ok: false},
		{name: "words", input: "sometime next week", ok: false},
		{name: "empty", input: "  ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ParseTimestamp(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestCoerceColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	numeric := c.CoerceColumn([]string{"10", " 5 ", "", "NaN", "8.5"})
	assert.True(t, numeric[0].IsNumeric())
	assert.True(t, numeric[1].IsNumeric())
	assert.True(t, numeric[2].IsMissing())
	assert.True(t, numeric[3].IsMissing())
	f, ok := numeric[4].AsFloat64()
	require.True(t, ok)
	assert.Equal(t, 8.5, f)

	mixed := c.CoerceColumn([]string{"10", "ten"})
	assert.Equal(t, dataset.ValueTypeString, mixed[0].Type)
	assert.Equal(t, "10", mixed[0].String())

	allNull := c.CoerceColumn([]string{"", "n/a"})
	assert.True(t, allNull[0].IsMissing())
	assert.True(t, allNull[1].IsMissing())
}

func TestCoerceDatesInvalidBecomesMissing(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	ds := dataset.New([]string{"Workshop Date"}, [][]dataset.Value{
		{dataset.NewStringValue("01/15/2025")},
		{dataset.NewStringValue("13/40/2025")},
		{dataset.NewMissingValue()},
	})

	report, err := c.CoerceDates(ds, "Workshop Date")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Parsed)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, []string{"13/40/2025"}, report.Examples)
	assert.Contains(t, report.Warning(), "1 Workshop Date value(s) could not be parsed")

	first, _ := ds.Cell(0, "Workshop Date")
	assert.True(t, first.IsTimestamp())
	second, _ := ds.Cell(1, "Workshop Date")
	assert.True(t, second.IsMissing())
}

func TestCoerceDatesMissingColumn(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	ds := dataset.New([]string{"a"}, nil)

	_, err := c.CoerceDates(ds, "Workshop Date")
	assert.Error(t, err)
}

func TestCoerceDatesNumericCells(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	ds := dataset.New([]string{"d"}, [][]dataset.Value{{dataset.NewNumericValue(20250115)}})

	report, err := c.CoerceDates(ds, "d")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, "", DateCoercion{Column: "d"}.Warning())
}
