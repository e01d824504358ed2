package coercer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"edadash/domain/dataset"
)

// TypeCoercer turns raw cell text into typed dataset values
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	DateLayouts []string `json:"date_layouts"` // tried in order; first match wins
	NullTokens  []string `json:"null_tokens"`  // case-insensitive spellings of "no value"
}

// DefaultCoercionConfig returns the rules used by the loader
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DateLayouts: []string{
			"01/02/2006",
			"1/2/2006",
			"2006-01-02",
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"01/02/2006 15:04:05",
			"1/2/2006 15:04",
			"01-02-06",
			"1/2/06",
			"01/02/06",
			"2006/01/02",
			"02-Jan-2006",
			"Jan 2, 2006",
			"January 2, 2006",
		},
		NullTokens: []string{"", "na", "n/a", "nan", "null", "none", "#n/a", "<na>"},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// IsNull reports whether raw text spells a missing value
func (c *TypeCoercer) IsNull(raw string) bool {
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, tok := range c.config.NullTokens {
		if lower == tok {
			return true
		}
	}
	return false
}

// ParseNumeric parses a plain decimal or scientific number
func (c *TypeCoercer) ParseNumeric(raw string) (float64, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}

// ParseTimestamp tries every configured layout
func (c *TypeCoercer) ParseTimestamp(raw string) (time.Time, bool) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return time.Time{}, false
	}
	for _, layout := range c.config.DateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CoerceColumn types one column of raw cells. A column is numeric when every
// non-null cell parses as a number, otherwise every non-null cell is a string.
func (c *TypeCoercer) CoerceColumn(raw []string) []dataset.Value {
	out := make([]dataset.Value, len(raw))

	numeric := true
	nonNull := 0
	for _, cell := range raw {
		if c.IsNull(cell) {
			continue
		}
		nonNull++
		if _, ok := c.ParseNumeric(cell); !ok {
			numeric = false
			break
		}
	}
	numeric = numeric && nonNull > 0

	for i, cell := range raw {
		switch {
		case c.IsNull(cell):
			out[i] = dataset.NewMissingValue()
		case numeric:
			n, _ := c.ParseNumeric(cell)
			out[i] = dataset.NewNumericValue(n)
		default:
			out[i] = dataset.NewStringValue(strings.TrimSpace(cell))
		}
	}
	return out
}

// DateCoercion summarizes a date-column conversion
type DateCoercion struct {
	Column   string   `json:"column"`
	Parsed   int      `json:"parsed"`
	Invalid  int      `json:"invalid"` // present but unparseable, now missing
	Missing  int      `json:"missing"` // missing before coercion
	Examples []string `json:"examples,omitempty"`
}

// Warning returns the user-facing message for invalid values, or "" when none
func (r DateCoercion) Warning() string {
	if r.Invalid == 0 {
		return ""
	}
	msg := fmt.Sprintf("%d %s value(s) could not be parsed and were set to missing", r.Invalid, r.Column)
	if len(r.Examples) > 0 {
		msg += fmt.Sprintf(" (e.g. %q)", r.Examples[0])
	}
	return msg
}

const maxExamples = 3

// CoerceDates converts the named column of ds to timestamps in place.
// Unparseable values become the missing-value marker; they never fail the run.
func (c *TypeCoercer) CoerceDates(ds *dataset.Dataset, column string) (DateCoercion, error) {
	report := DateCoercion{Column: column}

	values, err := ds.Column(column)
	if err != nil {
		return report, err
	}

	converted := make([]dataset.Value, len(values))
	for i, v := range values {
		if v.IsMissing() {
			report.Missing++
			converted[i] = dataset.NewMissingValue()
			continue
		}
		if v.IsTimestamp() {
			report.Parsed++
			converted[i] = v
			continue
		}
		if t, ok := c.ParseTimestamp(v.String()); ok {
			report.Parsed++
			converted[i] = dataset.NewTimestampValue(t)
			continue
		}
		report.Invalid++
		if len(report.Examples) < maxExamples {
			report.Examples = append(report.Examples, v.String())
		}
		converted[i] = dataset.NewMissingValue()
	}

	if err := ds.ReplaceColumn(column, converted); err != nil {
		return report, err
	}
	return report, nil
}
