package app

import (
	"edadash/domain/dataset"
	"edadash/internal/errors"
)

// Summary holds the three dashboard counters
type Summary struct {
	TotalRecords   int `json:"total_records"`
	UniqueSessions int `json:"unique_sessions"`
	UniqueDates    int `json:"unique_dates"`
}

// Summarize computes row count and distinct session and date counts
func Summarize(ds *dataset.Dataset, schema dataset.Schema) (Summary, error) {
	sessions, err := ds.DistinctCount(schema.Session)
	if err != nil {
		return Summary{}, errors.Wrap(err, "unique sessions")
	}
	dates, err := ds.DistinctCount(schema.Date)
	if err != nil {
		return Summary{}, errors.Wrap(err, "unique dates")
	}
	return Summary{
		TotalRecords:   ds.Len(),
		UniqueSessions: sessions,
		UniqueDates:    dates,
	}, nil
}
