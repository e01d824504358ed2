// Package export writes the loaded dataset and its aggregates as downloadable
// files.
package export

import (
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"edadash/domain/dataset"
	"edadash/internal/errors"
)

// DataFrame converts the dataset into a string-typed dataframe. Dates are
// already coerced, so they are written in their canonical form.
func DataFrame(ds *dataset.Dataset) (dataframe.DataFrame, error) {
	if ds.Len() == 0 {
		return headerOnly(ds.Columns())
	}

	df := dataframe.LoadRecords(
		ds.Records(),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return df, errors.Wrap(df.Err, "failed to build dataframe")
	}
	return df, nil
}

// headerOnly builds a frame with the given columns and no rows.
// LoadRecords refuses a header without data.
func headerOnly(columns []string) (dataframe.DataFrame, error) {
	if len(columns) == 0 {
		return dataframe.DataFrame{}, errors.New(errors.CodeNoData, "dataset has no columns to export")
	}

	cols := make([]series.Series, len(columns))
	for i, name := range columns {
		cols[i] = series.New([]string{}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return df, errors.Wrap(df.Err, "failed to build dataframe")
	}
	return df, nil
}

// WriteCSV writes the dataset as CSV with a header row
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	df, err := DataFrame(ds)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(w); err != nil {
		return errors.Wrap(err, "failed to write CSV")
	}
	return nil
}
