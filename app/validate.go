package app

import (
	"edadash/domain/dataset"
	"edadash/internal/config"
	"edadash/internal/errors"
)

// SchemaFromConfig applies the configured column names over the defaults
func SchemaFromConfig(cols config.ColumnsConfig) dataset.Schema {
	schema := dataset.DefaultSchema()
	schema.Date = cols.Date
	schema.Count = cols.Count
	schema.Session = cols.Session
	schema.Label = cols.Label
	return schema
}

// MissingColumns returns every required column absent from the dataset
func MissingColumns(ds *dataset.Dataset, schema dataset.Schema) []string {
	var missing []string
	for _, col := range schema.Required() {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateColumns checks every required column and reports all missing ones
func ValidateColumns(ds *dataset.Dataset, schema dataset.Schema) error {
	if missing := MissingColumns(ds, schema); len(missing) > 0 {
		return errors.MissingColumns(missing)
	}
	return nil
}
