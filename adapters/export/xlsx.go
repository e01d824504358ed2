package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"edadash/app"
	"edadash/domain/chart"
	"edadash/domain/dataset"
	"edadash/internal/errors"
)

// Sheet names of the summary workbook
const (
	SummarySheet = "Summary"
	DailySheet   = "Daily Totals"
	DataSheet    = "Data"
)

// Metric is one labelled counter of the summary sheet
type Metric struct {
	Name  string
	Value int
}

// Workbook describes the contents of the summary export
type Workbook struct {
	Source  string
	Metrics []Metric
	Line    *chart.Line
	Dataset *dataset.Dataset
}

// NewWorkbook collects the export contents of a dashboard run. The summary
// and daily totals are only present when the required columns were found.
func NewWorkbook(view *app.View) Workbook {
	wb := Workbook{Source: view.Source, Dataset: view.Dataset}
	if view.Summary != nil {
		wb.Metrics = []Metric{
			{Name: "Total Records", Value: view.Summary.TotalRecords},
			{Name: "Unique Sessions", Value: view.Summary.UniqueSessions},
			{Name: "Unique Dates", Value: view.Summary.UniqueDates},
		}
	}
	if view.Charts != nil {
		wb.Line = view.Charts.Line
	}
	return wb
}

// WriteXLSX writes the summary metrics, the per-date totals and the raw rows
// as a three-sheet workbook
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return errors.Wrap(err, "failed to name summary sheet")
	}

	summary := [][]interface{}{{"Metric", "Value"}}
	if wb.Source != "" {
		summary = append(summary, []interface{}{"Source", wb.Source})
	}
	for _, m := range wb.Metrics {
		summary = append(summary, []interface{}{m.Name, m.Value})
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		return err
	}

	if wb.Line != nil {
		if _, err := f.NewSheet(DailySheet); err != nil {
			return errors.Wrap(err, "failed to add daily sheet")
		}
		daily := [][]interface{}{{wb.Line.XLabel, wb.Line.YLabel}}
		for _, p := range wb.Line.Points {
			daily = append(daily, []interface{}{p.Date.Format(dataset.DateLayout), p.Value})
		}
		if err := writeRows(f, DailySheet, daily); err != nil {
			return err
		}
	}

	if wb.Dataset != nil {
		if _, err := f.NewSheet(DataSheet); err != nil {
			return errors.Wrap(err, "failed to add data sheet")
		}
		rows := [][]interface{}{toInterfaces(wb.Dataset.Columns())}
		for i := 0; i < wb.Dataset.Len(); i++ {
			row := wb.Dataset.Row(i)
			cells := make([]interface{}, len(row))
			for j, v := range row {
				cells[j] = v.Interface()
			}
			rows = append(rows, cells)
		}
		if err := writeRows(f, DataSheet, rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return errors.Wrapf(err, "invalid cell %d,%d", j+1, i+1)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return errors.Wrapf(err, "failed to set %s!%s", sheet, cell)
			}
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		last, _ := excelize.ColumnNumberToName(len(rows[0]))
		if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
			return errors.Wrapf(err, "failed to size %s columns", sheet)
		}
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
