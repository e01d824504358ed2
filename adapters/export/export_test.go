package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"edadash/app"
	"edadash/domain/chart"
	"edadash/domain/dataset"
	"edadash/internal/errors"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, dataset.Sample(dataset.DefaultSchema())))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Entered Interval,Exited Interval,Entry Count,Time in Session,OTO/Non OTO,Workshop Date", lines[0])
	assert.Equal(t, "11:00 - 11:15,13:45 - 14:00,10,30 - 59,Non OTO,01/15/2025", lines[1])
}

func TestDataFrameKeepsShape(t *testing.T) {
	df, err := DataFrame(dataset.Sample(dataset.DefaultSchema()))
	require.NoError(t, err)

	rows, cols := df.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 6, cols)
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	ds := dataset.New([]string{"Entry Count", "Workshop Date"}, nil)

	df, err := DataFrame(ds)
	require.NoError(t, err)
	rows, cols := df.Dims()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 2, cols)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds))
	assert.Equal(t, "Entry Count,Workshop Date\n", buf.String())
}

func TestWriteCSVNoColumns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, dataset.New(nil, nil))
	require.Error(t, err)
	assert.Equal(t, errors.CodeNoData, errors.GetCode(err))
}

func TestWriteXLSX(t *testing.T) {
	line := &chart.Line{
		XLabel: "Workshop Date",
		YLabel: "Entry Count",
		Points: []chart.LinePoint{
			{Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Value: 10},
			{Date: time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC), Value: 13},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook{
		Source:  "sample data",
		Metrics: []Metric{{Name: "Total Records", Value: 4}, {Name: "Unique Sessions", Value: 3}},
		Line:    line,
		Dataset: dataset.Sample(dataset.DefaultSchema()),
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, DailySheet, DataSheet}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Metric", "Value"},
		{"Source", "sample data"},
		{"Total Records", "4"},
		{"Unique Sessions", "3"},
	}, summary)

	daily, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	require.Len(t, daily, 3)
	assert.Equal(t, []string{"2025-01-16", "13"}, daily[2])

	data, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, data, 5)
	assert.Equal(t, "Entry Count", data[0][2])
	assert.Equal(t, "12", data[4][2])
}

func TestWriteXLSXSummaryOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, Workbook{Metrics: []Metric{{Name: "Total Records", Value: 0}}}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SummarySheet}, f.GetSheetList())
}

func TestNewWorkbook(t *testing.T) {
	view, err := app.NewDashboard(dataset.DefaultSchema()).Run(context.Background(), app.Source{UseSample: true}, app.Selection{})
	require.NoError(t, err)

	wb := NewWorkbook(view)
	assert.Equal(t, "sample data", wb.Source)
	assert.Equal(t, []Metric{
		{Name: "Total Records", Value: 4},
		{Name: "Unique Sessions", Value: 3},
		{Name: "Unique Dates", Value: 3},
	}, wb.Metrics)
	require.NotNil(t, wb.Line)
	assert.Len(t, wb.Line.Points, 3)

	missing := NewWorkbook(&app.View{Source: "other.csv"})
	assert.Empty(t, missing.Metrics)
	assert.Nil(t, missing.Line)
}
