package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"edadash/domain/chart"
	"edadash/domain/dataset"
	"edadash/internal/errors"
	"edadash/internal/logging"
)

var dashboardLog = logging.For("Dashboard")

// View is everything the page shows for one run
type View struct {
	RunID          string           `json:"run_id"`
	Source         string           `json:"source,omitempty"`
	Halted         bool             `json:"halted"`
	Advisory       string           `json:"advisory,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
	Columns        []string         `json:"columns,omitempty"`
	Controls       *Controls        `json:"controls,omitempty"`
	Summary        *Summary         `json:"summary,omitempty"`
	Charts         *chart.Panel     `json:"charts,omitempty"`
	MissingColumns []string         `json:"missing_columns,omitempty"`
	Error          string           `json:"error,omitempty"`
	Elapsed        time.Duration    `json:"elapsed_ns"`
	Dataset        *dataset.Dataset `json:"-"`
}

// Ready reports whether the summary and charts were computed
func (v *View) Ready() bool {
	return v.Charts != nil && v.Summary != nil
}

// Dashboard runs the load, select, summarize, chart pipeline
type Dashboard struct {
	schema dataset.Schema
	loader *Loader
	charts *ChartBuilder
}

// NewDashboard creates a dashboard for the given schema
func NewDashboard(schema dataset.Schema) *Dashboard {
	return &Dashboard{
		schema: schema,
		loader: NewLoader(schema),
		charts: NewChartBuilder(schema),
	}
}

// RestrictPaths confines path sources to the root directory and returns the
// dashboard
func (d *Dashboard) RestrictPaths(root string) *Dashboard {
	d.loader.RestrictPaths(root)
	return d
}

// Schema returns the column names the dashboard expects
func (d *Dashboard) Schema() dataset.Schema {
	return d.schema
}

// Run executes one full pass for the given source and selection. Missing
// input is not an error: the returned view is halted and carries the
// advisory. Missing required columns are reported together on the view and
// the summary and charts are skipped. Read failures are returned as errors.
func (d *Dashboard) Run(ctx context.Context, src Source, sel Selection) (*View, error) {
	start := time.Now()
	view := &View{RunID: uuid.New().String()}
	defer func() { view.Elapsed = time.Since(start) }()

	loaded, err := d.loader.Load(ctx, src)
	if err != nil {
		if errors.HasCode(err, errors.CodeMissingInput) {
			view.Halted = true
			view.Advisory = NoInputAdvisory
			return view, nil
		}
		return nil, err
	}

	ds := loaded.Dataset
	view.Source = loaded.Source
	view.Warnings = loaded.Warnings
	view.Columns = ds.Columns()
	view.Dataset = ds

	controls, err := BuildControls(ds, sel)
	if err != nil {
		return nil, err
	}
	view.Controls = &controls

	if err := ValidateColumns(ds, d.schema); err != nil {
		view.MissingColumns = MissingColumns(ds, d.schema)
		view.Error = err.Error()
		dashboardLog.Warn("Run %s: %v", view.RunID, err)
		return view, nil
	}

	summary, err := Summarize(ds, d.schema)
	if err != nil {
		return nil, err
	}
	view.Summary = &summary

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	panel, err := d.charts.Build(ds, controls)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build charts")
	}
	view.Charts = panel

	dashboardLog.Info("Run %s: %s, %d rows, x=%q y=%q color=%q",
		view.RunID, view.Source, summary.TotalRecords, controls.X, controls.Y, controls.Color)
	return view, nil
}
