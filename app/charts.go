package app

import (
	"fmt"
	"math"
	"sort"
	"time"

	"edadash/domain/chart"
	"edadash/domain/dataset"
	"edadash/internal/errors"
	"edadash/internal/stats"
)

const (
	// maxMarkerSize is the diameter of the largest scatter marker in pixels
	maxMarkerSize = 20.0
	minMarkerSize = 3.0
	donutHole     = 0.4
	blankLabel    = "(blank)"
)

// ChartBuilder derives the five chart specifications from a dataset
type ChartBuilder struct {
	schema dataset.Schema
}

// NewChartBuilder creates a builder for the given schema
func NewChartBuilder(schema dataset.Schema) *ChartBuilder {
	return &ChartBuilder{schema: schema}
}

// Build produces every chart. The dataset must already have passed
// ValidateColumns.
func (b *ChartBuilder) Build(ds *dataset.Dataset, controls Controls) (*chart.Panel, error) {
	scatter, err := b.Scatter(ds, controls)
	if err != nil {
		return nil, err
	}
	bar, err := b.Bar(ds, controls)
	if err != nil {
		return nil, err
	}
	pie, err := b.Pie(ds)
	if err != nil {
		return nil, err
	}
	line, err := b.Line(ds)
	if err != nil {
		return nil, err
	}
	box, err := b.Box(ds)
	if err != nil {
		return nil, err
	}
	panel := &chart.Panel{Scatter: scatter, Bar: bar, Pie: pie, Line: line, Box: box}
	if err := checkFinite(panel); err != nil {
		return nil, err
	}
	return panel, nil
}

// checkFinite rejects a panel whose aggregates overflowed. JSON has no
// encoding for Inf or NaN.
func checkFinite(panel *chart.Panel) error {
	for _, s := range panel.Scatter.Series {
		for _, p := range s.Points {
			if !finite(p.Size) || !finiteAny(p.X) || !finiteAny(p.Y) {
				return overflow(chart.KindScatter)
			}
		}
	}
	for _, s := range panel.Bar.Series {
		if !finite(s.Values...) {
			return overflow(chart.KindBar)
		}
	}
	for _, s := range panel.Pie.Slices {
		if !finite(s.Value) {
			return overflow(chart.KindPie)
		}
	}
	for _, p := range panel.Line.Points {
		if !finite(p.Value) {
			return overflow(chart.KindLine)
		}
	}
	for _, g := range panel.Box.Groups {
		b := g.Summary
		if !finite(b.Min, b.Q1, b.Median, b.Q3, b.Max, b.LowerFence, b.UpperFence) {
			return overflow(chart.KindBox)
		}
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func finiteAny(v interface{}) bool {
	if f, ok := v.(float64); ok {
		return finite(f)
	}
	return true
}

func overflow(kind chart.Kind) error {
	return errors.New(errors.CodeNoData,
		fmt.Sprintf("%s chart totals are too large to plot", kind))
}

// Scatter plots the selected x against the selected y, one series per color
// value, with marker area proportional to the count column
func (b *ChartBuilder) Scatter(ds *dataset.Dataset, controls Controls) (*chart.Scatter, error) {
	xs, err := ds.Column(controls.X)
	if err != nil {
		return nil, err
	}
	ys, err := ds.Column(controls.Y)
	if err != nil {
		return nil, err
	}
	sizes, err := ds.Column(b.schema.Count)
	if err != nil {
		return nil, err
	}

	spec := &chart.Scatter{
		Title:   "Scatter Plot",
		XLabel:  controls.X,
		YLabel:  controls.Y,
		XAxis:   axisType(xs),
		YAxis:   axisType(ys),
		ColorBy: controls.Color,
		SizeBy:  b.schema.Count,
		MaxSize: maxMarkerSize,
	}

	maxCount := 0.0
	for _, v := range sizes {
		if n, ok := v.AsFloat64(); ok && n > maxCount {
			maxCount = n
		}
	}

	columns := ds.Columns()
	seriesIndex := map[string]int{}
	xCats := newCategoryList()
	yCats := newCategoryList()

	for i := 0; i < ds.Len(); i++ {
		x, y := xs[i], ys[i]
		if x.IsMissing() || y.IsMissing() {
			spec.Skipped++
			continue
		}

		group := ""
		if controls.Grouped() {
			c, _ := ds.Cell(i, controls.Color)
			group = label(c)
		}
		idx, ok := seriesIndex[group]
		if !ok {
			idx = len(spec.Series)
			seriesIndex[group] = idx
			spec.Series = append(spec.Series, chart.ScatterSeries{Name: group})
		}

		row := ds.Row(i)
		hover := make([]chart.Field, len(columns))
		for j, col := range columns {
			hover[j] = chart.Field{Name: col, Value: row[j].Interface()}
		}

		point := chart.ScatterPoint{
			X:     axisValue(x, spec.XAxis),
			Y:     axisValue(y, spec.YAxis),
			Size:  markerSize(sizes[i], maxCount),
			Hover: hover,
		}
		if spec.XAxis == chart.AxisCategory {
			xCats.add(x.String())
		}
		if spec.YAxis == chart.AxisCategory {
			yCats.add(y.String())
		}
		spec.Series[idx].Points = append(spec.Series[idx].Points, point)
	}

	spec.XValues = xCats.items
	spec.YValues = yCats.items
	return spec, nil
}

// Bar sums the count column per session bucket and color group
func (b *ChartBuilder) Bar(ds *dataset.Dataset, controls Controls) (*chart.Bar, error) {
	sessions, err := ds.Column(b.schema.Session)
	if err != nil {
		return nil, err
	}
	counts, err := ds.Column(b.schema.Count)
	if err != nil {
		return nil, err
	}

	spec := &chart.Bar{
		Title:  fmt.Sprintf("Bar Chart - %s", b.schema.Session),
		XLabel: b.schema.Session,
		YLabel: b.schema.Count,
	}

	categories := newCategoryList()
	groups := stats.NewGrouper()
	type cell struct{ group, category string }
	sums := map[cell]float64{}

	for i := range sessions {
		if sessions[i].IsMissing() {
			continue
		}
		category := sessions[i].String()
		categories.add(category)

		group := b.schema.Count
		if controls.Grouped() {
			c, _ := ds.Cell(i, controls.Color)
			group = label(c)
		}
		groups.Touch(group)

		if n, ok := counts[i].AsFloat64(); ok {
			sums[cell{group, category}] += n
		}
	}

	spec.Categories = categories.items
	for _, g := range groups.Keys() {
		series := chart.BarSeries{Name: g, Values: make([]float64, len(spec.Categories))}
		for j, category := range spec.Categories {
			series.Values[j] = sums[cell{g, category}]
		}
		spec.Series = append(spec.Series, series)
	}
	return spec, nil
}

// Pie sums the count column per label for the donut chart
func (b *ChartBuilder) Pie(ds *dataset.Dataset) (*chart.Pie, error) {
	labels, err := ds.Column(b.schema.Label)
	if err != nil {
		return nil, err
	}
	counts, err := ds.Column(b.schema.Count)
	if err != nil {
		return nil, err
	}

	groups := stats.NewGrouper()
	for i := range labels {
		if labels[i].IsMissing() {
			continue
		}
		if n, ok := counts[i].AsFloat64(); ok {
			groups.Add(labels[i].String(), n)
		}
	}

	spec := &chart.Pie{
		Title: fmt.Sprintf("Pie Chart - %s", b.schema.Label),
		Hole:  donutHole,
	}
	for _, g := range groups.Groups() {
		spec.Slices = append(spec.Slices, chart.Slice{Label: g.Key, Value: g.Sum()})
	}
	return spec, nil
}

// Line totals the count column per distinct date, dates ascending. Rows whose
// date is missing are left out.
func (b *ChartBuilder) Line(ds *dataset.Dataset) (*chart.Line, error) {
	dates, err := ds.Column(b.schema.Date)
	if err != nil {
		return nil, err
	}
	counts, err := ds.Column(b.schema.Count)
	if err != nil {
		return nil, err
	}

	totals := map[time.Time]float64{}
	for i := range dates {
		t, ok := dates[i].AsTime()
		if !ok {
			continue
		}
		n, _ := counts[i].AsFloat64()
		totals[t] += n
	}

	spec := &chart.Line{
		Title:   fmt.Sprintf("Line Chart - %s vs %s", b.schema.Date, b.schema.Count),
		XLabel:  b.schema.Date,
		YLabel:  b.schema.Count,
		Markers: true,
		Points:  make([]chart.LinePoint, 0, len(totals)),
	}
	for t, total := range totals {
		spec.Points = append(spec.Points, chart.LinePoint{Date: t, Value: total})
	}
	sort.Slice(spec.Points, func(i, j int) bool {
		return spec.Points[i].Date.Before(spec.Points[j].Date)
	})
	return spec, nil
}

// Box summarizes the count distribution per session bucket
func (b *ChartBuilder) Box(ds *dataset.Dataset) (*chart.Box, error) {
	sessions, err := ds.Column(b.schema.Session)
	if err != nil {
		return nil, err
	}
	counts, err := ds.Column(b.schema.Count)
	if err != nil {
		return nil, err
	}

	groups := stats.NewGrouper()
	for i := range sessions {
		if sessions[i].IsMissing() {
			continue
		}
		if n, ok := counts[i].AsFloat64(); ok {
			groups.Add(sessions[i].String(), n)
		}
	}

	spec := &chart.Box{
		Title:  fmt.Sprintf("Box Plot - Distribution of %s", b.schema.Count),
		XLabel: b.schema.Session,
		YLabel: b.schema.Count,
	}
	for _, g := range groups.Groups() {
		summary, err := stats.Box(g.Values)
		if err != nil {
			return nil, fmt.Errorf("box %q: %w", g.Key, err)
		}
		spec.Groups = append(spec.Groups, chart.BoxGroup{Name: g.Key, Summary: summary, Values: g.Values})
	}
	return spec, nil
}

// axisType picks a numeric axis when every present value is numeric, a time
// axis when every present value is a timestamp, and a category axis otherwise
func axisType(values []dataset.Value) chart.AxisType {
	numeric, timestamps, present := 0, 0, 0
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		present++
		if v.IsNumeric() {
			numeric++
		}
		if v.IsTimestamp() {
			timestamps++
		}
	}
	switch {
	case present > 0 && numeric == present:
		return chart.AxisValue
	case present > 0 && timestamps == present:
		return chart.AxisTime
	}
	return chart.AxisCategory
}

func axisValue(v dataset.Value, axis chart.AxisType) interface{} {
	if axis == chart.AxisValue {
		n, _ := v.AsFloat64()
		return n
	}
	return v.String()
}

// markerSize maps a count to a marker diameter with area proportional to
// the count
func markerSize(v dataset.Value, maxCount float64) float64 {
	n, ok := v.AsFloat64()
	if !ok || n <= 0 || maxCount <= 0 {
		return minMarkerSize
	}
	return math.Max(minMarkerSize, maxMarkerSize*math.Sqrt(n/maxCount))
}

func label(v dataset.Value) string {
	if v.IsMissing() {
		return blankLabel
	}
	return v.String()
}

type categoryList struct {
	seen  map[string]struct{}
	items []string
}

func newCategoryList() *categoryList {
	return &categoryList{seen: map[string]struct{}{}}
}

func (c *categoryList) add(s string) {
	if _, ok := c.seen[s]; ok {
		return
	}
	c.seen[s] = struct{}{}
	c.items = append(c.items, s)
}
