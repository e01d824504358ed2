// Package chart holds renderer-neutral chart specifications. A spec carries
// the already-aggregated data a chart shows; adapters turn it into ECharts
// options or PNG images.
package chart

import (
	"time"

	"edadash/internal/stats"
)

// Kind identifies one of the five dashboard charts
type Kind string

const (
	KindScatter Kind = "scatter"
	KindBar     Kind = "bar"
	KindPie     Kind = "pie"
	KindLine    Kind = "line"
	KindBox     Kind = "box"
)

// Kinds lists the charts in page order
func Kinds() []Kind {
	return []Kind{KindScatter, KindBar, KindPie, KindLine, KindBox}
}

// ParseKind validates a kind name
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Field is one labelled value shown on hover
type Field struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// ScatterPoint is one row of the scatter plot. X and Y hold either float64
// or string values depending on the axis type.
type ScatterPoint struct {
	X     interface{} `json:"x"`
	Y     interface{} `json:"y"`
	Size  float64     `json:"size"`
	Hover []Field     `json:"hover"`
}

// ScatterSeries groups points sharing one color value
type ScatterSeries struct {
	Name   string         `json:"name"`
	Points []ScatterPoint `json:"points"`
}

// AxisType is "value" for numeric axes and "category" otherwise
type AxisType string

const (
	AxisValue    AxisType = "value"
	AxisCategory AxisType = "category"
	AxisTime     AxisType = "time"
)

// Scatter is the x/y scatter plot with size and color encodings
type Scatter struct {
	Title   string          `json:"title"`
	XLabel  string          `json:"x_label"`
	YLabel  string          `json:"y_label"`
	XAxis   AxisType        `json:"x_axis"`
	YAxis   AxisType        `json:"y_axis"`
	XValues []string        `json:"x_categories,omitempty"`
	YValues []string        `json:"y_categories,omitempty"`
	ColorBy string          `json:"color_by,omitempty"`
	SizeBy  string          `json:"size_by"`
	MaxSize float64         `json:"max_size"`
	Series  []ScatterSeries `json:"series"`
	Skipped int             `json:"skipped"`
}

// BarSeries is one color group of the grouped bar chart; Values align with
// the chart's Categories
type BarSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Bar is the grouped bar chart
type Bar struct {
	Title      string      `json:"title"`
	XLabel     string      `json:"x_label"`
	YLabel     string      `json:"y_label"`
	Categories []string    `json:"categories"`
	Series     []BarSeries `json:"series"`
}

// Slice is one category of the donut chart
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Pie is the donut chart
type Pie struct {
	Title  string  `json:"title"`
	Hole   float64 `json:"hole"`
	Slices []Slice `json:"slices"`
}

// LinePoint is one aggregated date
type LinePoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Line is the per-date total line chart
type Line struct {
	Title   string      `json:"title"`
	XLabel  string      `json:"x_label"`
	YLabel  string      `json:"y_label"`
	Markers bool        `json:"markers"`
	Points  []LinePoint `json:"points"`
}

// BoxGroup is one box of the box plot
type BoxGroup struct {
	Name    string           `json:"name"`
	Summary stats.BoxSummary `json:"summary"`
	Values  []float64        `json:"-"`
}

// Box is the distribution plot, one box per category
type Box struct {
	Title  string     `json:"title"`
	XLabel string     `json:"x_label"`
	YLabel string     `json:"y_label"`
	Groups []BoxGroup `json:"groups"`
}

// Panel is the full set of chart specifications for one run
type Panel struct {
	Scatter *Scatter `json:"scatter"`
	Bar     *Bar     `json:"bar"`
	Pie     *Pie     `json:"pie"`
	Line    *Line    `json:"line"`
	Box     *Box     `json:"box"`
}
