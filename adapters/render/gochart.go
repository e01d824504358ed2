package render

import (
	"fmt"
	"io"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"edadash/domain/chart"
	"edadash/internal/errors"
)

// Pie draws the donut chart. Slices with a zero total are left out.
func (r *Renderer) Pie(w io.Writer, spec *chart.Pie) error {
	values := make([]gochart.Value, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%g)", s.Label, s.Value),
			Value: s.Value,
		})
	}
	if len(values) == 0 {
		return errors.NoData("pie")
	}

	donut := gochart.DonutChart{
		Title:  spec.Title,
		Width:  pixels(r.Width),
		Height: pixels(r.Height),
		Values: values,
	}
	if err := donut.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render donut: %w", err)
	}
	return nil
}

// Line draws the per-date totals on a time axis with a dot at every point
func (r *Renderer) Line(w io.Writer, spec *chart.Line) error {
	if len(spec.Points) == 0 {
		return errors.NoData("line")
	}

	xs := make([]time.Time, len(spec.Points))
	ys := make([]float64, len(spec.Points))
	for i, p := range spec.Points {
		xs[i] = p.Date
		ys[i] = p.Value
	}
	// go-chart needs two distinct x values to build a range
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	style := gochart.Style{
		StrokeColor: gochart.ColorBlue,
		StrokeWidth: 2,
	}
	if spec.Markers {
		style.DotColor = gochart.ColorBlue
		style.DotWidth = 4
	}

	ch := gochart.Chart{
		Title:  spec.Title,
		Width:  pixels(r.Width),
		Height: pixels(r.Height),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           spec.XLabel,
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{Name: spec.YLabel},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    spec.YLabel,
				XValues: xs,
				YValues: ys,
				Style:   style,
			},
		},
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render line: %w", err)
	}
	return nil
}
