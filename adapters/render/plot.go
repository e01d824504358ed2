package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"edadash/domain/chart"
	"edadash/internal/errors"
)

const barWidth = 18

// Scatter draws one glyph per point, sized by the point's marker size and
// colored by series
func (r *Renderer) Scatter(w io.Writer, spec *chart.Scatter) error {
	total := 0
	for _, s := range spec.Series {
		total += len(s.Points)
	}
	if total == 0 {
		return errors.NoData("scatter")
	}

	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)

	xIndex := indexOf(spec.XValues)
	yIndex := indexOf(spec.YValues)

	for i, s := range spec.Series {
		xys := make(plotter.XYs, 0, len(s.Points))
		radii := make([]vg.Length, 0, len(s.Points))
		for _, pt := range s.Points {
			x, okX := coordinate(pt.X, spec.XAxis, xIndex)
			y, okY := coordinate(pt.Y, spec.YAxis, yIndex)
			if !okX || !okY {
				continue
			}
			xys = append(xys, plotter.XY{X: x, Y: y})
			radii = append(radii, vg.Points(pt.Size/2))
		}
		if len(xys) == 0 {
			continue
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to create scatter series %q: %w", s.Name, err)
		}
		color := plotutil.Color(i)
		scatter.GlyphStyleFunc = func(j int) draw.GlyphStyle {
			return draw.GlyphStyle{Color: color, Radius: radii[j], Shape: draw.CircleGlyph{}}
		}
		p.Add(scatter)
		if spec.ColorBy != "" {
			p.Legend.Add(s.Name, scatter)
		}
	}

	switch spec.XAxis {
	case chart.AxisCategory:
		p.NominalX(spec.XValues...)
	case chart.AxisTime:
		p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	}
	switch spec.YAxis {
	case chart.AxisCategory:
		p.NominalY(spec.YValues...)
	case chart.AxisTime:
		p.Y.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	}

	return r.writePlot(w, p)
}

// Bar draws one bar set per series, offset side by side within each category
func (r *Renderer) Bar(w io.Writer, spec *chart.Bar) error {
	if len(spec.Categories) == 0 || len(spec.Series) == 0 {
		return errors.NoData("bar")
	}

	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	width := vg.Points(barWidth)
	n := len(spec.Series)

	for i, s := range spec.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return fmt.Errorf("failed to create bar series %q: %w", s.Name, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width
		p.Add(bars)
		if n > 1 {
			p.Legend.Add(s.Name, bars)
		}
	}
	p.NominalX(spec.Categories...)

	return r.writePlot(w, p)
}

// Box draws one box per group with the whiskers and outliers of its summary
func (r *Renderer) Box(w io.Writer, spec *chart.Box) error {
	if len(spec.Groups) == 0 {
		return errors.NoData("box")
	}

	p := newPlot(spec.Title, spec.XLabel, spec.YLabel)
	names := make([]string, len(spec.Groups))

	for i, grp := range spec.Groups {
		names[i] = grp.Name
		values := plotter.Values(grp.Values)
		if len(values) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(barWidth*2), float64(i), values)
		if err != nil {
			return fmt.Errorf("failed to create box %q: %w", grp.Name, err)
		}

		s := grp.Summary
		box.Median = s.Median
		box.Quartile1 = s.Q1
		box.Quartile3 = s.Q3
		box.AdjLow = s.LowerFence
		box.AdjHigh = s.UpperFence
		box.Outside = box.Outside[:0]
		for j, v := range values {
			if v < s.LowerFence || v > s.UpperFence {
				box.Outside = append(box.Outside, j)
			}
		}
		box.FillColor = plotutil.Color(0)
		p.Add(box)
	}
	p.NominalX(names...)

	return r.writePlot(w, p)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) writePlot(w io.Writer, p *plot.Plot) error {
	writer, err := p.WriterTo(r.Width, r.Height, "png")
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func indexOf(categories []string) map[string]float64 {
	index := make(map[string]float64, len(categories))
	for i, c := range categories {
		index[c] = float64(i)
	}
	return index
}

// coordinate maps an axis value to a plot coordinate: numbers as-is,
// timestamps as unix seconds, categories as their position
func coordinate(v interface{}, axis chart.AxisType, categories map[string]float64) (float64, bool) {
	switch axis {
	case chart.AxisValue:
		f, ok := v.(float64)
		return f, ok
	case chart.AxisTime:
		t, ok := parseAxisTime(v)
		if !ok {
			return 0, false
		}
		return float64(t.Unix()), true
	default:
		s, ok := v.(string)
		if !ok {
			return 0, false
		}
		f, ok := categories[s]
		return f, ok
	}
}
