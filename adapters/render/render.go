// Package render draws chart specifications as PNG images. Scatter, bar and
// box plots use gonum/plot; the donut and the date line use go-chart.
package render

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/plot/vg"

	"edadash/domain/chart"
	"edadash/domain/dataset"
)

// Renderer holds the output image size
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer returns a renderer producing 6x4 inch images
func NewRenderer() *Renderer {
	return &Renderer{Width: 6 * vg.Inch, Height: 4 * vg.Inch}
}

// pixels converts a vg length to pixels at the default 96 DPI
func pixels(l vg.Length) int {
	return int(l.Dots(96))
}

// Render writes the PNG of one chart of the panel
func (r *Renderer) Render(w io.Writer, panel *chart.Panel, kind chart.Kind) error {
	if panel == nil {
		return fmt.Errorf("render %s: no charts", kind)
	}
	switch kind {
	case chart.KindScatter:
		return r.Scatter(w, panel.Scatter)
	case chart.KindBar:
		return r.Bar(w, panel.Bar)
	case chart.KindPie:
		return r.Pie(w, panel.Pie)
	case chart.KindLine:
		return r.Line(w, panel.Line)
	case chart.KindBox:
		return r.Box(w, panel.Box)
	}
	return fmt.Errorf("unknown chart kind %q", kind)
}

// FileName is the export file name of a chart kind
func FileName(kind chart.Kind) string {
	return string(kind) + ".png"
}

var axisTimeLayouts = []string{dataset.DateLayout, "2006-01-02 15:04:05"}

func parseAxisTime(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range axisTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
