// Package echarts turns chart specifications into ECharts option objects for
// client-side rendering.
package echarts

import (
	"encoding/json"
	"fmt"

	"edadash/domain/chart"
	"edadash/domain/dataset"
)

// Generator builds ECharts options
type Generator struct {
	style *StyleConfig
}

// NewGenerator creates a generator; a nil style uses DefaultStyleConfig
func NewGenerator(style *StyleConfig) *Generator {
	if style == nil {
		style = DefaultStyleConfig()
	}
	return &Generator{style: style}
}

// Options returns the option object of every chart in the panel, keyed by kind
func (g *Generator) Options(panel *chart.Panel) map[chart.Kind]map[string]interface{} {
	if panel == nil {
		return nil
	}
	return map[chart.Kind]map[string]interface{}{
		chart.KindScatter: g.Scatter(panel.Scatter),
		chart.KindBar:     g.Bar(panel.Bar),
		chart.KindPie:     g.Pie(panel.Pie),
		chart.KindLine:    g.Line(panel.Line),
		chart.KindBox:     g.Box(panel.Box),
	}
}

// Generate returns one chart's options as JSON
func (g *Generator) Generate(panel *chart.Panel, kind chart.Kind) (string, error) {
	var config map[string]interface{}

	switch kind {
	case chart.KindScatter:
		config = g.Scatter(panel.Scatter)
	case chart.KindBar:
		config = g.Bar(panel.Bar)
	case chart.KindPie:
		config = g.Pie(panel.Pie)
	case chart.KindLine:
		config = g.Line(panel.Line)
	case chart.KindBox:
		config = g.Box(panel.Box)
	default:
		return "", fmt.Errorf("unknown chart kind %q", kind)
	}

	jsonBytes, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ECharts config: %w", err)
	}
	return string(jsonBytes), nil
}

// Scatter creates the scatter configuration. Each datum carries its own
// symbolSize and a "hover" list the page's tooltip formatter prints.
func (g *Generator) Scatter(spec *chart.Scatter) map[string]interface{} {
	series := make([]interface{}, 0, len(spec.Series))
	legend := make([]string, 0, len(spec.Series))

	for i, s := range spec.Series {
		name := s.Name
		if name == "" {
			name = spec.YLabel
		}
		legend = append(legend, name)

		data := make([]interface{}, 0, len(s.Points))
		for _, p := range s.Points {
			data = append(data, map[string]interface{}{
				"value":      []interface{}{p.X, p.Y},
				"symbolSize": p.Size,
				"hover":      p.Hover,
			})
		}

		series = append(series, map[string]interface{}{
			"type": "scatter",
			"name": name,
			"data": data,
			"itemStyle": map[string]interface{}{
				"color":       g.style.Color(i),
				"opacity":     0.8,
				"borderColor": g.style.ColorBackground,
				"borderWidth": 1,
			},
		})
	}

	return g.base(spec.Title, map[string]interface{}{
		"legend": g.legendConfig(legend, spec.ColorBy != ""),
		"xAxis":  g.axis(spec.XAxis, spec.XLabel, spec.XValues),
		"yAxis":  g.axis(spec.YAxis, spec.YLabel, spec.YValues),
		"series": series,
	})
}

// Bar creates the grouped bar configuration
func (g *Generator) Bar(spec *chart.Bar) map[string]interface{} {
	series := make([]interface{}, 0, len(spec.Series))
	legend := make([]string, 0, len(spec.Series))

	for i, s := range spec.Series {
		legend = append(legend, s.Name)
		series = append(series, map[string]interface{}{
			"type": "bar",
			"name": s.Name,
			"data": s.Values,
			"itemStyle": map[string]interface{}{
				"color": g.style.Color(i),
			},
			"emphasis": map[string]interface{}{"focus": "series"},
		})
	}

	tooltip := g.tooltipConfig()
	tooltip["trigger"] = "axis"

	return g.base(spec.Title, map[string]interface{}{
		"tooltip": tooltip,
		"legend":  g.legendConfig(legend, len(spec.Series) > 1),
		"xAxis":   g.axis(chart.AxisCategory, spec.XLabel, spec.Categories),
		"yAxis":   g.axis(chart.AxisValue, spec.YLabel, nil),
		"series":  series,
	})
}

// Pie creates the donut configuration. The inner radius is the hole
// fraction of the outer radius.
func (g *Generator) Pie(spec *chart.Pie) map[string]interface{} {
	const outer = 70.0

	data := make([]interface{}, 0, len(spec.Slices))
	colors := make([]string, 0, len(spec.Slices))
	legend := make([]string, 0, len(spec.Slices))
	for i, s := range spec.Slices {
		data = append(data, map[string]interface{}{
			"name":  s.Label,
			"value": s.Value,
		})
		colors = append(colors, g.style.Color(i))
		legend = append(legend, s.Label)
	}

	return g.base(spec.Title, map[string]interface{}{
		"color":  colors,
		"legend": g.legendConfig(legend, true),
		"series": []interface{}{
			map[string]interface{}{
				"type": "pie",
				"radius": []string{
					fmt.Sprintf("%.0f%%", outer*spec.Hole),
					fmt.Sprintf("%.0f%%", outer),
				},
				"center": []string{"50%", "55%"},
				"data":   data,
				"label": map[string]interface{}{
					"formatter":  "{d}%",
					"color":      g.style.ColorText,
					"fontFamily": g.style.FontFamily,
					"fontSize":   g.style.FontSizeLabel,
				},
			},
		},
	})
}

// Line creates the per-date total configuration on a time axis
func (g *Generator) Line(spec *chart.Line) map[string]interface{} {
	data := make([]interface{}, 0, len(spec.Points))
	for _, p := range spec.Points {
		data = append(data, []interface{}{p.Date.Format(dataset.DateLayout), p.Value})
	}

	tooltip := g.tooltipConfig()
	tooltip["trigger"] = "axis"

	return g.base(spec.Title, map[string]interface{}{
		"tooltip": tooltip,
		"xAxis":   g.axis(chart.AxisTime, spec.XLabel, nil),
		"yAxis":   g.axis(chart.AxisValue, spec.YLabel, nil),
		"series": []interface{}{
			map[string]interface{}{
				"type":       "line",
				"name":       spec.YLabel,
				"data":       data,
				"showSymbol": spec.Markers,
				"symbol":     "circle",
				"symbolSize": g.style.MarkerSize,
				"lineStyle": map[string]interface{}{
					"width": g.style.LineWidth,
					"color": g.style.Color(0),
				},
				"itemStyle": map[string]interface{}{
					"color": g.style.Color(0),
				},
			},
		},
	})
}

// Box creates the boxplot configuration with a companion scatter series for
// the outliers
func (g *Generator) Box(spec *chart.Box) map[string]interface{} {
	categories := make([]string, 0, len(spec.Groups))
	boxes := make([]interface{}, 0, len(spec.Groups))
	outliers := make([]interface{}, 0)

	for i, grp := range spec.Groups {
		s := grp.Summary
		categories = append(categories, grp.Name)
		boxes = append(boxes, []float64{s.LowerFence, s.Q1, s.Median, s.Q3, s.UpperFence})
		for _, v := range s.Outliers {
			outliers = append(outliers, []interface{}{i, v})
		}
	}

	return g.base(spec.Title, map[string]interface{}{
		"xAxis": g.axis(chart.AxisCategory, spec.XLabel, categories),
		"yAxis": g.axis(chart.AxisValue, spec.YLabel, nil),
		"series": []interface{}{
			map[string]interface{}{
				"type": "boxplot",
				"name": spec.YLabel,
				"data": boxes,
				"itemStyle": map[string]interface{}{
					"color":       g.style.ColorGrid,
					"borderColor": g.style.Color(0),
					"borderWidth": g.style.LineWidth,
				},
			},
			map[string]interface{}{
				"type":       "scatter",
				"name":       "outliers",
				"data":       outliers,
				"symbolSize": g.style.MarkerSize,
				"itemStyle": map[string]interface{}{
					"color": g.style.Color(0),
				},
			},
		},
	})
}

// Helper methods for common config sections

func (g *Generator) base(title string, config map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{
		"backgroundColor":   g.style.ColorBackground,
		"animation":         true,
		"animationDuration": g.style.AnimationDuration,
		"title": map[string]interface{}{
			"text": title,
			"left": "center",
			"textStyle": map[string]interface{}{
				"color":      g.style.ColorText,
				"fontFamily": g.style.FontFamily,
				"fontSize":   g.style.FontSizeTitle,
			},
		},
		"grid":    g.gridConfig(),
		"tooltip": g.tooltipConfig(),
	}
	for k, v := range config {
		out[k] = v
	}
	return out
}

func (g *Generator) axis(kind chart.AxisType, name string, categories []string) map[string]interface{} {
	axis := map[string]interface{}{
		"type":          string(kind),
		"name":          name,
		"nameLocation":  "middle",
		"nameGap":       30,
		"nameTextStyle": g.labelStyle(),
		"axisLine": map[string]interface{}{
			"lineStyle": map[string]interface{}{
				"color": g.style.ColorBorder,
			},
		},
		"axisLabel": g.labelStyle(),
		"splitLine": map[string]interface{}{
			"lineStyle": map[string]interface{}{
				"color": g.style.ColorGrid,
			},
		},
	}
	if kind == chart.AxisCategory {
		axis["data"] = categories
	} else {
		axis["scale"] = true
	}
	return axis
}

func (g *Generator) legendConfig(names []string, show bool) map[string]interface{} {
	return map[string]interface{}{
		"show":      show,
		"data":      names,
		"top":       28,
		"type":      "scroll",
		"textStyle": g.labelStyle(),
	}
}

func (g *Generator) gridConfig() map[string]interface{} {
	return map[string]interface{}{
		"left":         "8%",
		"right":        "5%",
		"bottom":       "12%",
		"top":          70,
		"containLabel": true,
	}
}

func (g *Generator) tooltipConfig() map[string]interface{} {
	return map[string]interface{}{
		"trigger":         "item",
		"backgroundColor": g.style.ColorTooltip,
		"borderColor":     g.style.ColorBorder,
		"borderWidth":     1,
		"textStyle": map[string]interface{}{
			"color":      g.style.ColorText,
			"fontFamily": g.style.FontFamily,
			"fontSize":   g.style.FontSizeTooltip,
		},
	}
}

func (g *Generator) labelStyle() map[string]interface{} {
	return map[string]interface{}{
		"color":      g.style.ColorTextMuted,
		"fontFamily": g.style.FontFamily,
		"fontSize":   g.style.FontSizeLabel,
	}
}
