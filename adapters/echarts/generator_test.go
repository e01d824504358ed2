package echarts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"edadash/app"
	"edadash/domain/chart"
	"edadash/domain/dataset"
)

func samplePanel(t *testing.T, sel app.Selection) *chart.Panel {
	t.Helper()
	view, err := app.NewDashboard(dataset.DefaultSchema()).Run(context.Background(), app.Source{UseSample: true}, sel)
	require.NoError(t, err)
	require.True(t, view.Ready())
	return view.Charts
}

func generate(t *testing.T, panel *chart.Panel, kind chart.Kind) gjson.Result {
	t.Helper()
	out, err := NewGenerator(nil).Generate(panel, kind)
	require.NoError(t, err)
	require.True(t, gjson.Valid(out))
	return gjson.Parse(out)
}

func TestScatterOptions(t *testing.T) {
	opts := generate(t, samplePanel(t, app.Selection{Color: "OTO/Non OTO"}), chart.KindScatter)

	assert.Equal(t, "Scatter Plot", opts.Get("title.text").String())
	assert.Equal(t, "category", opts.Get("xAxis.type").String())
	assert.Equal(t, "value", opts.Get("yAxis.type").String())
	assert.Equal(t, int64(2), opts.Get("series.#").Int())
	assert.Equal(t, "Non OTO", opts.Get("series.0.name").String())
	assert.True(t, opts.Get("legend.show").Bool())

	first := opts.Get("series.0.data.0")
	assert.Equal(t, "11:00 - 11:15", first.Get("value.0").String())
	assert.Equal(t, 10.0, first.Get("value.1").Float())
	assert.Greater(t, first.Get("symbolSize").Float(), 0.0)
	assert.Equal(t, int64(6), first.Get("hover.#").Int())
	assert.Equal(t, "Workshop Date", first.Get("hover.5.name").String())
	assert.Equal(t, "2025-01-15", first.Get("hover.5.value").String())
}

func TestBarOptions(t *testing.T) {
	opts := generate(t, samplePanel(t, app.Selection{}), chart.KindBar)

	assert.Equal(t, "Bar Chart - Time in Session", opts.Get("title.text").String())
	assert.Equal(t, `["30 - 59","0 - 29","60 - 89"]`, opts.Get("xAxis.data").Raw)
	assert.Equal(t, "bar", opts.Get("series.0.type").String())
	assert.Equal(t, `[22,5,8]`, opts.Get("series.0.data").Raw)
	assert.False(t, opts.Get("legend.show").Bool())
}

func TestPieOptionsHasHole(t *testing.T) {
	opts := generate(t, samplePanel(t, app.Selection{}), chart.KindPie)

	assert.Equal(t, "pie", opts.Get("series.0.type").String())
	assert.Equal(t, `["28%","70%"]`, opts.Get("series.0.radius").Raw)
	assert.Equal(t, int64(2), opts.Get("series.0.data.#").Int())
	assert.Equal(t, "OTO", opts.Get("series.0.data.1.name").String())
	assert.Equal(t, 17.0, opts.Get("series.0.data.1.value").Float())
}

func TestLineOptions(t *testing.T) {
	opts := generate(t, samplePanel(t, app.Selection{}), chart.KindLine)

	assert.Equal(t, "time", opts.Get("xAxis.type").String())
	assert.True(t, opts.Get("series.0.showSymbol").Bool())
	assert.Equal(t, `[["2025-01-15",10],["2025-01-16",13],["2025-01-17",12]]`, opts.Get("series.0.data").Raw)
}

func TestBoxOptions(t *testing.T) {
	opts := generate(t, samplePanel(t, app.Selection{}), chart.KindBox)

	assert.Equal(t, `["30 - 59","0 - 29","60 - 89"]`, opts.Get("xAxis.data").Raw)
	assert.Equal(t, "boxplot", opts.Get("series.0.type").String())
	assert.Equal(t, `[10,10,11,12,12]`, opts.Get("series.0.data.0").Raw)
	assert.Equal(t, "scatter", opts.Get("series.1.type").String())
	assert.Equal(t, int64(0), opts.Get("series.1.data.#").Int())
}

func TestOptionsCoversEveryKind(t *testing.T) {
	opts := NewGenerator(nil).Options(samplePanel(t, app.Selection{}))
	for _, k := range chart.Kinds() {
		assert.Contains(t, opts, k)
	}
	assert.Nil(t, NewGenerator(nil).Options(nil))
}

func TestGenerateUnknownKind(t *testing.T) {
	_, err := NewGenerator(nil).Generate(samplePanel(t, app.Selection{}), chart.Kind("radar"))
	assert.Error(t, err)
}

func TestStyleColorCycles(t *testing.T) {
	style := DefaultStyleConfig()
	assert.Equal(t, style.Palette[0], style.Color(len(style.Palette)))
}
