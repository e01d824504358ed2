package app

import (
	"edadash/domain/dataset"
	"edadash/internal/errors"
)

// ColorNone is the color selection meaning "no grouping"
const ColorNone = ""

// Default selector positions
const (
	defaultXIndex = 0
	defaultYIndex = 2
)

// Selection is the selector part of the widget state as requested by the
// user. Empty fields mean "use the default".
type Selection struct {
	X     string `json:"x" form:"x"`
	Y     string `json:"y" form:"y"`
	Color string `json:"color" form:"color"`
}

// Controls is the resolved control panel for one run
type Controls struct {
	Options      []string `json:"options"`
	ColorOptions []string `json:"color_options"` // first entry is ColorNone
	X            string   `json:"x"`
	Y            string   `json:"y"`
	Color        string   `json:"color"`
}

// Grouped reports whether a color column is selected
func (c Controls) Grouped() bool {
	return c.Color != ColorNone
}

// BuildControls populates the selectors from the dataset's columns and
// resolves the requested selection against them. Unknown requested columns
// fall back to the defaults; the Y default is clamped to the last column
// when the dataset has fewer than three.
func BuildControls(ds *dataset.Dataset, sel Selection) (Controls, error) {
	cols := ds.Columns()
	if len(cols) == 0 {
		return Controls{}, errors.InvalidInput("dataset has no columns")
	}

	yDefault := defaultYIndex
	if yDefault >= len(cols) {
		yDefault = len(cols) - 1
	}

	controls := Controls{
		Options:      cols,
		ColorOptions: append([]string{ColorNone}, cols...),
		X:            cols[defaultXIndex],
		Y:            cols[yDefault],
		Color:        ColorNone,
	}

	if ds.HasColumn(sel.X) {
		controls.X = sel.X
	}
	if ds.HasColumn(sel.Y) {
		controls.Y = sel.Y
	}
	if sel.Color != ColorNone && ds.HasColumn(sel.Color) {
		controls.Color = sel.Color
	}
	return controls, nil
}
