package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrouperKeepsFirstAppearanceOrder(t *testing.T) {
	g := NewGrouper()
	g.Add("b", 5)
	g.Add("a", 8)
	g.Add("b", 13)
	g.Touch("c")

	assert.Equal(t, []string{"b", "a", "c"}, g.Keys())

	b, ok := g.Get("b")
	require.True(t, ok)
	assert.Equal(t, 18.0, b.Sum())

	c, _ := g.Get("c")
	assert.Equal(t, 0.0, c.Sum())

	_, ok = g.Get("z")
	assert.False(t, ok)
	assert.Len(t, g.Groups(), 3)
}

func TestBoxTwoValues(t *testing.T) {
	box, err := Box([]float64{12, 10})
	require.NoError(t, err)

	assert.Equal(t, 2, box.Count)
	assert.Equal(t, 10.0, box.Q1)
	assert.Equal(t, 11.0, box.Median)
	assert.Equal(t, 12.0, box.Q3)
	assert.Equal(t, 10.0, box.LowerFence)
	assert.Equal(t, 12.0, box.UpperFence)
	assert.Empty(t, box.Outliers)
}

func TestBoxSingleValue(t *testing.T) {
	box, err := Box([]float64{5})
	require.NoError(t, err)

	assert.Equal(t, 5.0, box.Q1)
	assert.Equal(t, 5.0, box.Median)
	assert.Equal(t, 5.0, box.Q3)
	assert.Equal(t, 5.0, box.LowerFence)
	assert.Equal(t, 5.0, box.UpperFence)
}

func TestBoxOutliers(t *testing.T) {
	box, err := Box([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	require.NoError(t, err)

	// halves exclude the median for odd n: [1 2 3 4] and [6 7 8 100]
	assert.Equal(t, 2.5, box.Q1)
	assert.Equal(t, 5.0, box.Median)
	assert.Equal(t, 7.5, box.Q3)
	assert.Equal(t, []float64{100}, box.Outliers)
	assert.Equal(t, 8.0, box.UpperFence)
	assert.Equal(t, 1.0, box.LowerFence)
	assert.Equal(t, 100.0, box.Max)
}

func TestBoxEmpty(t *testing.T) {
	_, err := Box(nil)
	assert.Error(t, err)
}
