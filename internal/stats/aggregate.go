package stats

import (
	"gonum.org/v1/gonum/floats"
)

// Group is one key of an ordered group-by with the values that fell into it
type Group struct {
	Key    string
	Values []float64
}

// Sum returns the total of the group's values
func (g Group) Sum() float64 {
	return floats.Sum(g.Values)
}

// Grouper collects values per key, remembering first-appearance order
type Grouper struct {
	order  []string
	groups map[string]*Group
}

// NewGrouper creates an empty grouper
func NewGrouper() *Grouper {
	return &Grouper{groups: make(map[string]*Group)}
}

// Touch registers a key without adding a value, so that categories with no
// numeric data still keep their position
func (g *Grouper) Touch(key string) *Group {
	grp, ok := g.groups[key]
	if !ok {
		grp = &Group{Key: key}
		g.groups[key] = grp
		g.order = append(g.order, key)
	}
	return grp
}

// Add appends a value to the key's group
func (g *Grouper) Add(key string, value float64) {
	grp := g.Touch(key)
	grp.Values = append(grp.Values, value)
}

// Keys returns the keys in first-appearance order
func (g *Grouper) Keys() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Groups returns the groups in first-appearance order
func (g *Grouper) Groups() []Group {
	out := make([]Group, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.groups[k])
	}
	return out
}

// Get returns the group for a key
func (g *Grouper) Get(key string) (Group, bool) {
	grp, ok := g.groups[key]
	if !ok {
		return Group{}, false
	}
	return *grp, true
}
