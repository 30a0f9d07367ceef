// Package scene builds renderer-agnostic scene descriptions. A Scene is the
// declarative output consumed by the dashboard's rendering widget (and by
// the static exporter): ordered node and edge visual specs plus the chosen
// layout name, with no rendering logic of its own.
//
// Build is a pure function of its inputs and is called once per interaction
// event; the rendering widget is responsible for diffing and animating
// between successive scenes.
package scene

import (
	"sort"

	"github.com/graphdeck/graphdeck/pkg/errors"
	"github.com/graphdeck/graphdeck/pkg/graph"
	"github.com/graphdeck/graphdeck/pkg/session"
)

// Layout names a rendering layout algorithm. Layouts only affect rendering
// hints, never the graph itself.
type Layout string

// Supported layout algorithms, mirroring the rendering widget's built-ins.
const (
	LayoutCircle       Layout = "circle"
	LayoutGrid         Layout = "grid"
	LayoutRandom       Layout = "random"
	LayoutConcentric   Layout = "concentric"
	LayoutBreadthfirst Layout = "breadthfirst"
	LayoutCose         Layout = "cose"
)

// DefaultLayout is used when no layout is requested.
const DefaultLayout = LayoutCircle

// Layouts returns all supported layout names in display order.
func Layouts() []Layout {
	return []Layout{
		LayoutCircle, LayoutGrid, LayoutRandom,
		LayoutConcentric, LayoutBreadthfirst, LayoutCose,
	}
}

// ParseLayout validates a layout name.
func ParseLayout(s string) (Layout, error) {
	for _, l := range Layouts() {
		if Layout(s) == l {
			return l, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout %q", s)
}

// NodeSpec is the visual description of one node.
type NodeSpec struct {
	ID            string             `json:"id"`
	Label         string             `json:"label"`
	ColorCategory string             `json:"colorCategory,omitempty"`
	Color         string             `json:"color,omitempty"`
	Highlighted   bool               `json:"highlighted"`
	Visibility    session.Visibility `json:"visibility"`
}

// EdgeSpec is the visual description of one edge.
type EdgeSpec struct {
	Source      string             `json:"source"`
	Target      string             `json:"target"`
	Highlighted bool               `json:"highlighted"`
	Visibility  session.Visibility `json:"visibility"`
}

// LegendEntry maps one category value to its color.
type LegendEntry struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// Scene is a complete renderer-agnostic frame: every node and edge with its
// visual state, the layout name passed through unchanged, and the color
// legend for the active coloring attribute.
type Scene struct {
	Layout    string        `json:"layout"`
	Directed  bool          `json:"directed"`
	ColorAttr string        `json:"colorAttr,omitempty"`
	Nodes     []NodeSpec    `json:"nodes"`
	Edges     []EdgeSpec    `json:"edges"`
	Legend    []LegendEntry `json:"legend,omitempty"`
}

// Build combines the graph with the session's interaction state into a
// Scene. Pure function: no side effects, safe to call on every event.
//
// Node and edge specs appear in graph insertion order. A node's label is
// its "label" attribute when present, otherwise its ID. Highlighting
// derives from the selection's neighborhood under the session's neighbor
// mode; visibility tiers derive from the filter. An edge is highlighted
// only when both endpoints are highlighted.
func Build(g *graph.Graph, sess *session.Session, colorAttr string) Scene {
	highlighted := sess.Selection.Highlighted(g, sess.NeighborMode)
	legend := buildLegend(g, colorAttr)
	colorFor := make(map[string]string, len(legend))
	for _, entry := range legend {
		colorFor[entry.Value] = entry.Color
	}

	s := Scene{
		Layout:    sess.Layout,
		Directed:  g.Directed(),
		ColorAttr: colorAttr,
		Nodes:     make([]NodeSpec, 0, g.NodeCount()),
		Edges:     make([]EdgeSpec, 0, g.EdgeCount()),
		Legend:    legend,
	}

	for _, n := range g.Nodes() {
		spec := NodeSpec{
			ID:          n.ID,
			Label:       n.ID,
			Highlighted: highlighted[n.ID],
			Visibility:  sess.Filter.NodeVisibility(n),
		}
		if label, ok := n.Attrs["label"]; ok {
			spec.Label = label.Text()
		}
		if colorAttr != "" {
			if v, ok := n.Attrs[colorAttr]; ok {
				spec.ColorCategory = v.Text()
				spec.Color = colorFor[v.Text()]
			}
		}
		s.Nodes = append(s.Nodes, spec)
	}

	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, EdgeSpec{
			Source:      e.Source,
			Target:      e.Target,
			Highlighted: highlighted[e.Source] && highlighted[e.Target],
			Visibility:  sess.Filter.EdgeVisibility(g, e),
		})
	}

	return s
}

// buildLegend assigns palette colors to the distinct values of colorAttr,
// sorted so the mapping is deterministic.
func buildLegend(g *graph.Graph, colorAttr string) []LegendEntry {
	if colorAttr == "" {
		return nil
	}
	values := g.AttributeValues(colorAttr)
	if len(values) == 0 {
		return nil
	}

	texts := make([]string, len(values))
	for i, v := range values {
		texts[i] = v.Text()
	}
	sort.Strings(texts)

	colors := Palette(len(texts))
	legend := make([]LegendEntry, len(texts))
	for i, text := range texts {
		legend[i] = LegendEntry{Value: text, Color: colors[i]}
	}
	return legend
}
