package session

import (
	"fmt"

	"github.com/graphdeck/graphdeck/pkg/graph"
)

// Visibility is the two-tier display state of a node or edge under an
// active filter. Dimmed elements stay present but visually de-emphasized,
// preserving graph structure for edges spanning filtered and unfiltered
// nodes.
type Visibility string

const (
	// Visible marks a fully visible element.
	Visible Visibility = "visible"
	// Dimmed marks a de-emphasized element.
	Dimmed Visibility = "dimmed"
)

// Filter tracks the active categorical attribute filter. The zero value is
// the "no filter" state in which everything is visible.
type Filter struct {
	Attr  string       `json:"attr,omitempty"`
	Value *graph.Value `json:"value,omitempty"`
}

// Active reports whether a filter is set.
func (f *Filter) Active() bool { return f.Attr != "" && f.Value != nil }

// Set activates the filter for the given attribute and value.
func (f *Filter) Set(attr string, value graph.Value) {
	f.Attr = attr
	f.Value = &value
}

// Clear deactivates the filter.
func (f *Filter) Clear() {
	f.Attr = ""
	f.Value = nil
}

// NodeVisibility returns Visible when no filter is active or when the node
// defines the filter attribute with an equal value, and Dimmed otherwise.
func (f *Filter) NodeVisibility(n graph.Node) Visibility {
	if !f.Active() {
		return Visible
	}
	v, ok := n.Attrs[f.Attr]
	if ok && v.Equal(*f.Value) {
		return Visible
	}
	return Dimmed
}

// EdgeVisibility returns Visible only when both endpoints are visible.
func (f *Filter) EdgeVisibility(g *graph.Graph, e graph.Edge) Visibility {
	if !f.Active() {
		return Visible
	}
	source, ok := g.Node(e.Source)
	if !ok {
		return Dimmed
	}
	target, ok := g.Node(e.Target)
	if !ok {
		return Dimmed
	}
	if f.NodeVisibility(source) == Visible && f.NodeVisibility(target) == Visible {
		return Visible
	}
	return Dimmed
}

// String describes the filter for logging.
func (f *Filter) String() string {
	if !f.Active() {
		return "none"
	}
	return fmt.Sprintf("%s=%s", f.Attr, f.Value.Text())
}
