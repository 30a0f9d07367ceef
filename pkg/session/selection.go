package session

import (
	"encoding/json"
	"sort"

	"github.com/graphdeck/graphdeck/pkg/errors"
	"github.com/graphdeck/graphdeck/pkg/graph"
)

// NeighborMode selects which neighbors of a selected node are highlighted
// in directed graphs. Undirected graphs ignore the mode.
type NeighborMode string

const (
	// NeighborsOut highlights successors of selected nodes.
	NeighborsOut NeighborMode = "out"
	// NeighborsIn highlights predecessors of selected nodes.
	NeighborsIn NeighborMode = "in"
	// NeighborsBoth highlights successors and predecessors.
	NeighborsBoth NeighborMode = "both"
)

// ParseNeighborMode validates a neighbor mode name.
func ParseNeighborMode(s string) (NeighborMode, error) {
	switch NeighborMode(s) {
	case NeighborsOut, NeighborsIn, NeighborsBoth:
		return NeighborMode(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidParameter,
			"unknown neighbor mode %q (must be 'out', 'in', or 'both')", s)
	}
}

// direction maps a neighbor mode to a graph traversal direction.
func (m NeighborMode) direction() graph.Direction {
	switch m {
	case NeighborsOut:
		return graph.DirectionOut
	case NeighborsIn:
		return graph.DirectionIn
	default:
		return graph.DirectionBoth
	}
}

// Selection tracks the set of currently selected node IDs. The empty
// selection is valid. All mutations validate node IDs against the current
// graph and leave the selection untouched on error.
//
// The zero value is an empty selection ready for use.
type Selection struct {
	ids map[string]bool
}

// Contains reports whether a node is selected.
func (s *Selection) Contains(id string) bool { return s.ids[id] }

// Len returns the number of selected nodes.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected node IDs, sorted.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Toggle adds the node to the selection if absent, or removes it if present.
// Fails with UNKNOWN_NODE if the ID is not in g; the selection is untouched.
func (s *Selection) Toggle(g *graph.Graph, id string) error {
	if !g.HasNode(id) {
		return errors.New(errors.ErrCodeUnknownNode, "node %q not in graph", id)
	}
	if s.ids == nil {
		s.ids = make(map[string]bool)
	}
	if s.ids[id] {
		delete(s.ids, id)
	} else {
		s.ids[id] = true
	}
	return nil
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// Replace sets the selection to exactly the given IDs, validating each one
// first. On any unknown ID the prior selection is left untouched.
func (s *Selection) Replace(g *graph.Graph, ids []string) error {
	next := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !g.HasNode(id) {
			return errors.New(errors.ErrCodeUnknownNode, "node %q not in graph", id)
		}
		next[id] = true
	}
	s.ids = next
	return nil
}

// Highlighted derives the highlighted neighborhood: the selected IDs plus,
// for each selected ID, its direct neighbors per mode. Pure function of the
// current selection and graph.
//
// Selected IDs absent from g (possible only if the graph was swapped without
// resetting the selection) are skipped rather than failing, since Highlighted
// is a derivation, not a mutation.
func (s *Selection) Highlighted(g *graph.Graph, mode NeighborMode) map[string]bool {
	result := make(map[string]bool, len(s.ids)*2)
	for id := range s.ids {
		neighbors, err := g.Neighbors(id, mode.direction())
		if err != nil {
			continue
		}
		result[id] = true
		for _, n := range neighbors {
			result[n] = true
		}
	}
	return result
}

// MarshalJSON serializes the selection as a sorted ID array.
func (s *Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON restores a selection from an ID array.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	s.ids = make(map[string]bool, len(ids))
	for _, id := range ids {
		s.ids[id] = true
	}
	return nil
}
