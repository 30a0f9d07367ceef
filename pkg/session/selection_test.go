package session

import (
	"encoding/json"
	"slices"
	"sort"
	"testing"

	"github.com/graphdeck/graphdeck/pkg/errors"
	"github.com/graphdeck/graphdeck/pkg/graph"
)

// chainGraph builds the canonical highlight fixture: A -> B, B -> C.
func chainGraph(t *testing.T, directed bool) *graph.Graph {
	t.Helper()
	g := graph.New(directed)
	for _, id := range []string{"A", "B", "C"} {
		if err := g.AddNode(graph.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	if err := g.AddEdge(graph.Edge{Source: "A", Target: "B"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge(graph.Edge{Source: "B", Target: "C"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return g
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestSelectionToggle(t *testing.T) {
	g := chainGraph(t, true)
	var sel Selection

	if err := sel.Toggle(g, "A"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !sel.Contains("A") || sel.Len() != 1 {
		t.Errorf("selection = %v after toggle, want [A]", sel.IDs())
	}

	// Toggling twice restores the prior selection exactly.
	if err := sel.Toggle(g, "B"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := sel.Toggle(g, "B"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got := sel.IDs(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("selection = %v after double toggle, want [A]", got)
	}

	// Unknown node leaves the selection untouched.
	err := sel.Toggle(g, "ghost")
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("error code = %v, want UNKNOWN_NODE", errors.GetCode(err))
	}
	if got := sel.IDs(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("selection = %v after failed toggle, want [A]", got)
	}
}

func TestSelectionReplace(t *testing.T) {
	g := chainGraph(t, true)
	var sel Selection
	sel.Toggle(g, "A")

	if err := sel.Replace(g, []string{"B", "C"}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := sel.IDs(); !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("selection = %v, want [B C]", got)
	}

	// A failed replace must not lose the prior set.
	err := sel.Replace(g, []string{"A", "ghost"})
	if !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("error code = %v, want UNKNOWN_NODE", errors.GetCode(err))
	}
	if got := sel.IDs(); !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("selection = %v after failed replace, want [B C]", got)
	}

	sel.Clear()
	if sel.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", sel.Len())
	}
}

func TestSelectionHighlighted(t *testing.T) {
	tests := []struct {
		name     string
		directed bool
		selected []string
		mode     NeighborMode
		want     []string
	}{
		{
			name:     "DirectedBoth",
			directed: true,
			selected: []string{"B"},
			mode:     NeighborsBoth,
			want:     []string{"A", "B", "C"},
		},
		{
			name:     "DirectedSuccessors",
			directed: true,
			selected: []string{"B"},
			mode:     NeighborsOut,
			want:     []string{"B", "C"},
		},
		{
			name:     "DirectedPredecessors",
			directed: true,
			selected: []string{"B"},
			mode:     NeighborsIn,
			want:     []string{"A", "B"},
		},
		{
			name:     "UndirectedIgnoresMode",
			directed: false,
			selected: []string{"B"},
			mode:     NeighborsOut,
			want:     []string{"A", "B", "C"},
		},
		{
			name:     "EmptySelection",
			directed: true,
			selected: nil,
			mode:     NeighborsBoth,
			want:     []string{},
		},
		{
			name:     "UnionOfSelected",
			directed: true,
			selected: []string{"A", "C"},
			mode:     NeighborsOut,
			want:     []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := chainGraph(t, tt.directed)
			var sel Selection
			if err := sel.Replace(g, tt.selected); err != nil {
				t.Fatalf("Replace: %v", err)
			}
			got := sortedKeys(sel.Highlighted(g, tt.mode))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Highlighted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionJSONRoundTrip(t *testing.T) {
	g := chainGraph(t, true)
	var sel Selection
	sel.Replace(g, []string{"C", "A"})

	data, err := json.Marshal(&sel)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["A","C"]` {
		t.Errorf("marshal = %s, want sorted ID array", data)
	}

	var back Selection
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !slices.Equal(back.IDs(), sel.IDs()) {
		t.Errorf("round-trip selection = %v, want %v", back.IDs(), sel.IDs())
	}
}

func TestParseNeighborMode(t *testing.T) {
	for _, valid := range []string{"out", "in", "both"} {
		if _, err := ParseNeighborMode(valid); err != nil {
			t.Errorf("ParseNeighborMode(%q) = %v", valid, err)
		}
	}
	if _, err := ParseNeighborMode("sideways"); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("ParseNeighborMode(sideways) code = %v, want INVALID_PARAMETER", errors.GetCode(err))
	}
}
