package session

import (
	"testing"

	"github.com/graphdeck/graphdeck/pkg/graph"
)

// groupGraph builds the canonical filter fixture: an "x" node connected to
// a "y" node, plus a second "x" node with no edges.
func groupGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New(false)
	g.AddNode(graph.Node{ID: "1", Attrs: graph.Attrs{"group": graph.StringValue("x")}})
	g.AddNode(graph.Node{ID: "2", Attrs: graph.Attrs{"group": graph.StringValue("y")}})
	g.AddNode(graph.Node{ID: "3", Attrs: graph.Attrs{"group": graph.StringValue("x")}})
	if err := g.AddEdge(graph.Edge{Source: "1", Target: "2"}); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return g
}

func TestFilterNodeVisibility(t *testing.T) {
	g := groupGraph(t)
	var f Filter

	node := func(id string) graph.Node {
		n, ok := g.Node(id)
		if !ok {
			t.Fatalf("missing fixture node %s", id)
		}
		return n
	}

	t.Run("NoFilter", func(t *testing.T) {
		for _, id := range []string{"1", "2", "3"} {
			if got := f.NodeVisibility(node(id)); got != Visible {
				t.Errorf("NodeVisibility(%s) = %v, want visible", id, got)
			}
		}
	})

	t.Run("GroupX", func(t *testing.T) {
		f.Set("group", graph.StringValue("x"))
		tests := []struct {
			id   string
			want Visibility
		}{
			{"1", Visible},
			{"2", Dimmed},
			{"3", Visible},
		}
		for _, tt := range tests {
			if got := f.NodeVisibility(node(tt.id)); got != tt.want {
				t.Errorf("NodeVisibility(%s) = %v, want %v", tt.id, got, tt.want)
			}
		}
	})

	t.Run("NodeWithoutAttribute", func(t *testing.T) {
		f.Set("group", graph.StringValue("x"))
		if got := f.NodeVisibility(graph.Node{ID: "bare"}); got != Dimmed {
			t.Errorf("NodeVisibility(bare) = %v, want dimmed", got)
		}
	})

	t.Run("Cleared", func(t *testing.T) {
		f.Set("group", graph.StringValue("x"))
		f.Clear()
		if f.Active() {
			t.Error("filter still active after Clear")
		}
		if got := f.NodeVisibility(node("2")); got != Visible {
			t.Errorf("NodeVisibility(2) = %v after clear, want visible", got)
		}
	})
}

func TestFilterEdgeVisibility(t *testing.T) {
	g := groupGraph(t)
	edge := g.Edges()[0] // 1 ("x") - 2 ("y")

	var f Filter
	if got := f.EdgeVisibility(g, edge); got != Visible {
		t.Errorf("EdgeVisibility = %v with no filter, want visible", got)
	}

	// Spanning edge dims when only one endpoint passes the filter.
	f.Set("group", graph.StringValue("x"))
	if got := f.EdgeVisibility(g, edge); got != Dimmed {
		t.Errorf("EdgeVisibility = %v with group=x, want dimmed", got)
	}

	// Both endpoints passing keeps the edge visible.
	g2 := graph.New(false)
	g2.AddNode(graph.Node{ID: "a", Attrs: graph.Attrs{"group": graph.StringValue("x")}})
	g2.AddNode(graph.Node{ID: "b", Attrs: graph.Attrs{"group": graph.StringValue("x")}})
	g2.AddEdge(graph.Edge{Source: "a", Target: "b"})
	if got := f.EdgeVisibility(g2, g2.Edges()[0]); got != Visible {
		t.Errorf("EdgeVisibility = %v with both endpoints x, want visible", got)
	}
}

func TestFilterNumericValue(t *testing.T) {
	var f Filter
	f.Set("size", graph.NumberValue(3))

	visible := graph.Node{ID: "a", Attrs: graph.Attrs{"size": graph.NumberValue(3)}}
	dimmed := graph.Node{ID: "b", Attrs: graph.Attrs{"size": graph.NumberValue(4)}}
	wrongKind := graph.Node{ID: "c", Attrs: graph.Attrs{"size": graph.StringValue("3")}}

	if got := f.NodeVisibility(visible); got != Visible {
		t.Errorf("NodeVisibility(size=3) = %v, want visible", got)
	}
	if got := f.NodeVisibility(dimmed); got != Dimmed {
		t.Errorf("NodeVisibility(size=4) = %v, want dimmed", got)
	}
	if got := f.NodeVisibility(wrongKind); got != Dimmed {
		t.Errorf("NodeVisibility(size=\"3\") = %v, want dimmed (kind mismatch)", got)
	}
}
