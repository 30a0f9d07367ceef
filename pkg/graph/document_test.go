package graph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/graphdeck/graphdeck/pkg/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantEdges int
		wantErr   bool
		check     func(t *testing.T, g *Graph)
	}{
		{
			name:      "Empty",
			input:     `{"directed": true, "nodes": [], "edges": []}`,
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name: "Simple",
			input: `{
				"directed": true,
				"nodes": [{"id": "a", "category": "A"}, {"id": "b"}],
				"edges": [{"source": "a", "target": "b", "weight": 1.5}]
			}`,
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g *Graph) {
				n, _ := g.Node("a")
				if v, ok := n.Attrs["category"]; !ok || v.Text() != "A" {
					t.Errorf("node a category = %v, want A", v.Text())
				}
				e := g.Edges()[0]
				if w, ok := e.Attrs["weight"].AsNumber(); !ok || w != 1.5 {
					t.Errorf("edge weight = %v, want 1.5", w)
				}
			},
		},
		{
			name: "MixedScalarKinds",
			input: `{
				"directed": false,
				"nodes": [{"id": "a", "s": "str", "n": 2, "b": true}],
				"edges": []
			}`,
			wantNodes: 1,
			check: func(t *testing.T, g *Graph) {
				n, _ := g.Node("a")
				if n.Attrs["s"].Kind() != KindString {
					t.Error("attr s is not a string")
				}
				if n.Attrs["n"].Kind() != KindNumber {
					t.Error("attr n is not a number")
				}
				if n.Attrs["b"].Kind() != KindBool {
					t.Error("attr b is not a bool")
				}
			},
		},
		{
			name:    "InvalidJSON",
			input:   `{`,
			wantErr: true,
		},
		{
			name:    "MissingDirected",
			input:   `{"nodes": [], "edges": []}`,
			wantErr: true,
		},
		{
			name:    "MissingNodeID",
			input:   `{"directed": true, "nodes": [{"label": "x"}], "edges": []}`,
			wantErr: true,
		},
		{
			name:    "NonStringID",
			input:   `{"directed": true, "nodes": [{"id": 7}], "edges": []}`,
			wantErr: true,
		},
		{
			name:    "DuplicateNodeID",
			input:   `{"directed": true, "nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`,
			wantErr: true,
		},
		{
			name:    "DanglingEdge",
			input:   `{"directed": true, "nodes": [{"id": "a"}], "edges": [{"source": "a", "target": "ghost"}]}`,
			wantErr: true,
		},
		{
			name:    "MissingEdgeTarget",
			input:   `{"directed": true, "nodes": [{"id": "a"}], "edges": [{"source": "a"}]}`,
			wantErr: true,
		},
		{
			name: "DuplicateUndirectedPair",
			input: `{"directed": false, "nodes": [{"id": "a"}, {"id": "b"}],
				"edges": [{"source": "a", "target": "b"}, {"source": "b", "target": "a"}]}`,
			wantErr: true,
		},
		{
			name:    "NonScalarAttribute",
			input:   `{"directed": true, "nodes": [{"id": "a", "pos": [1, 2]}], "edges": []}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, errors.ErrCodeMalformedGraph) {
					t.Errorf("error code = %v, want MALFORMED_GRAPH", errors.GetCode(err))
				}
				if g != nil {
					t.Error("partial graph returned on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if g.NodeCount() != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", g.NodeCount(), tt.wantNodes)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("edges = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Graph
	}{
		{
			name:  "Empty",
			build: func() *Graph { return New(true) },
		},
		{
			name: "DirectedWithAttrs",
			build: func() *Graph {
				g := New(true)
				g.AddNode(Node{ID: "0", Attrs: Attrs{
					"label":      StringValue("Node 0"),
					"size":       NumberValue(7),
					"importance": NumberValue(0.25),
					"active":     BoolValue(true),
				}})
				g.AddNode(Node{ID: "1", Attrs: Attrs{"category": StringValue("B")}})
				g.AddEdge(Edge{Source: "0", Target: "1", Attrs: Attrs{
					"weight": NumberValue(2.5),
					"type":   StringValue("dashed"),
				}})
				return g
			},
		},
		{
			name: "Undirected",
			build: func() *Graph {
				g := New(false)
				g.AddNode(Node{ID: "x"})
				g.AddNode(Node{ID: "y"})
				g.AddNode(Node{ID: "z"})
				g.AddEdge(Edge{Source: "x", Target: "y"})
				g.AddEdge(Edge{Source: "z", Target: "y"})
				return g
			},
		},
		{
			name: "Generated",
			build: func() *Graph {
				seed := int64(7)
				g, err := Generate(GenerateOptions{Nodes: 15, MaxOutDegree: 4, Directed: true, Seed: &seed})
				if err != nil {
					panic(err)
				}
				return g
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build()

			data, err := g.Marshal()
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			back, err := Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !g.Equal(back) {
				t.Errorf("round-trip graph differs\noriginal: %d nodes %d edges\ndecoded:  %d nodes %d edges",
					g.NodeCount(), g.EdgeCount(), back.NodeCount(), back.EdgeCount())
			}

			// Insertion order is part of the format: byte-stable re-encoding.
			data2, err := back.Marshal()
			if err != nil {
				t.Fatalf("re-Marshal: %v", err)
			}
			if string(data) != string(data2) {
				t.Error("re-encoded document differs from first encoding")
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")

	seed := int64(3)
	g, err := Generate(GenerateOptions{Nodes: 8, MaxOutDegree: 2, Directed: false, Seed: &seed})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if err := g.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !g.Equal(back) {
		t.Error("file round-trip graph differs")
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
