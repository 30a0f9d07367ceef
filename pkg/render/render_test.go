package render

import (
	"context"
	"strings"
	"testing"

	"github.com/graphdeck/graphdeck/pkg/errors"
	"github.com/graphdeck/graphdeck/pkg/scene"
	"github.com/graphdeck/graphdeck/pkg/session"
)

func demoScene(directed bool) scene.Scene {
	return scene.Scene{
		Layout:   "circle",
		Directed: directed,
		Nodes: []scene.NodeSpec{
			{ID: "a", Label: "Alpha", Color: "#e5383b", Highlighted: true, Visibility: session.Visible},
			{ID: "b", Label: "b", Visibility: session.Dimmed},
		},
		Edges: []scene.EdgeSpec{
			{Source: "a", Target: "b", Visibility: session.Dimmed},
		},
	}
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name     string
		directed bool
		want     []string
		absent   []string
	}{
		{
			name:     "Directed",
			directed: true,
			want: []string{
				"digraph G {",
				`"a" -> "b"`,
				`label="Alpha"`,
				`fillcolor="#e5383b"`, // category color survives
				"penwidth=3",          // highlight border
				`fillcolor="#d8dbe3"`, // dimmed node fill
				`color="#dddddd"`,     // dimmed edge color
			},
		},
		{
			name:     "Undirected",
			directed: false,
			want:     []string{"graph G {", `"a" -- "b"`},
			absent:   []string{"digraph", "->"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(demoScene(tt.directed))
			for _, want := range tt.want {
				if !strings.Contains(dot, want) {
					t.Errorf("DOT missing %q:\n%s", want, dot)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(dot, absent) {
					t.Errorf("DOT contains %q unexpectedly:\n%s", absent, dot)
				}
			}
		})
	}
}

func TestRenderDOTFormat(t *testing.T) {
	out, err := Render(context.Background(), demoScene(true), FormatDOT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(out), "digraph G {") {
		t.Errorf("DOT output = %q...", string(out[:20]))
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"svg", "png", "dot"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) = %v", valid, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(pdf) code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestEngineFor(t *testing.T) {
	// Every supported layout maps to some engine; unknown names fall back
	// to force-directed rather than failing.
	for _, l := range scene.Layouts() {
		_ = engineFor(string(l))
	}
	_ = engineFor("unknown-layout")
}
