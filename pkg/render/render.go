// Package render exports scenes as static images. It translates a scene
// description to Graphviz DOT and renders it with the goccy/go-graphviz
// engine; the interactive dashboard does not use this path, it ships scenes
// to the browser widget instead.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/graphdeck/graphdeck/pkg/errors"
	"github.com/graphdeck/graphdeck/pkg/scene"
	"github.com/graphdeck/graphdeck/pkg/session"
)

// Format is a static output format.
type Format string

const (
	// FormatSVG renders scalable vector output.
	FormatSVG Format = "svg"
	// FormatPNG renders raster output.
	FormatPNG Format = "png"
	// FormatDOT emits the intermediate Graphviz source without rendering.
	FormatDOT Format = "dot"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSVG, FormatPNG, FormatDOT:
		return Format(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (must be 'svg', 'png', or 'dot')", s)
	}
}

// engineFor maps scene layouts to the closest Graphviz layout engine.
// The interactive widget implements these layouts natively; for static
// export an approximation is good enough.
func engineFor(layout string) graphviz.Layout {
	switch scene.Layout(layout) {
	case scene.LayoutCircle:
		return graphviz.CIRCO
	case scene.LayoutConcentric:
		return graphviz.TWOPI
	case scene.LayoutBreadthfirst:
		return graphviz.DOT
	case scene.LayoutGrid:
		return graphviz.OSAGE
	case scene.LayoutRandom:
		return graphviz.SFDP
	default: // cose and anything unrecognized: force-directed
		return graphviz.NEATO
	}
}

// Colors for elements without a category color.
const (
	defaultNodeFill = "#6272a3"
	dimmedNodeFill  = "#d8dbe3"
	highlightStroke = "#ff7700"
	edgeColor       = "#a3627c"
	dimmedEdgeColor = "#dddddd"
)

// ToDOT converts a scene to Graphviz DOT. Highlighted nodes get a thick
// accent border, dimmed elements get washed-out colors, and category colors
// from the scene's legend become node fills.
func ToDOT(s scene.Scene) string {
	var buf bytes.Buffer
	if s.Directed {
		buf.WriteString("digraph G {\n")
	} else {
		buf.WriteString("graph G {\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=12, fontcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	op := "--"
	if s.Directed {
		op = "->"
	}
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", e.Source, op, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n scene.NodeSpec) []string {
	fill := defaultNodeFill
	if n.Color != "" {
		fill = n.Color
	}
	if n.Visibility == session.Dimmed {
		fill = dimmedNodeFill
	}
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		fmt.Sprintf("fillcolor=%q", fill),
	}
	if n.Highlighted {
		attrs = append(attrs,
			fmt.Sprintf("color=%q", highlightStroke),
			"penwidth=3")
	}
	return attrs
}

func edgeAttrs(e scene.EdgeSpec) []string {
	color := edgeColor
	if e.Visibility == session.Dimmed {
		color = dimmedEdgeColor
	}
	attrs := []string{fmt.Sprintf("color=%q", color)}
	if e.Highlighted {
		attrs = append(attrs, "penwidth=2.5")
	}
	return attrs
}

// Render produces static output for a scene in the given format.
// DOT output skips Graphviz entirely; SVG and PNG run the layout engine
// matching the scene's layout choice.
func Render(ctx context.Context, s scene.Scene, format Format) ([]byte, error) {
	dot := ToDOT(s)
	if format == FormatDOT {
		return []byte(dot), nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(engineFor(s.Layout))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var target graphviz.Format
	switch format {
	case FormatSVG:
		target = graphviz.SVG
	case FormatPNG:
		target = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, target, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
