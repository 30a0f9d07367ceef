package graph

import (
	"maps"
	"slices"
	"sort"

	"github.com/graphdeck/graphdeck/pkg/errors"
)

// Direction selects which adjacency to traverse in Neighbors.
type Direction int

const (
	// DirectionOut follows edges away from the node (successors).
	DirectionOut Direction = iota
	// DirectionIn follows edges toward the node (predecessors).
	DirectionIn
	// DirectionBoth combines successors and predecessors.
	DirectionBoth
)

// Node is a graph vertex with an opaque unique ID and scalar attributes.
type Node struct {
	ID    string
	Attrs Attrs
}

// Edge connects two nodes. For directed graphs the pair is ordered; for
// undirected graphs (Source, Target) and (Target, Source) denote the same
// edge. At most one edge exists per pair.
type Edge struct {
	Source string
	Target string
	Attrs  Attrs
}

// Graph is the in-memory graph model. Directedness is fixed at construction.
// Node and edge insertion order is preserved for deterministic serialization.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// mutation; the dashboard serializes all access through its event loop.
type Graph struct {
	directed bool
	nodes    []Node
	index    map[string]int // node ID -> position in nodes
	edges    []Edge
	pairs    map[[2]string]bool  // normalized endpoint pair -> exists
	out      map[string][]string // source ID -> target IDs
	in       map[string][]string // target ID -> source IDs
}

// New creates an empty graph with the given directedness.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		index:    make(map[string]int),
		pairs:    make(map[[2]string]bool),
		out:      make(map[string][]string),
		in:       make(map[string][]string),
	}
}

// Directed reports whether the graph was created as directed.
func (g *Graph) Directed() bool { return g.directed }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns all nodes in insertion order. The slice is a copy; attribute
// maps are shared and must not be mutated.
func (g *Graph) Nodes() []Node {
	return slices.Clone(g.nodes)
}

// Edges returns all edges in insertion order. The slice is a copy; attribute
// maps are shared and must not be mutated.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// AddNode adds a node to the graph.
// Fails with MALFORMED_GRAPH if the ID is empty or already present.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return errors.New(errors.ErrCodeMalformedGraph, "node ID must not be empty")
	}
	if _, exists := g.index[n.ID]; exists {
		return errors.New(errors.ErrCodeMalformedGraph, "duplicate node ID %q", n.ID)
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: n.ID, Attrs: n.Attrs.clone()})
	return nil
}

// AddEdge adds an edge between two existing nodes.
// Fails with UNKNOWN_NODE if either endpoint is absent, and with
// MALFORMED_GRAPH if an edge already exists for the pair (for undirected
// graphs the reverse pair counts as the same edge).
func (g *Graph) AddEdge(e Edge) error {
	if !g.HasNode(e.Source) {
		return errors.New(errors.ErrCodeUnknownNode, "edge source %q not in graph", e.Source)
	}
	if !g.HasNode(e.Target) {
		return errors.New(errors.ErrCodeUnknownNode, "edge target %q not in graph", e.Target)
	}
	key := g.pairKey(e.Source, e.Target)
	if g.pairs[key] {
		return errors.New(errors.ErrCodeMalformedGraph, "duplicate edge %s-%s", e.Source, e.Target)
	}
	g.pairs[key] = true
	g.edges = append(g.edges, Edge{Source: e.Source, Target: e.Target, Attrs: e.Attrs.clone()})
	g.out[e.Source] = append(g.out[e.Source], e.Target)
	g.in[e.Target] = append(g.in[e.Target], e.Source)
	if !g.directed {
		g.out[e.Target] = append(g.out[e.Target], e.Source)
		g.in[e.Source] = append(g.in[e.Source], e.Target)
	}
	return nil
}

// HasEdge reports whether an edge exists for the pair (normalized for
// undirected graphs).
func (g *Graph) HasEdge(source, target string) bool {
	return g.pairs[g.pairKey(source, target)]
}

// RemoveNode removes a node and all its incident edges, preserving the
// insertion order of the remaining nodes and edges.
// Fails with UNKNOWN_NODE if the node is absent.
func (g *Graph) RemoveNode(id string) error {
	i, ok := g.index[id]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNode, "node %q not in graph", id)
	}

	g.nodes = slices.Delete(g.nodes, i, i+1)
	delete(g.index, id)
	for j := i; j < len(g.nodes); j++ {
		g.index[g.nodes[j].ID] = j
	}

	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Source == id || e.Target == id {
			delete(g.pairs, g.pairKey(e.Source, e.Target))
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept

	delete(g.out, id)
	delete(g.in, id)
	for k, targets := range g.out {
		g.out[k] = slices.DeleteFunc(targets, func(t string) bool { return t == id })
	}
	for k, sources := range g.in {
		g.in[k] = slices.DeleteFunc(sources, func(s string) bool { return s == id })
	}
	return nil
}

// Neighbors returns the sorted set of node IDs adjacent to id.
// For directed graphs the direction distinguishes successors (DirectionOut),
// predecessors (DirectionIn), and their union (DirectionBoth); undirected
// graphs treat all three identically.
// Fails with UNKNOWN_NODE if id is absent.
func (g *Graph) Neighbors(id string, dir Direction) ([]string, error) {
	if !g.HasNode(id) {
		return nil, errors.New(errors.ErrCodeUnknownNode, "node %q not in graph", id)
	}

	set := make(map[string]bool)
	if dir == DirectionOut || dir == DirectionBoth || !g.directed {
		for _, t := range g.out[id] {
			set[t] = true
		}
	}
	if dir == DirectionIn || dir == DirectionBoth {
		for _, s := range g.in[id] {
			set[s] = true
		}
	}

	result := slices.Collect(maps.Keys(set))
	sort.Strings(result)
	return result, nil
}

// AttributeValues returns the sorted distinct values taken by attr across
// all nodes that define it. Used to populate filter choices.
func (g *Graph) AttributeValues(attr string) []Value {
	var distinct []Value
	for _, n := range g.nodes {
		v, ok := n.Attrs[attr]
		if !ok {
			continue
		}
		if !slices.ContainsFunc(distinct, v.Equal) {
			distinct = append(distinct, v)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i].Less(distinct[j]) })
	return distinct
}

// reservedAttrs are node attributes that are identifiers or positional
// hints, never categories.
var reservedAttrs = map[string]bool{
	"id": true, "name": true, "label": true,
	"x": true, "y": true, "z": true,
	"size": true, "width": true, "height": true,
}

// CategoricalAttributes returns the node attributes usable for coloring and
// filtering: those with between 2 and 10 distinct values, excluding
// identifier and positional attributes. Keys are returned sorted.
func (g *Graph) CategoricalAttributes() []string {
	seen := make(map[string]bool)
	var result []string
	for _, n := range g.nodes {
		for attr := range n.Attrs {
			if seen[attr] || reservedAttrs[attr] {
				continue
			}
			seen[attr] = true
			if count := len(g.AttributeValues(attr)); count >= 2 && count <= 10 {
				result = append(result, attr)
			}
		}
	}
	sort.Strings(result)
	return result
}

// Equal reports whether two graphs have the same directedness, the same
// node ID set with equal attributes, and the same edge set (as unordered
// pairs for undirected graphs) with equal attributes.
func (g *Graph) Equal(o *Graph) bool {
	if g.directed != o.directed || len(g.nodes) != len(o.nodes) || len(g.edges) != len(o.edges) {
		return false
	}
	for _, n := range g.nodes {
		on, ok := o.Node(n.ID)
		if !ok || !n.Attrs.Equal(on.Attrs) {
			return false
		}
	}
	for _, e := range g.edges {
		oe, ok := o.edgeFor(e.Source, e.Target)
		if !ok || !e.Attrs.Equal(oe.Attrs) {
			return false
		}
	}
	return true
}

// edgeFor finds the edge for a pair, normalizing direction for undirected
// graphs.
func (g *Graph) edgeFor(source, target string) (Edge, bool) {
	for _, e := range g.edges {
		if e.Source == source && e.Target == target {
			return e, true
		}
		if !g.directed && e.Source == target && e.Target == source {
			return e, true
		}
	}
	return Edge{}, false
}

// pairKey normalizes an endpoint pair for duplicate detection.
// Undirected graphs treat (a,b) and (b,a) as the same pair.
func (g *Graph) pairKey(a, b string) [2]string {
	if !g.directed && b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}
