package graph

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/graphdeck/graphdeck/pkg/errors"
)

// Demo attribute pools, matching the sample graphs the dashboard is
// typically pointed at.
var (
	nodeCategories = []string{"A", "B", "C"}
	edgeTypes      = []string{"solid", "dashed", "dotted"}
)

// GenerateOptions configures synthetic graph generation.
type GenerateOptions struct {
	Nodes        int    // number of nodes, must be positive
	MaxOutDegree int    // per-node upper bound on generated out-edges, must be >= 0
	Directed     bool   // directedness of the produced graph
	Seed         *int64 // nil means entropy-sourced
}

// Generate produces a random graph satisfying the structural constraints:
// exactly opts.Nodes nodes with IDs "0".."n-1" in generation order, no
// self-loops, no duplicate pairs, and every node's generated out-degree at
// most opts.MaxOutDegree.
//
// When a seed is given, two calls with identical options produce
// bit-identical output: the same node and edge sets in the same insertion
// order. Without a seed the generator is entropy-sourced.
//
// Each node carries demo attributes (label, size, importance, category) and
// each edge carries (label, weight, type) so generated graphs exercise the
// dashboard's coloring and filtering out of the box.
//
// The only failure mode is INVALID_PARAMETER, checked before any work.
func Generate(opts GenerateOptions) (*Graph, error) {
	if opts.Nodes <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"node count must be positive, got %d", opts.Nodes)
	}
	if opts.MaxOutDegree < 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"max out-degree must be non-negative, got %d", opts.MaxOutDegree)
	}

	var rng *rand.Rand
	if opts.Seed != nil {
		seed := uint64(*opts.Seed)
		rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g := New(opts.Directed)
	n := opts.Nodes

	for i := range n {
		node := Node{
			ID: strconv.Itoa(i),
			Attrs: Attrs{
				"label":      StringValue(fmt.Sprintf("Node %d", i)),
				"size":       NumberValue(float64(rng.IntN(10) + 1)),
				"importance": NumberValue(rng.Float64()),
				"category":   StringValue(nodeCategories[rng.IntN(len(nodeCategories))]),
			},
		}
		if err := g.AddNode(node); err != nil {
			return nil, err
		}
	}

	for i := range n {
		degree := rng.IntN(min(opts.MaxOutDegree, n-1) + 1)
		if degree == 0 {
			continue
		}

		// Candidate targets exclude the node itself; a shuffle-and-take
		// prefix draws `degree` distinct targets uniformly.
		candidates := make([]string, 0, n-1)
		for j := range n {
			if j != i {
				candidates = append(candidates, strconv.Itoa(j))
			}
		}
		rng.Shuffle(len(candidates), func(a, b int) {
			candidates[a], candidates[b] = candidates[b], candidates[a]
		})

		source := strconv.Itoa(i)
		for _, target := range candidates[:degree] {
			// Undirected graphs may already hold the reverse pair.
			if g.HasEdge(source, target) {
				continue
			}
			edge := Edge{
				Source: source,
				Target: target,
				Attrs: Attrs{
					"label":  StringValue(fmt.Sprintf("e%s-%s", source, target)),
					"weight": NumberValue(0.1 + rng.Float64()*4.9),
					"type":   StringValue(edgeTypes[rng.IntN(len(edgeTypes))]),
				},
			}
			if err := g.AddEdge(edge); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}
