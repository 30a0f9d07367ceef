// Package graph implements the in-memory graph model used throughout
// graphdeck: nodes and edges carrying scalar attributes, a fixed
// directedness, and a stable JSON document format.
//
// A Graph is built once (from the generator or from a JSON document) and is
// treated as immutable for the lifetime of a dashboard session. All
// derived queries (neighbors, attribute values) are pure functions of the
// graph content.
//
// # Document Format
//
// The persisted layout is a flat JSON object:
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "0", "label": "Node 0", "category": "A"}],
//	  "edges": [{"source": "0", "target": "1", "weight": 1.5}]
//	}
//
// Node and edge attributes are freeform scalars (string, number, or bool),
// modeled by [Value]. Decoding validates the document as a whole: no partial
// graph is ever returned.
package graph
