package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/graphdeck/graphdeck/pkg/errors"
)

// =============================================================================
// Document Decoding
// =============================================================================

// Decode parses a JSON graph document from r.
//
// The document must be a JSON object with a boolean "directed" field and
// "nodes"/"edges" arrays:
//
//	{
//	  "directed": true,
//	  "nodes": [{"id": "a", "category": "A"}],
//	  "edges": [{"source": "a", "target": "b", "weight": 0.5}]
//	}
//
// Every field on a node besides "id" (and on an edge besides
// "source"/"target") is kept as a scalar attribute.
//
// Decode fails with a MALFORMED_GRAPH error if:
//   - the JSON is invalid or required fields are missing or mistyped
//   - a node ID is duplicated
//   - an edge references an unknown node ID
//   - two edges cover the same pair (reverse pairs included when undirected)
//   - an attribute value is not a scalar
//
// No partial graph is ever returned: on any error the result is nil.
func Decode(r io.Reader) (*Graph, error) {
	var doc struct {
		Directed *bool             `json:"directed"`
		Nodes    []json.RawMessage `json:"nodes"`
		Edges    []json.RawMessage `json:"edges"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "decode document")
	}
	if doc.Directed == nil {
		return nil, errors.New(errors.ErrCodeMalformedGraph, "missing required field %q", "directed")
	}

	g := New(*doc.Directed)

	for i, raw := range doc.Nodes {
		id, attrs, err := decodeElement(raw, "id")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "node %d", i)
		}
		if err := g.AddNode(Node{ID: id["id"], Attrs: attrs}); err != nil {
			return nil, err
		}
	}

	for i, raw := range doc.Edges {
		ids, attrs, err := decodeElement(raw, "source", "target")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err, "edge %d", i)
		}
		e := Edge{Source: ids["source"], Target: ids["target"], Attrs: attrs}
		if err := g.AddEdge(e); err != nil {
			// Dangling endpoints are a document defect, not a stale reference.
			if errors.Is(err, errors.ErrCodeUnknownNode) {
				return nil, errors.Wrap(errors.ErrCodeMalformedGraph, err,
					"edge %s-%s references unknown node", e.Source, e.Target)
			}
			return nil, err
		}
	}

	return g, nil
}

// decodeElement parses one node or edge object, extracting the named
// required string fields and converting everything else to attributes.
func decodeElement(raw json.RawMessage, required ...string) (map[string]string, Attrs, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, fmt.Errorf("not an object: %w", err)
	}

	ids := make(map[string]string, len(required))
	for _, field := range required {
		v, ok := obj[field]
		if !ok {
			return nil, nil, fmt.Errorf("missing required field %q", field)
		}
		s, ok := v.(string)
		if !ok {
			return nil, nil, fmt.Errorf("field %q must be a string, got %T", field, v)
		}
		if s == "" {
			return nil, nil, fmt.Errorf("field %q must not be empty", field)
		}
		ids[field] = s
		delete(obj, field)
	}

	var attrs Attrs
	for k, rawVal := range obj {
		v, err := ValueOf(rawVal)
		if err != nil {
			return nil, nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		if attrs == nil {
			attrs = make(Attrs, len(obj))
		}
		attrs[k] = v
	}
	return ids, attrs, nil
}

// Unmarshal parses a JSON graph document from bytes.
func Unmarshal(data []byte) (*Graph, error) {
	return Decode(bytes.NewReader(data))
}

// ReadFile reads and decodes a JSON graph document at path.
// Open failures are reported as FILE_NOT_FOUND; decode failures carry the
// same MALFORMED_GRAPH errors as [Decode], wrapped with the path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// =============================================================================
// Document Encoding
// =============================================================================

// Encode writes the graph as a pretty-printed JSON document to w.
// Node and edge insertion order is preserved; attributes are emitted in
// sorted key order so output is deterministic.
// Encode is the inverse of [Decode]: decoding the output yields a graph
// equal to g under [Graph.Equal].
func (g *Graph) Encode(w io.Writer) error {
	data, err := g.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal serializes the graph to pretty-printed JSON document bytes.
func (g *Graph) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"directed\": ")
	if g.directed {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}

	buf.WriteString(",\n  \"nodes\": [")
	for i, n := range g.nodes {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		if err := writeElement(&buf, [][2]string{{"id", n.ID}}, n.Attrs); err != nil {
			return nil, err
		}
	}
	if len(g.nodes) > 0 {
		buf.WriteString("\n  ")
	}

	buf.WriteString("],\n  \"edges\": [")
	for i, e := range g.edges {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		fields := [][2]string{{"source", e.Source}, {"target", e.Target}}
		if err := writeElement(&buf, fields, e.Attrs); err != nil {
			return nil, err
		}
	}
	if len(g.edges) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("]\n}\n")

	return buf.Bytes(), nil
}

// WriteFile writes the graph document to a JSON file with 0644 permissions.
func (g *Graph) WriteFile(path string) error {
	data, err := g.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeElement emits a single flat JSON object: the fixed identifier fields
// first, then attributes in sorted key order.
func writeElement(buf *bytes.Buffer, fields [][2]string, attrs Attrs) error {
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		if err := writePair(buf, f[0], f[1]); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteString(", ")
		if err := writePair(buf, k, attrs[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writePair emits `"key": value` with proper JSON escaping.
func writePair(buf *bytes.Buffer, key string, value any) error {
	kb, err := json.Marshal(key)
	if err != nil {
		return err
	}
	vb, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(kb)
	buf.WriteString(": ")
	buf.Write(vb)
	return nil
}
