package graphrag

import "fmt"

// SourceDocument is the source text a graph document was extracted from.
// It is imported alongside the entity nodes so that unstructured retrieval
// can run over the original chunks.
type SourceDocument struct {
	// ID is the unique document identifier. Auto-generated if empty.
	ID string `json:"id"`

	// Text is the chunk of source text.
	Text string `json:"text"`

	// Metadata contains optional provenance (file name, page, section).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// GraphDocument is one unit of precomputed knowledge-graph extraction:
// the entity nodes and relationships found in a chunk of source text,
// together with the chunk itself.
type GraphDocument struct {
	Nodes         []*GraphNode    `json:"nodes"`
	Relationships []*Relationship `json:"relationships"`
	Source        SourceDocument  `json:"source"`
}

// Validate checks the document and everything it contains. Relationships
// must reference node IDs present in the document.
func (d *GraphDocument) Validate() error {
	if len(d.Nodes) == 0 {
		return fmt.Errorf("graph document has no nodes")
	}
	ids := make(map[string]struct{}, len(d.Nodes))
	for i, n := range d.Nodes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if n.ID != "" {
			ids[n.ID] = struct{}{}
		}
	}
	for i, r := range d.Relationships {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("relationship %d: %w", i, err)
		}
		if _, ok := ids[r.FromID]; !ok {
			return fmt.Errorf("relationship %d: FromID %q not found in document", i, r.FromID)
		}
		if _, ok := ids[r.ToID]; !ok {
			return fmt.Errorf("relationship %d: ToID %q not found in document", i, r.ToID)
		}
	}
	return nil
}
