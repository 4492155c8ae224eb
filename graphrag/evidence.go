package graphrag

import (
	"fmt"
	"strings"
)

// NoEvidenceMessage is the fixed textual content of the sentinel bundle
// returned when neither evidence source yields relevant material. It is a
// designed placeholder, distinct from an empty string and from an error:
// downstream stages must treat it as "no evidence", not as content.
const NoEvidenceMessage = "No relevant information found for this query"

// Fact is one structured result: a subject-predicate-object triple from the
// knowledge graph.
type Fact struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// String renders the fact in the "(subject)-[predicate]->(object)" form used
// as LLM context.
func (f Fact) String() string {
	return fmt.Sprintf("(%s)-[%s]->(%s)", f.Subject, f.Predicate, f.Object)
}

// Chunk is one unstructured result: a semantically indexed piece of source
// text with its similarity score.
type Chunk struct {
	// ID is the source document node ID.
	ID string `json:"id"`

	// Text is the chunk content.
	Text string `json:"text"`

	// Score is the vector similarity score (0.0 to 1.0).
	Score float64 `json:"score"`

	// Source is optional provenance (file name, section).
	Source string `json:"source,omitempty"`
}

// EvidenceBundle is the combined structured + unstructured retrieval result
// for one question. Bundles are request-scoped and never mutated after the
// retriever returns them.
type EvidenceBundle struct {
	// Question is the question this evidence was retrieved for.
	Question string `json:"question"`

	// Facts are the structured results from the graph.
	Facts []Fact `json:"facts,omitempty"`

	// Chunks are the unstructured results from the vector index.
	Chunks []Chunk `json:"chunks,omitempty"`

	// sentinel marks the designed "no relevant information" bundle.
	sentinel bool
}

// NewNoEvidenceBundle returns the sentinel bundle for a question that
// matched nothing in either source.
func NewNoEvidenceBundle(question string) *EvidenceBundle {
	return &EvidenceBundle{Question: question, sentinel: true}
}

// HasStructured reports whether the structured source returned any facts.
func (b *EvidenceBundle) HasStructured() bool {
	return len(b.Facts) > 0
}

// HasUnstructured reports whether the unstructured source returned any chunks.
func (b *EvidenceBundle) HasUnstructured() bool {
	return len(b.Chunks) > 0
}

// IsNoEvidence reports whether this is the designed sentinel bundle.
func (b *EvidenceBundle) IsNoEvidence() bool {
	return b.sentinel
}

// Context renders the bundle as LLM context. The sentinel bundle renders as
// the fixed NoEvidenceMessage so the generator can explain what is missing
// instead of answering from nothing.
func (b *EvidenceBundle) Context() string {
	if b.sentinel || (!b.HasStructured() && !b.HasUnstructured()) {
		return NoEvidenceMessage
	}

	var sb strings.Builder
	if b.HasStructured() {
		sb.WriteString("Structured data:\n")
		for _, f := range b.Facts {
			sb.WriteString(f.String())
			sb.WriteByte('\n')
		}
	}
	if b.HasUnstructured() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("Unstructured data:\n")
		for _, c := range b.Chunks {
			sb.WriteString(c.Text)
			sb.WriteString("\n#Document ")
			sb.WriteString(c.ID)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Entities returns the distinct subjects mentioned in the structured facts.
// The answer generator uses these to suggest adjacent information when the
// requested data is missing.
func (b *EvidenceBundle) Entities() []string {
	seen := make(map[string]struct{}, len(b.Facts))
	var out []string
	for _, f := range b.Facts {
		if _, ok := seen[f.Subject]; ok {
			continue
		}
		seen[f.Subject] = struct{}{}
		out = append(out, f.Subject)
	}
	return out
}
