package graphrag

import "fmt"

// Relationship represents a connection between two nodes in a knowledge-graph
// document (e.g., a Company REPORTED a Revenue figure).
type Relationship struct {
	// FromID is the source node ID
	FromID string `json:"from_id"`

	// ToID is the target node ID
	ToID string `json:"to_id"`

	// Type describes the relationship type (e.g., "REPORTED", "PART_OF", "IN_PERIOD")
	Type string `json:"type"`

	// Properties contains optional relationship metadata
	Properties map[string]any `json:"properties,omitempty"`
}

// NewRelationship creates a new Relationship with the specified source,
// target, and type.
func NewRelationship(fromID, toID, relType string) *Relationship {
	return &Relationship{
		FromID:     fromID,
		ToID:       toID,
		Type:       relType,
		Properties: make(map[string]any),
	}
}

// WithProperty adds a single property to the relationship and returns the
// relationship for chaining.
func (r *Relationship) WithProperty(key string, value any) *Relationship {
	if r.Properties == nil {
		r.Properties = make(map[string]any)
	}
	r.Properties[key] = value
	return r
}

// WithProperties sets multiple properties on the relationship and returns the
// relationship for chaining. This replaces any existing properties.
func (r *Relationship) WithProperties(props map[string]any) *Relationship {
	r.Properties = props
	return r
}

// Validate checks that the relationship has all required fields populated.
// Returns an error if FromID, ToID, or Type are empty.
func (r *Relationship) Validate() error {
	if r.FromID == "" {
		return fmt.Errorf("relationship FromID cannot be empty")
	}
	if r.ToID == "" {
		return fmt.Errorf("relationship ToID cannot be empty")
	}
	if r.Type == "" {
		return fmt.Errorf("relationship Type cannot be empty")
	}
	return nil
}
