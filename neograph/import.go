package neograph

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/finsight-ai/finrag/graphrag"
)

// ImportOptions configures graph document import.
type ImportOptions struct {
	// IncludeSource also creates a Document node per graph document and a
	// MENTIONS relationship to every entity extracted from it. Required
	// for unstructured retrieval over the source chunks.
	IncludeSource bool

	// BaseEntityLabel adds the shared "Entity" label to every node in
	// addition to its own type label, so structured search can match
	// across entity types.
	BaseEntityLabel bool
}

// DefaultImportOptions mirrors the standard import configuration: source
// documents included, base entity label on.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{IncludeSource: true, BaseEntityLabel: true}
}

// ImportGraphDocuments bulk-imports precomputed graph documents.
//
// Nodes are MERGEd on their id within their label, so importing one dataset
// is safe to resume; re-running against a dataset whose documents have been
// re-generated with fresh ids will duplicate nodes. Callers are responsible
// for running the import at most once per dataset.
func (s *Store) ImportGraphDocuments(ctx context.Context, docs []*graphrag.GraphDocument, opts ImportOptions) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("document %d: %w", i, err)
		}
		if _, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return nil, s.importDocument(ctx, tx, doc, opts)
		}); err != nil {
			return fmt.Errorf("import document %d: %w", i, err)
		}
		if (i+1)%50 == 0 || i == len(docs)-1 {
			s.logger.Info("importing graph documents", "done", i+1, "total", len(docs))
		}
	}
	return nil
}

func (s *Store) importDocument(ctx context.Context, tx neo4j.ManagedTransaction, doc *graphrag.GraphDocument, opts ImportOptions) error {
	ids := make([]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		n.EnsureID()
		ids = append(ids, n.ID)

		labels := "`" + sanitizeLabel(n.Type) + "`"
		if opts.BaseEntityLabel {
			labels = "Entity:" + labels
		}
		query := fmt.Sprintf(
			"MERGE (n:%s {id: $id}) SET n += $props, n.text = $text",
			labels,
		)
		if _, err := tx.Run(ctx, query, map[string]any{
			"id":    n.ID,
			"props": n.Properties,
			"text":  n.Content,
		}); err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
	}

	for _, r := range doc.Relationships {
		query := fmt.Sprintf(
			"MATCH (a {id: $from}), (b {id: $to}) MERGE (a)-[r:`%s`]->(b) SET r += $props",
			sanitizeRelType(r.Type),
		)
		if _, err := tx.Run(ctx, query, map[string]any{
			"from":  r.FromID,
			"to":    r.ToID,
			"props": r.Properties,
		}); err != nil {
			return fmt.Errorf("relationship %s-[%s]->%s: %w", r.FromID, r.Type, r.ToID, err)
		}
	}

	if opts.IncludeSource && doc.Source.Text != "" {
		src := doc.Source
		if src.ID == "" {
			src.ID = uuid.NewString()
		}
		if _, err := tx.Run(ctx,
			`MERGE (d:Document {id: $id})
			 SET d.text = $text, d += $meta
			 WITH d
			 UNWIND $mentions AS mid
			 MATCH (n {id: mid})
			 MERGE (d)-[:MENTIONS]->(n)`,
			map[string]any{
				"id":       src.ID,
				"text":     src.Text,
				"meta":     src.Metadata,
				"mentions": ids,
			}); err != nil {
			return fmt.Errorf("source document %s: %w", src.ID, err)
		}
	}
	return nil
}

var labelSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// sanitizeLabel strips characters that are not legal in an unquoted Cypher
// label. Labels are interpolated into queries, so this is a hard gate.
func sanitizeLabel(label string) string {
	clean := labelSanitizer.ReplaceAllString(label, "")
	if clean == "" {
		return "Entity"
	}
	return clean
}

// sanitizeRelType uppercases and strips a relationship type for safe
// interpolation (e.g. "reported in" -> "REPORTED_IN").
func sanitizeRelType(relType string) string {
	clean := strings.ToUpper(strings.TrimSpace(relType))
	clean = strings.ReplaceAll(clean, " ", "_")
	clean = labelSanitizer.ReplaceAllString(clean, "")
	if clean == "" {
		return "RELATES_TO"
	}
	return clean
}
