package neograph

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/finsight-ai/finrag/graphrag"
)

// structuredResultLimit caps the facts one structured search returns.
// Evidence context goes straight into the LLM prompt, so an unbounded
// fan-out from a common term would blow the token budget.
const structuredResultLimit = 30

// StructuredSearch matches question terms against entity identifiers and
// names and returns the relationships touching matched entities as
// subject-predicate-object facts. A question whose terms match nothing
// returns an empty slice, not an error.
func (s *Store) StructuredSearch(ctx context.Context, query *graphrag.Query) ([]graphrag.Fact, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	terms := queryTerms(query.Text)
	if len(terms) == 0 {
		return nil, nil
	}

	session := s.readSession(ctx)
	defer session.Close(ctx)

	cypher := `MATCH (a:Entity)-[r]->(b:Entity)
		 WHERE any(term IN $terms WHERE
		       toLower(a.id) CONTAINS term OR toLower(coalesce(a.name, '')) CONTAINS term
		    OR toLower(b.id) CONTAINS term OR toLower(coalesce(b.name, '')) CONTAINS term)`
	params := map[string]any{
		"terms": terms,
		"limit": structuredResultLimit,
	}
	if len(query.NodeLabels) > 0 {
		cypher += `
		 AND (any(l IN labels(a) WHERE l IN $labels) OR any(l IN labels(b) WHERE l IN $labels))`
		params["labels"] = query.NodeLabels
	}
	cypher += `
		 RETURN coalesce(a.name, a.id) AS subject, type(r) AS predicate,
		        coalesce(b.name, b.id) AS object
		 LIMIT $limit`

	records, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]*neo4j.Record, error) {
		result, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("structured search: %w", err)
	}

	facts := make([]graphrag.Fact, 0, len(records))
	for _, record := range records {
		fact := graphrag.Fact{}
		if v, ok := record.Get("subject"); ok && v != nil {
			fact.Subject, _ = v.(string)
		}
		if v, ok := record.Get("predicate"); ok && v != nil {
			fact.Predicate, _ = v.(string)
		}
		if v, ok := record.Get("object"); ok && v != nil {
			fact.Object, _ = v.(string)
		}
		if fact.Subject == "" || fact.Object == "" {
			continue
		}
		facts = append(facts, fact)
	}
	return facts, nil
}

// stopwords are question-filler terms that would match almost any entity.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
	"what": true, "which": true, "who": true, "how": true, "was": true,
	"were": true, "are": true, "did": true, "does": true, "that": true,
	"this": true, "from": true, "much": true, "many": true, "about": true,
	"show": true, "tell": true, "give": true, "over": true, "between": true,
}

// queryTerms lowercases the question and extracts the terms worth matching
// against entity names: words longer than two characters minus stopwords.
func queryTerms(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '-' && r != '.'
	})
	terms := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-.")
		if len(f) <= 2 || stopwords[f] || seen[f] {
			continue
		}
		seen[f] = true
		terms = append(terms, f)
	}
	return terms
}
