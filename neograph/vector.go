package neograph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/finsight-ai/finrag/graphrag"
)

// VectorIndexName is the Neo4j vector index over Document node embeddings.
const VectorIndexName = "document_embeddings"

// embedBatchSize bounds how many documents are embedded and written per
// transaction during backfill.
const embedBatchSize = 32

// CreateVectorIndex creates the cosine vector index over Document.embedding
// if it does not already exist. The dimension count comes from the
// configured embedder, so the index and the query vectors always agree.
func (s *Store) CreateVectorIndex(ctx context.Context) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(
		`CREATE VECTOR INDEX %s IF NOT EXISTS
		 FOR (d:Document) ON (d.embedding)
		 OPTIONS {indexConfig: {
		   `+"`vector.dimensions`"+`: $dims,
		   `+"`vector.similarity_function`"+`: 'cosine'
		 }}`, VectorIndexName)

	if _, err := session.Run(ctx, query, map[string]any{
		"dims": s.embedder.Dimensions(),
	}); err != nil {
		return fmt.Errorf("create vector index: %w", err)
	}
	s.logger.Info("vector index ready", "index", VectorIndexName, "dimensions", s.embedder.Dimensions())
	return nil
}

// EmbedDocuments backfills embeddings for Document nodes that do not have
// one yet. It processes documents in batches and returns the number of
// documents embedded.
func (s *Store) EmbedDocuments(ctx context.Context) (int, error) {
	total := 0
	for {
		n, err := s.embedBatch(ctx)
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		total += n
		s.logger.Info("embedding documents", "embedded", total)
	}
}

func (s *Store) embedBatch(ctx context.Context) (int, error) {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	result, err := session.Run(ctx,
		`MATCH (d:Document) WHERE d.embedding IS NULL AND d.text IS NOT NULL
		 RETURN d.id AS id, d.text AS text LIMIT $limit`,
		map[string]any{"limit": embedBatchSize})
	if err != nil {
		return 0, fmt.Errorf("list unembedded documents: %w", err)
	}

	type pending struct {
		id, text string
	}
	var batch []pending
	for result.Next(ctx) {
		record := result.Record()
		id, _ := record.Get("id")
		text, _ := record.Get("text")
		batch = append(batch, pending{id: id.(string), text: text.(string)})
	}
	if err := result.Err(); err != nil {
		return 0, fmt.Errorf("list unembedded documents: %w", err)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	for _, p := range batch {
		vec, err := s.embedder.Embed(ctx, p.text)
		if err != nil {
			return 0, fmt.Errorf("embed document %s: %w", p.id, err)
		}
		if _, err := session.Run(ctx,
			"MATCH (d:Document {id: $id}) SET d.embedding = $embedding",
			map[string]any{"id": p.id, "embedding": vec}); err != nil {
			return 0, fmt.Errorf("store embedding for %s: %w", p.id, err)
		}
	}
	return len(batch), nil
}

// SimilaritySearch embeds the question and queries the vector index for the
// most similar Document chunks. Results below the query's minimum score are
// filtered out. Embedding failures are reported as ErrEmbeddingFailed so
// the retriever can surface them as evidence unavailability.
func (s *Store) SimilaritySearch(ctx context.Context, query *graphrag.Query) ([]graphrag.Chunk, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	vec, err := s.embedder.Embed(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", graphrag.ErrEmbeddingFailed, err)
	}

	session := s.readSession(ctx)
	defer session.Close(ctx)

	records, err := neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]*neo4j.Record, error) {
		result, err := tx.Run(ctx,
			`CALL db.index.vector.queryNodes($index, $k, $embedding)
			 YIELD node, score
			 WHERE score >= $min
			 RETURN node.id AS id, node.text AS text, score,
			        coalesce(node.source, '') AS source`,
			map[string]any{
				"index":     VectorIndexName,
				"k":         query.TopK,
				"embedding": vec,
				"min":       query.MinScore,
			})
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	chunks := make([]graphrag.Chunk, 0, len(records))
	for _, record := range records {
		chunk := graphrag.Chunk{}
		if id, ok := record.Get("id"); ok && id != nil {
			chunk.ID, _ = id.(string)
		}
		if text, ok := record.Get("text"); ok && text != nil {
			chunk.Text, _ = text.(string)
		}
		if score, ok := record.Get("score"); ok && score != nil {
			chunk.Score, _ = score.(float64)
		}
		if source, ok := record.Get("source"); ok && source != nil {
			chunk.Source, _ = source.(string)
		}
		if chunk.Text == "" {
			continue
		}
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}
