// Package neograph implements the graph and vector evidence sources on top
// of Neo4j. One Store serves three roles: bulk importer for precomputed
// graph documents, structured fact search over entities, and vector
// similarity search over the imported source documents.
//
// The Store wraps a neo4j driver with an explicit lifecycle: construct with
// Open, release with Close. Drivers are safe for concurrent use, so a single
// Store can be shared across simultaneous requests.
package neograph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/finsight-ai/finrag/embedding"
	"github.com/finsight-ai/finrag/graphrag"
)

// Config holds Neo4j connection settings.
type Config struct {
	// URI is the bolt/neo4j connection string (e.g. "neo4j://localhost:7687").
	URI string

	// Username and Password authenticate against the database.
	Username string
	Password string

	// Database selects a named database; empty uses the server default.
	Database string
}

// Store is a Neo4j-backed graph and vector store.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
	embedder embedding.Embedder
	logger   *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// Open connects to Neo4j and verifies connectivity. The embedder is used
// for vector index building and similarity search.
func Open(ctx context.Context, cfg Config, embedder embedding.Embedder, opts ...StoreOption) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("%w: verify connectivity: %v", graphrag.ErrEvidenceUnavailable, err)
	}

	s := &Store{
		driver:   driver,
		database: cfg.Database,
		embedder: embedder,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) readSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})
}

func (s *Store) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
}
