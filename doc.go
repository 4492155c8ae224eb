// Package finrag answers financial questions over a precomputed knowledge
// graph, returning text answers or rendered chart images.
//
// The module implements a hybrid GraphRAG flow: a question is answered by
// combining structured facts from a Neo4j knowledge graph with
// semantically similar source chunks from a vector index, feeding both
// into an LLM as grounding context. When the answer contains chartable
// numeric series, a second extraction pass turns it into a chart
// descriptor that renders to PNG.
//
// # Usage
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app, err := finrag.New(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Close(context.Background())
//
//	outcome, err := app.Pipeline().Ask(ctx, "What was Acme's 2023 revenue?", nil)
//
// The cmd/finrag command wraps this into `finrag serve` (the HTTP backend
// for the browser frontend) and `finrag import` (one-shot dataset import).
//
// # Missing data semantics
//
// Questions about data the corpus lacks are successful outcomes, never
// errors: retrieval yields a designed no-evidence bundle, the answer
// explains exactly what is unavailable, and chart extraction reports
// CanGenerateChart=false with the reason. Errors are reserved for
// infrastructure failures such as an unreachable graph store or a failed
// provider call.
package finrag
