// Package graphrag provides the evidence model and hybrid retriever for the
// finrag question-answering pipeline.
//
// The package combines two independent evidence sources for every question:
// a structured source that returns graph facts (subject-predicate-object
// triples from the knowledge graph) and an unstructured source that returns
// semantically indexed document chunks. The merged result is an
// EvidenceBundle, which downstream stages render into LLM context.
//
// # Evidence Bundles
//
// An EvidenceBundle is the combined retrieval result for one question:
//
//	retriever := graphrag.NewRetriever(store, store)
//	bundle, err := retriever.Retrieve(ctx, "What was revenue in 2024?")
//	if err != nil {
//	    // infrastructure failure, not "no data"
//	}
//	if bundle.IsNoEvidence() {
//	    // designed sentinel: neither source had relevant material
//	}
//	context := bundle.Context()
//
// When both sources come back empty the retriever returns a sentinel bundle
// whose textual content is a fixed explanatory message rather than an empty
// string. Downstream stages must treat the sentinel as "no evidence", never
// as valid content to rephrase.
//
// # Graph Documents
//
// GraphDocument, GraphNode and GraphRelationship model the precomputed
// knowledge-graph documents that are bulk-imported into the graph store:
//
//	node := graphrag.NewGraphNode("Company").
//	    WithID("apple").
//	    WithProperty("name", "Apple Inc.")
//
//	rel := graphrag.NewRelationship("apple", "rev-2024", "REPORTED").
//	    WithProperty("period", "FY2024")
//
// # Error Semantics
//
// Source unavailability (connectivity, auth, query failure) is reported as
// ErrEvidenceUnavailable and is fatal for the request. "No data found" is
// not an error: it flows through as the sentinel bundle.
package graphrag
