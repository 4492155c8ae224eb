// Package serve provides the HTTP backend for the question pipeline.
//
// It exposes a small JSON API consumed by the browser frontend:
//
//	POST /api/chat    ask a question, optionally with conversation history
//	GET  /api/health  liveness check
//
// Designed outcomes (missing data, unrenderable charts) are returned as
// 200 responses carrying the explanation; only infrastructure failures
// map to 5xx status codes. It handles server lifecycle, graceful
// shutdown, CORS, and signal handling.
package serve
