// Package cache provides the answer cache used by the question pipeline.
// Answers are keyed by a hash of the question plus its conversation
// history, so the same question asked in a different context misses.
package cache
