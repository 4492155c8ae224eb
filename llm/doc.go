// Package llm provides the language-model client used by the finrag
// pipeline for answer generation and structured chart-data extraction.
//
// The package defines provider-neutral conversation and completion types
// plus a small Client interface, so the backing provider can be swapped
// without touching the pipeline. An OpenAI-backed implementation is
// included.
//
// # Basic Usage
//
//	client := llm.NewOpenAIClient(apiKey, llm.WithModel("gpt-4o-mini"))
//	req := llm.NewCompletionRequest([]llm.Message{
//	    {Role: llm.RoleSystem, Content: systemPrompt},
//	    {Role: llm.RoleUser, Content: question},
//	}, llm.WithTemperature(0.0))
//
//	resp, err := client.Complete(ctx, req)
//	if err != nil {
//	    // generation failure; upstream errors are never swallowed into
//	    // a fabricated answer
//	}
//	answer := resp.Content
//
// # Token Accounting
//
// UsageTracker aggregates TokenUsage per pipeline stage ("answer",
// "chart_extraction") and in total; it is safe for concurrent use.
package llm
