package llm

import "sync"

// UsageTracker tracks token usage across pipeline stages.
// It is safe for concurrent use.
type UsageTracker struct {
	mu     sync.RWMutex
	stages map[string]TokenUsage
	total  TokenUsage
}

// NewUsageTracker creates a new UsageTracker.
func NewUsageTracker() *UsageTracker {
	return &UsageTracker{
		stages: make(map[string]TokenUsage),
	}
}

// Add records token usage for a pipeline stage (e.g. "answer",
// "chart_extraction").
func (t *UsageTracker) Add(stage string, usage TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stages[stage] = t.stages[stage].Add(usage)
	t.total = t.total.Add(usage)
}

// Total returns the aggregate token usage across all stages.
func (t *UsageTracker) Total() TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// ByStage returns the token usage for a specific stage.
// Returns an empty TokenUsage if the stage has not been recorded.
func (t *UsageTracker) ByStage(stage string) TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stages[stage]
}

// Reset clears all tracked token usage.
func (t *UsageTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stages = make(map[string]TokenUsage)
	t.total = TokenUsage{}
}

// Stages returns a list of all tracked stage names.
func (t *UsageTracker) Stages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stages := make([]string, 0, len(t.stages))
	for stage := range t.stages {
		stages = append(stages, stage)
	}
	return stages
}
