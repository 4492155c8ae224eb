package llm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageTracker_AddAndTotal(t *testing.T) {
	tracker := NewUsageTracker()

	tracker.Add("answer", TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150})
	tracker.Add("chart_extraction", TokenUsage{InputTokens: 40, OutputTokens: 10, TotalTokens: 50})
	tracker.Add("answer", TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15})

	assert.Equal(t, TokenUsage{InputTokens: 110, OutputTokens: 55, TotalTokens: 165}, tracker.ByStage("answer"))
	assert.Equal(t, TokenUsage{InputTokens: 150, OutputTokens: 65, TotalTokens: 215}, tracker.Total())
	assert.ElementsMatch(t, []string{"answer", "chart_extraction"}, tracker.Stages())
}

func TestUsageTracker_UnknownStage(t *testing.T) {
	tracker := NewUsageTracker()
	assert.Equal(t, TokenUsage{}, tracker.ByStage("missing"))
}

func TestUsageTracker_Reset(t *testing.T) {
	tracker := NewUsageTracker()
	tracker.Add("answer", TokenUsage{TotalTokens: 10})

	tracker.Reset()

	assert.Equal(t, TokenUsage{}, tracker.Total())
	assert.Empty(t, tracker.Stages())
}

func TestUsageTracker_Concurrent(t *testing.T) {
	tracker := NewUsageTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Add("answer", TokenUsage{InputTokens: 1, OutputTokens: 1, TotalTokens: 2})
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, tracker.Total().TotalTokens)
}
