package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCompletionRequest(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "You are a financial assistant."},
		{Role: RoleUser, Content: "What was revenue in 2024?"},
	}

	req := NewCompletionRequest(messages,
		WithTemperature(0.0),
		WithMaxTokens(512),
		WithStopSequences("END"),
	)

	assert.Len(t, req.Messages, 2)
	if assert.NotNil(t, req.Temperature) {
		assert.Equal(t, 0.0, *req.Temperature)
	}
	if assert.NotNil(t, req.MaxTokens) {
		assert.Equal(t, 512, *req.MaxTokens)
	}
	assert.Equal(t, []string{"END"}, req.Stop)
}

func TestCompletionRequest_Defaults(t *testing.T) {
	req := NewCompletionRequest([]Message{{Role: RoleUser, Content: "hi"}})

	assert.Nil(t, req.Temperature)
	assert.Nil(t, req.MaxTokens)
	assert.Empty(t, req.Stop)
}

func TestCompletionResponse_Helpers(t *testing.T) {
	resp := &CompletionResponse{Content: "answer", FinishReason: "stop"}
	assert.True(t, resp.HasContent())
	assert.True(t, resp.IsComplete())

	truncated := &CompletionResponse{Content: "ans", FinishReason: "length"}
	assert.False(t, truncated.IsComplete())

	empty := &CompletionResponse{}
	assert.False(t, empty.HasContent())
}

func TestTokenUsage_Add(t *testing.T) {
	a := TokenUsage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120}
	b := TokenUsage{InputTokens: 50, OutputTokens: 10, TotalTokens: 60}

	sum := a.Add(b)

	assert.Equal(t, 150, sum.InputTokens)
	assert.Equal(t, 30, sum.OutputTokens)
	assert.Equal(t, 180, sum.TotalTokens)
}

func TestMessage_IsValid(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{name: "valid user", msg: Message{Role: RoleUser, Content: "hi"}, want: true},
		{name: "valid system", msg: Message{Role: RoleSystem, Content: "ctx"}, want: true},
		{name: "valid assistant", msg: Message{Role: RoleAssistant, Content: "a"}, want: true},
		{name: "empty content", msg: Message{Role: RoleUser}, want: false},
		{name: "unknown role", msg: Message{Role: "tool", Content: "x"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.IsValid())
		})
	}
}
