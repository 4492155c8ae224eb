package pipeline

import (
	"fmt"

	"github.com/finsight-ai/finrag/llm"
)

// systemPromptTemplate grounds the model in the retrieved evidence and
// pins down how to handle missing data: name what is absent and point at
// adjacent available data, never deflect the user to "the source documents"
// and never invent figures. %s is replaced with the evidence context.
const systemPromptTemplate = `You are a financial analyst assistant. Answer the user's question using ONLY the evidence below. Do not use outside knowledge and never invent figures.

Rules:
- If the evidence fully answers the question, give a direct, concise answer with the specific figures.
- If the evidence does not contain the requested information, say exactly what is not available (the metric, entity, or period), then mention related information that IS present in the evidence, if any.
- Do NOT tell the user to refer to source documents, filings, or files. You are the only access they have to this data.
- If the evidence says "No relevant information found for this query", state that no relevant information was found and stop.

Evidence:
%s`

// Turn is one completed question/answer exchange in a conversation.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// buildMessages assembles the completion request messages: system prompt
// with the evidence context, the trailing history turns, then the current
// question. The history slice is never mutated.
func buildMessages(evidenceContext, question string, history []Turn, limit int) []llm.Message {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	messages := make([]llm.Message, 0, 2*len(history)+2)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: fmt.Sprintf(systemPromptTemplate, evidenceContext),
	})
	for _, turn := range history {
		if turn.Question != "" {
			messages = append(messages, llm.Message{Role: llm.RoleUser, Content: turn.Question})
		}
		if turn.Answer != "" {
			messages = append(messages, llm.Message{Role: llm.RoleAssistant, Content: turn.Answer})
		}
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})
	return messages
}

// historyKeyParts flattens the trailing history into cache key parts so the
// same question asked in a different conversation context misses.
func historyKeyParts(history []Turn, limit int) []string {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	parts := make([]string, 0, 2*len(history))
	for _, turn := range history {
		parts = append(parts, turn.Question, turn.Answer)
	}
	return parts
}
