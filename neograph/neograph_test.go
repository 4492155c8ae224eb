package neograph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Company", "Company"},
		{"spaces stripped", "Fiscal Year", "FiscalYear"},
		{"cypher injection stripped", "X` {id:1}) DETACH DELETE (n", "Xid1DETACHDELETEn"},
		{"empty falls back", "", "Entity"},
		{"only symbols falls back", "!@#", "Entity"},
		{"underscore kept", "Line_Item", "Line_Item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeLabel(tt.input))
		})
	}
}

func TestSanitizeRelType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"uppercased", "reported", "REPORTED"},
		{"spaces to underscores", "reported in", "REPORTED_IN"},
		{"symbols stripped", "has-value!", "HASVALUE"},
		{"empty falls back", "  ", "RELATES_TO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeRelType(tt.input))
		})
	}
}

func TestQueryTerms(t *testing.T) {
	t.Run("drops stopwords and short words", func(t *testing.T) {
		terms := queryTerms("What was the revenue of Acme in 2023?")
		assert.Equal(t, []string{"revenue", "acme", "2023"}, terms)
	})

	t.Run("lowercases and dedupes", func(t *testing.T) {
		terms := queryTerms("Revenue revenue REVENUE")
		assert.Equal(t, []string{"revenue"}, terms)
	})

	t.Run("keeps hyphenated and dotted tokens", func(t *testing.T) {
		terms := queryTerms("year-over-year growth of example.com")
		assert.Contains(t, terms, "year-over-year")
		assert.Contains(t, terms, "example.com")
	})

	t.Run("empty for filler-only question", func(t *testing.T) {
		assert.Empty(t, queryTerms("what was the, and how?"))
	})
}
