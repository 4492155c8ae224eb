package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := NewHashEmbedder(64)

	a, err := e.Embed(context.Background(), "revenue trends over three years")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "revenue trends over three years")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.Equal(t, 64, e.Dimensions())
}

func TestHashEmbedder_Normalized(t *testing.T) {
	e := NewHashEmbedder(128)

	vec, err := e.Embed(context.Background(), "geographical revenue distribution")
	require.NoError(t, err)

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestHashEmbedder_DistinctTexts(t *testing.T) {
	e := NewHashEmbedder(128)

	a, err := e.Embed(context.Background(), "iPhone revenue by product")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "capital expenditure evolution")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashEmbedder_EmptyText(t *testing.T) {
	e := NewHashEmbedder(0)

	_, err := e.Embed(context.Background(), "")
	assert.Error(t, err)

	// Non-positive dims falls back to the default.
	assert.Equal(t, 256, e.Dimensions())
}

func TestHashEmbedder_NoNaN(t *testing.T) {
	e := NewHashEmbedder(16)
	vec, err := e.Embed(context.Background(), "   ")
	// Whitespace-only text has no tokens; the zero vector is returned as-is.
	require.NoError(t, err)
	for _, v := range vec {
		assert.False(t, math.IsNaN(v))
	}
}
