// Package embedding provides the embedding collaborator used to build and
// query the vector index. The Embedder interface keeps the model swappable:
// an OpenAI-backed implementation is used in production and a deterministic
// hash-based implementation is available for tests and offline runs.
package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Embedder converts text into a fixed-dimension embedding vector.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimensions returns the length of vectors produced by this embedder.
	Dimensions() int
}

// DefaultEmbeddingModel is the OpenAI embedding model used when none is
// configured.
const DefaultEmbeddingModel = "text-embedding-3-small"

const openAIEmbeddingDimensions = 1536

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client openai.Client
	model  string
}

// NewOpenAIEmbedder creates an OpenAI-backed embedder. An empty model
// selects DefaultEmbeddingModel.
func NewOpenAIEmbedder(apiKey, model string) *OpenAIEmbedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &OpenAIEmbedder{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Embed returns the embedding vector for the given text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding request returned no data")
	}
	return resp.Data[0].Embedding, nil
}

// Dimensions returns the embedding dimensionality.
func (e *OpenAIEmbedder) Dimensions() int {
	return openAIEmbeddingDimensions
}

// HashEmbedder is a deterministic, dependency-free embedder for tests and
// offline runs. It hashes word tokens into a fixed number of buckets and
// L2-normalizes the result, so identical texts always embed identically and
// related texts share buckets.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates a HashEmbedder with the given dimensionality.
// Non-positive dims defaults to 256.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = 256
	}
	return &HashEmbedder{dims: dims}
}

// Embed returns a deterministic vector for the given text.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	vec := make([]float64, e.dims)
	start := -1
	for i := 0; i <= len(text); i++ {
		atEnd := i == len(text)
		var boundary bool
		if !atEnd {
			c := text[i]
			boundary = c == ' ' || c == '\t' || c == '\n'
		}
		if atEnd || boundary {
			if start >= 0 {
				h := fnv.New32a()
				h.Write([]byte(text[start:i]))
				vec[int(h.Sum32())%e.dims]++
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// Dimensions returns the embedding dimensionality.
func (e *HashEmbedder) Dimensions() int {
	return e.dims
}
