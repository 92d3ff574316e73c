// Package embed defines the text embedding boundary consumed by partvec's
// text helpers.
//
// An Embedder converts text into a dense float32 vector. partvec never
// ships a model or an API client: callers plug in whatever produces
// vectors (a hosted API, a local model, a deterministic test stub).
//
// # Quick Start
//
//	e := embed.Func(4, func(ctx context.Context, text string) ([]float32, error) {
//	    return myModel.Encode(ctx, text)
//	})
//	vec, err := e.Embed(ctx, "red apple")
package embed

import (
	"context"
	"errors"
	"fmt"
)

// Embedder converts text into dense float32 vectors.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns embedding vectors for multiple texts, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int
}

// ErrEmptyInput is returned when the input text is empty.
var ErrEmptyInput = errors.New("embed: empty input")

// Func adapts a single-text function into an Embedder. EmbedBatch calls fn
// once per text.
func Func(dim int, fn func(ctx context.Context, text string) ([]float32, error)) Embedder {
	return &funcEmbedder{dim: dim, fn: fn}
}

type funcEmbedder struct {
	dim int
	fn  func(ctx context.Context, text string) ([]float32, error)
}

var _ Embedder = (*funcEmbedder)(nil)

func (f *funcEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	return f.fn(ctx, text)
}

func (f *funcEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := f.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed: text[%d]: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

func (f *funcEmbedder) Dimension() int {
	return f.dim
}
