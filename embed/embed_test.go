package embed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/partvec/embed"
)

func lengthEmbedder() embed.Embedder {
	return embed.Func(2, func(_ context.Context, text string) ([]float32, error) {
		if text == "boom" {
			return nil, errors.New("model unavailable")
		}
		return []float32{float32(len(text)), 1}, nil
	})
}

func TestFunc(t *testing.T) {
	ctx := context.Background()
	e := lengthEmbedder()

	assert.Equal(t, 2, e.Dimension())

	vec, err := e.Embed(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1}, vec)

	_, err = e.Embed(ctx, "")
	assert.ErrorIs(t, err, embed.ErrEmptyInput)
}

func TestFunc_Batch(t *testing.T) {
	ctx := context.Background()
	e := lengthEmbedder()

	vecs, err := e.EmbedBatch(ctx, []string{"a", "bb"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 1}, {2, 1}}, vecs)

	_, err = e.EmbedBatch(ctx, []string{"a", "boom"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text[1]")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.EmbedBatch(canceled, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
