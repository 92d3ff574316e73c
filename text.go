package partvec

import (
	"context"
	"fmt"

	"github.com/hupe1980/partvec/embed"
	"github.com/hupe1980/partvec/metadata"
)

// UpsertText embeds text with e and upserts the vector under id, placing a
// new id with ChoosePartition.
func UpsertText(ctx context.Context, c *Collection, e embed.Embedder, id, text string, meta metadata.Document) (string, error) {
	vec, err := embedFor(ctx, c, e, text)
	if err != nil {
		return "", err
	}
	return c.Upsert(id, vec, meta)
}

// UpsertTextTo embeds text with e and upserts the vector under id into the
// named partition.
func UpsertTextTo(ctx context.Context, c *Collection, e embed.Embedder, partition, id, text string, meta metadata.Document) (string, error) {
	vec, err := embedFor(ctx, c, e, text)
	if err != nil {
		return "", err
	}
	return c.UpsertTo(partition, id, vec, meta)
}

// SearchText embeds text with e and searches the named partition for its k
// nearest records.
func SearchText(ctx context.Context, c *Collection, e embed.Embedder, partition, text string, k int) ([]Result, error) {
	vec, err := embedFor(ctx, c, e, text)
	if err != nil {
		return nil, err
	}
	return c.Search(partition, vec, k)
}

func embedFor(ctx context.Context, c *Collection, e embed.Embedder, text string) ([]float32, error) {
	if e.Dimension() != c.dim {
		return nil, &ErrDimensionMismatch{Expected: c.dim, Actual: e.Dimension()}
	}
	vec, err := e.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed %q: %w", text, err)
	}
	return vec, nil
}
