package benchmark_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/partvec"
	"github.com/hupe1980/partvec/metadata"
	"github.com/hupe1980/partvec/testutil"
)

const (
	dimSmall  = 32
	dimMedium = 128
	dimLarge  = 768

	sizeSmall = 1_000
	sizeLarge = 10_000
)

var categories = []string{"fruit", "juice", "snack", "drink", "other"}

// loadCollection builds a collection of n random vectors spread across
// numPartitions auto-placed partitions. Every record carries a category
// drawn round-robin from categories.
func loadCollection(b *testing.B, n, dim, numPartitions int) (*partvec.Collection, [][]float32) {
	b.Helper()

	c, err := partvec.New("bench", dim, partvec.WithNumPartitions(numPartitions))
	if err != nil {
		b.Fatalf("New: %v", err)
	}

	rng := testutil.NewRNG(42)
	vecs := rng.UniformRangeVectors(n, dim)
	for i, vec := range vecs {
		meta := metadata.Document{
			"category": metadata.String(categories[i%len(categories)]),
			"rank":     metadata.Int(int64(i)),
		}
		if _, err := c.Upsert(fmt.Sprintf("doc-%d", i), vec, meta); err != nil {
			b.Fatalf("Upsert(%d): %v", i, err)
		}
	}
	return c, vecs
}

func makeQueries(n, dim int) [][]float32 {
	return testutil.NewRNG(7).UniformRangeVectors(n, dim)
}
