package partvec_test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/partvec"
	"github.com/hupe1980/partvec/distance"
	"github.com/hupe1980/partvec/testutil"
)

// Search is a brute-force scan, so it must match an independent brute-force
// ranking exactly, for every metric and every partition.
func TestSearchMatchesBruteForce(t *testing.T) {
	t.Parallel()

	const (
		dim   = 32
		size  = 2000
		parts = 4
		k     = 10
	)

	for _, metric := range []distance.Metric{distance.MetricL2, distance.MetricCosine, distance.MetricDot} {
		t.Run(metric.String(), func(t *testing.T) {
			c, err := partvec.New("exact", dim, partvec.WithNumPartitions(parts), partvec.WithMetric(metric))
			require.NoError(t, err)

			rng := testutil.NewRNG(42)
			ids := testutil.IDs("vec", size)
			vecs := rng.UniformRangeVectors(size, dim)

			byPartition := map[string]struct {
				ids  []string
				vecs [][]float32
			}{}
			for i, id := range ids {
				part, err := c.Upsert(id, vecs[i], nil)
				require.NoError(t, err)
				entry := byPartition[part]
				entry.ids = append(entry.ids, id)
				entry.vecs = append(entry.vecs, vecs[i])
				byPartition[part] = entry
			}

			dist, err := distance.Provider(metric)
			require.NoError(t, err)

			queries := rng.UniformRangeVectors(20, dim)
			for qi, q := range queries {
				for _, part := range c.PartitionNames() {
					entry := byPartition[part]
					want := testutil.BruteForceSearch(entry.ids, entry.vecs, q, k, dist)

					got, err := c.Search(part, q, k)
					require.NoError(t, err)
					require.Len(t, got, len(want), "query %d partition %s", qi, part)
					for i := range want {
						assert.Equal(t, want[i].ID, got[i].ID)
						assert.Equal(t, want[i].Distance, got[i].Distance)
					}
				}
			}
		})
	}
}

// SearchPartitions must equal running Search per partition and merging by
// distance, with ties resolved by partition order.
func TestSearchPartitionsMatchesManualMerge(t *testing.T) {
	t.Parallel()

	const (
		dim  = 16
		size = 1000
		k    = 25
	)

	c, err := partvec.New("merge", dim, partvec.WithNumPartitions(5))
	require.NoError(t, err)

	rng := testutil.NewRNG(4711)
	for i, vec := range rng.UniformRangeVectors(size, dim) {
		_, err := c.Upsert(fmt.Sprintf("doc-%d", i), vec, nil)
		require.NoError(t, err)
	}

	ctx := context.Background()
	for _, q := range rng.UniformRangeVectors(10, dim) {
		var manual []partvec.Result
		for _, part := range c.PartitionNames() {
			res, err := c.Search(part, q, k)
			require.NoError(t, err)
			manual = append(manual, res...)
		}
		slices.SortStableFunc(manual, func(a, b partvec.Result) int {
			return cmp.Compare(a.Distance, b.Distance)
		})
		manual = manual[:k]

		got, err := c.SearchPartitions(ctx, nil, q, k)
		require.NoError(t, err)
		assert.Equal(t, manual, got)
	}
}

// Auto-placement spreads ids over every partition and is reproducible.
func TestAutoPlacementDistribution(t *testing.T) {
	t.Parallel()

	const size = 5000

	build := func() *partvec.Collection {
		c, err := partvec.New("spread", 2, partvec.WithNumPartitions(8))
		require.NoError(t, err)
		for i := range size {
			_, err := c.Upsert(fmt.Sprintf("item-%d", i), []float32{float32(i), 0}, nil)
			require.NoError(t, err)
		}
		return c
	}

	a, b := build(), build()
	assert.Equal(t, a.Summarize(), b.Summarize())

	for _, p := range a.Summarize().Partitions {
		// A uniform split is 625 per partition.
		assert.Greater(t, p.Count, 400, p.Name)
		assert.Less(t, p.Count, 850, p.Name)
	}
}
