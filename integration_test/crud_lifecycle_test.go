package partvec_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/partvec"
	"github.com/hupe1980/partvec/distance"
	"github.com/hupe1980/partvec/metadata"
)

// Concurrent writers and readers through SafeCollection: every write is
// visible afterwards and ids never move between partitions.
func TestSafeCollectionLifecycle(t *testing.T) {
	t.Parallel()

	const (
		writers = 6
		rounds  = 200
		dim     = 8
	)

	c, err := partvec.New("lifecycle", dim, partvec.WithPartitions("hot", "warm", "cold"))
	require.NoError(t, err)
	s := partvec.NewSafe(c)
	ctx := context.Background()

	var (
		mu        sync.Mutex
		placement = map[string]string{}
	)

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range rounds {
				id := fmt.Sprintf("id-%d", r%50)
				vec := make([]float32, dim)
				vec[w%dim] = float32(r)

				var part string
				var err error
				if r%3 == 0 {
					part, err = s.UpsertTo(ctx, "cold", id, vec, metadata.Document{"writer": metadata.Int(int64(w))})
				} else {
					part, err = s.Upsert(ctx, id, vec, metadata.Document{"writer": metadata.Int(int64(w))})
				}
				if !assert.NoError(t, err) {
					return
				}

				mu.Lock()
				if prev, ok := placement[id]; ok {
					assert.Equal(t, prev, part, "id %s moved", id)
				} else {
					placement[id] = part
				}
				mu.Unlock()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		q := make([]float32, dim)
		for range rounds {
			res, err := s.SearchPartitions(ctx, nil, q, 5)
			if !assert.NoError(t, err) {
				return
			}
			assert.LessOrEqual(t, len(res), 5)
		}
	}()

	wg.Wait()

	assert.Equal(t, 50, s.Len())
	for id, part := range placement {
		got, rec, ok := s.Get(id)
		require.True(t, ok)
		assert.Equal(t, part, got)
		assert.Len(t, rec.Vector, dim)
	}
}

func TestEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("SinglePartition", func(t *testing.T) {
		c, err := partvec.New("one", 1, partvec.WithNumPartitions(1))
		require.NoError(t, err)
		for i := range 10 {
			part, err := c.Upsert(fmt.Sprintf("%d", i), []float32{float32(i)}, nil)
			require.NoError(t, err)
			assert.Equal(t, "partition_0", part)
		}
		res, err := c.Search("partition_0", []float32{4.4}, 3)
		require.NoError(t, err)
		require.Len(t, res, 3)
		assert.Equal(t, "4", res[0].ID)
		assert.Equal(t, "5", res[1].ID)
		assert.Equal(t, "3", res[2].ID)
	})

	t.Run("LargeK", func(t *testing.T) {
		c, err := partvec.New("k", 2)
		require.NoError(t, err)
		_, err = c.UpsertTo("partition_1", "a", []float32{1, 1}, nil)
		require.NoError(t, err)

		res, err := c.Search("partition_1", []float32{0, 0}, math.MaxInt)
		require.NoError(t, err)
		assert.Len(t, res, 1)

		res, err = c.Search("partition_1", []float32{0, 0}, math.MinInt)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("ZeroVectorCosine", func(t *testing.T) {
		c, err := partvec.New("cos", 2, partvec.WithNumPartitions(1), partvec.WithMetric(distance.MetricCosine))
		require.NoError(t, err)
		_, err = c.Upsert("zero", []float32{0, 0}, nil)
		require.NoError(t, err)
		_, err = c.Upsert("x", []float32{1, 0}, nil)
		require.NoError(t, err)

		res, err := c.Search("partition_0", []float32{1, 0}, 2)
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "x", res[0].ID)
		assert.False(t, math.IsNaN(res[1].Distance))
	})

	t.Run("RejectsNonFinite", func(t *testing.T) {
		c, err := partvec.New("nan", 2)
		require.NoError(t, err)
		_, err = c.Upsert("bad", []float32{float32(math.NaN()), 0}, nil)
		assert.True(t, errors.Is(err, partvec.ErrInvalidVector))
		_, err = c.SearchPartitions(context.Background(), nil, []float32{float32(math.Inf(1)), 0}, 1)
		assert.True(t, errors.Is(err, partvec.ErrInvalidVector))
		assert.Equal(t, 0, c.Len())
	})
}
