package partvec

import (
	"cmp"
	"context"
	"iter"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/partvec/metadata"
)

// DefaultK is the number of neighbors a SearchBuilder returns unless KNN is
// called.
const DefaultK = 3

// Search returns the k records of the named partition nearest to query,
// nearest first. k <= 0 yields an empty result.
//
// The query is validated before the partition is resolved, so a malformed
// query against an unknown partition reports the dimension error.
func (c *Collection) Search(partition string, query []float32, k int) ([]Result, error) {
	return c.search(partition, query, k, nil)
}

func (c *Collection) search(partition string, query []float32, k int, filters *metadata.FilterSet) ([]Result, error) {
	start := time.Now()

	results, err := c.searchPartition(partition, query, k, filters)

	c.metrics.RecordSearch(k, len(results), time.Since(start), err)
	c.logger.WithPartition(partition).LogSearch(k, len(results), err)

	return results, err
}

func (c *Collection) searchPartition(partition string, query []float32, k int, filters *metadata.FilterSet) ([]Result, error) {
	if err := c.Validate(query); err != nil {
		return nil, err
	}
	i, err := c.partitionIndex(partition)
	if err != nil {
		return nil, err
	}
	return c.partitions[i].search(query, k, c.distFn, filters), nil
}

// SearchPartitions searches each named partition and merges the hits into
// one list of at most k results ordered by distance. Equal distances are
// ordered by the position of the partition in names, then by rank within
// the partition. An empty names list searches every partition; repeated
// names are searched once.
//
// Partitions are scanned concurrently.
func (c *Collection) SearchPartitions(ctx context.Context, names []string, query []float32, k int) ([]Result, error) {
	return c.searchPartitions(ctx, names, query, k, nil)
}

func (c *Collection) searchPartitions(ctx context.Context, names []string, query []float32, k int, filters *metadata.FilterSet) ([]Result, error) {
	if err := c.Validate(query); err != nil {
		return nil, err
	}

	targets, err := c.resolvePartitions(names)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if k <= 0 {
		return []Result{}, nil
	}

	perPartition := make([][]Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, name := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.search(name, query, k, filters)
			if err != nil {
				return err
			}
			perPartition[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := slices.Concat(perPartition...)
	slices.SortStableFunc(merged, func(a, b Result) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if len(merged) > k {
		merged = merged[:k]
	}
	return merged, nil
}

func (c *Collection) resolvePartitions(names []string) ([]string, error) {
	if len(names) == 0 {
		return slices.Clone(c.names), nil
	}
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, err := c.partitionIndex(n); err != nil {
			return nil, err
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

// Query creates a fluent search builder for the given query vector.
//
// Example:
//
//	results, err := c.Query(q).
//	    In("fruits").
//	    KNN(2).
//	    Where(metadata.Eq("category", "fruit")).
//	    Execute()
func (c *Collection) Query(query []float32) *SearchBuilder {
	return &SearchBuilder{
		c:     c,
		query: query,
		k:     DefaultK,
	}
}

// SearchBuilder is a fluent builder for constructing search queries.
type SearchBuilder struct {
	c         *Collection
	query     []float32
	partition string
	k         int
	filters   []metadata.Filter
}

// In sets the partition to search. It is required.
func (sb *SearchBuilder) In(partition string) *SearchBuilder {
	sb.partition = partition
	return sb
}

// KNN sets the number of nearest neighbors to return.
func (sb *SearchBuilder) KNN(k int) *SearchBuilder {
	sb.k = k
	return sb
}

// Where restricts the search to records whose metadata matches all filters.
// Repeated calls accumulate.
func (sb *SearchBuilder) Where(filters ...metadata.Filter) *SearchBuilder {
	sb.filters = append(sb.filters, filters...)
	return sb
}

func (sb *SearchBuilder) filterSet() *metadata.FilterSet {
	if len(sb.filters) == 0 {
		return nil
	}
	return metadata.NewFilterSet(sb.filters...)
}

// Execute runs the search and returns the results.
func (sb *SearchBuilder) Execute() ([]Result, error) {
	return sb.c.search(sb.partition, sb.query, sb.k, sb.filterSet())
}

// Across runs the search over several partitions (all when none are given)
// and merges the hits as SearchPartitions does. The partition set with In
// is ignored.
func (sb *SearchBuilder) Across(ctx context.Context, partitions ...string) ([]Result, error) {
	return sb.c.searchPartitions(ctx, partitions, sb.query, sb.k, sb.filterSet())
}

// MustExecute runs the search, panicking on error.
// Use this only in tests or when you're certain the query is valid.
func (sb *SearchBuilder) MustExecute() []Result {
	results, err := sb.Execute()
	if err != nil {
		panic(err)
	}
	return results
}

// Stream returns an iterator over search results, nearest first.
// The iterator supports early termination by breaking from the loop.
func (sb *SearchBuilder) Stream() iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		results, err := sb.Execute()
		if err != nil {
			yield(Result{}, err)
			return
		}
		for _, r := range results {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// First returns only the nearest result, or ErrNotFound if none matches.
func (sb *SearchBuilder) First() (Result, error) {
	sb.k = 1
	results, err := sb.Execute()
	if err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{}, ErrNotFound
	}
	return results[0], nil
}

// Exists checks if at least one record matches the search.
func (sb *SearchBuilder) Exists() (bool, error) {
	sb.k = 1
	results, err := sb.Execute()
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}
