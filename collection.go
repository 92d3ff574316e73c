package partvec

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/partvec/distance"
	"github.com/hupe1980/partvec/internal/hash"
	"github.com/hupe1980/partvec/internal/pk"
	"github.com/hupe1980/partvec/metadata"
	"github.com/hupe1980/partvec/resource"
)

// Collection is an in-memory vector collection with a fixed dimension and
// a fixed, ordered set of partitions.
//
// A Collection is not safe for concurrent use; see NewSafe.
type Collection struct {
	name       string
	dim        int
	metric     distance.Metric
	distFn     distance.Func
	names      []string
	byName     map[string]int
	partitions []*partition
	ids        *pk.Index

	resources *resource.Controller
	metrics   MetricsCollector
	logger    *Logger
}

// New creates an empty collection of dim-dimensional vectors.
//
// Without WithPartitions the collection gets DefaultNumPartitions
// partitions named partition_0 .. partition_{n-1}.
func New(name string, dim int, optFns ...Option) (*Collection, error) {
	opts := applyOptions(optFns)
	logger := opts.logger.WithCollection(name)

	c, err := newCollection(name, dim, opts)
	if err != nil {
		logger.LogCreate(dim, nil, err)
		return nil, err
	}

	c.logger = logger
	logger.LogCreate(dim, c.names, nil)
	return c, nil
}

func newCollection(name string, dim int, opts options) (*Collection, error) {
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}

	names, err := partitionNames(opts)
	if err != nil {
		return nil, err
	}

	distFn, err := distance.Provider(opts.metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	c := &Collection{
		name:       name,
		dim:        dim,
		metric:     opts.metric,
		distFn:     distFn,
		names:      names,
		byName:     make(map[string]int, len(names)),
		partitions: make([]*partition, len(names)),
		ids:        pk.NewIndex(),
		resources:  resource.NewController(opts.resources),
		metrics:    opts.metricsCollector,
	}
	for i, n := range names {
		c.byName[n] = i
		c.partitions[i] = newPartition(n)
	}
	return c, nil
}

func partitionNames(opts options) ([]string, error) {
	if len(opts.partitionNames) == 0 {
		if opts.numPartitions <= 0 {
			return nil, fmt.Errorf("%w: partition count must be positive, got %d", ErrInvalidConfiguration, opts.numPartitions)
		}
		names := make([]string, opts.numPartitions)
		for i := range names {
			names[i] = fmt.Sprintf("partition_%d", i)
		}
		return names, nil
	}

	seen := make(map[string]struct{}, len(opts.partitionNames))
	for _, n := range opts.partitionNames {
		if n == "" {
			return nil, fmt.Errorf("%w: empty partition name", ErrInvalidConfiguration)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: duplicate partition name %q", ErrInvalidConfiguration, n)
		}
		seen[n] = struct{}{}
	}
	return slices.Clone(opts.partitionNames), nil
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Dimension returns the fixed vector dimension.
func (c *Collection) Dimension() int { return c.dim }

// Metric returns the distance metric used by search.
func (c *Collection) Metric() distance.Metric { return c.metric }

// PartitionNames returns the partition names in configured order.
func (c *Collection) PartitionNames() []string { return slices.Clone(c.names) }

// Len returns the number of records across all partitions.
func (c *Collection) Len() int { return c.ids.Len() }

// MemoryUsage returns the bytes accounted to stored records.
func (c *Collection) MemoryUsage() int64 { return c.resources.MemoryUsage() }

// Validate checks that vec has the collection's dimension and only finite
// components.
func (c *Collection) Validate(vec []float32) error {
	if len(vec) != c.dim {
		return &ErrDimensionMismatch{Expected: c.dim, Actual: len(vec)}
	}
	for i, x := range vec {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return fmt.Errorf("%w: component %d is %v", ErrInvalidVector, i, x)
		}
	}
	return nil
}

// ChoosePartition returns the partition a new id is placed in when no
// partition is given. It depends only on id and the partition names.
func (c *Collection) ChoosePartition(id string) string {
	return c.names[hash.Bucket(id, len(c.names))]
}

// Upsert inserts or replaces the record id and returns the partition it
// resides in. A new id is placed with ChoosePartition.
func (c *Collection) Upsert(id string, vec []float32, meta metadata.Document) (string, error) {
	return c.upsert(id, "", false, vec, meta)
}

// UpsertTo inserts the record id into the named partition, or replaces it
// in place if id already exists, in which case partition is ignored.
//
// It fails with ErrUnknownPartition when id is new and partition is not
// one of the collection's partitions.
func (c *Collection) UpsertTo(partition, id string, vec []float32, meta metadata.Document) (string, error) {
	return c.upsert(id, partition, true, vec, meta)
}

func (c *Collection) upsert(id, partition string, explicit bool, vec []float32, meta metadata.Document) (string, error) {
	start := time.Now()

	name, inserted, err := c.put(id, partition, explicit, vec, meta)

	c.metrics.RecordUpsert(time.Since(start), inserted, err)

	// A failed upsert is attributed to the partition it asked for, if any.
	scope := name
	if scope == "" {
		scope = partition
	}
	logger := c.logger
	if scope != "" {
		logger = logger.WithPartition(scope)
	}
	logger.LogUpsert(id, inserted, err)

	return name, err
}

func (c *Collection) put(id, partition string, explicit bool, vec []float32, meta metadata.Document) (string, bool, error) {
	if err := c.Validate(vec); err != nil {
		return "", false, err
	}

	rec := Record{Vector: slices.Clone(vec), Metadata: meta.Clone()}

	if loc, ok := c.ids.Lookup(id); ok {
		c.partitions[loc.Partition].replace(loc.Slot, rec)
		return c.names[loc.Partition], false, nil
	}

	var ordinal int
	if explicit {
		i, err := c.partitionIndex(partition)
		if err != nil {
			return "", false, err
		}
		ordinal = i
	} else {
		ordinal = hash.Bucket(id, len(c.names))
	}

	cost := c.recordCost(id)
	if !c.resources.TryAcquireMemory(cost) {
		return "", false, fmt.Errorf("%w: record %q needs %d bytes (in use %d of %d)",
			ErrMemoryLimit, id, cost, c.resources.MemoryUsage(), c.resources.MemoryLimit())
	}

	slot, err := c.partitions[ordinal].insert(id, rec)
	if err != nil {
		c.resources.ReleaseMemory(cost)
		return "", false, err
	}
	c.ids.Insert(id, pk.Location{Partition: ordinal, Slot: slot})

	return c.names[ordinal], true, nil
}

// recordCost is the memory charged for a new record: id bytes plus the
// float32 components.
func (c *Collection) recordCost(id string) int64 {
	return int64(len(id)) + 4*int64(c.dim)
}

// Get returns the partition and a copy of the record stored under id.
// A missing id is reported with ok=false, not an error.
func (c *Collection) Get(id string) (partition string, rec Record, ok bool) {
	loc, found := c.ids.Lookup(id)
	c.metrics.RecordGet(found)
	if !found {
		return "", Record{}, false
	}
	p := c.partitions[loc.Partition]
	return p.name, p.records[loc.Slot].clone(), true
}

// Partition returns a copy of all records in the named partition keyed by
// id. Mutating the returned map or records does not affect the collection.
func (c *Collection) Partition(name string) (map[string]Record, error) {
	i, err := c.partitionIndex(name)
	if err != nil {
		return nil, err
	}
	return c.partitions[i].snapshot(), nil
}

func (c *Collection) partitionIndex(name string) (int, error) {
	i, ok := c.byName[name]
	if !ok {
		return 0, &ErrUnknownPartition{Partition: name, Available: slices.Clone(c.names)}
	}
	return i, nil
}
