package partvec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfiguration is returned by New when the collection cannot
	// be built as requested (duplicate or empty partition names, no
	// partitions, unknown metric, non-positive dimension).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidVector is returned when a vector contains NaN or Inf.
	ErrInvalidVector = errors.New("invalid vector")

	// ErrMemoryLimit is returned when inserting a record would exceed the
	// configured memory budget.
	ErrMemoryLimit = errors.New("memory limit exceeded")

	// ErrPartitionFull is returned when a partition has no free slot left.
	ErrPartitionFull = errors.New("partition full")

	// ErrWriteThrottled is returned by SafeCollection.TryUpsert when the
	// write rate does not admit a write right now.
	ErrWriteThrottled = errors.New("write throttled")

	// ErrNotFound is returned by SearchBuilder.First when no record matches.
	ErrNotFound = errors.New("not found")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrUnknownPartition indicates a partition name outside the collection's
// fixed partition set.
type ErrUnknownPartition struct {
	Partition string
	Available []string
}

func (e *ErrUnknownPartition) Error() string {
	return fmt.Sprintf("partition %q does not exist (available: %s)", e.Partition, strings.Join(e.Available, ", "))
}

// ErrInvalidDimension indicates an invalid configured dimension.
//
// It matches ErrInvalidConfiguration under errors.Is.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
