package partvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordUpsert is called after each upsert.
	// inserted is true when the id was new, err is nil if successful.
	RecordUpsert(duration time.Duration, inserted bool, err error)

	// RecordGet is called after each point lookup.
	RecordGet(found bool)

	// RecordSearch is called after each single-partition search.
	// k is the number of neighbors requested, results the number returned.
	RecordSearch(k, results int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordUpsert(time.Duration, bool, error)      {}
func (NoopMetricsCollector) RecordGet(bool)                               {}
func (NoopMetricsCollector) RecordSearch(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	UpsertCount      atomic.Int64
	UpsertErrors     atomic.Int64
	UpsertTotalNanos atomic.Int64
	InsertCount      atomic.Int64
	UpdateCount      atomic.Int64
	GetCount         atomic.Int64
	GetMisses        atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchResults    atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordUpsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpsert(duration time.Duration, inserted bool, err error) {
	b.UpsertCount.Add(1)
	b.UpsertTotalNanos.Add(duration.Nanoseconds())
	switch {
	case err != nil:
		b.UpsertErrors.Add(1)
	case inserted:
		b.InsertCount.Add(1)
	default:
		b.UpdateCount.Add(1)
	}
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(found bool) {
	b.GetCount.Add(1)
	if !found {
		b.GetMisses.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k, results int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	b.SearchResults.Add(int64(results))
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		UpsertCount:    b.UpsertCount.Load(),
		UpsertErrors:   b.UpsertErrors.Load(),
		UpsertAvgNanos: avg(b.UpsertTotalNanos.Load(), b.UpsertCount.Load()),
		InsertCount:    b.InsertCount.Load(),
		UpdateCount:    b.UpdateCount.Load(),
		GetCount:       b.GetCount.Load(),
		GetMisses:      b.GetMisses.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchResults:  b.SearchResults.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	UpsertCount    int64
	UpsertErrors   int64
	UpsertAvgNanos int64
	InsertCount    int64
	UpdateCount    int64
	GetCount       int64
	GetMisses      int64
	SearchCount    int64
	SearchErrors   int64
	SearchResults  int64
	SearchAvgNanos int64
}
