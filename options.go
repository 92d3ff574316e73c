package partvec

import (
	"log/slog"

	"github.com/hupe1980/partvec/distance"
	"github.com/hupe1980/partvec/resource"
)

// DefaultNumPartitions is the number of generated partitions when no
// explicit names are configured.
const DefaultNumPartitions = 2

type options struct {
	partitionNames   []string
	numPartitions    int
	metric           distance.Metric
	metricsCollector MetricsCollector
	logger           *Logger
	resources        resource.Config
}

// Option configures a Collection at construction time.
type Option func(*options)

// WithPartitions fixes the partition set to names, in order.
//
// Names must be unique and non-empty. An empty list is treated as not
// supplied, falling back to generated names.
func WithPartitions(names ...string) Option {
	return func(o *options) {
		o.partitionNames = names
	}
}

// WithNumPartitions sets how many partitions are generated
// (partition_0 .. partition_{n-1}) when WithPartitions is not used.
//
// Defaults to DefaultNumPartitions. n must be positive.
func WithNumPartitions(n int) Option {
	return func(o *options) {
		o.numPartitions = n
	}
}

// WithMetric selects the distance metric used by search. Defaults to L2.
func WithMetric(m distance.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &partvec.BasicMetricsCollector{}
//	c, _ := partvec.New("products", 4, partvec.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Upserts: %d, Avg latency: %dns\n", stats.UpsertCount, stats.UpsertAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := partvec.NewJSONLogger(slog.LevelInfo)
//	c, _ := partvec.New("products", 4, partvec.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMemoryLimit caps the memory accounted to stored records (id bytes
// plus 4 bytes per vector component). Inserts beyond the cap fail with
// ErrMemoryLimit; updates in place are not charged.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.resources.MemoryLimitBytes = bytes
	}
}

// WithWriteRate paces writes issued through a SafeCollection to perSecond
// sustained writes with the given burst.
func WithWriteRate(perSecond float64, burst int) Option {
	return func(o *options) {
		o.resources.WritesPerSecond = perSecond
		o.resources.WriteBurst = burst
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		numPartitions:    DefaultNumPartitions,
		metric:           distance.MetricL2,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
