// Package resource bounds the memory a collection may hold and the rate at
// which writers may mutate it.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for accounted record memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// WritesPerSecond is the sustained write rate for throttled writers.
	// If 0, unlimited.
	WritesPerSecond float64

	// WriteBurst is the number of writes allowed above the sustained rate.
	// If 0, defaults to 1 when a rate is configured.
	WriteBurst int
}

// Controller tracks memory usage and paces writers.
//
// All methods are safe on a nil *Controller, which behaves as unlimited.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Writes
	writeLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.WritesPerSecond > 0 {
		burst := cfg.WriteBurst
		if burst <= 0 {
			burst = 1
		}
		c.writeLimiter = rate.NewLimiter(rate.Limit(cfg.WritesPerSecond), burst)
	}

	return c
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if the limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current accounted memory in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured limit, 0 meaning unlimited.
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireWrite blocks until the write rate allows one more write or ctx
// is done.
func (c *Controller) AcquireWrite(ctx context.Context) error {
	if c == nil || c.writeLimiter == nil {
		return ctx.Err()
	}
	return c.writeLimiter.Wait(ctx)
}

// TryAcquireWrite reports whether a write is allowed right now.
func (c *Controller) TryAcquireWrite() bool {
	if c == nil || c.writeLimiter == nil {
		return true
	}
	return c.writeLimiter.Allow()
}
