package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps coarse request counters for the /metrics endpoint.
type Collector struct {
	requests   atomic.Uint64
	serverErrs atomic.Uint64
	throttled  atomic.Uint64
	durationMs atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	if status >= 500 {
		c.serverErrs.Add(1)
	}
	if status == 429 {
		c.throttled.Add(1)
	}
	c.durationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := c.requests.Load()
	totalMs := c.durationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      c.serverErrs.Load(),
		"rateLimitedTotal": c.throttled.Load(),
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
	}
}
