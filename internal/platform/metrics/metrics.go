package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Collector keeps process-local request and calculator counters.
type Collector struct {
	totalRequests   atomic.Uint64
	errorRequests   atomic.Uint64
	rateLimited     atomic.Uint64
	totalDurationMs atomic.Uint64

	mu           sync.Mutex
	calculations map[string]*calcCounter
}

// Outcome classifies one calculator run.
type Outcome int

const (
	Succeeded Outcome = iota
	// Rejected means the input failed validation.
	Rejected
	// Failed means the request could not be served for any other reason.
	Failed
)

type calcCounter struct {
	ok       uint64
	rejected uint64
	failed   uint64
}

func New() *Collector {
	return &Collector{calculations: make(map[string]*calcCounter)}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.totalRequests.Add(1)
	if status >= 500 {
		c.errorRequests.Add(1)
	}
	if status == 429 {
		c.rateLimited.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) RecordCalculation(kind string, outcome Outcome) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	counter, found := c.calculations[kind]
	if !found {
		counter = &calcCounter{}
		c.calculations[kind] = counter
	}
	switch outcome {
	case Succeeded:
		counter.ok++
	case Rejected:
		counter.rejected++
	default:
		counter.failed++
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := c.totalRequests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	kinds := make([]string, 0, len(c.calculations))
	for kind := range c.calculations {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	calcs := make([]map[string]any, 0, len(kinds))
	for _, kind := range kinds {
		counter := c.calculations[kind]
		calcs = append(calcs, map[string]any{
			"kind":     kind,
			"ok":       counter.ok,
			"rejected": counter.rejected,
			"failed":   counter.failed,
		})
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      c.errorRequests.Load(),
		"rateLimitedTotal": c.rateLimited.Load(),
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
		"calculations":     calcs,
	}
}
