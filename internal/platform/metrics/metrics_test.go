package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 2*time.Millisecond)
	c.RecordCalculation("rescisao", Succeeded)
	c.RecordCalculation("folha", Rejected)
	c.RecordCalculation("folha", Succeeded)
	c.RecordCalculation("folha", Failed)

	snap := c.Snapshot()
	if snap["requestsTotal"].(uint64) != 3 {
		t.Fatalf("expected 3 requests, got %v", snap["requestsTotal"])
	}
	if snap["errorsTotal"].(uint64) != 1 || snap["rateLimitedTotal"].(uint64) != 1 {
		t.Fatalf("unexpected error counters %+v", snap)
	}
	if snap["avgDurationMs"].(float64) != 14 {
		t.Fatalf("expected avg 14ms, got %v", snap["avgDurationMs"])
	}

	calcs := snap["calculations"].([]map[string]any)
	if len(calcs) != 2 || calcs[0]["kind"] != "folha" {
		t.Fatalf("expected calculators sorted by kind, got %+v", calcs)
	}
	if calcs[0]["ok"].(uint64) != 1 || calcs[0]["rejected"].(uint64) != 1 || calcs[0]["failed"].(uint64) != 1 {
		t.Fatalf("unexpected folha counters %+v", calcs[0])
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.Record(200, time.Millisecond)
	c.RecordCalculation("folha", Succeeded)
}
