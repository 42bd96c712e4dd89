package metrics

import (
	"testing"
	"time"
)

func TestHistogramEmpty(t *testing.T) {
	h := NewHistogram(100)
	if h.Count() != 0 || h.Mean() != 0 || h.Percentile(95) != 0 {
		t.Errorf("empty histogram should report zeros, got count=%d mean=%f p95=%f",
			h.Count(), h.Mean(), h.Percentile(95))
	}
}

func TestHistogramPercentiles(t *testing.T) {
	h := NewHistogram(100)
	for i := 1; i <= 100; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}

	if h.Count() != 100 {
		t.Fatalf("expected 100 samples, got %d", h.Count())
	}
	if mean := h.Mean(); mean < 50.0 || mean > 51.0 {
		t.Errorf("expected mean near 50.5, got %f", mean)
	}
	if p50 := h.Percentile(50); p50 < 50.0 || p50 > 51.0 {
		t.Errorf("expected p50 near 50.5, got %f", p50)
	}
	if p99 := h.Percentile(99); p99 < 99.0 || p99 > 100.0 {
		t.Errorf("expected p99 near 99, got %f", p99)
	}
}

func TestHistogramTrimsOldest(t *testing.T) {
	h := NewHistogram(10)
	for i := 0; i < 12; i++ {
		h.Record(time.Duration(i) * time.Millisecond)
	}
	if h.Count() > 10 {
		t.Errorf("expected at most 10 retained samples, got %d", h.Count())
	}
}

func TestServiceMetricsSnapshot(t *testing.T) {
	m := NewServiceMetrics()
	m.RequestsServed.Add(3)
	m.RecommendRuns.Add(1)
	m.RequestLatency.Record(10 * time.Millisecond)
	m.RecommendLatency.Record(250 * time.Millisecond)

	snap := m.Snapshot()
	if snap.RequestsServed != 3 {
		t.Errorf("expected 3 requests served, got %d", snap.RequestsServed)
	}
	if snap.RecommendRuns != 1 {
		t.Errorf("expected 1 recommend run, got %d", snap.RecommendRuns)
	}
	if snap.RequestLatency.Count != 1 || snap.RequestLatency.MeanMS != 10 {
		t.Errorf("unexpected request latency summary: %+v", snap.RequestLatency)
	}
	if snap.UptimeSeconds < 0 {
		t.Errorf("uptime should be non-negative, got %f", snap.UptimeSeconds)
	}
}
