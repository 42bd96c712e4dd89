package metrics

import (
	"sync/atomic"
	"time"
)

// ServiceMetrics tracks counters and latencies for a running API
// server.
type ServiceMetrics struct {
	RequestLatency   *Histogram
	RecommendLatency *Histogram

	RequestsServed atomic.Uint64
	RecommendRuns  atomic.Uint64

	startTime time.Time
}

// NewServiceMetrics creates a metrics set with the start time recorded.
func NewServiceMetrics() *ServiceMetrics {
	return &ServiceMetrics{
		RequestLatency:   NewHistogram(10000),
		RecommendLatency: NewHistogram(1000),
		startTime:        time.Now(),
	}
}

// Uptime returns how long the service has been running.
func (m *ServiceMetrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}

// LatencySummary is the exported shape of one histogram.
type LatencySummary struct {
	Count  int     `json:"count"`
	MeanMS float64 `json:"meanMs"`
	P50MS  float64 `json:"p50Ms"`
	P95MS  float64 `json:"p95Ms"`
	P99MS  float64 `json:"p99Ms"`
}

// Snapshot is a point-in-time view of the service metrics.
type Snapshot struct {
	UptimeSeconds    float64        `json:"uptimeSeconds"`
	RequestsServed   uint64         `json:"requestsServed"`
	RecommendRuns    uint64         `json:"recommendRuns"`
	RequestLatency   LatencySummary `json:"requestLatency"`
	RecommendLatency LatencySummary `json:"recommendLatency"`
}

// Snapshot captures the current counters and latency summaries.
func (m *ServiceMetrics) Snapshot() Snapshot {
	return Snapshot{
		UptimeSeconds:    m.Uptime().Seconds(),
		RequestsServed:   m.RequestsServed.Load(),
		RecommendRuns:    m.RecommendRuns.Load(),
		RequestLatency:   summarize(m.RequestLatency),
		RecommendLatency: summarize(m.RecommendLatency),
	}
}

func summarize(h *Histogram) LatencySummary {
	return LatencySummary{
		Count:  h.Count(),
		MeanMS: h.Mean(),
		P50MS:  h.Percentile(50),
		P95MS:  h.Percentile(95),
		P99MS:  h.Percentile(99),
	}
}
