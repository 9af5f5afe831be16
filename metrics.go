package portalauth

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by portalauth APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricLoginSuccess is an exported constant or variable used by the authorization client.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure is an exported constant or variable used by the authorization client.
	MetricLoginFailure
	// MetricLoginSuperseded is an exported constant or variable used by the authorization client.
	MetricLoginSuperseded
	// MetricLogout is an exported constant or variable used by the authorization client.
	MetricLogout
	// MetricLogoutRemoteFailure is an exported constant or variable used by the authorization client.
	MetricLogoutRemoteFailure
	// MetricProfileRefreshSuccess is an exported constant or variable used by the authorization client.
	MetricProfileRefreshSuccess
	// MetricProfileRefreshFailure is an exported constant or variable used by the authorization client.
	MetricProfileRefreshFailure
	// MetricPasswordChangeSuccess is an exported constant or variable used by the authorization client.
	MetricPasswordChangeSuccess
	// MetricPasswordChangeFailure is an exported constant or variable used by the authorization client.
	MetricPasswordChangeFailure
	// MetricPasswordResetRequest is an exported constant or variable used by the authorization client.
	MetricPasswordResetRequest
	// MetricPasswordResetConfirm is an exported constant or variable used by the authorization client.
	MetricPasswordResetConfirm
	// MetricGuardAllow is an exported constant or variable used by the authorization client.
	MetricGuardAllow
	// MetricGuardRedirect is an exported constant or variable used by the authorization client.
	MetricGuardRedirect
	// MetricSchemaWipe is an exported constant or variable used by the authorization client.
	MetricSchemaWipe
	// MetricGuardLatency is an exported constant or variable used by the authorization client.
	MetricGuardLatency

	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by portalauth APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by portalauth APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
//
// NewMetrics does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled describes the enabled operation and its observable behavior.
//
// Enabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// LatencyEnabled describes the latencyenabled operation and its observable behavior.
//
// LatencyEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc describes the inc operation and its observable behavior.
//
// Inc does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe describes the observe operation and its observable behavior.
//
// Observe does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricGuardLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value describes the value operation and its observable behavior.
//
// Value does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, metricIDCount),
		Histograms: make(map[MetricID][]uint64),
	}
	if m == nil {
		return snap
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricGuardLatency].buckets[i])
		}
		snap.Histograms[MetricGuardLatency] = buckets
	}

	return snap
}

// bucketIndex maps a latency to one of the 8 fixed buckets:
// ≤5µs, ≤20µs, ≤100µs, ≤500µs, ≤2ms, ≤10ms, ≤50ms, +Inf.
func bucketIndex(d time.Duration) int {
	switch {
	case d <= 5*time.Microsecond:
		return 0
	case d <= 20*time.Microsecond:
		return 1
	case d <= 100*time.Microsecond:
		return 2
	case d <= 500*time.Microsecond:
		return 3
	case d <= 2*time.Millisecond:
		return 4
	case d <= 10*time.Millisecond:
		return 5
	case d <= 50*time.Millisecond:
		return 6
	default:
		return 7
	}
}
