package portalauth

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)
	m.Inc(MetricLoginSuccess)

	if got := m.Value(MetricLoginSuccess); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricGuardAllow)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricGuardAllow); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		3 * time.Microsecond,
		15 * time.Microsecond,
		80 * time.Microsecond,
		400 * time.Microsecond,
		1 * time.Millisecond,
		8 * time.Millisecond,
		40 * time.Millisecond,
		200 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricGuardLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricGuardLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}
	for i, count := range buckets {
		if count != 1 {
			t.Fatalf("bucket %d: expected 1 observation, got %d", i, count)
		}
	}
}

func TestMetricsHistogramDisabledNoObservation(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricGuardLatency, time.Millisecond)

	snap := m.Snapshot()
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected no histograms, got %d", len(snap.Histograms))
	}
}

func TestMetricsSnapshotCoversAllCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricLogout)
	m.Inc(MetricSchemaWipe)

	snap := m.Snapshot()
	if len(snap.Counters) != int(metricIDCount) {
		t.Fatalf("expected %d counters, got %d", metricIDCount, len(snap.Counters))
	}
	if snap.Counters[MetricLogout] != 1 || snap.Counters[MetricSchemaWipe] != 1 {
		t.Fatalf("unexpected counter values: %+v", snap.Counters)
	}
	if snap.Counters[MetricLoginSuccess] != 0 {
		t.Fatalf("untouched counter must be 0, got %d", snap.Counters[MetricLoginSuccess])
	}
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricLoginSuccess)
	m.Observe(MetricGuardLatency, time.Millisecond)

	if m.Enabled() || m.LatencyEnabled() {
		t.Fatal("nil metrics must report disabled")
	}
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
