// Package prometheus provides Prometheus collectors for portalauth metrics.
//
// [NewPrometheusExporter] accepts a [portalauth.Client] and exposes an [http.Handler]
// that renders all portalauth counters and histograms in Prometheus text exposition
// format. Counter names are prefixed portalauth_*_total; the single histogram is
// portalauth_guard_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
