package internaldefs

import (
	portalauth "github.com/portalauth/portalauth"
)

// CounterDef defines a public type used by portalauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   portalauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by portalauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   portalauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authorization client.
var CounterDefs = []CounterDef{
	{ID: portalauth.MetricLoginSuccess, Name: "portalauth_login_success_total", Help: "Successful login attempts."},
	{ID: portalauth.MetricLoginFailure, Name: "portalauth_login_failure_total", Help: "Failed login attempts."},
	{ID: portalauth.MetricLoginSuperseded, Name: "portalauth_login_superseded_total", Help: "Login responses dropped because a newer attempt committed first."},
	{ID: portalauth.MetricLogout, Name: "portalauth_logout_total", Help: "Logout operations."},
	{ID: portalauth.MetricLogoutRemoteFailure, Name: "portalauth_logout_remote_failure_total", Help: "Logouts whose upstream revocation failed after the local clear."},
	{ID: portalauth.MetricProfileRefreshSuccess, Name: "portalauth_profile_refresh_success_total", Help: "Successful profile refreshes."},
	{ID: portalauth.MetricProfileRefreshFailure, Name: "portalauth_profile_refresh_failure_total", Help: "Failed profile refreshes."},
	{ID: portalauth.MetricPasswordChangeSuccess, Name: "portalauth_password_change_success_total", Help: "Successful password changes."},
	{ID: portalauth.MetricPasswordChangeFailure, Name: "portalauth_password_change_failure_total", Help: "Failed password changes."},
	{ID: portalauth.MetricPasswordResetRequest, Name: "portalauth_password_reset_request_total", Help: "Password recovery requests."},
	{ID: portalauth.MetricPasswordResetConfirm, Name: "portalauth_password_reset_confirm_total", Help: "Completed password resets."},
	{ID: portalauth.MetricGuardAllow, Name: "portalauth_guard_allow_total", Help: "Guard evaluations that allowed navigation."},
	{ID: portalauth.MetricGuardRedirect, Name: "portalauth_guard_redirect_total", Help: "Guard evaluations that redirected to the login route."},
	{ID: portalauth.MetricSchemaWipe, Name: "portalauth_schema_wipe_total", Help: "Session records wiped by a schema version mismatch."},
}

// HistogramDefs is an exported constant or variable used by the authorization client.
var HistogramDefs = []HistogramDef{
	{ID: portalauth.MetricGuardLatency, Name: "portalauth_guard_latency_seconds", Help: "Guard evaluation latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authorization client.
var HistogramBounds = []string{
	"0.000005",
	"0.00002",
	"0.0001",
	"0.0005",
	"0.002",
	"0.01",
	"0.05",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authorization client.
var HistogramBoundSuffix = []string{
	"0_000005",
	"0_00002",
	"0_0001",
	"0_0005",
	"0_002",
	"0_01",
	"0_05",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
