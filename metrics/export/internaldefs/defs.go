package internaldefs

import (
	goSession "github.com/MrEthical07/goSession"
)

// CounterDef defines a public type used by goSession APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goSession APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goSession.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session engine.
var CounterDefs = []CounterDef{
	{ID: goSession.MetricLoginRecordCreated, Name: "gosession_login_record_created_total", Help: "Credential records created from login events."},
	{ID: goSession.MetricAuthenticateNoOp, Name: "gosession_authenticate_noop_total", Help: "Still-valid records returned unchanged."},
	{ID: goSession.MetricRefreshSuccess, Name: "gosession_refresh_success_total", Help: "Successful token refreshes."},
	{ID: goSession.MetricRefreshFailure, Name: "gosession_refresh_failure_total", Help: "Refreshes converted into the failed state."},
	{ID: goSession.MetricRefreshRotated, Name: "gosession_refresh_rotated_total", Help: "Refreshes that rotated the refresh token."},
	{ID: goSession.MetricRefreshLockContended, Name: "gosession_refresh_lock_contended_total", Help: "Refreshes skipped under per-user lock contention."},
	{ID: goSession.MetricAuthzFetchSuccess, Name: "gosession_authz_fetch_success_total", Help: "Authorization snapshot replacements."},
	{ID: goSession.MetricAuthzFetchFailure, Name: "gosession_authz_fetch_failure_total", Help: "Failed authorization refetch attempts."},
	{ID: goSession.MetricAuthzStaleServed, Name: "gosession_authz_stale_served_total", Help: "Projections serving a stale snapshot after a failed refetch."},
	{ID: goSession.MetricProjection, Name: "gosession_projection_total", Help: "Session view projections."},
	{ID: goSession.MetricPasswordResetFlagged, Name: "gosession_password_reset_flagged_total", Help: "Refreshes surfacing the password-change-required flag."},
}

// HistogramDefs is an exported constant or variable used by the session engine.
var HistogramDefs = []HistogramDef{
	{ID: goSession.MetricRefreshLatency, Name: "gosession_refresh_latency_seconds", Help: "Refresh round-trip latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
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
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
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
