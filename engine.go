package goSession

import (
	"log/slog"
	"time"

	"github.com/MrEthical07/goSession/authz"
	"github.com/MrEthical07/goSession/provider"
)

// Engine defines a public type used by goSession APIs.
//
// Engine instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Engine struct {
	config      Config
	registry    *provider.Registry
	authzClient *authz.Client
	store       TokenStore
	locker      RefreshLocker
	audit       *auditDispatcher
	metrics     *Metrics
	logger      *slog.Logger
}

// Close flushes the audit dispatcher. The engine must not be used after
// Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// Store returns the configured token store, or nil when none was wired.
func (e *Engine) Store() TokenStore {
	if e == nil {
		return nil
	}
	return e.store
}

// TenantID returns the configured default tenant identifier.
func (e *Engine) TenantID() string {
	if e == nil {
		return ""
	}
	return e.config.TenantID
}

// AuditDropped returns the number of audit events discarded under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time deep copy of all metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

func (e *Engine) warn(msg string, args ...any) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Warn(msg, args...)
}
