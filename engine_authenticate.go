package goSession

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrEthical07/goSession/credential"
	internalaudit "github.com/MrEthical07/goSession/internal/audit"
	"github.com/MrEthical07/goSession/internal/flows"
)

// Authenticate is the request-scoped lifecycle hook. On a fresh login it
// constructs a credential record from the event; otherwise it returns the
// previous record up to date, refreshing it when expired.
//
// A still-valid record is returned unchanged, so repeated invocations within
// the same request are idempotent. A failed refresh never escapes as an
// error: the record comes back with its tokens retained and the
// RefreshFailed flag set, and the consumer decides whether to force
// re-authentication. Only configuration faults — a malformed login event, an
// unknown provider tag, missing strategy preconditions — are returned as
// errors.
func (e *Engine) Authenticate(ctx context.Context, prev *credential.Record, login *credential.Login) (*credential.Record, error) {
	if e == nil || e.registry == nil {
		return nil, ErrEngineNotReady
	}

	now := time.Now()

	if login != nil {
		rec, err := credential.FromLogin(*login, now)
		if err != nil {
			return nil, err
		}

		e.metricInc(MetricLoginRecordCreated)
		e.auditEvent(ctx, internalaudit.EventLogin, rec, true, "")
		return rec, nil
	}

	if prev == nil {
		return nil, ErrNoCredential
	}

	if !prev.Expired(now) {
		e.metricInc(MetricAuthenticateNoOp)
		return prev, nil
	}

	result := flows.RunRefresh(ctx, prev, e.refreshDeps(ctx))

	switch result.Failure {
	case flows.RefreshFailureConfig:
		return nil, result.Err

	case flows.RefreshFailureLockHeld:
		e.metricInc(MetricRefreshLockContended)
		return prev, nil

	case flows.RefreshFailureProvider:
		e.metricInc(MetricRefreshFailure)
		e.metricObserve(MetricRefreshLatency, result.Elapsed)
		e.warn("token refresh failed",
			slog.String("provider", string(prev.Provider)),
			slog.Int("status", result.RefreshErr.StatusCode),
			slog.String("error", result.RefreshErr.Message),
		)
		e.auditEvent(ctx, internalaudit.EventTokenRefresh, result.Record, false, result.RefreshErr.Error())
		return result.Record, nil

	default:
		e.metricInc(MetricRefreshSuccess)
		e.metricObserve(MetricRefreshLatency, result.Elapsed)
		if result.Rotated {
			e.metricInc(MetricRefreshRotated)
		}
		if result.Record.NeedsPasswordReset {
			e.metricInc(MetricPasswordResetFlagged)
		}
		e.auditEvent(ctx, internalaudit.EventTokenRefresh, result.Record, true, "")
		return result.Record, nil
	}
}

func (e *Engine) refreshDeps(ctx context.Context) flows.RefreshDeps {
	deps := flows.RefreshDeps{
		Lookup: e.registry.Lookup,
		Now:    time.Now,
		Warn: func(msg string, args ...any) {
			e.warn(msg, args...)
		},
	}

	if e.config.Refresh.SerializeRefresh && e.locker != nil {
		tenantID := TenantIDFromContext(ctx, e.config.TenantID)
		lockTTL := e.config.Refresh.LockTTL

		deps.AcquireLock = func(ctx context.Context, userID string) (string, bool, error) {
			return e.locker.AcquireRefreshLock(ctx, tenantID, userID, lockTTL)
		}
		deps.ReleaseLock = func(ctx context.Context, userID, token string) {
			if err := e.locker.ReleaseRefreshLock(ctx, tenantID, userID, token); err != nil {
				e.warn("refresh lock release failed", slog.String("error", err.Error()))
			}
		}
	}

	return deps
}

func (e *Engine) auditEvent(ctx context.Context, eventType string, rec *credential.Record, success bool, errMsg string) {
	if e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		TenantID:  TenantIDFromContext(ctx, e.config.TenantID),
		Success:   success,
		Error:     errMsg,
	}
	if rec != nil {
		event.UserID = rec.UserID
		event.Provider = string(rec.Provider)
	}
	if sessionID := sessionIDFromContext(ctx); sessionID != "" {
		if event.Metadata == nil {
			event.Metadata = map[string]string{}
		}
		event.Metadata["session_id"] = sessionID
	}

	e.audit.Emit(ctx, event)
}
