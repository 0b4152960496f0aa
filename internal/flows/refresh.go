package flows

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goSession/credential"
	"github.com/MrEthical07/goSession/provider"
)

// RefreshFailureKind classifies refresh flow outcomes for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	// RefreshFailureConfig marks a configuration fault (unknown provider,
	// missing preconditions) that must propagate to the caller.
	RefreshFailureConfig
	// RefreshFailureProvider marks a wire-level refresh failure converted
	// into the record's Failed state.
	RefreshFailureProvider
	// RefreshFailureLockHeld marks a refresh skipped because another request
	// holds the per-user lock; the next request's expiry check retries.
	RefreshFailureLockHeld
)

// RefreshDeps captures refresh flow dependencies.
type RefreshDeps struct {
	Lookup      func(credential.Provider) (provider.Strategy, error)
	Now         func() time.Time
	AcquireLock func(ctx context.Context, userID string) (string, bool, error)
	ReleaseLock func(ctx context.Context, userID, token string)
	Warn        func(string, ...any)
}

// RefreshResult carries the updated record or failure metadata.
type RefreshResult struct {
	Failure    RefreshFailureKind
	Err        error
	RefreshErr *provider.RefreshError
	Record     *credential.Record
	Rotated    bool
	Elapsed    time.Duration
}

// RunRefresh drives an expired record through Refreshing into Valid or
// Failed. The input record is never mutated; the result carries a copy with
// the transition applied. Only configuration faults surface in Err — every
// wire failure is absorbed into the Failed transition.
func RunRefresh(ctx context.Context, rec *credential.Record, deps RefreshDeps) RefreshResult {
	strategy, err := deps.Lookup(rec.Provider)
	if err != nil {
		return RefreshResult{
			Failure: RefreshFailureConfig,
			Err:     err,
			Record:  rec,
		}
	}

	if deps.AcquireLock != nil {
		token, ok, lockErr := deps.AcquireLock(ctx, rec.UserID)
		if lockErr != nil {
			// A broken lock backend must not block refreshes entirely;
			// proceed unserialized and let rotation races resolve on the
			// next request.
			if deps.Warn != nil {
				deps.Warn("goSession: refresh lock unavailable, proceeding unserialized")
			}
		} else if !ok {
			return RefreshResult{
				Failure: RefreshFailureLockHeld,
				Record:  rec,
			}
		} else if deps.ReleaseLock != nil {
			defer deps.ReleaseLock(ctx, rec.UserID, token)
		}
	}

	start := deps.Now()
	result, err := strategy.Refresh(ctx, rec.RefreshToken)
	elapsed := deps.Now().Sub(start)

	if err != nil {
		if provider.IsPreconditionFault(err) {
			return RefreshResult{
				Failure: RefreshFailureConfig,
				Err:     err,
				Record:  rec,
				Elapsed: elapsed,
			}
		}

		var refreshErr *provider.RefreshError
		if !errors.As(err, &refreshErr) {
			// Unexpected strategy failure. Absorb it the same way as a wire
			// failure so nothing escapes the lifecycle hook.
			refreshErr = &provider.RefreshError{
				Provider: rec.Provider,
				Message:  err.Error(),
			}
		}

		failed := rec.Clone()
		failed.Error = credential.ErrorRefreshFailed

		return RefreshResult{
			Failure:    RefreshFailureProvider,
			RefreshErr: refreshErr,
			Record:     failed,
			Elapsed:    elapsed,
		}
	}

	updated := rec.Clone()
	updated.AccessToken = result.AccessToken
	updated.ExpiresAt = result.ExpiresAt
	updated.Error = ""
	updated.NeedsPasswordReset = result.PasswordChangeRequired

	rotated := false
	if result.RefreshToken != "" {
		rotated = updated.RefreshToken != result.RefreshToken
		updated.RefreshToken = result.RefreshToken
	}

	return RefreshResult{
		Failure: RefreshFailureNone,
		Record:  updated,
		Rotated: rotated,
		Elapsed: elapsed,
	}
}
