package goSession

import (
	"context"
	"time"

	"github.com/MrEthical07/goSession/authz"
	"github.com/MrEthical07/goSession/credential"
	internalaudit "github.com/MrEthical07/goSession/internal/audit"
	"github.com/MrEthical07/goSession/internal/flows"
)

// Project assembles the externally visible [SessionView] from a credential
// record, applying the authorization refresh policy first: a stale snapshot
// is refetched, a failed refetch keeps the previous snapshot in effect, and
// the view is never cached independently of the record.
//
// Project mutates the request-scoped record in place (snapshot and fetch
// stamp) so a subsequent save persists the refreshed authorization. It never
// returns an error; a session must project even when the authorization
// service is down.
func (e *Engine) Project(ctx context.Context, rec *credential.Record) SessionView {
	if e == nil || rec == nil {
		return SessionView{}
	}

	e.metricInc(MetricProjection)

	deps := flows.ProjectDeps{
		Now: time.Now,
		TTL: e.config.Authorization.SnapshotTTL,
	}
	if e.authzClient != nil {
		deps.Fetch = func(ctx context.Context, accessToken string) *authz.Snapshot {
			return e.authzClient.Fetch(ctx, accessToken)
		}
	}

	outcome := flows.RunProject(ctx, rec, deps)

	if outcome.Attempted {
		if outcome.Replaced {
			e.metricInc(MetricAuthzFetchSuccess)
		} else {
			e.metricInc(MetricAuthzFetchFailure)
			e.auditEvent(ctx, internalaudit.EventAuthorizationRefresh, rec, false, "snapshot fetch failed")
		}
		if outcome.StaleServed {
			e.metricInc(MetricAuthzStaleServed)
		}
	}

	view := SessionView{
		ID:                 rec.UserID,
		UserID:             rec.UserID,
		BearerToken:        rec.AccessToken,
		Error:              rec.Error,
		NeedsPasswordReset: rec.NeedsPasswordReset,
	}
	// A record without an access token projects no authorization data; the
	// cached snapshot stays on the record for when a token is back.
	if rec.AccessToken != "" {
		view.Authorization = rec.Authorization
	}
	return view
}
