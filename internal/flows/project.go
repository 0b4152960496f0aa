package flows

import (
	"context"
	"time"

	"github.com/MrEthical07/goSession/authz"
	"github.com/MrEthical07/goSession/credential"
)

// ProjectDeps captures projection flow dependencies.
type ProjectDeps struct {
	Fetch func(ctx context.Context, accessToken string) *authz.Snapshot
	Now   func() time.Time
	TTL   time.Duration
}

// ProjectOutcome reports what the authorization refresh policy did during a
// projection.
type ProjectOutcome struct {
	// Attempted is true when the snapshot was stale and a refetch ran.
	Attempted bool
	// Replaced is true when the refetch succeeded and the snapshot was
	// replaced wholesale.
	Replaced bool
	// StaleServed is true when the refetch failed and the previous stale
	// snapshot remains in effect.
	StaleServed bool
}

// RunProject applies the authorization refresh policy to the request-scoped
// record. A record without an access token is left untouched. On refetch
// failure the previous snapshot and its stamp survive unchanged, so a
// persistently failing authorization service is retried on every projection.
func RunProject(ctx context.Context, rec *credential.Record, deps ProjectDeps) ProjectOutcome {
	if rec == nil || rec.AccessToken == "" || deps.Fetch == nil {
		return ProjectOutcome{}
	}

	now := deps.Now()
	if !authz.Stale(rec.AuthorizationFetchedAt, deps.TTL, now) {
		return ProjectOutcome{}
	}

	snap := deps.Fetch(ctx, rec.AccessToken)
	if snap == nil {
		return ProjectOutcome{
			Attempted:   true,
			StaleServed: rec.Authorization != nil,
		}
	}

	rec.Authorization = snap
	rec.AuthorizationFetchedAt = now.Unix()

	return ProjectOutcome{
		Attempted: true,
		Replaced:  true,
	}
}
