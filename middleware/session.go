package middleware

import (
	"context"
	"net/http"

	goSession "github.com/MrEthical07/goSession"
)

// DefaultCookieName is the session cookie read when [SessionOptions.CookieName]
// is empty.
const DefaultCookieName = "gosession_id"

// TenantHeader is the request header carrying the tenant identifier.
const TenantHeader = "X-Tenant-ID"

type sessionViewContextKey struct{}

// SessionOptions tunes the [Session] middleware.
type SessionOptions struct {
	// CookieName is the session cookie to read. Empty uses [DefaultCookieName].
	CookieName string

	// PassThroughAnonymous controls what happens when no session cookie or
	// stored record exists. True calls the next handler without a view; false
	// rejects with 401.
	PassThroughAnonymous bool
}

// SessionFromContext returns the view injected by [Session], if any.
func SessionFromContext(ctx context.Context) (goSession.SessionView, bool) {
	view, ok := ctx.Value(sessionViewContextKey{}).(goSession.SessionView)
	return view, ok
}

// Session returns middleware that runs the credential lifecycle around each
// request: load, authenticate (refreshing an expired record), project, save.
// The projected view is injected into the request context for handlers.
//
// A failed refresh does not reject the request; the view carries the
// degraded-state flag and handlers decide. Only a missing session rejects,
// subject to [SessionOptions.PassThroughAnonymous].
func Session(engine *goSession.Engine, opts SessionOptions) func(http.Handler) http.Handler {
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil || engine.Store() == nil {
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				anonymous(w, r, next, opts)
				return
			}

			ctx := r.Context()
			tenantID := engine.TenantID()
			if header := r.Header.Get(TenantHeader); header != "" {
				tenantID = header
			}
			ctx = goSession.WithTenantID(ctx, tenantID)
			ctx = goSession.WithSessionID(ctx, cookie.Value)

			rec, err := engine.Store().Load(ctx, tenantID, cookie.Value)
			if err != nil {
				anonymous(w, r, next, opts)
				return
			}

			// Authenticate returns rec itself on the no-op path and Project
			// mutates in place, so remember the stored stamp up front.
			prevFetchedAt := rec.AuthorizationFetchedAt

			updated, err := engine.Authenticate(ctx, rec, nil)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			view := engine.Project(ctx, updated)

			// Persist rotated tokens and refreshed authorization. Save failures
			// are tolerated: the request still carries a valid view and the
			// next request re-runs the lifecycle from the stored record.
			if updated != rec || updated.AuthorizationFetchedAt != prevFetchedAt {
				_ = engine.Store().Save(ctx, tenantID, cookie.Value, updated)
			}

			ctx = context.WithValue(ctx, sessionViewContextKey{}, view)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func anonymous(w http.ResponseWriter, r *http.Request, next http.Handler, opts SessionOptions) {
	if opts.PassThroughAnonymous {
		next.ServeHTTP(w, r)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
