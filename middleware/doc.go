// Package middleware exposes an HTTP adapter that runs the session lifecycle
// around each request on top of goSession.Engine.
//
// [Session] reads the session cookie and tenant header, loads the credential
// record from the engine's token store, brings it up to date through
// Engine.Authenticate, projects it with Engine.Project, saves the (possibly
// refreshed) record back, and injects the resulting [goSession.SessionView]
// into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement lifecycle logic itself — refresh and authorization decisions are
// delegated to the Engine.
//
// # What this package must NOT do
//
//   - Call refresh providers or the authorization service directly.
//   - Reject requests because a refresh failed (the view carries the flag).
package middleware
