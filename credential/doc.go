// Package credential owns the credential record: the access/refresh token
// pair, its expiry, the originating provider, and the attached authorization
// snapshot. It also provides the Redis-backed token store used to round-trip
// records between requests.
//
// # Record lifecycle
//
// A record moves Fresh → Valid → Expired → Refreshing → Valid | Failed.
// Transitions are driven by the engine's lifecycle hooks; this package only
// models the record, classifies its state against a clock, and constructs
// records from login events. A failed refresh never discards the record —
// the tokens are retained and the RefreshFailed flag is set so downstream
// consumers can decide whether to force re-authentication.
//
// # What this package must NOT do
//
//   - Perform provider or authorization network calls.
//   - Import goSession or the provider package (no import cycles).
package credential
