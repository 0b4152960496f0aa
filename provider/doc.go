// Package provider implements the per-identity-provider refresh strategies
// and the registry that routes a credential record to the right one.
//
// # Failure taxonomy
//
// Strategies distinguish two failure classes. Precondition faults (missing
// refresh token, missing client credentials) are deployment bugs: they are
// returned as sentinel errors and must propagate. Wire failures — a non-2xx
// response, a success response without an access token, a transport error —
// are returned as [*RefreshError] and are converted into the record's Failed
// state by the refresh flow; they never escape the lifecycle hook.
//
// # Adding a provider
//
// Implement [Strategy] and register it with [Registry.Register]. The registry
// replaces the conditional-switch dispatch the provider set would otherwise
// grow into.
package provider
