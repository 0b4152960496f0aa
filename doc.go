// Package goSession manages the authentication session lifecycle: it holds a
// user's access/refresh credential pair, decides when it has expired,
// re-acquires it through per-provider refresh strategies, and layers a
// TTL-cached authorization snapshot on top without blocking every request on
// a slow authorization service.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. Each lifecycle invocation — [Engine.Authenticate] followed
// by [Engine.Project] — is scoped to a single inbound request; the credential
// record is round-tripped through a token store between requests, so the core
// holds no cross-request mutable state.
//
// # Architecture boundaries
//
// goSession is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (SessionView, MetricsSnapshot, audit sinks). Flow
// orchestration lives under internal/ and is never exported. Domain models
// and protocol clients live in the credential, provider, and authz
// sub-packages.
//
// # Error policy
//
// Only configuration faults cross the core boundary as errors: invalid
// config, malformed login events, unknown provider tags. A failed token
// refresh is encoded into the record's RefreshFailed flag; a failed
// authorization fetch leaves the previous snapshot in place. Neither ever
// fails the request.
package goSession
