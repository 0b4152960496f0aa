// Package authz fetches and models the authorization snapshot layered on top
// of a credential record: the user's role assignments, group memberships, and
// permission overrides as reported by the authorization service.
//
// # Design
//
// Authorization is a best-effort overlay, not a hard dependency of the
// session. [Client.Fetch] never returns an error: a non-2xx response, a
// timeout, or a malformed body all yield nil, and the caller keeps whatever
// snapshot it already has. Fetches are bounded by a 5-second abort-on-timeout
// so a slow authorization service cannot stall the request that triggered the
// refetch.
//
// # What this package must NOT do
//
//   - Cache snapshots. Staleness is tracked on the credential record by the
//     projection flow; this package only answers "is this stamp stale".
//   - Import goSession or any sibling package.
package authz
