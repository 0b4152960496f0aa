// Package flows contains the request-scoped lifecycle flows — token refresh
// and session projection — expressed against explicit dependency structs so
// the root package stays a thin wiring layer and the flows stay testable
// without network or Redis.
package flows
