package goSession

import (
	"context"
	"io"
	"time"

	"github.com/MrEthical07/goSession/authz"
	"github.com/MrEthical07/goSession/credential"
	internalaudit "github.com/MrEthical07/goSession/internal/audit"
)

// SessionView is the externally visible session, assembled fresh on every
// projection and never cached independently of the credential record.
type SessionView struct {
	// ID is the stringified user identity attached alongside the
	// authorization snapshot.
	ID string

	UserID      string
	BearerToken string

	// Error carries the record's degraded-state flag verbatim. A view with
	// ErrorRefreshFailed is "authenticated but needs re-login soon", not
	// "unauthenticated" — it still holds the last-known-good authorization.
	Error credential.RecordError

	NeedsPasswordReset bool

	Authorization *authz.Snapshot
}

// TokenStore is the opaque external store that persists credential records
// between requests. [credential.Store] is the Redis-backed implementation;
// callers may substitute their own.
type TokenStore interface {
	Load(ctx context.Context, tenantID, sessionID string) (*credential.Record, error)
	Save(ctx context.Context, tenantID, sessionID string, rec *credential.Record) error
	Delete(ctx context.Context, tenantID, sessionID string) error
}

// RefreshLocker serializes concurrent refreshes for one user. Optional: when
// absent, two racing requests can both refresh against a rotating provider
// and one will fail, recovering on its next request.
type RefreshLocker interface {
	AcquireRefreshLock(ctx context.Context, tenantID, userID string, ttl time.Duration) (token string, ok bool, err error)
	ReleaseRefreshLock(ctx context.Context, tenantID, userID, token string) error
}

// Audit event types emitted by the engine.
const (
	EventLogin                = internalaudit.EventLogin
	EventTokenRefresh         = internalaudit.EventTokenRefresh
	EventAuthorizationRefresh = internalaudit.EventAuthorizationRefresh
)

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
