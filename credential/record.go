package credential

import (
	"errors"
	"time"

	"github.com/MrEthical07/goSession/authz"
)

// Provider identifies which refresh protocol applies to a record.
type Provider string

const (
	// ProviderGoogle refreshes through the OAuth2 token endpoint.
	ProviderGoogle Provider = "google"
	// ProviderCredentials refreshes through the first-party credentials API.
	ProviderCredentials Provider = "credentials"
)

// Known reports whether p is one of the closed set of provider tags.
func (p Provider) Known() bool {
	return p == ProviderGoogle || p == ProviderCredentials
}

// RecordError flags a degraded record state. It never causes a crash; it is
// carried on the record for downstream consumers to act on.
type RecordError string

// ErrorRefreshFailed is set when the last refresh attempt failed. The record
// still carries the previous tokens and the last-known-good authorization
// snapshot.
const ErrorRefreshFailed RecordError = "RefreshFailed"

// Status is the derived lifecycle state of a record at a given instant.
type Status uint8

const (
	// StatusFresh marks a record just produced by a login exchange.
	StatusFresh Status = iota
	// StatusValid marks a record whose access token has not expired.
	StatusValid
	// StatusExpired marks a record whose access token has expired.
	StatusExpired
	// StatusRefreshing marks a record mid-refresh within a lifecycle hook.
	StatusRefreshing
	// StatusFailed marks a record whose last refresh attempt failed.
	StatusFailed
)

// Construction faults. These indicate a setup bug in the login wiring, not a
// runtime condition to recover from, and are returned as errors rather than
// encoded into the record.
var (
	// ErrMissingAccessToken is returned when a login event carries neither a
	// provider-issued nor a user-supplied access token.
	ErrMissingAccessToken = errors.New("login event missing access token")
	// ErrMissingRefreshToken is returned when a login event carries neither a
	// provider-issued nor a user-supplied refresh token.
	ErrMissingRefreshToken = errors.New("login event missing refresh token")
	// ErrUnknownProvider is returned when a login event names a provider tag
	// outside the closed enum.
	ErrUnknownProvider = errors.New("unknown credential provider")
)

// DefaultAccessTokenTTL is the expiry window assumed when neither the login
// event nor the access token itself reports one.
const DefaultAccessTokenTTL = time.Hour

// Record is the credential entity round-tripped through the token store
// between requests. Both tokens are always present on a constructed record;
// absence of either during login is a fatal construction error.
type Record struct {
	UserID   string   `json:"user_id"`
	Provider Provider `json:"provider"`

	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`

	Error              RecordError `json:"error,omitempty"`
	NeedsPasswordReset bool        `json:"needs_password_reset,omitempty"`

	Authorization          *authz.Snapshot `json:"authorization,omitempty"`
	AuthorizationFetchedAt int64           `json:"authorization_fetched_at,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// Login is the input to [FromLogin]. The provider-issued and user-supplied
// token fields mirror the two shapes a login callback can deliver; at least
// one of each pair must be populated.
type Login struct {
	Provider Provider
	UserID   string

	ProviderAccessToken  string
	ProviderRefreshToken string

	UserAccessToken  string
	UserRefreshToken string

	// ExpiresAt is the access-token expiry in epoch seconds. Zero falls back
	// to the token's own exp claim, then to [DefaultAccessTokenTTL].
	ExpiresAt int64
}

// FromLogin constructs a Fresh record from a login event. Provider-issued
// tokens take precedence over user-supplied ones. Missing either token after
// merging both pairs is a fatal configuration fault.
func FromLogin(login Login, now time.Time) (*Record, error) {
	if !login.Provider.Known() {
		return nil, ErrUnknownProvider
	}

	access := login.ProviderAccessToken
	if access == "" {
		access = login.UserAccessToken
	}
	refresh := login.ProviderRefreshToken
	if refresh == "" {
		refresh = login.UserRefreshToken
	}

	if access == "" {
		return nil, ErrMissingAccessToken
	}
	if refresh == "" {
		return nil, ErrMissingRefreshToken
	}

	expiresAt := login.ExpiresAt
	if expiresAt == 0 {
		if exp, ok := TokenExpiry(access); ok {
			expiresAt = exp
		} else {
			expiresAt = now.Add(DefaultAccessTokenTTL).Unix()
		}
	}

	userID := login.UserID
	if userID == "" {
		userID, _ = TokenSubject(access)
	}

	return &Record{
		UserID:       userID,
		Provider:     login.Provider,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		CreatedAt:    now.Unix(),
	}, nil
}

// Expired reports whether the access token has expired at now.
func (r *Record) Expired(now time.Time) bool {
	return now.Unix() >= r.ExpiresAt
}

// State classifies the record against now. Fresh and Refreshing are
// transient states inside a lifecycle hook: FromLogin is the only source of
// Fresh records, and a stored record is always observed as Valid, Expired,
// or Failed.
func (r *Record) State(now time.Time) Status {
	switch {
	case r.Error != "":
		return StatusFailed
	case r.Expired(now):
		return StatusExpired
	default:
		return StatusValid
	}
}

// Clone returns a deep copy of the record, including the authorization
// snapshot. A nil receiver yields nil.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Authorization = r.Authorization.Clone()
	return &out
}
