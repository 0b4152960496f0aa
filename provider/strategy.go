package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrEthical07/goSession/credential"
)

// Precondition faults. These indicate deployment misconfiguration and are
// never converted into the record's Failed state.
var (
	// ErrMissingRefreshToken is returned when a refresh is attempted with an
	// empty refresh token.
	ErrMissingRefreshToken = errors.New("refresh token required")
	// ErrMissingClientCredentials is returned when the OAuth2 strategy is
	// invoked without a client id and secret.
	ErrMissingClientCredentials = errors.New("client credentials required")
)

// DefaultRequestTimeout bounds a single refresh call. The source this design
// follows inherited the ambient client default; an unbounded refresh stalls
// the entire request, so an explicit bound is applied here.
const DefaultRequestTimeout = 10 * time.Second

// Result is the outcome of a successful refresh.
type Result struct {
	AccessToken string

	// RefreshToken replaces the record's refresh token when non-empty.
	// Empty means the provider did not rotate and the old token is retained.
	RefreshToken string

	// ExpiresAt is the new access-token expiry in epoch seconds.
	ExpiresAt int64

	// PasswordChangeRequired is surfaced by the credentials API when the
	// account must rotate its password. It is carried onto the record for
	// downstream enforcement, not merely logged.
	PasswordChangeRequired bool
}

// Strategy exchanges a refresh token for a new access token through one
// provider's wire protocol.
type Strategy interface {
	// Name returns the provider tag this strategy serves.
	Name() credential.Provider

	// Refresh performs the token exchange. Wire failures are returned as
	// [*RefreshError]; precondition faults as sentinel errors.
	Refresh(ctx context.Context, refreshToken string) (*Result, error)
}

// RefreshError is a failed refresh attempt against a provider. It is matched
// explicitly at the dispatch boundary and converted into the record's Failed
// state, never caught generically.
type RefreshError struct {
	Provider   credential.Provider
	StatusCode int
	Message    string
}

func (e *RefreshError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s refresh failed: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s refresh failed: %s", e.Provider, e.Message)
}

// IsPreconditionFault reports whether err is a configuration-level fault
// that must propagate out of the lifecycle hook.
func IsPreconditionFault(err error) bool {
	return errors.Is(err, ErrMissingRefreshToken) || errors.Is(err, ErrMissingClientCredentials)
}
