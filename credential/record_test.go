package credential

import (
	"errors"
	"testing"
	"time"

	"github.com/MrEthical07/goSession/authz"
)

func TestFromLoginProviderTokensTakePrecedence(t *testing.T) {
	now := time.Now()
	rec, err := FromLogin(Login{
		Provider:             ProviderCredentials,
		UserID:               "u1",
		ProviderAccessToken:  "at-provider",
		ProviderRefreshToken: "rt-provider",
		UserAccessToken:      "at-user",
		UserRefreshToken:     "rt-user",
	}, now)
	if err != nil {
		t.Fatalf("FromLogin failed: %v", err)
	}

	if rec.AccessToken != "at-provider" {
		t.Fatalf("expected provider access token, got %q", rec.AccessToken)
	}
	if rec.RefreshToken != "rt-provider" {
		t.Fatalf("expected provider refresh token, got %q", rec.RefreshToken)
	}
}

func TestFromLoginMergesUserTokens(t *testing.T) {
	now := time.Now()
	rec, err := FromLogin(Login{
		Provider:            ProviderGoogle,
		UserID:              "u1",
		ProviderAccessToken: "at-provider",
		UserRefreshToken:    "rt-user",
	}, now)
	if err != nil {
		t.Fatalf("FromLogin failed: %v", err)
	}

	if rec.AccessToken != "at-provider" || rec.RefreshToken != "rt-user" {
		t.Fatalf("expected merged token pair, got %q / %q", rec.AccessToken, rec.RefreshToken)
	}
}

func TestFromLoginMissingTokensFatal(t *testing.T) {
	now := time.Now()

	if _, err := FromLogin(Login{
		Provider:             ProviderCredentials,
		UserID:               "u1",
		ProviderRefreshToken: "rt",
	}, now); !errors.Is(err, ErrMissingAccessToken) {
		t.Fatalf("expected ErrMissingAccessToken, got %v", err)
	}

	if _, err := FromLogin(Login{
		Provider:            ProviderCredentials,
		UserID:              "u1",
		ProviderAccessToken: "at",
	}, now); !errors.Is(err, ErrMissingRefreshToken) {
		t.Fatalf("expected ErrMissingRefreshToken, got %v", err)
	}
}

func TestFromLoginUnknownProviderFatal(t *testing.T) {
	_, err := FromLogin(Login{
		Provider:             Provider("saml"),
		ProviderAccessToken:  "at",
		ProviderRefreshToken: "rt",
	}, time.Now())
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestFromLoginExpiryPrecedence(t *testing.T) {
	now := time.Now()

	// Explicit event expiry wins.
	rec, err := FromLogin(Login{
		Provider:             ProviderCredentials,
		UserID:               "u1",
		ProviderAccessToken:  "opaque-token",
		ProviderRefreshToken: "rt",
		ExpiresAt:            now.Unix() + 120,
	}, now)
	if err != nil {
		t.Fatalf("FromLogin failed: %v", err)
	}
	if rec.ExpiresAt != now.Unix()+120 {
		t.Fatalf("expected event expiry, got %d", rec.ExpiresAt)
	}

	// JWT exp claim is used when the event is silent.
	exp := now.Add(30 * time.Minute).Unix()
	rec, err = FromLogin(Login{
		Provider:             ProviderCredentials,
		UserID:               "u1",
		ProviderAccessToken:  signTestToken(t, "u1", exp),
		ProviderRefreshToken: "rt",
	}, now)
	if err != nil {
		t.Fatalf("FromLogin failed: %v", err)
	}
	if rec.ExpiresAt != exp {
		t.Fatalf("expected exp claim %d, got %d", exp, rec.ExpiresAt)
	}

	// Opaque token with no event expiry falls back to the default TTL.
	rec, err = FromLogin(Login{
		Provider:             ProviderCredentials,
		UserID:               "u1",
		ProviderAccessToken:  "opaque-token",
		ProviderRefreshToken: "rt",
	}, now)
	if err != nil {
		t.Fatalf("FromLogin failed: %v", err)
	}
	if rec.ExpiresAt != now.Add(DefaultAccessTokenTTL).Unix() {
		t.Fatalf("expected default TTL expiry, got %d", rec.ExpiresAt)
	}
}

func TestFromLoginUserIDFallsBackToSubject(t *testing.T) {
	now := time.Now()
	rec, err := FromLogin(Login{
		Provider:             ProviderGoogle,
		ProviderAccessToken:  signTestToken(t, "subject-7", now.Add(time.Hour).Unix()),
		ProviderRefreshToken: "rt",
	}, now)
	if err != nil {
		t.Fatalf("FromLogin failed: %v", err)
	}
	if rec.UserID != "subject-7" {
		t.Fatalf("expected subject fallback, got %q", rec.UserID)
	}
}

func TestExpiredBoundary(t *testing.T) {
	now := time.Now()
	rec := &Record{ExpiresAt: now.Unix()}

	if !rec.Expired(now) {
		t.Fatal("expected record expired at exact boundary")
	}
	rec.ExpiresAt = now.Unix() + 1
	if rec.Expired(now) {
		t.Fatal("expected record valid one second before expiry")
	}
}

func TestStateClassification(t *testing.T) {
	now := time.Now()

	rec := &Record{ExpiresAt: now.Add(time.Hour).Unix()}
	if got := rec.State(now); got != StatusValid {
		t.Fatalf("expected StatusValid, got %d", got)
	}

	rec.ExpiresAt = now.Add(-time.Hour).Unix()
	if got := rec.State(now); got != StatusExpired {
		t.Fatalf("expected StatusExpired, got %d", got)
	}

	// Failed takes precedence over expiry.
	rec.Error = ErrorRefreshFailed
	if got := rec.State(now); got != StatusFailed {
		t.Fatalf("expected StatusFailed, got %d", got)
	}
}

func TestCloneDeepCopiesSnapshot(t *testing.T) {
	rec := &Record{
		UserID: "u1",
		Authorization: &authz.Snapshot{
			UserID: "u1",
			RoleAssignments: []authz.RoleAssignment{
				{UserID: "u1", RoleID: "admin"},
			},
		},
	}

	clone := rec.Clone()
	clone.Authorization.RoleAssignments[0].RoleID = "viewer"

	if rec.Authorization.RoleAssignments[0].RoleID != "admin" {
		t.Fatal("clone mutation leaked into original snapshot")
	}
}
