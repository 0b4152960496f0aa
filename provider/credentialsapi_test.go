package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newCredentialsAPITest(t *testing.T, handler http.HandlerFunc) (*CredentialsAPIStrategy, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	s := NewCredentialsAPIStrategy(CredentialsAPIConfig{
		RefreshURL: srv.URL,
		TenantID:   "t1",
	})
	return s, srv.Close
}

func TestCredentialsAPIRefreshRotatesUnconditionally(t *testing.T) {
	s, done := newCredentialsAPITest(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Tenant-ID"); got != "t1" {
			t.Errorf("expected tenant header t1, got %q", got)
		}
		var body credentialsRefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.RefreshToken != "rt-old" {
			t.Errorf("expected rt-old, got %q", body.RefreshToken)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at-new",
			"refresh_token": "rt-new",
			"token_type":    "bearer",
		})
	})
	defer done()

	before := time.Now().Unix()
	res, err := s.Refresh(context.Background(), "rt-old")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if res.AccessToken != "at-new" || res.RefreshToken != "rt-new" {
		t.Fatalf("unexpected tokens: %+v", res)
	}
	if res.ExpiresAt < before+3590 || res.ExpiresAt > time.Now().Unix()+3610 {
		t.Fatalf("expected fixed 1h expiry, got %d", res.ExpiresAt)
	}
}

func TestCredentialsAPIRefreshMissingRotationIsWireError(t *testing.T) {
	s, done := newCredentialsAPITest(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "at-new"})
	})
	defer done()

	_, err := s.Refresh(context.Background(), "rt")
	var re *RefreshError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RefreshError for missing refresh token, got %v", err)
	}
}

func TestCredentialsAPIRefreshSurfacesPasswordChange(t *testing.T) {
	s, done := newCredentialsAPITest(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":             "at-new",
			"refresh_token":            "rt-new",
			"password_change_required": true,
		})
	})
	defer done()

	res, err := s.Refresh(context.Background(), "rt")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if !res.PasswordChangeRequired {
		t.Fatal("expected password change flag to surface")
	}
}

func TestCredentialsAPIRefreshNon2xx(t *testing.T) {
	s, done := newCredentialsAPITest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("refresh token revoked"))
	})
	defer done()

	_, err := s.Refresh(context.Background(), "rt")
	var re *RefreshError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RefreshError, got %v", err)
	}
	if re.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", re.StatusCode)
	}
	if re.Message != "refresh token revoked" {
		t.Fatalf("unexpected message %q", re.Message)
	}
}

func TestCredentialsAPIRefreshEmptyRefreshTokenPrecondition(t *testing.T) {
	s := NewCredentialsAPIStrategy(CredentialsAPIConfig{RefreshURL: "http://localhost:0"})
	if _, err := s.Refresh(context.Background(), ""); !errors.Is(err, ErrMissingRefreshToken) {
		t.Fatalf("expected ErrMissingRefreshToken, got %v", err)
	}
}
