package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MrEthical07/goSession/credential"
)

// credentialsTokenLifetime is the fixed expiry window applied to tokens
// minted by the credentials API; its refresh endpoint does not report an
// expires_in of its own.
const credentialsTokenLifetime = time.Hour

// CredentialsAPIConfig configures a [CredentialsAPIStrategy].
type CredentialsAPIConfig struct {
	// RefreshURL is the full URL of the dedicated refresh endpoint.
	RefreshURL string

	// TenantID is sent as the X-Tenant-ID header. Empty defaults to
	// "default".
	TenantID string

	// RequestTimeout bounds each refresh call. Zero defaults to
	// [DefaultRequestTimeout].
	RequestTimeout time.Duration

	// HTTPClient overrides the transport. Nil uses a dedicated client.
	HTTPClient *http.Client
}

// CredentialsAPIStrategy refreshes through the first-party credentials API.
// Rotation is unconditional: every successful response replaces the refresh
// token, with no fallback to the old one.
type CredentialsAPIStrategy struct {
	config CredentialsAPIConfig
	http   *http.Client
}

// NewCredentialsAPIStrategy creates a [CredentialsAPIStrategy] from cfg,
// filling the tenant, timeout, and transport defaults.
func NewCredentialsAPIStrategy(cfg CredentialsAPIConfig) *CredentialsAPIStrategy {
	if cfg.TenantID == "" {
		cfg.TenantID = "default"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &CredentialsAPIStrategy{config: cfg, http: client}
}

// Name returns [credential.ProviderCredentials].
func (s *CredentialsAPIStrategy) Name() credential.Provider {
	return credential.ProviderCredentials
}

type credentialsRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type credentialsRefreshResponse struct {
	AccessToken            string `json:"access_token"`
	RefreshToken           string `json:"refresh_token"`
	TokenType              string `json:"token_type"`
	PasswordChangeRequired bool   `json:"password_change_required"`
}

// Refresh posts the refresh token to the refresh endpoint with the tenant
// header. A non-2xx response carries its HTTP status in the returned
// [*RefreshError]. Expiry defaults to a fixed 1-hour window.
func (s *CredentialsAPIStrategy) Refresh(ctx context.Context, refreshToken string) (*Result, error) {
	if refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	payload, err := json.Marshal(credentialsRefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, s.wireError(0, fmt.Sprintf("encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.RefreshURL, bytes.NewReader(payload))
	if err != nil {
		return nil, s.wireError(0, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", s.config.TenantID)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, s.wireError(0, fmt.Sprintf("refresh request: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.wireError(resp.StatusCode, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.wireError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rr credentialsRefreshResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, s.wireError(resp.StatusCode, fmt.Sprintf("parse response: %v", err))
	}
	if rr.AccessToken == "" {
		return nil, s.wireError(resp.StatusCode, "response missing access token")
	}
	// Rotation is mandatory for this provider; a response without a refresh
	// token would leave the record unable to refresh again.
	if rr.RefreshToken == "" {
		return nil, s.wireError(resp.StatusCode, "response missing refresh token")
	}

	return &Result{
		AccessToken:            rr.AccessToken,
		RefreshToken:           rr.RefreshToken,
		ExpiresAt:              time.Now().Add(credentialsTokenLifetime).Unix(),
		PasswordChangeRequired: rr.PasswordChangeRequired,
	}, nil
}

func (s *CredentialsAPIStrategy) wireError(status int, msg string) *RefreshError {
	return &RefreshError{
		Provider:   credential.ProviderCredentials,
		StatusCode: status,
		Message:    msg,
	}
}
