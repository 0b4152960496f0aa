package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrEthical07/goSession/credential"
)

const defaultGoogleTokenURL = "https://oauth2.googleapis.com/token"

// OAuth2Config configures an [OAuth2Strategy].
type OAuth2Config struct {
	ClientID     string
	ClientSecret string

	// TokenURL overrides the token endpoint. Empty defaults to Google's.
	TokenURL string

	// RequestTimeout bounds each refresh call. Zero defaults to
	// [DefaultRequestTimeout].
	RequestTimeout time.Duration

	// HTTPClient overrides the transport. Nil uses a dedicated client.
	HTTPClient *http.Client
}

// OAuth2Strategy refreshes through an OAuth2-style token endpoint with the
// refresh_token grant. Rotation is provider-optional: the refresh token is
// replaced only when the response includes a new one.
type OAuth2Strategy struct {
	config OAuth2Config
	http   *http.Client
}

// NewOAuth2Strategy creates an [OAuth2Strategy] from cfg, filling the token
// URL, timeout, and transport defaults.
func NewOAuth2Strategy(cfg OAuth2Config) *OAuth2Strategy {
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultGoogleTokenURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &OAuth2Strategy{config: cfg, http: client}
}

// Name returns [credential.ProviderGoogle].
func (s *OAuth2Strategy) Name() credential.Provider {
	return credential.ProviderGoogle
}

type oauth2TokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

type oauth2ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Refresh posts the refresh_token grant to the token endpoint. A non-2xx
// response, a transport failure, or a success response without an access
// token is a [*RefreshError]. On success the new expiry is now + expires_in.
func (s *OAuth2Strategy) Refresh(ctx context.Context, refreshToken string) (*Result, error) {
	if s.config.ClientID == "" || s.config.ClientSecret == "" {
		return nil, ErrMissingClientCredentials
	}
	if refreshToken == "" {
		return nil, ErrMissingRefreshToken
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	form := url.Values{
		"client_id":     {s.config.ClientID},
		"client_secret": {s.config.ClientSecret},
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, s.wireError(0, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, s.wireError(0, fmt.Sprintf("token request: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.wireError(resp.StatusCode, fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		var oe oauth2ErrorResponse
		if json.Unmarshal(body, &oe) == nil && oe.Error != "" {
			msg = oe.Error
			if oe.ErrorDescription != "" {
				msg += ": " + oe.ErrorDescription
			}
		}
		return nil, s.wireError(resp.StatusCode, msg)
	}

	var tr oauth2TokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, s.wireError(resp.StatusCode, fmt.Sprintf("parse response: %v", err))
	}
	if tr.AccessToken == "" {
		return nil, s.wireError(resp.StatusCode, "response missing access token")
	}

	return &Result{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second).Unix(),
	}, nil
}

func (s *OAuth2Strategy) wireError(status int, msg string) *RefreshError {
	return &RefreshError{
		Provider:   credential.ProviderGoogle,
		StatusCode: status,
		Message:    msg,
	}
}
