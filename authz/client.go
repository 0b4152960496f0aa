package authz

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds a single snapshot fetch. The request is aborted
// when the deadline passes; the caller sees nil, never a hung request.
const DefaultFetchTimeout = 5 * time.Second

const defaultTenantID = "default"

// ClientConfig configures a snapshot [Client].
type ClientConfig struct {
	// SnapshotURL is the full URL of the authorization snapshot endpoint.
	SnapshotURL string

	// TenantID is sent as the X-Tenant-ID header. Empty defaults to "default".
	TenantID string

	// FetchTimeout bounds each fetch. Zero defaults to [DefaultFetchTimeout].
	FetchTimeout time.Duration

	// HTTPClient overrides the transport. Nil uses a dedicated client.
	HTTPClient *http.Client

	// Logger receives fetch-failure warnings. Nil uses slog.Default.
	Logger *slog.Logger
}

// Client fetches authorization snapshots with a bearer token and tenant
// header. Fetch failures are logged and reported as nil; the session layer
// must never fail because authorization is unavailable.
type Client struct {
	url      string
	tenantID string
	timeout  time.Duration
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a snapshot [Client] from cfg, filling defaults for the
// tenant, timeout, transport, and logger.
func NewClient(cfg ClientConfig) *Client {
	if cfg.TenantID == "" {
		cfg.TenantID = defaultTenantID
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		url:      cfg.SnapshotURL,
		tenantID: cfg.TenantID,
		timeout:  cfg.FetchTimeout,
		http:     cfg.HTTPClient,
		logger:   cfg.Logger,
	}
}

// Fetch retrieves the authorization snapshot for the given bearer token.
// Any failure — timeout, non-2xx status, unreadable or malformed body —
// returns nil. The previous snapshot, if any, stays in effect at the caller.
func (c *Client) Fetch(ctx context.Context, accessToken string) *Snapshot {
	if c == nil || c.url == "" || accessToken == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.warn("authorization request build failed", err)
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Tenant-ID", c.tenantID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.warn("authorization fetch failed", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("authorization fetch returned non-success status",
			slog.Int("status", resp.StatusCode),
		)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.warn("authorization response read failed", err)
		return nil
	}

	var snap Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		c.warn("authorization response parse failed", err)
		return nil
	}

	return &snap
}

func (c *Client) warn(msg string, err error) {
	c.logger.Warn(msg, slog.String("error", err.Error()))
}
