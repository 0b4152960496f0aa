package goSession

import (
	"errors"
	"time"
)

// Config defines a public type used by goSession APIs.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Config struct {
	TenantID string

	OAuth2         OAuth2Config
	CredentialsAPI CredentialsAPIConfig
	Authorization  AuthorizationConfig
	Store          StoreConfig
	Refresh        RefreshConfig
	Audit          AuditConfig
	Metrics        MetricsConfig
}

/*
====================================
PROVIDER CONFIG
====================================
*/

// OAuth2Config enables the OAuth2-style (google) refresh strategy.
type OAuth2Config struct {
	Enabled      bool
	ClientID     string
	ClientSecret string
	// TokenURL overrides the token endpoint; empty uses the Google default.
	TokenURL       string
	RequestTimeout time.Duration
}

// CredentialsAPIConfig enables the first-party credentials-API refresh
// strategy.
type CredentialsAPIConfig struct {
	Enabled        bool
	RefreshURL     string
	RequestTimeout time.Duration
}

/*
====================================
AUTHORIZATION CONFIG
====================================
*/

// AuthorizationConfig controls the authorization snapshot overlay.
type AuthorizationConfig struct {
	// SnapshotURL is the authorization service endpoint. Empty disables the
	// overlay entirely; sessions then project without authorization data.
	SnapshotURL  string
	FetchTimeout time.Duration
	SnapshotTTL  time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig controls the Redis-backed token store created by
// [Builder.WithRedis].
type StoreConfig struct {
	RedisPrefix string
	RecordTTL   time.Duration
}

// RefreshConfig controls refresh serialization across concurrent requests.
type RefreshConfig struct {
	// SerializeRefresh takes a short-lived per-user lock in the token store
	// before refreshing, so two requests racing on the same expired record
	// cannot both rotate the refresh token. When the lock is contended the
	// hook returns the record unchanged and the next request retries.
	SerializeRefresh bool
	LockTTL          time.Duration
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process metrics system.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration the builder starts from: default
// tenant, all providers disabled, authorization overlay disabled, 30-day
// record retention.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		TenantID: "default",
		OAuth2: OAuth2Config{
			Enabled:        false,
			RequestTimeout: 10 * time.Second,
		},
		CredentialsAPI: CredentialsAPIConfig{
			Enabled:        false,
			RequestTimeout: 10 * time.Second,
		},
		Authorization: AuthorizationConfig{
			FetchTimeout: 5 * time.Second,
			SnapshotTTL:  5 * time.Minute,
		},
		Store: StoreConfig{
			RedisPrefix: "cr",
			RecordTTL:   30 * 24 * time.Hour,
		},
		Refresh: RefreshConfig{
			SerializeRefresh: false,
			LockTTL:          10 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate returns an error for any combination of settings that would make
// the engine misbehave at runtime; these are deployment faults, not
// conditions to recover from.
func (c *Config) Validate() error {
	if c.TenantID == "" {
		return errors.New("TenantID must not be empty")
	}

	if c.OAuth2.Enabled {
		if c.OAuth2.ClientID == "" || c.OAuth2.ClientSecret == "" {
			return errors.New("OAuth2 requires ClientID and ClientSecret")
		}
		if c.OAuth2.RequestTimeout <= 0 {
			return errors.New("OAuth2 RequestTimeout must be > 0")
		}
	}

	if c.CredentialsAPI.Enabled {
		if c.CredentialsAPI.RefreshURL == "" {
			return errors.New("CredentialsAPI requires RefreshURL")
		}
		if c.CredentialsAPI.RequestTimeout <= 0 {
			return errors.New("CredentialsAPI RequestTimeout must be > 0")
		}
	}

	if c.Authorization.SnapshotURL != "" {
		if c.Authorization.FetchTimeout <= 0 {
			return errors.New("Authorization FetchTimeout must be > 0")
		}
		if c.Authorization.SnapshotTTL <= 0 {
			return errors.New("Authorization SnapshotTTL must be > 0")
		}
	}

	if c.Store.RecordTTL <= 0 {
		return errors.New("Store RecordTTL must be > 0")
	}

	if c.Refresh.SerializeRefresh && c.Refresh.LockTTL <= 0 {
		return errors.New("Refresh LockTTL must be > 0 when SerializeRefresh is enabled")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0")
	}

	return nil
}
