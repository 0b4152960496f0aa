package goSession

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/MrEthical07/goSession/authz"
	"github.com/MrEthical07/goSession/credential"
	"github.com/MrEthical07/goSession/provider"
)

// Builder defines a public type used by goSession APIs.
//
// Builder instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	redis      redis.UniversalClient
	store      TokenStore
	strategies []provider.Strategy
	httpClient *http.Client
	auditSink  AuditSink
	logger     *slog.Logger

	built bool
}

// New creates a [Builder] seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis wires a Redis client. Build constructs a [credential.Store] from
// it for record persistence and, when refresh serialization is enabled, lock
// management.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithTokenStore wires a custom [TokenStore], overriding the Redis-backed
// store. If the store also implements [RefreshLocker] it is used for refresh
// serialization.
func (b *Builder) WithTokenStore(store TokenStore) *Builder {
	b.store = store
	return b
}

// WithStrategy registers a custom refresh strategy alongside the ones built
// from config. Registering a strategy for an already-covered provider is a
// Build error.
func (b *Builder) WithStrategy(s provider.Strategy) *Builder {
	b.strategies = append(b.strategies, s)
	return b
}

// WithHTTPClient overrides the transport used by the built-in strategies and
// the authorization client. Nil keeps per-component dedicated clients.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink wires the sink that receives audit events when auditing is
// enabled.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger overrides the engine logger. Nil uses slog.Default.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles the in-process metrics system.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the refresh latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and assembles the [Engine]. A builder
// can be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := provider.NewRegistry()

	if cfg.OAuth2.Enabled {
		s := provider.NewOAuth2Strategy(provider.OAuth2Config{
			ClientID:       cfg.OAuth2.ClientID,
			ClientSecret:   cfg.OAuth2.ClientSecret,
			TokenURL:       cfg.OAuth2.TokenURL,
			RequestTimeout: cfg.OAuth2.RequestTimeout,
			HTTPClient:     b.httpClient,
		})
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}

	if cfg.CredentialsAPI.Enabled {
		s := provider.NewCredentialsAPIStrategy(provider.CredentialsAPIConfig{
			RefreshURL:     cfg.CredentialsAPI.RefreshURL,
			TenantID:       cfg.TenantID,
			RequestTimeout: cfg.CredentialsAPI.RequestTimeout,
			HTTPClient:     b.httpClient,
		})
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}

	for _, s := range b.strategies {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}

	if len(registry.Providers()) == 0 {
		return nil, ErrNoProviderConfigured
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	var authzClient *authz.Client
	if cfg.Authorization.SnapshotURL != "" {
		authzClient = authz.NewClient(authz.ClientConfig{
			SnapshotURL:  cfg.Authorization.SnapshotURL,
			TenantID:     cfg.TenantID,
			FetchTimeout: cfg.Authorization.FetchTimeout,
			HTTPClient:   b.httpClient,
			Logger:       logger,
		})
	}

	store := b.store
	var locker RefreshLocker
	if store == nil && b.redis != nil {
		redisStore := credential.NewStore(b.redis, cfg.Store.RedisPrefix, cfg.Store.RecordTTL)
		store = redisStore
		locker = redisStore
	}
	if locker == nil {
		if l, ok := store.(RefreshLocker); ok {
			locker = l
		}
	}
	if cfg.Refresh.SerializeRefresh && locker == nil {
		return nil, ErrStoreRequired
	}

	engine := &Engine{
		config:      cfg,
		registry:    registry,
		authzClient: authzClient,
		store:       store,
		locker:      locker,
		audit:       newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:     NewMetrics(cfg.Metrics),
		logger:      logger,
	}

	b.built = true
	return engine, nil
}
