package goSession

import (
	"github.com/spf13/viper"
)

// Environment keys consumed by [ConfigFromEnv], each prefixed with
// GOSESSION_ (e.g. GOSESSION_GOOGLE_CLIENT_ID).
const (
	envGoogleClientID     = "google_client_id"
	envGoogleClientSecret = "google_client_secret"
	envGoogleTokenURL     = "google_token_url"
	envCredentialsRefresh = "credentials_refresh_url"
	envAuthorizationURL   = "authorization_url"
	envTenantID           = "tenant_id"
	envStoreRedisPrefix   = "store_redis_prefix"
	envRefreshSerialize   = "refresh_serialize"
)

// ConfigFromEnv builds a [Config] from the process environment on top of the
// package defaults. Providers are enabled by the presence of their settings:
// a client id/secret pair enables OAuth2, a refresh URL enables the
// credentials API. The tenant identifier defaults to "default" when unset.
func ConfigFromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix("gosession")
	v.AutomaticEnv()

	defaults := defaultConfig()
	v.SetDefault(envTenantID, defaults.TenantID)
	v.SetDefault(envStoreRedisPrefix, defaults.Store.RedisPrefix)
	v.SetDefault(envRefreshSerialize, defaults.Refresh.SerializeRefresh)

	cfg := defaults
	cfg.TenantID = v.GetString(envTenantID)
	cfg.Store.RedisPrefix = v.GetString(envStoreRedisPrefix)
	cfg.Refresh.SerializeRefresh = v.GetBool(envRefreshSerialize)

	if id, secret := v.GetString(envGoogleClientID), v.GetString(envGoogleClientSecret); id != "" && secret != "" {
		cfg.OAuth2.Enabled = true
		cfg.OAuth2.ClientID = id
		cfg.OAuth2.ClientSecret = secret
		cfg.OAuth2.TokenURL = v.GetString(envGoogleTokenURL)
	}

	if refreshURL := v.GetString(envCredentialsRefresh); refreshURL != "" {
		cfg.CredentialsAPI.Enabled = true
		cfg.CredentialsAPI.RefreshURL = refreshURL
	}

	cfg.Authorization.SnapshotURL = v.GetString(envAuthorizationURL)

	return cfg
}
