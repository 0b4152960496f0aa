package goSession

import "testing"

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg := ConfigFromEnv()

	if cfg.TenantID != "default" {
		t.Fatalf("expected default tenant, got %q", cfg.TenantID)
	}
	if cfg.OAuth2.Enabled || cfg.CredentialsAPI.Enabled {
		t.Fatal("expected providers disabled with no environment")
	}
	if cfg.Authorization.SnapshotURL != "" {
		t.Fatalf("expected authorization disabled, got %q", cfg.Authorization.SnapshotURL)
	}
}

func TestConfigFromEnvEnablesProvidersByPresence(t *testing.T) {
	t.Setenv("GOSESSION_GOOGLE_CLIENT_ID", "client-id")
	t.Setenv("GOSESSION_GOOGLE_CLIENT_SECRET", "client-secret")
	t.Setenv("GOSESSION_CREDENTIALS_REFRESH_URL", "http://credentials.internal/refresh")
	t.Setenv("GOSESSION_AUTHORIZATION_URL", "http://authz.internal/snapshot")
	t.Setenv("GOSESSION_TENANT_ID", "acme")
	t.Setenv("GOSESSION_REFRESH_SERIALIZE", "true")

	cfg := ConfigFromEnv()

	if !cfg.OAuth2.Enabled || cfg.OAuth2.ClientID != "client-id" {
		t.Fatalf("expected OAuth2 enabled from env, got %+v", cfg.OAuth2)
	}
	if !cfg.CredentialsAPI.Enabled || cfg.CredentialsAPI.RefreshURL != "http://credentials.internal/refresh" {
		t.Fatalf("expected credentials API enabled from env, got %+v", cfg.CredentialsAPI)
	}
	if cfg.Authorization.SnapshotURL != "http://authz.internal/snapshot" {
		t.Fatalf("expected authorization URL from env, got %q", cfg.Authorization.SnapshotURL)
	}
	if cfg.TenantID != "acme" {
		t.Fatalf("expected tenant from env, got %q", cfg.TenantID)
	}
	if !cfg.Refresh.SerializeRefresh {
		t.Fatal("expected refresh serialization enabled from env")
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("env config should validate, got %v", err)
	}
}

func TestConfigFromEnvPartialOAuth2StaysDisabled(t *testing.T) {
	t.Setenv("GOSESSION_GOOGLE_CLIENT_ID", "client-id")

	cfg := ConfigFromEnv()
	if cfg.OAuth2.Enabled {
		t.Fatal("expected OAuth2 disabled without a client secret")
	}
}
