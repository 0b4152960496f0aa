package goSession

import "context"

type tenantIDContextKey struct{}
type sessionIDContextKey struct{}

// WithTenantID attaches a tenant identifier to ctx for store key isolation
// and audit attribution. When unset, the configured default tenant is used.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDContextKey{}, tenantID)
}

// WithSessionID attaches the opaque session identifier to ctx for audit
// attribution.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, sessionID)
}

// TenantIDFromContext returns the tenant attached by [WithTenantID], or
// fallback when absent.
func TenantIDFromContext(ctx context.Context, fallback string) string {
	if ctx == nil {
		return fallback
	}

	tenantID, _ := ctx.Value(tenantIDContextKey{}).(string)
	if tenantID == "" {
		return fallback
	}
	return tenantID
}

func sessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	sessionID, _ := ctx.Value(sessionIDContextKey{}).(string)
	return sessionID
}
