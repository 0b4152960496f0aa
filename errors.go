package goSession

import "errors"

var (
	// ErrEngineNotReady is returned when a lifecycle hook is invoked on an
	// uninitialized engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrNoCredential is returned when Authenticate is invoked with neither
	// a previous record nor a login event.
	ErrNoCredential = errors.New("no credential record or login event")
	// ErrStoreRequired is returned when a feature that round-trips records
	// is enabled without a token store.
	ErrStoreRequired = errors.New("token store required")
	// ErrNoProviderConfigured is returned by Build when no refresh strategy
	// is enabled or registered.
	ErrNoProviderConfigured = errors.New("at least one provider must be configured")
)
