package provider

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goSession/credential"
)

// ErrUnknownProvider is returned when no strategy is registered for a
// record's provider tag. The tag enum is closed, so hitting this is a
// configuration fault, not a runtime condition.
var ErrUnknownProvider = errors.New("no refresh strategy for provider")

// ErrDuplicateStrategy is returned when two strategies claim the same
// provider tag.
var ErrDuplicateStrategy = errors.New("refresh strategy already registered")

// Registry routes a provider tag to its refresh strategy. It is populated
// during Build and treated as immutable afterwards.
type Registry struct {
	strategies map[credential.Provider]Strategy
}

// NewRegistry creates an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[credential.Provider]Strategy),
	}
}

// Register adds a strategy under its provider tag.
func (r *Registry) Register(s Strategy) error {
	if s == nil {
		return errors.New("nil refresh strategy")
	}
	name := s.Name()
	if name == "" {
		return errors.New("refresh strategy with empty provider tag")
	}
	if _, exists := r.strategies[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateStrategy, name)
	}
	r.strategies[name] = s
	return nil
}

// Lookup returns the strategy for p.
func (r *Registry) Lookup(p credential.Provider) (Strategy, error) {
	s, ok := r.strategies[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, p)
	}
	return s, nil
}

// Providers returns the registered provider tags.
func (r *Registry) Providers() []credential.Provider {
	out := make([]credential.Provider, 0, len(r.strategies))
	for p := range r.strategies {
		out = append(out, p)
	}
	return out
}
