package registry

import (
	"fmt"

	"github.com/rios0rios0/depaudit/config"
	"github.com/rios0rios0/depaudit/domain"
)

// Registry manages all registered searcher implementations.
type Registry struct {
	factories map[string]Factory
}

// Factory is a constructor function that creates a RegistrySearcher from a
// registry configuration.
type Factory func(cfg config.RegistryConfig) (domain.RegistrySearcher, error)

// NewRegistry creates an empty searcher registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a searcher factory under the given type name (e.g. "npm").
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// Get returns a configured searcher for the given registry configuration.
func (r *Registry) Get(cfg config.RegistryConfig) (domain.RegistrySearcher, error) {
	factory, ok := r.factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown registry type: %q", cfg.Type)
	}
	return factory(cfg)
}

// Names returns the list of registered searcher type names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
