package adapter

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps backend type names to adapter factories. A fresh adapter
// instance is handed out per Get so connections are never shared between
// stores.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]func() Adapter
}

// NewRegistry creates a registry with the built-in adapters registered
// under their canonical names and common aliases.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]func() Adapter)}

	for _, name := range []string{"postgresql", "postgres"} {
		r.Register(name, func() Adapter { return NewPostgreSQLAdapter() })
	}
	r.Register("mysql", func() Adapter { return NewMySQLAdapter() })
	for _, name := range []string{"sqlite", "sqlite3"} {
		r.Register(name, func() Adapter { return NewSQLiteAdapter() })
	}

	return r
}

// Register registers an adapter factory under name, replacing any
// previous registration.
func (r *Registry) Register(name string, factory func() Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get builds a fresh adapter for name.
func (r *Registry) Get(name string) (Adapter, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("adapter %q not registered (have %s)",
			name, strings.Join(r.List(), ", "))
	}
	return factory(), nil
}

// List returns the registered adapter names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists reports whether an adapter is registered under name.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// defaultRegistry serves config-driven adapter resolution. Custom
// adapters belong on a caller-owned Registry.
var defaultRegistry = NewRegistry()

// Get builds an adapter from the default registry.
func Get(name string) (Adapter, error) {
	return defaultRegistry.Get(name)
}

// Exists reports whether the default registry knows name.
func Exists(name string) bool {
	return defaultRegistry.Exists(name)
}
