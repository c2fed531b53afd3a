package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/svg"
)

// Factory creates a renderer.
type Factory func() svg.Renderer

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for Auto and Default (first available wins).
	backendPriority = []string{Native, OkSVG}
)

// Register registers a backend factory with the given name. It is
// typically called from init functions. A backend registered under an
// existing name replaces it.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a backend with the given name is
// registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns the backend registered under name. Auto returns a renderer
// that falls back through all registered backends.
func Get(name string) (svg.Renderer, error) {
	if name == Auto {
		return fallback{names: order()}, nil
	}

	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	r := factory()
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return r, nil
}

// Default returns the highest priority registered backend, or nil when
// none is registered.
func Default() svg.Renderer {
	for _, name := range order() {
		if r, err := Get(name); err == nil {
			return r
		}
	}
	return nil
}

// order returns the registered names: known priorities first, then the
// rest sorted by name.
func order() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}
