package overlay

import (
	"errors"
	"sync"

	"github.com/1broseidon/overlay/internal/platform"
)

// ClassRegistry registers the overlay window class at most once. A
// registration reporting platform.ErrClassExists counts as success.
type ClassRegistry struct {
	mu         sync.Mutex
	registered bool
	register   func() error
}

// NewClassRegistry wraps register with init-once semantics.
func NewClassRegistry(register func() error) *ClassRegistry {
	return &ClassRegistry{register: register}
}

// Ensure registers the class if it is not registered yet. A failed attempt
// leaves the registry unregistered.
func (r *ClassRegistry) Ensure() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registered {
		return nil
	}
	if err := r.register(); err != nil && !errors.Is(err, platform.ErrClassExists) {
		return newWindowCreationError("register window class", err)
	}
	r.registered = true
	return nil
}

var (
	registriesMu sync.Mutex
	registries   = map[platform.Backend]*ClassRegistry{}
)

// registryFor returns the process-wide registry for backend, creating it
// with register on first use. Later callers share the first registration.
func registryFor(backend platform.Backend, register func() error) *ClassRegistry {
	registriesMu.Lock()
	defer registriesMu.Unlock()

	r, ok := registries[backend]
	if !ok {
		r = NewClassRegistry(register)
		registries[backend] = r
	}
	return r
}

// Registered reports whether Ensure has succeeded.
func (r *ClassRegistry) Registered() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registered
}
