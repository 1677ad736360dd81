package algorithm

import (
	"fmt"
	"sort"
	"sync"
)

// Constructor builds a fresh, unconfigured algorithm instance
type Constructor func() Algorithm

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Constructor)
)

// Register makes a variant available by name. Registering the same name
// twice panics; it is meant to be called from init.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if ctor == nil {
		panic("algorithm: Register constructor is nil")
	}
	if _, dup := registry[name]; dup {
		panic("algorithm: Register called twice for " + name)
	}
	registry[name] = ctor
}

// New creates an instance of the named variant
func New(name string) (Algorithm, error) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return ctor(), nil
}

// Names returns the registered variant names, sorted
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
