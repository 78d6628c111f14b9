// Package backends keeps the set of web view backends compiled into the
// binary. Backend packages register themselves from init, the same way
// database/sql drivers do; import them for their side effects.
package backends

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/plugview/internal/application/port"
)

// Default is the backend used when none is configured.
const Default = "headless"

// ErrUnknownBackend is returned by Lookup for unregistered names.
var ErrUnknownBackend = errors.New("unknown web view backend")

var (
	mu        sync.RWMutex
	factories = make(map[string]port.BackendFactory)
)

// Register makes a backend factory available by its name.
// It panics if the factory is nil or the name is already taken.
func Register(f port.BackendFactory) {
	if f == nil {
		panic("backends: Register factory is nil")
	}
	name := f.Name()
	if name == "" {
		panic("backends: Register factory has an empty name")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[name]; dup {
		panic("backends: Register called twice for backend " + name)
	}
	factories[name] = f
}

// Lookup returns the factory registered under name. An empty name selects
// Default.
func Lookup(name string) (port.BackendFactory, error) {
	if name == "" {
		name = Default
	}

	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (compiled in: %v)", ErrUnknownBackend, name, Names())
	}
	return f, nil
}

// Names returns the sorted names of the registered backends.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HostDriver returns the factory's host driver when it has one.
func HostDriver(f port.BackendFactory) (port.HostDriver, bool) {
	d, ok := f.(port.HostDriver)
	return d, ok
}
