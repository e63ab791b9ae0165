package physics

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrUnknownBackend is returned when opening a backend which was
	// never registered, usually because the binary was built without
	// the backend's build tag
	ErrUnknownBackend = errors.New("unknown physics backend")

	// ErrUnknownBody is returned by backends when a body name does not
	// exist in the loaded model
	ErrUnknownBody = errors.New("no such body")
)

// Opener opens a Simulator for a base environment configuration
type Opener func(c Config) (Simulator, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Opener)
)

// Register makes a backend available under the given name. Register
// panics if called twice with the same name or with a nil Opener.
func Register(name string, open Opener) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if open == nil {
		panic("register: nil physics backend opener")
	}
	if _, dup := backends[name]; dup {
		panic(fmt.Sprintf("register: physics backend %v registered twice",
			name))
	}
	backends[name] = open
}

// Open opens a Simulator using the backend registered under name
func Open(name string, c Config) (Simulator, error) {
	backendsMu.RLock()
	open, ok := backends[name]
	backendsMu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrUnknownBackend, "open: %q (have %v)",
			name, Backends())
	}

	sim, err := open(c)
	if err != nil {
		return nil, errors.Wrapf(err, "open: backend %q", name)
	}
	return sim, nil
}

// Backends returns the sorted names of all registered backends
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := maps.Keys(backends)
	slices.Sort(names)
	return names
}
