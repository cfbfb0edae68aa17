package parcel

import (
	"fmt"
	"sort"
	"sync"
)

// DecodeFunc rebuilds one value from r.
type DecodeFunc func(r *Reader) (any, error)

// Registry maps a type name to the function that decodes it.
type Registry struct {
	mu       sync.RWMutex
	creators map[string]DecodeFunc
}

// Default is the process-wide registry. Packages add to it from init only.
var Default = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{creators: make(map[string]DecodeFunc)}
}

// Register binds name to fn. A name can be bound once.
func (g *Registry) Register(name string, fn DecodeFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("parcel: register requires name and decoder")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.creators[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCreator, name)
	}
	g.creators[name] = fn
	return nil
}

// MustRegister is Register for use from init.
func (g *Registry) MustRegister(name string, fn DecodeFunc) {
	if err := g.Register(name, fn); err != nil {
		panic(err)
	}
}

func (g *Registry) Lookup(name string) (DecodeFunc, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn, ok := g.creators[name]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (g *Registry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.creators))
	for name := range g.creators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DecodeNamed decodes the next value from r with the creator bound to name.
func (g *Registry) DecodeNamed(name string, r *Reader) (any, error) {
	fn, ok := g.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCreator, name)
	}
	return fn(r)
}
