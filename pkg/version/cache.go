package version

import (
	"path/filepath"
	"sync"

	"github.com/jupyterlite/pkmext/pkg/syncs"
	"github.com/jupyterlite/pkmext/pkg/tracing"
)

// Cache resolves versions per manifest path, at most once per path.
// Concurrent calls for the same path wait for the first one; calls for
// different paths run in parallel. Supplier attempts are not traced unless
// Tracer is set.
type Cache struct {
	// Tracer times each resolution. Defaults to [tracing.NopTracer].
	Tracer      tracing.Tracer
	newSupplier func(path string) Supplier
	entries     map[string]cacheEntry
	locks       syncs.KeyLock
	mu          sync.RWMutex
}

type cacheEntry struct {
	err     error
	version string
}

// NewCache creates a [Cache]. newSupplier builds the supplier for a path; if
// nil, a [ManifestSupplier] is used.
func NewCache(newSupplier func(path string) Supplier) *Cache {
	if newSupplier == nil {
		newSupplier = func(path string) Supplier {
			return ManifestSupplier{Path: path}
		}
	}

	return &Cache{
		newSupplier: newSupplier,
		entries:     make(map[string]cacheEntry),
	}
}

// Resolve returns the version for path, resolving it on first use. Errors
// are cached along with values.
func (c *Cache) Resolve(path string) (string, error) {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	c.locks.Lock(key)
	defer c.locks.Unlock(key)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		return e.version, e.err
	}

	tracer := c.Tracer
	if tracer == nil {
		tracer = tracing.NopTracer{}
	}

	r := &Resolver{
		Tracer:    tracer,
		Suppliers: []Supplier{c.newSupplier(key)},
	}
	v, err := r.Resolve()

	c.mu.Lock()
	c.entries[key] = cacheEntry{version: v, err: err}
	c.mu.Unlock()

	return v, err
}
