package version

import (
	"fmt"
	"sync"

	"github.com/jupyterlite/pkmext/pkg/manifest"
	"github.com/jupyterlite/pkmext/pkg/paths"
)

var resolveOnce = sync.OnceValues(func() (string, error) {
	p, err := ManifestPath()
	if err != nil {
		return "", err
	}

	return NewResolver(p).Resolve()
})

// Get returns the process-wide version. The first call resolves it; later
// calls return the same value and error without resolving again.
func Get() (string, error) {
	return resolveOnce()
}

// Must is like [Get] but panics if the version cannot be resolved.
func Must() string {
	v, err := Get()
	if err != nil {
		panic(err)
	}

	return v
}

// ManifestPath returns the fallback manifest location: package.json in the
// directory two levels above the directory holding this file.
func ManifestPath() (string, error) {
	p, err := paths.SourceRelative(0, 2, manifest.FileName)
	if err != nil {
		return "", fmt.Errorf("locate manifest: %w", err)
	}

	return p, nil
}
