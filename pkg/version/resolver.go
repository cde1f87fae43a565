package version

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/jupyterlite/pkmext/internal/buildinfo"
	"github.com/jupyterlite/pkmext/pkg/manifest"
	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
	"github.com/jupyterlite/pkmext/pkg/tracing"
)

var (
	_ Supplier = ArtifactSupplier{}
	_ Supplier = ManifestSupplier{}
)

// Supplier is a single source of a version string.
//
// Supply returns an error matching [pkmerrors.ErrArtifactNotFound] when the
// source does not exist; any other error means the source exists but is
// broken.
type Supplier interface {
	Name() string
	Supply() (string, error)
}

// ArtifactSupplier supplies the build-time version.
type ArtifactSupplier struct {
	// Lookup returns the artifact value and whether it exists. Defaults to
	// [buildinfo.Version].
	Lookup func() (string, bool)
}

// Name implements [Supplier].
func (ArtifactSupplier) Name() string {
	return "artifact"
}

// Supply implements [Supplier].
func (s ArtifactSupplier) Supply() (string, error) {
	lookup := s.Lookup
	if lookup == nil {
		lookup = buildinfo.Version
	}

	v, ok := lookup()
	if !ok {
		return "", pkmerrors.ErrArtifactNotFound
	}

	return v, nil
}

// ManifestSupplier supplies the "version" key of a package.json file.
type ManifestSupplier struct {
	Path string
}

// Name implements [Supplier].
func (s ManifestSupplier) Name() string {
	return "manifest " + s.Path
}

// Supply implements [Supplier]. It never returns
// [pkmerrors.ErrArtifactNotFound], so its failures are always fatal.
func (s ManifestSupplier) Supply() (string, error) {
	m, err := manifest.Read(s.Path)
	if err != nil {
		return "", err //nolint:wrapcheck // Already carries the path.
	}

	v, err := m.VersionString()
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.Path, err)
	}

	return v, nil
}

// Resolver tries its suppliers in order.
type Resolver struct {
	// Logger receives debug output. Defaults to [slog.Default].
	Logger *slog.Logger
	// Tracer times each supplier. Defaults to a [tracing.LoggingTracer]
	// writing to Logger.
	Tracer    tracing.Tracer
	Suppliers []Supplier
}

// NewResolver returns the default chain: the build-time artifact, then the
// manifest at manifestPath.
func NewResolver(manifestPath string) *Resolver {
	return &Resolver{
		Suppliers: []Supplier{
			ArtifactSupplier{},
			ManifestSupplier{Path: manifestPath},
		},
	}
}

// Resolve returns the value of the first supplier that has one. Suppliers
// reporting [pkmerrors.ErrArtifactNotFound] are skipped; any other error
// stops resolution and is returned. If every supplier is skipped, the
// returned error matches [pkmerrors.ErrArtifactNotFound].
func (r *Resolver) Resolve() (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := r.Tracer
	if tracer == nil {
		tracer = tracing.NewLoggingTracer(logger)
	}

	var misses *multierror.Error

	for _, s := range r.Suppliers {
		span := tracer.StartSpan("version.supply")
		span.SetBaggageItem("source", s.Name())

		v, err := s.Supply()

		span.Finish()
		if err == nil {
			logger.Debug("resolved version", slog.String("source", s.Name()), slog.String("version", v))

			return v, nil
		}

		if !errors.Is(err, pkmerrors.ErrArtifactNotFound) {
			return "", fmt.Errorf("resolve version from %s: %w", s.Name(), err)
		}

		logger.Debug("version source unavailable", slog.String("source", s.Name()))

		misses = multierror.Append(misses, fmt.Errorf("%s: %w", s.Name(), err))
	}

	if misses == nil {
		return "", fmt.Errorf("resolve version: no sources: %w", pkmerrors.ErrArtifactNotFound)
	}

	return "", fmt.Errorf("resolve version: %w", misses)
}
