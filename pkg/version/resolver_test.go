package version_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
	"github.com/jupyterlite/pkmext/pkg/tracing"
	"github.com/jupyterlite/pkmext/pkg/version"
)

func artifact(v string) version.ArtifactSupplier {
	return version.ArtifactSupplier{
		Lookup: func() (string, bool) { return v, v != "" },
	}
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestResolver(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err      error
		artifact string
		manifest *string
		want     string
	}{
		"artifact present": {
			artifact: "2.0.0",
			want:     "2.0.0",
		},
		"artifact present, manifest broken": {
			artifact: "2.0.0",
			manifest: ptr(`{not json`),
			want:     "2.0.0",
		},
		"manifest fallback": {
			manifest: ptr(`{"version": "1.2.3", "private": true}`),
			want:     "1.2.3",
		},
		"example manifest": {
			manifest: ptr(`{"name": "pkm-ext", "version": "0.3.1"}`),
			want:     "0.3.1",
		},
		"manifest missing": {
			err: pkmerrors.ErrFileNotFound,
		},
		"manifest malformed": {
			manifest: ptr(`{"version": 1.2.3}`),
			err:      pkmerrors.ErrMalformedManifest,
		},
		"manifest without version": {
			manifest: ptr(`{"name": "pkm-ext"}`),
			err:      pkmerrors.ErrMissingVersionKey,
		},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// A path that does not exist unless the case writes one, so a
			// present artifact proves the manifest is never consulted.
			manifestPath := filepath.Join(t.TempDir(), "package.json")
			if tc.manifest != nil {
				manifestPath = writeManifest(t, *tc.manifest)
			}

			r := &version.Resolver{
				Suppliers: []version.Supplier{
					artifact(tc.artifact),
					version.ManifestSupplier{Path: manifestPath},
				},
			}

			got, err := r.Resolve()
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				assert.NotErrorIs(t, err, pkmerrors.ErrArtifactNotFound)
				assert.Empty(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolver_AllMissing(t *testing.T) {
	t.Parallel()

	r := &version.Resolver{
		Suppliers: []version.Supplier{artifact(""), artifact("")},
	}

	_, err := r.Resolve()
	require.ErrorIs(t, err, pkmerrors.ErrArtifactNotFound)

	_, err = (&version.Resolver{}).Resolve()
	require.ErrorIs(t, err, pkmerrors.ErrArtifactNotFound)
}

func TestResolver_StopsAtFatal(t *testing.T) {
	t.Parallel()

	var called atomic.Bool

	r := &version.Resolver{
		Suppliers: []version.Supplier{
			supplierFunc(func() (string, error) {
				return "", errors.New("permission denied")
			}),
			supplierFunc(func() (string, error) {
				called.Store(true)

				return "9.9.9", nil
			}),
		},
	}

	_, err := r.Resolve()
	require.Error(t, err)
	assert.False(t, called.Load())
}

func TestCache(t *testing.T) {
	t.Parallel()

	var reads atomic.Int32

	c := version.NewCache(func(path string) version.Supplier {
		return supplierFunc(func() (string, error) {
			reads.Add(1)

			return version.ManifestSupplier{Path: path}.Supply()
		})
	})

	path := writeManifest(t, `{"version": "0.3.1"}`)
	missing := filepath.Join(t.TempDir(), "package.json")

	const n = 20

	var wg sync.WaitGroup
	wg.Add(n)

	for range n {
		go func() {
			defer wg.Done()

			v, err := c.Resolve(path)
			assert.NoError(t, err)
			assert.Equal(t, "0.3.1", v)
		}()
	}

	wg.Wait()

	_, err := c.Resolve(missing)
	require.ErrorIs(t, err, pkmerrors.ErrFileNotFound)

	_, err = c.Resolve(missing)
	require.ErrorIs(t, err, pkmerrors.ErrFileNotFound)

	assert.Equal(t, int32(2), reads.Load())
}

func TestCache_DefaultSupplier(t *testing.T) {
	t.Parallel()

	c := version.NewCache(nil)

	v, err := c.Resolve(writeManifest(t, `{"version": "1.0.0"}`))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
}

type supplierFunc func() (string, error)

func (supplierFunc) Name() string { return "func" }

func (f supplierFunc) Supply() (string, error) { return f() }

func ptr[T any](v T) *T { return &v }

func TestResolver_Logs(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}

	r := &version.Resolver{
		Logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Suppliers: []version.Supplier{
			artifact(""),
			version.ManifestSupplier{Path: writeManifest(t, `{"version": "0.3.1"}`)},
		},
	}

	v, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "0.3.1", v)

	out := buf.String()
	assert.Contains(t, out, "version source unavailable")
	assert.Contains(t, out, "source=artifact")
	assert.Contains(t, out, "operation_name=version.supply")
	assert.Contains(t, out, "version=0.3.1")
}

func TestCache_Tracer(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, `{"version": "0.3.1"}`)

	tr := &countingTracer{}
	c := version.NewCache(nil)
	c.Tracer = tr

	_, err := c.Resolve(path)
	require.NoError(t, err)
	_, err = c.Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, int32(1), tr.spans.Load())
}

type countingTracer struct {
	spans atomic.Int32
}

//nolint:ireturn
func (c *countingTracer) StartSpan(name string) tracing.Span {
	c.spans.Add(1)

	return tracing.NopTracer{}.StartSpan(name)
}
