package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jupyterlite/pkmext/internal/cli"
	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

const fullManifest = `{
  "name": "@jupyterlite/pkm-extension",
  "version": "0.3.1",
  "description": "Personal Knowledge Management extension for JupyterLite",
  "homepage": "https://github.com/jupyterlite/pkm-extension",
  "license": "BSD-3-Clause",
  "author": {"name": "Project Jupyter"}
}`

func TestManifestShowCmd(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, fullManifest)

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		stdout, stderr, err := execute(t, "manifest", "show", path)
		require.NoError(t, err)
		assert.Empty(t, stderr)
		assert.Contains(t, stdout, "version: 0.3.1\n")
		assert.Contains(t, stdout, "semver: yes\n")
		assert.Contains(t, stdout, "distribution: jupyterlite-pkm-extension\n")
		assert.Contains(t, stdout, "python package: jupyterlite_pkm_extension\n")
		assert.Contains(t, stdout, "author: Project Jupyter\n")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "manifest", "show", path, "-o", "json")
		require.NoError(t, err)

		var got cli.ManifestInfo
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, path, got.Manifest)
		assert.Equal(t, "0.3.1", got.Version)
		assert.Equal(t, "BSD-3-Clause", got.License)
		assert.True(t, got.Semver.Valid)
		assert.Equal(t, uint64(3), got.Semver.Minor)
	})

	t.Run("lenient version", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(t, "manifest", "show", writeManifest(t, `{"version": "nightly"}`))
		require.NoError(t, err)
		assert.Contains(t, stdout, "version: nightly\n")
		assert.Contains(t, stdout, "semver: no\n")
	})

	t.Run("missing version key", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "manifest", "show", writeManifest(t, `{}`))
		require.ErrorIs(t, err, pkmerrors.ErrMissingVersionKey)
	})
}

func TestManifestSchemaCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "manifest", "schema")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []any{"version"}, got["required"])
	assert.Contains(t, got["properties"], "version")
}
