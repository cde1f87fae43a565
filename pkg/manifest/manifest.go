package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

// FileName is the manifest file name.
const FileName = "package.json"

// VersionKey is the manifest key holding the version string.
const VersionKey = "version"

// Manifest is the subset of package.json consulted by this module.
type Manifest struct {
	// Extra holds every top-level key, including the interpreted ones.
	Extra map[string]json.RawMessage `json:"-"`

	// Name is the npm package name, e.g. "@jupyterlite/pkm-extension".
	Name string `json:"name,omitempty"`
	// Version is the package version. It is trusted verbatim.
	Version string `json:"version" jsonschema:"minLength=1"`
	// Description is a one-line summary of the package.
	Description string `json:"description,omitempty"`
	// Homepage is the project URL.
	Homepage string `json:"homepage,omitempty"`
	// License is an SPDX license expression.
	License string `json:"license,omitempty"`
	// Author is the package author.
	Author Author `json:"author,omitempty"`
}

// Read opens the manifest at path, reads it fully and parses it. The file is
// always closed before Read returns.
func Read(path string) (*Manifest, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is the manifest location.
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", pkmerrors.ErrFileNotFound, err)
		}

		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle.

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse parses a manifest document. The document must be a JSON object.
// Known keys with unexpected types are left at their zero value, except for
// "version", which is checked by [Manifest.VersionString].
func Parse(data []byte) (*Manifest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top-level value is not an object", pkmerrors.ErrMalformedManifest)
	}

	fields := map[string]json.RawMessage{}

	err := json.Unmarshal(trimmed, &fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pkmerrors.ErrMalformedManifest, err)
	}

	m := &Manifest{
		Extra:       fields,
		Name:        lookupString(fields, "name"),
		Version:     lookupString(fields, VersionKey),
		Description: lookupString(fields, "description"),
		Homepage:    lookupString(fields, "homepage"),
		License:     lookupString(fields, "license"),
	}

	if raw, ok := fields["author"]; ok {
		var a Author
		if json.Unmarshal(raw, &a) == nil {
			m.Author = a
		}
	}

	return m, nil
}

// VersionString returns the value of the "version" key. An absent, null or
// empty value yields [pkmerrors.ErrMissingVersionKey]; a value that is not a
// string yields [pkmerrors.ErrMalformedManifest].
func (m *Manifest) VersionString() (string, error) {
	raw, ok := m.Extra[VersionKey]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return "", fmt.Errorf("%w: %q", pkmerrors.ErrMissingVersionKey, VersionKey)
	}

	var v string

	err := json.Unmarshal(raw, &v)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a string: %s", pkmerrors.ErrMalformedManifest, VersionKey, raw)
	}

	if v == "" {
		return "", fmt.Errorf("%w: %q is empty", pkmerrors.ErrMissingVersionKey, VersionKey)
	}

	return v, nil
}

// DistributionName returns the Python distribution name derived from the npm
// name: the scope marker is dropped and the scope separator becomes a dash.
func (m *Manifest) DistributionName() string {
	return strings.ReplaceAll(strings.ReplaceAll(m.Name, "@", ""), "/", "-")
}

// PythonPackage returns the importable Python package name for the
// distribution, e.g. "jupyterlite_pkm_extension".
func (m *Manifest) PythonPackage() string {
	return strcase.ToSnake(m.DistributionName())
}

func lookupString(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}

	return s
}
