// Package buildinfo holds the build-time version artifact.
//
// The value is set either with
//
//	go build -ldflags "-X github.com/jupyterlite/pkmext/internal/buildinfo.version=x.y.z"
//
// or by the generated zz_generated_version.go written by cmd/pkmext-gen. A
// development checkout has neither, and callers fall back to package.json.
package buildinfo

//go:generate go run ../../cmd/pkmext-gen --manifest ../../package.json --out zz_generated_version.go

// version is injected via -ldflags and takes precedence over generated.
var version string

// generated is assigned by zz_generated_version.go, when present.
var generated string

// Version returns the build-time version and whether one was set.
func Version() (string, bool) {
	if version != "" {
		return version, true
	}

	if generated != "" {
		return generated, true
	}

	return "", false
}
