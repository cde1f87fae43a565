// Command pkmext-gen writes the build-time version artifact for
// internal/buildinfo from package.json.
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"strconv"
	"text/template"

	"github.com/spf13/pflag"

	"github.com/jupyterlite/pkmext/pkg/manifest"
	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

var artifactTemplate = template.Must(template.New("artifact").Parse(`// Code generated by pkmext-gen. DO NOT EDIT.

package {{ .Package }}

func init() {
	generated = {{ .Version }}
}
`))

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("pkmext-gen", pflag.ContinueOnError)
	manifestPath := fs.String("manifest", manifest.FileName, "Path to the package.json manifest")
	out := fs.String("out", "zz_generated_version.go", "Output file")
	pkg := fs.String("package", "buildinfo", "Package name of the output file")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", pkmerrors.ErrInvalidArguments, err)
	}

	return generate(*manifestPath, *out, *pkg)
}

// generate renders the artifact fully before touching out, so a failure
// never leaves a partial file behind.
func generate(manifestPath, out, pkg string) error {
	m, err := manifest.Read(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	v, err := m.VersionString()
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}

	src, err := render(pkg, v)
	if err != nil {
		return err
	}

	//nolint:gosec // G304 not relevant for client-side generation.
	err = os.WriteFile(out, src, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", pkmerrors.ErrWriteFile, err)
	}

	return nil
}

func render(pkg, version string) ([]byte, error) {
	buf := &bytes.Buffer{}

	err := artifactTemplate.Execute(buf, map[string]string{
		"Package": pkg,
		"Version": strconv.Quote(version),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format source: %w", err)
	}

	return src, nil
}
