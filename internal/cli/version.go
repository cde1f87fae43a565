package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jupyterlite/pkmext/pkg/manifest"
	"github.com/jupyterlite/pkmext/pkg/paths"
	"github.com/jupyterlite/pkmext/pkg/version"
)

const (
	versionExample = `  # Show the version of this build
  pkmext version

  # Show the version declared by one or more manifests
  pkmext version --manifest package.json --manifest ../other/package.json

  # Find the closest package.json above the working directory
  pkmext version --manifest auto --output json
`

	autoManifest = "auto"
)

// VersionInfo is one resolved version.
type VersionInfo struct {
	Manifest string `json:"manifest,omitempty"`
	Version  string `json:"version"`
}

func GetVersionString() string {
	return version.Must()
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Short:   "Show the extension version",
		Example: versionExample,
		Args:    cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			flags := cc.Flags()

			manifests, err := flags.GetStringArray("manifest")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			output, err := flags.GetString("output")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			if err := validateOutput(output); err != nil {
				return err
			}

			if len(manifests) == 0 {
				v, err := version.Get()
				if err != nil {
					return fmt.Errorf("failed to resolve version: %w", err)
				}

				if output == outputText {
					fmt.Fprintln(cc.OutOrStdout(), v)

					return nil
				}

				return writeStructured(cc.OutOrStdout(), output, VersionInfo{Version: v})
			}

			infos, err := resolveManifests(manifests)
			if err != nil {
				return err
			}

			if output != outputText {
				return writeStructured(cc.OutOrStdout(), output, infos)
			}

			for _, info := range infos {
				fmt.Fprintf(cc.OutOrStdout(), "%s\t%s\n", info.Manifest, info.Version)
			}

			return nil
		},
	}

	cmd.Flags().StringArrayP("manifest", "m", nil, `Path to a package.json to read the version from, or "auto"`)
	cmd.Flags().StringP("output", "o", outputText, "Output format (text, json, yaml)")

	return cmd
}

// resolveManifests resolves every manifest concurrently, preserving order.
func resolveManifests(manifests []string) ([]VersionInfo, error) {
	cache := version.NewCache(nil)
	infos := make([]VersionInfo, len(manifests))

	var g errgroup.Group

	for i, m := range manifests {
		g.Go(func() error {
			path, err := manifestPath(m)
			if err != nil {
				return err
			}

			v, err := cache.Resolve(path)
			if err != nil {
				return fmt.Errorf("failed to resolve version: %w", err)
			}

			slog.Debug("resolved manifest version", slog.String("manifest", path), slog.String("version", v))

			infos[i] = VersionInfo{Manifest: path, Version: v}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	return infos, nil
}

// manifestPath expands "auto" to the closest package.json above the working
// directory, bounded by the enclosing git repository when there is one.
func manifestPath(m string) (string, error) {
	if m != autoManifest {
		return m, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := paths.FindRepoRoot(wd)
	if err != nil {
		root = "/"
	}

	p, err := paths.FindClosestManifest(root, wd, manifest.FileName)
	if err != nil {
		return "", fmt.Errorf("failed to find manifest: %w", err)
	}

	return p, nil
}
