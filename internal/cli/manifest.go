package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jupyterlite/pkmext/pkg/manifest"
	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

const manifestDesc = `Inspect the package.json manifest that the version falls back to.
`

var (
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	validMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
	invalidMark = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).SetString("!")
)

// ManifestInfo is the displayed view of a manifest.
type ManifestInfo struct {
	Manifest         string              `json:"manifest"`
	Name             string              `json:"name,omitempty"`
	Version          string              `json:"version"`
	DistributionName string              `json:"distributionName,omitempty"`
	PythonPackage    string              `json:"pythonPackage,omitempty"`
	Description      string              `json:"description,omitempty"`
	Homepage         string              `json:"homepage,omitempty"`
	License          string              `json:"license,omitempty"`
	Author           string              `json:"author,omitempty"`
	Semver           manifest.SemverInfo `json:"semver"`
}

// NewManifestCmd returns the manifest command.
func NewManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "manifest",
		Short:        "Manifest inspection",
		Long:         manifestDesc,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewManifestShowCmd())
	cmd.AddCommand(NewManifestSchemaCmd())

	return cmd
}

func NewManifestShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Show the metadata of a manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			output, err := cc.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			if err := validateOutput(output); err != nil {
				return err
			}

			path := autoManifest
			if len(args) == 1 {
				path = args[0]
			}

			path, err = manifestPath(path)
			if err != nil {
				return err
			}

			info, err := readManifestInfo(path)
			if err != nil {
				return err
			}

			if output != outputText {
				return writeStructured(cc.OutOrStdout(), output, info)
			}

			return writeManifestInfo(cc.OutOrStdout(), info, isTerminal(cc.OutOrStdout()))
		},
	}

	cmd.Flags().StringP("output", "o", outputText, "Output format (text, json, yaml)")

	return cmd
}

func NewManifestSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the manifest keys that are read",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			return writeStructured(cc.OutOrStdout(), outputJSON, manifest.Schema())
		},
	}
}

func readManifestInfo(path string) (*ManifestInfo, error) {
	m, err := manifest.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	v, err := m.VersionString()
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %s: %w", path, err)
	}

	info := &ManifestInfo{
		Manifest:         path,
		Name:             m.Name,
		Version:          v,
		DistributionName: m.DistributionName(),
		PythonPackage:    m.PythonPackage(),
		Description:      m.Description,
		Homepage:         m.Homepage,
		License:          m.License,
		Semver:           manifest.ParseSemver(v),
	}
	if !m.Author.IsZero() {
		info.Author = m.Author.String()
	}

	return info, nil
}

func writeManifestInfo(w io.Writer, info *ManifestInfo, styled bool) error {
	key := func(s string) string {
		if styled {
			return keyStyle.Render(s)
		}

		return s
	}

	semver := "no"
	if info.Semver.Valid {
		semver = "yes"
		if styled {
			semver = validMark.String() + " " + semver
		}
	} else if styled {
		semver = invalidMark.String() + " " + semver
	}

	rows := [][2]string{
		{"manifest", info.Manifest},
		{"name", info.Name},
		{"version", info.Version},
		{"semver", semver},
		{"distribution", info.DistributionName},
		{"python package", info.PythonPackage},
		{"description", info.Description},
		{"homepage", info.Homepage},
		{"license", info.License},
		{"author", info.Author},
	}

	sb := &strings.Builder{}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}

		fmt.Fprintf(sb, "%s: %s\n", key(r[0]), r[1])
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("%w: %w", pkmerrors.ErrWrite, err)
	}

	return nil
}
