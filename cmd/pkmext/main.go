package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jupyterlite/pkmext/internal/cli"
	"github.com/jupyterlite/pkmext/pkg/log"
	"github.com/jupyterlite/pkmext/pkg/version"
)

func init() {
	slog.SetDefault(slog.New(log.CreateHandler(os.Stderr, slog.LevelWarn, log.TextFormat)))
}

const (
	cmdName = "pkmext"

	shortDesc = "The JupyterLite PKM extension Command Line Interface (CLI)."
	longDesc  = `The JupyterLite Personal Knowledge Management extension CLI.

Reports the extension version, taken from the build-time artifact when the
binary was built with one, and otherwise from the package.json of the source
checkout it was built from.
`
)

func main() {
	// An unresolvable version means a broken install; stop before anything else.
	if _, err := version.Get(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
