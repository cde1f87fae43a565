package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"sigs.k8s.io/yaml"

	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(output string) error {
	switch output {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("%w: --output must be one of text, json, yaml: %q", ErrInvalidArgument, output)
	}
}

// writeStructured writes v as JSON or YAML.
func writeStructured(w io.Writer, output string, v any) error {
	var (
		b   []byte
		err error
	)

	switch output {
	case outputYAML:
		b, err = yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: %w", pkmerrors.ErrYAMLMarshal, err)
		}
	default:
		b, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: %w", pkmerrors.ErrJSONMarshal, err)
		}

		b = append(b, '\n')
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w: %w", pkmerrors.ErrWrite, err)
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}
