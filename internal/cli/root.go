package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/jupyterlite/pkmext/pkg/log"
)

var ErrInvalidArgument = errors.New("invalid argument")

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().String("log_level", envOr("PKMEXT_LOG_LEVEL", "warn"), "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", envOr("PKMEXT_LOG_FORMAT", "text"), "Set the log format (text, logfmt, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		h, err := log.CreateHandlerWithStrings(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}

		slog.SetDefault(slog.New(h))

		return nil
	}

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewManifestCmd())

	return cmd
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	return fallback
}
