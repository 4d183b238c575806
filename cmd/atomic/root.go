package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-atomic/internal/config"
	"github.com/goliatone/go-atomic/internal/logging"
)

type rootFlags struct {
	configPath string
	logLevel   string
	human      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "atomic",
		Short:         "Atomic design component library and demo polls app",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override the configured log level")
	cmd.PersistentFlags().BoolVar(&flags.human, "human", false, "Human readable log output")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newAssetsCmd())
	cmd.AddCommand(newComponentsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// load resolves configuration and a logger honoring the persistent flags.
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.human {
		cfg.Log.Human = true
	}

	logger, err := logging.New(logging.Options{
		Level:         cfg.Log.Level,
		HumanReadable: cfg.Log.Human,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	return cfg, logger, nil
}
