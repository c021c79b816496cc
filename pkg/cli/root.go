package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/headless/pkg/config"
)

const (
	// Version is the current version of headless
	Version = "0.1.0"
)

// Config holds the global configuration for the headless CLI
type Config struct {
	ConfigPath string
	Debug      bool

	// Behavior is the loaded behavior configuration.
	Behavior *config.Config
	Logger   *zap.Logger
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// NewRootCommand creates the root cobra command for headless
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headless",
		Short: "headless - accessible widget behaviors without a renderer",
		Long: `headless drives WAI-ARIA widget behaviors (listbox, table, PIN input,
slider, date picker, virtual list and menu) against an in-memory DOM.

Scenario files describe a widget, its items and a list of steps; run executes
them and checks their expectations, validate checks them without running and
play lets you try a behavior from the terminal.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(GlobalConfig.ConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			GlobalConfig.Behavior = cfg

			logger, err := newLogger(GlobalConfig.Debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			GlobalConfig.Logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if GlobalConfig.Logger != nil {
				_ = GlobalConfig.Logger.Sync()
			}
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&GlobalConfig.ConfigPath, "config", "",
		"Behavior configuration file (default: $"+config.EnvVar+", then built-in defaults)")

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewPlayCommand())
	cmd.AddCommand(NewConfigCommand())

	return cmd
}

// newLogger returns a development logger on stderr when debug is set and a
// no-op logger otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}
