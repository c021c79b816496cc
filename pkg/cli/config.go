package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/headless/pkg/config"
)

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect behavior configuration",
	}
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigValidateCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration behaviors are built with: the built-in defaults
overlaid with --config or $` + config.EnvVar + ` when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := GlobalConfig.Behavior.Marshal()
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Check a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open config: %w", err)
			}
			defer f.Close()
			if _, err := config.LoadFrom(f); err != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStderr(), "✗ %s\n", args[0])
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", args[0])
			return nil
		},
	}
}
