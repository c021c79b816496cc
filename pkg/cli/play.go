package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/headless/pkg/playground"
)

// NewPlayCommand creates the play command
func NewPlayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "play [listbox|pin|slider]",
		Short:     "Try a behavior in the terminal",
		ValidArgs: playground.Demos(),
		Long: `Drive a behavior from the keyboard in a full-screen terminal view.

The demo uses the loaded configuration, so --config changes its defaults.
Press Esc or Ctrl+C to quit.

Examples:
  headless play
  headless play pin
  headless play slider --config slider.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "listbox"
			if len(args) == 1 {
				name = args[0]
			}
			demo, err := playground.NewDemo(name, GlobalConfig.Behavior, GlobalConfig.Logger)
			if err != nil {
				return err
			}

			app, err := playground.Open(demo, GlobalConfig.Logger)
			if err != nil {
				demo.Close()
				return err
			}
			runErr := app.Run(cmd.Context())
			if err := app.Close(); err != nil && runErr == nil {
				runErr = err
			}
			if runErr != nil {
				return fmt.Errorf("playground: %w", runErr)
			}
			return nil
		},
	}
	return cmd
}
