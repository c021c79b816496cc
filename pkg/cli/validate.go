package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/headless/pkg/scenario"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml|dir>...",
		Short: "Validate scenarios without running them",
		Long: `Validate scenario files for correctness.

This checks:
- YAML syntax and the scenario JSON schema
- The widget is known and every action is one it supports
- Keys, dates and durations parse
- Expectations compile

Examples:
  headless validate listbox.yaml
  headless validate scenarios/ --verbose`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectScenarioFiles(args)
			if err != nil {
				return err
			}

			invalid := 0
			for _, file := range files {
				sc, err := scenario.LoadFile(file)
				if err != nil {
					invalid++
					_, _ = fmt.Fprintf(cmd.OutOrStderr(), "✗ %s\n", file)
					if verbose {
						_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  Error: %v\n", err)
					}
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s (%d steps)\n", file, sc.Widget, len(sc.Steps))
				if verbose {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Actions: %v\n", scenario.Actions(sc.Widget))
				}
			}

			if invalid > 0 {
				if !verbose {
					_, _ = fmt.Fprintln(cmd.OutOrStderr(), "  Use --verbose to see details")
				}
				return fmt.Errorf("%d of %d scenarios invalid", invalid, len(files))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n✓ %d scenarios valid\n", len(files))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed validation information")

	return cmd
}
