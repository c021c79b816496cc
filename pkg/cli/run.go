package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/headless/pkg/scenario"
	"github.com/dshills/headless/pkg/snapshot"
)

// runReport is one scenario's outcome in --output-json mode.
type runReport struct {
	File   string           `json:"file"`
	Passed bool             `json:"passed"`
	Error  string           `json:"error,omitempty"`
	Result *scenario.Result `json:"result,omitempty"`
	Token  string           `json:"token,omitempty"`
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		outputJSON bool
		showState  bool
		format     string
		signKey    string
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml|dir>...",
		Short: "Execute scenarios",
		Long: `Execute one or more scenario files and check their expectations.

A directory argument runs every .yaml and .yml file in it. Scenarios run in
order; a failing scenario is reported and the rest still run.

Examples:
  # Run a scenario
  headless run listbox.yaml

  # Run a directory and print the final state of each scenario
  headless run scenarios/ --state

  # Print the final state as base64 msgpack
  headless run pin.yaml --state --format msgpack

  # Emit a signed token of the final state
  headless run pin.yaml --sign-key secret --output-json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := snapshot.ParseFormat(format)
			if err != nil {
				return err
			}
			files, err := collectScenarioFiles(args)
			if err != nil {
				return err
			}
			var signer *snapshot.Signer
			if signKey != "" {
				signer = snapshot.NewSigner([]byte(signKey))
			}

			out := cmd.OutOrStdout()
			opts := scenario.RunOptions{Config: GlobalConfig.Behavior, Logger: GlobalConfig.Logger}
			reports := make([]runReport, 0, len(files))
			failed := 0
			for _, file := range files {
				rep := runReport{File: file}
				res, err := runFile(cmd, file, opts)
				if err == nil && signer != nil {
					rep.Token, err = signer.Sign(res.Final)
				}
				if err != nil {
					failed++
					rep.Error = err.Error()
					if !outputJSON {
						_, _ = fmt.Fprintf(out, "✗ %s\n  %v\n", file, err)
					}
					reports = append(reports, rep)
					continue
				}
				rep.Passed, rep.Result = true, res
				reports = append(reports, rep)
				if outputJSON {
					continue
				}
				_, _ = fmt.Fprintf(out, "✓ %s (%s): %d actions, %d expectations\n",
					res.Name, res.Widget, res.Actions, res.Expectations)
				if showState {
					state, err := formatState(res.Final, f)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(out, "  state: %s\n", state)
				}
				if rep.Token != "" {
					_, _ = fmt.Fprintf(out, "  token: %s\n", rep.Token)
				}
			}

			if outputJSON {
				data, err := json.MarshalIndent(reports, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal output: %w", err)
				}
				_, _ = fmt.Fprintln(out, string(data))
			} else {
				_, _ = fmt.Fprintf(out, "\n%d passed, %d failed\n", len(files)-failed, failed)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "output-json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&showState, "state", false, "Print the final state of each scenario")
	cmd.Flags().StringVar(&format, "format", "json", "State encoding for --state: json or msgpack")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "Sign the final state with this HMAC key")

	return cmd
}

func runFile(cmd *cobra.Command, file string, opts scenario.RunOptions) (*scenario.Result, error) {
	sc, err := scenario.LoadFile(file)
	if err != nil {
		return nil, err
	}
	return scenario.Run(cmd.Context(), sc, opts)
}

// formatState renders state as JSON text, or base64 for msgpack.
func formatState(state map[string]any, f snapshot.Format) (string, error) {
	data, err := snapshot.Encode(state, f)
	if err != nil {
		return "", err
	}
	if f == snapshot.FormatMsgpack {
		return base64.StdEncoding.EncodeToString(data), nil
	}
	return string(data), nil
}

// collectScenarioFiles expands directory arguments into their YAML files,
// sorted by name. File arguments are kept as given.
func collectScenarioFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("scenario not found: %s", arg)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no scenario files in %s", arg)
		}
		slices.Sort(found)
		files = append(files, found...)
	}
	return files, nil
}
