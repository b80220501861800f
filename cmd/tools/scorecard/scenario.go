// cmd/tools/scorecard/scenario.go
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"matching-workers/internal/assessment"

	"github.com/spf13/cobra"
)

func newScenarioCmd(opts *options) *cobra.Command {
	var scenarioID, responsePath, response string

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Score a free-text scenario response",
		Long:  "Score a free-text scenario response. The response comes from --text, --file, or stdin when --file is \"-\".",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scorers, err := opts.scorers()
			if err != nil {
				return err
			}

			text := response
			switch {
			case responsePath == "-":
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(data)
			case responsePath != "":
				data, err := os.ReadFile(responsePath)
				if err != nil {
					return err
				}
				text = string(data)
			case text == "":
				return errors.New("one of --text or --file is required")
			}

			scenario := assessment.Scenario{ID: scenarioID}
			if scenarioID != "" {
				s, ok := assessment.DefaultBank().Scenario(scenarioID)
				if !ok {
					return fmt.Errorf("unknown scenario %q", scenarioID)
				}
				scenario = s
			}

			return opts.print(cmd.OutOrStdout(), scorers.Scenario.Score(text, scenario))
		},
	}
	cmd.Flags().StringVarP(&scenarioID, "scenario", "s", "", "scenario ID from the built-in bank")
	cmd.Flags().StringVarP(&responsePath, "file", "f", "", "file holding the response, - for stdin")
	cmd.Flags().StringVarP(&response, "text", "t", "", "response text")
	return cmd
}
