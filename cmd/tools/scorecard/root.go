// cmd/tools/scorecard/root.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"matching-workers/pkg/rubric"

	"github.com/spf13/cobra"
)

const app = "scorecard"

type options struct {
	rubricPath string
	compact    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           app,
		Short:         "scorecard runs the fit, quality and scenario scorers on JSON files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.rubricPath, "rubric", "r", os.Getenv("SCORING_RUBRIC_PATH"), "rubric override file (default: built-in tables)")
	cmd.PersistentFlags().BoolVar(&opts.compact, "compact", false, "print single-line JSON")

	cmd.AddCommand(
		newFitCmd(opts),
		newQualityCmd(opts),
		newScenarioCmd(opts),
	)
	return cmd
}

func (o *options) scorers() (*rubric.Scorers, error) {
	r, err := rubric.LoadOrDefault(o.rubricPath)
	if err != nil {
		return nil, fmt.Errorf("loading rubric: %w", err)
	}
	return r.Scorers()
}

func (o *options) print(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
