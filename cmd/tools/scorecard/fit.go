// cmd/tools/scorecard/fit.go
package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"matching-workers/internal/models"
	"matching-workers/internal/scoring/fit"

	"github.com/spf13/cobra"
)

type fitRow struct {
	JobID string `json:"jobId"`
	Title string `json:"title"`
	fit.Result
}

func newFitCmd(opts *options) *cobra.Command {
	var profilePath, jobsPath string

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Score a candidate profile against one job or a list of jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scorers, err := opts.scorers()
			if err != nil {
				return err
			}

			var profile models.UserProfile
			if err := readJSON(profilePath, &profile); err != nil {
				return err
			}
			jobs, err := readJobs(jobsPath)
			if err != nil {
				return err
			}

			rows := make([]fitRow, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, fitRow{
					JobID:  job.ID,
					Title:  job.Title,
					Result: scorers.Fit.Score(profile, job),
				})
			}
			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i].Score > rows[j].Score
			})
			return opts.print(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "candidate profile JSON file")
	cmd.Flags().StringVarP(&jobsPath, "jobs", "j", "", "job JSON file (object or array)")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("jobs")
	return cmd
}

// readJobs accepts a single job object or an array of jobs.
func readJobs(path string) ([]models.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var jobs []models.Job
		if err := readJSON(path, &jobs); err != nil {
			return nil, err
		}
		return jobs, nil
	}
	var job models.Job
	if err := readJSON(path, &job); err != nil {
		return nil, err
	}
	if job.Title == "" && job.ID == "" {
		return nil, fmt.Errorf("%s: no job found", path)
	}
	return []models.Job{job}, nil
}
