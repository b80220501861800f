// cmd/tools/scorecard/quality.go
package main

import (
	"matching-workers/internal/models"
	"matching-workers/internal/scoring/quality"

	"github.com/spf13/cobra"
)

type qualityRow struct {
	JobID         string           `json:"jobId"`
	Title         string           `json:"title"`
	PublishStatus string           `json:"publishStatus"`
	CanPublish    bool             `json:"canPublish"`
	Lifecycle     models.JobStatus `json:"lifecycleStatus"`
	quality.Result
}

func newQualityCmd(opts *options) *cobra.Command {
	var jobsPath string

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Score job postings for completeness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scorers, err := opts.scorers()
			if err != nil {
				return err
			}
			jobs, err := readJobs(jobsPath)
			if err != nil {
				return err
			}

			rows := make([]qualityRow, 0, len(jobs))
			for _, job := range jobs {
				res := scorers.Quality.CalculateScore(job)
				rows = append(rows, qualityRow{
					JobID:         job.ID,
					Title:         job.Title,
					PublishStatus: quality.GetPublishStatus(res.Score),
					CanPublish:    quality.CanPublish(res.Score),
					Lifecycle:     quality.LifecycleStatus(res.Score),
					Result:        res,
				})
			}
			return opts.print(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().StringVarP(&jobsPath, "jobs", "j", "", "job JSON file (object or array)")
	_ = cmd.MarkFlagRequired("jobs")
	return cmd
}
