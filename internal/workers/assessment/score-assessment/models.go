// internal/workers/assessment/score-assessment/models.go
package scoreassessment

import "matching-workers/internal/assessment"

type Input struct {
	AttemptID string `json:"attemptId"`
}

type Output struct {
	AttemptID   string                     `json:"attemptId"`
	CandidateID string                     `json:"candidateId"`
	Status      assessment.Status          `json:"attemptStatus"`
	RawMCScore  int                        `json:"rawMcScore"`
	Part1Score  int                        `json:"part1Score"`
	Part2Score  int                        `json:"part2Score"`
	TotalScore  int                        `json:"totalScore"`
	Passed      bool                       `json:"passed"`
	Categories  assessment.CategoryScores  `json:"categories"`
	Scenario    assessment.ScenarioDetails `json:"scenarioDetails"`
	Persisted   bool                       `json:"persisted"`
	Replayed    bool                       `json:"replayed"`
}

func newOutput(a assessment.Attempt, answer assessment.ScenarioAnswer) *Output {
	out := &Output{
		AttemptID:   a.ID,
		CandidateID: a.CandidateID,
		Status:      a.Status,
		Scenario:    answer.Details,
	}
	if r := a.Result; r != nil {
		out.RawMCScore = r.RawMCScore
		out.Part1Score = r.Part1Score
		out.Part2Score = r.Part2Score
		out.TotalScore = r.TotalScore
		out.Passed = r.Passed
		out.Categories = r.Categories
	}
	return out
}
