// internal/assessment/result.go
package assessment

import "fmt"

const PassTotalScore = 16

// CategoryMembers partitions the question set into the four trait groups.
var CategoryMembers = map[Category][]string{
	CategoryEmpathy:     {"q01", "q02", "q05", "q09", "q13"},
	CategoryHostility:   {"q03", "q06", "q10", "q14", "q17"},
	CategoryAcquisition: {"q04", "q07", "q11", "q15", "q18"},
	CategoryResilience:  {"q08", "q12", "q16", "q19", "q20"},
}

// CalculateAssessmentResult combines both parts into the final verdict.
// Passing needs all of: raw MC >= 80, scenario >= 4, total >= 16.
func CalculateAssessmentResult(mcAnswers []MCAnswer, scenario ScenarioAnswer) (Result, error) {
	mc, err := ScoreMCQuestions(mcAnswers)
	if err != nil {
		return Result{}, err
	}
	if scenario.Score < 0 || scenario.Score > Part2MaxScore {
		return Result{}, fmt.Errorf("%w: %d not in [0,%d]", ErrInvalidScenario, scenario.Score, Part2MaxScore)
	}

	total := mc.ScaledScore + scenario.Score
	return Result{
		RawMCScore: mc.RawScore,
		Part1Score: mc.ScaledScore,
		Part2Score: scenario.Score,
		TotalScore: total,
		Passed: mc.RawScore >= PassRawThreshold &&
			scenario.Score >= PassScenarioScore &&
			total >= PassTotalScore,
		Categories: CategoryScores{
			Empathy:           categoryScore(mcAnswers, CategoryEmpathy),
			HostilityHandling: categoryScore(mcAnswers, CategoryHostility),
			Acquisition:       categoryScore(mcAnswers, CategoryAcquisition),
			Resilience:        categoryScore(mcAnswers, CategoryResilience),
		},
	}, nil
}

// categoryScore is the raw percentage over the group's answered questions, 0 if none.
func categoryScore(answers []MCAnswer, c Category) int {
	members := make(map[string]struct{}, len(CategoryMembers[c]))
	for _, id := range CategoryMembers[c] {
		members[id] = struct{}{}
	}
	var in []MCAnswer
	for _, a := range answers {
		if _, ok := members[a.QuestionID]; ok {
			in = append(in, a)
		}
	}
	return rawPercent(in)
}
