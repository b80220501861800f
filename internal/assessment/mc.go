// internal/assessment/mc.go
package assessment

import "fmt"

const (
	MaxQuestionPoints = 5
	Part1MaxScore     = 20
	PassRawThreshold  = 80
)

// ScoreMCQuestions turns multiple-choice answers into a raw percentage and
// the gated part 1 score. Below PassRawThreshold the scaled score is 0.
func ScoreMCQuestions(answers []MCAnswer) (MCScore, error) {
	if err := validateAnswers(answers); err != nil {
		return MCScore{}, err
	}
	raw := rawPercent(answers)
	return MCScore{RawScore: raw, ScaledScore: scale(raw)}, nil
}

func validateAnswers(answers []MCAnswer) error {
	seen := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		if a.Points < 0 || a.Points > MaxQuestionPoints {
			return fmt.Errorf("%w: question %s has %d points", ErrInvalidPoints, a.QuestionID, a.Points)
		}
		if _, dup := seen[a.QuestionID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}

// rawPercent is round(sum / (n*5) * 100), half up, in integer arithmetic.
func rawPercent(answers []MCAnswer) int {
	n := len(answers)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, a := range answers {
		sum += a.Points
	}
	max := n * MaxQuestionPoints
	return (2*sum*100 + max) / (2 * max)
}

func scale(raw int) int {
	if raw < PassRawThreshold {
		return 0
	}
	// round(raw / 100 * 20)
	return (2*raw*Part1MaxScore + 100) / 200
}
