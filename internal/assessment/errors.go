// internal/assessment/errors.go
package assessment

import "errors"

var (
	ErrInvalidPoints     = errors.New("answer points out of range")
	ErrInvalidScenario   = errors.New("scenario score out of range")
	ErrDuplicateAnswer   = errors.New("duplicate answer for question")
	ErrInvalidTransition = errors.New("invalid attempt transition")
	ErrAttemptClosed     = errors.New("attempt is closed")
	ErrNotSubmitted      = errors.New("attempt not submitted")
	ErrUnknownQuestion   = errors.New("unknown question")
	ErrUnknownScenario   = errors.New("unknown scenario")
	ErrUnknownOption     = errors.New("unknown answer option")
)
