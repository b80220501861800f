// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"matching-workers/internal/assessment"
	"matching-workers/internal/assessment/store"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidMCPoints      ErrorCode = "INVALID_MC_POINTS"
	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrCodeAttemptNotFound      ErrorCode = "ATTEMPT_NOT_FOUND"
	ErrCodeAttemptConflict      ErrorCode = "ATTEMPT_CONFLICT"
	ErrCodeAttemptNotSubmitted  ErrorCode = "ATTEMPT_NOT_SUBMITTED"
	ErrCodeProfileLookupFailed  ErrorCode = "PROFILE_LOOKUP_FAILED"
	ErrCodeDatabaseUpdateFailed ErrorCode = "DATABASE_UPDATE_FAILED"
	ErrCodeSearchQueryFailed    ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeCacheFailed          ErrorCode = "CACHE_FAILED"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

var messages = map[ErrorCode]string{
	ErrCodeInvalidInput:         "Invalid job input",
	ErrCodeInvalidMCPoints:      "Answer points outside the allowed range",
	ErrCodeInvalidTransition:    "Event not allowed in the current attempt state",
	ErrCodeAttemptNotFound:      "Assessment attempt not found",
	ErrCodeAttemptConflict:      "Assessment attempt was modified concurrently",
	ErrCodeAttemptNotSubmitted:  "Assessment attempt has not been submitted",
	ErrCodeProfileLookupFailed:  "Failed to load candidate profile",
	ErrCodeDatabaseUpdateFailed: "Failed to persist result",
	ErrCodeSearchQueryFailed:    "Job search query failed",
	ErrCodeCacheFailed:          "Cache operation failed",
	ErrCodeInternal:             "Unexpected error",
}

// New builds a StandardError for code. err, if set, becomes the details and
// stays reachable through errors.Is/As.
func New(code ErrorCode, err error) *StandardError {
	msg, ok := messages[code]
	if !ok {
		msg = string(code)
	}
	e := &StandardError{
		Code:      code,
		Message:   msg,
		Retryable: GetRetryCount(code) > 0,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

func NewInvalidInputError(details string) *StandardError {
	e := New(ErrCodeInvalidInput, nil)
	e.Details = details
	return e
}

// Classify maps engine and store errors to their codes. Errors it does not
// recognise get fallback.
func Classify(err error, fallback ErrorCode) *StandardError {
	var std *StandardError
	if stderrors.As(err, &std) {
		return std
	}

	code := fallback
	switch {
	case stderrors.Is(err, assessment.ErrInvalidPoints):
		code = ErrCodeInvalidMCPoints
	case stderrors.Is(err, assessment.ErrDuplicateAnswer),
		stderrors.Is(err, assessment.ErrInvalidScenario),
		stderrors.Is(err, assessment.ErrUnknownOption),
		stderrors.Is(err, assessment.ErrUnknownQuestion),
		stderrors.Is(err, assessment.ErrUnknownScenario):
		code = ErrCodeInvalidInput
	case stderrors.Is(err, assessment.ErrInvalidTransition),
		stderrors.Is(err, assessment.ErrAttemptClosed):
		code = ErrCodeInvalidTransition
	case stderrors.Is(err, assessment.ErrNotSubmitted):
		code = ErrCodeAttemptNotSubmitted
	case stderrors.Is(err, store.ErrNotFound):
		code = ErrCodeAttemptNotFound
	case stderrors.Is(err, store.ErrConflict):
		code = ErrCodeAttemptConflict
	}
	return New(code, err)
}

// BPMNErrorMapping maps internal error codes to BPMN error codes. Codes not
// listed are thrown unchanged.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidMCPoints:     "INVALID_INPUT",
	ErrCodeAttemptNotSubmitted: "INVALID_TRANSITION",
}

// GetRetryCount returns how often a failure with code should be retried.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeProfileLookupFailed,
		ErrCodeDatabaseUpdateFailed,
		ErrCodeSearchQueryFailed:
		return 3

	case ErrCodeCacheFailed,
		ErrCodeAttemptConflict:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.HasPrefix(codeStr, "ATTEMPT") || strings.Contains(codeStr, "TRANSITION"):
		return "ASSESSMENT"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "PROFILE"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	default:
		return "OTHER"
	}
}
