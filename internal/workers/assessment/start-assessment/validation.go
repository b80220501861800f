// internal/workers/assessment/start-assessment/validation.go
package startassessment

import "matching-workers/internal/common/validation"

// GetInputSchema describes the variables this worker reads. Other process
// variables are allowed alongside.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"candidateId": {
				Type:        "string",
				Description: "Candidate taking the assessment",
				MinLength:   validation.Int(1),
				MaxLength:   validation.Int(128),
			},
		},
		Required:             []string{"candidateId"},
		AdditionalProperties: true,
	}
}
