// internal/workers/assessment/record-attempt-event/validation.go
package recordattemptevent

import (
	"matching-workers/internal/assessment"
	"matching-workers/internal/common/validation"
)

const maxResponseLength = 10000

var eventTypes = []string{
	string(assessment.EventStart),
	string(assessment.EventSelectAnswer),
	string(assessment.EventNext),
	string(assessment.EventTick),
	string(assessment.EventUpdateResponse),
	string(assessment.EventSubmit),
	string(assessment.EventFocusLost),
	string(assessment.EventPaste),
}

// GetInputSchema describes an attempt event payload.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"attemptId": {
				Type:      "string",
				MinLength: validation.Int(1),
			},
			"eventType": {
				Type: "string",
				Enum: eventTypes,
			},
			"optionId": {
				Type:      "string",
				MaxLength: validation.Int(16),
			},
			"seconds": {
				Type:        "integer",
				Description: "Elapsed seconds reported by a tick",
				Minimum:     validation.Float(0),
				Maximum:     validation.Float(3600),
			},
			"text": {
				Type:      "string",
				MaxLength: validation.Int(maxResponseLength),
			},
		},
		Required:             []string{"attemptId", "eventType"},
		AdditionalProperties: true,
	}
}
