// internal/models/profile.go
package models

// UserProfile is the candidate snapshot supplied to a scoring call.
// Zero values mean "not provided".
type UserProfile struct {
	UserID                string   `json:"userId,omitempty"`
	DesiredRole           string   `json:"desiredRole,omitempty"`
	Industries            []string `json:"industries,omitempty"`
	AvgDealSize           int      `json:"avgDealSize,omitempty"` // EUR
	City                  string   `json:"city,omitempty"`
	Country               string   `json:"country,omitempty"`
	Tools                 []string `json:"tools,omitempty"`
	Language              string   `json:"language,omitempty"`
	EmploymentPreferences []string `json:"employmentPreferences,omitempty"`
}
