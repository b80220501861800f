// internal/models/job.go
package models

import "strings"

type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPending   JobStatus = "pending"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
)

// LocationMode values that make a posting location independent.
const (
	LocationModeOnsite = "onsite"
	LocationModeHybrid = "hybrid"
	LocationModeRemote = "remote"
)

type Job struct {
	ID                 string              `json:"id"`
	EmployerID         string              `json:"employerId,omitempty"`
	Title              string              `json:"title"`
	RoleNeeded         string              `json:"roleNeeded,omitempty"`
	Seniority          string              `json:"seniority,omitempty"`
	Industries         []string            `json:"industries,omitempty"`
	LeadType           string              `json:"leadType,omitempty"`
	SalesCycle         string              `json:"salesCycle,omitempty"`
	CostBand           string              `json:"costBand,omitempty"`
	CommissionPercent  *float64            `json:"commissionPercent,omitempty"`
	CommissionAbsolute *int                `json:"commissionAbsolute,omitempty"`
	WeeklyHours        *int                `json:"weeklyHours,omitempty"`
	EmploymentType     string              `json:"employmentType,omitempty"`
	Location           Location            `json:"location"`
	Language           string              `json:"language,omitempty"`
	Tools              []string            `json:"tools,omitempty"`
	ScreeningQuestions []string            `json:"screeningQuestions,omitempty"`
	Description        DescriptionSections `json:"description"`
	Status             JobStatus           `json:"status,omitempty"`
	QualityScoreInt    int                 `json:"qualityScoreInt"`
}

type Location struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// DescriptionSections holds the free-text blocks an employer fills in.
type DescriptionSections struct {
	Company      string `json:"company,omitempty"`
	Role         string `json:"role,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Offer        string `json:"offer,omitempty"`
}

// Text joins the non-empty sections with a blank line.
func (d DescriptionSections) Text() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{d.Company, d.Role, d.Requirements, d.Offer} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (j Job) HasCommission() bool {
	return j.CommissionPercent != nil || j.CommissionAbsolute != nil
}
