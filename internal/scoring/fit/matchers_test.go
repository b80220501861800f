// internal/scoring/fit/matchers_test.go
package fit

import (
	"testing"

	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMatchRole(t *testing.T) {
	synonyms := DefaultRules().RoleSynonyms

	tests := []struct {
		name     string
		userRole string
		jobRole  string
		expected int
	}{
		{"exact match ignores case", "CLOSER", "closer", 100},
		{"exact match collapses whitespace", "  account   executive ", "Account Executive", 100},
		{"synonym token", "Senior Closer", "account executive", 85},
		{"multi-word synonym phrase", "Freelance Appointment Setter", "setter", 85},
		{"no partial token match", "aesthetic consultant", "closer", 30},
		{"mismatch", "Setter", "closer", 30},
		{"unknown job role", "closer", "Vertriebsinnendienst", 30},
		{"empty user role", "", "closer", 50},
		{"empty job role", "closer", "  ", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchRole(tt.userRole, tt.jobRole, synonyms))
		})
	}
}

func TestMatchLeadType(t *testing.T) {
	scores := DefaultRules().LeadTypeScores

	assert.Equal(t, 90, MatchLeadType("Warm", scores))
	assert.Equal(t, 70, MatchLeadType("cold", scores))
	assert.Equal(t, 70, MatchLeadType("inbound", scores))
	assert.Equal(t, 50, MatchLeadType("", scores))
}

func TestMatchSalesCycle(t *testing.T) {
	scores := DefaultRules().SalesCycleScores

	tests := []struct {
		band     string
		expected int
	}{
		{"< 1 Woche", 95},
		{"1-4 Wochen", 90},
		{"1-3 Monate", 80},
		{"3-6 Monate", 70},
		{"6+ Monate", 60},
		{"", 50},
		{"irgendwann", 50},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchSalesCycle(tt.band, scores))
		})
	}
}

func TestParseCostBand(t *testing.T) {
	pattern := DefaultRules().CostBandPattern

	tests := []struct {
		band     string
		expected int
		ok       bool
	}{
		{"5k", 5000, true},
		{" 12 K ", 12000, true},
		{"2500", 2500, true},
		{"0", 0, false},
		{"0k", 0, false},
		{"25001_50000", 0, false},
		{"5-10k", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			value, ok := ParseCostBand(tt.band, pattern)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestMatchDealSize(t *testing.T) {
	pattern := DefaultRules().CostBandPattern

	tests := []struct {
		name     string
		userDeal int
		costBand string
		expected int
	}{
		{"equal", 5000, "5k", 100},
		{"user below job", 4000, "5k", 80},
		{"user above job", 10000, "5k", 50},
		{"rounds half up", 4500, "5k", 90},
		{"range band is not parsed", 30000, "25001_50000", 70},
		{"range band without profile", 0, "25001_50000", 70},
		{"profile without band", 5000, "", 70},
		{"neither known", 0, "", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchDealSize(tt.userDeal, tt.costBand, pattern))
		})
	}
}

func TestMatchLocation(t *testing.T) {
	flexible := DefaultRules().FlexibleModes
	profile := models.UserProfile{City: "München", Country: "DE"}

	tests := []struct {
		name         string
		loc          models.Location
		expected     int
		expectedAttr string
	}{
		{"remote ignores city", models.Location{City: "Hamburg", Mode: "remote"}, 95, "remote"},
		{"hybrid ignores city", models.Location{City: "Hamburg", Mode: "Hybrid"}, 95, "hybrid"},
		{"same city", models.Location{City: "münchen", Country: "DE", Mode: "onsite"}, 100, "münchen"},
		{"same country", models.Location{City: "Köln", Country: "de", Mode: "onsite"}, 80, "de"},
		{"elsewhere", models.Location{City: "Wien", Country: "AT", Mode: "onsite"}, 40, ""},
		{"nothing given", models.Location{}, 40, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, attr := MatchLocation(profile, tt.loc, flexible)
			assert.Equal(t, tt.expected, score)
			assert.Equal(t, tt.expectedAttr, attr)
		})
	}
}

func TestMatchTools(t *testing.T) {
	tests := []struct {
		name            string
		userTools       []string
		jobTools        []string
		expected        int
		expectedMatched []string
	}{
		{"nothing required", []string{"HubSpot"}, nil, 80, nil},
		{"blank requirements", []string{"HubSpot"}, []string{" ", ""}, 80, nil},
		{"candidate lists none", nil, []string{"HubSpot"}, 60, nil},
		{"full match", []string{"hubspot"}, []string{"HubSpot"}, 100, []string{"HubSpot"}},
		{"substring either way", []string{"Salesforce", "Pipedrive CRM"}, []string{"Salesforce Sales Cloud", "pipedrive"}, 100,
			[]string{"Salesforce Sales Cloud", "pipedrive"}},
		{"two of three", []string{"HubSpot", "Aircall"}, []string{"HubSpot", "Aircall", "Slack"}, 67,
			[]string{"HubSpot", "Aircall"}},
		{"no overlap", []string{"Excel"}, []string{"HubSpot", "Close"}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched := MatchTools(tt.userTools, tt.jobTools)
			assert.Equal(t, tt.expected, score)
			assert.Equal(t, tt.expectedMatched, matched)
		})
	}
}
