// internal/scoring/fit/scorer_test.go
package fit

import (
	"fmt"
	"sync"
	"testing"

	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestJob() models.Job {
	return models.Job{
		ID:         "job-1",
		Title:      "Closer (m/w/d) für B2B SaaS",
		RoleNeeded: "closer",
		LeadType:   "warm",
		SalesCycle: "1-4 Wochen",
		CostBand:   "5k",
		Location:   models.Location{City: "Berlin", Country: "DE", Mode: "onsite"},
		Tools:      []string{"hubspot", "Salesforce CRM"},
	}
}

func createTestProfile() models.UserProfile {
	return models.UserProfile{
		UserID:      "user-1",
		DesiredRole: "Closer",
		AvgDealSize: 5000,
		City:        "berlin",
		Country:     "DE",
		Tools:       []string{"HubSpot", "Salesforce"},
	}
}

func TestScore_StrongMatch(t *testing.T) {
	result := Score(createTestProfile(), createTestJob())

	assert.Equal(t, Breakdown{
		Role:       100,
		LeadType:   90,
		SalesCycle: 90,
		DealSize:   100,
		Location:   100,
		Tools:      100,
	}, result.Breakdown)
	// 30*100 + 15*90 + 15*90 + 15*100 + 15*100 + 10*100 = 9700
	assert.Equal(t, 97, result.Score)

	require.Len(t, result.Reasons, 3)
	assert.Equal(t, "Your desired role matches the position: closer", result.Reasons[0])
	assert.Equal(t, "Deal size is in line with your track record (5k)", result.Reasons[1])
	assert.Equal(t, "Located in your city: Berlin", result.Reasons[2])
}

func TestScore_EmptyProfileNeutralDefaults(t *testing.T) {
	tests := []struct {
		name          string
		job           models.Job
		expectedTools int
		expectedScore int
	}{
		{
			name:          "job without tools",
			job:           models.Job{Title: "Sales"},
			expectedTools: 80,
			// 30*50 + 15*50 + 15*50 + 15*50 + 15*40 + 10*80 = 5150 -> 51.5 -> 52
			expectedScore: 52,
		},
		{
			name:          "job requiring tools",
			job:           models.Job{Tools: []string{"Pipedrive"}},
			expectedTools: 60,
			// 30*50 + 15*50 + 15*50 + 15*50 + 15*40 + 10*60 = 4950 -> 49.5 -> 50
			expectedScore: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(models.UserProfile{}, tt.job)

			assert.Equal(t, 50, result.Breakdown.Role)
			assert.Equal(t, 50, result.Breakdown.LeadType)
			assert.Equal(t, 50, result.Breakdown.SalesCycle)
			assert.Equal(t, 50, result.Breakdown.DealSize)
			assert.Equal(t, 40, result.Breakdown.Location)
			assert.Equal(t, tt.expectedTools, result.Breakdown.Tools)
			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Empty(t, result.Reasons)
		})
	}
}

func TestScore_ReasonsNotPadded(t *testing.T) {
	job := models.Job{
		RoleNeeded: "setter",
		LeadType:   "kalt",
		Location:   models.Location{Mode: "Remote"},
	}
	profile := models.UserProfile{DesiredRole: "Closer"}

	result := Score(profile, job)

	assert.Equal(t, 30, result.Breakdown.Role)
	assert.Equal(t, 70, result.Breakdown.LeadType)
	assert.Equal(t, 95, result.Breakdown.Location)
	assert.Equal(t, []string{"Location independent: remote position"}, result.Reasons)
}

func TestScore_ReasonsSortedBySubScore(t *testing.T) {
	job := models.Job{
		RoleNeeded: "account executive",
		LeadType:   "warm",
		SalesCycle: "< 1 Woche",
		Location:   models.Location{Mode: "hybrid"},
		Tools:      []string{"Close"},
	}
	profile := models.UserProfile{DesiredRole: "Senior Closer", Tools: []string{"close.io"}}

	result := Score(profile, job)

	require.Len(t, result.Reasons, 3)
	// tools 100, salesCycle 95, location 95 beat leadType 90 and role 85
	assert.Equal(t, "You already use 1 of 1 required tools: Close", result.Reasons[0])
	assert.Equal(t, "Sales cycle of < 1 Woche suits your pace", result.Reasons[1])
	assert.Equal(t, "Location independent: hybrid position", result.Reasons[2])
}

func TestScore_BoundsHoldForArbitraryInputs(t *testing.T) {
	roles := []string{"", "closer", "SDR", "Vertriebsleiter", "setter"}
	bands := []string{"", "5k", "500", "25001_50000", "1000000k"}
	modes := []string{"", "remote", "onsite"}

	for _, role := range roles {
		for _, band := range bands {
			for _, mode := range modes {
				job := models.Job{RoleNeeded: role, CostBand: band, Location: models.Location{Mode: mode, City: "Hamburg"},
					LeadType: "warm", SalesCycle: "6+ Monate", Tools: []string{"a", "b", "c"}}
				profile := models.UserProfile{DesiredRole: "setter", AvgDealSize: 7500, City: "Hamburg", Tools: []string{"b"}}

				result := Score(profile, job)
				assert.GreaterOrEqual(t, result.Score, 0, fmt.Sprintf("%s/%s/%s", role, band, mode))
				assert.LessOrEqual(t, result.Score, 100)
				assert.LessOrEqual(t, len(result.Reasons), 3)
			}
		}
	}
}

func TestScorer_WithRulesOverridesTables(t *testing.T) {
	rules := Rules{
		SalesCycleScores: map[string]int{"quartal": 75},
		Weights:          Weights{SalesCycle: 1},
	}
	scorer := NewScorer(WithRules(rules))

	result := scorer.Score(models.UserProfile{}, models.Job{SalesCycle: "Quartal"})

	assert.Equal(t, 75, result.Breakdown.SalesCycle)
	assert.Equal(t, 75, result.Score)
	// untouched tables keep their defaults
	assert.Equal(t, 50, result.Breakdown.Role)
}

func TestScorer_LocationReasonNamesMatchLevel(t *testing.T) {
	rules := DefaultRules()
	rules.Thresholds = Thresholds{Role: 101, LeadType: 101, SalesCycle: 101, DealSize: 101, Location: 80, Tools: 101}
	scorer := NewScorer(WithRules(rules))
	profile := models.UserProfile{City: "Hamburg", Country: "DE"}

	tests := []struct {
		name     string
		location models.Location
		expected string
	}{
		{"same city", models.Location{City: "hamburg", Country: "DE"}, "Located in your city: hamburg"},
		{"same country", models.Location{City: "Berlin", Country: "DE"}, "Located in your country: DE"},
		{"remote", models.Location{City: "Wien", Country: "AT", Mode: models.LocationModeRemote}, "Location independent: remote position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score(profile, models.Job{Location: tt.location})
			assert.Equal(t, []string{tt.expected}, result.Reasons)
		})
	}
}

func TestScorer_ConcurrentUse(t *testing.T) {
	scorer := NewScorer()
	job := createTestJob()
	profile := createTestProfile()

	var wg sync.WaitGroup
	results := make([]int, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = scorer.Score(profile, job).Score
		}(i)
	}
	wg.Wait()

	for _, score := range results {
		assert.Equal(t, 97, score)
	}
}
