// internal/scoring/quality/scorer_test.go
package quality

import (
	"strings"
	"testing"

	"matching-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func createCompleteJob() models.Job {
	return models.Job{
		Title:             "Senior Closer (m/w/d) für B2B SaaS im Mittelstand!",
		RoleNeeded:        "closer",
		Seniority:         "senior",
		Industries:        []string{"SaaS", "Finance"},
		LeadType:          "warm",
		SalesCycle:        "1-4 Wochen",
		CommissionPercent: floatPtr(12.5),
		WeeklyHours:       intPtr(40),
		EmploymentType:    "freelance",
		Description: models.DescriptionSections{
			Role: strings.Repeat("a", 500),
		},
	}
}

func TestCalculateScore_CompleteJob(t *testing.T) {
	job := createCompleteJob()
	require.Equal(t, 50, len([]rune(job.Title)))

	result := CalculateScore(job)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, Breakdown{
		Title:       20,
		Role:        20,
		Industries:  15,
		LeadType:    15,
		Commission:  15,
		Employment:  10,
		Description: 5,
	}, result.Breakdown)
	assert.Empty(t, result.Feedback)
	assert.True(t, CanPublish(result.Score))
	assert.Equal(t, StatusReady, GetPublishStatus(result.Score))
}

func TestCalculateScore_ShortTitleOnly(t *testing.T) {
	result := CalculateScore(models.Job{Title: "Sales"})

	assert.Equal(t, 5, result.Score)
	assert.Equal(t, Breakdown{Title: 5}, result.Breakdown)
	assert.False(t, CanPublish(result.Score))
	assert.Equal(t, StatusDraft, GetPublishStatus(result.Score))

	rules := DefaultRules()
	assert.Equal(t, []string{
		rules.Feedback[ComponentTitle],
		rules.Feedback[ComponentRole],
		rules.Feedback[ComponentIndustries],
		rules.Feedback[ComponentLeadType],
		rules.Feedback[ComponentCommission],
		rules.Feedback[ComponentEmployment],
		rules.Feedback[ComponentDescription],
	}, result.Feedback)
}

func TestCalculateScore_Title(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected int
	}{
		{"absent", "", 0},
		{"whitespace only", "   ", 0},
		{"too short", "Closer", 5},
		{"keyword in range", "Appointment Setter gesucht", 20},
		{"keyword case-insensitive", "VERTRIEBSMITARBEITER GESUCHT", 20},
		{"no keyword in range", "Wir suchen Verstärkung", 15},
		{"exactly ten runes", "Ölförderer", 15},
		{"too long", strings.Repeat("Closer ", 14), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateScore(models.Job{Title: tt.title})
			assert.Equal(t, tt.expected, result.Breakdown.Title)
		})
	}
}

func TestCalculateScore_Components(t *testing.T) {
	tests := []struct {
		name     string
		job      models.Job
		expected Breakdown
	}{
		{
			name:     "role without seniority",
			job:      models.Job{RoleNeeded: "setter"},
			expected: Breakdown{Role: 15},
		},
		{
			name:     "seniority without role",
			job:      models.Job{Seniority: "junior"},
			expected: Breakdown{},
		},
		{
			name:     "too many industries",
			job:      models.Job{Industries: []string{"a", "b", "c", "d"}},
			expected: Breakdown{Industries: 10},
		},
		{
			name:     "blank industries ignored",
			job:      models.Job{Industries: []string{"", " "}},
			expected: Breakdown{},
		},
		{
			name:     "lead type only",
			job:      models.Job{LeadType: "cold"},
			expected: Breakdown{LeadType: 8},
		},
		{
			name:     "sales cycle only",
			job:      models.Job{SalesCycle: "6+ Monate"},
			expected: Breakdown{LeadType: 7},
		},
		{
			name:     "absolute commission",
			job:      models.Job{CommissionAbsolute: intPtr(500)},
			expected: Breakdown{Commission: 15},
		},
		{
			name:     "zero percent commission still counts as present",
			job:      models.Job{CommissionPercent: floatPtr(0)},
			expected: Breakdown{Commission: 15},
		},
		{
			name:     "weekly hours only",
			job:      models.Job{WeeklyHours: intPtr(20)},
			expected: Breakdown{Employment: 5},
		},
		{
			name:     "short description",
			job:      models.Job{Description: models.DescriptionSections{Company: "Wir sind ein Startup."}},
			expected: Breakdown{Description: 2},
		},
		{
			name: "description sections combine",
			job: models.Job{Description: models.DescriptionSections{
				Company: strings.Repeat("c", 200),
				Offer:   strings.Repeat("o", 199),
			}},
			// 200 + 2 separator runes + 199
			expected: Breakdown{Description: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateScore(tt.job)
			assert.Equal(t, tt.expected, result.Breakdown)
			assert.Equal(t, tt.expected.Total(), result.Score)
		})
	}
}

func TestCalculateScore_FeedbackOrderAndSelection(t *testing.T) {
	job := createCompleteJob()
	job.Seniority = ""
	job.WeeklyHours = nil
	job.CommissionPercent = nil
	job.SalesCycle = ""

	result := CalculateScore(job)

	rules := DefaultRules()
	// 20 + 15 + 15 + 8 + 0 + 5 + 5
	assert.Equal(t, 68, result.Score)
	assert.Equal(t, []string{
		rules.Feedback[ComponentRole],
		rules.Feedback[ComponentLeadType],
		rules.Feedback[ComponentCommission],
		rules.Feedback[ComponentEmployment],
	}, result.Feedback)
	assert.Equal(t, StatusPending, GetPublishStatus(result.Score))
}

func TestGetPublishStatus(t *testing.T) {
	tests := []struct {
		score      int
		expected   string
		canPublish bool
		lifecycle  models.JobStatus
	}{
		{100, StatusReady, true, models.JobStatusPending},
		{70, StatusReady, true, models.JobStatusPending},
		{69, StatusPending, false, models.JobStatusPending},
		{50, StatusPending, false, models.JobStatusPending},
		{49, StatusDraft, false, models.JobStatusDraft},
		{0, StatusDraft, false, models.JobStatusDraft},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetPublishStatus(tt.score), "score %d", tt.score)
		assert.Equal(t, tt.canPublish, CanPublish(tt.score), "score %d", tt.score)
		assert.Equal(t, tt.lifecycle, LifecycleStatus(tt.score), "score %d", tt.score)
	}
}

func TestScorer_WithRules(t *testing.T) {
	scorer := NewScorer(WithRules(Rules{
		TitleKeywords: []string{"recruiter"},
		Feedback:      map[string]string{ComponentTitle: "Name the role in the title"},
	}))

	result := scorer.CalculateScore(models.Job{Title: "Senior Recruiter München"})

	assert.Equal(t, 20, result.Breakdown.Title)

	result = scorer.CalculateScore(models.Job{Title: "Closer"})
	require.NotEmpty(t, result.Feedback)
	assert.Equal(t, "Name the role in the title", result.Feedback[0])
	// untouched hints keep their defaults
	assert.Equal(t, DefaultRules().Feedback[ComponentRole], result.Feedback[1])
}
