// internal/scoring/quality/rules.go
package quality

// Component caps.
const (
	maxTitle       = 20
	maxRole        = 20
	maxIndustries  = 15
	maxLeadType    = 15
	maxCommission  = 15
	maxEmployment  = 10
	maxDescription = 5
)

const (
	titleMinLen       = 10
	titleMaxLen       = 90
	maxFocusedInds    = 3
	descriptionMinLen = 400

	ReadyThreshold   = 70
	PendingThreshold = 50
)

// Publish states returned by GetPublishStatus.
const (
	StatusReady   = "ready"
	StatusPending = "pending"
	StatusDraft   = "draft"
)

// Rules is the declarative half of the quality rubric.
type Rules struct {
	// TitleKeywords are lower-case role words a well-formed title should mention.
	TitleKeywords []string `json:"titleKeywords"`
	// Feedback holds one hint per component, keyed by component name.
	Feedback map[string]string `json:"feedback"`
}

// Component names, in feedback order.
const (
	ComponentTitle       = "title"
	ComponentRole        = "role"
	ComponentIndustries  = "industries"
	ComponentLeadType    = "leadType"
	ComponentCommission  = "commission"
	ComponentEmployment  = "employment"
	ComponentDescription = "description"
)

var componentOrder = []string{
	ComponentTitle,
	ComponentRole,
	ComponentIndustries,
	ComponentLeadType,
	ComponentCommission,
	ComponentEmployment,
	ComponentDescription,
}

func DefaultRules() Rules {
	return Rules{
		TitleKeywords: []string{
			"closer", "setter", "sales", "vertrieb", "verkauf", "account executive",
			"account manager", "sdr", "bdr", "business development", "key account",
			"außendienst", "innendienst", "akquise",
		},
		Feedback: map[string]string{
			ComponentTitle:       "Use a title of 10 to 90 characters that names the role, e.g. Closer or Account Executive",
			ComponentRole:        "Specify the role you are hiring for and the expected seniority",
			ComponentIndustries:  "Select between one and three industries",
			ComponentLeadType:    "Describe the lead type and the typical sales cycle",
			ComponentCommission:  "State the commission as a percentage or a fixed amount",
			ComponentEmployment:  "Add weekly hours and the employment type",
			ComponentDescription: "Write a description of at least 400 characters",
		},
	}
}

func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if len(r.TitleKeywords) == 0 {
		r.TitleKeywords = def.TitleKeywords
	}
	if r.Feedback == nil {
		r.Feedback = def.Feedback
		return r
	}
	merged := make(map[string]string, len(def.Feedback))
	for k, v := range def.Feedback {
		merged[k] = v
	}
	for k, v := range r.Feedback {
		if v != "" {
			merged[k] = v
		}
	}
	r.Feedback = merged
	return r
}
