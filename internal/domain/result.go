package domain

// TalentFocus is a development recommendation for one identified talent.
type TalentFocus struct {
	Talent    string   `json:"talent"`
	Rationale string   `json:"rationale"`
	NextSteps []string `json:"next_steps"`
}

// WellbeingResult is the advisory outcome of the optional wellbeing screen.
// Nothing in the system acts on it automatically.
type WellbeingResult struct {
	Level    WellbeingLevel `json:"level"`
	Note     string         `json:"note"`
	NextStep string         `json:"next_step"`
}

// DefaultWellbeing is substituted when the wellbeing stage output cannot be decoded.
func DefaultWellbeing() WellbeingResult {
	return WellbeingResult{
		Level:    WellbeingNone,
		Note:     "Assessment unavailable.",
		NextStep: "Continue standard monitoring.",
	}
}

// AnalysisResult is the envelope produced by one pipeline run. Slices are
// never nil so the serialized shape is stable. Wellbeing is nil when the
// screen was not requested.
type AnalysisResult struct {
	Rubric                  RubricResult     `json:"rubric"`
	Strengths               []string         `json:"strengths"`
	GrowthAreas             []string         `json:"growth_areas"`
	CognitivePattern        string           `json:"cognitive_pattern"`
	DevelopmentPlan         []string         `json:"development_plan"`
	TalentIndicators        []string         `json:"talent_indicators"`
	MatchingDomains         []string         `json:"matching_domains"`
	LearningRecommendations []string         `json:"learning_recommendations"`
	TalentDevelopmentFocus  []TalentFocus    `json:"talent_development_focus"`
	Wellbeing               *WellbeingResult `json:"wellbeing"`
}
