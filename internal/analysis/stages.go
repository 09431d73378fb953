package analysis

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/llm"
)

// fields is an untrusted JSON object with lower-cased keys. Every accessor
// parses one value or returns that value's default; nothing fails.
type fields map[string]json.RawMessage

// decodeFields extracts the first JSON object from raw model output.
func decodeFields(raw string) (fields, bool) {
	f, ok := llm.Decode[fields](raw, nil, nil)
	if !ok || f == nil {
		return fields{}, false
	}
	return f.lowerKeys(), true
}

func (f fields) lowerKeys() fields {
	out := make(fields, len(f))
	for k, v := range f {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func (f fields) object(key string) fields {
	var m fields
	if err := json.Unmarshal(f[key], &m); err != nil || m == nil {
		return fields{}
	}
	return m.lowerKeys()
}

func (f fields) str(key string) string {
	var s string
	if err := json.Unmarshal(f[key], &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// strs accepts an array and keeps its non-empty string elements. A bare
// string is treated as a one-element list.
func (f fields) strs(key string) []string {
	out := []string{}
	raw, ok := f[key]
	if !ok {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		if s := f.str(key); s != "" {
			out = append(out, s)
		}
		return out
	}
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// score reads a 0-5 score. Numbers are rounded and clamped, numeric
// strings are accepted, anything else is the neutral score.
func (f fields) score(key string) (int, bool) {
	raw, ok := f[key]
	if !ok {
		return domain.NeutralScore, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return domain.RoundScore(n), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return domain.RoundScore(n), true
		}
	}
	return domain.NeutralScore, false
}

func (f fields) focus(key string) []domain.TalentFocus {
	out := []domain.TalentFocus{}
	var items []json.RawMessage
	if err := json.Unmarshal(f[key], &items); err != nil {
		return out
	}
	for _, item := range items {
		var m fields
		if json.Unmarshal(item, &m) != nil || m == nil {
			continue
		}
		m = m.lowerKeys()
		talent := m.str("talent")
		if talent == "" {
			continue
		}
		out = append(out, domain.TalentFocus{
			Talent:    talent,
			Rationale: m.str("rationale"),
			NextSteps: m.strs("next_steps"),
		})
	}
	return out
}

// decodeRubric returns the decoded rubric and the number of scores that
// fell back to neutral.
func decodeRubric(raw string) (domain.RubricResult, int) {
	result := domain.RubricResult{
		Scores:         domain.DefaultScores(),
		Justifications: map[domain.Dimension]string{},
	}
	f, ok := decodeFields(raw)
	if !ok {
		return result, len(domain.Dimensions)
	}

	scores := f.object("scores")
	justifications := f.object("justifications")
	defaulted := 0
	for _, d := range domain.Dimensions {
		v, ok := scores.score(string(d))
		if !ok {
			defaulted++
		}
		result.Scores.Set(d, v)
		if j := justifications.str(string(d)); j != "" {
			result.Justifications[d] = j
		}
	}
	return result, defaulted
}

type profileOutput struct {
	Strengths        []string
	GrowthAreas      []string
	CognitivePattern string
	DevelopmentPlan  []string
}

func decodeProfile(raw string) (profileOutput, bool) {
	f, ok := decodeFields(raw)
	return profileOutput{
		Strengths:        f.strs("strengths"),
		GrowthAreas:      f.strs("growth_areas"),
		CognitivePattern: f.str("cognitive_pattern"),
		DevelopmentPlan:  f.strs("development_plan"),
	}, ok
}

type talentOutput struct {
	TalentIndicators        []string
	MatchingDomains         []string
	LearningRecommendations []string
	TalentDevelopmentFocus  []domain.TalentFocus
}

// decodeTalent drops career framing for young tiers even when the model
// sends it.
func decodeTalent(raw string, mode domain.AnalysisMode) (talentOutput, bool) {
	f, ok := decodeFields(raw)
	out := talentOutput{
		TalentIndicators:        f.strs("talent_indicators"),
		MatchingDomains:         f.strs("matching_domains"),
		LearningRecommendations: f.strs("learning_recommendations"),
		TalentDevelopmentFocus:  f.focus("talent_development_focus"),
	}
	if tierFor(mode).young {
		out.MatchingDomains = []string{}
		out.TalentDevelopmentFocus = []domain.TalentFocus{}
	}
	return out, ok
}

// decodeWellbeing falls back to the default result when no object is
// found, and per field otherwise. An unknown level becomes none.
func decodeWellbeing(raw string) (domain.WellbeingResult, bool) {
	def := domain.DefaultWellbeing()
	f, ok := decodeFields(raw)
	if !ok {
		return def, false
	}
	level, known := domain.ParseWellbeingLevel(f.str("level"))
	if !known {
		level = def.Level
	}
	note := f.str("note")
	if note == "" {
		note = def.Note
	}
	next := f.str("next_step")
	if next == "" {
		next = def.NextStep
	}
	return domain.WellbeingResult{Level: level, Note: note, NextStep: next}, known
}
