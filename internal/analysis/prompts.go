package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/nuclea/internal/domain"
)

// systemPrompt is sent with every stage.
const systemPrompt = `You are an assessment assistant for student writing.
You describe observable text behavior only: structure, reasoning, support.
You never describe personality, motivation, emotion or identity, and you never diagnose.
You output exactly one JSON object and nothing else: no markdown, no commentary.
Use strict JSON numeric literals (3, never "3" or .3).`

// languageRules are shared by the rubric, profile and talent stages.
const languageRules = `REQUIREMENTS (EVIDENCE-BASED LANGUAGE):
- Describe only observable text behavior
- No personality, motivation, emotion or identity references
- No adjectives aimed at the person (e.g. "creative", "lazy")
- No speculation about psychology or intention
- No emojis, no diagnosis, no moral judgement
- Short, declarative sentences
- Every piece of evidence quotes the text directly, at most 6 words`

const rubricSchema = `{
  "scores": {
    "structure": 0-5,
    "clarity": 0-5,
    "evidence": 0-5,
    "originality": 0-5,
    "coherence": 0-5
  },
  "justifications": {
    "structure": "1-2 sentences on observable behavior plus a direct quote (max 6 words)",
    "clarity": "1-2 sentences on observable behavior plus a direct quote (max 6 words)",
    "evidence": "1-2 sentences on observable behavior plus a direct quote (max 6 words)",
    "originality": "1-2 sentences on observable behavior plus a direct quote (max 6 words)",
    "coherence": "1-2 sentences on observable behavior plus a direct quote (max 6 words)"
  }
}`

const profileSchema = `{
  "strengths": ["Skill name + 'quote (max 6 words)'", "...", "..."],
  "growth_areas": ["Concrete skill gap + 'quote (max 6 words)'", "...", "..."],
  "cognitive_pattern": "reasoning type, information organization, abstraction level, problem-solving approach",
  "development_plan": ["Day 1: ...", "Day 2: ...", "Day 3: ..."]
}`

const talentSchemaYoung = `{
  "talent_indicators": ["Skill cluster or thinking style", "...", "..."],
  "learning_recommendations": ["Subject + task built on a named interest: details", "...", "..."]
}`

const talentSchema = `{
  "talent_indicators": ["Skill cluster or thinking style", "...", "..."],
  "matching_domains": ["Academic field or career area", "...", "..."],
  "talent_development_focus": [
    {
      "talent": "Talent name from the indicators",
      "rationale": "One sentence: why prioritize this talent",
      "next_steps": ["Concrete action", "Concrete action"]
    }
  ]
}`

const wellbeingSchema = `{
  "level": "none|mild|flag",
  "note": "One cautious sentence of rationale",
  "next_step": "One sentence suggesting a human action, e.g. 'Offer a check-in conversation'"
}`

// Wellbeing excerpts do not depend on the tier.
const wellbeingExcerptLen = 2000

// tier carries every piece of prompt wording that varies by mode.
type tier struct {
	audience string

	rubricLen  int
	profileLen int
	talentLen  int

	criteria         string
	strengthExamples string
	growthExamples   string
	patternGuide     string
	planGuide        string

	// young tiers get learning recommendations instead of career
	// domains and development focus.
	young bool
}

var tiers = map[domain.AnalysisMode]tier{
	domain.ModeElementary: {
		audience:   "an elementary school work",
		rubricLen:  500,
		profileLen: 500,
		talentLen:  800,
		criteria: `1. Structure: basic organization, sentence flow, simple transitions
2. Clarity: word choice, sentence clarity, age-appropriate language
3. Evidence: examples, personal experiences, simple facts
4. Originality: personal expression, own ideas, unique perspectives
5. Coherence: logical flow, staying on topic, simple connections`,
		strengthExamples: `"Narrative thinking", "Topic organization", "Personal expression"`,
		growthExamples:   `"Limited sentence variety", "Basic vocabulary expansion", "Simple transitions missing"`,
		patternGuide:     "2 sentences: reasoning type (simple/narrative/descriptive), organization (topical/chronological/personal), abstraction level (concrete/personal), problem-solving approach (direct/exploratory)",
		planGuide:        `Each day is one exercise tied to a growth area AND an interest named in the text, e.g. "Day 1: Read short texts about football to grow vocabulary"`,
		young:            true,
	},
	domain.ModeHighSchool: {
		audience:   "a high school academic work",
		rubricLen:  2000,
		profileLen: 1500,
		talentLen:  1200,
		criteria: `1. Structure: visible organization, sectioning, transitions
2. Clarity: precise wording, sentence control, readability
3. Evidence: data, citations, source integration
4. Originality: unique framing, synthesis, novel angles
5. Coherence: logical flow, consistent argument linkage`,
		strengthExamples: `"Pattern Recognition", "Deductive Structuring", "Comparative Reasoning"`,
		growthExamples:   `"Low evidence density", "Weak causal linking"`,
		patternGuide:     "2-3 sentences: reasoning type, information organization, abstraction level, problem-solving approach",
		planGuide:        "Each day is one targeted exercise linked to the growth areas",
	},
	domain.ModeUniversity: {
		audience:   "a university-level academic work",
		rubricLen:  3000,
		profileLen: 2000,
		talentLen:  1500,
		criteria: `1. Structure: argument architecture, sectioning, signposting
2. Clarity: disciplinary precision, sentence control, terminology use
3. Evidence: source quality, citation practice, critical use of data
4. Originality: independent synthesis, framing, contribution beyond sources
5. Coherence: thesis alignment, counter-argument handling, logical linkage`,
		strengthExamples: `"Systems Thinking", "Critical Source Evaluation", "Theoretical Synthesis"`,
		growthExamples:   `"Unqualified generalization", "Thin engagement with counter-arguments"`,
		patternGuide:     "2-3 sentences: reasoning type, information organization, abstraction level, problem-solving approach",
		planGuide:        "Each day is one targeted exercise linked to the growth areas, pitched at university level",
	},
}

// tierFor returns the wording for mode. Unknown modes use DefaultMode.
func tierFor(mode domain.AnalysisMode) tier {
	if t, ok := tiers[mode]; ok {
		return t
	}
	return tiers[domain.DefaultMode]
}

// excerpt cuts text to at most n runes.
func excerpt(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	i := 0
	for pos := range text {
		if i == n {
			return text[:pos]
		}
		i++
	}
	return text
}

// BuildRubricPrompt asks for five 0-5 scores with quoted justifications.
func BuildRubricPrompt(text string, mode domain.AnalysisMode) string {
	t := tierFor(mode)
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze %s and assign a score from 0 to 5 for each of five fixed criteria:\n\n", t.audience)
	b.WriteString(t.criteria)
	b.WriteString("\n\n")
	b.WriteString(languageRules)
	b.WriteString("\n- Each justification: 1-2 sentences on observable behavior plus a direct quote as evidence\n\n")
	fmt.Fprintf(&b, "TEXT:\n%s\n\n", excerpt(text, t.rubricLen))
	b.WriteString("Respond ONLY with JSON using this schema:\n")
	b.WriteString(rubricSchema)
	return b.String()
}

// BuildProfilePrompt asks for strengths, growth areas, a cognitive pattern
// and a three-day plan, grounded on the rubric scores.
func BuildProfilePrompt(scores domain.RubricScores, text string, mode domain.AnalysisMode) string {
	t := tierFor(mode)
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze %s and produce a structured cognitive profile.\n\n", t.audience)
	fmt.Fprintf(&b, "SCORES:\n%s\n\n", mustIndent(scores))
	fmt.Fprintf(&b, "TEXT (excerpt):\n%s\n\n", excerpt(text, t.profileLen))
	b.WriteString("PRODUCE:\n")
	fmt.Fprintf(&b, "A. 3 strengths: each a cognitive skill (e.g. %s) with a quoted excerpt.\n", t.strengthExamples)
	fmt.Fprintf(&b, "B. 3 growth areas: each a concrete skill gap (e.g. %s) with a quoted excerpt.\n", t.growthExamples)
	fmt.Fprintf(&b, "C. Cognitive pattern: %s.\n", t.patternGuide)
	fmt.Fprintf(&b, "D. 3-day development plan, Day 1 to Day 3. %s.\n\n", t.planGuide)
	b.WriteString("Write each strength and growth area as \"Skill name + 'quote'\".\n\n")
	b.WriteString(languageRules)
	b.WriteString("\n\nRespond ONLY with JSON using this schema:\n")
	b.WriteString(profileSchema)
	return b.String()
}

// BuildTalentPrompt asks for talent indicators plus either career domains
// and a development focus, or interest-based learning recommendations for
// young tiers.
func BuildTalentPrompt(strengths []string, cognitivePattern string, scores domain.RubricScores, text string, mode domain.AnalysisMode) string {
	t := tierFor(mode)
	if strengths == nil {
		strengths = []string{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on the analysis of %s, identify early talent indicators.\n\n", t.audience)
	fmt.Fprintf(&b, "STRENGTHS:\n%s\n\n", mustIndent(strengths))
	fmt.Fprintf(&b, "COGNITIVE PATTERN:\n%s\n\n", cognitivePattern)
	fmt.Fprintf(&b, "SCORES:\n%s\n\n", mustIndent(scores))
	fmt.Fprintf(&b, "TEXT (excerpt):\n%s\n\n", excerpt(text, t.talentLen))

	b.WriteString("DELIVER:\n")
	if t.young {
		b.WriteString("E. Talent indicators (3-5): skill clusters, ways of thinking, or interest patterns visible in the text.\n")
		b.WriteString("F. Learning recommendations (3-5): concrete teaching ideas that each name a specific interest taken from the text ")
		b.WriteString("(a sport, hobby, subject, food). Format: \"Subject + task with interest: details\".\n\n")
	} else {
		b.WriteString("E. Talent indicators (3-5): skill clusters (e.g. \"Pattern Recognition + Causal Linking\") or ways of thinking.\n")
		b.WriteString("F. Matching domains (3-5): academic fields, professional domains or career tracks where these skills apply.\n")
		b.WriteString("G. Talent development focus (1-2): a talent from the indicators, a one-sentence rationale, 1-2 concrete next steps.\n\n")
		b.WriteString("Indicators say what is visible. Domains say where it applies. Focus says what to develop first and how.\n\n")
	}
	b.WriteString(languageRules)
	b.WriteString("\n- No political or demographic inference\n\n")
	b.WriteString("Respond ONLY with JSON using this schema:\n")
	if t.young {
		b.WriteString(talentSchemaYoung)
	} else {
		b.WriteString(talentSchema)
	}
	return b.String()
}

// BuildWellbeingPrompt asks for an advisory level, a note and a human next
// step. Detected keywords are embedded as context.
func BuildWellbeingPrompt(text string, keywords []string) string {
	keywordInfo := "No flagged keywords detected"
	if len(keywords) > 0 {
		keywordInfo = "Detected keywords: " + strings.Join(keywords, ", ")
	}

	var b strings.Builder
	b.WriteString("Review the following text for potential wellbeing signals. This is NOT a diagnosis.\n\n")
	fmt.Fprintf(&b, "TEXT:\n%s\n\n", excerpt(text, wellbeingExcerptLen))
	fmt.Fprintf(&b, "KEYWORD CONTEXT:\n%s\n\n", keywordInfo)
	b.WriteString(`SAFETY REQUIREMENTS:
- Do NOT deliver a diagnosis.
- The output is an indicator only, not medical guidance.
- A human must review the text and decide next steps.
- Use cautious, supportive wording.

LEVELS:
- "none": no notable wellbeing signals
- "mild": light indicators such as stress or uncertainty
- "flag": stronger signals that need a person's attention

`)
	b.WriteString("Respond ONLY with JSON using this schema:\n")
	b.WriteString(wellbeingSchema)
	return b.String()
}

func mustIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
