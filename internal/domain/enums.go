package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMode is returned when an analysis mode string is not one of the supported tiers.
	ErrUnknownMode = errors.New("unknown analysis mode")

	// ErrUnknownWorkType is returned when a work type string is not recognized.
	ErrUnknownWorkType = errors.New("unknown work type")
)

// AnalysisMode is the education tier a text is assessed against.
type AnalysisMode string

const (
	ModeElementary AnalysisMode = "elementary"
	ModeHighSchool AnalysisMode = "highschool"
	ModeUniversity AnalysisMode = "university"
)

// DefaultMode is used when the caller does not pick a tier.
const DefaultMode = ModeHighSchool

// AnalysisModes lists every tier, youngest first.
var AnalysisModes = []AnalysisMode{ModeElementary, ModeHighSchool, ModeUniversity}

// Valid reports whether m is one of the supported tiers.
func (m AnalysisMode) Valid() bool {
	switch m {
	case ModeElementary, ModeHighSchool, ModeUniversity:
		return true
	}
	return false
}

// Label returns a display name for the tier.
func (m AnalysisMode) Label() string {
	switch m {
	case ModeElementary:
		return "Elementary"
	case ModeHighSchool:
		return "High School"
	case ModeUniversity:
		return "University"
	}
	return string(m)
}

// ParseAnalysisMode converts user input to an AnalysisMode. An empty string
// yields DefaultMode. "default" and "high_school" are accepted as aliases.
func ParseAnalysisMode(s string) (AnalysisMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMode, nil
	case "elementary":
		return ModeElementary, nil
	case "highschool", "high_school", "default":
		return ModeHighSchool, nil
	case "university":
		return ModeUniversity, nil
	}
	return "", fmt.Errorf("%w: %q (expected elementary, highschool or university)", ErrUnknownMode, s)
}

// WellbeingLevel is the advisory severity produced by the wellbeing screen.
type WellbeingLevel string

const (
	WellbeingNone WellbeingLevel = "none"
	WellbeingMild WellbeingLevel = "mild"
	WellbeingFlag WellbeingLevel = "flag"
)

// Severity orders levels: none < mild < flag. Unknown levels rank below none.
func (l WellbeingLevel) Severity() int {
	switch l {
	case WellbeingNone:
		return 0
	case WellbeingMild:
		return 1
	case WellbeingFlag:
		return 2
	}
	return -1
}

// ParseWellbeingLevel accepts a level string case-insensitively.
func ParseWellbeingLevel(s string) (WellbeingLevel, bool) {
	l := WellbeingLevel(strings.ToLower(strings.TrimSpace(s)))
	if l.Severity() < 0 {
		return "", false
	}
	return l, true
}

type WorkType string

const (
	WorkEssay    WorkType = "essay"
	WorkExam     WorkType = "exam"
	WorkHomework WorkType = "homework"
	WorkProject  WorkType = "project"
	WorkOther    WorkType = "other"
)

// ValidWorkTypes is the canonical set of accepted work type strings.
var ValidWorkTypes = map[string]bool{
	"essay": true, "exam": true, "homework": true, "project": true, "other": true,
}

// ParseWorkType normalizes s; empty input yields WorkEssay.
func ParseWorkType(s string) (WorkType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return WorkEssay, nil
	}
	if !ValidWorkTypes[v] {
		return "", fmt.Errorf("%w: %q", ErrUnknownWorkType, s)
	}
	return WorkType(v), nil
}
