package domain

import "math"

const (
	MinScore     = 0
	MaxScore     = 5
	NeutralScore = 3
)

// Dimension is one of the five fixed writing-quality axes.
type Dimension string

const (
	DimStructure   Dimension = "structure"
	DimClarity     Dimension = "clarity"
	DimEvidence    Dimension = "evidence"
	DimOriginality Dimension = "originality"
	DimCoherence   Dimension = "coherence"
)

// Dimensions is the canonical display order.
var Dimensions = []Dimension{DimStructure, DimClarity, DimEvidence, DimOriginality, DimCoherence}

// Label returns the capitalized dimension name.
func (d Dimension) Label() string {
	switch d {
	case DimStructure:
		return "Structure"
	case DimClarity:
		return "Clarity"
	case DimEvidence:
		return "Evidence"
	case DimOriginality:
		return "Originality"
	case DimCoherence:
		return "Coherence"
	}
	return string(d)
}

// RubricScores holds one 0-5 score per dimension. All five are always present.
type RubricScores struct {
	Structure   int `json:"structure"`
	Clarity     int `json:"clarity"`
	Evidence    int `json:"evidence"`
	Originality int `json:"originality"`
	Coherence   int `json:"coherence"`
}

// DefaultScores returns the neutral score set used when a rubric cannot be decoded.
func DefaultScores() RubricScores {
	return RubricScores{
		Structure:   NeutralScore,
		Clarity:     NeutralScore,
		Evidence:    NeutralScore,
		Originality: NeutralScore,
		Coherence:   NeutralScore,
	}
}

// Get returns the score for d, or 0 for an unknown dimension.
func (s RubricScores) Get(d Dimension) int {
	switch d {
	case DimStructure:
		return s.Structure
	case DimClarity:
		return s.Clarity
	case DimEvidence:
		return s.Evidence
	case DimOriginality:
		return s.Originality
	case DimCoherence:
		return s.Coherence
	}
	return 0
}

// Set stores v for d after clamping it into range.
func (s *RubricScores) Set(d Dimension, v int) {
	v = ClampScore(v)
	switch d {
	case DimStructure:
		s.Structure = v
	case DimClarity:
		s.Clarity = v
	case DimEvidence:
		s.Evidence = v
	case DimOriginality:
		s.Originality = v
	case DimCoherence:
		s.Coherence = v
	}
}

// Sum returns the total over all dimensions.
func (s RubricScores) Sum() int {
	return s.Structure + s.Clarity + s.Evidence + s.Originality + s.Coherence
}

// Average is the unweighted mean of the five scores.
func (s RubricScores) Average() float64 {
	return float64(s.Sum()) / float64(len(Dimensions))
}

// ClampScore bounds v to [MinScore, MaxScore].
func ClampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// RoundScore rounds a fractional model score half away from zero and clamps it.
func RoundScore(f float64) int {
	if math.IsNaN(f) {
		return NeutralScore
	}
	return ClampScore(int(math.Round(f)))
}

// RubricResult pairs scores with a short evidence-quoted justification per dimension.
type RubricResult struct {
	Scores         RubricScores         `json:"scores"`
	Justifications map[Dimension]string `json:"justifications"`
}
