// Package talent derives career-domain fit and longitudinal profiles from
// rubric scores. Everything here is pure computation.
package talent

import (
	"math"

	"github.com/alexanderramin/nuclea/internal/domain"
)

// Weights maps each rubric dimension to its share of a domain's fit.
// The shares of one domain sum to 1.0.
type Weights map[domain.Dimension]float64

type CareerDomain struct {
	Name    string
	Icon    string
	Color   string
	Weights Weights
}

// CareerDomains is the static domain table, in display order.
var CareerDomains = []CareerDomain{
	{
		Name:  "Technology",
		Icon:  "💻",
		Color: "#3b82f6",
		Weights: Weights{
			domain.DimStructure: 0.30, domain.DimClarity: 0.15, domain.DimEvidence: 0.25,
			domain.DimOriginality: 0.15, domain.DimCoherence: 0.15,
		},
	},
	{
		Name:  "Sciences",
		Icon:  "🔬",
		Color: "#10b981",
		Weights: Weights{
			domain.DimStructure: 0.25, domain.DimClarity: 0.15, domain.DimEvidence: 0.35,
			domain.DimOriginality: 0.10, domain.DimCoherence: 0.15,
		},
	},
	{
		Name:  "Humanities",
		Icon:  "📚",
		Color: "#f59e0b",
		Weights: Weights{
			domain.DimStructure: 0.15, domain.DimClarity: 0.25, domain.DimEvidence: 0.20,
			domain.DimOriginality: 0.20, domain.DimCoherence: 0.20,
		},
	},
	{
		Name:  "Creative Arts",
		Icon:  "🎨",
		Color: "#ec4899",
		Weights: Weights{
			domain.DimStructure: 0.10, domain.DimClarity: 0.20, domain.DimEvidence: 0.05,
			domain.DimOriginality: 0.45, domain.DimCoherence: 0.20,
		},
	},
	{
		Name:  "Business",
		Icon:  "📊",
		Color: "#8b5cf6",
		Weights: Weights{
			domain.DimStructure: 0.30, domain.DimClarity: 0.25, domain.DimEvidence: 0.20,
			domain.DimOriginality: 0.05, domain.DimCoherence: 0.20,
		},
	},
	{
		Name:  "Law",
		Icon:  "⚖️",
		Color: "#f97316",
		Weights: Weights{
			domain.DimStructure: 0.20, domain.DimClarity: 0.20, domain.DimEvidence: 0.30,
			domain.DimOriginality: 0.10, domain.DimCoherence: 0.20,
		},
	},
}

// Fit returns round(100 * Σ score/5 * weight) as a percentage in [0,100].
// Dimensions are summed in a fixed order so equal inputs give equal output.
func Fit(scores domain.RubricScores, weights Weights) int {
	var total float64
	for _, d := range domain.Dimensions {
		total += float64(scores.Get(d)) / domain.MaxScore * weights[d]
	}
	fit := int(math.Round(total * 100))
	return min(max(fit, 0), 100)
}

// DomainFit is one domain's fit for a single set of scores.
type DomainFit struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Fit   int    `json:"fit"`
}

// DomainFits computes the fit of every career domain, in table order.
func DomainFits(scores domain.RubricScores) []DomainFit {
	out := make([]DomainFit, len(CareerDomains))
	for i, cd := range CareerDomains {
		out[i] = DomainFit{Name: cd.Name, Icon: cd.Icon, Color: cd.Color, Fit: Fit(scores, cd.Weights)}
	}
	return out
}
