package talent

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/nuclea/internal/domain"
)

// MinEntriesForTrends is the smallest series for which trajectories mean
// anything. Aggregate still computes them for a single entry.
const MinEntriesForTrends = 2

// TrendThreshold is the score change that must be exceeded, in either
// direction, before a dimension counts as moving.
const TrendThreshold = 0.5

// consistentShare is the fraction of analyses a strength label must appear in.
const consistentShare = 0.4

// strengthSeparator splits "Skill label + 'quote'" strengths.
const strengthSeparator = " + "

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// ClassifyTrend maps a last-minus-first change to a trend. A change of
// exactly ±TrendThreshold is stable.
func ClassifyTrend(change float64) Trend {
	switch {
	case change > TrendThreshold:
		return TrendImproving
	case change < -TrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Entry is one analysed work as seen by the aggregator.
type Entry struct {
	CreatedAt        time.Time
	Title            string
	Scores           domain.RubricScores
	TalentIndicators []string
	Strengths        []string
}

// EntryFromAnalyzedWork flattens a stored work/analysis pair.
func EntryFromAnalyzedWork(aw domain.AnalyzedWork) Entry {
	return Entry{
		CreatedAt:        aw.Work.CreatedAt,
		Title:            aw.Work.Title,
		Scores:           aw.Analysis.Scores,
		TalentIndicators: aw.Analysis.Result.TalentIndicators,
		Strengths:        aw.Analysis.Result.Strengths,
	}
}

type ScorePoint struct {
	Date      time.Time `json:"date"`
	WorkTitle string    `json:"work_title"`
	domain.RubricScores
	Average float64 `json:"average"`
}

type TalentSignal struct {
	Indicator     string `json:"indicator"`
	Frequency     int    `json:"frequency"`
	TotalAnalyses int    `json:"total_analyses"`
	Confidence    int    `json:"confidence"`
}

type DomainFitPoint struct {
	Date      time.Time `json:"date"`
	WorkTitle string    `json:"work_title"`
	// Fits is keyed by CareerDomain.Name.
	Fits map[string]int `json:"fits"`
}

type Trajectory struct {
	Dimension     domain.Dimension `json:"dimension"`
	Label         string           `json:"label"`
	FirstScore    int              `json:"first_score"`
	LastScore     int              `json:"last_score"`
	AverageScore  float64          `json:"average_score"`
	Trend         Trend            `json:"trend"`
	ChangePercent int              `json:"change_percent"`
}

type TopDomain struct {
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
	AvgFit int    `json:"avg_fit"`
}

// Profile is the longitudinal view of one student. It is derived on
// demand and never stored.
type Profile struct {
	ScoreProgression     []ScorePoint     `json:"score_progression"`
	TalentSignals        []TalentSignal   `json:"talent_signals"`
	DomainFitProgression []DomainFitPoint `json:"domain_fit_progression"`
	Trajectories         []Trajectory     `json:"trajectories"`
	TopDomains           []TopDomain      `json:"top_domains"`
	ConsistentStrengths  []string         `json:"consistent_strengths"`
	TotalAnalyses        int              `json:"total_analyses"`
}

// HasTrends reports whether the series is long enough for trajectories.
func (p *Profile) HasTrends() bool {
	return p != nil && p.TotalAnalyses >= MinEntriesForTrends
}

// Aggregate combines entries into a Profile, oldest first. It returns nil
// for an empty series and never modifies entries.
func Aggregate(entries []Entry) *Profile {
	if len(entries) == 0 {
		return nil
	}

	series := make([]Entry, len(entries))
	copy(series, entries)
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].CreatedAt.Before(series[j].CreatedAt)
	})

	return &Profile{
		ScoreProgression:     scoreProgression(series),
		TalentSignals:        talentSignals(series),
		DomainFitProgression: domainFitProgression(series),
		Trajectories:         trajectories(series),
		TopDomains:           topDomains(series),
		ConsistentStrengths:  consistentStrengths(series),
		TotalAnalyses:        len(series),
	}
}

func scoreProgression(series []Entry) []ScorePoint {
	out := make([]ScorePoint, len(series))
	for i, e := range series {
		out[i] = ScorePoint{
			Date:         e.CreatedAt,
			WorkTitle:    e.Title,
			RubricScores: e.Scores,
			Average:      round1(e.Scores.Average()),
		}
	}
	return out
}

// talentSignals counts each trimmed indicator once per analysis, so
// Frequency is the number of analyses that named it rather than the raw
// number of mentions. An indicator repeated inside one analysis adds one.
// Matching is exact: "Systems thinking" and "systems thinking" are two
// signals.
func talentSignals(series []Entry) []TalentSignal {
	total := len(series)
	counts, order := countOncePerEntry(series, func(e Entry) []string {
		return e.TalentIndicators
	}, strings.TrimSpace)

	out := make([]TalentSignal, 0, len(order))
	for _, ind := range order {
		freq := counts[ind]
		out = append(out, TalentSignal{
			Indicator:     ind,
			Frequency:     freq,
			TotalAnalyses: total,
			Confidence:    percent(float64(freq), float64(total)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func domainFitProgression(series []Entry) []DomainFitPoint {
	out := make([]DomainFitPoint, len(series))
	for i, e := range series {
		fits := make(map[string]int, len(CareerDomains))
		for _, cd := range CareerDomains {
			fits[cd.Name] = Fit(e.Scores, cd.Weights)
		}
		out[i] = DomainFitPoint{Date: e.CreatedAt, WorkTitle: e.Title, Fits: fits}
	}
	return out
}

func trajectories(series []Entry) []Trajectory {
	out := make([]Trajectory, 0, len(domain.Dimensions))
	for _, d := range domain.Dimensions {
		first := series[0].Scores.Get(d)
		last := series[len(series)-1].Scores.Get(d)

		var sum int
		for _, e := range series {
			sum += e.Scores.Get(d)
		}
		change := float64(last - first)

		changePct := 0
		if first != 0 {
			changePct = percent(change, float64(first))
		}

		out = append(out, Trajectory{
			Dimension:     d,
			Label:         d.Label(),
			FirstScore:    first,
			LastScore:     last,
			AverageScore:  round1(float64(sum) / float64(len(series))),
			Trend:         ClassifyTrend(change),
			ChangePercent: changePct,
		})
	}
	return out
}

func topDomains(series []Entry) []TopDomain {
	out := make([]TopDomain, len(CareerDomains))
	for i, cd := range CareerDomains {
		var sum int
		for _, e := range series {
			sum += Fit(e.Scores, cd.Weights)
		}
		out[i] = TopDomain{
			Name:   cd.Name,
			Icon:   cd.Icon,
			Color:  cd.Color,
			AvgFit: int(math.Round(float64(sum) / float64(len(series)))),
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AvgFit > out[j].AvgFit
	})
	return out
}

// consistentStrengths keeps labels seen in at least 40% of analyses. A label
// cited twice with different evidence in one analysis still counts once.
func consistentStrengths(series []Entry) []string {
	counts, order := countOncePerEntry(series, func(e Entry) []string {
		return e.Strengths
	}, StrengthLabel)

	threshold := int(math.Ceil(float64(len(series)) * consistentShare))
	kept := make([]string, 0, len(order))
	for _, label := range order {
		if counts[label] >= threshold {
			kept = append(kept, label)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return counts[kept[i]] > counts[kept[j]]
	})
	return kept
}

// StrengthLabel returns the part of a strength before its quoted evidence.
func StrengthLabel(s string) string {
	label, _, _ := strings.Cut(s, strengthSeparator)
	return strings.TrimSpace(label)
}

// countOncePerEntry counts how many entries contain each normalized value
// and returns the values in order of first appearance. Empty values are
// ignored.
func countOncePerEntry(series []Entry, values func(Entry) []string, normalize func(string) string) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, e := range series {
		seen := make(map[string]bool)
		for _, v := range values(e) {
			key := normalize(v)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	return counts, order
}

func percent(part, whole float64) int {
	return int(math.Round(100 * part / whole))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
