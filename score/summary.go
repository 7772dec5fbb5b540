package score

import "sort"

// Tier is the qualitative bucket derived from the total score.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// tierFor buckets a total score: ≥80 excellent, ≥60 good, ≥40 fair, else poor.
func tierFor(totalScore int) Tier {
	switch {
	case totalScore >= 80:
		return TierExcellent
	case totalScore >= 60:
		return TierGood
	case totalScore >= 40:
		return TierFair
	default:
		return TierPoor
	}
}

// CategoryStanding is one category's relative performance.
type CategoryStanding struct {
	Category   Category `json:"category"`
	Score      int      `json:"score"`
	MaxScore   int      `json:"max_score"`
	Percentage float64  `json:"percentage"`
}

// Summary is the derived, non-persisted qualitative view of a report.
type Summary struct {
	OverallScore       int                `json:"overall_score"`
	Tier               Tier               `json:"tier"`
	Strengths          []CategoryStanding `json:"strengths"`
	Weaknesses         []CategoryStanding `json:"weaknesses"`
	TopRecommendations []string           `json:"top_recommendations"`
}

// Summarize classifies a report into a tier, strengths and weaknesses.
//
// Both strengths and weaknesses are drawn from the same list sorted
// descending by percentage: strengths are the first three entries at or
// above 70%, weaknesses the first three entries below 50%. For weaknesses
// that selects the highest-percentage categories of the underperforming
// set rather than the worst offenders; the behavior is kept as-is and
// pinned by a regression test.
func Summarize(report *Report) *Summary {
	standings := make([]CategoryStanding, 0, len(Categories))
	for _, category := range Categories {
		score := report.Categories[category]
		max := categoryMax[category]
		standings = append(standings, CategoryStanding{
			Category:   category,
			Score:      score,
			MaxScore:   max,
			Percentage: float64(score) / float64(max) * 100,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Percentage > standings[j].Percentage
	})

	var strengths, weaknesses []CategoryStanding
	for _, s := range standings {
		if s.Percentage >= 70 && len(strengths) < 3 {
			strengths = append(strengths, s)
		}
		if s.Percentage < 50 && len(weaknesses) < 3 {
			weaknesses = append(weaknesses, s)
		}
	}

	top := report.Recommendations
	if len(top) > 5 {
		top = top[:5]
	}

	return &Summary{
		OverallScore:       report.TotalScore,
		Tier:               tierFor(report.TotalScore),
		Strengths:          strengths,
		Weaknesses:         weaknesses,
		TopRecommendations: top,
	}
}
