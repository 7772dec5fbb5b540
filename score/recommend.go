package score

import "sort"

const (
	// maxRecommendations caps the ranked recommendation list.
	maxRecommendations = 10
	// minRecommendations triggers backfilling from the generic pool.
	minRecommendations = 3
)

// GenericRecommendations backfills sparse recommendation lists so a report
// always carries actionable advice, even for near-perfect pages.
var GenericRecommendations = []string{
	"Improve the overall contrast ratio of the page",
	"Place the most important information near the top of the page",
	"Make the navigation more intuitive",
}

// Rank orders violation recommendations for presentation:
//
//	collect → stable-sort by severity desc → truncate(10)
//	→ backfill-if-short(pool, dedup by text) → cap(10)
//
// The incoming slice must already be in fixed category order with rule
// declaration order within each category; the stable sort preserves that
// order among equal severities, so it acts as the tie-break.
func Rank(violations []Violation, pool []string) []string {
	ordered := make([]Violation, len(violations))
	copy(ordered, violations)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Severity.rank() > ordered[j].Severity.rank()
	})

	recommendations := make([]string, 0, minRecommendations)
	for _, v := range ordered {
		if len(recommendations) >= maxRecommendations {
			break
		}
		recommendations = append(recommendations, v.Recommendation)
	}

	if len(recommendations) < minRecommendations {
		for _, generic := range pool {
			if len(recommendations) >= minRecommendations ||
				len(recommendations) >= maxRecommendations {
				break
			}
			if containsText(recommendations, generic) {
				continue
			}
			recommendations = append(recommendations, generic)
		}
	}

	return recommendations
}

func containsText(list []string, text string) bool {
	for _, s := range list {
		if s == text {
			return true
		}
	}
	return false
}
