package score

// Violation is a rule that fired during one evaluation run.
type Violation struct {
	RuleID         string   `json:"rule_id"`
	Category       Category `json:"category"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	Passed         bool     `json:"passed"`
	ScoreImpact    int      `json:"score_impact"`
	Recommendation string   `json:"recommendation"`
}

// violation instantiates the fired form of a rule.
func (r Rule) violation() Violation {
	return Violation{
		RuleID:         r.ID,
		Category:       r.Category,
		Description:    r.Description,
		Severity:       r.Severity,
		Passed:         false,
		ScoreImpact:    r.Impact,
		Recommendation: r.Recommendation,
	}
}

// CategoryResult is one category's clamped score plus its fired violations,
// in rule declaration order.
type CategoryResult struct {
	Category   Category    `json:"category"`
	Score      int         `json:"score"`
	MaxScore   int         `json:"max_score"`
	Violations []Violation `json:"rules"`
}

// Report is the full per-request scoring output.
type Report struct {
	TotalScore      int                          `json:"total_score"`
	Categories      map[Category]int             `json:"categories"`
	Recommendations []string                     `json:"recommendations"`
	CategoryDetails map[Category]*CategoryResult `json:"category_details"`
}

// Evaluate applies one category's rules to a feature map. It is pure and
// total: the same FeatureMap always yields an identical CategoryResult,
// and missing keys resolve to the schema defaults.
//
// The score is a fold over the fixed rule list — category max plus the
// impacts of fired rules, floored at zero. The clamp happens here, per
// category: a total-level clamp would mask evaluator bugs.
func Evaluate(category Category, f *FeatureMap) CategoryResult {
	max := categoryMax[category]
	result := CategoryResult{Category: category, MaxScore: max, Score: max}

	if gate, ok := categoryGate[category]; ok && !gate(f) {
		return result
	}

	total := max
	for _, rule := range catalog[category] {
		if !rule.Trigger(f) {
			continue
		}
		result.Violations = append(result.Violations, rule.violation())
		total += rule.Impact
	}
	if total < 0 {
		total = 0
	}
	result.Score = total
	return result
}

// EvaluateAll runs all six categories against a feature map and aggregates
// the results into a report.
func EvaluateAll(f *FeatureMap) *Report {
	results := make([]CategoryResult, 0, len(Categories))
	for _, category := range Categories {
		results = append(results, Evaluate(category, f))
	}
	return Aggregate(results)
}

// Aggregate sums per-category results into a report. total_score lands in
// [0,100] by construction: the maxima sum to 100 and each category result
// is already clamped to [0, max].
func Aggregate(results []CategoryResult) *Report {
	report := &Report{
		Categories:      make(map[Category]int, len(results)),
		CategoryDetails: make(map[Category]*CategoryResult, len(results)),
	}

	var violations []Violation
	for i := range results {
		r := results[i]
		report.TotalScore += r.Score
		report.Categories[r.Category] = r.Score
		report.CategoryDetails[r.Category] = &r
		violations = append(violations, r.Violations...)
	}

	report.Recommendations = Rank(violations, GenericRecommendations)
	return report
}

// Violations flattens all fired rules across categories in the fixed
// category order.
func (r *Report) Violations() []Violation {
	var out []Violation
	for _, category := range Categories {
		if d := r.CategoryDetails[category]; d != nil {
			out = append(out, d.Violations...)
		}
	}
	return out
}
