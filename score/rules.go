package score

// Category is one of the six weighted scoring dimensions.
type Category string

const (
	CategoryInformationArchitecture Category = "information_architecture"
	CategoryCTAVisibility           Category = "cta_visibility"
	CategoryReadability             Category = "readability"
	CategoryFormUX                  Category = "form_ux"
	CategoryAccessibility           Category = "accessibility"
	CategoryPerformance             Category = "performance"
)

// Categories lists all categories in their fixed evaluation order. This
// order is load-bearing: it is the tie-break for same-severity
// recommendations.
var Categories = []Category{
	CategoryInformationArchitecture,
	CategoryCTAVisibility,
	CategoryReadability,
	CategoryFormUX,
	CategoryAccessibility,
	CategoryPerformance,
}

// categoryMax holds the per-category maxima. They sum to exactly 100.
var categoryMax = map[Category]int{
	CategoryInformationArchitecture: 30,
	CategoryCTAVisibility:           20,
	CategoryReadability:             20,
	CategoryFormUX:                  15,
	CategoryAccessibility:           10,
	CategoryPerformance:             5,
}

// MaxScore returns the maximum attainable score for a category.
func MaxScore(c Category) int { return categoryMax[c] }

// Severity grades how badly a fired rule hurts usability.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// rank maps severity to its ordinal for sorting (high > medium > low).
func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Rule is a static scoring rule. Rules are process-wide constants, loaded
// once and never mutated; Impact is always negative and its magnitude never
// exceeds the category maximum.
type Rule struct {
	ID             string
	Category       Category
	Severity       Severity
	Impact         int
	Description    string
	Recommendation string
	Trigger        func(f *FeatureMap) bool
}

// categoryGate suppresses a whole category when its precondition fails.
// A gated-out category scores its full maximum with zero violations.
var categoryGate = map[Category]func(f *FeatureMap) bool{
	// Form UX only applies to pages that actually have forms.
	CategoryFormUX: func(f *FeatureMap) bool {
		return f.Int("html.form_analysis.form_count") > 0
	},
}

// catalog holds every rule, keyed by category, in fixed declaration order.
// Declaration order is load-bearing: violation lists preserve it and the
// recommendation ranker uses it as the final tie-break.
var catalog = map[Category][]Rule{
	CategoryInformationArchitecture: {
		{
			ID:             "ia_001",
			Category:       CategoryInformationArchitecture,
			Severity:       SeverityHigh,
			Impact:         -5,
			Description:    "No H1 heading found on the page",
			Recommendation: "Add a proper H1 heading to the page",
			Trigger: func(f *FeatureMap) bool {
				return !f.Bool("html.heading_analysis.has_h1")
			},
		},
		{
			ID:             "ia_002",
			Category:       CategoryInformationArchitecture,
			Severity:       SeverityMedium,
			Impact:         -3,
			Description:    "Multiple H1 headings found",
			Recommendation: "Use at most one H1 heading per page",
			Trigger: func(f *FeatureMap) bool {
				return f.Bool("html.heading_analysis.multiple_h1")
			},
		},
		{
			ID:             "ia_003",
			Category:       CategoryInformationArchitecture,
			Severity:       SeverityMedium,
			Impact:         -4,
			Description:    "Heading hierarchy has structural issues",
			Recommendation: "Order headings correctly without skipping levels (H1, then H2, then H3)",
			Trigger: func(f *FeatureMap) bool {
				return f.Count("html.heading_analysis.hierarchy_issues") > 0
			},
		},
		{
			ID:             "ia_004",
			Category:       CategoryInformationArchitecture,
			Severity:       SeverityLow,
			Impact:         -2,
			Description:    "No breadcrumb navigation found",
			Recommendation: "Add breadcrumb navigation so users can tell where they are",
			Trigger: func(f *FeatureMap) bool {
				return !f.Bool("html.navigation_analysis.has_breadcrumbs")
			},
		},
		{
			ID:             "ia_005",
			Category:       CategoryInformationArchitecture,
			Severity:       SeverityMedium,
			Impact:         -3,
			Description:    "Too many duplicate link texts",
			Recommendation: "Differentiate links that share the same text",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.navigation_analysis.duplicate_link_texts") > 5
			},
		},
	},

	CategoryCTAVisibility: {
		{
			ID:             "cta_001",
			Category:       CategoryCTAVisibility,
			Severity:       SeverityHigh,
			Impact:         -8,
			Description:    "No call to action found above the fold",
			Recommendation: "Place a primary call to action in the area visible without scrolling",
			Trigger: func(f *FeatureMap) bool {
				return !f.Bool("image.above_fold_analysis.has_cta_above_fold")
			},
		},
		{
			ID:             "cta_002",
			Category:       CategoryCTAVisibility,
			Severity:       SeverityMedium,
			Impact:         -5,
			Description:    "No clear button text detected",
			Recommendation: "Add buttons with explicit action labels such as \"Buy\", \"Sign up\" or \"Register\"",
			Trigger: func(f *FeatureMap) bool {
				return f.Count("image.ocr_analysis.button_texts") == 0
			},
		},
		{
			ID:             "cta_003",
			Category:       CategoryCTAVisibility,
			Severity:       SeverityMedium,
			Impact:         -4,
			Description:    "Overall contrast is insufficient",
			Recommendation: "Improve the contrast ratio of buttons and other key elements",
			Trigger: func(f *FeatureMap) bool {
				return !f.Bool("image.contrast_analysis.has_good_contrast")
			},
		},
		{
			ID:             "cta_004",
			Category:       CategoryCTAVisibility,
			Severity:       SeverityLow,
			Impact:         -3,
			Description:    "Few visually identifiable buttons",
			Recommendation: "Make buttons stand out more visually",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("image.element_detection.button_candidates") < 2
			},
		},
	},

	CategoryReadability: {
		{
			ID:             "read_001",
			Category:       CategoryReadability,
			Severity:       SeverityHigh,
			Impact:         -5,
			Description:    "Page title is missing",
			Recommendation: "Set a descriptive page title",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.meta_analysis.title_length") == 0
			},
		},
		{
			ID:             "read_002",
			Category:       CategoryReadability,
			Severity:       SeverityLow,
			Impact:         -2,
			Description:    "Page title is too long",
			Recommendation: "Keep the page title within 60 characters",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.meta_analysis.title_length") > 60
			},
		},
		{
			ID:             "read_003",
			Category:       CategoryReadability,
			Severity:       SeverityMedium,
			Impact:         -3,
			Description:    "Meta description is missing",
			Recommendation: "Add a meta description for search result snippets",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.meta_analysis.description_length") == 0
			},
		},
		{
			ID:             "read_004",
			Category:       CategoryReadability,
			Severity:       SeverityLow,
			Impact:         -2,
			Description:    "Paragraphs are too long",
			Recommendation: "Split long paragraphs into shorter, readable blocks",
			Trigger: func(f *FeatureMap) bool {
				return f.Float("html.content_analysis.avg_paragraph_length") > 200
			},
		},
		{
			ID:             "read_005",
			Category:       CategoryReadability,
			Severity:       SeverityMedium,
			Impact:         -4,
			Description:    "Visual density of the page is too high",
			Recommendation: "Increase spacing between elements and declutter the layout",
			Trigger: func(f *FeatureMap) bool {
				return f.Bool("image.visual_density.is_cluttered")
			},
		},
		{
			ID:             "read_006",
			Category:       CategoryReadability,
			Severity:       SeverityMedium,
			Impact:         -4,
			Description:    "Not enough whitespace",
			Recommendation: "Add more whitespace between elements to improve readability",
			Trigger: func(f *FeatureMap) bool {
				return !f.Bool("image.visual_density.has_sufficient_whitespace")
			},
		},
	},

	CategoryFormUX: {
		{
			ID:             "form_001",
			Category:       CategoryFormUX,
			Severity:       SeverityHigh,
			Impact:         -6,
			Description:    "Input fields without labels found",
			Recommendation: "Give every input field a proper label",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.form_analysis.unlabeled_count") > 0
			},
		},
		{
			ID:             "form_002",
			Category:       CategoryFormUX,
			Severity:       SeverityMedium,
			Impact:         -4,
			Description:    "No error message mechanism detected",
			Recommendation: "Show clear error messages when input validation fails",
			Trigger: func(f *FeatureMap) bool {
				return !f.Bool("html.form_analysis.has_error_handling")
			},
		},
		{
			ID:             "form_003",
			Category:       CategoryFormUX,
			Severity:       SeverityLow,
			Impact:         -2,
			Description:    "Required fields are not marked",
			Recommendation: "Mark required inputs clearly (an asterisk or the required attribute)",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.form_analysis.required_fields") == 0 &&
					f.Int("html.form_analysis.input_count") > 2
			},
		},
		{
			ID:             "form_004",
			Category:       CategoryFormUX,
			Severity:       SeverityLow,
			Impact:         -3,
			Description:    "Input fields may be hard to identify visually",
			Recommendation: "Give input fields clear borders or background colors",
			Trigger: func(f *FeatureMap) bool {
				return float64(f.Int("image.element_detection.input_candidates")) <
					float64(f.Int("html.form_analysis.input_count"))*0.5
			},
		},
	},

	CategoryAccessibility: {
		{
			ID:             "a11y_001",
			Category:       CategoryAccessibility,
			Severity:       SeverityMedium,
			Impact:         -4,
			Description:    "Images are missing alt attributes",
			Recommendation: "Provide a meaningful alt attribute for every image",
			Trigger: func(f *FeatureMap) bool {
				return f.Float("html.accessibility_analysis.alt_text_coverage") < 0.8
			},
		},
		{
			ID:             "a11y_002",
			Category:       CategoryAccessibility,
			Severity:       SeverityLow,
			Impact:         -2,
			Description:    "No ARIA attributes in use",
			Recommendation: "Use ARIA attributes to support screen readers",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.accessibility_analysis.aria_elements_count") == 0
			},
		},
		{
			ID:             "a11y_003",
			Category:       CategoryAccessibility,
			Severity:       SeverityLow,
			Impact:         -2,
			Description:    "No landmark roles defined",
			Recommendation: "Define landmark roles such as main, navigation and banner",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.accessibility_analysis.landmark_roles_count") == 0
			},
		},
		{
			ID:             "a11y_004",
			Category:       CategoryAccessibility,
			Severity:       SeverityMedium,
			Impact:         -4,
			Description:    "Contrast ratio is insufficient",
			Recommendation: "Meet the WCAG contrast ratio of at least 4.5:1",
			Trigger: func(f *FeatureMap) bool {
				return f.Bool("image.contrast_analysis.is_low_contrast")
			},
		},
	},

	CategoryPerformance: {
		{
			ID:             "perf_001",
			Category:       CategoryPerformance,
			Severity:       SeverityLow,
			Impact:         -1,
			Description:    "No structured data found",
			Recommendation: "Add structured data in JSON-LD format",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.meta_analysis.structured_data_count") == 0
			},
		},
		{
			ID:             "perf_002",
			Category:       CategoryPerformance,
			Severity:       SeverityLow,
			Impact:         -2,
			Description:    "Large number of images may slow the page down",
			Recommendation: "Optimize images (compression, WebP format)",
			Trigger: func(f *FeatureMap) bool {
				return f.Int("html.accessibility_analysis.total_images") > 10
			},
		},
		{
			ID:             "perf_003",
			Category:       CategoryPerformance,
			Severity:       SeverityLow,
			Impact:         -1,
			Description:    "No social preview image set",
			Recommendation: "Set an og:image for link sharing",
			Trigger: func(f *FeatureMap) bool {
				return !f.Bool("html.meta_analysis.has_og_image")
			},
		},
	},
}
