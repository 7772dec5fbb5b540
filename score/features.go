// Package score implements the heuristic usability scoring engine.
//
// The engine is pure and total: it consumes a FeatureMap produced by the
// extract (HTML) and vision (screenshot) collaborators and returns a
// deterministic 0–100 report. Missing feature keys resolve to documented
// defaults, so evaluation never fails — the engine is optimistic by default
// and only penalizes confirmed problems.
package score

// featureKind tags the value type a feature key carries.
type featureKind int

const (
	kindBool featureKind = iota
	kindInt
	kindFloat
	kindList
)

// featureSpec declares the type and default of one feature key.
type featureSpec struct {
	kind featureKind
	def  any
}

// featureSchema is the single source of truth for every feature key the
// rule catalog reads: key → type → default. Keeping defaults here (instead
// of inline at each use site) guarantees they cannot drift between rules.
var featureSchema = map[string]featureSpec{
	"html.heading_analysis.has_h1":                     {kindBool, false},
	"html.heading_analysis.multiple_h1":                {kindBool, false},
	"html.heading_analysis.hierarchy_issues":           {kindList, nil},
	"html.navigation_analysis.has_breadcrumbs":         {kindBool, false},
	"html.navigation_analysis.duplicate_link_texts":    {kindInt, 0},
	"html.form_analysis.form_count":                    {kindInt, 0},
	"html.form_analysis.unlabeled_count":               {kindInt, 0},
	"html.form_analysis.has_error_handling":            {kindBool, false},
	"html.form_analysis.required_fields":               {kindInt, 0},
	"html.form_analysis.input_count":                   {kindInt, 1},
	"html.accessibility_analysis.alt_text_coverage":    {kindFloat, 1.0},
	"html.accessibility_analysis.aria_elements_count":  {kindInt, 0},
	"html.accessibility_analysis.landmark_roles_count": {kindInt, 0},
	"html.accessibility_analysis.total_images":         {kindInt, 0},
	"html.meta_analysis.title_length":                  {kindInt, 0},
	"html.meta_analysis.description_length":            {kindInt, 0},
	"html.meta_analysis.structured_data_count":         {kindInt, 0},
	"html.meta_analysis.has_og_image":                  {kindBool, false},
	"html.content_analysis.avg_paragraph_length":       {kindFloat, 0.0},
	"image.above_fold_analysis.has_cta_above_fold":     {kindBool, false},
	"image.ocr_analysis.button_texts":                  {kindList, nil},
	"image.contrast_analysis.has_good_contrast":        {kindBool, true},
	"image.contrast_analysis.is_low_contrast":          {kindBool, false},
	"image.visual_density.is_cluttered":                {kindBool, false},
	"image.visual_density.has_sufficient_whitespace":   {kindBool, true},
	"image.element_detection.button_candidates":        {kindInt, 0},
	"image.element_detection.input_candidates":         {kindInt, 0},
}

// FeatureMap is an immutable, namespaced bag of extracted page signals.
// Keys are "namespace.submap.field" (e.g. "html.heading_analysis.has_h1").
// Values the accessors cannot interpret fall back to the schema default.
type FeatureMap struct {
	values map[string]any
}

// NewFeatureMap flattens the html and image collaborator namespaces into a
// FeatureMap. Either argument may be nil; the engine then falls back to the
// schema defaults for that namespace (the permissive-degradation policy for
// failed collaborators).
func NewFeatureMap(htmlFeatures, imageFeatures map[string]map[string]any) *FeatureMap {
	values := make(map[string]any)
	flatten := func(ns string, features map[string]map[string]any) {
		for sub, fields := range features {
			for field, v := range fields {
				values[ns+"."+sub+"."+field] = v
			}
		}
	}
	flatten("html", htmlFeatures)
	flatten("image", imageFeatures)
	return &FeatureMap{values: values}
}

// Bool reads a boolean feature, falling back to the schema default.
func (f *FeatureMap) Bool(key string) bool {
	if v, ok := f.values[key].(bool); ok {
		return v
	}
	d, _ := featureSchema[key].def.(bool)
	return d
}

// Int reads an integer feature, falling back to the schema default.
// Numeric values arriving as other widths (e.g. from JSON) are coerced.
func (f *FeatureMap) Int(key string) int {
	switch v := f.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	d, _ := featureSchema[key].def.(int)
	return d
}

// Float reads a float feature, falling back to the schema default.
func (f *FeatureMap) Float(key string) float64 {
	switch v := f.values[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	d, _ := featureSchema[key].def.(float64)
	return d
}

// Count reads the length of a list feature. Absent lists count as zero.
func (f *FeatureMap) Count(key string) int {
	switch v := f.values[key].(type) {
	case []string:
		return len(v)
	case []any:
		return len(v)
	}
	return 0
}
