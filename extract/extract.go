// Package extract derives structured usability features from rendered HTML.
//
// It walks the parsed DOM once per concern and produces the html.* feature
// sub-maps consumed by the scoring engine: metadata, heading structure,
// navigation, forms, accessibility attributes, content statistics and links.
// Extraction is tolerant: malformed markup still parses (x/net/html repairs
// it) and an empty document simply yields zero-valued features.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Features holds the extracted sub-maps, keyed by analysis name
// (e.g. "heading_analysis"). The values feed score.NewFeatureMap directly.
type Features map[string]map[string]any

// Analyze parses htmlText and extracts all feature sub-maps. pageURL is the
// page's own URL, used to split internal from external links.
func Analyze(htmlText, pageURL string) Features {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		// Parse only fails on reader errors, which strings.Reader never
		// produces; an empty document keeps the contract total anyway.
		doc = &html.Node{Type: html.DocumentNode}
	}

	return Features{
		"meta_analysis":          analyzeMeta(doc),
		"heading_analysis":       analyzeHeadings(doc),
		"navigation_analysis":    analyzeNavigation(doc),
		"form_analysis":          analyzeForms(doc),
		"accessibility_analysis": analyzeAccessibility(doc),
		"content_analysis":       analyzeContent(doc),
		"link_analysis":          analyzeLinks(doc, pageURL),
	}
}
