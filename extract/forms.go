package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nonLabelableInputs are input types that never need a visible label.
var nonLabelableInputs = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
}

// analyzeForms extracts form presence, labeling coverage and error-message
// hints.
func analyzeForms(doc *html.Node) map[string]any {
	formCount, inputCount, labelCount, requiredFields := 0, 0, 0, 0
	hasErrorHandling := false
	labelFor := make(map[string]bool)
	type inputInfo struct {
		id        string
		hasHint   bool // aria-label or placeholder stands in for a label
		labelable bool
	}
	var inputs []inputInfo

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if hasAttr(n, "required") {
			requiredFields++
		}
		if strings.Contains(strings.ToLower(attr(n, "class")), "error") {
			hasErrorHandling = true
		}
		switch n.DataAtom {
		case atom.Form:
			formCount++
		case atom.Label:
			labelCount++
			if f := attr(n, "for"); f != "" {
				labelFor[f] = true
			}
		case atom.Input:
			inputCount++
			typ := attr(n, "type")
			if typ == "" {
				typ = "text"
			}
			inputs = append(inputs, inputInfo{
				id:        attr(n, "id"),
				hasHint:   attr(n, "aria-label") != "" || attr(n, "placeholder") != "",
				labelable: !nonLabelableInputs[typ],
			})
		}
		return true
	})

	unlabeled := 0
	for _, in := range inputs {
		if !in.labelable {
			continue
		}
		if in.id != "" && labelFor[in.id] {
			continue
		}
		if in.hasHint {
			continue
		}
		unlabeled++
	}

	return map[string]any{
		"form_count":         formCount,
		"input_count":        inputCount,
		"label_count":        labelCount,
		"unlabeled_count":    unlabeled,
		"has_error_handling": hasErrorHandling,
		"required_fields":    requiredFields,
	}
}

// landmarkRoles are the ARIA roles that structure a page for assistive
// technology.
var landmarkRoles = map[string]bool{
	"main":          true,
	"navigation":    true,
	"banner":        true,
	"complementary": true,
	"contentinfo":   true,
}

// analyzeAccessibility extracts alt coverage, ARIA usage and landmarks.
func analyzeAccessibility(doc *html.Node) map[string]any {
	totalImages, imagesWithoutAlt := 0, 0
	ariaElements, landmarks, tabindexElements := 0, 0, 0

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		if isElement(n, atom.Img) {
			totalImages++
			if attr(n, "alt") == "" {
				imagesWithoutAlt++
			}
		}
		hasAria := false
		for _, a := range n.Attr {
			if strings.HasPrefix(a.Key, "aria-") {
				hasAria = true
			}
		}
		if hasAria {
			ariaElements++
		}
		if landmarkRoles[strings.ToLower(attr(n, "role"))] {
			landmarks++
		}
		if hasAttr(n, "tabindex") {
			tabindexElements++
		}
		return true
	})

	coverage := 1.0
	if totalImages > 0 {
		coverage = float64(totalImages-imagesWithoutAlt) / float64(totalImages)
	}

	return map[string]any{
		"total_images":         totalImages,
		"images_without_alt":   imagesWithoutAlt,
		"alt_text_coverage":    coverage,
		"aria_elements_count":  ariaElements,
		"landmark_roles_count": landmarks,
		"tabindex_elements":    tabindexElements,
	}
}
