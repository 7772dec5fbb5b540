package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// analyzeNavigation extracts nav structure, breadcrumb hints and duplicate
// link texts.
func analyzeNavigation(doc *html.Node) map[string]any {
	navCount, menuLists := 0, 0
	hasBreadcrumbs := false
	linkTexts := make(map[string]int)
	totalLinks := 0

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		class := strings.ToLower(attr(n, "class"))
		id := strings.ToLower(attr(n, "id"))

		if strings.Contains(class, "breadcrumb") || strings.Contains(id, "breadcrumb") {
			hasBreadcrumbs = true
		}

		switch n.DataAtom {
		case atom.Nav:
			navCount++
			// An ordered list inside <nav> is the usual breadcrumb shape.
			walk(n, func(c *html.Node) bool {
				if isElement(c, atom.Ol) {
					hasBreadcrumbs = true
					return false
				}
				return true
			})
		case atom.Ol:
			if role := strings.ToLower(attr(findParentWithRole(n), "role")); role == "navigation" {
				hasBreadcrumbs = true
			}
		case atom.Ul:
			if strings.Contains(class, "nav") || strings.Contains(class, "menu") {
				menuLists++
			}
		case atom.A:
			if attr(n, "href") == "" {
				return true
			}
			totalLinks++
			if text := strings.TrimSpace(collectText(n)); text != "" {
				linkTexts[text]++
			}
		}
		return true
	})

	// Duplicates counted as the Python original does: total non-empty link
	// texts minus distinct texts.
	nonEmpty, distinct := 0, 0
	for _, c := range linkTexts {
		nonEmpty += c
		distinct++
	}

	return map[string]any{
		"nav_elements_count":   navCount,
		"menu_lists_count":     menuLists,
		"has_breadcrumbs":      hasBreadcrumbs,
		"total_links":          totalLinks,
		"duplicate_link_texts": nonEmpty - distinct,
	}
}

// findParentWithRole walks up from n to the nearest ancestor carrying a
// role attribute. Returns an attribute-less node when none exists so the
// caller's attr lookup safely yields "".
func findParentWithRole(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && hasAttr(p, "role") {
			return p
		}
	}
	return &html.Node{}
}

// vagueLinkTexts are texts that say nothing about the destination.
var vagueLinkTexts = map[string]bool{
	"here":       true,
	"click":      true,
	"click here": true,
	"more":       true,
	"read more":  true,
	"details":    true,
	"link":       true,
}

// analyzeLinks splits links by destination kind relative to the page's own
// host and flags vague link texts.
func analyzeLinks(doc *html.Node, pageURL string) map[string]any {
	baseHost := ""
	if u, err := url.Parse(pageURL); err == nil {
		baseHost = u.Host
	}

	total, internal, external, mailto, tel, vague := 0, 0, 0, 0, 0, 0

	walk(doc, func(n *html.Node) bool {
		if !isElement(n, atom.A) {
			return true
		}
		href := attr(n, "href")
		if href == "" {
			return true
		}
		total++

		switch {
		case strings.HasPrefix(href, "mailto:"):
			mailto++
		case strings.HasPrefix(href, "tel:"):
			tel++
		case strings.HasPrefix(href, "http"):
			if u, err := url.Parse(href); err == nil && u.Host != baseHost {
				external++
			} else {
				internal++
			}
		default:
			internal++
		}

		if vagueLinkTexts[strings.ToLower(strings.TrimSpace(collectText(n)))] {
			vague++
		}
		return true
	})

	externalRatio := 0.0
	if total > 0 {
		externalRatio = float64(external) / float64(total)
	}

	return map[string]any{
		"total_links":      total,
		"internal_links":   internal,
		"external_links":   external,
		"mailto_links":     mailto,
		"tel_links":        tel,
		"vague_link_texts": vague,
		"external_ratio":   externalRatio,
	}
}
