package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// analyzeMeta extracts title, meta description, OG tags and structured data.
func analyzeMeta(doc *html.Node) map[string]any {
	var title, description, charset string
	var hasOGTitle, hasOGDescription, hasOGImage bool
	structuredData := 0

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.DataAtom {
		case atom.Title:
			if title == "" {
				title = strings.TrimSpace(collectText(n))
			}
		case atom.Meta:
			switch {
			case attr(n, "name") == "description":
				description = strings.TrimSpace(attr(n, "content"))
			case attr(n, "property") == "og:title":
				hasOGTitle = true
			case attr(n, "property") == "og:description":
				hasOGDescription = true
			case attr(n, "property") == "og:image":
				hasOGImage = true
			case hasAttr(n, "charset"):
				charset = attr(n, "charset")
			}
		case atom.Script:
			if attr(n, "type") == "application/ld+json" {
				structuredData++
			}
		}
		return true
	})

	return map[string]any{
		"title":                 title,
		"title_length":          utf8.RuneCountInString(title),
		"description":           description,
		"description_length":    utf8.RuneCountInString(description),
		"has_og_title":          hasOGTitle,
		"has_og_description":    hasOGDescription,
		"has_og_image":          hasOGImage,
		"structured_data_count": structuredData,
		"charset":               charset,
	}
}

// analyzeHeadings extracts heading counts, ordering and hierarchy issues.
func analyzeHeadings(doc *html.Node) map[string]any {
	counts := make(map[string]int, 6)
	var levels []int

	walk(doc, func(n *html.Node) bool {
		if level := headingLevel(n); level > 0 {
			counts[fmt.Sprintf("h%d", level)]++
			levels = append(levels, level)
			return false
		}
		return true
	})

	total := 0
	for _, c := range counts {
		total += c
	}

	return map[string]any{
		"heading_counts":   counts,
		"total_headings":   total,
		"hierarchy_issues": headingHierarchyIssues(levels),
		"has_h1":           counts["h1"] > 0,
		"h1_count":         counts["h1"],
		"multiple_h1":      counts["h1"] > 1,
	}
}

// headingHierarchyIssues flags documents that don't open with an H1 and
// levels that jump more than one step down (e.g. H2 → H4).
func headingHierarchyIssues(levels []int) []string {
	var issues []string
	if len(levels) == 0 {
		return issues
	}
	if levels[0] != 1 {
		issues = append(issues, "first heading is not an H1")
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] > levels[i-1]+1 {
			issues = append(issues, fmt.Sprintf("heading level jump (H%d -> H%d)", levels[i-1], levels[i]))
		}
	}
	return issues
}

// analyzeContent extracts text volume and paragraph statistics.
func analyzeContent(doc *html.Node) map[string]any {
	text := collectText(doc)
	wordCount := len(strings.Fields(text))
	charCount := utf8.RuneCountInString(strings.ReplaceAll(text, " ", ""))

	var paragraphLengths []int
	listCount, tableCount, tablesWithHeaders := 0, 0, 0

	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch n.DataAtom {
		case atom.P:
			paragraphLengths = append(paragraphLengths, utf8.RuneCountInString(collectText(n)))
		case atom.Ul, atom.Ol:
			listCount++
		case atom.Table:
			tableCount++
			hasTH := false
			walk(n, func(c *html.Node) bool {
				if isElement(c, atom.Th) {
					hasTH = true
					return false
				}
				return true
			})
			if hasTH {
				tablesWithHeaders++
			}
		}
		return true
	})

	avgParagraph := 0.0
	if len(paragraphLengths) > 0 {
		sum := 0
		for _, l := range paragraphLengths {
			sum += l
		}
		avgParagraph = float64(sum) / float64(len(paragraphLengths))
	}

	return map[string]any{
		"word_count":           wordCount,
		"char_count":           charCount,
		"paragraph_count":      len(paragraphLengths),
		"list_count":           listCount,
		"table_count":          tableCount,
		"tables_with_headers":  tablesWithHeaders,
		"avg_paragraph_length": avgParagraph,
	}
}
