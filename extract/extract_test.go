package extract

import "testing"

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Widgets — Affordable Widgets For Everyone</title>
  <meta name="description" content="The best widgets money can buy.">
  <meta property="og:image" content="https://example.com/og.png">
  <script type="application/ld+json">{"@type":"Product"}</script>
</head>
<body>
  <header role="banner">
    <nav class="main-nav">
      <ol class="breadcrumb"><li><a href="/">Home</a></li><li>Widgets</li></ol>
      <ul class="menu">
        <li><a href="/shop">Shop</a></li>
        <li><a href="/about">About</a></li>
        <li><a href="https://partner.example.org">Partner</a></li>
      </ul>
    </nav>
  </header>
  <main role="main" aria-label="content">
    <h1>Widgets</h1>
    <h2>Why widgets</h2>
    <h4>Deep dive</h4>
    <p>Widgets are great.</p>
    <p>They really are.</p>
    <img src="a.png" alt="A widget">
    <img src="b.png">
    <form class="contact" action="/submit">
      <label for="email">Email</label>
      <input type="email" id="email" required>
      <input type="text" name="nickname">
      <input type="hidden" name="token">
      <input type="submit" value="Send">
      <div class="form-error"></div>
    </form>
    <a href="mailto:sales@example.com">Contact sales</a>
    <a href="tel:+15550100">Call us</a>
    <a href="/shop">Shop</a>
  </main>
</body>
</html>`

func TestAnalyze_Headings(t *testing.T) {
	// WHAT: Heading counts, H1 flags and the H2→H4 level jump are reported.
	// WHY: ia_001..ia_003 depend on exactly these fields.
	f := Analyze(samplePage, "https://example.com/widgets")
	h := f["heading_analysis"]

	if has, _ := h["has_h1"].(bool); !has {
		t.Error("has_h1 = false, want true")
	}
	if multi, _ := h["multiple_h1"].(bool); multi {
		t.Error("multiple_h1 = true, want false")
	}
	issues, _ := h["hierarchy_issues"].([]string)
	if len(issues) != 1 {
		t.Fatalf("hierarchy_issues = %v, want exactly the H2->H4 jump", issues)
	}
}

func TestAnalyze_HierarchyIssues(t *testing.T) {
	// WHAT: A document starting at H2 is flagged; a clean H1→H2→H3 isn't.
	// WHY: The first-heading rule is separate from the jump rule.
	cases := []struct {
		name string
		html string
		want int
	}{
		{"starts at h2", "<h2>a</h2><h3>b</h3>", 1},
		{"clean", "<h1>a</h1><h2>b</h2><h3>c</h3>", 0},
		{"start and jump", "<h2>a</h2><h4>b</h4>", 2},
		{"no headings", "<p>nothing</p>", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Analyze(tc.html, "")
			issues, _ := f["heading_analysis"]["hierarchy_issues"].([]string)
			if len(issues) != tc.want {
				t.Errorf("issues = %v, want %d", issues, tc.want)
			}
		})
	}
}

func TestAnalyze_Meta(t *testing.T) {
	// WHAT: Title/description lengths, OG image, JSON-LD count and charset.
	// WHY: read_001..read_003, perf_001 and perf_003 read these fields.
	f := Analyze(samplePage, "https://example.com/widgets")
	m := f["meta_analysis"]

	if l, _ := m["title_length"].(int); l != 41 {
		t.Errorf("title_length = %v, want 41", m["title_length"])
	}
	if l, _ := m["description_length"].(int); l == 0 {
		t.Error("description_length = 0, want > 0")
	}
	if og, _ := m["has_og_image"].(bool); !og {
		t.Error("has_og_image = false, want true")
	}
	if c, _ := m["structured_data_count"].(int); c != 1 {
		t.Errorf("structured_data_count = %v, want 1", m["structured_data_count"])
	}
	if cs, _ := m["charset"].(string); cs != "utf-8" {
		t.Errorf("charset = %q, want utf-8", cs)
	}
}

func TestAnalyze_Navigation(t *testing.T) {
	// WHAT: Breadcrumbs are detected (class and nav>ol shapes) and duplicate
	// link texts are counted as total-minus-distinct.
	// WHY: ia_004 and ia_005 read these fields.
	f := Analyze(samplePage, "https://example.com/widgets")
	n := f["navigation_analysis"]

	if b, _ := n["has_breadcrumbs"].(bool); !b {
		t.Error("has_breadcrumbs = false, want true")
	}
	// "Shop" appears twice: one duplicate.
	if d, _ := n["duplicate_link_texts"].(int); d != 1 {
		t.Errorf("duplicate_link_texts = %v, want 1", n["duplicate_link_texts"])
	}
}

func TestAnalyze_NoBreadcrumbs(t *testing.T) {
	// WHAT: A plain link list is not mistaken for breadcrumbs.
	// WHY: ia_004 would otherwise never fire.
	f := Analyze(`<ul><li><a href="/a">A</a></li></ul>`, "")
	if b, _ := f["navigation_analysis"]["has_breadcrumbs"].(bool); b {
		t.Error("has_breadcrumbs = true, want false")
	}
}

func TestAnalyze_Forms(t *testing.T) {
	// WHAT: The text input without label/aria-label/placeholder counts as
	// unlabeled; hidden and submit inputs are exempt; required and error
	// hints are detected.
	// WHY: form_001..form_003 read these fields.
	f := Analyze(samplePage, "https://example.com/widgets")
	fm := f["form_analysis"]

	if c, _ := fm["form_count"].(int); c != 1 {
		t.Errorf("form_count = %v, want 1", fm["form_count"])
	}
	if c, _ := fm["input_count"].(int); c != 4 {
		t.Errorf("input_count = %v, want 4", fm["input_count"])
	}
	if c, _ := fm["unlabeled_count"].(int); c != 1 {
		t.Errorf("unlabeled_count = %v, want 1 (the nickname input)", fm["unlabeled_count"])
	}
	if e, _ := fm["has_error_handling"].(bool); !e {
		t.Error("has_error_handling = false, want true (form-error class)")
	}
	if r, _ := fm["required_fields"].(int); r != 1 {
		t.Errorf("required_fields = %v, want 1", fm["required_fields"])
	}
}

func TestAnalyze_Accessibility(t *testing.T) {
	// WHAT: Alt coverage 1/2, ARIA usage and the two landmark roles.
	// WHY: a11y_001..a11y_003 read these fields.
	f := Analyze(samplePage, "https://example.com/widgets")
	a := f["accessibility_analysis"]

	if c, _ := a["total_images"].(int); c != 2 {
		t.Errorf("total_images = %v, want 2", a["total_images"])
	}
	if cov, _ := a["alt_text_coverage"].(float64); cov != 0.5 {
		t.Errorf("alt_text_coverage = %v, want 0.5", a["alt_text_coverage"])
	}
	if c, _ := a["aria_elements_count"].(int); c != 1 {
		t.Errorf("aria_elements_count = %v, want 1", a["aria_elements_count"])
	}
	if c, _ := a["landmark_roles_count"].(int); c != 2 {
		t.Errorf("landmark_roles_count = %v, want 2 (banner + main)", a["landmark_roles_count"])
	}
}

func TestAnalyze_Links(t *testing.T) {
	// WHAT: Links split into internal/external/mailto/tel by the page host.
	// WHY: The link analysis feeds reporting even though no rule reads it.
	f := Analyze(samplePage, "https://example.com/widgets")
	l := f["link_analysis"]

	if c, _ := l["external_links"].(int); c != 1 {
		t.Errorf("external_links = %v, want 1", l["external_links"])
	}
	if c, _ := l["mailto_links"].(int); c != 1 {
		t.Errorf("mailto_links = %v, want 1", l["mailto_links"])
	}
	if c, _ := l["tel_links"].(int); c != 1 {
		t.Errorf("tel_links = %v, want 1", l["tel_links"])
	}
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	// WHAT: An empty document produces zero-valued features, not errors.
	// WHY: Extraction must stay total so the engine can apply its defaults.
	f := Analyze("", "")
	if has, _ := f["heading_analysis"]["has_h1"].(bool); has {
		t.Error("has_h1 = true for empty document")
	}
	if c, _ := f["form_analysis"]["form_count"].(int); c != 0 {
		t.Errorf("form_count = %v, want 0", f["form_analysis"]["form_count"])
	}
	if cov, _ := f["accessibility_analysis"]["alt_text_coverage"].(float64); cov != 1.0 {
		t.Errorf("alt_text_coverage = %v, want the optimistic 1.0", cov)
	}
}

func TestAnalyze_ContentStatistics(t *testing.T) {
	// WHAT: Paragraph count and average paragraph length in characters.
	// WHY: read_004 fires on avg_paragraph_length > 200.
	f := Analyze(samplePage, "https://example.com/widgets")
	c := f["content_analysis"]

	if n, _ := c["paragraph_count"].(int); n != 2 {
		t.Errorf("paragraph_count = %v, want 2", c["paragraph_count"])
	}
	avg, _ := c["avg_paragraph_length"].(float64)
	if avg <= 0 || avg > 50 {
		t.Errorf("avg_paragraph_length = %v, want short positive value", avg)
	}
}
