package score

import "testing"

// ruleByID fetches a catalog rule for test fixtures.
func ruleByID(t *testing.T, id string) Rule {
	t.Helper()
	for _, c := range Categories {
		for _, r := range catalog[c] {
			if r.ID == id {
				return r
			}
		}
	}
	t.Fatalf("no rule %s in catalog", id)
	return Rule{}
}

func TestRank_SeverityBeatsCategoryOrder(t *testing.T) {
	// WHAT: A high-severity violation outranks a low-severity one even when
	// the low-severity violation comes from an earlier category.
	// WHY: Severity is the primary sort key; category order only tie-breaks.
	low := ruleByID(t, "ia_004").violation()   // information_architecture, low
	high := ruleByID(t, "cta_001").violation() // cta_visibility, high

	got := Rank([]Violation{low, high}, GenericRecommendations)
	if len(got) < 2 {
		t.Fatalf("got %d recommendations, want at least 2", len(got))
	}
	if got[0] != high.Recommendation {
		t.Errorf("first = %q, want the high-severity recommendation", got[0])
	}
	if got[1] != low.Recommendation {
		t.Errorf("second = %q, want the low-severity recommendation", got[1])
	}
}

func TestRank_TieKeepsCategoryOrder(t *testing.T) {
	// WHAT: Two same-severity violations keep their collection order, which
	// is the fixed category order.
	// WHY: The sort must be stable so ties resolve deterministically.
	first := ruleByID(t, "ia_002").violation()    // medium, information_architecture
	second := ruleByID(t, "a11y_001").violation() // medium, accessibility

	got := Rank([]Violation{first, second}, GenericRecommendations)
	if got[0] != first.Recommendation || got[1] != second.Recommendation {
		t.Errorf("order = %v, want [%q %q] first", got, first.Recommendation, second.Recommendation)
	}
}

func TestRank_BackfillStopsAtThree(t *testing.T) {
	// WHAT: With two violations, exactly one generic entry is appended.
	// WHY: Backfill runs only until three entries exist.
	v1 := ruleByID(t, "ia_001").violation()
	v2 := ruleByID(t, "read_003").violation()

	got := Rank([]Violation{v1, v2}, GenericRecommendations)
	if len(got) != 3 {
		t.Fatalf("got %d recommendations, want 3: %v", len(got), got)
	}
	if got[2] != GenericRecommendations[0] {
		t.Errorf("backfill entry = %q, want %q", got[2], GenericRecommendations[0])
	}
}

func TestRank_EmptyBackfillsAllGenerics(t *testing.T) {
	// WHAT: No violations yields exactly the generic pool.
	// WHY: A perfect page still gets advice.
	got := Rank(nil, GenericRecommendations)
	if len(got) != len(GenericRecommendations) {
		t.Fatalf("got %d, want %d", len(got), len(GenericRecommendations))
	}
}

func TestRank_BackfillSkipsDuplicates(t *testing.T) {
	// WHAT: A generic entry already present in the list is never appended
	// twice.
	// WHY: The ranked list must not contain duplicate text.
	dup := Violation{Severity: SeverityLow, Recommendation: GenericRecommendations[0]}
	got := Rank([]Violation{dup}, GenericRecommendations)

	seen := map[string]bool{}
	for _, r := range got {
		if seen[r] {
			t.Errorf("duplicate recommendation %q", r)
		}
		seen[r] = true
	}
	if len(got) != 3 {
		t.Errorf("got %d recommendations, want 3: %v", len(got), got)
	}
}

func TestRank_CapsAtTen(t *testing.T) {
	// WHAT: Firing the whole catalog still yields at most 10 entries, all
	// distinct.
	// WHY: The hard cap and the no-duplicate property from the contract.
	var all []Violation
	for _, c := range Categories {
		for _, r := range catalog[c] {
			all = append(all, r.violation())
		}
	}
	got := Rank(all, GenericRecommendations)
	if len(got) != 10 {
		t.Errorf("got %d recommendations, want 10", len(got))
	}
	seen := map[string]bool{}
	for _, r := range got {
		if seen[r] {
			t.Errorf("duplicate recommendation %q", r)
		}
		seen[r] = true
	}
}

func TestRank_HighSeverityFirstAcrossCatalog(t *testing.T) {
	// WHAT: With the full catalog fired, the head of the list is the
	// high-severity rules in category order: ia_001, cta_001, read_001,
	// form_001.
	// WHY: Pins the combined severity-then-category ordering.
	var all []Violation
	for _, c := range Categories {
		for _, r := range catalog[c] {
			all = append(all, r.violation())
		}
	}
	got := Rank(all, GenericRecommendations)

	wantHead := []string{
		ruleByID(t, "ia_001").Recommendation,
		ruleByID(t, "cta_001").Recommendation,
		ruleByID(t, "read_001").Recommendation,
		ruleByID(t, "form_001").Recommendation,
	}
	for i, want := range wantHead {
		if got[i] != want {
			t.Errorf("recommendation[%d] = %q, want %q", i, got[i], want)
		}
	}
}
