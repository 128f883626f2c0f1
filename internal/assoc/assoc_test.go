package assoc_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/prepdeck/prepdeck/internal/assoc"
)

func ruleFor(t *testing.T, rules []assoc.Rule, ante, cons string) assoc.Rule {
	t.Helper()
	for _, r := range rules {
		if r.Antecedent == ante && r.Consequent == cons {
			return r
		}
	}
	t.Fatalf("no rule %s -> %s", ante, cons)
	return assoc.Rule{}
}

func TestComputeRules_TwoEvents(t *testing.T) {
	events := [][]string{
		{"algebra", "geometry"},
		{"algebra", "calculus"},
	}
	rules := assoc.ComputeRules(events)

	// Two co-occurring pairs, two directions each.
	if len(rules) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(rules))
	}

	r := ruleFor(t, rules, "algebra", "calculus")
	if r.Support != 0.5 {
		t.Errorf("algebra->calculus support = %v, want 0.5", r.Support)
	}
	if r.Confidence != 0.5 { // 1 co-occurrence / 2 algebra events
		t.Errorf("algebra->calculus confidence = %v, want 0.5", r.Confidence)
	}

	// Reverse direction uses the consequent's own occurrence count.
	r = ruleFor(t, rules, "calculus", "algebra")
	if r.Confidence != 1.0 { // calculus occurs once, always with algebra
		t.Errorf("calculus->algebra confidence = %v, want 1.0", r.Confidence)
	}

	r = ruleFor(t, rules, "algebra", "geometry")
	if r.Support != 0.5 || r.Confidence != 0.5 {
		t.Errorf("algebra->geometry = %+v, want support 0.5 confidence 0.5", r)
	}
}

func TestComputeRules_Bounds(t *testing.T) {
	events := [][]string{
		{"a", "b", "c"},
		{"a", "b"},
		{"b"},
		{"c", "a"},
		{"d"},
	}
	rules := assoc.ComputeRules(events)
	if len(rules) == 0 {
		t.Fatal("expected rules")
	}
	for _, r := range rules {
		if r.Support < 0 || r.Support > 1 {
			t.Errorf("support out of range: %+v", r)
		}
		if r.Confidence < 0 || r.Confidence > 1 {
			t.Errorf("confidence out of range: %+v", r)
		}
	}
	// "d" never co-occurs, so it must not appear in any rule.
	for _, r := range rules {
		if r.Antecedent == "d" || r.Consequent == "d" {
			t.Errorf("isolated topic leaked into rules: %+v", r)
		}
	}
}

func TestComputeRules_DuplicateTagsWithinEvent(t *testing.T) {
	events := [][]string{{"a", "a", "b"}}
	rules := assoc.ComputeRules(events)
	r := ruleFor(t, rules, "a", "b")
	if r.Support != 1.0 || r.Confidence != 1.0 {
		t.Errorf("duplicate tags must count once per event: %+v", r)
	}
}

func TestComputeRules_Empty(t *testing.T) {
	if rules := assoc.ComputeRules(nil); rules != nil {
		t.Errorf("expected nil rules for empty history, got %v", rules)
	}
}

func TestComputeRules_NoNaN(t *testing.T) {
	rules := assoc.ComputeRules([][]string{{"x"}, {"y"}})
	for _, r := range rules {
		if math.IsNaN(r.Support) || math.IsNaN(r.Confidence) {
			t.Errorf("NaN statistic: %+v", r)
		}
	}
}

func TestExpand_SingleHop(t *testing.T) {
	events := [][]string{
		{"algebra", "geometry"},
		{"geometry", "trigonometry"},
	}
	rules := assoc.ComputeRules(events)

	got := assoc.Expand([]string{"algebra"}, rules)
	want := []string{"algebra", "geometry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand = %v, want %v (one hop only, no transitive closure)", got, want)
	}
}

func TestExpand_Idempotent(t *testing.T) {
	events := [][]string{
		{"algebra", "geometry"},
		{"algebra", "calculus"},
	}
	rules := assoc.ComputeRules(events)

	once := assoc.Expand([]string{"algebra"}, rules)
	twice := assoc.Expand(once, rules)
	// Expanding the already-expanded set again reaches a fixed point here:
	// every consequent reachable from the selection is already present.
	if !reflect.DeepEqual(assoc.Expand(twice, rules), twice) {
		t.Errorf("expected fixed point, got %v then %v", twice, assoc.Expand(twice, rules))
	}
}

func TestExpand_KeepsSelection(t *testing.T) {
	got := assoc.Expand([]string{"orphan"}, nil)
	if !reflect.DeepEqual(got, []string{"orphan"}) {
		t.Errorf("selection must survive expansion with no rules, got %v", got)
	}
}
