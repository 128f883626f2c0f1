// Package assoc derives topic co-occurrence statistics from answer history.
//
// The functions here are pure: callers load the event snapshot and pass it
// in, which keeps the analysis unit-testable without a live store and leaves
// caching decisions to the caller.
package assoc

import "sort"

// Rule is one directional association between two distinct topics.
// Confidence is relative to the antecedent: of all events in which the
// antecedent occurs, the fraction in which the consequent also occurs.
// Support is the fraction of all events in which both occur together.
type Rule struct {
	Antecedent string  `json:"antecedent"`
	Consequent string  `json:"consequent"`
	Support    float64 `json:"support"`
	Confidence float64 `json:"confidence"`
}

// ComputeRules scans a snapshot of answer-event tag sets and emits two rules
// (one per direction) for every unordered pair of topics that co-occurs in at
// least one event. Tags are deduplicated within an event; a pair counts once
// per event regardless of tag multiplicity. Output is sorted by antecedent,
// then consequent, so results are stable for a fixed snapshot.
func ComputeRules(events [][]string) []Rule {
	if len(events) == 0 {
		return nil
	}

	type pairKey struct{ a, b string } // a < b lexicographically
	pairCount := make(map[pairKey]int)
	occurrence := make(map[string]int)

	for _, tags := range events {
		uniq := dedupe(tags)
		for _, t := range uniq {
			occurrence[t]++
		}
		for i := 0; i < len(uniq); i++ {
			for j := i + 1; j < len(uniq); j++ {
				a, b := uniq[i], uniq[j]
				if b < a {
					a, b = b, a
				}
				pairCount[pairKey{a, b}]++
			}
		}
	}

	total := float64(len(events))
	rules := make([]Rule, 0, 2*len(pairCount))
	for k, n := range pairCount {
		support := float64(n) / total
		rules = append(rules,
			Rule{Antecedent: k.a, Consequent: k.b, Support: support, Confidence: float64(n) / float64(occurrence[k.a])},
			Rule{Antecedent: k.b, Consequent: k.a, Support: support, Confidence: float64(n) / float64(occurrence[k.b])},
		)
	}
	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Antecedent != rules[j].Antecedent {
			return rules[i].Antecedent < rules[j].Antecedent
		}
		return rules[i].Consequent < rules[j].Consequent
	})
	return rules
}

// Expand widens a topic selection by one hop: for every rule whose antecedent
// is in the selection, the consequent is added to the result. This is a single
// pass, not a transitive closure; topics brought in by expansion do not
// themselves pull in further topics. The returned slice is sorted and always
// contains the original selection.
func Expand(selected []string, rules []Rule) []string {
	in := make(map[string]bool, len(selected))
	for _, t := range selected {
		in[t] = true
	}
	related := make(map[string]bool, len(in))
	for t := range in {
		related[t] = true
	}
	for _, r := range rules {
		if in[r.Antecedent] && !related[r.Consequent] {
			related[r.Consequent] = true
		}
	}
	out := make([]string, 0, len(related))
	for t := range related {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
