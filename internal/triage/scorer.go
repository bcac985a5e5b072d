package triage

import (
	"sort"
	"strings"
)

const (
	tokenMatchWeight     = 2
	substringMatchWeight = 1
	matchBonusPerKeyword = 0.1
	matchBonusCap        = 0.2
)

type scoredCandidate struct {
	specialty     string
	tableOrder    int
	matchCount    int
	weightedScore int
	confidence    float64
	urgency       Urgency
}

// scoreSpecialties scans the normalized text against every rule in table
// order. A keyword that equals a whole whitespace-delimited token of the text
// weighs 2, a substring-only match weighs 1. Specialties with no matching
// keyword produce no candidate.
func scoreSpecialties(table *RuleTable, text string) []scoredCandidate {
	tokens := map[string]struct{}{}
	for _, token := range strings.Fields(text) {
		tokens[token] = struct{}{}
	}

	var candidates []scoredCandidate
	for order, rule := range table.Rules() {
		matches := 0
		score := 0
		for _, keyword := range rule.Keywords {
			if !strings.Contains(text, keyword) {
				continue
			}
			matches++
			if _, ok := tokens[keyword]; ok {
				score += tokenMatchWeight
			} else {
				score += substringMatchWeight
			}
		}
		if matches == 0 {
			continue
		}

		bonus := float64(matches) * matchBonusPerKeyword
		if bonus > matchBonusCap {
			bonus = matchBonusCap
		}
		confidence := rule.BaseConfidence + bonus
		if confidence > 1.0 {
			confidence = 1.0
		}

		candidates = append(candidates, scoredCandidate{
			specialty:     rule.Name,
			tableOrder:    order,
			matchCount:    matches,
			weightedScore: score,
			confidence:    confidence,
			urgency:       rule.DefaultUrgency,
		})
	}

	return candidates
}

// rankCandidates orders candidates by weighted score, then confidence, then
// rule-table registration order so equal-scored results are reproducible.
func rankCandidates(candidates []scoredCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].weightedScore != candidates[j].weightedScore {
			return candidates[i].weightedScore > candidates[j].weightedScore
		}
		if candidates[i].confidence != candidates[j].confidence {
			return candidates[i].confidence > candidates[j].confidence
		}
		return candidates[i].tableOrder < candidates[j].tableOrder
	})
}
