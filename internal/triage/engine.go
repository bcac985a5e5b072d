// Package triage maps free-text symptom descriptions to a recommended
// medical specialty, an urgency tier, alternatives, reasoning, follow-up
// questions, and red flags. Two strategies produce the same result shape: a
// deterministic keyword-rule engine and an adapter over a trained classifier.
package triage

import "strings"

const maxAlternatives = 2

// RuleEngine is the deterministic keyword-rule prediction strategy.
type RuleEngine struct {
	table *RuleTable
}

// NewRuleEngine builds a rule engine over the given table. The table is
// treated as read-only, so the engine is safe for concurrent use.
func NewRuleEngine(table *RuleTable) *RuleEngine {
	return &RuleEngine{table: table}
}

// Predict scores the symptom text against every specialty rule, ranks the
// candidates, escalates urgency from severity signals, and assembles the
// explanation. It is a pure function of the rule table and the input text.
func (e *RuleEngine) Predict(symptoms string) (PredictionResult, error) {
	text := strings.ToLower(strings.TrimSpace(symptoms))

	candidates := scoreSpecialties(e.table, text)

	var (
		specialty    string
		confidence   float64
		urgency      Urgency
		alternatives []AlternativeSpecialty
	)

	if len(candidates) == 0 {
		specialty, confidence, urgency = e.table.FallbackSpecialty()
	} else {
		rankCandidates(candidates)
		winner := candidates[0]
		specialty = winner.specialty
		confidence = winner.confidence
		urgency = winner.urgency
		for _, candidate := range candidates[1:] {
			alternatives = append(alternatives, AlternativeSpecialty{
				Specialty:  candidate.specialty,
				Confidence: candidate.confidence,
			})
			if len(alternatives) == maxAlternatives {
				break
			}
		}
	}

	urgency = resolveUrgency(text, urgency)

	return PredictionResult{
		RecommendedSpecialty:   specialty,
		Confidence:             confidence,
		AlternativeSpecialties: alternatives,
		UrgencyLevel:           urgency,
		Reasoning:              buildReasoning(specialty, confidence),
		SuggestedQuestions:     suggestedQuestions(specialty),
		RedFlags:               buildRedFlags(text),
	}, nil
}
