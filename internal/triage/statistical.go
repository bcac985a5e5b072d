package triage

import (
	"fmt"
	"strings"
)

// Probability floor below which statistical alternatives are dropped rather
// than reported.
const alternativeThreshold = 0.1

// StatisticalEngine adapts a trained classifier to the prediction contract.
// Urgency escalation and explanation generation are shared with the rule
// engine, so both strategies expose identical semantics around the winner.
type StatisticalEngine struct {
	classifier Classifier
}

// NewStatisticalEngine wraps a classifier capability. The classifier decides
// availability: an untrained or unloaded model must surface an error from
// Classify, it is never papered over with rule-based results here.
func NewStatisticalEngine(classifier Classifier) *StatisticalEngine {
	return &StatisticalEngine{classifier: classifier}
}

func (e *StatisticalEngine) Predict(symptoms string) (PredictionResult, error) {
	text := strings.ToLower(strings.TrimSpace(symptoms))

	ranked, err := e.classifier.Classify(text)
	if err != nil {
		return PredictionResult{}, fmt.Errorf("classify symptoms: %w", err)
	}
	if len(ranked) == 0 {
		return PredictionResult{}, fmt.Errorf("classify symptoms: empty distribution")
	}

	winner := ranked[0]

	// Only the next two labels are ever considered, and each is dropped
	// outright when its probability is at or below the threshold.
	var alternatives []AlternativeSpecialty
	for i := 1; i < len(ranked) && i <= maxAlternatives; i++ {
		if ranked[i].Score <= alternativeThreshold {
			continue
		}
		alternatives = append(alternatives, AlternativeSpecialty{
			Specialty:  ranked[i].Label,
			Confidence: ranked[i].Score,
		})
	}

	return PredictionResult{
		RecommendedSpecialty:   winner.Label,
		Confidence:             winner.Score,
		AlternativeSpecialties: alternatives,
		UrgencyLevel:           resolveModelUrgency(text, winner.Label, winner.Score),
		Reasoning:              buildReasoning(winner.Label, winner.Score),
		SuggestedQuestions:     suggestedQuestions(winner.Label),
		RedFlags:               buildRedFlags(text),
	}, nil
}
