package triage

// AlternativeSpecialty is a lower-ranked candidate exposed alongside the
// recommendation.
type AlternativeSpecialty struct {
	Specialty  string  `json:"specialty"`
	Confidence float64 `json:"confidence"`
}

// PredictionResult is the structured triage suggestion produced for one
// symptom description.
type PredictionResult struct {
	RecommendedSpecialty   string                 `json:"recommendedSpecialty"`
	Confidence             float64                `json:"confidence"`
	AlternativeSpecialties []AlternativeSpecialty `json:"alternativeSpecialties"`
	UrgencyLevel           Urgency                `json:"urgencyLevel"`
	Reasoning              string                 `json:"reasoning"`
	SuggestedQuestions     []string               `json:"suggestedQuestions"`
	RedFlags               []string               `json:"redFlags"`
}

// LabelScore is one entry of a classifier's ranked probability distribution.
type LabelScore struct {
	Label string
	Score float64
}

// Classifier is the capability a trained model exposes to the statistical
// strategy: a ranked probability distribution over specialty labels.
type Classifier interface {
	Classify(text string) ([]LabelScore, error)
}

// Engine turns a free-text symptom description into a PredictionResult.
type Engine interface {
	Predict(symptoms string) (PredictionResult, error)
}
