package triage

import "strings"

// Keyword sets for urgency escalation. These are independent of the specialty
// rules: urgency reflects severity signals in the text, not which specialty
// won.
var criticalKeywords = []string{
	"heart attack",
	"stroke",
	"severe trauma",
	"poisoning",
	"overdose",
	"severe allergic reaction",
	"can't breathe",
	"unconscious",
}

var highUrgencyKeywords = []string{
	"chest pain",
	"shortness of breath",
	"severe pain",
	"bleeding",
	"seizure",
	"high fever",
	"severe headache",
}

// Specialties whose recommendation alone lifts the statistical strategy's
// baseline urgency to high.
var highUrgencySpecialties = map[string]struct{}{
	"Emergency Medicine": {},
	"Cardiology":         {},
}

// resolveUrgency escalates the base urgency from the winning rule. Critical
// keywords override everything, then high-urgency keywords; otherwise the
// base tier stands.
func resolveUrgency(text string, base Urgency) Urgency {
	if containsAny(text, criticalKeywords) {
		return UrgencyCritical
	}
	if containsAny(text, highUrgencyKeywords) {
		return UrgencyHigh
	}
	return base
}

// resolveModelUrgency applies the same keyword escalation for the statistical
// strategy, with a specialty/confidence baseline instead of a rule tier.
func resolveModelUrgency(text, specialty string, confidence float64) Urgency {
	if containsAny(text, criticalKeywords) {
		return UrgencyCritical
	}
	if containsAny(text, highUrgencyKeywords) {
		return UrgencyHigh
	}
	if _, ok := highUrgencySpecialties[specialty]; ok {
		return UrgencyHigh
	}
	if confidence > 0.7 {
		return UrgencyMedium
	}
	return UrgencyLow
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
