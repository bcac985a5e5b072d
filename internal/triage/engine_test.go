package triage

import (
	"reflect"
	"testing"
)

func TestPredictFallsBackToGeneralPractice(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	got, err := engine.Predict("qwerty asdf zxcv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RecommendedSpecialty != "General Practice" {
		t.Fatalf("expected General Practice, got %q", got.RecommendedSpecialty)
	}
	if got.Confidence != 0.75 {
		t.Fatalf("expected confidence 0.75, got %v", got.Confidence)
	}
	if len(got.AlternativeSpecialties) != 0 {
		t.Fatalf("expected no alternatives, got %v", got.AlternativeSpecialties)
	}
	if got.UrgencyLevel != UrgencyMedium {
		t.Fatalf("expected medium urgency, got %q", got.UrgencyLevel)
	}
}

func TestPredictChestPainAndShortnessOfBreath(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	got, err := engine.Predict("chest pain and shortness of breath")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RecommendedSpecialty != "Cardiology" {
		t.Fatalf("expected Cardiology, got %q", got.RecommendedSpecialty)
	}
	// No critical keyword is present; "shortness of breath" fires the
	// high-urgency escalation instead.
	if got.UrgencyLevel != UrgencyHigh {
		t.Fatalf("expected high urgency, got %q", got.UrgencyLevel)
	}
}

func TestPredictHeartAttackIsAlwaysCritical(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	// "heart" token-matches Cardiology with weight 2, so Cardiology outranks
	// Emergency Medicine's substring match. Urgency must still be critical.
	got, err := engine.Predict("heart attack")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RecommendedSpecialty != "Cardiology" {
		t.Fatalf("expected Cardiology, got %q", got.RecommendedSpecialty)
	}
	if got.UrgencyLevel != UrgencyCritical {
		t.Fatalf("expected critical urgency, got %q", got.UrgencyLevel)
	}
}

func TestPredictSkinRashAndItching(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	got, err := engine.Predict("skin rash and itching")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RecommendedSpecialty != "Dermatology" {
		t.Fatalf("expected Dermatology, got %q", got.RecommendedSpecialty)
	}
	// Three token matches: base 0.90 plus the capped 0.2 bonus, clamped to 1.
	if got.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", got.Confidence)
	}
}

func TestPredictAlternativesExcludeWinnerAndCapAtTwo(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	got, err := engine.Predict("headache nausea cough skin rash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.AlternativeSpecialties) > 2 {
		t.Fatalf("expected at most 2 alternatives, got %d", len(got.AlternativeSpecialties))
	}
	for _, alt := range got.AlternativeSpecialties {
		if alt.Specialty == got.RecommendedSpecialty {
			t.Fatalf("alternatives must not include the winner %q", got.RecommendedSpecialty)
		}
		if alt.Confidence < 0 || alt.Confidence > 1 {
			t.Fatalf("alternative confidence out of range: %v", alt.Confidence)
		}
	}
}

func TestPredictTieBreaksByTableOrder(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	// "palpitations" and "seizure" each token-match exactly one specialty
	// with the same base confidence, so registration order decides.
	got, err := engine.Predict("palpitations seizure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RecommendedSpecialty != "Cardiology" {
		t.Fatalf("expected Cardiology to win the tie, got %q", got.RecommendedSpecialty)
	}
	if len(got.AlternativeSpecialties) != 1 || got.AlternativeSpecialties[0].Specialty != "Neurology" {
		t.Fatalf("expected Neurology as sole alternative, got %v", got.AlternativeSpecialties)
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	first, err := engine.Predict("severe headache with dizziness and nausea")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := engine.Predict("severe headache with dizziness and nausea")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("expected identical results, got %#v then %#v", first, again)
		}
	}
}

func TestPredictConfidenceGrowsWithMatches(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	inputs := []string{
		"angina",
		"angina and palpitations",
		"angina and palpitations with cardiac history",
	}

	previous := 0.0
	for _, input := range inputs {
		got, err := engine.Predict(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RecommendedSpecialty != "Cardiology" {
			t.Fatalf("expected Cardiology for %q, got %q", input, got.RecommendedSpecialty)
		}
		if got.Confidence < previous {
			t.Fatalf("confidence decreased from %v to %v for %q", previous, got.Confidence, input)
		}
		if got.Confidence > 1.0 {
			t.Fatalf("confidence above 1.0 for %q: %v", input, got.Confidence)
		}
		previous = got.Confidence
	}
}

func TestPredictTokenMatchOutweighsSubstringMatch(t *testing.T) {
	table, err := loadTable([]byte(`{
		"default": {"specialty": "General Practice", "confidence": 0.75, "urgency": "medium"},
		"specialties": [
			{"name": "First", "keywords": ["earache"], "confidence": 0.8, "urgency": "low"},
			{"name": "Second", "keywords": ["ache"], "confidence": 0.8, "urgency": "low"}
		]
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	engine := NewRuleEngine(table)

	// Both specialties match "earache"; only Second's keyword "ache" is a
	// bare substring, so First's whole-token match must win despite Second
	// having the same confidence.
	got, err := engine.Predict("earache")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RecommendedSpecialty != "First" {
		t.Fatalf("expected token match to outrank substring match, got %q", got.RecommendedSpecialty)
	}
}

func TestPredictNormalizesInput(t *testing.T) {
	engine := NewRuleEngine(DefaultTable())

	upper, err := engine.Predict("  SKIN RASH  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lower, err := engine.Predict("skin rash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("expected case/whitespace-insensitive results, got %#v vs %#v", upper, lower)
	}
}

func TestLoadTableRejectsEmptyKeywordSet(t *testing.T) {
	_, err := loadTable([]byte(`{
		"default": {"specialty": "General Practice", "confidence": 0.75, "urgency": "medium"},
		"specialties": [{"name": "Broken", "keywords": [], "confidence": 0.8, "urgency": "low"}]
	}`))
	if err == nil {
		t.Fatal("expected error for rule with no keywords")
	}
}

func TestDefaultTableExposesFallback(t *testing.T) {
	specialty, confidence, urgency := DefaultTable().FallbackSpecialty()

	if specialty != "General Practice" {
		t.Fatalf("expected General Practice fallback, got %q", specialty)
	}
	if confidence != 0.75 {
		t.Fatalf("expected fallback confidence 0.75, got %v", confidence)
	}
	if urgency != UrgencyMedium {
		t.Fatalf("expected fallback urgency medium, got %q", urgency)
	}
}
