package triage

import (
	"fmt"
	"strings"
)

const redFlagLimit = 5

var reasoningTemplates = map[string]string{
	"Cardiology":         "The symptoms suggest cardiovascular issues that require cardiology evaluation for proper diagnosis and treatment.",
	"Dermatology":        "The skin-related symptoms indicate dermatological conditions that need specialist assessment.",
	"Neurology":          "The neurological symptoms warrant evaluation by a neurologist for proper diagnosis.",
	"Gastroenterology":   "The digestive symptoms suggest gastrointestinal issues requiring gastroenterology consultation.",
	"Orthopedics":        "The bone and joint symptoms indicate orthopedic conditions requiring specialist evaluation.",
	"General Practice":   "These symptoms are commonly seen in general practice and can be initially evaluated by a general practitioner.",
	"Emergency Medicine": "The symptoms suggest a serious condition requiring immediate emergency medical attention.",
	"Pulmonology":        "The respiratory symptoms indicate pulmonary conditions requiring specialized evaluation.",
	"Ophthalmology":      "The eye-related symptoms require evaluation by an ophthalmologist for proper diagnosis.",
	"ENT":                "The ear, nose, and throat symptoms require ENT specialist consultation.",
	"Psychiatry":         "The mental health symptoms warrant evaluation by a psychiatrist or mental health professional.",
}

var questionsBySpecialty = map[string][]string{
	"Cardiology": {
		"Do you have any family history of heart disease?",
		"Are you experiencing any chest pain or pressure?",
		"Do you have shortness of breath during physical activity?",
		"Are you taking any medications for blood pressure or heart conditions?",
		"Have you noticed any irregular heartbeat or palpitations?",
	},
	"Dermatology": {
		"When did you first notice these skin changes?",
		"Have you used any new skin products or cosmetics recently?",
		"Do you have any known allergies to medications or substances?",
		"Does the affected area itch or cause pain?",
		"Have you noticed any changes in size, color, or texture?",
	},
	"Neurology": {
		"How long have you been experiencing these symptoms?",
		"Do you have any family history of neurological conditions?",
		"Are the symptoms getting worse or better?",
		"Do you experience any triggers that worsen symptoms?",
		"Have you had any recent head injuries?",
	},
	"General Practice": {
		"How long have you been experiencing these symptoms?",
		"Are there any other symptoms you've noticed?",
		"Have you taken any medications for this condition?",
		"Do you have any chronic medical conditions?",
		"Are you currently taking any medications or supplements?",
	},
}

var genericQuestions = []string{
	"How long have you been experiencing these symptoms?",
	"Are there any other symptoms you've noticed?",
	"Have you taken any medications for this condition?",
	"Do you have any chronic medical conditions?",
	"When did the symptoms first start?",
}

var cardioFlagTriggers = []string{"chest pain", "heart", "cardiac"}

var cardioRedFlags = []string{
	"Severe chest pain or pressure",
	"Shortness of breath at rest",
	"Fainting or loss of consciousness",
	"Severe sweating with chest discomfort",
}

var neuroFlagTriggers = []string{"headache", "dizziness", "confusion"}

var neuroRedFlags = []string{
	"Sudden, severe headache unlike any experienced before",
	"Confusion or disorientation",
	"Sudden weakness or numbness on one side of the body",
	"Difficulty speaking or understanding speech",
}

var generalRedFlags = []string{
	"High fever that doesn't respond to medication",
	"Severe difficulty breathing",
	"Persistent vomiting or inability to keep fluids down",
	"Signs of severe dehydration",
}

// buildReasoning looks up the specialty's clinical rationale and appends a
// whole-percentage confidence clause.
func buildReasoning(specialty string, confidence float64) string {
	base, ok := reasoningTemplates[specialty]
	if !ok {
		base = fmt.Sprintf("Based on the symptoms described, %s consultation is recommended for proper evaluation and treatment.", specialty)
	}
	return base + fmt.Sprintf(" The prediction confidence is %.0f%%.", confidence*100)
}

// suggestedQuestions returns the specialty's fixed follow-up list, or the
// generic list when no specific one exists. Callers must not mutate the
// returned slice.
func suggestedQuestions(specialty string) []string {
	if questions, ok := questionsBySpecialty[specialty]; ok {
		return questions
	}
	return genericQuestions
}

// buildRedFlags scans the text against the cardiovascular and neurological
// trigger families, appends the general flags, then deduplicates preserving
// first occurrence and truncates to five entries. The cardio-neuro-general
// order determines which flags survive the cap.
func buildRedFlags(text string) []string {
	lower := strings.ToLower(text)

	var flags []string
	if containsAny(lower, cardioFlagTriggers) {
		flags = append(flags, cardioRedFlags...)
	}
	if containsAny(lower, neuroFlagTriggers) {
		flags = append(flags, neuroRedFlags...)
	}
	flags = append(flags, generalRedFlags...)

	seen := make(map[string]struct{}, len(flags))
	deduped := make([]string, 0, redFlagLimit)
	for _, flag := range flags {
		if _, ok := seen[flag]; ok {
			continue
		}
		seen[flag] = struct{}{}
		deduped = append(deduped, flag)
		if len(deduped) == redFlagLimit {
			break
		}
	}

	return deduped
}
