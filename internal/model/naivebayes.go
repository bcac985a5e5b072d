package model

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"symtriage/internal/triage"
)

const smoothing = 1.0

// bayesModel is a multinomial naive Bayes text classifier over bag-of-words
// features. The exported fields make the trained artifact JSON-serializable.
type bayesModel struct {
	Labels      []string                  `json:"labels"`
	ClassCounts map[string]int            `json:"class_counts"`
	TokenCounts map[string]map[string]int `json:"token_counts"`
	TotalTokens map[string]int            `json:"total_tokens"`
	Vocabulary  map[string]int            `json:"vocabulary"`
	SampleTotal int                       `json:"sample_total"`
}

type sample struct {
	symptoms  string
	specialty string
}

func trainBayes(samples []sample) (*bayesModel, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("train: empty dataset")
	}

	m := &bayesModel{
		ClassCounts: map[string]int{},
		TokenCounts: map[string]map[string]int{},
		TotalTokens: map[string]int{},
		Vocabulary:  map[string]int{},
	}

	for _, s := range samples {
		if _, ok := m.TokenCounts[s.specialty]; !ok {
			m.Labels = append(m.Labels, s.specialty)
			m.TokenCounts[s.specialty] = map[string]int{}
		}
		m.ClassCounts[s.specialty]++
		m.SampleTotal++
		for _, token := range tokenize(s.symptoms) {
			m.TokenCounts[s.specialty][token]++
			m.TotalTokens[s.specialty]++
			m.Vocabulary[token]++
		}
	}
	sort.Strings(m.Labels)

	if len(m.Labels) < 2 {
		return nil, fmt.Errorf("train: need at least two specialties, got %d", len(m.Labels))
	}
	return m, nil
}

// classify returns the full probability distribution over labels, sorted by
// descending probability. Ties are broken by label order so results are
// reproducible.
func (m *bayesModel) classify(text string) []triage.LabelScore {
	tokens := tokenize(text)
	vocabSize := float64(len(m.Vocabulary))

	logProbs := make([]float64, len(m.Labels))
	for i, label := range m.Labels {
		logProb := math.Log(float64(m.ClassCounts[label]) / float64(m.SampleTotal))
		denominator := float64(m.TotalTokens[label]) + smoothing*vocabSize
		for _, token := range tokens {
			if _, known := m.Vocabulary[token]; !known {
				continue
			}
			count := float64(m.TokenCounts[label][token])
			logProb += math.Log((count + smoothing) / denominator)
		}
		logProbs[i] = logProb
	}

	// Normalize in log space to avoid underflow.
	maxLog := logProbs[0]
	for _, lp := range logProbs[1:] {
		if lp > maxLog {
			maxLog = lp
		}
	}
	total := 0.0
	scores := make([]triage.LabelScore, len(m.Labels))
	for i, lp := range logProbs {
		p := math.Exp(lp - maxLog)
		scores[i] = triage.LabelScore{Label: m.Labels[i], Score: p}
		total += p
	}
	for i := range scores {
		scores[i].Score /= total
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

func (m *bayesModel) predictLabel(text string) string {
	return m.classify(text)[0].Label
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, field := range fields {
		if len(field) > 1 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// accuracy scores the model against labeled samples.
func (m *bayesModel) accuracy(samples []sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	correct := 0
	for _, s := range samples {
		if m.predictLabel(s.symptoms) == s.specialty {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}
