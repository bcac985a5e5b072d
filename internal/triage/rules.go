package triage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed specialty_rules.json
var embeddedRules []byte

// Urgency is the ordinal severity tier attached to a prediction.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// SpecialtyRule maps a medical specialty to its trigger keywords, the base
// confidence assigned when any keyword matches, and the default urgency tier.
type SpecialtyRule struct {
	Name           string   `json:"name"`
	Keywords       []string `json:"keywords"`
	BaseConfidence float64  `json:"confidence"`
	DefaultUrgency Urgency  `json:"urgency"`
}

type fallbackRule struct {
	Specialty  string  `json:"specialty"`
	Confidence float64 `json:"confidence"`
	Urgency    Urgency `json:"urgency"`
}

// RuleTable is the read-only specialty knowledge base. Rules keep their
// registration order because ranking tie-breaks depend on it.
type RuleTable struct {
	rules    []SpecialtyRule
	fallback fallbackRule
}

type ruleFile struct {
	Default     fallbackRule    `json:"default"`
	Specialties []SpecialtyRule `json:"specialties"`
}

var defaultTable = mustLoadTable(embeddedRules)

// DefaultTable returns the process-wide rule table built from the embedded
// rule set.
func DefaultTable() *RuleTable {
	return defaultTable
}

func mustLoadTable(raw []byte) *RuleTable {
	table, err := loadTable(raw)
	if err != nil {
		panic(err)
	}
	return table
}

func loadTable(raw []byte) (*RuleTable, error) {
	var file ruleFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse specialty rules: %w", err)
	}

	if strings.TrimSpace(file.Default.Specialty) == "" {
		return nil, fmt.Errorf("specialty rules: missing default specialty")
	}
	if file.Default.Confidence <= 0 || file.Default.Confidence > 1 {
		return nil, fmt.Errorf("specialty rules: default confidence %v out of range", file.Default.Confidence)
	}

	for i, rule := range file.Specialties {
		if strings.TrimSpace(rule.Name) == "" {
			return nil, fmt.Errorf("specialty rules: rule %d has no name", i)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("specialty rules: %s has no keywords", rule.Name)
		}
		if rule.BaseConfidence <= 0 || rule.BaseConfidence > 1 {
			return nil, fmt.Errorf("specialty rules: %s confidence %v out of range", rule.Name, rule.BaseConfidence)
		}
		for j, keyword := range rule.Keywords {
			file.Specialties[i].Keywords[j] = strings.ToLower(strings.TrimSpace(keyword))
		}
	}

	return &RuleTable{rules: file.Specialties, fallback: file.Default}, nil
}

// Rules returns the rules in registration order.
func (t *RuleTable) Rules() []SpecialtyRule {
	return t.rules
}

// Lookup returns the rule for the named specialty.
func (t *RuleTable) Lookup(name string) (SpecialtyRule, bool) {
	for _, rule := range t.rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return SpecialtyRule{}, false
}

// FallbackSpecialty is the recommendation used when no keyword matches.
func (t *RuleTable) FallbackSpecialty() (string, float64, Urgency) {
	return t.fallback.Specialty, t.fallback.Confidence, t.fallback.Urgency
}
