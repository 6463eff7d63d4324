package models

import (
	"fmt"
	"strings"
)

// DefaultLanguage is used when a catalog does not declare a fallback language
const DefaultLanguage = "en"

// Level is a WCAG conformance level
type Level string

// Conformance levels covered by the catalog
const (
	LevelA  Level = "A"
	LevelAA Level = "AA"
)

// ParseLevel converts a case-insensitive level string into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return LevelA, nil
	case "AA":
		return LevelAA, nil
	default:
		return "", fmt.Errorf("unknown conformance level %q (want A or AA)", s)
	}
}

// Valid reports whether l is a known conformance level
func (l Level) Valid() bool {
	return l == LevelA || l == LevelAA
}

// LocalizedText maps a language code to text
type LocalizedText map[string]string

// Get returns the text for lang, falling back to the fallback language and
// then to any non-empty translation. Returns "" for empty text.
func (t LocalizedText) Get(lang, fallback string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if s, ok := t[fallback]; ok && s != "" {
		return s
	}
	for _, s := range t {
		if s != "" {
			return s
		}
	}
	return ""
}

// Criterion is one WCAG success criterion from the reference catalog.
// Criteria are never mutated after the catalog is loaded.
type Criterion struct {
	ID               string        `yaml:"id" json:"id"`                                                   // Stable key, e.g. "1.4.3"
	Level            Level         `yaml:"level" json:"level"`                                             // A or AA
	Title            LocalizedText `yaml:"title" json:"title"`                                             // Localized title
	Description      LocalizedText `yaml:"description" json:"description"`                                 // Localized testing guidance
	Categories       []string      `yaml:"categories" json:"categories"`                                   // Broad filter tags
	Tags             []string      `yaml:"tags" json:"tags"`                                               // Fine-grained filter tags
	UnderstandingURL string        `yaml:"understanding_url,omitempty" json:"understandingUrl,omitempty"` // W3C Understanding document
}

// HasTag returns true if the criterion carries the tag
func (c Criterion) HasTag(tag string) bool {
	return containsString(c.Tags, tag)
}

// HasCategory returns true if the criterion belongs to the category
func (c Criterion) HasCategory(category string) bool {
	return containsString(c.Categories, category)
}

// ManualRemoval tags criteria removed by the user rather than by a question
const ManualRemoval = "manual"

// RemovedCriterion records a criterion excluded from testing and what excluded it.
// RemovedBy is either a question id or ManualRemoval.
type RemovedCriterion struct {
	Criterion Criterion
	RemovedBy string
}

// IsManual returns true if the criterion was removed by a manual override
func (r RemovedCriterion) IsManual() bool {
	return r.RemovedBy == ManualRemoval
}

// CriterionIDs returns the ids of criteria in order
func CriterionIDs(criteria []Criterion) []string {
	ids := make([]string, len(criteria))
	for i, c := range criteria {
		ids[i] = c.ID
	}
	return ids
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
