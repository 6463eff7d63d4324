// Package catalog provides the WCAG criteria catalog and the scoping
// questionnaire it is filtered by.
//
// A Catalog is immutable once built. It keeps criteria and questions in their
// declared order and builds id lookup tables once, so callers never scan the
// criteria list to find a criterion or its catalog position.
package catalog

import (
	"fmt"

	"github.com/harrison/wcagcheck/internal/models"
)

// Catalog is an ordered, validated set of criteria and questions
type Catalog struct {
	criteria  []models.Criterion
	questions []models.Question
	fallback  string

	criterionIndex map[string]int
	questionIndex  map[string]int
}

// New builds a catalog and validates it. The slices are copied.
// An empty fallback language defaults to models.DefaultLanguage.
func New(criteria []models.Criterion, questions []models.Question, fallback string) (*Catalog, error) {
	if fallback == "" {
		fallback = models.DefaultLanguage
	}

	c := &Catalog{
		criteria:       append([]models.Criterion(nil), criteria...),
		questions:      append([]models.Question(nil), questions...),
		fallback:       fallback,
		criterionIndex: make(map[string]int, len(criteria)),
		questionIndex:  make(map[string]int, len(questions)),
	}
	for i, cr := range c.criteria {
		if _, dup := c.criterionIndex[cr.ID]; !dup {
			c.criterionIndex[cr.ID] = i
		}
	}
	for i, q := range c.questions {
		if _, dup := c.questionIndex[q.ID]; !dup {
			c.questionIndex[q.ID] = i
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is like New but panics on an invalid catalog. Intended for tests
// and static datasets.
func MustNew(criteria []models.Criterion, questions []models.Question, fallback string) *Catalog {
	c, err := New(criteria, questions, fallback)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Criteria returns a copy of all criteria in catalog order
func (c *Catalog) Criteria() []models.Criterion {
	return append([]models.Criterion(nil), c.criteria...)
}

// Questions returns a copy of all questions in question order
func (c *Catalog) Questions() []models.Question {
	return append([]models.Question(nil), c.questions...)
}

// Len returns the number of criteria
func (c *Catalog) Len() int {
	return len(c.criteria)
}

// QuestionCount returns the number of questions
func (c *Catalog) QuestionCount() int {
	return len(c.questions)
}

// FallbackLanguage returns the language used when a translation is missing
func (c *Catalog) FallbackLanguage() string {
	return c.fallback
}

// Criterion looks up a criterion by id
func (c *Catalog) Criterion(id string) (models.Criterion, bool) {
	i, ok := c.criterionIndex[id]
	if !ok {
		return models.Criterion{}, false
	}
	return c.criteria[i], true
}

// Index returns the catalog position of a criterion, or -1 if unknown
func (c *Catalog) Index(id string) int {
	i, ok := c.criterionIndex[id]
	if !ok {
		return -1
	}
	return i
}

// Question looks up a question by id
func (c *Catalog) Question(id string) (models.Question, bool) {
	i, ok := c.questionIndex[id]
	if !ok {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// QuestionAt returns the question at position i. i must be in range.
func (c *Catalog) QuestionAt(i int) models.Question {
	return c.questions[i]
}

// IDs returns the criterion ids in catalog order
func (c *Catalog) IDs() []string {
	return models.CriterionIDs(c.criteria)
}

// ByLevel returns the criteria of one conformance level in catalog order
func (c *Catalog) ByLevel(level models.Level) []models.Criterion {
	var out []models.Criterion
	for _, cr := range c.criteria {
		if cr.Level == level {
			out = append(out, cr)
		}
	}
	return out
}

// Title returns the localized title of a criterion
func (c *Catalog) Title(cr models.Criterion, lang string) string {
	return cr.Title.Get(lang, c.fallback)
}

// Description returns the localized description of a criterion
func (c *Catalog) Description(cr models.Criterion, lang string) string {
	return cr.Description.Get(lang, c.fallback)
}

// Text returns any localized text using the catalog's fallback language
func (c *Catalog) Text(t models.LocalizedText, lang string) string {
	return t.Get(lang, c.fallback)
}
