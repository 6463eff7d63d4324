package catalog

import (
	"fmt"
	"strings"

	"github.com/harrison/wcagcheck/internal/models"
)

// ValidationError lists every problem found in a catalog
type ValidationError struct {
	Problems []string
}

// Error joins all problems into one message
func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid catalog: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid catalog: %d problems:\n  - %s", len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// Validate checks criteria and questions for structural problems.
// Returns a *ValidationError listing every problem, or nil.
func (c *Catalog) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(c.criteria) == 0 {
		add("catalog contains no criteria")
	}

	seen := make(map[string]bool, len(c.criteria))
	for i, cr := range c.criteria {
		if strings.TrimSpace(cr.ID) == "" {
			add("criterion #%d has an empty id", i+1)
			continue
		}
		if seen[cr.ID] {
			add("duplicate criterion id %q", cr.ID)
		}
		seen[cr.ID] = true
		if !cr.Level.Valid() {
			add("criterion %s has unknown level %q", cr.ID, cr.Level)
		}
		if cr.Title.Get(c.fallback, c.fallback) == "" {
			add("criterion %s has no title", cr.ID)
		}
	}

	seenQuestions := make(map[string]bool, len(c.questions))
	for i, q := range c.questions {
		if strings.TrimSpace(q.ID) == "" {
			add("question #%d has an empty id", i+1)
			continue
		}
		if seenQuestions[q.ID] {
			add("duplicate question id %q", q.ID)
		}
		seenQuestions[q.ID] = true
		problems = append(problems, validateQuestion(q, seen, c.criteria)...)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// validateQuestion checks options and the filter rule of one question.
// all is the full catalog, used to find the keep option of custom filters.
func validateQuestion(q models.Question, criteria map[string]bool, all []models.Criterion) []string {
	var problems []string

	if len(q.Options) < 2 {
		problems = append(problems, fmt.Sprintf("question %s needs at least two options, has %d", q.ID, len(q.Options)))
	}
	values := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.Value == "" {
			problems = append(problems, fmt.Sprintf("question %s has an option with an empty value", q.ID))
			continue
		}
		if values[opt.Value] {
			problems = append(problems, fmt.Sprintf("question %s declares option %q twice", q.ID, opt.Value))
		}
		values[opt.Value] = true
	}

	for _, when := range q.Rule.When {
		if !values[when] {
			problems = append(problems, fmt.Sprintf("question %s filter triggers on undeclared option %q", q.ID, when))
		}
	}
	for _, id := range q.Rule.ExcludeIDs {
		if !criteria[id] {
			problems = append(problems, fmt.Sprintf("question %s excludes unknown criterion %q", q.ID, id))
		}
	}
	if _, err := q.KeepValueFor(all); err != nil {
		problems = append(problems, err.Error())
	}

	return problems
}
