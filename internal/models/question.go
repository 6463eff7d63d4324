package models

import "fmt"

// Option is one selectable answer of a question. Only Value drives filtering.
type Option struct {
	Value string        `yaml:"value" json:"value"`
	Label LocalizedText `yaml:"label" json:"label"`
}

// Filter reduces a criteria list according to an answer.
// Implementations must be pure and keep the relative order of survivors.
type Filter interface {
	Apply(answer string, criteria []Criterion) []Criterion
}

// FilterFunc adapts an ordinary function to the Filter interface
type FilterFunc func(answer string, criteria []Criterion) []Criterion

// Apply calls f(answer, criteria)
func (f FilterFunc) Apply(answer string, criteria []Criterion) []Criterion {
	return f(answer, criteria)
}

// FilterRule is the declarative exclusion rule attached to a question.
// When the answer is one of When, every criterion matching an excluded id,
// tag or category is dropped. Any other answer keeps the list unchanged.
type FilterRule struct {
	When              []string `yaml:"when" json:"when"`
	ExcludeIDs        []string `yaml:"exclude_ids,omitempty" json:"excludeIds,omitempty"`
	ExcludeTags       []string `yaml:"exclude_tags,omitempty" json:"excludeTags,omitempty"`
	ExcludeCategories []string `yaml:"exclude_categories,omitempty" json:"excludeCategories,omitempty"`
}

// Triggers returns true if answer activates the rule
func (r FilterRule) Triggers(answer string) bool {
	return containsString(r.When, answer)
}

// Excludes returns true if the criterion matches any exclusion of the rule
func (r FilterRule) Excludes(c Criterion) bool {
	if containsString(r.ExcludeIDs, c.ID) {
		return true
	}
	for _, tag := range r.ExcludeTags {
		if c.HasTag(tag) {
			return true
		}
	}
	for _, cat := range r.ExcludeCategories {
		if c.HasCategory(cat) {
			return true
		}
	}
	return false
}

// IsEmpty returns true if the rule excludes nothing
func (r FilterRule) IsEmpty() bool {
	return len(r.ExcludeIDs) == 0 && len(r.ExcludeTags) == 0 && len(r.ExcludeCategories) == 0
}

// Apply implements Filter. The returned slice is always freshly allocated.
func (r FilterRule) Apply(answer string, criteria []Criterion) []Criterion {
	out := make([]Criterion, 0, len(criteria))
	if !r.Triggers(answer) {
		return append(out, criteria...)
	}
	for _, c := range criteria {
		if !r.Excludes(c) {
			out = append(out, c)
		}
	}
	return out
}

// Question is one step of the scoping questionnaire
type Question struct {
	ID      string        `yaml:"id" json:"id"`                             // Stable key, defines question order
	Text    LocalizedText `yaml:"text" json:"text"`                         // Localized prompt
	Options []Option      `yaml:"options" json:"options"`                   // Ordered answer choices
	Rule    FilterRule    `yaml:"filter" json:"filter"`                     // Declarative exclusion rule
	Impact  int           `yaml:"impact,omitempty" json:"impact,omitempty"` // Informational count of affected criteria
	Keep    string        `yaml:"keep,omitempty" json:"keep,omitempty"`     // Explicit non-filtering option (optional)

	// Custom overrides Rule when set. Used for rules that cannot be expressed
	// declaratively; never loaded from catalog files.
	Custom Filter `yaml:"-" json:"-"`
}

// Filter returns the filter evaluated for this question's answers
func (q Question) Filter() Filter {
	if q.Custom != nil {
		return q.Custom
	}
	return q.Rule
}

// HasOption returns true if value is a declared option value
func (q Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// OptionValues returns the declared option values in order
func (q Question) OptionValues() []string {
	values := make([]string, len(q.Options))
	for i, opt := range q.Options {
		values[i] = opt.Value
	}
	return values
}

// KeepValue returns the answer that leaves the criteria list untouched: Keep
// when declared, otherwise the first option value that does not trigger the rule.
// A custom filter cannot be inspected without criteria, so it needs Keep or
// KeepValueFor.
func (q Question) KeepValue() (string, error) {
	if q.Keep != "" {
		if !q.HasOption(q.Keep) {
			return "", fmt.Errorf("question %s: keep value %q is not a declared option", q.ID, q.Keep)
		}
		return q.Keep, nil
	}
	if q.Custom != nil {
		return "", fmt.Errorf("question %s has a custom filter and no keep value", q.ID)
	}
	for _, opt := range q.Options {
		if !q.Rule.Triggers(opt.Value) {
			return opt.Value, nil
		}
	}
	return "", fmt.Errorf("question %s has no option that keeps all criteria", q.ID)
}

// KeepValueFor is KeepValue for a question answered over criteria. Without
// Keep, a custom filter is run for each option in order and the first one
// that drops nothing from criteria is returned.
func (q Question) KeepValueFor(criteria []Criterion) (string, error) {
	if q.Keep != "" || q.Custom == nil {
		return q.KeepValue()
	}
	for _, opt := range q.Options {
		if len(q.Custom.Apply(opt.Value, criteria)) == len(criteria) {
			return opt.Value, nil
		}
	}
	return "", fmt.Errorf("question %s has no option that keeps all criteria", q.ID)
}
