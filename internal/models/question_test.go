package models

import (
	"reflect"
	"testing"
)

func sampleCriteria() []Criterion {
	return []Criterion{
		{ID: "1.1.1", Categories: []string{"images"}, Tags: []string{"images", "icons"}},
		{ID: "1.2.2", Categories: []string{"multimedia"}, Tags: []string{"video"}},
		{ID: "1.3.5", Categories: []string{"forms"}, Tags: []string{"autocomplete"}},
		{ID: "2.4.1", Categories: []string{"navigation"}, Tags: []string{"skip-links"}},
	}
}

func TestFilterRuleApply(t *testing.T) {
	tests := []struct {
		name   string
		rule   FilterRule
		answer string
		want   []string
	}{
		{
			name:   "non-triggering answer keeps everything",
			rule:   FilterRule{When: []string{"no"}, ExcludeIDs: []string{"2.4.1"}},
			answer: "yes",
			want:   []string{"1.1.1", "1.2.2", "1.3.5", "2.4.1"},
		},
		{
			name:   "exclude by id",
			rule:   FilterRule{When: []string{"no"}, ExcludeIDs: []string{"2.4.1", "9.9.9"}},
			answer: "no",
			want:   []string{"1.1.1", "1.2.2", "1.3.5"},
		},
		{
			name:   "exclude by tag",
			rule:   FilterRule{When: []string{"no"}, ExcludeTags: []string{"icons", "video"}},
			answer: "no",
			want:   []string{"1.3.5", "2.4.1"},
		},
		{
			name:   "exclude by category",
			rule:   FilterRule{When: []string{"no"}, ExcludeCategories: []string{"forms"}},
			answer: "no",
			want:   []string{"1.1.1", "1.2.2", "2.4.1"},
		},
		{
			name:   "empty rule keeps everything",
			rule:   FilterRule{When: []string{"no"}},
			answer: "no",
			want:   []string{"1.1.1", "1.2.2", "1.3.5", "2.4.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CriterionIDs(tt.rule.Apply(tt.answer, sampleCriteria()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRuleApplyDoesNotAliasInput(t *testing.T) {
	in := sampleCriteria()
	out := FilterRule{When: []string{"no"}}.Apply("yes", in)
	out[0].ID = "changed"
	if in[0].ID != "1.1.1" {
		t.Error("Apply returned a slice aliasing its input")
	}
}

func TestQuestionKeepValue(t *testing.T) {
	yesNo := []Option{{Value: "yes"}, {Value: "no"}}

	tests := []struct {
		name    string
		q       Question
		want    string
		wantErr bool
	}{
		{
			name: "first non-triggering option",
			q:    Question{ID: "q1", Options: yesNo, Rule: FilterRule{When: []string{"no"}}},
			want: "yes",
		},
		{
			name: "triggering option listed first",
			q:    Question{ID: "q2", Options: []Option{{Value: "no"}, {Value: "yes"}}, Rule: FilterRule{When: []string{"no"}}},
			want: "yes",
		},
		{
			name: "explicit keep wins",
			q:    Question{ID: "q3", Options: yesNo, Keep: "no"},
			want: "no",
		},
		{
			name:    "explicit keep must be declared",
			q:       Question{ID: "q4", Options: yesNo, Keep: "maybe"},
			wantErr: true,
		},
		{
			name:    "every option triggers",
			q:       Question{ID: "q5", Options: yesNo, Rule: FilterRule{When: []string{"yes", "no"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.q.KeepValue()
			if (err != nil) != tt.wantErr {
				t.Fatalf("KeepValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("KeepValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuestionKeepValueCustomFilter(t *testing.T) {
	dropFirstOnNo := FilterFunc(func(answer string, criteria []Criterion) []Criterion {
		if answer == "no" && len(criteria) > 0 {
			return criteria[1:]
		}
		return criteria
	})
	q := Question{ID: "q1", Options: []Option{{Value: "no"}, {Value: "yes"}}, Custom: dropFirstOnNo}

	if _, err := q.KeepValue(); err == nil {
		t.Error("KeepValue() should fail for a custom filter without keep")
	}
	got, err := q.KeepValueFor(sampleCriteria())
	if err != nil {
		t.Fatalf("KeepValueFor() error: %v", err)
	}
	if got != "yes" {
		t.Errorf("KeepValueFor() = %q, want %q", got, "yes")
	}

	q.Keep = "no"
	if got, _ := q.KeepValueFor(sampleCriteria()); got != "no" {
		t.Errorf("explicit keep: KeepValueFor() = %q, want %q", got, "no")
	}

	dropAll := FilterFunc(func(string, []Criterion) []Criterion { return nil })
	q = Question{ID: "q2", Options: []Option{{Value: "no"}, {Value: "yes"}}, Custom: dropAll}
	if _, err := q.KeepValueFor(sampleCriteria()); err == nil {
		t.Error("KeepValueFor() should fail when every option filters")
	}
}

func TestQuestionFilterPrefersCustom(t *testing.T) {
	called := false
	q := Question{
		ID:   "q1",
		Rule: FilterRule{When: []string{"no"}, ExcludeIDs: []string{"1.1.1"}},
		Custom: FilterFunc(func(answer string, criteria []Criterion) []Criterion {
			called = true
			return criteria[:1]
		}),
	}

	got := q.Filter().Apply("no", sampleCriteria())
	if !called {
		t.Fatal("custom filter not used")
	}
	if len(got) != 1 || got[0].ID != "1.1.1" {
		t.Errorf("custom filter result = %v", CriterionIDs(got))
	}
}

func TestQuestionOptions(t *testing.T) {
	q := Question{Options: []Option{{Value: "yes"}, {Value: "no"}}}
	if !q.HasOption("no") || q.HasOption("maybe") {
		t.Error("HasOption mismatch")
	}
	if got := q.OptionValues(); !reflect.DeepEqual(got, []string{"yes", "no"}) {
		t.Errorf("OptionValues() = %v", got)
	}
}
