package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/wcagcheck/internal/models"
)

var yesNo = []models.Option{{Value: "yes"}, {Value: "no"}}

func testCriteria() []models.Criterion {
	return []models.Criterion{
		{ID: "C1", Categories: []string{"forms"}},
		{ID: "C2", Categories: []string{"images"}, Tags: []string{"images"}},
		{ID: "C3"},
		{ID: "C4", Tags: []string{"video"}},
	}
}

func formsQuestion() models.Question {
	return models.Question{
		ID:      "Q1",
		Options: yesNo,
		Rule:    models.FilterRule{When: []string{"no"}, ExcludeCategories: []string{"forms"}},
	}
}

func TestAccumulatorFirstWriteWins(t *testing.T) {
	acc := NewAccumulator()
	c := models.Criterion{ID: "3.3.8"}

	assert.True(t, acc.Add(c, "q1"))
	assert.False(t, acc.Add(c, "q6"))

	by, ok := acc.RemovedBy("3.3.8")
	require.True(t, ok)
	assert.Equal(t, "q1", by)
	assert.Equal(t, 1, acc.Len())
	assert.True(t, acc.Contains("3.3.8"))
	assert.False(t, acc.Contains("1.1.1"))
}

func TestAccumulatorItemsIsCopy(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(models.Criterion{ID: "C1"}, "Q1")

	items := acc.Items()
	items[0].RemovedBy = "tampered"

	by, _ := acc.RemovedBy("C1")
	assert.Equal(t, "Q1", by)
}

func TestZeroAccumulatorIsUsable(t *testing.T) {
	var acc Accumulator
	assert.False(t, acc.Contains("C1"))
	assert.True(t, acc.Add(models.Criterion{ID: "C1"}, "Q1"))
	assert.True(t, acc.Contains("C1"))
}

func TestApplyOne(t *testing.T) {
	tests := []struct {
		name        string
		answer      string
		wantActive  []string
		wantRemoved []string
	}{
		{name: "no removes forms", answer: "no", wantActive: []string{"C2", "C3", "C4"}, wantRemoved: []string{"C1"}},
		{name: "yes keeps all", answer: "yes", wantActive: []string{"C1", "C2", "C3", "C4"}, wantRemoved: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := NewAccumulator()
			out := ApplyOne(formsQuestion(), tt.answer, testCriteria(), acc)

			assert.Equal(t, tt.wantActive, models.CriterionIDs(out))
			removed := make([]string, 0)
			for _, r := range acc.Items() {
				removed = append(removed, r.Criterion.ID)
				assert.Equal(t, "Q1", r.RemovedBy)
			}
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestApplyOneTagsRemovalWithQuestionIDForAnyAnswer(t *testing.T) {
	// Removal is driven by what the filter returns, not by the literal answer.
	q := models.Question{
		ID:      "Q9",
		Options: []models.Option{{Value: "maybe"}, {Value: "never"}},
		Rule:    models.FilterRule{When: []string{"maybe"}, ExcludeIDs: []string{"C3"}},
	}

	acc := NewAccumulator()
	out := ApplyOne(q, "maybe", testCriteria(), acc)

	assert.Equal(t, []string{"C1", "C2", "C4"}, models.CriterionIDs(out))
	by, ok := acc.RemovedBy("C3")
	require.True(t, ok)
	assert.Equal(t, "Q9", by)
}

func TestApplyOneDoesNotRetagExistingRemovals(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(models.Criterion{ID: "C1"}, "earlier")

	ApplyOne(formsQuestion(), "no", testCriteria(), acc)

	by, _ := acc.RemovedBy("C1")
	assert.Equal(t, "earlier", by)
	assert.Equal(t, 1, acc.Len())
}

func TestApplyOneGuardsAgainstMisbehavingFilter(t *testing.T) {
	// A filter that reorders, duplicates and invents criteria.
	q := models.Question{
		ID: "QX",
		Custom: models.FilterFunc(func(answer string, criteria []models.Criterion) []models.Criterion {
			return []models.Criterion{criteria[3], {ID: "ghost"}, criteria[1], criteria[1]}
		}),
	}

	acc := NewAccumulator()
	out := ApplyOne(q, "no", testCriteria(), acc)

	assert.Equal(t, []string{"C2", "C4"}, models.CriterionIDs(out))
	assert.Equal(t, 2, acc.Len())
	assert.True(t, acc.Contains("C1"))
	assert.True(t, acc.Contains("C3"))
	assert.False(t, acc.Contains("ghost"))
}

func TestReplay(t *testing.T) {
	questions := []models.Question{
		formsQuestion(),
		{ID: "Q2", Options: yesNo, Rule: models.FilterRule{When: []string{"no"}, ExcludeTags: []string{"images", "video"}}},
	}

	t.Run("replays answered questions up to index", func(t *testing.T) {
		active, removed := Replay(testCriteria(), questions, map[string]string{"Q1": "no", "Q2": "no"}, 1)
		assert.Equal(t, []string{"C3"}, models.CriterionIDs(active))
		require.Len(t, removed, 3)
		assert.Equal(t, models.RemovedCriterion{Criterion: testCriteria()[0], RemovedBy: "Q1"}, removed[0])
		assert.Equal(t, "Q2", removed[1].RemovedBy)
		assert.Equal(t, "C2", removed[1].Criterion.ID)
		assert.Equal(t, "C4", removed[2].Criterion.ID)
	})

	t.Run("ignores answers beyond index", func(t *testing.T) {
		active, removed := Replay(testCriteria(), questions, map[string]string{"Q1": "yes", "Q2": "no"}, 0)
		assert.Equal(t, []string{"C1", "C2", "C3", "C4"}, models.CriterionIDs(active))
		assert.Empty(t, removed)
	})

	t.Run("skips unanswered questions", func(t *testing.T) {
		active, _ := Replay(testCriteria(), questions, map[string]string{"Q2": "no"}, 1)
		assert.Equal(t, []string{"C1", "C3"}, models.CriterionIDs(active))
	})

	t.Run("clamps index", func(t *testing.T) {
		active, _ := Replay(testCriteria(), questions, map[string]string{"Q1": "no"}, 10)
		assert.Equal(t, []string{"C2", "C3", "C4"}, models.CriterionIDs(active))
	})

	t.Run("does not alias the catalog", func(t *testing.T) {
		catalog := testCriteria()
		active, _ := Replay(catalog, questions, nil, 1)
		active[0].ID = "changed"
		assert.Equal(t, "C1", catalog[0].ID)
	})
}

func TestReplayIsDeterministic(t *testing.T) {
	questions := []models.Question{formsQuestion()}
	answers := map[string]string{"Q1": "no"}

	a1, r1 := Replay(testCriteria(), questions, answers, 0)
	a2, r2 := Replay(testCriteria(), questions, answers, 0)

	assert.Equal(t, a1, a2)
	assert.Equal(t, r1, r2)
}

func TestApplyOneFilterPanicLeavesAccumulator(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(models.Criterion{ID: "C3"}, "Q0")

	q := models.Question{
		ID:      "Q9",
		Options: yesNo,
		Custom: models.FilterFunc(func(answer string, criteria []models.Criterion) []models.Criterion {
			panic("filter failed")
		}),
	}

	assert.PanicsWithValue(t, "filter failed", func() { ApplyOne(q, "no", testCriteria(), acc) })
	assert.Equal(t, 1, acc.Len())
	assert.False(t, acc.Contains("C1"))
	by, _ := acc.RemovedBy("C3")
	assert.Equal(t, "Q0", by)

	questions := []models.Question{formsQuestion(), q}
	answers := map[string]string{"Q1": "no", "Q9": "no"}
	assert.Panics(t, func() { Replay(testCriteria(), questions, answers, 1) })
}
