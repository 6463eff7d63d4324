package checklist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/wcagcheck/internal/models"
)

func criteria(ids ...string) []models.Criterion {
	out := make([]models.Criterion, len(ids))
	for i, id := range ids {
		out[i] = models.Criterion{ID: id, Level: models.LevelA}
	}
	return out
}

func orderOf(ids ...string) IndexFunc {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return func(id string) int {
		if p, ok := pos[id]; ok {
			return p
		}
		return -1
	}
}

func itemIDs(items []models.TestResult) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Criterion.ID
	}
	return out
}

func TestNew(t *testing.T) {
	c := New(criteria("1.1.1", "1.4.3"))

	require.Equal(t, 2, c.Len())
	for _, item := range c.Items() {
		assert.Equal(t, models.StatusPending, item.Status)
		assert.Empty(t, item.Notes)
	}
	assert.Equal(t, 0, c.Progress())
}

func TestSetStatus(t *testing.T) {
	c := New(criteria("1.1.1", "1.4.3"))

	require.NoError(t, c.SetStatus("1.4.3", models.StatusFail))
	item, ok := c.Item("1.4.3")
	require.True(t, ok)
	assert.Equal(t, models.StatusFail, item.Status)

	err := c.SetStatus("9.9.9", models.StatusPass)
	assert.True(t, errors.Is(err, ErrUnknownCriterion))

	assert.Error(t, c.SetStatus("1.1.1", models.Status("maybe")))
	item, _ = c.Item("1.1.1")
	assert.Equal(t, models.StatusPending, item.Status)
}

func TestNotesAndScreenshot(t *testing.T) {
	c := New(criteria("1.1.1"))

	require.NoError(t, c.SetNotes("1.1.1", "logo lacks alt text"))
	require.NoError(t, c.AttachScreenshot("1.1.1", "shots/logo.png"))
	item, _ := c.Item("1.1.1")
	assert.Equal(t, "logo lacks alt text", item.Notes)
	assert.Equal(t, "shots/logo.png", item.Screenshot)

	assert.Error(t, c.SetNotes("2.1.1", "x"))
	assert.Error(t, c.AttachScreenshot("2.1.1", "x"))
}

func TestRemoveAndAdd(t *testing.T) {
	order := orderOf("1.1.1", "1.4.3", "2.1.1", "4.1.2")
	c := New(criteria("1.1.1", "1.4.3", "2.1.1", "4.1.2"))
	require.NoError(t, c.SetStatus("1.1.1", models.StatusPass))
	items := c.Items()

	assert.True(t, c.Remove("2.1.1"))
	assert.False(t, c.Remove("2.1.1"))
	assert.Equal(t, []string{"1.1.1", "1.4.3", "4.1.2"}, itemIDs(c.Items()))
	assert.Equal(t, "2.1.1", items[2].Criterion.ID, "earlier Items copy is unaffected")

	assert.True(t, c.Add(models.Criterion{ID: "2.1.1"}, order))
	assert.False(t, c.Add(models.Criterion{ID: "2.1.1"}, order))
	assert.Equal(t, []string{"1.1.1", "1.4.3", "2.1.1", "4.1.2"}, itemIDs(c.Items()))

	item, _ := c.Item("1.1.1")
	assert.Equal(t, models.StatusPass, item.Status, "other items keep their status")
	item, _ = c.Item("2.1.1")
	assert.Equal(t, models.StatusPending, item.Status)
}

func TestAddAtEdges(t *testing.T) {
	order := orderOf("a", "b", "c")
	c := New(criteria("b"))

	c.Add(models.Criterion{ID: "c"}, order)
	c.Add(models.Criterion{ID: "a"}, order)
	assert.Equal(t, []string{"a", "b", "c"}, itemIDs(c.Items()))

	empty := New(nil)
	empty.Add(models.Criterion{ID: "b"}, order)
	assert.Equal(t, []string{"b"}, itemIDs(empty.Items()))
}

func TestFilter(t *testing.T) {
	c := New(criteria("a", "b", "c", "d"))
	require.NoError(t, c.SetStatus("a", models.StatusPass))
	require.NoError(t, c.SetStatus("b", models.StatusFail))
	require.NoError(t, c.SetStatus("c", models.StatusNotApplicable))

	tests := []struct {
		status string
		want   []string
	}{
		{"all", []string{"a", "b", "c", "d"}},
		{"", []string{"a", "b", "c", "d"}},
		{"pass", []string{"a"}},
		{"fail", []string{"b"}},
		{"n/a", []string{"c"}},
		{"pending", []string{"d"}},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := c.Filter(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.want, itemIDs(got))
		})
	}

	_, err := c.Filter("bogus")
	assert.Error(t, err)
}

func TestProgressAndSummary(t *testing.T) {
	c := New(criteria("a", "b", "c"))
	require.NoError(t, c.SetStatus("a", models.StatusPass))
	assert.Equal(t, 33, c.Progress())

	require.NoError(t, c.SetStatus("b", models.StatusNotApplicable))
	assert.Equal(t, 67, c.Progress())

	s := c.Summary()
	assert.Equal(t, models.Summary{Total: 3, Passed: 1, NotApplicable: 1, Pending: 1}, s)
	assert.InDelta(t, 50.0, s.ComplianceRate(), 1e-9)
}
