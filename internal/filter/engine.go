package filter

import "github.com/harrison/wcagcheck/internal/models"

// Accumulator collects removed criteria in removal order.
// The first removal of a criterion wins; later removals of the same id are ignored.
type Accumulator struct {
	items []models.RemovedCriterion
	index map[string]int
}

// NewAccumulator returns an empty accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[string]int)}
}

// Add records c as removed by removedBy unless c is already recorded.
// Returns true if the criterion was added.
func (a *Accumulator) Add(c models.Criterion, removedBy string) bool {
	if a.index == nil {
		a.index = make(map[string]int)
	}
	if _, exists := a.index[c.ID]; exists {
		return false
	}
	a.index[c.ID] = len(a.items)
	a.items = append(a.items, models.RemovedCriterion{Criterion: c, RemovedBy: removedBy})
	return true
}

// Contains returns true if the criterion id has been recorded
func (a *Accumulator) Contains(id string) bool {
	_, ok := a.index[id]
	return ok
}

// RemovedBy returns the removal reason recorded for id
func (a *Accumulator) RemovedBy(id string) (string, bool) {
	i, ok := a.index[id]
	if !ok {
		return "", false
	}
	return a.items[i].RemovedBy, true
}

// Len returns the number of recorded criteria
func (a *Accumulator) Len() int {
	return len(a.items)
}

// Items returns a copy of the recorded criteria in removal order
func (a *Accumulator) Items() []models.RemovedCriterion {
	out := make([]models.RemovedCriterion, len(a.items))
	copy(out, a.items)
	return out
}

// ApplyOne filters in by question q's answer and records every criterion the
// filter dropped in acc, tagged with q.ID. The answer is not validated here.
//
// The result never contains a criterion absent from in and keeps the order
// of in. acc is only written after the filter has returned.
func ApplyOne(q models.Question, answer string, in []models.Criterion, acc *Accumulator) []models.Criterion {
	out := q.Filter().Apply(answer, in)

	kept := make(map[string]bool, len(out))
	for _, c := range out {
		kept[c.ID] = true
	}

	// Rebuild survivors from in so a misbehaving filter cannot reorder the
	// list or introduce criteria that were not active.
	survivors := make([]models.Criterion, 0, len(out))
	for _, c := range in {
		if kept[c.ID] {
			survivors = append(survivors, c)
			continue
		}
		acc.Add(c, q.ID)
	}
	return survivors
}

// Replay recomputes the active and removed criteria for an answer history.
// It starts from the full criteria list and applies the answers of
// questions[0..through] in question order, skipping unanswered questions.
// through is clamped to the question range. Both returned slices are new.
func Replay(criteria []models.Criterion, questions []models.Question, answers map[string]string, through int) ([]models.Criterion, []models.RemovedCriterion) {
	active := make([]models.Criterion, len(criteria))
	copy(active, criteria)
	acc := NewAccumulator()

	if through >= len(questions) {
		through = len(questions) - 1
	}
	for i := 0; i <= through; i++ {
		q := questions[i]
		answer, ok := answers[q.ID]
		if !ok || answer == "" {
			continue
		}
		active = ApplyOne(q, answer, active, acc)
	}

	return active, acc.Items()
}
