// Package checklist tracks the testing phase that follows the questionnaire:
// one item per active criterion with a status, notes and an optional
// screenshot reference.
package checklist

import (
	"errors"
	"fmt"
	"math"

	"github.com/harrison/wcagcheck/internal/models"
)

// ErrUnknownCriterion is returned when an operation names a criterion that is
// not on the checklist
var ErrUnknownCriterion = errors.New("criterion not on checklist")

// FilterAll selects every item in Filter
const FilterAll = "all"

// IndexFunc returns the catalog position of a criterion id, -1 if unknown
type IndexFunc func(id string) int

// Checklist is an ordered list of test results
type Checklist struct {
	items []models.TestResult
}

// New creates a checklist with every criterion pending
func New(active []models.Criterion) *Checklist {
	items := make([]models.TestResult, len(active))
	for i, c := range active {
		items[i] = models.TestResult{Criterion: c, Status: models.StatusPending}
	}
	return &Checklist{items: items}
}

func (c *Checklist) find(id string) (int, error) {
	for i := range c.items {
		if c.items[i].Criterion.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%s: %w", id, ErrUnknownCriterion)
}

// SetStatus records the outcome for a criterion
func (c *Checklist) SetStatus(id string, status models.Status) error {
	if _, err := models.ParseStatus(string(status)); err != nil {
		return err
	}
	i, err := c.find(id)
	if err != nil {
		return err
	}
	c.items[i].Status = status
	return nil
}

// SetNotes replaces the notes for a criterion
func (c *Checklist) SetNotes(id, notes string) error {
	i, err := c.find(id)
	if err != nil {
		return err
	}
	c.items[i].Notes = notes
	return nil
}

// AttachScreenshot stores a reference to an evidence image. The file itself
// is not read.
func (c *Checklist) AttachScreenshot(id, path string) error {
	i, err := c.find(id)
	if err != nil {
		return err
	}
	c.items[i].Screenshot = path
	return nil
}

// Remove drops a criterion from the checklist. Returns false if it was not
// present.
func (c *Checklist) Remove(id string) bool {
	i, err := c.find(id)
	if err != nil {
		return false
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}

// Add inserts a pending item for cr at its catalog position. Adding a
// criterion that is already present does nothing and returns false.
func (c *Checklist) Add(cr models.Criterion, index IndexFunc) bool {
	if _, err := c.find(cr.ID); err == nil {
		return false
	}

	pos := index(cr.ID)
	insert := len(c.items)
	for i, item := range c.items {
		if index(item.Criterion.ID) > pos {
			insert = i
			break
		}
	}

	items := make([]models.TestResult, 0, len(c.items)+1)
	items = append(items, c.items[:insert]...)
	items = append(items, models.TestResult{Criterion: cr, Status: models.StatusPending})
	c.items = append(items, c.items[insert:]...)
	return true
}

// Item returns the result for a criterion
func (c *Checklist) Item(id string) (models.TestResult, bool) {
	i, err := c.find(id)
	if err != nil {
		return models.TestResult{}, false
	}
	return c.items[i], true
}

// Items returns a copy of all results in order
func (c *Checklist) Items() []models.TestResult {
	return append([]models.TestResult(nil), c.items...)
}

// Len returns the number of items
func (c *Checklist) Len() int {
	return len(c.items)
}

// Filter returns the items with the given status, or all items for
// FilterAll or an empty string
func (c *Checklist) Filter(status string) ([]models.TestResult, error) {
	if status == "" || status == FilterAll {
		return c.Items(), nil
	}
	want, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var out []models.TestResult
	for _, item := range c.items {
		if item.Status == want {
			out = append(out, item)
		}
	}
	return out, nil
}

// Summary counts items by status
func (c *Checklist) Summary() models.Summary {
	return models.Summarize(c.items)
}

// Progress returns the share of completed items as a whole percentage
func (c *Checklist) Progress() int {
	s := c.Summary()
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed()) / float64(s.Total) * 100))
}
