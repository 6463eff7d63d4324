package catalog

import "sort"

// Impact describes how many criteria a question's rule removes from the
// full catalog when it fires
type Impact struct {
	QuestionID string
	Declared   int      // impact value carried by the question record
	Computed   int      // criteria actually removed from the full catalog
	Removed    []string // ids of the removed criteria, in catalog order
}

// Mismatch returns true if the declared impact differs from the computed one
func (i Impact) Mismatch() bool {
	return i.Declared != 0 && i.Declared != i.Computed
}

// Impacts evaluates every question against the full catalog in isolation
func (c *Catalog) Impacts() []Impact {
	impacts := make([]Impact, 0, len(c.questions))
	for _, q := range c.questions {
		impact := Impact{QuestionID: q.ID, Declared: q.Impact}
		for _, cr := range c.criteria {
			if len(q.Rule.When) > 0 && q.Rule.Excludes(cr) {
				impact.Removed = append(impact.Removed, cr.ID)
			}
		}
		impact.Computed = len(impact.Removed)
		impacts = append(impacts, impact)
	}
	return impacts
}

// TagCount is the number of criteria carrying a tag or category
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts counts how many criteria carry each tag and category.
// Sorted by count descending, then tag name.
func (c *Catalog) TagCounts() []TagCount {
	counts := make(map[string]int)
	for _, cr := range c.criteria {
		for _, tag := range cr.Tags {
			counts[tag]++
		}
		for _, cat := range cr.Categories {
			counts[cat]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
