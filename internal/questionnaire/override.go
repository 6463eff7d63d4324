package questionnaire

import "github.com/harrison/wcagcheck/internal/models"

// RemoveManually moves an active criterion to the removed list tagged
// models.ManualRemoval. Returns false, changing nothing, if the criterion is
// not active.
func (s *Session) RemoveManually(criterionID string) bool {
	for i, c := range s.active {
		if c.ID != criterionID {
			continue
		}
		active := make([]models.Criterion, 0, len(s.active)-1)
		active = append(active, s.active[:i]...)
		s.active = append(active, s.active[i+1:]...)
		s.removed = append(s.RemovedCriteria(), models.RemovedCriterion{Criterion: c, RemovedBy: models.ManualRemoval})
		s.debugf("removed %s manually", criterionID)
		return true
	}
	return false
}

// Restore moves a removed criterion back into the active list at its catalog
// position, whatever removed it. Returns false, changing nothing, if the
// criterion is not in the removed list.
func (s *Session) Restore(criterionID string) bool {
	at := -1
	for i, r := range s.removed {
		if r.Criterion.ID == criterionID {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}

	entry := s.removed[at]
	removed := make([]models.RemovedCriterion, 0, len(s.removed)-1)
	removed = append(removed, s.removed[:at]...)
	s.removed = append(removed, s.removed[at+1:]...)

	// Insert before the first active criterion cataloged after this one.
	pos := s.catalog.Index(criterionID)
	insert := len(s.active)
	for i, c := range s.active {
		if s.catalog.Index(c.ID) > pos {
			insert = i
			break
		}
	}

	active := make([]models.Criterion, 0, len(s.active)+1)
	active = append(active, s.active[:insert]...)
	active = append(active, entry.Criterion)
	s.active = append(active, s.active[insert:]...)

	s.debugf("restored %s (removed by %s)", criterionID, entry.RemovedBy)
	return true
}
