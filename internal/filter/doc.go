// Package filter implements the criteria filtering engine.
//
// The engine is a set of pure functions. ApplyOne reduces an active criteria
// list by one question's answer and records what it removed in an
// Accumulator. Replay rebuilds the active and removed lists from scratch for
// a full answer history; it is the only way the questionnaire recomputes
// state, so revising an earlier answer can never leave stale removals behind.
//
//	active, removed := filter.Replay(catalog.Criteria(), catalog.Questions(), answers, index)
package filter
