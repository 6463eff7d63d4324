// Package questionnaire drives the scoping questionnaire.
//
// A Session owns the filtering state of one questionnaire run: the current
// question, the answer history, the skip flag, and the active and removed
// criteria. Every change to the answer history or a step backwards replays
// the whole history through the filter engine; state is never patched
// incrementally. Manual removals and restores act on the current lists only
// and are discarded by the next replay.
//
// A Session is not safe for concurrent use. Hosts serving several users keep
// one Session per user and serialize calls into it.
package questionnaire

import (
	"errors"
	"fmt"

	"github.com/harrison/wcagcheck/internal/catalog"
	"github.com/harrison/wcagcheck/internal/filter"
	"github.com/harrison/wcagcheck/internal/models"
)

// ErrInvalidAnswer is returned when an answer is not a declared option of
// the current question
var ErrInvalidAnswer = errors.New("answer is not an option of the current question")

// ErrEmptyQuestionnaire is returned when a session is created for a catalog
// without questions
var ErrEmptyQuestionnaire = errors.New("catalog has no questions")

// Logger receives diagnostic messages from a session
type Logger interface {
	LogDebug(message string)
	LogRecalculated(throughQuestion string, active, removed int)
}

// Session is the questionnaire state machine
type Session struct {
	catalog   *catalog.Catalog
	questions []models.Question
	logger    Logger

	currentIndex int
	answers      map[string]string
	skipped      bool
	active       []models.Criterion
	removed      []models.RemovedCriterion
}

// NewSession starts a questionnaire at the first question with every
// criterion active
func NewSession(cat *catalog.Catalog) (*Session, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, errors.New("catalog has no criteria")
	}
	if cat.QuestionCount() == 0 {
		return nil, ErrEmptyQuestionnaire
	}

	s := &Session{
		catalog:   cat,
		questions: cat.Questions(),
	}
	s.Reset()
	return s, nil
}

// SetLogger attaches a logger. A nil logger disables logging.
func (s *Session) SetLogger(l Logger) {
	s.logger = l
}

// Catalog returns the catalog the session filters
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// CurrentQuestion returns the question at the current index
func (s *Session) CurrentQuestion() models.Question {
	return s.questions[s.currentIndex]
}

// CurrentIndex returns the 0-based index of the current question
func (s *Session) CurrentIndex() int {
	return s.currentIndex
}

// QuestionCount returns the number of questions
func (s *Session) QuestionCount() int {
	return len(s.questions)
}

// Answer records value for the current question and replays the answer
// history. Answering again with the same value yields the same state.
func (s *Session) Answer(value string) error {
	q := s.CurrentQuestion()
	if !q.HasOption(value) {
		return fmt.Errorf("question %s: %q: %w", q.ID, value, ErrInvalidAnswer)
	}

	s.answers[q.ID] = value
	s.debugf("answered %s = %s", q.ID, value)
	s.Recalculate()
	return nil
}

// AnswerFor returns the recorded answer for a question id
func (s *Session) AnswerFor(questionID string) (string, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// Answers returns a copy of the answer history
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Next advances to the following question. Returns false on the last
// question. It does not require the current question to be answered.
func (s *Session) Next() bool {
	if s.currentIndex >= len(s.questions)-1 {
		return false
	}
	s.currentIndex++
	return true
}

// Previous steps back one question and replays the history up to it, so
// answers to later questions stop affecting the criteria. Returns false on
// the first question.
func (s *Session) Previous() bool {
	if s.currentIndex <= 0 {
		return false
	}
	s.currentIndex--
	s.Recalculate()
	return true
}

// Recalculate rebuilds the active and removed criteria from the full catalog
// using the answers of questions 0 through the current index. Manual
// overrides do not survive it.
func (s *Session) Recalculate() {
	s.active, s.removed = filter.Replay(s.catalog.Criteria(), s.questions, s.answers, s.currentIndex)
	if s.logger != nil {
		s.logger.LogRecalculated(s.questions[s.currentIndex].ID, len(s.active), len(s.removed))
	}
}

// SkipRemaining marks the questionnaire as skipped and answers every
// unanswered question from the current one onwards with its keep-everything
// option. The criteria lists are left as they are; a later Recalculate
// produces the same lists because the synthesized answers remove nothing.
func (s *Session) SkipRemaining() {
	s.skipped = true
	all := s.catalog.Criteria()
	for i := s.currentIndex; i < len(s.questions); i++ {
		q := s.questions[i]
		if _, answered := s.answers[q.ID]; answered {
			continue
		}
		keep, err := q.KeepValueFor(all)
		if err != nil {
			// Validated catalogs always have a keep option.
			continue
		}
		s.answers[q.ID] = keep
	}
	s.debugf("skipped remaining questions from %s", s.questions[s.currentIndex].ID)
}

// Skipped returns true once SkipRemaining has been called
func (s *Session) Skipped() bool {
	return s.skipped
}

// Reset returns the session to the first question with no answers and every
// criterion active
func (s *Session) Reset() {
	s.currentIndex = 0
	s.answers = make(map[string]string)
	s.skipped = false
	s.active = s.catalog.Criteria()
	s.removed = nil
}

// ProgressPercent returns (index+1)/questions*100
func (s *Session) ProgressPercent() float64 {
	return float64(s.currentIndex+1) / float64(len(s.questions)) * 100
}

// IsLastQuestion returns true on the final question
func (s *Session) IsLastQuestion() bool {
	return s.currentIndex == len(s.questions)-1
}

// Finished returns true when the questionnaire was skipped or the last
// question has an answer
func (s *Session) Finished() bool {
	if s.skipped {
		return true
	}
	_, answered := s.answers[s.CurrentQuestion().ID]
	return s.IsLastQuestion() && answered
}

// ActiveCriteria returns a copy of the active criteria in catalog order
func (s *Session) ActiveCriteria() []models.Criterion {
	return append([]models.Criterion(nil), s.active...)
}

// RemovedCriteria returns a copy of the removed criteria in removal order
func (s *Session) RemovedCriteria() []models.RemovedCriterion {
	return append([]models.RemovedCriterion(nil), s.removed...)
}

// RemovedBy returns why a criterion was removed: a question id or
// models.ManualRemoval
func (s *Session) RemovedBy(criterionID string) (string, bool) {
	for _, r := range s.removed {
		if r.Criterion.ID == criterionID {
			return r.RemovedBy, true
		}
	}
	return "", false
}

func (s *Session) debugf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.LogDebug(fmt.Sprintf(format, args...))
	}
}
