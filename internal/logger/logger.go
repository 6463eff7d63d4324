// Package logger provides leveled logging for wcagcheck sessions.
//
// ConsoleLogger writes to a terminal or any io.Writer, FileLogger keeps a
// per-run log file, and MultiLogger fans out to several loggers. All
// implementations are safe for concurrent use.
package logger

import (
	"fmt"
	"strings"

	"github.com/harrison/wcagcheck/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is implemented by every logger in this package
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)

	LogAnswer(questionID, value string, active, removed int)
	LogRecalculated(throughQuestion string, active, removed int)
	LogOverride(criterionID string, restored bool)
	LogRunSaved(run *models.TestRun)
}

// normalizeLogLevel lowercases level, returning "info" for unknown values
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog reports whether a message at messageLevel passes configured
func shouldLog(configured, messageLevel string) bool {
	return logLevelToInt(strings.ToLower(messageLevel)) >= logLevelToInt(configured)
}

func answerMessage(questionID, value string, active, removed int) string {
	return fmt.Sprintf("Answered %s = %s: %d criteria active, %d removed", questionID, value, active, removed)
}

func recalculatedMessage(throughQuestion string, active, removed int) string {
	return fmt.Sprintf("Recalculated through %s: %d active, %d removed", throughQuestion, active, removed)
}

func overrideMessage(criterionID string, restored bool) string {
	if restored {
		return fmt.Sprintf("Restored %s", criterionID)
	}
	return fmt.Sprintf("Manually removed %s", criterionID)
}

func runSavedMessage(run *models.TestRun) string {
	return fmt.Sprintf("Saved test run %q (%s): %d criteria, %.1f%% compliant",
		run.Name, run.ID, run.Summary.Total, run.Summary.ComplianceRate())
}

// MultiLogger forwards every call to each of its loggers
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers, skipping nil entries
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) LogTrace(message string) { m.each(func(l Logger) { l.LogTrace(message) }) }
func (m *MultiLogger) LogDebug(message string) { m.each(func(l Logger) { l.LogDebug(message) }) }
func (m *MultiLogger) LogInfo(message string) { m.each(func(l Logger) { l.LogInfo(message) }) }
func (m *MultiLogger) LogWarn(message string) { m.each(func(l Logger) { l.LogWarn(message) }) }
func (m *MultiLogger) LogError(message string) { m.each(func(l Logger) { l.LogError(message) }) }

func (m *MultiLogger) LogAnswer(questionID, value string, active, removed int) {
	m.each(func(l Logger) { l.LogAnswer(questionID, value, active, removed) })
}

func (m *MultiLogger) LogRecalculated(throughQuestion string, active, removed int) {
	m.each(func(l Logger) { l.LogRecalculated(throughQuestion, active, removed) })
}

func (m *MultiLogger) LogOverride(criterionID string, restored bool) {
	m.each(func(l Logger) { l.LogOverride(criterionID, restored) })
}

func (m *MultiLogger) LogRunSaved(run *models.TestRun) {
	m.each(func(l Logger) { l.LogRunSaved(run) })
}

// NoOpLogger discards everything
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string) {}
func (n *NoOpLogger) LogDebug(string) {}
func (n *NoOpLogger) LogInfo(string) {}
func (n *NoOpLogger) LogWarn(string) {}
func (n *NoOpLogger) LogError(string) {}
func (n *NoOpLogger) LogAnswer(string, string, int, int) {}
func (n *NoOpLogger) LogRecalculated(string, int, int) {}
func (n *NoOpLogger) LogOverride(string, bool) {}
func (n *NoOpLogger) LogRunSaved(*models.TestRun) {}
