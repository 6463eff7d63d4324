package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrison/wcagcheck/internal/models"
)

// FileLogger writes a timestamped log file per run and keeps a latest.log
// symlink pointing at it
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates logDir if needed, opens run-YYYYMMDD-HHMMSS.log in it
// and repoints latest.log
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	started := time.Now()
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", started.Format("20060102-150405")))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}
	fl.writeRunLog("=== wcagcheck Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", started.Format(time.RFC3339)))
	return fl, nil
}

// Path returns the run log file path
func (fl *FileLogger) Path() string {
	return fl.runFile
}

func (fl *FileLogger) LogTrace(message string) { fl.logWithLevel("TRACE", message) }
func (fl *FileLogger) LogDebug(message string) { fl.logWithLevel("DEBUG", message) }
func (fl *FileLogger) LogInfo(message string) { fl.logWithLevel("INFO", message) }
func (fl *FileLogger) LogWarn(message string) { fl.logWithLevel("WARN", message) }
func (fl *FileLogger) LogError(message string) { fl.logWithLevel("ERROR", message) }

// LogAnswer records an answer. The file keeps it at INFO so a run can be
// reconstructed from the log.
func (fl *FileLogger) LogAnswer(questionID, value string, active, removed int) {
	fl.logWithLevel("INFO", answerMessage(questionID, value, active, removed))
}

func (fl *FileLogger) LogRecalculated(throughQuestion string, active, removed int) {
	fl.logWithLevel("DEBUG", recalculatedMessage(throughQuestion, active, removed))
}

func (fl *FileLogger) LogOverride(criterionID string, restored bool) {
	fl.logWithLevel("INFO", overrideMessage(criterionID, restored))
}

// LogRunSaved records the run summary along with every failed criterion
func (fl *FileLogger) LogRunSaved(run *models.TestRun) {
	fl.logWithLevel("INFO", runSavedMessage(run))
	for _, r := range run.Results {
		if r.Status == models.StatusFail {
			fl.logWithLevel("INFO", fmt.Sprintf("  FAIL %s %s", r.Criterion.ID, r.Notes))
		}
	}
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !shouldLog(fl.logLevel, level) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// Close flushes and closes the run log file
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
