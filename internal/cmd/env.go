package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/wcagcheck/internal/catalog"
	"github.com/harrison/wcagcheck/internal/config"
	"github.com/harrison/wcagcheck/internal/logger"
	"github.com/harrison/wcagcheck/internal/questionnaire"
	"github.com/harrison/wcagcheck/internal/store"
)

// globalOptions holds the persistent root flags
type globalOptions struct {
	configPath  string
	language    string
	catalogPath string
	logLevel    string
}

// environment is what every command needs: merged configuration, the
// catalog and a logger
type environment struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	log     logger.Logger
	closers []func() error
}

// loadConfig reads the config file and applies the flags the user set
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	changed := func(name string, v *string) *string {
		if cmd.Flags().Changed(name) {
			return v
		}
		return nil
	}
	cfg.MergeWithFlags(
		changed("lang", &opts.language),
		changed("log-level", &opts.logLevel),
		nil,
		changed("catalog", &opts.catalogPath),
	)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newEnvironment loads config, catalog and loggers. Console logs go to
// stderr so they never mix with command output.
func newEnvironment(cmd *cobra.Command, opts *globalOptions) (*environment, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg}
	env.log, err = env.openLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	env.catalog, err = catalog.LoadOrDefault(cfg.CatalogPath)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	env.log.LogDebug(fmt.Sprintf("catalog loaded: %d criteria, %d questions", env.catalog.Len(), env.catalog.QuestionCount()))
	return env, nil
}

func (e *environment) openLogger(stderr io.Writer) (logger.Logger, error) {
	console := logger.NewConsoleLogger(stderr, e.cfg.LogLevel)
	if e.cfg.LogDir == "" {
		return console, nil
	}

	fl, err := logger.NewFileLogger(e.cfg.LogDir, e.cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	e.closers = append(e.closers, fl.Close)
	return logger.NewMultiLogger(console, fl), nil
}

// openStore opens the run database, closed with the environment
func (e *environment) openStore() (*store.Store, error) {
	s, err := store.NewStore(e.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open run database: %w", err)
	}
	e.closers = append(e.closers, s.Close)
	return s, nil
}

// newSession starts a questionnaire session that logs through the
// environment logger
func (e *environment) newSession() (*questionnaire.Session, error) {
	s, err := questionnaire.NewSession(e.catalog)
	if err != nil {
		return nil, err
	}
	s.SetLogger(e.log)
	return s, nil
}

// Close releases loggers and stores in reverse order of opening
func (e *environment) Close() error {
	var firstErr error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.closers = nil
	return firstErr
}

// parseAnswers turns repeated "q=value" flags into a map
func parseAnswers(pairs []string) (map[string]string, error) {
	answers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		id, value = strings.TrimSpace(id), strings.TrimSpace(value)
		if !ok || id == "" || value == "" {
			return nil, fmt.Errorf("invalid answer %q, expected question=value", pair)
		}
		answers[id] = value
	}
	return answers, nil
}

// checkAnswers rejects answers for questions the catalog does not have
func checkAnswers(cat *catalog.Catalog, answers map[string]string) error {
	for id := range answers {
		if _, ok := cat.Question(id); !ok {
			return fmt.Errorf("unknown question %q", id)
		}
	}
	return nil
}

// answerCurrent answers the current question and logs the result
func answerCurrent(s *questionnaire.Session, value string, log logger.Logger) error {
	q := s.CurrentQuestion()
	if err := s.Answer(value); err != nil {
		return fmt.Errorf("%w (options: %s)", err, strings.Join(q.OptionValues(), ", "))
	}
	log.LogAnswer(q.ID, value, len(s.ActiveCriteria()), len(s.RemovedCriteria()))
	return nil
}

// applyAnswers walks the whole questionnaire answering every question that
// has an entry in answers, leaving the session on the last question
func applyAnswers(s *questionnaire.Session, answers map[string]string, log logger.Logger) error {
	if err := checkAnswers(s.Catalog(), answers); err != nil {
		return err
	}
	for {
		if value, ok := answers[s.CurrentQuestion().ID]; ok {
			if err := answerCurrent(s, value, log); err != nil {
				return err
			}
		}
		if !s.Next() {
			break
		}
	}
	s.Recalculate()
	return nil
}
