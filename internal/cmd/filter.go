package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/wcagcheck/internal/display"
	"github.com/harrison/wcagcheck/internal/models"
	"github.com/harrison/wcagcheck/internal/questionnaire"
)

type filterOptions struct {
	answers []string
	json    bool
}

// NewFilterCommand creates the 'wcagcheck filter' command
func NewFilterCommand(global *globalOptions) *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Show which criteria apply for a set of answers",
		Long: `Answer the scoping questionnaire non-interactively and print the criteria
that remain to be tested, followed by the removed ones and the question
that removed each of them.

Examples:
  wcagcheck filter --answer q1=no --answer q2=no
  wcagcheck filter --answer q5=no --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, global, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.answers, "answer", nil, "Answer a question as question=value (repeatable)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print JSON instead of text")
	return cmd
}

func runFilter(cmd *cobra.Command, global *globalOptions, opts *filterOptions) error {
	answers, err := parseAnswers(opts.answers)
	if err != nil {
		return err
	}

	env, err := newEnvironment(cmd, global)
	if err != nil {
		return err
	}
	defer env.Close()

	session, err := env.newSession()
	if err != nil {
		return err
	}
	if err := applyAnswers(session, answers, env.log); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeFilterJSON(out, session, env.cfg.Language)
	}
	writeFilterText(out, session, env.cfg.Language)
	return nil
}

type filterCriterion struct {
	ID        string       `json:"id"`
	Level     models.Level `json:"level"`
	Title     string       `json:"title"`
	RemovedBy string       `json:"removedBy,omitempty"`
}

type filterResult struct {
	Answers map[string]string `json:"answers"`
	Active  []filterCriterion `json:"active"`
	Removed []filterCriterion `json:"removed"`
}

func writeFilterJSON(w io.Writer, s *questionnaire.Session, lang string) error {
	cat := s.Catalog()
	result := filterResult{
		Answers: s.Answers(),
		Active:  []filterCriterion{},
		Removed: []filterCriterion{},
	}
	for _, c := range s.ActiveCriteria() {
		result.Active = append(result.Active, filterCriterion{ID: c.ID, Level: c.Level, Title: cat.Title(c, lang)})
	}
	for _, r := range s.RemovedCriteria() {
		result.Removed = append(result.Removed, filterCriterion{
			ID: r.Criterion.ID, Level: r.Criterion.Level, Title: cat.Title(r.Criterion, lang), RemovedBy: r.RemovedBy,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func writeFilterText(w io.Writer, s *questionnaire.Session, lang string) {
	cat := s.Catalog()
	colored := display.ColorEnabled(w)

	active := s.ActiveCriteria()
	fmt.Fprintf(w, "Criteria to test (%d of %d):\n", len(active), cat.Len())
	for _, c := range active {
		fmt.Fprintf(w, "  %-7s %-5s %s\n", c.ID, display.LevelBadge(c.Level, colored), cat.Title(c, lang))
	}

	removed := s.RemovedCriteria()
	if len(removed) == 0 {
		return
	}
	fmt.Fprintf(w, "\nRemoved (%d):\n", len(removed))
	for _, r := range removed {
		fmt.Fprintf(w, "  %-7s %-5s %s (by %s)\n", r.Criterion.ID, display.LevelBadge(r.Criterion.Level, colored),
			cat.Title(r.Criterion, lang), r.RemovedBy)
	}
}
