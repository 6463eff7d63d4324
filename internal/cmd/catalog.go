package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/wcagcheck/internal/catalog"
	"github.com/harrison/wcagcheck/internal/display"
	"github.com/harrison/wcagcheck/internal/models"
)

// NewCatalogCommand creates the 'wcagcheck catalog' command group
func NewCatalogCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate the criteria catalog",
	}

	cmd.AddCommand(newCatalogListCommand(global))
	cmd.AddCommand(newCatalogQuestionsCommand(global))
	cmd.AddCommand(newCatalogTagsCommand(global))
	cmd.AddCommand(newCatalogValidateCommand(global))
	return cmd
}

func newCatalogListCommand(global *globalOptions) *cobra.Command {
	var level string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List success criteria",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			defer env.Close()

			criteria := env.catalog.Criteria()
			if level != "" {
				l, err := models.ParseLevel(level)
				if err != nil {
					return err
				}
				criteria = env.catalog.ByLevel(l)
			}

			out := cmd.OutOrStdout()
			colored := display.ColorEnabled(out)
			for _, c := range criteria {
				fmt.Fprintf(out, "%-7s %-5s %s\n", c.ID, display.LevelBadge(c.Level, colored), env.catalog.Title(c, env.cfg.Language))
			}
			fmt.Fprintf(out, "\n%d criteria\n", len(criteria))
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Only list criteria of this level (A, AA)")
	return cmd
}

func newCatalogQuestionsCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List questionnaire questions with their options and impact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			defer env.Close()

			writeQuestions(cmd.OutOrStdout(), env.catalog, env.cfg.Language)
			return nil
		},
	}
}

func writeQuestions(w io.Writer, cat *catalog.Catalog, lang string) {
	impacts := make(map[string]catalog.Impact)
	for _, imp := range cat.Impacts() {
		impacts[imp.QuestionID] = imp
	}

	for i, q := range cat.Questions() {
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, q.ID, cat.Text(q.Text, lang))
		labels := make([]string, len(q.Options))
		for j, opt := range q.Options {
			labels[j] = fmt.Sprintf("%s (%s)", opt.Value, cat.Text(opt.Label, lang))
		}
		fmt.Fprintf(w, "   options: %s\n", strings.Join(labels, ", "))
		if imp := impacts[q.ID]; imp.Computed > 0 {
			fmt.Fprintf(w, "   removes on %s: %s\n", strings.Join(q.Rule.When, "/"), strings.Join(imp.Removed, ", "))
		} else if q.Custom != nil {
			fmt.Fprintln(w, "   custom filter")
		}
	}
}

func newCatalogTagsCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Show how many criteria carry each tag and category",
		Long: `Show how many criteria carry each tag and category, most common first.
Question rules exclude criteria by these names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			defer env.Close()

			out := cmd.OutOrStdout()
			for _, tc := range env.catalog.TagCounts() {
				fmt.Fprintf(out, "%4d  %s\n", tc.Count, tc.Tag)
			}
			return nil
		},
	}
}

func newCatalogValidateCommand(global *globalOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [catalog-file]",
		Short: "Validate a catalog file",
		Long: `Validate a catalog file, or the configured catalog when no file is given.

Reports structural problems (duplicate ids, unknown levels, questions that
reference unknown options or criteria) and warns when a question's declared
impact differs from the number of criteria its rule actually removes.

With --watch the file is re-validated every time it changes until
interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, global)
			if err != nil {
				return err
			}
			path := cfg.CatalogPath
			if len(args) == 1 {
				path = args[0]
			}
			if watch && path == "" {
				return errors.New("--watch needs a catalog file")
			}

			out := cmd.OutOrStdout()
			cat, err := catalog.LoadOrDefault(path)
			reportValidation(out, cmd.ErrOrStderr(), displayName(path), cat, err)
			if !watch {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchCatalog(ctx, out, cmd.ErrOrStderr(), path)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Re-validate whenever the file changes")
	return cmd
}

func watchCatalog(ctx context.Context, out, errOut io.Writer, path string) error {
	w, err := catalog.NewWatcher(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)

	err = w.Run(ctx, func(c *catalog.Catalog, err error) {
		reportValidation(out, errOut, path, c, err)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func displayName(path string) string {
	if path == "" {
		return "embedded catalog"
	}
	return path
}

// reportValidation prints the outcome of loading a catalog and warns about
// impact mismatches
func reportValidation(out, errOut io.Writer, name string, cat *catalog.Catalog, err error) {
	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			display.Warning{
				Title: fmt.Sprintf("%s is invalid", name),
				Items: verr.Problems,
			}.Display(errOut)
			return
		}
		display.Warning{Title: fmt.Sprintf("%s could not be loaded", name), Message: err.Error()}.Display(errOut)
		return
	}

	fmt.Fprintln(out, display.Success(
		fmt.Sprintf("%s is valid: %d criteria, %d questions", name, cat.Len(), cat.QuestionCount()),
		display.ColorEnabled(out)))

	for _, imp := range cat.Impacts() {
		if !imp.Mismatch() {
			continue
		}
		display.Warning{
			Title:      fmt.Sprintf("impact mismatch for %s", imp.QuestionID),
			Message:    fmt.Sprintf("declares %d criteria but its rule removes %d", imp.Declared, imp.Computed),
			Items:      imp.Removed,
			Suggestion: "update the question's impact",
		}.Display(errOut)
	}
}
