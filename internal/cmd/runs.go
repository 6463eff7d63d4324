package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/wcagcheck/internal/display"
	"github.com/harrison/wcagcheck/internal/export"
	"github.com/harrison/wcagcheck/internal/models"
)

// NewRunsCommand creates the 'wcagcheck runs' command group
func NewRunsCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage saved test runs",
	}

	cmd.AddCommand(newRunsListCommand(global))
	cmd.AddCommand(newRunsShowCommand(global))
	cmd.AddCommand(newRunsDeleteCommand(global))
	cmd.AddCommand(newRunsExportCommand(global))
	return cmd
}

func newRunsListCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved test runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			defer env.Close()

			s, err := env.openStore()
			if err != nil {
				return err
			}
			runs, err := s.ListRuns(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No saved test runs")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  %-30s %3d criteria  %5.1f%% compliant\n",
					r.ID, r.Date.Local().Format("2006-01-02 15:04"), r.Name, r.Summary.Total, r.Summary.ComplianceRate())
			}
			return nil
		},
	}
}

func newRunsShowCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the results of a saved test run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			defer env.Close()

			s, err := env.openStore()
			if err != nil {
				return err
			}
			run, err := s.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			writeRun(cmd.OutOrStdout(), run, env.cfg.Language)
			return nil
		},
	}
}

func writeRun(w io.Writer, run *models.TestRun, lang string) {
	colored := display.ColorEnabled(w)
	s := run.Summary

	fmt.Fprintf(w, "%s (%s)\n", run.Name, run.Date.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Total %d, passed %d, failed %d, n/a %d, pending %d, compliance %.1f%%\n\n",
		s.Total, s.Passed, s.Failed, s.NotApplicable, s.Pending, s.ComplianceRate())
	for _, r := range run.Results {
		writeResult(w, r, lang, colored)
	}
}

func writeResult(w io.Writer, r models.TestResult, lang string, colored bool) {
	fmt.Fprintf(w, "%s %-7s %-5s %s\n", display.StatusBadge(r.Status, colored), r.Criterion.ID,
		display.LevelBadge(r.Criterion.Level, colored), r.Criterion.Title.Get(lang, models.DefaultLanguage))
	if r.Notes != "" {
		fmt.Fprintf(w, "        note: %s\n", r.Notes)
	}
	if r.Screenshot != "" {
		fmt.Fprintf(w, "        screenshot: %s\n", r.Screenshot)
	}
}

func newRunsDeleteCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a saved test run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			defer env.Close()

			s, err := env.openStore()
			if err != nil {
				return err
			}
			if err := s.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}
			env.log.LogInfo(fmt.Sprintf("Deleted test run %s", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newRunsExportCommand(global *globalOptions) *cobra.Command {
	var format, outDir string

	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write a saved test run as a report file",
		Long: `Write a saved test run as a JSON, CSV, Markdown or HTML report.

The file is named wcag-test-<name>-<date>.<ext> and written to --out, or
the configured export directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment(cmd, global)
			if err != nil {
				return err
			}
			defer env.Close()

			if format == "" {
				format = env.cfg.ExportFormat
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = env.cfg.ExportDir
			}

			s, err := env.openStore()
			if err != nil {
				return err
			}
			run, err := s.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			path, err := export.WriteFile(outDir, run, f, env.cfg.Language)
			if err != nil {
				return err
			}
			env.log.LogInfo(fmt.Sprintf("Exported %s to %s", run.ID, path))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Report format: json, csv, markdown, html (default from config)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from config)")
	return cmd
}
