package cmd

import (
	"github.com/spf13/cobra"
)

// Version is reported by --version
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for wcagcheck
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "wcagcheck",
		Short: "Scope and track WCAG 2.2 accessibility tests",
		Long: `wcagcheck narrows the WCAG 2.2 A and AA success criteria down to the ones
that apply to a website by asking a short questionnaire, then tracks the
test result of every remaining criterion.

Saved runs are kept in a local SQLite database and can be exported as
JSON, CSV, Markdown or HTML reports.

Configuration is loaded from .wcagcheck/config.yaml in $WCAGCHECK_HOME or
the current directory. CLI flags override configuration file settings.`,
		Version: Version,
		// main prints the error once; usage would only bury it
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config file (default .wcagcheck/config.yaml)")
	flags.StringVar(&opts.language, "lang", "", "Catalog language (en, de)")
	flags.StringVar(&opts.catalogPath, "catalog", "", "Catalog YAML file replacing the embedded WCAG 2.2 catalog")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewFilterCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}
