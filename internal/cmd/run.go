package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/wcagcheck/internal/checklist"
	"github.com/harrison/wcagcheck/internal/display"
	"github.com/harrison/wcagcheck/internal/export"
	"github.com/harrison/wcagcheck/internal/models"
	"github.com/harrison/wcagcheck/internal/questionnaire"
	"github.com/harrison/wcagcheck/internal/store"
)

type runOptions struct {
	answers []string
	skip    bool
}

// errQuit ends an interactive run at the user's request
var errQuit = errors.New("quit")

// NewRunCommand creates the interactive 'wcagcheck run' command
func NewRunCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scope criteria with the questionnaire, then record test results",
		Long: `Run an interactive accessibility test.

The questionnaire comes first. Answer each question by option value or
number. Every answer removes the criteria that do not apply to the site.
  b   back to the previous question (answers after it stop applying)
  s   skip the remaining questions, keeping all their criteria
  q   quit without saving

The checklist follows with one entry per remaining criterion. Type 'help'
there for the available commands.

Examples:
  wcagcheck run
  wcagcheck run --answer q1=no --answer q2=no
  wcagcheck run --skip --lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, global, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.answers, "answer", nil, "Pre-answer a question as question=value (repeatable)")
	cmd.Flags().BoolVar(&opts.skip, "skip", false, "Skip unanswered questions and go straight to the checklist")
	return cmd
}

// interactive holds the state shared by the questionnaire and checklist
// phases of a run
type interactive struct {
	ctx     context.Context
	env     *environment
	session *questionnaire.Session
	list    *checklist.Checklist
	store   *store.Store

	in      *bufio.Scanner
	out     io.Writer
	colored bool
	lang    string
	now     func() time.Time
}

func runInteractive(cmd *cobra.Command, global *globalOptions, opts *runOptions) error {
	presets, err := parseAnswers(opts.answers)
	if err != nil {
		return err
	}

	env, err := newEnvironment(cmd, global)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := checkAnswers(env.catalog, presets); err != nil {
		return err
	}
	session, err := env.newSession()
	if err != nil {
		return err
	}

	r := &interactive{
		ctx:     cmd.Context(),
		env:     env,
		session: session,
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
		colored: display.ColorEnabled(cmd.OutOrStdout()),
		lang:    env.cfg.Language,
		now:     time.Now,
	}

	err = r.questionnaire(presets, opts.skip)
	if errors.Is(err, errQuit) {
		fmt.Fprintln(r.out, "Aborted.")
		return nil
	}
	if err != nil {
		return err
	}

	active := session.ActiveCriteria()
	fmt.Fprintf(r.out, "\n%d of %d criteria apply, %d removed.\n", len(active), env.catalog.Len(), len(session.RemovedCriteria()))
	r.list = checklist.New(active)
	return r.checklistLoop()
}

// readLine returns the next trimmed input line, or io.EOF
func (r *interactive) readLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.in.Scan() {
		fmt.Fprintln(r.out)
		if err := r.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.in.Text()), nil
}

// questionnaire asks questions until the last one is answered or the rest
// are skipped. A preset answer is applied the first time its question comes
// up, so going back still lets the user change it.
func (r *interactive) questionnaire(presets map[string]string, skip bool) error {
	s := r.session
	for !s.Finished() {
		q := s.CurrentQuestion()

		if value, ok := presets[q.ID]; ok {
			delete(presets, q.ID)
			if err := answerCurrent(s, value, r.env.log); err != nil {
				return err
			}
			fmt.Fprintf(r.out, "%s: %s (preset)\n", q.ID, value)
			s.Next()
			continue
		}

		if skip {
			s.SkipRemaining()
			r.env.log.LogInfo(fmt.Sprintf("Skipped remaining questions from %s", q.ID))
			break
		}

		r.printQuestion(q)
		line, err := r.readLine("> ")
		if errors.Is(err, io.EOF) {
			return errQuit
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			return errQuit
		case "b", "back":
			if !s.Previous() {
				fmt.Fprintln(r.out, "Already at the first question.")
			}
			continue
		case "s", "skip":
			s.SkipRemaining()
			r.env.log.LogInfo(fmt.Sprintf("Skipped remaining questions from %s", q.ID))
			continue
		}

		value := r.optionValue(q, line)
		if err := answerCurrent(s, value, r.env.log); err != nil {
			if errors.Is(err, questionnaire.ErrInvalidAnswer) {
				fmt.Fprintf(r.out, "%v\n", err)
				continue
			}
			return err
		}
		s.Next()
	}
	return nil
}

func (r *interactive) printQuestion(q models.Question) {
	cat := r.session.Catalog()
	fmt.Fprintln(r.out)
	display.QuestionHeader(r.out, r.session.CurrentIndex(), r.session.QuestionCount(), r.colored)
	fmt.Fprintln(r.out, cat.Text(q.Text, r.lang))
	for i, opt := range q.Options {
		marker := " "
		if v, ok := r.session.AnswerFor(q.ID); ok && v == opt.Value {
			marker = "*"
		}
		fmt.Fprintf(r.out, " %s%d) %s [%s]\n", marker, i+1, cat.Text(opt.Label, r.lang), opt.Value)
	}
	fmt.Fprintf(r.out, "%d criteria active. b = back, s = skip, q = quit\n", len(r.session.ActiveCriteria()))
}

// optionValue maps a 1-based option number to its value; anything else is
// taken as a value
func (r *interactive) optionValue(q models.Question, input string) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1].Value
	}
	return strings.ToLower(input)
}

const checklistHelp = `Commands:
  list [status]          show items (all, pass, fail, na, pending)
  pass|fail|na|pending <id>
                         record a result
  note <id> <text>       set notes
  shot <id> <path>       attach a screenshot reference
  remove <id>            remove a criterion from the test
  restore <id>           bring back a removed criterion
  removed                show removed criteria and why
  save <name>            save the run
  export <format> <name> write a report (json, csv, markdown, html)
  done                   finish`

func (r *interactive) checklistLoop() error {
	fmt.Fprintln(r.out, "Type 'help' for commands.")
	for {
		line, err := r.readLine(fmt.Sprintf("[%d%%] > ", r.list.Progress()))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		command, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)
		if command == "done" || command == "quit" || command == "q" {
			return nil
		}
		if err := r.checklistCommand(strings.ToLower(command), rest); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}

func (r *interactive) checklistCommand(command, args string) error {
	switch command {
	case "":
		return nil
	case "help", "?":
		fmt.Fprintln(r.out, checklistHelp)
		return nil
	case "list", "ls":
		items, err := r.list.Filter(args)
		if err != nil {
			return err
		}
		for _, item := range items {
			writeResult(r.out, item, r.lang, r.colored)
		}
		sum := r.list.Summary()
		fmt.Fprintf(r.out, "%d shown. %d/%d done, %d passed, %d failed\n",
			len(items), sum.Completed(), sum.Total, sum.Passed, sum.Failed)
		return nil
	case "pass", "fail", "na", "n/a", "pending":
		status, err := models.ParseStatus(command)
		if err != nil {
			return err
		}
		if args == "" {
			return fmt.Errorf("usage: %s <id>", command)
		}
		return r.list.SetStatus(args, status)
	case "note":
		id, text, _ := strings.Cut(args, " ")
		if id == "" {
			return errors.New("usage: note <id> <text>")
		}
		return r.list.SetNotes(id, strings.TrimSpace(text))
	case "shot":
		id, path, _ := strings.Cut(args, " ")
		if id == "" || strings.TrimSpace(path) == "" {
			return errors.New("usage: shot <id> <path>")
		}
		return r.list.AttachScreenshot(id, strings.TrimSpace(path))
	case "remove":
		return r.remove(args)
	case "restore":
		return r.restore(args)
	case "removed":
		r.printRemoved()
		return nil
	case "save":
		return r.save(args)
	case "export":
		format, name, _ := strings.Cut(args, " ")
		return r.export(format, strings.TrimSpace(name))
	default:
		return fmt.Errorf("unknown command %q, type 'help'", command)
	}
}

// remove drops a criterion from both the session and the checklist so they
// stay in step
func (r *interactive) remove(id string) error {
	if !r.session.RemoveManually(id) {
		return fmt.Errorf("%s is not an active criterion", id)
	}
	r.list.Remove(id)
	r.env.log.LogOverride(id, false)
	fmt.Fprintf(r.out, "Removed %s\n", id)
	return nil
}

func (r *interactive) restore(id string) error {
	if !r.session.Restore(id) {
		return fmt.Errorf("%s is not a removed criterion", id)
	}
	cat := r.session.Catalog()
	c, _ := cat.Criterion(id)
	r.list.Add(c, cat.Index)
	r.env.log.LogOverride(id, true)
	fmt.Fprintf(r.out, "Restored %s\n", id)
	return nil
}

func (r *interactive) printRemoved() {
	removed := r.session.RemovedCriteria()
	if len(removed) == 0 {
		fmt.Fprintln(r.out, "No criteria removed.")
		return
	}
	cat := r.session.Catalog()
	for _, rc := range removed {
		by := rc.RemovedBy
		if rc.IsManual() {
			by = "you"
		}
		fmt.Fprintf(r.out, "  %-7s %s (removed by %s)\n", rc.Criterion.ID, cat.Title(rc.Criterion, r.lang), by)
	}
}

func (r *interactive) save(name string) error {
	if r.store == nil {
		s, err := r.env.openStore()
		if err != nil {
			return err
		}
		r.store = s
	}

	run, err := r.store.SaveRun(r.ctx, name, r.list.Items())
	if err != nil {
		return err
	}
	r.env.log.LogRunSaved(run)
	fmt.Fprintf(r.out, "Saved %q as %s\n", run.Name, run.ID)
	return nil
}

func (r *interactive) export(formatName, name string) error {
	if name == "" {
		return errors.New("usage: export <format> <name>")
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	items := r.list.Items()
	run := &models.TestRun{
		Name:    name,
		Date:    r.now(),
		Results: items,
		Summary: models.Summarize(items),
	}
	path, err := export.WriteFile(r.env.cfg.ExportDir, run, format, r.lang)
	if err != nil {
		return err
	}
	r.env.log.LogInfo(fmt.Sprintf("Exported %q to %s", name, path))
	fmt.Fprintf(r.out, "Wrote %s\n", path)
	return nil
}
