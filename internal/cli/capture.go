package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/config"
	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/session"
	"github.com/aidanlsb/ironlog/internal/ui"
)

// Conflict policies for non-interactive captures.
const (
	conflictAppend    = "append"
	conflictOverwrite = "overwrite"
	conflictCancel    = "cancel"
)

type captureOptions struct {
	src        contentSource
	sessionID  string
	user       string
	resume     bool
	list       bool
	yes        bool
	areas      []string
	date       string
	onConflict string
}

type captureResult struct {
	Session string   `json:"session"`
	State   string   `json:"state"`
	Outcome string   `json:"outcome,omitempty"`
	Date    string   `json:"date"`
	Areas   []string `json:"areas"`
}

func newCaptureCommand(a *app) *cobra.Command {
	opts := &captureOptions{}

	cmd := &cobra.Command{
		Use:   "capture [line...]",
		Short: "Capture a workout, tagging body-part areas",
		Long: `Walks through a capture: pick the body-part areas, confirm or correct the
date, and decide between append and overwrite when the date already has an
entry. The proposed date is the earliest date mentioned in the text, else
today. Each argument is one line of text; without text you are prompted.

Non-interactive use (scripts, --json) takes the answers as flags:
  ironlog capture --yes --areas 가슴,삼두 --on-conflict append "2/6 bench 60kg"

With session_store = "sqlite" an interrupted capture survives the process:
  ironlog capture --list
  ironlog capture --resume --session default`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCapture(cmd, opts, args)
		},
	}

	opts.src.register(cmd)
	cmd.Flags().StringVar(&opts.sessionID, "session", "default", "Session id")
	cmd.Flags().StringVar(&opts.user, "user", "", "User id checked against allowed_user (defaults to $USER)")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "Continue the stored session instead of starting one")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List unfinished sessions")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Answer from flags instead of prompting")
	cmd.Flags().StringSliceVar(&opts.areas, "areas", nil, "Areas to select, by label or id")
	cmd.Flags().StringVar(&opts.date, "date", "", "Date to save under instead of the proposed one")
	cmd.Flags().StringVar(&opts.onConflict, "on-conflict", conflictCancel, "When the date has an entry: append, overwrite or cancel")
	return cmd
}

func (a *app) runCapture(cmd *cobra.Command, opts *captureOptions, args []string) error {
	switch opts.onConflict {
	case conflictAppend, conflictOverwrite, conflictCancel:
	default:
		return a.fail(cmd, ErrInvalidInput, fmt.Errorf("unknown --on-conflict %q", opts.onConflict), "Use append, overwrite or cancel")
	}

	sessions, closeSessions, err := a.openSessions()
	if err != nil {
		return a.fail(cmd, ErrDatabaseError, err, "")
	}
	defer func() {
		if err := closeSessions(); err != nil {
			a.logger.Error("failed to close session store", "error", err)
		}
	}()

	if opts.list {
		return a.listSessions(cmd, sessions)
	}

	st, err := a.openStore()
	if err != nil {
		return a.fail(cmd, ErrFileWriteError, err, "")
	}
	machine := session.NewMachine(st, sessions,
		session.WithClock(a.now),
		session.WithCatalog(session.NewCatalog(a.areaLabels())),
		session.WithAllowedUser(a.cfg.AllowedUser),
		session.WithLogger(a.logger),
	)

	scripted := opts.yes || a.opts.JSON
	if !scripted && !a.canPrompt(cmd) {
		return a.fail(cmd, ErrInvalidInput, errors.New("stdin is not a terminal"), "Pass --yes with --areas, --date and --on-conflict")
	}
	if !scripted && opts.src.stdin {
		return a.fail(cmd, ErrInvalidInput, errors.New("--stdin needs --yes because prompts also read stdin"), "")
	}

	var p *prompter
	if !scripted {
		p = newPrompter(cmd)
	}

	var s session.Session
	if opts.resume {
		if s, err = machine.Get(opts.sessionID); err != nil {
			return a.failErr(cmd, err, "Run 'ironlog capture --list' to see unfinished sessions")
		}
	} else {
		text, err := opts.src.read(cmd, args, "\n")
		if err != nil {
			return a.fail(cmd, ErrInvalidInput, err, "")
		}
		if strings.TrimSpace(text) == "" && !scripted {
			text, err = p.readBlock("Workout text (finish with an empty line):")
			if err != nil && !errors.Is(err, io.EOF) {
				return a.fail(cmd, ErrInvalidInput, err, "")
			}
		}
		if strings.TrimSpace(text) == "" {
			return a.fail(cmd, ErrMissingArgument, errors.New("no workout text"), "Pass lines as arguments, or use --stdin or --file")
		}
		if s, err = machine.Start(opts.sessionID, a.captureUser(opts), text); err != nil {
			return a.failErr(cmd, err, "")
		}
	}

	if scripted {
		s, err = a.captureScripted(machine, s, opts)
	} else {
		s, err = a.captureInteractive(cmd, p, machine, s)
	}
	if err != nil {
		return a.failErr(cmd, err, "")
	}
	return a.reportCapture(cmd, machine, s)
}

// openSessions returns the configured session store and its closer.
func (a *app) openSessions() (session.Store, func() error, error) {
	if a.cfg.SessionBackend() != config.SessionStoreSQLite {
		return session.NewMemoryStore(), func() error { return nil }, nil
	}
	path, err := a.cfg.SessionDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := session.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("session database opened", "path", path)
	return db, db.Close, nil
}

func (a *app) listSessions(cmd *cobra.Command, sessions session.Store) error {
	db, ok := sessions.(*session.SQLiteStore)
	if !ok {
		return a.fail(cmd, ErrInvalidInput, errors.New("sessions are only kept with session_store = \"sqlite\""), "")
	}
	ids, err := db.Pending()
	if err != nil {
		return a.fail(cmd, ErrDatabaseError, err, "")
	}

	pending := make([]captureResult, 0, len(ids))
	for _, id := range ids {
		s, err := db.Get(id)
		if err != nil {
			return a.failErr(cmd, err, "")
		}
		pending = append(pending, captureResult{Session: s.ID, State: string(s.State), Date: s.Date, Areas: s.Areas})
	}

	if a.opts.JSON {
		outputSuccess(cmd.OutOrStdout(), map[string]interface{}{"sessions": pending}, &Meta{Count: len(pending)})
		return nil
	}
	if len(pending) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Info("No unfinished sessions"))
		return nil
	}
	tbl := ui.NewTable(3)
	for _, p := range pending {
		tbl.AddRow(ui.Accent.Render(p.Session), ui.Date(p.Date), ui.Hint(p.State))
	}
	fmt.Fprint(cmd.OutOrStdout(), tbl.String())
	return nil
}

func (a *app) areaLabels() []string {
	if labels := a.cfg.AreaLabels(); len(labels) > 0 {
		return labels
	}
	return session.DefaultAreas
}

func (a *app) captureUser(opts *captureOptions) string {
	if opts.user != "" {
		return opts.user
	}
	return os.Getenv("USER")
}

// captureScripted drives the session to a terminal state from flags.
func (a *app) captureScripted(m *session.Machine, s session.Session, opts *captureOptions) (session.Session, error) {
	areasApplied := false
	dateApplied := opts.date == ""
	var err error

	for !s.State.Terminal() {
		var ev session.Event
		switch s.State {
		case session.StateSelectingAreas:
			if !areasApplied {
				areasApplied = true
				for _, ref := range opts.areas {
					area, ok := lookupArea(m.Catalog(), ref)
					if !ok {
						return s, fmt.Errorf("%w: unknown area %q", session.ErrInvalidEvent, ref)
					}
					if s.HasArea(area.ID) {
						continue
					}
					if s, err = m.Handle(s.ID, session.ToggleArea(area.ID)); err != nil {
						return s, err
					}
				}
			}
			ev = session.FinishAreas()
		case session.StateConfirmingDate:
			if dateApplied {
				ev = session.ConfirmSave()
			} else {
				ev = session.EditDate()
			}
		case session.StateEditingDate:
			if opts.date == "" {
				return s, fmt.Errorf("%w: the session is waiting for a date, pass --date", session.ErrInvalidEvent)
			}
			dateApplied = true
			ev = session.SubmitDate(opts.date)
		case session.StateResolvingConflict:
			switch opts.onConflict {
			case conflictAppend:
				ev = session.ChooseAppend()
			case conflictOverwrite:
				ev = session.ChooseOverwrite()
			default:
				ev = session.Cancel()
			}
		}
		if s, err = m.Handle(s.ID, ev); err != nil {
			return s, err
		}
	}
	return s, nil
}

// lookupArea finds an area by id or label.
func lookupArea(c *session.Catalog, ref string) (session.Area, bool) {
	ref = strings.TrimSpace(ref)
	if area, ok := c.Lookup(ref); ok {
		return area, true
	}
	for _, area := range c.Areas() {
		if strings.EqualFold(area.Label, ref) {
			return area, true
		}
	}
	return session.Area{}, false
}

// captureInteractive prompts for each step until the session finishes or
// input runs out. Running out cancels a memory session; a SQLite session is
// left for --resume.
func (a *app) captureInteractive(cmd *cobra.Command, p *prompter, m *session.Machine, s session.Session) (session.Session, error) {
	out := cmd.OutOrStdout()

	for !s.State.Terminal() {
		ev, ok, err := promptEvent(p, m, s)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			if a.cfg.SessionBackend() == config.SessionStoreSQLite {
				fmt.Fprintln(out, ui.Hint("Input closed; resume with 'ironlog capture --resume --session "+s.ID+"'"))
				return s, nil
			}
			return m.Handle(s.ID, session.Cancel())
		}
		if err != nil {
			return s, err
		}
		if !ok {
			continue
		}

		next, err := m.Handle(s.ID, ev)
		switch {
		case errors.Is(err, dates.ErrInvalidDate), errors.Is(err, session.ErrInvalidEvent):
			fmt.Fprintln(out, ui.Warning(err.Error()))
			continue
		case err != nil:
			return s, err
		}
		s = next
	}
	return s, nil
}

// promptEvent asks the question for the current state. ok is false when the
// answer was not understood and the question should be asked again.
func promptEvent(p *prompter, m *session.Machine, s session.Session) (session.Event, bool, error) {
	switch s.State {
	case session.StateSelectingAreas:
		return promptAreas(p, m, s)

	case session.StateConfirmingDate:
		weekday, _ := dates.Weekday(s.Date)
		answer, err := p.ask(fmt.Sprintf("Save under %s (%s)?", ui.Date(s.Date), weekday), "[Y]es / [e]dit date / [c]ancel:")
		if err != nil {
			return session.Event{}, false, err
		}
		switch strings.ToLower(answer) {
		case "", "y", "yes":
			return session.ConfirmSave(), true, nil
		case "e", "edit":
			return session.EditDate(), true, nil
		case "c", "cancel":
			return session.Cancel(), true, nil
		}

	case session.StateEditingDate:
		answer, err := p.ask("Date", "(YYYY-MM-DD, M/D, 오늘, 어제):")
		if err != nil {
			return session.Event{}, false, err
		}
		if strings.EqualFold(answer, "cancel") {
			return session.Cancel(), true, nil
		}
		return session.SubmitDate(answer), true, nil

	case session.StateResolvingConflict:
		answer, err := p.ask(fmt.Sprintf("%s already has an entry.", ui.Date(s.Date)), "[a]ppend / [o]verwrite / [c]ancel:")
		if err != nil {
			return session.Event{}, false, err
		}
		switch strings.ToLower(answer) {
		case "a", "append":
			return session.ChooseAppend(), true, nil
		case "o", "overwrite":
			return session.ChooseOverwrite(), true, nil
		case "c", "cancel":
			return session.Cancel(), true, nil
		}
	}
	return session.Event{}, false, nil
}

// promptAreas lists the catalog with the current selection. An answer of
// several numbers toggles each of them.
func promptAreas(p *prompter, m *session.Machine, s session.Session) (session.Event, bool, error) {
	areas := m.Catalog().Areas()
	fmt.Fprintf(p.out, "\nAreas for %s:\n", ui.Date(s.Date))
	for i, area := range areas {
		fmt.Fprintf(p.out, "  %d %s\n", i+1, ui.Checkbox(s.HasArea(area.ID), area.Label))
	}

	answer, err := p.ask("Toggle by number,", "[d]one / [c]ancel:")
	if err != nil {
		return session.Event{}, false, err
	}
	switch strings.ToLower(answer) {
	case "", "d", "done":
		return session.FinishAreas(), true, nil
	case "c", "cancel":
		return session.Cancel(), true, nil
	}

	var events []session.Event
	for _, field := range strings.Fields(answer) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(areas) {
			fmt.Fprintln(p.out, ui.Warningf("Not an area number: %s", field))
			return session.Event{}, false, nil
		}
		events = append(events, session.ToggleArea(areas[n-1].ID))
	}
	// The caller applies the last toggle.
	for _, ev := range events[:len(events)-1] {
		if _, err := m.Handle(s.ID, ev); err != nil {
			return session.Event{}, false, err
		}
	}
	return events[len(events)-1], true, nil
}

func (a *app) reportCapture(cmd *cobra.Command, m *session.Machine, s session.Session) error {
	result := captureResult{
		Session: s.ID,
		State:   string(s.State),
		Outcome: string(s.Outcome),
		Date:    s.Date,
		Areas:   m.Catalog().Labels(s.Areas),
	}
	if a.opts.JSON {
		outputSuccess(cmd.OutOrStdout(), result, nil)
		return nil
	}

	out := cmd.OutOrStdout()
	switch s.Outcome {
	case session.OutcomeSaved:
		fmt.Fprintln(out, ui.Successf("Added %s", ui.Date(s.Date)))
	case session.OutcomeAppended:
		fmt.Fprintln(out, ui.Successf("Appended to %s", ui.Date(s.Date)))
	case session.OutcomeOverwritten:
		fmt.Fprintln(out, ui.Successf("Overwrote %s", ui.Date(s.Date)))
	case session.OutcomeCancelled:
		fmt.Fprintln(out, ui.Info("Cancelled, nothing saved"))
	}
	return nil
}
