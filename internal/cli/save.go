package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/store"
	"github.com/aidanlsb/ironlog/internal/ui"
)

// Write actions reported to the user.
const (
	actionInserted    = "inserted"
	actionAppended    = "appended"
	actionOverwritten = "overwritten"
)

type writeResult struct {
	Date   string   `json:"date"`
	Action string   `json:"action"`
	Files  []string `json:"files"`
}

func newSaveCommand(a *app) *cobra.Command {
	var src contentSource
	cmd := &cobra.Command{
		Use:   "save <date> [text...]",
		Short: "Add an entry for a date",
		Long: `Adds text under a date in the master, monthly and recent documents.

If the date already has a section the text is appended to it, otherwise a new
section is inserted in date order. Remaining arguments are joined with spaces;
use --stdin or --file for multi-line entries.

Dates accept YYYY-MM-DD, M/D (current year), today, yesterday, 오늘 and 어제.

Examples:
  ironlog save 2026-02-10 "squat 5x5 100kg"
  ironlog save today --file notes.md
  pbpaste | ironlog save 2/10 --stdin`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWrite(cmd, store.OpSave, &src, args)
		},
	}
	src.register(cmd)
	return cmd
}

func newOverwriteCommand(a *app) *cobra.Command {
	var src contentSource
	cmd := &cobra.Command{
		Use:   "overwrite <date> [text...]",
		Short: "Replace the entry for a date",
		Long: `Replaces the whole section for a date in the master and monthly documents
and refreshes the recent digest. A date without a section is inserted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWrite(cmd, store.OpOverwrite, &src, args)
		},
	}
	src.register(cmd)
	return cmd
}

func (a *app) runWrite(cmd *cobra.Command, op store.Op, src *contentSource, args []string) error {
	date, err := dates.NormalizeDateArg(args[0], a.now())
	if err != nil {
		return a.fail(cmd, ErrInvalidDate, err, "Use YYYY-MM-DD, M/D, today or yesterday")
	}

	content, err := src.read(cmd, args[1:], " ")
	if err != nil {
		return a.fail(cmd, ErrInvalidInput, err, "")
	}
	if content == "" {
		return a.fail(cmd, ErrMissingArgument, errors.New("no text to save"), "Pass the text as arguments, or use --stdin or --file")
	}

	st, err := a.openStore()
	if err != nil {
		return a.fail(cmd, ErrFileWriteError, err, "")
	}

	action := actionOverwritten
	if op == store.OpSave {
		exists, err := st.Exists(date)
		if err != nil {
			return a.failErr(cmd, err, "")
		}
		action = actionInserted
		if exists {
			action = actionAppended
		}
	}

	if err := st.Apply(op, date, content); err != nil {
		return a.failErr(cmd, err, "Run 'ironlog check' to see which documents are out of step")
	}

	monthly, _ := st.MonthlyPath(date)
	result := writeResult{
		Date:   date,
		Action: action,
		Files:  []string{st.MasterPath(), monthly, st.RecentPath()},
	}

	if a.opts.JSON {
		outputSuccess(cmd.OutOrStdout(), result, nil)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Successf("%s %s", actionVerb(action), ui.Date(date)))
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", ui.FilePath(relPath(st.Config().DataDir, f)))
	}
	return nil
}

func actionVerb(action string) string {
	switch action {
	case actionAppended:
		return "Appended to"
	case actionOverwritten:
		return "Overwrote"
	default:
		return "Added"
	}
}

// relPath shows path relative to the data directory when it lives inside it.
func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
