package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/ironlog/internal/extract"
	"github.com/aidanlsb/ironlog/internal/ui"
)

type parsedEntry struct {
	Date    string `json:"date" yaml:"date"`
	Content string `json:"content" yaml:"content"`
	Saved   string `json:"saved,omitempty" yaml:"saved,omitempty"`
}

func newParseCommand(a *app) *cobra.Command {
	var src contentSource
	var asYAML, save bool

	cmd := &cobra.Command{
		Use:   "parse [line...]",
		Short: "Split bulk text into dated entries",
		Long: `Splits free text into one entry per date. A line mentioning a date
(2/10, 2월10일 or 2026-2-10) starts a new entry; lines before the first date
are dropped. Each argument is treated as one line.

With --save every entry is saved (appended or inserted) in date order.

Examples:
  ironlog parse --file backlog.txt
  ironlog parse --file backlog.txt --yaml
  ironlog parse --stdin --save < backlog.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := src.read(cmd, args, "\n")
			if err != nil {
				return a.fail(cmd, ErrInvalidInput, err, "")
			}
			if strings.TrimSpace(text) == "" {
				return a.fail(cmd, ErrMissingArgument, errors.New("no text to parse"), "Pass lines as arguments, or use --stdin or --file")
			}

			logs := extract.New(a.now).Parse(text)
			entries := make([]parsedEntry, 0, len(logs))
			for _, date := range extract.Dates(logs) {
				entries = append(entries, parsedEntry{Date: date, Content: logs[date]})
			}

			if save && len(entries) > 0 {
				if err := a.saveParsed(entries); err != nil {
					return a.failErr(cmd, err, "Entries listed before the failure were saved")
				}
			}

			out := cmd.OutOrStdout()
			switch {
			case a.opts.JSON:
				outputSuccess(out, map[string]interface{}{"entries": entries}, &Meta{Count: len(entries)})
			case asYAML:
				data, err := yaml.Marshal(entries)
				if err != nil {
					return a.fail(cmd, ErrInternal, err, "")
				}
				_, _ = out.Write(data)
			default:
				printParsed(cmd, entries)
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print entries as YAML")
	cmd.Flags().BoolVar(&save, "save", false, "Save every entry to the log")
	return cmd
}

// saveParsed saves entries oldest first, recording the action on each.
func (a *app) saveParsed(entries []parsedEntry) error {
	st, err := a.openStore()
	if err != nil {
		return err
	}
	for i := range entries {
		e := &entries[i]
		exists, err := st.Exists(e.Date)
		if err != nil {
			return err
		}
		if err := st.Save(e.Date, e.Content); err != nil {
			return fmt.Errorf("save %s: %w", e.Date, err)
		}
		e.Saved = actionInserted
		if exists {
			e.Saved = actionAppended
		}
		a.logger.Debug("bulk entry saved", "date", e.Date, "action", e.Saved)
	}
	return nil
}

func printParsed(cmd *cobra.Command, entries []parsedEntry) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, ui.Warning("No dates found"))
		return
	}

	tbl := ui.NewTable(3)
	tbl.SetMaxWidth(ui.DetectDisplay(out).TableWidth())
	for _, e := range entries {
		lines := strings.Count(e.Content, "\n") + 1
		first, _, _ := strings.Cut(e.Content, "\n")
		status := fmt.Sprintf("%d %s", lines, pluralWord("line", lines))
		if e.Saved != "" {
			status = e.Saved
		}
		tbl.AddRow(ui.Date(e.Date), ui.Hint(status), first)
	}
	fmt.Fprint(out, tbl.String())
	fmt.Fprintln(out, ui.Hint(fmt.Sprintf("%d %s", len(entries), pluralWord("date", len(entries)))))
}

func pluralWord(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
