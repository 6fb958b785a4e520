package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/check"
	"github.com/aidanlsb/ironlog/internal/ui"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the log documents",
		Long: `Checks the master, monthly and recent documents for sections out of date
order, duplicate dates, wrong weekday labels, sections filed under the wrong
month, an oversized digest and master dates missing from the digest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return a.fail(cmd, ErrFileReadError, err, "")
			}
			report, err := check.Run(st)
			if err != nil {
				return a.fail(cmd, ErrFileReadError, err, "")
			}

			if a.opts.JSON {
				var warnings []Warning
				for _, issue := range report.Issues {
					if issue.Type == check.IssueDigestStale {
						warnings = append(warnings, Warning{Code: WarnDigestStale, Message: issue.Message, Date: issue.Date})
					}
				}
				data := map[string]interface{}{
					"files":    report.Files,
					"issues":   report.Issues,
					"errors":   report.ErrorCount(),
					"warnings": report.WarningCount(),
				}
				outputSuccessWithWarnings(cmd.OutOrStdout(), data, warnings, &Meta{Count: len(report.Issues)})
				return nil
			}

			out := cmd.OutOrStdout()
			base := st.Config().DataDir
			fmt.Fprintf(out, "%s %s\n", ui.Header("Checking"), ui.FilePath(base))
			for _, issue := range report.Issues {
				issue.FilePath = relPath(base, issue.FilePath)
				if issue.Level == check.LevelError {
					fmt.Fprintln(out, ui.Error(issue.String()))
				} else {
					fmt.Fprintln(out, ui.Warning(issue.String()))
				}
			}

			if len(report.Issues) == 0 {
				fmt.Fprintln(out, ui.Successf("No issues found in %d %s", len(report.Files), pluralWord("file", len(report.Files))))
				return nil
			}
			fmt.Fprintf(out, "\nFound %s\n", ui.ErrorWarningCounts(report.ErrorCount(), report.WarningCount()))
			if n := report.ErrorCount(); n > 0 {
				return fmt.Errorf("check failed with %d %s", n, pluralWord("error", n))
			}
			return nil
		},
	}
}
