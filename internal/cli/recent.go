package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/atomicfile"
	"github.com/aidanlsb/ironlog/internal/ui"
)

func newRecentCommand(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the recent workouts digest",
		Long: `Prints recent_workouts.md, the most recent dates of the log.
On a terminal the markdown is rendered; --raw prints it unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return a.fail(cmd, ErrFileReadError, err, "")
			}

			if a.opts.JSON {
				entries, err := st.Recent()
				if err != nil {
					return a.failErr(cmd, err, "")
				}
				items := make([]map[string]string, 0, len(entries))
				for _, e := range entries {
					items = append(items, map[string]string{"date": e.Date, "text": e.Text})
				}
				outputSuccess(cmd.OutOrStdout(), map[string]interface{}{"entries": items}, &Meta{Count: len(items)})
				return nil
			}

			out := cmd.OutOrStdout()
			content, ok, err := atomicfile.ReadString(st.RecentPath())
			if err != nil {
				return a.fail(cmd, ErrFileReadError, err, "")
			}
			if !ok {
				fmt.Fprintln(out, ui.Info("No workouts saved yet"))
				return nil
			}

			display := ui.DetectDisplay(out)
			if raw || !display.TTY {
				fmt.Fprint(out, content)
				return nil
			}
			rendered, err := ui.RenderMarkdown(content, display.MarkdownWidth())
			if err != nil {
				a.logger.Debug("markdown render failed", "error", err)
				fmt.Fprint(out, content)
				return nil
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown without rendering")
	return cmd
}
