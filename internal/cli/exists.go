package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/ironlog/internal/dates"
	"github.com/aidanlsb/ironlog/internal/ui"
)

func newExistsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <date>",
		Short: "Report whether the master log has an entry for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dates.NormalizeDateArg(args[0], a.now())
			if err != nil {
				return a.fail(cmd, ErrInvalidDate, err, "Use YYYY-MM-DD, M/D, today or yesterday")
			}
			st, err := a.openStore()
			if err != nil {
				return a.fail(cmd, ErrFileReadError, err, "")
			}
			exists, err := st.Exists(date)
			if err != nil {
				return a.failErr(cmd, err, "")
			}

			if a.opts.JSON {
				outputSuccess(cmd.OutOrStdout(), map[string]interface{}{
					"date":   date,
					"exists": exists,
				}, nil)
				return nil
			}
			if exists {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("%s has an entry", ui.Date(date)))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Infof("%s has no entry", ui.Date(date)))
			}
			return nil
		},
	}
}
