package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Post due recurring transactions and monthly depreciation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			if at != "" {
				d, err := parseDate(at)
				if err != nil {
					return err
				}
				now = d
			}
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			res, err := b.store.RunSchedulers(now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Posted() == 0 {
				fmt.Fprintln(out, "Nothing due")
				return nil
			}
			for _, tx := range res.Recurring {
				fmt.Fprintf(out, "recurring     %s\n", describeTx(tx))
			}
			for _, tx := range res.Depreciation {
				fmt.Fprintf(out, "depreciation  %s\n", describeTx(tx))
			}
			details := fmt.Sprintf("%d recurring, %d depreciation", len(res.Recurring), len(res.Depreciation))
			return b.commit("run", "run_schedulers", now.Format(time.DateOnly), details)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "run as of this date (YYYY-MM-DD, default now)")
	return cmd
}
