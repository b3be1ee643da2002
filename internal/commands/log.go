package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/activity"
	"github.com/tallybook/tally/internal/format"
)

func newLogCommand() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changes to the book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := dataDir(cmd)
			if err != nil {
				return err
			}
			entries, err := activity.Read(root)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, e := range activity.Tail(entries, n) {
				rows = append(rows, []string{
					e.Timestamp.Local().Format(time.DateTime), e.Command, e.Subject, e.Details, e.CommitHash,
				})
			}
			var md strings.Builder
			md.WriteString("# Activity\n\n")
			format.WriteTable(&md, []string{"When", "Command", "Subject", "Details", "Commit"}, rows)
			return render(cmd, md.String())
		},
	}
	cmd.Flags().IntVarP(&n, "number", "n", 20, "entries to show (0 for all)")
	return cmd
}
