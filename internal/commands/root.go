// Package commands implements the tally command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Double-entry books for a small business or household",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("dir", ".", "book data directory")
	rootCmd.PersistentFlags().Bool("plain", false, "print raw markdown instead of styled output")

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(),
		newTxCommand(),
		newPartyCommand(),
		newAssetCommand(),
		newRecurringCommand(),
		newBudgetCommand(),
		newImportCommand(),
		newRunCommand(),
		newReportCommand(),
		newLogCommand(),
	)
	return rootCmd
}
