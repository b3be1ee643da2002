package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/format"
	"github.com/tallybook/tally/internal/ledger"
	"github.com/tallybook/tally/internal/model"
)

func newAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage the chart of accounts",
	}
	cmd.AddCommand(
		newAccountsListCommand(),
		newAccountsTreeCommand(),
		newAccountsAddCommand(),
		newAccountsDeleteCommand(),
	)
	return cmd
}

func newAccountsListCommand() *cobra.Command {
	var class string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts by code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			snap := b.store.Snapshot()
			var rows [][]string
			for _, a := range snap.Accounts {
				if class != "" && !strings.EqualFold(string(a.Class), class) {
					continue
				}
				rows = append(rows, []string{a.Code, a.ID, a.Name, string(a.Class), string(a.NormalBalance), accountFlags(a)})
			}
			var md strings.Builder
			md.WriteString("# Chart of Accounts\n\n")
			format.WriteTable(&md, []string{"Code", "ID", "Name", "Class", "Normal", "Flags"}, rows)
			return render(cmd, md.String())
		},
	}
	cmd.Flags().StringVar(&class, "class", "", "only list accounts of this class")
	return cmd
}

func accountFlags(a model.Account) string {
	var flags []string
	if a.IsPosting {
		flags = append(flags, "posting")
	}
	if a.IsSystem {
		flags = append(flags, "system")
	}
	if a.IsDirectCost {
		flags = append(flags, "direct cost")
	}
	return strings.Join(flags, ", ")
}

func newAccountsTreeCommand() *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the account hierarchy with rolled-up balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			at, err := parseDate(asOf)
			if err != nil {
				return err
			}
			snap := b.store.Snapshot()
			tree, err := ledger.BuildTree(snap.Accounts, ledger.Through(snap.Transactions, at))
			if err != nil {
				return err
			}

			var md strings.Builder
			fmt.Fprintf(&md, "# Accounts\n\nBalances as of %s\n\n", at.Format(time.DateOnly))
			var rows [][]string
			for _, n := range tree.All() {
				indent := strings.Repeat("  ", tree.Depth(n))
				balance := ledger.Natural(n.TotalBalance, n.NormalBalance)
				rows = append(rows, []string{n.Code, indent + n.Name, format.Money(balance, b.cfg.Business.BaseCurrency)})
			}
			format.WriteTable(&md, []string{"Code", "Account", "Balance"}, rows, 2)
			if tree.OrphanedPostings > 0 {
				fmt.Fprintf(&md, "> %d postings reference unknown accounts\n", tree.OrphanedPostings)
			}
			return render(cmd, md.String())
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "balance date (YYYY-MM-DD, default today)")
	return cmd
}

func newAccountsAddCommand() *cobra.Command {
	var (
		acct       model.Account
		class      string
		level      string
		normal     string
		group      bool
		directCost bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account to the chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			acct.Class = model.AccountClass(titleCase(class))
			acct.Level = model.AccountLevel(level)
			acct.NormalBalance = model.NormalBalance(normal)
			if normal == "" {
				acct.NormalBalance = accounts.DefaultNormalBalance(acct.Class)
			}
			if acct.ID == "" {
				acct.ID = acct.Code
			}
			acct.IsPosting = !group
			acct.IsDirectCost = directCost

			if err := b.store.AddAccount(acct); err != nil {
				return err
			}
			if err := b.commit("accounts add", "add_account", acct.ID, fmt.Sprintf("%s %s", acct.Code, acct.Name)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %s %s\n", acct.Code, acct.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&acct.ID, "id", "", "account ID (default: the code)")
	cmd.Flags().StringVar(&acct.Code, "code", "", "account code (required)")
	cmd.Flags().StringVar(&acct.Name, "name", "", "account name (required)")
	cmd.Flags().StringVar(&class, "class", "", "Assets, Liabilities, Equity, Revenue or Expenses (required)")
	cmd.Flags().StringVar(&acct.ParentID, "parent", "", "parent account ID")
	cmd.Flags().StringVar(&level, "level", string(model.LevelGL), "class, group, gl or sub_ledger")
	cmd.Flags().StringVar(&normal, "normal", "", "normal balance: debit or credit (default from class)")
	cmd.Flags().BoolVar(&group, "group", false, "grouping account that takes no postings")
	cmd.Flags().BoolVar(&directCost, "direct-cost", false, "report expense activity as cost of goods sold")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}

func newAccountsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an unused account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			if err := b.store.DeleteAccount(args[0]); err != nil {
				return err
			}
			if err := b.commit("accounts delete", "delete_account", args[0], "delete account "+args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])
			return nil
		},
	}
}

// titleCase turns "expenses" into "Expenses" so class flags are case-insensitive.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
