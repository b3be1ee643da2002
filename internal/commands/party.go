package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/format"
	"github.com/tallybook/tally/internal/model"
)

func newPartyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "party",
		Short: "Manage customers, vendors and other counterparties",
	}
	cmd.AddCommand(newPartyAddCommand(), newPartyListCommand())
	return cmd
}

func newPartyAddCommand() *cobra.Command {
	var (
		p         model.Party
		partyType string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a party",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			p.Type = model.PartyType(strings.ToLower(partyType))
			added, err := b.store.AddParty(p)
			if err != nil {
				return err
			}
			if err := b.commit("party add", "add_party", added.ID, fmt.Sprintf("%s %s", added.Type, added.Name)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s)\n", added.Type, added.Name, added.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.ID, "id", "", "party ID (default generated)")
	cmd.Flags().StringVar(&p.Name, "name", "", "party name (required)")
	cmd.Flags().StringVar(&partyType, "type", string(model.PartyOther), "customer, vendor, employee or other")
	cmd.Flags().StringVar(&p.Email, "email", "", "email address")
	cmd.Flags().StringVar(&p.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&p.LinkedAccountID, "account", "", "receivable or payable account of the party")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPartyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List parties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBook(cmd)
			if err != nil {
				return err
			}
			defer b.close()

			var rows [][]string
			for _, p := range b.store.Snapshot().Parties {
				rows = append(rows, []string{p.ID, p.Name, string(p.Type), p.Email, p.LinkedAccountID})
			}
			var md strings.Builder
			md.WriteString("# Parties\n\n")
			format.WriteTable(&md, []string{"ID", "Name", "Type", "Email", "Account"}, rows)
			return render(cmd, md.String())
		},
	}
}
