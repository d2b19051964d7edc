package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newInitCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init <amount> <currency>",
		Short: "Set the balance and currency",
		Long: `Replace the balance and currency. Existing transactions are kept and
are not re-applied: the balance is authoritative.`,
		Example: "  moneyctl init 1000 USD",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			view, err := app.ledger.SetInitialBalance(cmd.Context(), amount, strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Balance set to %s (%s)\n", view.FormattedBalance, view.CurrencyDisplay)
			return nil
		},
	}
}

func newBalanceCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := app.ledger.GetLedger()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), %d transactions\n",
				view.FormattedBalance, view.CurrencyDisplay, len(view.Transactions))
			return nil
		},
	}
}

func newAchievementsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and whether they are unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, a := range app.ledger.GetAchievements() {
				mark := " "
				if a.Unlocked {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %-12s %s\n", mark, a.Title, a.Description)
			}
			return nil
		},
	}
}
