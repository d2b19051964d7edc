package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/HeyDYF/Money-Manager/internal/currency"
	"github.com/HeyDYF/Money-Manager/internal/ledger"
	"github.com/HeyDYF/Money-Manager/internal/models"
	"github.com/HeyDYF/Money-Manager/internal/pagination"
)

type txFlags struct {
	name        string
	amount      string
	txType      string
	date        string
	description string
	category    string
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Transaction name")
	cmd.Flags().StringVar(&f.amount, "amount", "", "Amount (magnitude)")
	cmd.Flags().StringVarP(&f.txType, "type", "t", "expense", "income or expense")
	cmd.Flags().StringVar(&f.date, "date", "", "Date, YYYY-MM-DD or RFC 3339 (default now)")
	cmd.Flags().StringVar(&f.description, "description", "", "Free text")
	cmd.Flags().StringVar(&f.category, "category", "", "Shopping, Restaurants, Transport, Entertainment or Other")
}

// apply overlays the flags the user set onto in.
func (f *txFlags) apply(cmd *cobra.Command, in models.TransactionInput) (models.TransactionInput, error) {
	changed := cmd.Flags().Changed
	if changed("name") {
		in.Name = f.name
	}
	if changed("amount") {
		amount, err := decimal.NewFromString(f.amount)
		if err != nil {
			return in, fmt.Errorf("invalid amount %q", f.amount)
		}
		in.Amount = amount
	}
	if changed("type") || in.Type == "" {
		in.Type = models.TransactionType(f.txType)
	}
	if changed("date") {
		date, err := parseDate(f.date)
		if err != nil {
			return in, err
		}
		in.Date = date
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("category") {
		in.Category = models.Category(f.category)
	}
	return in, nil
}

func newTxCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Add, update, delete and list transactions",
	}
	cmd.AddCommand(newTxAddCmd(app), newTxUpdateCmd(app), newTxDeleteCmd(app), newTxListCmd(app))
	return cmd
}

func newTxAddCmd(app *cli) *cobra.Command {
	var flags txFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record a transaction",
		Example: "  moneyctl tx add --name Coffee --amount 5 --type expense --category Restaurants",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.apply(cmd, models.TransactionInput{})
			if err != nil {
				return err
			}
			change, err := app.ledger.AddTransaction(cmd.Context(), in)
			if err != nil {
				return err
			}
			printChange(cmd, "Added", change)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newTxUpdateCmd(app *cli) *cobra.Command {
	var flags txFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a transaction",
		Long:  "Only the flags given are changed; the rest of the record is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := app.ledger.GetTransaction(args[0])
			if err != nil {
				return err
			}
			in, err := flags.apply(cmd, models.TransactionInput{
				Name:        existing.Name,
				Amount:      existing.Amount,
				Type:        existing.Type,
				Date:        existing.Date,
				Description: existing.Description,
				Category:    existing.Category,
			})
			if err != nil {
				return err
			}
			change, err := app.ledger.UpdateTransaction(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			printChange(cmd, "Updated", change)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newTxDeleteCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction and reverse its effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			change, err := app.ledger.DeleteTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printChange(cmd, "Deleted", change)
			return nil
		},
	}
}

func newTxListCmd(app *cli) *cobra.Command {
	var page pagination.PageRequest
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if page.Page < 0 || page.PageSize < 0 || page.PageSize > 100 {
				return fmt.Errorf("page must be >= 1 and page-size between 1 and 100")
			}
			result, err := app.ledger.ListTransactions(page)
			if err != nil {
				return err
			}
			code := app.manager.State().Currency

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tNAME\tTYPE\tCATEGORY\tAMOUNT")
			for _, tx := range result.Data {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID, tx.Date.UTC().Format(time.DateOnly), tx.Name, tx.Type, tx.Category,
					currency.Format(tx.SignedAmount(), code))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d transactions\n",
				result.Page, max(result.TotalPages, 1), result.TotalItems)
			return nil
		},
	}
	cmd.Flags().IntVar(&page.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&page.PageSize, "page-size", 20, "Transactions per page")
	return cmd
}

func printChange(cmd *cobra.Command, verb string, change *ledger.Change) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s). Balance: %s\n", verb, change.Transaction.ID, change.Transaction.Name,
		currency.Format(change.State.Balance, change.State.Currency))

	titles := make(map[models.AchievementID]string)
	for _, a := range ledger.Catalog() {
		titles[a.ID] = a.Title
	}
	for _, id := range change.Unlocked {
		fmt.Fprintf(out, "Achievement unlocked: %s\n", titles[id])
	}
}
