package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/HeyDYF/Money-Manager/internal/currency"
	"github.com/HeyDYF/Money-Manager/internal/exchange"
)

func newRatesCmd(app *cli) *cobra.Command {
	var swap bool
	cmd := &cobra.Command{
		Use:     "rates <from> <to> [amount]",
		Short:   "Convert an amount at the latest exchange rate",
		Example: "  moneyctl rates USD EUR 100\n  moneyctl rates USD JPY --swap",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := decimal.NewFromInt(1)
			if len(args) == 3 {
				var err error
				if amount, err = decimal.NewFromString(args[2]); err != nil {
					return fmt.Errorf("invalid amount %q", args[2])
				}
			}

			board := exchange.NewBoard(app.rates, args[0], args[1], amount)
			if err := board.Refresh(cmd.Context()); err != nil {
				return fmt.Errorf("%s: %w", board.State().Error, err)
			}
			printQuote(cmd, board.State())
			if swap {
				board.Swap()
				printQuote(cmd, board.State())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&swap, "swap", false, "Also show the inverse conversion")
	return cmd
}

func printQuote(cmd *cobra.Command, st exchange.BoardState) {
	q := st.Quote
	if q == nil {
		return
	}
	line := fmt.Sprintf("%s = %s (rate %s)",
		currency.Format(q.Amount, q.From), currency.Format(q.Converted, q.To), q.Rate.StringFixed(6))
	if q.UpdatedAt != "" {
		line += ", updated " + q.UpdatedAt
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(line))
}
