package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/HeyDYF/Money-Manager/internal/currency"
	"github.com/HeyDYF/Money-Manager/internal/services"
)

func newReportCmd(app *cli) *cobra.Command {
	var query, timeRange string
	var plain bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize transactions as a rendered markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := app.analytics.GetSummary(query, timeRange)
			if err != nil {
				return err
			}
			md := renderReport(app.ledger.GetLedger(), report)
			if plain {
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			out, err := r.Render(md)
			if err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only transactions whose name or description contains this")
	cmd.Flags().StringVarP(&timeRange, "range", "r", "all", "all, day, week, month or year")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print the markdown source instead of rendering it")
	return cmd
}

func renderReport(view *services.LedgerView, report *services.AnalyticsReport) string {
	code := report.Currency

	var b strings.Builder
	fmt.Fprintf(&b, "# Ledger report\n\n")
	fmt.Fprintf(&b, "**Balance:** %s (%s)\n\n", view.FormattedBalance, view.CurrencyDisplay)
	fmt.Fprintf(&b, "**Range:** %s", report.Range)
	if report.Query != "" {
		fmt.Fprintf(&b, ", **search:** %q", report.Query)
	}
	fmt.Fprintf(&b, ", %d transactions\n\n", report.Count)

	b.WriteString("| | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Income | %s |\n", currency.Format(report.Income, code))
	fmt.Fprintf(&b, "| Expense | %s |\n", currency.Format(report.Expense, code))
	fmt.Fprintf(&b, "| Net | %s |\n\n", currency.Format(report.Net, code))

	if len(report.ByCategory) > 0 {
		b.WriteString("## Expenses by category\n\n| Category | Total |\n|---|---:|\n")
		for _, c := range report.ByCategory {
			fmt.Fprintf(&b, "| %s | %s |\n", c.Category, currency.Format(c.Total, code))
		}
		b.WriteString("\n")
	}

	if len(report.Daily) > 0 {
		b.WriteString("## Daily\n\n| Date | Income | Expense |\n|---|---:|---:|\n")
		for _, d := range report.Daily {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", d.Date, currency.Format(d.Income, code), currency.Format(d.Expense, code))
		}
	}
	return b.String()
}
