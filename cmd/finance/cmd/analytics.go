package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-finance-client/analytics"
	"github.com/jrsteele09/go-finance-client/app"
	"github.com/spf13/cobra"
)

var (
	analyticsPeriod analytics.Period
	analyticsMonths int
)

func monthLabel(month, year int) string {
	if month < 1 || month > 12 {
		return fmt.Sprint(year)
	}
	return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Dashboard summary, spending by category and monthly trend",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			o, err := a.Analytics.Overview(ctx, analyticsPeriod, analyticsMonths)
			if err != nil {
				return err
			}
			if outputFormat != outputTable {
				return render(cmd, o, nil)
			}

			money := moneyFor(a)
			w := cmd.OutOrStdout()
			d := o.Dashboard
			summary := table{header: []string{"INCOME", "EXPENSES", "BALANCE", "SAVINGS", "TRANSACTIONS"}}
			summary.add(money.format(d.TotalIncome), money.format(d.TotalExpenses), money.format(d.Balance),
				money.percent(d.SavingsRate), fmt.Sprint(d.TransactionCount))
			if err := writeTable(w, summary); err != nil {
				return err
			}

			fmt.Fprintln(w)
			byCategory := table{header: []string{"CATEGORY", "SPENT", "SHARE"}}
			for _, s := range o.ExpensesByCategory {
				byCategory.add(s.Name, money.format(s.Amount), money.percent(s.Percentage))
			}
			if err := writeTable(w, byCategory); err != nil {
				return err
			}

			fmt.Fprintln(w)
			trend := table{header: []string{"MONTH", "INCOME", "EXPENSES"}}
			for _, m := range o.ExpensesOverTime {
				trend.add(m.Month, money.format(m.Income), money.format(m.Expenses))
			}
			return writeTable(w, trend)
		})
	},
}

func init() {
	analyticsCmd.Flags().IntVar(&analyticsPeriod.Month, "month", 0, "month 1-12 (default current)")
	analyticsCmd.Flags().IntVar(&analyticsPeriod.Year, "year", 0, "year (default current)")
	analyticsCmd.Flags().IntVar(&analyticsMonths, "months", 6, "months of history for the trend")
	rootCmd.AddCommand(analyticsCmd)
}
