package cmd

import (
	"context"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/budgets"
	"github.com/spf13/cobra"
)

var budgetPeriod budgets.Period

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "Monthly category budgets",
}

var budgetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budgets for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			list, err := a.Budgets.List(ctx, budgetPeriod)
			if err != nil {
				return err
			}
			money := moneyFor(a)
			return render(cmd, list, func() table {
				t := table{header: []string{"ID", "CATEGORY", "AMOUNT", "MONTH"}}
				for _, b := range list {
					t.add(b.ID, orDash(b.CategoryName), money.format(b.Amount), monthLabel(b.Month, b.Year))
				}
				return t
			})
		})
	},
}

var budgetsProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show how much of each budget has been spent",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			list, err := a.Budgets.Progress(ctx, budgetPeriod)
			if err != nil {
				return err
			}
			money := moneyFor(a)
			return render(cmd, list, func() table {
				t := table{header: []string{"CATEGORY", "BUDGET", "SPENT", "REMAINING", "USED", ""}}
				for _, p := range list {
					flag := ""
					if p.OverBudget() {
						flag = "over"
					}
					t.add(orDash(p.CategoryName), money.format(p.Amount), money.format(p.Spent),
						money.format(p.Remaining), money.percent(p.Percentage), flag)
				}
				return t
			})
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{budgetsListCmd, budgetsProgressCmd} {
		c.Flags().IntVar(&budgetPeriod.Month, "month", 0, "month 1-12 (default current)")
		c.Flags().IntVar(&budgetPeriod.Year, "year", 0, "year (default current)")
	}
	budgetsCmd.AddCommand(budgetsListCmd, budgetsProgressCmd)
	rootCmd.AddCommand(budgetsCmd)
}
