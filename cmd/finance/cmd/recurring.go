package cmd

import (
	"context"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/recurring"
	"github.com/spf13/cobra"
)

var (
	recurringStatus string
	recurringDays   int
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Recurring income and expenses",
}

func ruleTable(money moneyFormatter, rules []recurring.Rule) func() table {
	return func() table {
		t := table{header: []string{"ID", "DESCRIPTION", "AMOUNT", "FREQUENCY", "NEXT", "STATUS"}}
		for _, r := range rules {
			status := string(recurring.StatusActive)
			if !r.IsActive {
				status = string(recurring.StatusPaused)
			}
			t.add(r.ID, r.Description, money.format(r.Amount), string(r.Frequency), orDash(r.NextDate), status)
		}
		return t
	}
}

var recurringListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			rules, err := a.Recurring.List(ctx, recurring.Status(recurringStatus))
			if err != nil {
				return err
			}
			return render(cmd, rules, ruleTable(moneyFor(a), rules))
		})
	},
}

var recurringUpcomingCmd = &cobra.Command{
	Use:   "upcoming",
	Short: "Show scheduled occurrences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			list, err := a.Recurring.Upcoming(ctx, recurringDays)
			if err != nil {
				return err
			}
			money := moneyFor(a)
			return render(cmd, list, func() table {
				t := table{header: []string{"DATE", "DESCRIPTION", "TYPE", "AMOUNT"}}
				for _, o := range list {
					t.add(o.Date, o.Description, string(o.Type), money.format(o.Amount))
				}
				return t
			})
		})
	},
}

var recurringToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Pause or resume a recurring transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			rule, err := a.Recurring.Toggle(ctx, args[0])
			if err != nil {
				return err
			}
			return render(cmd, rule, ruleTable(moneyFor(a), []recurring.Rule{*rule}))
		})
	},
}

func init() {
	recurringListCmd.Flags().StringVar(&recurringStatus, "status", "", "active or paused")
	recurringUpcomingCmd.Flags().IntVar(&recurringDays, "days", 0, "look-ahead window in days")
	recurringCmd.AddCommand(recurringListCmd, recurringUpcomingCmd, recurringToggleCmd)
	rootCmd.AddCommand(recurringCmd)
}
