package cmd

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/transactions"
	"github.com/spf13/cobra"
)

var (
	categoryType   string
	categoryCounts bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Work with transaction categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := transactions.Kind(categoryType)
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			if !categoryCounts {
				list, err := a.Categories.List(ctx, kind)
				if err != nil {
					return err
				}
				return render(cmd, list, func() table {
					t := table{header: []string{"ID", "NAME", "TYPE", "COLOR"}}
					for _, c := range list {
						t.add(c.ID, c.Name, string(c.Type), orDash(c.Color))
					}
					return t
				})
			}

			list, err := a.Categories.WithCounts(ctx, kind)
			if err != nil {
				return err
			}
			money := moneyFor(a)
			return render(cmd, list, func() table {
				t := table{header: []string{"ID", "NAME", "TYPE", "TRANSACTIONS", "TOTAL"}}
				for _, c := range list {
					t.add(c.ID, c.Name, string(c.Type), fmt.Sprint(c.TransactionCount), money.format(c.Total))
				}
				return t
			})
		})
	},
}

func init() {
	categoriesListCmd.Flags().StringVar(&categoryType, "type", "", "income or expense")
	categoriesListCmd.Flags().BoolVar(&categoryCounts, "counts", false, "include transaction counts and totals")
	categoriesCmd.AddCommand(categoriesListCmd)
	rootCmd.AddCommand(categoriesCmd)
}
