package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/transactions"
	"github.com/spf13/cobra"
)

var (
	txFilter  transactions.Filter
	txType    string
	txOrder   string
	txLimit   int
	txNew     transactions.NewTransaction
	txNewType string
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "List, add and delete transactions",
}

func transactionTable(money moneyFormatter, list []transactions.Transaction) func() table {
	return func() table {
		t := table{header: []string{"ID", "DATE", "TYPE", "AMOUNT", "CATEGORY", "DESCRIPTION"}}
		for _, tx := range list {
			category := tx.CategoryName
			if category == "" {
				category = tx.CategoryID
			}
			t.add(tx.ID, tx.Date, string(tx.Type), money.format(tx.Signed()), orDash(category), tx.Description)
		}
		return t
	}
}

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := txFilter
		f.Type = transactions.Kind(txType)
		f.SortOrder = transactions.SortOrder(txOrder)
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			page, err := a.Transactions.List(ctx, f)
			if err != nil {
				return err
			}
			if err := render(cmd, page, transactionTable(moneyFor(a), page.Transactions)); err != nil {
				return err
			}
			if outputFormat == outputTable && page.HasMore() {
				fmt.Fprintf(cmd.ErrOrStderr(), "page %d of %d, use --page %d for more\n",
					page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Page+1)
			}
			return nil
		})
	},
}

var transactionsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			list, err := a.Transactions.Recent(ctx, txLimit)
			if err != nil {
				return err
			}
			return render(cmd, list, transactionTable(moneyFor(a), list))
		})
	},
}

var transactionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		nt := txNew
		nt.Type = transactions.Kind(txNewType)
		if nt.Date == "" {
			nt.Date = time.Now().Format(time.DateOnly)
		}
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			tx, err := a.Transactions.Create(ctx, nt)
			if err != nil {
				return err
			}
			return render(cmd, tx, transactionTable(moneyFor(a), []transactions.Transaction{*tx}))
		})
	},
}

var transactionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Transactions.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %s\n", args[0])
			return nil
		})
	},
}

func init() {
	lf := transactionsListCmd.Flags()
	lf.IntVar(&txFilter.Page, "page", 0, "page number")
	lf.IntVar(&txFilter.Limit, "limit", 0, "page size")
	lf.StringVar(&txType, "type", "", "income or expense")
	lf.StringVar(&txFilter.CategoryID, "category", "", "category id")
	lf.StringVar(&txFilter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	lf.StringVar(&txFilter.EndDate, "to", "", "end date (YYYY-MM-DD)")
	lf.StringVar(&txFilter.Search, "search", "", "search descriptions")
	lf.StringVar(&txFilter.SortBy, "sort-by", "", "field to sort by, e.g. date or amount")
	lf.StringVar(&txOrder, "order", "", "asc or desc")

	transactionsRecentCmd.Flags().IntVar(&txLimit, "limit", 0, "number of transactions")

	af := transactionsAddCmd.Flags()
	af.StringVar(&txNewType, "type", string(transactions.KindExpense), "income or expense")
	af.Float64Var(&txNew.Amount, "amount", 0, "amount (positive)")
	af.StringVar(&txNew.Description, "description", "", "description")
	af.StringVar(&txNew.Date, "date", "", "date (YYYY-MM-DD, default today)")
	af.StringVar(&txNew.CategoryID, "category", "", "category id")
	af.StringVar(&txNew.Notes, "notes", "", "notes")
	af.StringSliceVar(&txNew.Tags, "tag", nil, "tag (repeatable)")
	_ = transactionsAddCmd.MarkFlagRequired("amount")
	_ = transactionsAddCmd.MarkFlagRequired("category")

	transactionsCmd.AddCommand(transactionsListCmd, transactionsRecentCmd, transactionsAddCmd, transactionsDeleteCmd)
	rootCmd.AddCommand(transactionsCmd)
}
