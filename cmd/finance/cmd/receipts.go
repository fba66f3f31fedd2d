package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/receipts"
	"github.com/spf13/cobra"
)

var (
	receiptStatus string
	receiptWait   bool
	receiptPoll   time.Duration
)

var receiptsCmd = &cobra.Command{
	Use:   "receipts",
	Short: "Upload receipts and follow their processing",
}

func receiptTable(list []receipts.Receipt) func() table {
	return func() table {
		t := table{header: []string{"ID", "FILE", "STATUS", "MERCHANT", "TRANSACTION"}}
		for _, r := range list {
			merchant := ""
			if r.Extracted != nil {
				merchant = r.Extracted.Merchant
			}
			t.add(r.ID, r.Filename, string(r.Status), orDash(merchant), orDash(r.TransactionID))
		}
		return t
	}
}

var receiptsUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a receipt image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			r, err := a.Receipts.Upload(ctx, args[0], f)
			if err != nil {
				return err
			}
			if receiptWait && !r.Status.Done() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Uploaded %s, waiting for processing...\n", r.ID)
				if r, err = a.Receipts.WaitProcessed(ctx, r.ID, receiptPoll); err != nil {
					return err
				}
			}
			return render(cmd, r, receiptTable([]receipts.Receipt{*r}))
		})
	},
}

var receiptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded receipts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			list, err := a.Receipts.List(ctx, receipts.Status(receiptStatus))
			if err != nil {
				return err
			}
			return render(cmd, list, receiptTable(list))
		})
	},
}

var receiptsStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show the processing status of a receipt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, a *app.App) error {
			st, err := a.Receipts.Status(ctx, args[0])
			if err != nil {
				return err
			}
			return render(cmd, st, func() table {
				t := table{header: []string{"ID", "STATUS", "ERROR"}}
				t.add(st.ID, string(st.Status), orDash(st.Error))
				return t
			})
		})
	},
}

func init() {
	receiptsUploadCmd.Flags().BoolVar(&receiptWait, "wait", false, "wait until processing finishes")
	receiptsUploadCmd.Flags().DurationVar(&receiptPoll, "poll", receipts.DefaultPollInterval, "status poll interval with --wait")
	receiptsListCmd.Flags().StringVar(&receiptStatus, "status", "", "processing, completed or failed")
	receiptsCmd.AddCommand(receiptsUploadCmd, receiptsListCmd, receiptsStatusCmd)
	rootCmd.AddCommand(receiptsCmd)
}
