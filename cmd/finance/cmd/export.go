package cmd

import (
	"context"
	"fmt"

	"github.com/jrsteele09/go-finance-client/app"
	"github.com/jrsteele09/go-finance-client/exports"
	"github.com/jrsteele09/go-finance-client/transactions"
	"github.com/spf13/cobra"
)

var (
	exportFilter exports.Filter
	exportType   string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download transactions as CSV, Excel or PDF",
}

func newExportCmd(format exports.Format) *cobra.Command {
	return &cobra.Command{
		Use:   string(format),
		Short: fmt.Sprintf("Export transactions to %s", format.DefaultFilename()),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := exportFilter
			f.Type = transactions.Kind(exportType)
			return withSession(cmd, func(ctx context.Context, a *app.App) error {
				path, err := a.Exports.SaveTo(ctx, format, f, exportOut)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
				return nil
			})
		},
	}
}

func init() {
	pf := exportCmd.PersistentFlags()
	pf.StringVar(&exportFilter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	pf.StringVar(&exportFilter.EndDate, "to", "", "end date (YYYY-MM-DD)")
	pf.StringVar(&exportFilter.CategoryID, "category", "", "category id")
	pf.StringVar(&exportType, "type", "", "income or expense")
	pf.StringVar(&exportOut, "out", ".", "output file or directory")

	for _, format := range []exports.Format{exports.FormatCSV, exports.FormatExcel, exports.FormatPDF} {
		exportCmd.AddCommand(newExportCmd(format))
	}
	rootCmd.AddCommand(exportCmd)
}
