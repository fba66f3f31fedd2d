package cmd

import (
	"github.com/jrsteele09/go-finance-client/internal/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version and API endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		w := cmd.OutOrStdout()
		if outputFormat == outputTable {
			displayAppname(w, cfg.GetAppName())
		}
		return render(cmd, map[string]string{
			"version": Version,
			"api":     cfg.GetAPIURL(),
			"env":     cfg.GetEnv(),
		}, func() table {
			t := table{header: []string{"VERSION", "API", "ENV"}}
			t.add(Version, cfg.GetAPIURL(), cfg.GetEnv())
			return t
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
