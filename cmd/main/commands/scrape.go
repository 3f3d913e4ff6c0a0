package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrapes a product page and prints the extracted record.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := app.Service.Scrape(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		renderRecord(cmd.OutOrStdout(), record)
		return nil
	},
}
