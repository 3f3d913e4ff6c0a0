package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var publishCategory string

func init() {
	publishCmd.Flags().StringVar(&publishCategory, "category", "", "Comma separated category path from root to leaf, e.g. 293,15032,9355.")
	publishCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish <url> --category <id,id,...>",
	Short: "Scrapes a product page and lists it in the given category.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		ids := splitIDs(publishCategory)
		if len(ids) == 0 {
			return errors.New("--category needs at least one category id")
		}

		if err := app.Service.Warmup(ctx); err != nil {
			return err
		}

		record, err := app.Service.Scrape(ctx, args[0])
		if err != nil {
			return err
		}
		renderRecord(out, record)

		if _, err := app.Service.SelectPath(ctx, ids...); err != nil {
			return err
		}
		renderPath(out, app.Session.Categories().Selected())

		result, err := app.Service.Publish(ctx)
		if err != nil {
			return err
		}
		renderResult(out, result)

		if !result.OK() {
			return fmt.Errorf("listing was rejected")
		}
		return nil
	},
}
