package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories [id ...]",
	Short: "Lists root categories, or the children at the end of a path of category ids.",
	Long: `Lists root categories, or the children at the end of a path of category ids.

Each id must be a child of the previous one, for example:
  autolist categories 293 15032`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			roots, err := app.Service.LoadCategories(ctx)
			if err != nil {
				return err
			}
			renderCategories(out, "Root categories", roots)
			return nil
		}

		children, err := app.Service.SelectPath(ctx, args...)
		if err != nil {
			return err
		}

		renderPath(out, app.Session.Categories().Selected())
		renderCategories(out, "Subcategories", children)
		return nil
	},
}
