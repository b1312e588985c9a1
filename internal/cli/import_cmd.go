package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Seed an empty WBS from the external task list or a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}

			var n int
			if file != "" {
				n, err = app.Import.ImportFromFile(cmd.Context(), p.ID, file)
			} else {
				n, err = app.Import.ImportFromSource(cmd.Context(), p.ID)
			}
			if err != nil {
				return err
			}

			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing imported: the project already has a WBS or the task list is empty.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nodes into %s\n", n, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON task list to import instead of the stored task list")
	return cmd
}
