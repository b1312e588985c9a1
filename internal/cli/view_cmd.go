package cli

import (
	"fmt"

	"github.com/alexanderramin/wbs/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the WBS with codes and rollups",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			tree, err := app.Wbs.Tree(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s · %s", p.DisplayID(), p.Name)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTree(title, tree.Roots, tree.Totals))
			return nil
		},
	}
}

func newTimelineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "List every node with rolled-up dates and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			rows, err := app.Wbs.Timeline(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(rows))
			return nil
		},
	}
}
