package cli

import (
	"fmt"

	"github.com/alexanderramin/wbs/internal/cli/formatter"
	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/spf13/cobra"
)

func newPersonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage the people nodes can be assigned to",
	}
	cmd.AddCommand(newPersonAddCmd(app), newPersonListCmd(app))
	return cmd
}

func newPersonAddCmd(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Person{DisplayName: name, Email: email}
			if err := app.People.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", p.DisplayName, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPersonListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.People.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(people) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No people found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPersonList(people))
			return nil
		},
	}
}
