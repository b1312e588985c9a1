package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/spf13/cobra"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Edit WBS nodes (addressed by ID or code)",
	}
	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeUpdateCmd(app),
		newNodeRemoveCmd(app),
		newNodeStructuralCmd(app, "up", "Move a node before its previous sibling",
			func(ctx context.Context, projectID, id string) (bool, error) {
				return app.Wbs.Reorder(ctx, projectID, id, domain.DirectionUp)
			}),
		newNodeStructuralCmd(app, "down", "Move a node after its next sibling",
			func(ctx context.Context, projectID, id string) (bool, error) {
				return app.Wbs.Reorder(ctx, projectID, id, domain.DirectionDown)
			}),
		newNodeStructuralCmd(app, "indent", "Make a node the last child of its previous sibling",
			func(ctx context.Context, projectID, id string) (bool, error) {
				return app.Wbs.Indent(ctx, projectID, id)
			}),
		newNodeStructuralCmd(app, "outdent", "Move a node up one level, right after its parent",
			func(ctx context.Context, projectID, id string) (bool, error) {
				return app.Wbs.Outdent(ctx, projectID, id)
			}),
	)
	return cmd
}

func newNodeAddCmd(app *App) *cobra.Command {
	var f nodeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a node at the end of its sibling group",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			patch, err := f.patch(cmd.Flags(), app.parentResolver(cmd, p.ID))
			if err != nil {
				return err
			}
			n, err := app.Wbs.Upsert(cmd.Context(), p.ID, "", patch)
			if err != nil {
				return err
			}
			return app.printNode(cmd, p.ID, "Created", n.ID)
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newNodeUpdateCmd(app *App) *cobra.Command {
	var f nodeFlags

	cmd := &cobra.Command{
		Use:   "update <id|code>",
		Short: "Change node attributes or reparent it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			target, err := app.node(cmd, p.ID, args[0])
			if err != nil {
				return err
			}
			patch, err := f.patch(cmd.Flags(), app.parentResolver(cmd, p.ID))
			if err != nil {
				return err
			}
			if _, err := app.Wbs.Upsert(cmd.Context(), p.ID, target.ID, patch); err != nil {
				return err
			}
			return app.printNode(cmd, p.ID, "Updated", target.ID)
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id|code>",
		Short: "Delete a node and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			target, err := app.node(cmd, p.ID, args[0])
			if err != nil {
				return err
			}
			removed, err := app.Wbs.Delete(cmd.Context(), p.ID, target.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s (%d nodes)\n", target.Code, target.Name, removed)
			return nil
		},
	}
}

type structuralOp func(ctx context.Context, projectID, id string) (bool, error)

func newNodeStructuralCmd(app *App, use, short string, op structuralOp) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id|code>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			target, err := app.node(cmd, p.ID, args[0])
			if err != nil {
				return err
			}
			changed, err := op(cmd.Context(), p.ID, target.ID)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to do: %s %s cannot move %s\n", target.Code, target.Name, use)
				return nil
			}
			return app.printNode(cmd, p.ID, "Moved", target.ID)
		},
	}
}

func (app *App) parentResolver(cmd *cobra.Command, projectID string) func(string) (string, error) {
	return func(ref string) (string, error) {
		tn, err := app.node(cmd, projectID, ref)
		if err != nil {
			return "", err
		}
		return tn.ID, nil
	}
}

// printNode re-reads the node so the printed code reflects the new tree.
func (app *App) printNode(cmd *cobra.Command, projectID, verb, id string) error {
	tn, err := app.node(cmd, projectID, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s)\n", verb, tn.Code, tn.Name, tn.ID)
	return nil
}
