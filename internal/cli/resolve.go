package cli

import (
	"fmt"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/spf13/cobra"
)

// project resolves the persistent --project flag.
func (app *App) project(cmd *cobra.Command) (*domain.Project, error) {
	ref, err := cmd.Flags().GetString("project")
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, fmt.Errorf("project is required (use --project)")
	}
	return app.Projects.Resolve(cmd.Context(), ref)
}

// node resolves a node reference, either an id or a WBS code like 1.2.3.
func (app *App) node(cmd *cobra.Command, projectID, ref string) (*domain.TreeNode, error) {
	return app.Wbs.ResolveNode(cmd.Context(), projectID, ref)
}
