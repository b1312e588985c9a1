// Package cli implements the wbs command line.
package cli

import (
	"context"

	"github.com/alexanderramin/wbs/internal/repository"
	"github.com/alexanderramin/wbs/internal/service"
	"github.com/spf13/cobra"
)

// App holds what the commands run against.
type App struct {
	Projects service.ProjectService
	People   service.PersonService
	Wbs      service.WbsService
	Export   service.ExportService
	Import   service.ImportService
	// Tasks is the external flat task list that `wbs import` reads.
	Tasks repository.TaskRepo

	// Serve runs the HTTP API until ctx is done. Nil disables `wbs serve`.
	Serve       func(ctx context.Context, addr string) error
	DefaultAddr string
}

// NewRootCmd creates the top-level "wbs" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "wbs",
		Short:         "Work breakdown structure editor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("project", "p", "", "Project short ID or ID")

	root.AddCommand(
		newProjectCmd(app),
		newPersonCmd(app),
		newTaskCmd(app),
		newNodeCmd(app),
		newTreeCmd(app),
		newTimelineCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)
	return root
}
