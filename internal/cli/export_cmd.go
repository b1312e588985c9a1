package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/wbs/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the WBS as CSV or JSON",
	}
	cmd.AddCommand(
		newExportFormatCmd(app, "csv", func(ctx context.Context, projectID string) (*export.Document, error) {
			return app.Export.ExportCSV(ctx, projectID)
		}),
		newExportFormatCmd(app, "json", func(ctx context.Context, projectID string) (*export.Document, error) {
			return app.Export.ExportJSON(ctx, projectID)
		}),
	)
	return cmd
}

func newExportFormatCmd(app *App, format string, render func(context.Context, string) (*export.Document, error)) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   format,
		Short: fmt.Sprintf("Export as %s (stdout unless --out is given)", format),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			doc, err := render(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			if out == "" {
				_, err := cmd.OutOrStdout().Write(doc.Body)
				return err
			}
			if out == "." {
				out = doc.Filename
			}
			if err := os.WriteFile(out, doc.Body, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d bytes)\n", out, len(doc.Body))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", `Output file ("." for the default file name)`)
	return cmd
}
