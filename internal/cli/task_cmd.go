package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/wbs/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the flat task list an empty WBS can be imported from",
	}
	cmd.AddCommand(newTaskAddCmd(app))
	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, parent, assignee, due string
	var order int
	var estimate float64
	var done bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to the external task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.project(cmd)
			if err != nil {
				return err
			}
			if estimate < 0 {
				return fmt.Errorf("--estimate must be >= 0")
			}

			now := time.Now().UTC()
			t := &domain.ExternalTask{
				ID:            uuid.New().String(),
				ProjectID:     p.ID,
				ParentID:      domain.StrPtrOrNil(parent),
				Order:         order,
				Title:         title,
				AssigneeID:    domain.StrPtrOrNil(assignee),
				EstimateHours: estimate,
				Done:          done,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if due != "" {
				d, err := domain.ParseDate(due)
				if err != nil {
					return fmt.Errorf("--due: %w", err)
				}
				t.DueDate = &d
			}

			if err := app.Tasks.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (%s)\n", t.Title, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task ID")
	cmd.Flags().IntVar(&order, "order", 0, "Position among siblings")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee person ID")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&estimate, "estimate", 0, "Estimate in hours")
	cmd.Flags().BoolVar(&done, "done", false, "Mark the task done")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
