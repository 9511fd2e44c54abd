package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// newSendTaskCommand posts a task snapshot to the daemon's change feed, the
// same endpoint a task application would call. Useful for smoke testing the
// dispatch pipeline end to end.
func newSendTaskCommand(ctx *commandContext) *cobra.Command {
	var (
		id         string
		title      string
		assignedTo string
		createdBy  string
		dueIn      time.Duration
		completed  bool
	)

	cmd := &cobra.Command{
		Use:   "send-task",
		Short: "Submit a task snapshot to the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(id) == "" {
				return fmt.Errorf("--id is required")
			}

			payload := map[string]any{
				"id":          id,
				"title":       title,
				"assignedTo":  assignedTo,
				"createdBy":   createdBy,
				"isCompleted": completed,
			}
			if dueIn > 0 {
				payload["dueDate"] = time.Now().UTC().Add(dueIn)
			}

			var resp struct {
				ID      string `json:"id"`
				Created bool   `json:"created"`
				EventID string `json:"eventId"`
			}
			if err := ctx.apiPost("/api/tasks", payload, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.Created {
				fmt.Fprintf(out, "Created task %s (event %s)\n", resp.ID, resp.EventID)
			} else {
				fmt.Fprintf(out, "Updated task %s (event %s)\n", resp.ID, resp.EventID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Task identifier")
	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Username the task is assigned to")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "Username that created the task")
	cmd.Flags().DurationVar(&dueIn, "due-in", 0, "Due date offset from now (e.g. 45m)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Mark the snapshot as completed")
	return cmd
}
