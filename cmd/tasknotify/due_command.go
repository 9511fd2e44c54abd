package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type taskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	AssignedTo  string     `json:"assignedTo"`
	CreatedBy   string     `json:"createdBy"`
	IsCompleted bool       `json:"isCompleted"`
	DueDate     *time.Time `json:"dueDate"`
}

func newDueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List open tasks due within the next hour",
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload struct {
				Now       time.Time  `json:"now"`
				WindowEnd time.Time  `json:"windowEnd"`
				Tasks     []taskView `json:"tasks"`
			}
			if err := ctx.apiGet("/api/due", &payload); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(payload.Tasks) == 0 {
				fmt.Fprintf(out, "No tasks due before %s\n",
					payload.WindowEnd.Local().Format(time.RFC3339))
				return nil
			}

			rows := make([][]string, 0, len(payload.Tasks))
			for _, task := range payload.Tasks {
				due := ""
				if task.DueDate != nil {
					due = task.DueDate.Local().Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{task.ID, task.Title, task.AssignedTo, due})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Assigned To", "Due"}, rows, 3))
			return nil
		},
	}
}
