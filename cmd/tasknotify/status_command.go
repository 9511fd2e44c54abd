package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type statusView struct {
	Running  bool   `json:"running"`
	DBPath   string `json:"dbPath"`
	LockPath string `json:"lockPath"`
	Counts   struct {
		Tasks      int `json:"tasks"`
		Open       int `json:"open"`
		Completed  int `json:"completed"`
		Users      int `json:"users"`
		Registered int `json:"registered"`
	} `json:"counts"`
	LastScan *scanView `json:"lastScan"`
}

type scanView struct {
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Scanned  int           `json:"scanned"`
	Matched  int           `json:"matched"`
	Sent     int           `json:"sent"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and dispatch counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			var status statusView
			if err := ctx.apiGet("/api/status", &status); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Running:    %s\n", yesNo(status.Running))
			fmt.Fprintf(out, "Database:   %s\n", status.DBPath)
			fmt.Fprintf(out, "Tasks:      %d (%d open, %d completed)\n",
				status.Counts.Tasks, status.Counts.Open, status.Counts.Completed)
			fmt.Fprintf(out, "Users:      %d (%d with a device token)\n",
				status.Counts.Users, status.Counts.Registered)

			if status.LastScan == nil {
				fmt.Fprintln(out, "Last scan:  none yet")
				return nil
			}
			scan := status.LastScan
			fmt.Fprintf(out, "Last scan:  %s (%s)\n",
				scan.Start.Local().Format(time.RFC3339), scan.Duration.Round(time.Millisecond))
			fmt.Fprintf(out, "            scanned %d, due %d, sent %d, skipped %d, failed %d\n",
				scan.Scanned, scan.Matched, scan.Sent, scan.Skipped, scan.Failed)
			return nil
		},
	}
}
