package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run a due-soon scan immediately",
		RunE: func(cmd *cobra.Command, args []string) error {
			var summary scanView
			if err := ctx.apiPost("/api/scan", struct{}{}, &summary); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"Scanned %d open tasks in %s: %d due, %d sent, %d skipped, %d failed\n",
				summary.Scanned, summary.Duration.Round(time.Millisecond),
				summary.Matched, summary.Sent, summary.Skipped, summary.Failed)
			return nil
		},
	}
}
