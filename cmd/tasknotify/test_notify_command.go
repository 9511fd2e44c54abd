package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify <username>",
		Short: "Send a test notification to a user's device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp struct {
				Sent   bool   `json:"sent"`
				Detail string `json:"detail"`
			}
			payload := map[string]string{"username": args[0]}
			if err := ctx.apiPost("/api/test-notify", payload, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.Sent {
				fmt.Fprintln(out, "Test notification sent")
			} else if resp.Detail != "" {
				fmt.Fprintf(out, "Notification not sent: %s\n", resp.Detail)
			} else {
				fmt.Fprintln(out, "Notification not sent")
			}
			return nil
		},
	}
}
