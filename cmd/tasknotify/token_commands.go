package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCommand(ctx *commandContext) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage user device tokens",
	}

	tokenCmd.AddCommand(newTokenSetCommand(ctx))
	tokenCmd.AddCommand(newTokenClearCommand(ctx))
	return tokenCmd
}

func newTokenSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <username> <token>",
		Short: "Register a device token for a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username, token := args[0], args[1]
			var resp struct {
				Username   string `json:"username"`
				Registered bool   `json:"registered"`
			}
			payload := map[string]string{"token": token}
			if err := ctx.apiPut("/api/users/"+username+"/token", payload, &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token for %s registered: %s\n",
				resp.Username, yesNo(resp.Registered))
			return nil
		},
	}
}

func newTokenClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <username>",
		Short: "Remove a user's device token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			if err := ctx.apiDelete("/api/users/"+username+"/token", nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token for %s cleared\n", username)
			return nil
		},
	}
}
