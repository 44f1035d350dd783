package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bingelog/internal/ipc"
)

func newUserCommand(ctx *commandContext) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage tracked users",
	}

	createCmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.UserCreate(args[0])
				if err != nil {
					return err
				}
				if !resp.Created {
					fmt.Fprintf(cmd.OutOrStdout(), "User %q already exists\n", args[0])
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %q\n", args[0])
				return nil
			})
		},
	}

	existsCmd := &cobra.Command{
		Use:   "exists <username>",
		Short: "Check whether a user is registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.UserExists(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", yesNo(resp.Exists))
				return nil
			})
		},
	}

	userCmd.AddCommand(createCmd)
	userCmd.AddCommand(existsCmd)
	return userCmd
}
