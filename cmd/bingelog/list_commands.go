package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bingelog/internal/api"
	"bingelog/internal/ipc"
	"bingelog/internal/userlist"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Manage a user's tracking list",
	}

	listCmd.AddCommand(newListAddCommand(ctx))
	listCmd.AddCommand(newListUpdateCommand(ctx))
	listCmd.AddCommand(newListRemoveCommand(ctx))
	listCmd.AddCommand(newListGetCommand(ctx))
	listCmd.AddCommand(newListShowCommand(ctx))
	return listCmd
}

func newListAddCommand(ctx *commandContext) *cobra.Command {
	var status string
	var progress, rating int

	cmd := &cobra.Command{
		Use:   "add <username> <kind> <show-id>",
		Short: "Add a show to a user's list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ListAdd(ipc.ListAddRequest{
					Username: args[0],
					Kind:     args[1],
					ShowID:   args[2],
					Status:   status,
					Progress: progress,
					Rating:   rating,
				})
				if err != nil {
					return err
				}
				if !resp.Added {
					fmt.Fprintln(cmd.OutOrStdout(), "Already on the list")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Added to list")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Tracking status (required)")
	cmd.Flags().IntVar(&progress, "progress", 0, "Episodes or chapters consumed")
	cmd.Flags().IntVar(&rating, "rating", userlist.UnratedSentinel, "Rating, or -1 for unrated")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newListUpdateCommand(ctx *commandContext) *cobra.Command {
	var status string
	var progress, rating int

	cmd := &cobra.Command{
		Use:   "update <username> <kind> <show-id>",
		Short: "Replace the tracked state of one entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				_, err := client.ListUpdate(ipc.ListUpdateRequest{
					Username: args[0],
					Kind:     args[1],
					ShowID:   args[2],
					Status:   status,
					Progress: progress,
					Rating:   rating,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Updated")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Tracking status (required)")
	cmd.Flags().IntVar(&progress, "progress", 0, "Episodes or chapters consumed")
	cmd.Flags().IntVar(&rating, "rating", userlist.UnratedSentinel, "Rating, or -1 for unrated")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newListRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <username> <kind> <show-id>",
		Short: "Remove one entry from a user's list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				_, err := client.ListRemove(ipc.ListRemoveRequest{
					Username: args[0],
					Kind:     args[1],
					ShowID:   args[2],
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Removed")
				return nil
			})
		},
	}
}

func newListGetCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <username> <kind> <show-id>",
		Short: "Show one entry from a user's list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ListGet(ipc.ListGetRequest{
					Username: args[0],
					Kind:     args[1],
					ShowID:   args[2],
				})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				entry := resp.Entry
				title := entry.ShowID
				if entry.Show != nil {
					title = entry.Show.Title
				}
				fmt.Fprintf(out, "Title:    %s\n", title)
				fmt.Fprintf(out, "Status:   %s\n", entry.Status)
				fmt.Fprintf(out, "Progress: %s\n", formatProgress(entry))
				fmt.Fprintf(out, "Rating:   %s\n", formatRating(entry.Rating))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

func newListShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <username> <kind>",
		Short: "Show a user's list grouped by status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ListByStatus(args[0], args[1])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, group := range resp.Groups {
					for _, line := range renderSectionHeader(group.Status, colorize) {
						fmt.Fprintln(out, line)
					}
					if len(group.Entries) == 0 {
						fmt.Fprintln(out, "  (none)")
						fmt.Fprintln(out)
						continue
					}
					fmt.Fprintln(out, renderEntryTable(group.Entries))
					fmt.Fprintln(out)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of tables")
	return cmd
}

func renderEntryTable(entries []api.EntryView) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		title := entry.ShowID
		if entry.Show != nil {
			title = entry.Show.Title
		}
		rows = append(rows, []string{
			title,
			formatProgress(entry),
			formatRating(entry.Rating),
		})
	}
	return renderTable(
		[]string{"Title", "Progress", "Rating"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}

// formatProgress renders "3/12" when the show's total is known, plain
// "3" otherwise.
func formatProgress(entry api.EntryView) string {
	if entry.Show != nil && entry.Show.TotalUnits > 0 {
		return fmt.Sprintf("%d/%d", entry.Progress, entry.Show.TotalUnits)
	}
	return strconv.Itoa(entry.Progress)
}

// formatRating renders the unrated sentinel as a dash.
func formatRating(rating int) string {
	if rating == userlist.UnratedSentinel {
		return "-"
	}
	return strconv.Itoa(rating)
}
