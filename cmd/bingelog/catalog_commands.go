package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bingelog/internal/api"
	"bingelog/internal/ipc"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the shared show catalog",
	}

	catalogCmd.AddCommand(newCatalogAddCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))
	catalogCmd.AddCommand(newCatalogShowCommand(ctx))
	return catalogCmd
}

func newCatalogAddCommand(ctx *commandContext) *cobra.Command {
	var imageURL string
	var totalUnits int

	cmd := &cobra.Command{
		Use:   "add <kind> <title>",
		Short: "Add a show to the catalog",
		Long:  "Add a show to the catalog. Kind is 'anime' or 'manga'; the daemon assigns the ID.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.CatalogAdd(ipc.CatalogAddRequest{
					Kind:       args[0],
					Title:      args[1],
					ImageURL:   imageURL,
					TotalUnits: totalUnits,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q with id %s\n",
					resp.Show.Kind, resp.Show.Title, resp.Show.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&imageURL, "image-url", "", "Cover image URL")
	cmd.Flags().IntVar(&totalUnits, "total", 0, "Total episodes or chapters (0 when unknown)")
	return cmd
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List all catalog shows of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.CatalogList(args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				if len(resp.Shows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Catalog is empty")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderShowTable(resp.Shows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCatalogShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show one catalog entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.CatalogGet(args[0], args[1])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:        %s\n", resp.Show.ID)
				fmt.Fprintf(out, "Kind:      %s\n", resp.Show.Kind)
				fmt.Fprintf(out, "Title:     %s\n", resp.Show.Title)
				fmt.Fprintf(out, "Image URL: %s\n", resp.Show.ImageURL)
				fmt.Fprintf(out, "Total:     %d\n", resp.Show.TotalUnits)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

func renderShowTable(shows []api.ShowView) string {
	rows := make([][]string, 0, len(shows))
	for _, show := range shows {
		rows = append(rows, []string{
			show.ID,
			show.Title,
			strconv.Itoa(show.TotalUnits),
			show.ImageURL,
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Total", "Image URL"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}
