package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog devices",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.catalogStore()
			if err != nil {
				return err
			}
			idx, err := store.LoadIndex()
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, idx)
			}

			out := cmd.OutOrStdout()
			if len(idx.Devices) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}
			rows := make([][]string, 0, len(idx.Devices))
			for _, entry := range idx.Devices {
				name := "-"
				if entry.ItemName != nil {
					name = *entry.ItemName
				}
				hash := "-"
				if entry.ItemHash != nil {
					hash = strconv.FormatInt(*entry.ItemHash, 10)
				}
				rows = append(rows, []string{entry.WikiTitle, name, hash, entry.File})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Wiki Title", "Item Name", "Item Hash", "File"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print index.json contents")
	return cmd
}
