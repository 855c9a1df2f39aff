package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"stationcat/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <wiki-title>",
		Short: "Print one device record",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.catalogStore()
			if err != nil {
				return err
			}
			title := strings.TrimSpace(args[0])
			data, err := store.ReadDevice(title)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return usageErrorf("device %q is not in the catalog index", title)
				}
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
