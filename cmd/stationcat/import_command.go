package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stationcat/internal/wikifetch"
	"stationcat/internal/wikiimport"
	"stationcat/internal/wikiurl"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "import <wiki-url>",
		Short: "Import a device page from the Stationeers wiki",
		Long: `Import a device page from the Stationeers wiki into the catalog.

For multi-device pages, import one section by its fragment:

  stationcat import https://stationeers-wiki.com/Sensors#Gas_Sensor`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.catalogStore()
			if err != nil {
				return err
			}

			fetcher := wikifetch.New(cfg.FetchTimeout(), cfg.Wiki.UserAgent,
				wikifetch.WithMaxContentSize(cfg.Wiki.MaxBodyBytes))
			settings := wikiimport.Settings{Host: cfg.Wiki.Host, BaseURL: cfg.Wiki.BaseURL}

			var opts []wikiimport.Option
			hist, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if hist != nil {
				defer hist.Close()
				opts = append(opts, wikiimport.WithRecorder(hist))
			}

			importer := wikiimport.New(settings, fetcher, store, logger, opts...)
			result, err := importer.Import(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, wikiurl.ErrUnsupportedReference) {
					return usageError(err)
				}
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			if jsonOutput {
				return writeJSON(cmd, importSummary{
					RunID:      result.RunID,
					WikiTitle:  result.Reference.WikiTitle,
					File:       result.Entry.File,
					Strategy:   string(result.Strategy),
					Parameters: len(result.Device.IO.Parameters),
					Outputs:    len(result.Device.IO.Outputs),
					Inferred:   result.Inferred,
					ItemName:   result.Device.Identity.ItemName,
					ItemHash:   result.Device.Identity.ItemHash,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", result.Entry.File)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print a JSON summary of the import")
	return cmd
}

type importSummary struct {
	RunID      string  `json:"runId"`
	WikiTitle  string  `json:"wikiTitle"`
	File       string  `json:"file"`
	Strategy   string  `json:"strategy"`
	Parameters int     `json:"parameters"`
	Outputs    int     `json:"outputs"`
	Inferred   int     `json:"inferredTypes"`
	ItemName   *string `json:"itemName"`
	ItemHash   *int64  `json:"itemHash"`
}
