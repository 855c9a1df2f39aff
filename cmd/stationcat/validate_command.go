package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"stationcat/internal/catalog"
	"stationcat/internal/logging"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the catalog index and device files",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			validator, err := catalog.NewValidator(logger)
			if err != nil {
				return err
			}
			root := cfg.Paths.CatalogDir
			out := cmd.OutOrStdout()

			if watch {
				err := validator.Watch(cmd.Context(), root, cfg.WatchDebounce(), watchReporter(cmd, logger, jsonOutput))
				return validationError(out, err)
			}

			report, err := validator.Validate(root)
			if err != nil {
				return validationError(out, err)
			}
			if jsonOutput {
				if err := writeJSON(cmd, newReportView(report)); err != nil {
					return err
				}
			} else {
				printReport(out, report)
			}
			if !report.OK() {
				return reported(exitFailure)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate whenever the catalog changes")
	return cmd
}

// watchReporter prints each watch-mode report. Output failures are logged
// so the watch loop keeps running.
func watchReporter(cmd *cobra.Command, logger *slog.Logger, jsonOutput bool) func(*catalog.Report) {
	return func(report *catalog.Report) {
		if !jsonOutput {
			printReport(cmd.OutOrStdout(), report)
			return
		}
		if err := writeJSON(cmd, newReportView(report)); err != nil {
			logging.ErrorWithContext(logger, "validation report not written", "validate_report_write_failed",
				logging.Error(err),
				logging.String("root", report.Root),
				logging.String(logging.FieldErrorHint, "check that stdout is still open"))
		}
	}
}

// validationError prints usage failures the way findings are printed and
// maps them to the usage exit status.
func validationError(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, catalog.ErrUsage) {
		fmt.Fprintf(out, "ERROR: %s\n", usageMessage(err))
		return reported(exitUsage)
	}
	return err
}

func usageMessage(err error) string {
	return strings.TrimPrefix(err.Error(), catalog.ErrUsage.Error()+": ")
}

func printReport(out io.Writer, report *catalog.Report) {
	if isTerminal(out) && len(report.Errors)+len(report.Warnings) > 0 {
		rows := make([][]string, 0, len(report.Errors)+len(report.Warnings))
		for _, f := range report.Errors {
			rows = append(rows, []string{"ERROR", orDash(f.Path), f.Message})
		}
		for _, f := range report.Warnings {
			rows = append(rows, []string{"WARN", orDash(f.Path), f.Message})
		}
		fmt.Fprintln(out, renderTable([]string{"Level", "File", "Message"}, rows, nil))
	} else {
		for _, f := range report.Errors {
			fmt.Fprintf(out, "ERROR: %s\n", f)
		}
		for _, f := range report.Warnings {
			fmt.Fprintf(out, "WARN:  %s\n", f)
		}
	}
	fmt.Fprintln(out, report.Summary())
}

type reportView struct {
	OK       bool              `json:"ok"`
	Summary  string            `json:"summary"`
	Root     string            `json:"root"`
	Devices  int               `json:"devices"`
	Errors   []catalog.Finding `json:"errors"`
	Warnings []catalog.Finding `json:"warnings"`
}

func newReportView(report *catalog.Report) reportView {
	return reportView{
		OK:       report.OK(),
		Summary:  report.Summary(),
		Root:     report.Root,
		Devices:  report.Devices,
		Errors:   report.Errors,
		Warnings: report.Warnings,
	}
}
