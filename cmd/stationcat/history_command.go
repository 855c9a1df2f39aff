package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"stationcat/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var title string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent wiki imports",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return usageErrorf("--limit must be zero or positive, got %d", limit)
			}
			hist, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if hist == nil {
				return usageErrorf("import history is disabled (history.enabled = false)")
			}
			defer hist.Close()

			entries, err := hist.List(cmd.Context(), title, limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				views := make([]historyView, 0, len(entries))
				for _, e := range entries {
					views = append(views, newHistoryView(e))
				}
				return writeJSON(cmd, views)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No imports recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.FinishedAt.Local().Format("2006-01-02 15:04:05"),
					orDash(e.WikiTitle),
					string(e.Status),
					orDash(e.Strategy),
					strconv.Itoa(e.Parameters),
					strconv.Itoa(e.Outputs),
					e.Duration().Round(time.Millisecond).String(),
					orDash(e.Error),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Finished", "Wiki Title", "Status", "Strategy", "Params", "Outputs", "Took", "Error"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	cmd.Flags().StringVar(&title, "title", "", "Only show imports of this wiki title")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print entries as JSON")
	return cmd
}

type historyView struct {
	ID         int64   `json:"id"`
	RunID      string  `json:"runId"`
	WikiURL    string  `json:"wikiUrl"`
	WikiTitle  string  `json:"wikiTitle,omitempty"`
	Status     string  `json:"status"`
	Strategy   string  `json:"strategy,omitempty"`
	Parameters int     `json:"parameters"`
	Outputs    int     `json:"outputs"`
	Inferred   int     `json:"inferredTypes"`
	ItemName   *string `json:"itemName"`
	ItemHash   *int64  `json:"itemHash"`
	Error      string  `json:"error,omitempty"`
	StartedAt  string  `json:"startedAt"`
	FinishedAt string  `json:"finishedAt"`
}

func newHistoryView(e history.Entry) historyView {
	return historyView{
		ID:         e.ID,
		RunID:      e.RunID,
		WikiURL:    e.WikiURL,
		WikiTitle:  e.WikiTitle,
		Status:     string(e.Status),
		Strategy:   e.Strategy,
		Parameters: e.Parameters,
		Outputs:    e.Outputs,
		Inferred:   e.Inferred,
		ItemName:   e.ItemName,
		ItemHash:   e.ItemHash,
		Error:      e.Error,
		StartedAt:  e.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt: e.FinishedAt.UTC().Format(time.RFC3339),
	}
}
