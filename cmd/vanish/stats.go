package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vanish/history"
	"github.com/lixenwraith/vanish/timer"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the best and most recent runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(root.cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			return printStats(cmd.OutOrStdout(), store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "rows per table")
	return cmd
}

func printStats(out io.Writer, store *history.Store, limit int) error {
	total, err := store.Count()
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	best, err := store.Best(limit)
	if err != nil {
		return err
	}
	recent, err := store.Recent(limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Runs recorded: %d\n\n", total)

	fmt.Fprintln(out, "Best runs")
	if err := writeRuns(out, best); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nRecent runs")
	return writeRuns(out, recent)
}

func writeRuns(out io.Writer, runs []history.Run) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tTIME\tENDED BY\tRECORD")
	for _, r := range runs {
		record := ""
		if r.NewRecord {
			record = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			timer.FormatElapsed(r.Seconds),
			r.Reason,
			record,
		)
	}
	return w.Flush()
}
