package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/tui-sand/internal/platform/tui"
	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/storage"
	"github.com/vovakirdan/tui-sand/internal/telemetry"
)

var (
	flagHistoryLimit int
	flagHistoryCSV   bool
	flagHistoryPlot  bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show recorded runs",
	Long: `Show the runs recorded in the history database.

On a terminal the runs open in an interactive table; tab switches mode.
Otherwise they are printed as text.

Examples:
  sand history
  sand history sand --limit 50
  sand history --csv > runs.csv
  sand history saver --plot
  sand history crawl --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryCSV, "csv", false, "Write runs as CSV to stdout")
	historyCmd.Flags().BoolVar(&flagHistoryPlot, "plot", false, "Plot mean tick time per run")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) error {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			return fmt.Errorf("unknown mode %q; run 'sand list' to see available modes", mode)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagHistoryClear {
		n, err := store.ClearRuns(mode)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d runs.\n", n)
		return nil
	}

	if !flagHistoryCSV && !flagHistoryPlot && xterm.IsTerminal(int(os.Stdout.Fd())) {
		w, h := terminalSize()
		return tui.RunHistory(store, mode, w, h)
	}

	runs, err := store.RecentRuns(mode, flagHistoryLimit)
	if err != nil {
		return err
	}

	switch {
	case flagHistoryCSV:
		return telemetry.WriteCSV(out, runs)
	case flagHistoryPlot:
		fmt.Fprintln(out, plotRuns(runs))
		return nil
	}

	stats, err := store.Stats(mode)
	if err != nil {
		return err
	}
	printHistory(out, mode, runs, stats)
	return nil
}

// plotRuns charts mean tick time from oldest to newest run.
func plotRuns(runs []telemetry.RunSummary) string {
	if len(runs) == 0 {
		return "No runs recorded yet."
	}
	data := make([]float64, len(runs))
	for i, r := range runs {
		// RecentRuns is newest first
		data[len(runs)-1-i] = r.MeanTickMS
	}
	return asciigraph.Plot(data,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption("mean ms/tick per run"),
	)
}

var (
	historyTitleStyle  = lipgloss.NewStyle().Bold(true)
	historyHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func printHistory(out io.Writer, mode string, runs []telemetry.RunSummary, stats storage.ModeStats) {
	title := "All modes"
	if mode != "" {
		title = mode
	}
	fmt.Fprintln(out, historyTitleStyle.Render("Run history - "+title))
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return
	}

	header := fmt.Sprintf("  %-16s  %-6s  %-10s  %9s  %8s  %6s  %6s  %7s",
		"Started", "Mode", "Origin", "Duration", "Ticks", "Peak", "Resets", "ms/tick")
	fmt.Fprintln(out, historyHeaderStyle.Render(header))

	for _, r := range runs {
		fmt.Fprintf(out, "  %-16s  %-6s  %-10s  %9s  %8d  %6d  %6d  %7.2f\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			r.Origin,
			r.Duration.Round(time.Second),
			r.Ticks,
			r.PeakPopulation,
			r.Resets,
			r.MeanTickMS,
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d runs, %d ticks, best peak %d, longest %s, %d failed ticks\n",
		stats.Runs, stats.TotalTicks, stats.BestPeak, stats.Longest.Round(time.Second), stats.Failures)
}
