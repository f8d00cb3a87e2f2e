package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexfront/internal/platform/tui"
	"github.com/vovakirdan/hexfront/internal/registry"
	"github.com/vovakirdan/hexfront/internal/storage"
)

var (
	flagHistoryMode  string
	flagHistoryPlain bool
	flagHistoryClear bool
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded matches",
	Long: `Browse finished matches. Opens an interactive table on a terminal,
or prints plain text with --plain or when output is not a terminal.

Examples:
  hexfront history
  hexfront history --plain --mode hexfront_demo
  hexfront history --clear --mode hexfront_demo`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryMode, "mode", "", "Only show matches of this mode")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print plain text instead of the interactive view")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded matches (respects --mode)")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to print in plain mode")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if flagHistoryMode != "" && !registry.Exists(flagHistoryMode) {
		return fmt.Errorf("unknown mode %q (run 'hexfront list')", flagHistoryMode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearMatches(flagHistoryMode); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Match history cleared.")
		return nil
	}

	if !flagHistoryPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := runtimeConfig()
		_, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	return printHistory(cmd, store)
}

// printHistory writes recent matches and totals as plain text.
func printHistory(cmd *cobra.Command, store *storage.Store) error {
	out := cmd.OutOrStdout()

	matches, err := store.RecentMatches(flagHistoryMode, flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'hexfront play' or run 'hexfront simulate --record'.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("When", "Mode", "Winner", "How", "Turns", "Score")
	for _, m := range matches {
		t.Row(
			humanize.Time(m.CreatedAt()),
			m.Mode,
			m.Winner,
			strings.ReplaceAll(m.EndReason, "_", " "),
			strconv.Itoa(m.Turns),
			fmt.Sprintf("%d:%d", m.BlueScore, m.RedScore),
		)
	}
	fmt.Fprintln(out, t.String())

	stats, err := store.Stats(flagHistoryMode)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s matches: BLUE %d, RED %d, unfinished %d, avg %.1f turns\n",
		humanize.Comma(int64(stats.Matches)), stats.BlueWins, stats.RedWins,
		stats.Unfinished, stats.AvgTurns)
	return nil
}
