package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexfront/internal/ai"
	"github.com/vovakirdan/hexfront/internal/games/hexfront"
	"github.com/vovakirdan/hexfront/internal/storage"
)

var (
	flagTurns  int
	flagRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a CPU vs CPU match without a UI",
	Long: `Let the CPU play both sides until one wins or the turn limit is hit.
Every step is logged at debug level; the result is printed at the end.

Examples:
  hexfront simulate --seed 42
  hexfront simulate --turns 50 --log-level debug
  hexfront simulate --record --db ./matches.db`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTurns, "turns", 200, "Stop after this many turns (0 = no limit)")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the result to the match database")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "simulate")
	if err != nil {
		return err
	}

	match, err := hexfront.NewMatch(hexfront.ModeDemo, scenario, flagSeed)
	if err != nil {
		return err
	}
	st := match.State
	logger.Info("match started", "match", st.MatchID, "seed", st.Seed,
		"board", fmt.Sprintf("%dx%d", st.Width, st.Height), "units", len(st.Units))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	steps := 0
	err = match.Simulate(ctx, flagTurns, func(step ai.Step) {
		steps++
		logStep(logger, step)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	res := match.Result()
	logger.Info("match finished", "winner", res.Winner, "reason", res.Reason,
		"turns", res.Turns, "steps", steps)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Match %s (seed %d)\n", res.MatchID, res.Seed)
	fmt.Fprintf(out, "  Winner:  %s\n", res.Winner)
	fmt.Fprintf(out, "  Reason:  %s\n", res.Reason)
	fmt.Fprintf(out, "  Turns:   %s\n", humanize.Comma(int64(res.Turns)))
	fmt.Fprintf(out, "  Score:   BLUE %d  RED %d\n", res.BlueScore, res.RedScore)
	fmt.Fprintf(out, "  Steps:   %s\n", humanize.Comma(int64(steps)))

	if !flagRecord {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.SaveMatch(storage.MatchFromResult(res)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Recorded in %s\n", flagDBPath)
	return nil
}

// logStep writes one planner step at debug level.
func logStep(logger *log.Logger, step ai.Step) {
	if step.Action == ai.ActionEndTurn {
		logger.Debug("end turn", "side", step.Side)
		return
	}

	kv := []any{"side", step.Side, "unit", step.UnitID, "type", step.UnitType,
		"action", step.Action, "from", step.From, "to", step.To}
	if step.Attacked() {
		kv = append(kv, "target", step.Target, "damage", step.Result.Damage,
			"killed", step.Result.Killed)
	}
	logger.Debug("step", kv...)
}
