// hexfront is a turn-based hex-grid battle game for the terminal.
//
// Usage:
//
//	hexfront list              - List available modes
//	hexfront play [mode]       - Play a mode (default: hexfront)
//	hexfront menu              - Start menu to pick modes interactively
//	hexfront serve             - Start SSH server for remote play
//	hexfront simulate          - Run a CPU vs CPU match headless
//	hexfront history           - Show recorded matches
//	hexfront scenario          - Print or validate the scenario config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set map seed for reproducible boards
//	--dice-seed <value>   - Set combat dice seed (default: fresh each match)
//	--db <path>           - Set database path (default: ~/.hexfront/matches.db)
//	--config <path>       - Scenario YAML to load instead of the defaults
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write logs to a file while the TUI is running
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexfront/internal/config"
	"github.com/vovakirdan/hexfront/internal/games/hexfront"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDiceSeed int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

// scenario is the configuration loaded before any subcommand runs.
var scenario config.Scenario

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexfront",
	Short: "Hexfront - turn-based hex battles in your terminal",
	Long: `Hexfront is a two-sided, turn-based battle on a hex grid.
Move infantry, machine guns, artillery and engineers, dig trenches,
and take the enemy HQ or wipe out their army.

Available commands:
  list      - Show all available modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  simulate  - Run a CPU vs CPU match without a UI
  history   - View recorded matches
  scenario  - Print or validate the scenario config

Examples:
  hexfront play
  hexfront play hexfront_hotseat
  hexfront menu --seed 42
  hexfront simulate --seed 42 --dice-seed 7 --turns 100
  hexfront serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Map seed (0 = scenario seed, then time)")
	rootCmd.PersistentFlags().Int64Var(&flagDiceSeed, "dice-seed", 0, "Combat dice seed (0 = scenario dice_seed, then time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexfront/matches.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a scenario YAML file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while the TUI owns the terminal")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scenarioCmd)
}

// setup loads the scenario and hands it to the game package.
func setup(_ *cobra.Command, _ []string) error {
	scn, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDiceSeed != 0 {
		scn.Rules.DiceSeed = flagDiceSeed
	}
	scenario = scn
	hexfront.SetScenario(scn)
	return nil
}

// newLogger builds a charm logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// tuiLogger returns the logger used while Bubble Tea owns the terminal.
// Without --log-file, logs are dropped. The returned closer is never nil.
func tuiLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		l, err := newLogger(io.Discard, "")
		return l, func() {}, err
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	l, err := newLogger(f, "hexfront")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
