// flapper is a terminal side-scroller: flap between the pipes for as long as
// you can.
//
// Usage:
//
//	flapper play             - Play in this terminal
//	flapper scores           - Show the leaderboard
//	flapper stats            - Show high score, games played and streaks
//	flapper serve            - Start SSH server for remote play
//	flapper config print     - Print the effective configuration
//	flapper config validate  - Check a configuration file
//	flapper simulate         - Run the game headless with scripted input
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.flapper/scores.db)
//	--config <path>      - Use a YAML or TOML game config
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/session"
	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapper",
	Short: "Flapper - keep the bird in the air",
	Long: `Flapper is a terminal side-scroller. Flap to stay airborne, fly through
the gaps between the pipes, and don't touch the ceiling.

Available commands:
  play      - Play in this terminal
  scores    - View the leaderboard
  stats     - View high score, games played and streaks
  serve     - Start SSH server for remote play
  config    - Print or validate game configuration
  simulate  - Run a headless game with scripted flaps

Examples:
  flapper play
  flapper play --name ada --sound
  flapper serve --ssh :2222
  flapper simulate --ticks 600 --flap-every 20 --seed 7`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flapper/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML game config")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the command logger. An unknown level falls back to info.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "flapper",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads and validates the game config, exiting on failure.
func loadConfig(logger *log.Logger) config.FlappyConfig {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		logger.Error("config load failed", "source", source, "err", err)
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", "source", source)

	if err := config.Validate(cfg); err != nil {
		logger.Error("config rejected", "source", source)
		fmt.Fprintf(os.Stderr, "Invalid config (%s):\n", source)
		for _, p := range config.Problems(err) {
			fmt.Fprintf(os.Stderr, "  %s\n", p)
		}
		os.Exit(1)
	}
	return cfg
}

// statsStore is a session.Stats that can be released.
type statsStore interface {
	session.Stats
	Close() error
}

// openStats opens the scores database. When it cannot be opened the game
// still runs, keeping scores in memory.
func openStats(logger *log.Logger) statsStore {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, keeping scores in memory", "path", flagDBPath, "err", err)
		return storage.NewMemory()
	}
	return store
}

// runtimeConfig describes the host terminal. A zero seed picks one from the
// current time.
func runtimeConfig(width, height int) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if width > 0 && height > 0 {
		rc.ScreenW, rc.ScreenH = width, height
	}
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	rc.Seed = flagSeed
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	return rc
}
