package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapper/internal/audio"
	"github.com/vovakirdan/flapper/internal/platform/tui"
	"github.com/vovakirdan/flapper/internal/render"
	"github.com/vovakirdan/flapper/internal/session"
)

var (
	flagName   string
	flagSound  bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W  - Flap (also starts the game from the menu)
  Click       - Flap
  Enter       - Start / play again
  P/Esc       - Pause and resume
  R           - Back to the menu (after game over)
  Tab         - Leaderboard
  Ctrl+S      - Save a screenshot to ~/.flapper/screenshots
  Q/Ctrl+C    - Quit

After a game ends you can type a name for the leaderboard.

Logs are written to ~/.flapper/flapper.log while the game is running.

Examples:
  flapper play
  flapper play --name ada
  flapper play --sound --volume 0.5
  flapper play --config ./my-flappy.toml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Name recorded on the leaderboard (default Anonymous)")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound effect volume (0-1)")
}

func runPlay(_ *cobra.Command, _ []string) {
	dataDir := dataDir()

	// The alt screen owns stdout, so logs go to a file.
	logFile, err := openLogFile(filepath.Join(dataDir, "flapper.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
	}
	var logger *log.Logger
	if logFile != nil {
		defer logFile.Close()
		logger = newLogger(logFile)
	} else {
		logger = newLogger(os.Stderr)
	}

	cfg := loadConfig(logger)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := runtimeConfig(width, height)

	store := openStats(logger)
	defer store.Close()

	opts := session.Options{
		Config: cfg,
		Seed:   rc.Seed,
		Stats:  store,
		Logger: logger,
		Player: flagName,
	}

	if flagSound {
		player := audio.NewPlayer(flagVolume)
		if err := player.Start(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer player.Close()
			opts.Sinks = append(opts.Sinks, player)
		}
	}

	d, err := session.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	assets := render.NewAssets(cfg.Theme)
	if missing := assets.Missing(); len(missing) > 0 {
		logger.Warn("missing glyphs, using placeholders", "assets", missing)
	}

	logger.Info("game started", "session", d.ID(), "player", d.Player(), "seed", rc.Seed)

	runErr := tui.Run(d, tui.Options{
		Assets:        assets,
		TickRate:      rc.TickRate,
		Width:         rc.ScreenW,
		Height:        rc.ScreenH,
		ScreenshotDir: filepath.Join(dataDir, "screenshots"),
		Logger:        logger,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// dataDir is ~/.flapper, or the working directory when there is no home.
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".flapper")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
