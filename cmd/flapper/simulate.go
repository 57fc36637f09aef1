package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/clock"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/session"
	"github.com/vovakirdan/flapper/internal/sim"
	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagTicks     int
	flagFlapEvery int
	flagDT        time.Duration
	flagRecord    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game with scripted flaps",
	Long: `Run the game without a terminal. The bird flaps every --flap-every
ticks and each tick advances the game by --dt. The run stops at game over or
after --ticks ticks.

The same seed, flap schedule and dt always produce the same result.

Examples:
  flapper simulate --seed 7
  flapper simulate --ticks 3600 --flap-every 18 --seed 42
  flapper simulate --dt 33ms --record --name bot`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 1800, "Maximum ticks to simulate")
	simulateCmd.Flags().IntVar(&flagFlapEvery, "flap-every", 20, "Flap every N ticks (0 = never)")
	simulateCmd.Flags().DurationVar(&flagDT, "dt", 16*time.Millisecond, "Time step per tick")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the result to the scores database")
	simulateCmd.Flags().StringVar(&flagName, "name", "", "Name recorded on the leaderboard")
}

// simReport summarizes a headless run.
type simReport struct {
	Ticks  int
	Score  int
	Mode   sim.Mode
	Events map[sim.EventKind]int
	Result session.Result
	Ended  bool
}

// runHeadless starts a game on d and advances it tick by tick, flapping on
// a fixed schedule. d should use a fixed clock for the run to be repeatable.
func runHeadless(d *session.Driver, ticks, flapEvery int) simReport {
	rep := simReport{Events: make(map[sim.EventKind]int)}
	count := func(events []sim.Event) {
		for _, ev := range events {
			rep.Events[ev.Kind]++
		}
	}

	d.Queue(core.ActionConfirm)
	count(d.Tick(0))

	for i := 1; i <= ticks && d.Mode() == sim.ModePlaying; i++ {
		if flapEvery > 0 && i%flapEvery == 0 {
			d.Queue(core.ActionTrigger)
		}
		count(d.Advance())
	}

	st := d.State()
	rep.Ticks = st.Tick
	rep.Score = st.Score
	rep.Mode = st.Mode
	rep.Result, rep.Ended = d.LastResult()
	return rep
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)
	cfg := loadConfig(logger)
	rc := runtimeConfig(0, 0)

	var stats statsStore = storage.NewMemory()
	if flagRecord {
		stats = openStats(logger)
	}
	defer stats.Close()

	name := flagName
	if name == "" {
		name = "simulate"
	}

	d, err := session.New(session.Options{
		Config: cfg,
		Seed:   rc.Seed,
		Stats:  stats,
		Clock:  clock.Fixed(flagDT),
		Logger: logger,
		Player: name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	rep := runHeadless(d, flagTicks, flagFlapEvery)

	fmt.Printf("Seed:       %d\n", rc.Seed)
	fmt.Printf("Ticks:      %d\n", rep.Ticks)
	fmt.Printf("Score:      %d\n", rep.Score)
	fmt.Printf("Final mode: %s\n", rep.Mode)
	fmt.Printf("Flaps: %d  Bounces: %d  Pipes passed: %d\n",
		rep.Events[sim.EventFlap], rep.Events[sim.EventBounce], rep.Events[sim.EventScore])
	if rep.Ended {
		fmt.Print("Game over")
		if rep.Result.Rank > 0 {
			fmt.Printf(", rank #%d", rep.Result.Rank)
		}
		if rep.Result.NewHigh {
			fmt.Print(" (new high score)")
		}
		fmt.Println()
	}
}
