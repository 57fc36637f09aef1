// Package session owns a single play-through. The Driver holds the
// simulation state, queues input between ticks, advances the simulation and
// performs the persistence side effects of a finished game.
package session

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/flapper/internal/clock"
	"github.com/vovakirdan/flapper/internal/config"
	"github.com/vovakirdan/flapper/internal/core"
	"github.com/vovakirdan/flapper/internal/sim"
	"github.com/vovakirdan/flapper/internal/storage"
)

// Stats is the persistence collaborator. It is only written to when a game
// ends.
type Stats interface {
	HighScore() (int, error)
	SetHighScore(score int) error
	IncrementGamesPlayed() (int, error)
	RecordStreak(score int) (storage.Summary, error)
	Summary() (storage.Summary, error)
	AppendEntry(name string, score int, at time.Time) (storage.Entry, int, error)
	RenameEntry(id, name string) error
	Leaderboard() ([]storage.Entry, error)
}

// EventSink receives every event the simulation emits, after the driver has
// handled it.
type EventSink interface {
	HandleEvent(ev sim.Event)
}

// Options configures a Driver.
type Options struct {
	Config config.FlappyConfig
	Seed   int64
	Stats  Stats       // nil keeps everything in memory
	Clock  clock.Clock // nil uses the wall clock
	Logger *log.Logger // nil discards
	Player string      // name recorded on the leaderboard
	Sinks  []EventSink
	Now    func() time.Time
}

// Result describes the game that just ended.
type Result struct {
	Score   int
	NewHigh bool
	Entry   storage.Entry
	Rank    int // 1-based leaderboard position, 0 if off the board
	Summary storage.Summary
}

// Driver runs one session.
type Driver struct {
	id       string
	sim      *sim.Sim
	state    sim.State
	pending  core.InputFrame
	stats    Stats
	degraded bool
	clock    clock.Clock
	log      *log.Logger
	player   string
	sinks    []EventSink
	now      func() time.Time

	summary storage.Summary
	board   []storage.Entry
	last    *Result
}

// New validates the configuration and builds a driver in Menu mode. An
// invalid configuration is returned as an error; the game can never start
// with one.
func New(opts Options) (*Driver, error) {
	s, err := sim.NewSeeded(opts.Config, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	d := &Driver{
		id:      uuid.New().String(),
		sim:     s,
		pending: core.NewInputFrame(),
		stats:   opts.Stats,
		clock:   opts.Clock,
		log:     opts.Logger,
		player:  storage.NormalizeName(opts.Player),
		sinks:   opts.Sinks,
		now:     opts.Now,
	}
	if d.stats == nil {
		d.stats = storage.NewMemory()
	}
	if d.clock == nil {
		d.clock = clock.NewMeasured()
	}
	if d.log == nil {
		d.log = log.New(io.Discard)
	}
	if d.now == nil {
		d.now = time.Now
	}
	d.state = s.NewState()

	d.persist("load stats", func() error {
		sum, err := d.stats.Summary()
		if err == nil {
			d.summary = sum
		}
		return err
	})
	d.refreshBoard()

	return d, nil
}

// ID returns the session identifier.
func (d *Driver) ID() string { return d.id }

// Player returns the name recorded on the leaderboard.
func (d *Driver) Player() string { return d.player }

// State returns the current state.
func (d *Driver) State() sim.State { return d.state }

// Mode returns the current mode.
func (d *Driver) Mode() sim.Mode { return d.state.Mode }

// Snapshot returns a read-only copy of the state for drawing.
func (d *Driver) Snapshot() sim.Snapshot { return d.sim.Snapshot(d.state) }

// Summary returns the last known counters.
func (d *Driver) Summary() storage.Summary { return d.summary }

// Leaderboard returns the last known leaderboard.
func (d *Driver) Leaderboard() []storage.Entry {
	return append([]storage.Entry(nil), d.board...)
}

// LastResult returns the most recently finished game.
func (d *Driver) LastResult() (Result, bool) {
	if d.last == nil {
		return Result{}, false
	}
	return *d.last, true
}

// Degraded reports whether persistence failed and the session fell back to
// memory.
func (d *Driver) Degraded() bool { return d.degraded }

// Queue records an action for the next tick. Repeated actions within one
// tick collapse into one.
func (d *Driver) Queue(a core.Action) {
	d.pending.Set(a)
}

// Advance runs one tick using the driver's clock. Outside Playing the clock
// is not read, so idle time never reaches the simulation.
func (d *Driver) Advance() []sim.Event {
	var dt time.Duration
	if d.state.Mode == sim.ModePlaying {
		dt = d.clock.Delta()
	}
	return d.Tick(dt)
}

// Tick consumes the queued input and advances the simulation by dt.
func (d *Driver) Tick(dt time.Duration) []sim.Event {
	in := d.pending.Clone()
	d.pending.Clear()

	var events []sim.Event
	d.state, events = d.sim.Step(d.state, in, dt)

	for _, ev := range events {
		if ev.Kind == sim.EventModeChanged {
			d.modeChanged(ev)
		}
		for _, sink := range d.sinks {
			sink.HandleEvent(ev)
		}
	}
	return events
}

func (d *Driver) modeChanged(ev sim.Event) {
	switch {
	case ev.GameOver():
		d.finish(ev.Score)
	case ev.To == sim.ModePlaying:
		d.clock.Reset()
		d.clock.Delta()
		if ev.From != sim.ModePaused {
			d.last = nil
		}
	}
}

// finish records a completed game.
func (d *Driver) finish(score int) {
	res := Result{Score: score}

	// Each successful write is mirrored into d.summary and d.board, so a
	// failure further down seeds the memory store with current values.
	if score > d.summary.HighScore {
		res.NewHigh = true
		d.persist("set high score", func() error {
			err := d.stats.SetHighScore(score)
			if err == nil {
				d.summary.HighScore = score
			}
			return err
		})
	}
	d.persist("increment games played", func() error {
		n, err := d.stats.IncrementGamesPlayed()
		if err == nil {
			d.summary.GamesPlayed = n
		}
		return err
	})
	d.persist("record streak", func() error {
		sum, err := d.stats.RecordStreak(score)
		if err == nil {
			d.summary.BestStreak, d.summary.CurrentStreak = sum.BestStreak, sum.CurrentStreak
		}
		return err
	})
	d.persist("append leaderboard entry", func() error {
		e, rank, err := d.stats.AppendEntry(d.player, score, d.now())
		if err == nil {
			res.Entry, res.Rank = e, rank
			d.board = append(append([]storage.Entry(nil), d.board...), e)
		}
		return err
	})
	d.persist("load stats", func() error {
		sum, err := d.stats.Summary()
		if err == nil {
			d.summary = sum
		}
		return err
	})
	d.refreshBoard()

	res.Summary = d.summary
	d.last = &res

	d.log.Info("game over",
		"session", d.id,
		"player", d.player,
		"score", score,
		"high", d.summary.HighScore,
		"games", d.summary.GamesPlayed,
		"rank", res.Rank,
	)
}

// Rename changes the name on the last game's leaderboard entry.
func (d *Driver) Rename(name string) error {
	if d.last == nil || d.last.Entry.ID == "" {
		return fmt.Errorf("session: no finished game to rename")
	}
	name = storage.NormalizeName(name)
	id := d.last.Entry.ID
	d.persist("rename entry", func() error {
		return d.stats.RenameEntry(id, name)
	})
	d.last.Entry.Name = name
	d.refreshBoard()
	return nil
}

func (d *Driver) refreshBoard() {
	d.persist("load leaderboard", func() error {
		board, err := d.stats.Leaderboard()
		if err == nil {
			d.board = board
		}
		return err
	})
}

// persist runs op against the stats collaborator. The first failure swaps
// the collaborator for an in-memory store seeded with the last known values
// and retries op there, so a broken database never ends the session.
func (d *Driver) persist(what string, op func() error) {
	err := op()
	if err == nil {
		return
	}
	if d.degraded {
		d.log.Error("in-memory stats failed", "op", what, "err", err)
		return
	}
	d.log.Warn("persistence failed, keeping scores in memory", "op", what, "err", err)
	d.degraded = true
	d.stats = storage.NewMemoryFrom(d.summary, d.board)
	if err := op(); err != nil {
		d.log.Error("in-memory stats failed", "op", what, "err", err)
	}
}
