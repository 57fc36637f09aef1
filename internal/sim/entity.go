package sim

import (
	"time"

	"github.com/vovakirdan/flapper/internal/core"
)

// Actor is the player-controlled entity. X is fixed for the whole session.
type Actor struct {
	X, Y          float64
	Width, Height float64
	Velocity      float64
	Rotation      float64 // display only, derived from Velocity
	Flap          float64 // wing animation phase, decays from 1 to 0
}

// Bounds returns the actor's visual bounding box.
func (a Actor) Bounds() core.Rect {
	return core.NewRect(a.X, a.Y, a.Width, a.Height)
}

// Obstacle is a pipe pair with a vertical gap between the two halves.
type Obstacle struct {
	ID        int // spawn sequence number, increasing left to right
	X         float64
	Width     float64
	GapTop    float64
	GapHeight float64
	Scored    bool
}

// GapBottom returns the y coordinate where the lower pipe begins.
func (o Obstacle) GapBottom() float64 {
	return o.GapTop + o.GapHeight
}

// Right returns the trailing (right) edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// TopRect returns the collision rectangle of the upper pipe.
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.GapTop)
}

// BottomRect returns the collision rectangle of the lower pipe.
func (o Obstacle) BottomRect(playfieldH float64) core.Rect {
	bottom := o.GapBottom()
	return core.NewRect(o.X, bottom, o.Width, playfieldH-bottom)
}

// Particle is a short-lived cosmetic dot.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    int
	MaxLife int
	Alpha   float64
	Color   core.Color
}

// State is one complete game session. Step never mutates its input State;
// the slices of the returned State are fresh copies.
type State struct {
	Mode           Mode
	Score          int
	Tick           int           // ticks simulated while Playing
	SpawnTimer     time.Duration // accumulated delta since the last spawn
	NextObstacleID int
	Actor          Actor
	Obstacles      []Obstacle // insertion order == spawn order == screen order
	Particles      []Particle
}

func (s State) clone() State {
	out := s
	out.Obstacles = append([]Obstacle(nil), s.Obstacles...)
	out.Particles = append([]Particle(nil), s.Particles...)
	return out
}
