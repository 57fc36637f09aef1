package sim

import "github.com/vovakirdan/flapper/internal/core"

// HitKind says what the actor ran into.
type HitKind int

const (
	HitNone HitKind = iota
	HitCeiling
	HitObstacle
)

// Hit is the outcome of a collision check.
type Hit struct {
	Kind       HitKind
	ObstacleID int // set for HitObstacle
}

// Hitbox returns the actor's collision box: the visual box shrunk by inset on
// every side.
func Hitbox(a Actor, inset float64) core.Rect {
	return a.Bounds().Inset(inset)
}

// Detect tests the actor against every obstacle in order, then against the
// ceiling, and reports the first hit. Floor contact is not a hit.
func Detect(a Actor, obstacles []Obstacle, inset, playfieldH float64) Hit {
	box := Hitbox(a, inset)
	for _, ob := range obstacles {
		if core.Overlap(box, ob.TopRect()) || core.Overlap(box, ob.BottomRect(playfieldH)) {
			return Hit{Kind: HitObstacle, ObstacleID: ob.ID}
		}
	}
	if a.Y < 0 {
		return Hit{Kind: HitCeiling}
	}
	return Hit{Kind: HitNone}
}
