package sim

import "time"

// SpawnGapTop draws the top of a new gap uniformly from
// [margin, playfieldH - gapHeight - margin), so the whole gap and both
// margins are on screen.
func SpawnGapTop(r Rand, playfieldH, gapHeight, margin float64) float64 {
	lo := margin
	hi := playfieldH - gapHeight - margin
	return lo + r.Float64()*(hi-lo)
}

// updateObstacles runs the obstacle manager for one tick: accumulate the
// spawn timer, spawn at the right edge when the interval is exceeded, move
// every obstacle left and prune the ones far enough past the left edge.
//
// The timer is zeroed on spawn, so overshoot is discarded. Movement is a
// fixed per-tick step and does not scale with dt, while the spawn timer
// does.
func (s *Sim) updateObstacles(st *State, dt time.Duration) {
	o := s.cfg.Obstacles

	st.SpawnTimer += dt
	if st.SpawnTimer > o.SpawnInterval {
		st.Obstacles = append(st.Obstacles, s.spawnObstacle(st))
		st.SpawnTimer = 0
	}

	st.Obstacles = AdvanceObstacles(st.Obstacles, o.Speed, o.PruneDistance)
}

func (s *Sim) spawnObstacle(st *State) Obstacle {
	o := s.cfg.Obstacles
	ob := Obstacle{
		ID:        st.NextObstacleID,
		X:         s.cfg.Playfield.Width,
		Width:     o.Width,
		GapTop:    SpawnGapTop(s.gaps, s.cfg.Playfield.Height, o.GapHeight, o.Margin),
		GapHeight: o.GapHeight,
	}
	st.NextObstacleID++
	return ob
}

// AdvanceObstacles moves every obstacle left by speed and drops those whose
// right edge is no longer beyond -pruneDistance. Order is preserved and the
// input slice is reused.
func AdvanceObstacles(obs []Obstacle, speed, pruneDistance float64) []Obstacle {
	kept := obs[:0]
	for _, ob := range obs {
		ob.X -= speed
		if ob.Right() > -pruneDistance {
			kept = append(kept, ob)
		}
	}
	return kept
}
