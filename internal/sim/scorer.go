package sim

// scorePassed marks every unscored obstacle whose right edge is strictly left
// of the actor's x as scored and adds one point for each. The Scored flag
// makes repeated evaluation on later ticks a no-op.
func (s *Sim) scorePassed(st *State, events []Event) []Event {
	for i := range st.Obstacles {
		ob := &st.Obstacles[i]
		if ob.Scored || ob.Right() >= st.Actor.X {
			continue
		}
		ob.Scored = true
		st.Score++
		cx, cy := st.Actor.Bounds().Center()
		events = append(events, Event{Kind: EventScore, X: cx, Y: cy, Score: st.Score})
	}
	return events
}
