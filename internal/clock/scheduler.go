package clock

// Scheduler tracks whether the tick loop should be running. Every Arm starts
// a new generation; tick messages carry the generation they were scheduled
// under and are dropped by Accept once it is stale. This stops a timer that
// was already in flight when the game paused from resuming the loop twice.
type Scheduler struct {
	gen   uint64
	armed bool
}

// Arm starts a new generation and returns it.
func (s *Scheduler) Arm() uint64 {
	s.gen++
	s.armed = true
	return s.gen
}

// Disarm stops the loop. Outstanding ticks become stale.
func (s *Scheduler) Disarm() {
	s.armed = false
	s.gen++
}

// Armed reports whether the loop is running.
func (s *Scheduler) Armed() bool {
	return s.armed
}

// Gen returns the current generation.
func (s *Scheduler) Gen() uint64 {
	return s.gen
}

// Accept reports whether a tick scheduled under gen should run.
func (s *Scheduler) Accept(gen uint64) bool {
	return s.armed && gen == s.gen
}
