package clock

import (
	"testing"
	"time"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) now() time.Time { return f.t }

func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestMeasuredFirstDeltaIsZero(t *testing.T) {
	f := &fakeNow{t: time.Unix(1000, 0)}
	c := NewMeasuredFunc(f.now)

	if d := c.Delta(); d != 0 {
		t.Errorf("first delta = %v, want 0", d)
	}
	f.advance(16 * time.Millisecond)
	if d := c.Delta(); d != 16*time.Millisecond {
		t.Errorf("delta = %v, want 16ms", d)
	}
	f.advance(20 * time.Millisecond)
	if d := c.Delta(); d != 20*time.Millisecond {
		t.Errorf("delta = %v, want 20ms", d)
	}
}

func TestMeasuredResetSkipsGap(t *testing.T) {
	f := &fakeNow{t: time.Unix(1000, 0)}
	c := NewMeasuredFunc(f.now)
	c.Delta()

	f.advance(time.Minute)
	c.Reset()
	if d := c.Delta(); d != 0 {
		t.Errorf("delta after reset = %v, want 0", d)
	}
	f.advance(time.Millisecond)
	if d := c.Delta(); d != time.Millisecond {
		t.Errorf("delta = %v, want 1ms", d)
	}
}

func TestMeasuredIgnoresBackwardsTime(t *testing.T) {
	f := &fakeNow{t: time.Unix(1000, 0)}
	c := NewMeasuredFunc(f.now)
	c.Delta()

	f.advance(-time.Second)
	if d := c.Delta(); d != 0 {
		t.Errorf("delta = %v, want 0", d)
	}
}

func TestFixed(t *testing.T) {
	var c Clock = Fixed(16 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if d := c.Delta(); d != 16*time.Millisecond {
			t.Fatalf("delta = %v", d)
		}
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}
	for _, tt := range tests {
		if got := Interval(tt.rate); got != tt.want {
			t.Errorf("Interval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestSchedulerDropsStaleTicks(t *testing.T) {
	var s Scheduler
	if s.Accept(0) {
		t.Fatal("unarmed scheduler accepted a tick")
	}

	g1 := s.Arm()
	if !s.Accept(g1) {
		t.Fatal("current generation rejected")
	}

	s.Disarm()
	if s.Accept(g1) || s.Armed() {
		t.Fatal("disarmed scheduler accepted a tick")
	}

	g2 := s.Arm()
	if s.Accept(g1) {
		t.Error("stale generation accepted after re-arm")
	}
	if !s.Accept(g2) || s.Gen() != g2 {
		t.Error("new generation rejected")
	}
}
