package sim

import (
	"testing"

	"github.com/vovakirdan/flapper/internal/core"
)

func defaultPhysics() PhysicsParams {
	return PhysicsParams{
		Gravity:        0.25,
		FlapForce:      -6,
		MaxVelocity:    6,
		BounceVelocity: -3,
		RotationFactor: 0.05,
		RotationMax:    0.5,
		FloorY:         600,
	}
}

func TestIntegrateMovesBeforeAccelerating(t *testing.T) {
	a := Actor{Y: 100, Height: 40, Velocity: 2}
	a, bounced := Integrate(a, false, defaultPhysics())

	if bounced {
		t.Fatal("unexpected bounce")
	}
	if a.Y != 102 {
		t.Errorf("expected y 102, got %v", a.Y)
	}
	if a.Velocity != 2.25 {
		t.Errorf("expected velocity 2.25, got %v", a.Velocity)
	}
}

func TestIntegrateClampsDownwardOnly(t *testing.T) {
	ph := defaultPhysics()

	a, _ := Integrate(Actor{Y: 100, Height: 40, Velocity: 5.9}, false, ph)
	if a.Velocity != ph.MaxVelocity {
		t.Errorf("expected clamp to %v, got %v", ph.MaxVelocity, a.Velocity)
	}

	a, _ = Integrate(Actor{Y: 100, Height: 40, Velocity: -10}, false, ph)
	if a.Velocity != -9.75 {
		t.Errorf("upward velocity should not be clamped, got %v", a.Velocity)
	}
}

func TestIntegrateFlap(t *testing.T) {
	a, _ := Integrate(Actor{Y: 100, Height: 40, Velocity: 5}, true, defaultPhysics())

	if a.Velocity != -6 {
		t.Errorf("expected flap velocity -6, got %v", a.Velocity)
	}
	if a.Flap != 1 {
		t.Errorf("expected flap animation restarted, got %v", a.Flap)
	}

	for i := 0; i < 20; i++ {
		a, _ = Integrate(a, false, defaultPhysics())
	}
	if a.Flap != 0 {
		t.Errorf("flap animation did not settle: %v", a.Flap)
	}
}

func TestIntegrateRotationFollowsVelocity(t *testing.T) {
	ph := defaultPhysics()

	a, _ := Integrate(Actor{Y: 100, Height: 40, Velocity: 3.75}, false, ph)
	if a.Rotation != 0.2 {
		t.Errorf("expected rotation 0.2, got %v", a.Rotation)
	}

	a, _ = Integrate(Actor{Y: 100, Height: 40, Velocity: -20}, false, ph)
	if a.Rotation != -ph.RotationMax {
		t.Errorf("expected rotation clamped to %v, got %v", -ph.RotationMax, a.Rotation)
	}
}

func TestIntegrateFloorBounce(t *testing.T) {
	ph := defaultPhysics()
	a, bounced := Integrate(Actor{Y: 580, Height: 40, Velocity: 6}, false, ph)

	if !bounced {
		t.Fatal("expected a bounce")
	}
	if a.Y+a.Height != ph.FloorY {
		t.Errorf("actor bottom %v not on the floor", a.Y+a.Height)
	}
	if a.Velocity != ph.BounceVelocity {
		t.Errorf("expected bounce velocity, got %v", a.Velocity)
	}
}

func TestHitboxInset(t *testing.T) {
	box := Hitbox(Actor{X: 150, Y: 300, Width: 50, Height: 40}, 15)
	want := core.NewRect(165, 315, 20, 10)
	if box != want {
		t.Errorf("Hitbox = %+v, want %+v", box, want)
	}
}

func TestDetect(t *testing.T) {
	a := Actor{X: 150, Y: 300, Width: 50, Height: 40}
	through := Obstacle{ID: 1, X: 160, Width: 60, GapTop: 250, GapHeight: 150}
	blocking := Obstacle{ID: 2, X: 160, Width: 60, GapTop: 400, GapHeight: 150}
	grazing := Obstacle{ID: 3, X: 160, Width: 60, GapTop: 315, GapHeight: 150}

	tests := []struct {
		name  string
		actor Actor
		obs   []Obstacle
		want  Hit
	}{
		{"clear", a, nil, Hit{}},
		{"in gap", a, []Obstacle{through}, Hit{}},
		{"top pipe", a, []Obstacle{blocking}, Hit{Kind: HitObstacle, ObstacleID: 2}},
		{"touching edge only", a, []Obstacle{grazing}, Hit{}},
		{"first wins", a, []Obstacle{through, blocking, {ID: 4, X: 160, Width: 60, GapTop: 500, GapHeight: 50}}, Hit{Kind: HitObstacle, ObstacleID: 2}},
		{"ceiling", Actor{X: 150, Y: -1, Width: 50, Height: 40}, nil, Hit{Kind: HitCeiling}},
		{"visual overlap inside inset", a, []Obstacle{{ID: 5, X: 190, Width: 60, GapTop: 0, GapHeight: 600}}, Hit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.actor, tt.obs, 15, 600)
			if got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
