package main

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewPlayerDefaults(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayer(fakeAddr("1.2.3.4:5678"), cfg, time.Now())

	if p.X != 0 || p.Y != 0 || p.VX != 0 || p.VY != 0 {
		t.Errorf("expected zero position/velocity, got (%f,%f) (%f,%f)", p.X, p.Y, p.VX, p.VY)
	}
	if p.Accel != cfg.Accel {
		t.Errorf("expected accel %f, got %f", cfg.Accel, p.Accel)
	}
	if p.JumpImpulse != cfg.JumpImpulse {
		t.Errorf("expected jump impulse %f, got %f", cfg.JumpImpulse, p.JumpImpulse)
	}
	if p.Color != cfg.DefaultColor {
		t.Errorf("expected default color %d, got %d", cfg.DefaultColor, p.Color)
	}
	if p.ID == "" {
		t.Error("expected a session id")
	}
}

func TestPlayerApply(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayer(fakeAddr("1.2.3.4:1"), cfg, time.Now())

	p.Apply(CmdMoveRight)
	p.Apply(CmdMoveRight)
	if !almostEqual(p.VX, 2*cfg.Accel) {
		t.Errorf("expected vx %f, got %f", 2*cfg.Accel, p.VX)
	}
	p.Apply(CmdMoveLeft)
	if !almostEqual(p.VX, cfg.Accel) {
		t.Errorf("expected vx %f, got %f", cfg.Accel, p.VX)
	}
	p.Apply(CmdJump)
	if !almostEqual(p.VY, -cfg.JumpImpulse) {
		t.Errorf("expected vy %f, got %f", -cfg.JumpImpulse, p.VY)
	}

	before := p.VX
	p.Apply(99) // unrecognized, ignored
	if p.VX != before {
		t.Error("unrecognized command must not change state")
	}
}

// Velocity updates before position: a mid-air player that jumps
// integrates the post-gravity velocity.
func TestPlayerStepVelocityBeforePosition(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayer(fakeAddr("1.2.3.4:1"), cfg, time.Now())
	p.X, p.Y = 50, 100
	p.Apply(CmdJump)
	p.Step(cfg)

	if !almostEqual(p.VY, -cfg.JumpImpulse+cfg.Gravity) {
		t.Errorf("expected vy %f, got %f", -cfg.JumpImpulse+cfg.Gravity, p.VY)
	}
	if !almostEqual(p.Y, 100-cfg.JumpImpulse+cfg.Gravity) {
		t.Errorf("expected y %f, got %f", 100-cfg.JumpImpulse+cfg.Gravity, p.Y)
	}
}

// Reference scenario: gravity 1.0, friction 0.8, jump 10.0. A jump
// from the origin drives y to -9, which clamps back to 0 with the
// vertical velocity zeroed.
func TestPlayerStepJumpFromTopEdge(t *testing.T) {
	cfg := DefaultConfig()
	p := NewPlayer(fakeAddr("1.2.3.4:1"), cfg, time.Now())

	p.Apply(CmdJump)
	p.Step(cfg)

	if p.Y != 0 {
		t.Errorf("expected y clamped to 0, got %f", p.Y)
	}
	if p.VY != 0 {
		t.Errorf("expected vy reset to 0, got %f", p.VY)
	}
	if p.X != 0 || p.VX != 0 {
		t.Errorf("horizontal state should be untouched, got x=%f vx=%f", p.X, p.VX)
	}
}

// Once resting on a bound with zero velocity on that axis, further
// ticks with no input leave the player exactly where it is.
func TestPlayerStepClampIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	maxY := cfg.WorldHeight - cfg.PlayerSize

	p := NewPlayer(fakeAddr("1.2.3.4:1"), cfg, time.Now())
	p.Y = maxY

	for i := 0; i < 5; i++ {
		p.Step(cfg)
		if p.Y != maxY || p.VY != 0 {
			t.Fatalf("step %d: expected y=%f vy=0, got y=%f vy=%f", i, maxY, p.Y, p.VY)
		}
		if p.X != 0 || p.VX != 0 {
			t.Fatalf("step %d: horizontal state drifted: x=%f vx=%f", i, p.X, p.VX)
		}
	}
}

func TestPlayerStepClampHorizontal(t *testing.T) {
	cfg := DefaultConfig()
	maxX := cfg.WorldWidth - cfg.PlayerSize

	p := NewPlayer(fakeAddr("1.2.3.4:1"), cfg, time.Now())
	p.X = maxX - 1
	p.VX = 10
	p.Step(cfg)
	if p.X != maxX {
		t.Errorf("expected x clamped to %f, got %f", maxX, p.X)
	}
	if p.VX != 0 {
		t.Errorf("expected vx reset to 0, got %f", p.VX)
	}

	p.X = 1
	p.VX = -10
	p.Step(cfg)
	if p.X != 0 || p.VX != 0 {
		t.Errorf("expected left clamp to (0,0), got x=%f vx=%f", p.X, p.VX)
	}
}

// Horizontal velocity follows the friction recurrence
// v' = (v + accel*(rights-lefts)) * friction exactly.
func TestPlayerFrictionRecurrence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldWidth = 1e6 // keep the run clear of the bounds
	cfg.Gravity = 0

	p := NewPlayer(fakeAddr("1.2.3.4:1"), cfg, time.Now())
	p.X = 1000

	want := 0.0
	for tick := 0; tick < 50; tick++ {
		rights := tick % 3
		lefts := (tick * 7) % 2
		for i := 0; i < rights; i++ {
			p.Apply(CmdMoveRight)
		}
		for i := 0; i < lefts; i++ {
			p.Apply(CmdMoveLeft)
		}
		p.Step(cfg)

		want = (want + cfg.Accel*float64(rights-lefts)) * cfg.Friction
		if !almostEqual(p.VX, want) {
			t.Fatalf("tick %d: expected vx %.12f, got %.12f", tick, want, p.VX)
		}
	}
}
