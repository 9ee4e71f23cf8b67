package main

import (
	"net"
	"time"
)

// Player is one connected client's authoritative state. Players are
// keyed by the source address of their datagrams: one player per
// distinct address. Mutated only by the simulation loop.
type Player struct {
	Addr net.Addr
	ID   string // session id, stable while this address entry lives

	X, Y   float64
	VX, VY float64

	Accel       float64
	JumpImpulse float64
	Color       uint8

	LastSeen time.Time
	Commands uint64 // commands applied, recorded with the session

	joinedTick uint64
}

// NewPlayer creates a player with default state: origin, at rest.
func NewPlayer(addr net.Addr, cfg *Config, now time.Time) *Player {
	return &Player{
		Addr:        addr,
		ID:          GenerateUUID(),
		Accel:       cfg.Accel,
		JumpImpulse: cfg.JumpImpulse,
		Color:       cfg.DefaultColor,
		LastSeen:    now,
	}
}

// Apply dispatches one decoded command. Unrecognized commands are
// ignored. Multiple commands in one tick accumulate.
func (p *Player) Apply(cmd uint8) {
	switch cmd {
	case CmdMoveRight:
		p.VX += p.Accel
	case CmdMoveLeft:
		p.VX -= p.Accel
	case CmdJump:
		p.VY -= p.JumpImpulse
	}
	p.Commands++
}

// Step advances the player one physics tick: friction and gravity
// update the velocity, the velocity updates the position, and the
// position is clamped into the world with an inelastic stop at each
// bound (velocity zeroed on the clamped axis, no bounce).
func (p *Player) Step(cfg *Config) {
	p.VX *= cfg.Friction
	p.VY += cfg.Gravity
	p.X += p.VX
	p.Y += p.VY

	maxX := cfg.WorldWidth - cfg.PlayerSize
	maxY := cfg.WorldHeight - cfg.PlayerSize
	if p.X < 0 {
		p.X = 0
		p.VX = 0
	} else if p.X > maxX {
		p.X = maxX
		p.VX = 0
	}
	if p.Y < 0 {
		p.Y = 0
		p.VY = 0
	} else if p.Y > maxY {
		p.Y = maxY
		p.VY = 0
	}
}

// ToState converts to the wire representation.
func (p *Player) ToState() PlayerState {
	return PlayerState{X: p.X, Y: p.Y, Color: p.Color}
}
