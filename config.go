package main

import "time"

// Config carries every tunable of the server. Defaults mirror the
// reference setup; main overrides individual fields from flags.
type Config struct {
	UDPAddr  string `json:"udp_addr"`
	HTTPAddr string `json:"http_addr"`

	MaxPlayers  int     `json:"max_players"`
	WorldWidth  float64 `json:"world_width"`
	WorldHeight float64 `json:"world_height"`
	PlayerSize  float64 `json:"player_size"`

	Gravity      float64 `json:"gravity"`
	Friction     float64 `json:"friction"`
	Accel        float64 `json:"accel"`
	JumpImpulse  float64 `json:"jump_impulse"`
	DefaultColor uint8   `json:"default_color"`

	// TickInterval is the simulation period. Overruns are not caught up:
	// the ticker coalesces missed ticks and the loop simply resumes.
	TickInterval time.Duration `json:"tick_interval"`

	// PlayerTimeout is how long a player may stay silent before being
	// dropped. Zero disables reaping.
	PlayerTimeout time.Duration `json:"player_timeout"`

	MaxDatagramSize int `json:"max_datagram_size"`

	DBPath  string `json:"db_path"`
	LogFile string `json:"log_file"`

	AdminPassword string `json:"-"` // never serialized
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() *Config {
	return &Config{
		UDPAddr:         "127.0.0.1:9000",
		HTTPAddr:        ":8080",
		MaxPlayers:      10,
		WorldWidth:      300,
		WorldHeight:     200,
		PlayerSize:      10,
		Gravity:         1.0,
		Friction:        0.8,
		Accel:           1.0,
		JumpImpulse:     10.0,
		DefaultColor:    ColorRed,
		TickInterval:    16 * time.Millisecond,
		PlayerTimeout:   30 * time.Second,
		MaxDatagramSize: 2048,
	}
}
