package main

// Client -> Server commands, one byte each on the wire
const (
	CmdNone uint8 = iota
	CmdMoveLeft
	CmdMoveRight
	CmdJump
)

// Player appearance tags
const (
	ColorRed uint8 = iota
	ColorGreen
	ColorBlue
	ColorYellow
)

// CommandBatch is the inbound message. A single datagram may carry
// several commands; all of them are attributed to the datagram's
// source address.
type CommandBatch struct {
	Cmds []uint8 `msgpack:"c"`
}

// PlayerState is one player record inside a snapshot
type PlayerState struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Color uint8   `msgpack:"col"`
}

// Snapshot is the outbound message. The same encoded snapshot is
// broadcast to every known player once per tick.
type Snapshot struct {
	Tick    uint64        `msgpack:"t"`
	Players []PlayerState `msgpack:"p"`
}
