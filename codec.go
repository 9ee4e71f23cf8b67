package main

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrSnapshotTooLarge means the encoded snapshot would not fit in a
// single datagram. The broadcast for that tick is aborted rather than
// truncated.
var ErrSnapshotTooLarge = errors.New("encoded snapshot exceeds datagram size limit")

// Codec translates between wire bytes and in-memory messages. It is
// stateless apart from the datagram size ceiling.
type Codec struct {
	maxDatagram int
}

// NewCodec creates a Codec with the given datagram size ceiling.
func NewCodec(maxDatagram int) *Codec {
	return &Codec{maxDatagram: maxDatagram}
}

// DecodeCommands parses an inbound command batch. Malformed or
// truncated input fails cleanly; the caller drops the datagram.
func (c *Codec) DecodeCommands(buf []byte) ([]uint8, error) {
	var batch CommandBatch
	if err := msgpack.Unmarshal(buf, &batch); err != nil {
		return nil, fmt.Errorf("decode command batch: %w", err)
	}
	return batch.Cmds, nil
}

// EncodeSnapshot serializes the full player list into one message.
func (c *Codec) EncodeSnapshot(tick uint64, players []PlayerState) ([]byte, error) {
	data, err := msgpack.Marshal(&Snapshot{Tick: tick, Players: players})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if len(data) > c.maxDatagram {
		return nil, fmt.Errorf("%w: %d > %d bytes", ErrSnapshotTooLarge, len(data), c.maxDatagram)
	}
	return data, nil
}
