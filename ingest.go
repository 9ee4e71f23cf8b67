package main

import (
	"errors"
	"fmt"
	"net"
)

// RunIngest receives datagrams until the socket fails or is closed.
// It runs on its own schedule, decoupled from the tick cadence: a
// decoded batch is appended to the command queue and picked up by the
// next tick's drain. Decode failures drop the datagram; a socket I/O
// error is fatal and terminates the loop.
func (g *Game) RunIngest() error {
	buf := make([]byte, g.cfg.MaxDatagramSize)
	for {
		n, addr, err := g.transport.ReadFrom(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil // shutdown
			}
			return fmt.Errorf("udp receive: %w", err)
		}
		g.metrics.IncDatagramIn()

		cmds, err := g.codec.DecodeCommands(buf[:n])
		if err != nil {
			g.metrics.IncDecodeFailure()
			Log.Warnf("dropping malformed datagram from %s: %v", addr, err)
			continue
		}
		for _, cmd := range cmds {
			g.queue.Enqueue(addr, cmd)
		}
	}
}
