package main

import (
	"net"
	"sync"
)

// QueuedCommand pairs a decoded command with its source address.
type QueuedCommand struct {
	Addr net.Addr
	Cmd  uint8
}

// CommandQueue accumulates commands between ticks. It has its own
// lock, separate from the world lock, so enqueueing never waits on a
// tick in progress.
type CommandQueue struct {
	mu   sync.Mutex
	cmds []QueuedCommand
}

// NewCommandQueue creates an empty queue.
func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

// Enqueue appends one command. No dedup, no bound.
func (q *CommandQueue) Enqueue(addr net.Addr, cmd uint8) {
	q.mu.Lock()
	q.cmds = append(q.cmds, QueuedCommand{Addr: addr, Cmd: cmd})
	q.mu.Unlock()
}

// DrainAll atomically takes the pending batch in arrival order,
// leaving the queue empty. Commands enqueued concurrently land either
// in this batch or the next one, never both, never neither.
func (q *CommandQueue) DrainAll() []QueuedCommand {
	q.mu.Lock()
	batch := q.cmds
	q.cmds = nil
	q.mu.Unlock()
	return batch
}

// Len returns the number of pending commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.cmds)
}
