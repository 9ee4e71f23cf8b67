package main

import (
	"fmt"
	"sync"
	"testing"
)

func TestQueueDrainOrder(t *testing.T) {
	q := NewCommandQueue()
	addr := fakeAddr("10.0.0.1:9000")
	q.Enqueue(addr, CmdMoveLeft)
	q.Enqueue(addr, CmdMoveRight)
	q.Enqueue(addr, CmdJump)

	if q.Len() != 3 {
		t.Fatalf("expected 3 pending, got %d", q.Len())
	}

	batch := q.DrainAll()
	if len(batch) != 3 {
		t.Fatalf("expected 3 drained, got %d", len(batch))
	}
	want := []uint8{CmdMoveLeft, CmdMoveRight, CmdJump}
	for i, qc := range batch {
		if qc.Cmd != want[i] {
			t.Errorf("position %d: expected cmd %d, got %d", i, want[i], qc.Cmd)
		}
		if qc.Addr.String() != addr.String() {
			t.Errorf("position %d: wrong address %s", i, qc.Addr)
		}
	}

	if q.Len() != 0 {
		t.Errorf("queue should be empty after drain, has %d", q.Len())
	}
	if batch := q.DrainAll(); len(batch) != 0 {
		t.Errorf("second drain should be empty, got %d", len(batch))
	}
}

// Draining while other goroutines enqueue must never lose or
// duplicate a command.
func TestQueueConcurrentEnqueueDrain(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 500

	q := NewCommandQueue()
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			addr := fakeAddr(fmt.Sprintf("10.0.0.%d:9000", n))
			for j := 0; j < perGoroutine; j++ {
				q.Enqueue(addr, CmdJump)
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	counts := make(map[string]int)
	total := 0
	collect := func(batch []QueuedCommand) {
		for _, qc := range batch {
			counts[qc.Addr.String()]++
			total++
		}
	}

	for {
		collect(q.DrainAll())
		select {
		case <-done:
			collect(q.DrainAll())
			if total != goroutines*perGoroutine {
				t.Fatalf("expected %d commands, got %d", goroutines*perGoroutine, total)
			}
			for addr, n := range counts {
				if n != perGoroutine {
					t.Errorf("address %s: expected %d commands, got %d", addr, perGoroutine, n)
				}
			}
			return
		default:
		}
	}
}
