package main

import (
	"sync"
	"time"
)

// Game owns the world state and runs the simulation loop. The world
// lock is held for a full tick (commands + physics + broadcast) so
// every snapshot is consistent; the command queue has its own lock so
// packet reception never stalls on a slow tick.
type Game struct {
	mu      sync.Mutex
	players []*Player          // broadcast order = join order
	byAddr  map[string]*Player // addr string -> player

	queue     *CommandQueue
	transport Transport
	codec     *Codec
	cfg       *Config
	db        *DB // nil when persistence is disabled
	metrics   *Metrics
	observers *ObserverHub

	tick    uint64
	running bool
	stop    chan struct{}
}

// NewGame creates a Game. db may be nil.
func NewGame(cfg *Config, tr Transport, codec *Codec, db *DB) *Game {
	return &Game{
		byAddr:    make(map[string]*Player),
		queue:     NewCommandQueue(),
		transport: tr,
		codec:     codec,
		cfg:       cfg,
		db:        db,
		metrics:   &Metrics{},
		observers: NewObserverHub(),
		stop:      make(chan struct{}),
	}
}

// Run drives the simulation at the configured tick interval until
// Stop is called. A tick that overruns its period is not caught up;
// the ticker coalesces missed fires and the loop resumes.
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(g.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			start := time.Now()
			g.update()
			g.metrics.AddTick(time.Since(start).Nanoseconds())
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the simulation loop.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// PlayerCount returns the number of known players.
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// update runs one tick: apply the drained command batch, reap idle
// players, advance physics, broadcast the snapshot.
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	g.tick++

	batch := g.queue.DrainAll()
	g.applyCommands(batch, now)
	g.reapIdle(now)

	for _, p := range g.players {
		// A player created this tick stays at its default state until
		// the next tick; the join itself carries no motion.
		if p.joinedTick == g.tick {
			continue
		}
		p.Step(g.cfg)
	}

	g.broadcast()
}

// applyCommands walks the batch in arrival order. A command from an
// unseen address is a join event: it creates the player and applies
// no motion. Later commands from the same address, even in the same
// batch, apply normally.
func (g *Game) applyCommands(batch []QueuedCommand, now time.Time) {
	for _, qc := range batch {
		key := qc.Addr.String()
		p, ok := g.byAddr[key]
		if !ok {
			if len(g.players) >= g.cfg.MaxPlayers {
				Log.Warnf("world full, ignoring %s", key)
				continue
			}
			p = NewPlayer(qc.Addr, g.cfg, now)
			p.joinedTick = g.tick
			g.players = append(g.players, p)
			g.byAddr[key] = p
			g.metrics.IncJoin()
			g.db.TrackJoin(p)
			Log.Infof("new player connected: %s", key)
			continue
		}
		p.LastSeen = now
		p.Apply(qc.Cmd)
		g.metrics.IncCommand()
	}
}

// reapIdle drops players that have been silent longer than the
// configured timeout and closes their session records.
func (g *Game) reapIdle(now time.Time) {
	if g.cfg.PlayerTimeout <= 0 {
		return
	}
	kept := g.players[:0]
	for _, p := range g.players {
		if now.Sub(p.LastSeen) > g.cfg.PlayerTimeout {
			delete(g.byAddr, p.Addr.String())
			g.metrics.IncReap()
			g.db.TrackLeave(p)
			Log.Infof("player timed out: %s", p.Addr)
			continue
		}
		kept = append(kept, p)
	}
	g.players = kept
}

// broadcast encodes the player list exactly once and sends the same
// bytes to every known player, best-effort per recipient. Observers
// get the identical payload.
func (g *Game) broadcast() {
	if len(g.players) == 0 && g.observers.Count() == 0 {
		return
	}

	states := make([]PlayerState, 0, len(g.players))
	for _, p := range g.players {
		states = append(states, p.ToState())
	}
	data, err := g.codec.EncodeSnapshot(g.tick, states)
	if err != nil {
		g.metrics.IncEncodeFailure()
		Log.Errorf("snapshot encode: %v", err)
		return
	}

	for _, p := range g.players {
		if _, err := g.transport.WriteTo(data, p.Addr); err != nil {
			g.metrics.IncSendFailure()
			Log.Debugf("send to %s: %v", p.Addr, err)
			continue
		}
		g.metrics.IncDatagramOut()
	}

	g.observers.Publish(data)
}
