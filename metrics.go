package main

import "sync/atomic"

// Metrics collects run-time counters for the /metrics endpoint.
// Counters are atomic so the hot paths never take a lock for them.
type Metrics struct {
	TickCount       int64
	TotalTickNs     int64
	DatagramsIn     int64
	DatagramsOut    int64
	DecodeFailures  int64
	EncodeFailures  int64
	SendFailures    int64
	CommandsApplied int64
	Joins           int64
	Reaps           int64
}

func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

func (m *Metrics) IncDatagramIn()    { atomic.AddInt64(&m.DatagramsIn, 1) }
func (m *Metrics) IncDatagramOut()   { atomic.AddInt64(&m.DatagramsOut, 1) }
func (m *Metrics) IncDecodeFailure() { atomic.AddInt64(&m.DecodeFailures, 1) }
func (m *Metrics) IncEncodeFailure() { atomic.AddInt64(&m.EncodeFailures, 1) }
func (m *Metrics) IncSendFailure()   { atomic.AddInt64(&m.SendFailures, 1) }
func (m *Metrics) IncCommand()       { atomic.AddInt64(&m.CommandsApplied, 1) }
func (m *Metrics) IncJoin()          { atomic.AddInt64(&m.Joins, 1) }
func (m *Metrics) IncReap()          { atomic.AddInt64(&m.Reaps, 1) }

// Snapshot returns a read-only copy for HTTP output.
func (m *Metrics) Snapshot() map[string]any {
	ticks := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":       ticks,
		"avg_tick_ms":      avgMs,
		"datagrams_in":     atomic.LoadInt64(&m.DatagramsIn),
		"datagrams_out":    atomic.LoadInt64(&m.DatagramsOut),
		"decode_failures":  atomic.LoadInt64(&m.DecodeFailures),
		"encode_failures":  atomic.LoadInt64(&m.EncodeFailures),
		"send_failures":    atomic.LoadInt64(&m.SendFailures),
		"commands_applied": atomic.LoadInt64(&m.CommandsApplied),
		"joins":            atomic.LoadInt64(&m.Joins),
		"reaps":            atomic.LoadInt64(&m.Reaps),
	}
}
