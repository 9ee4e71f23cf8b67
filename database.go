package main

import (
	"database/sql"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const (
	sessionEvtJoin = iota
	sessionEvtLeave
)

const (
	sessionFlushBatch    = 50
	sessionFlushInterval = 5 * time.Second
)

type sessionEvent struct {
	kind     int
	id       string
	addr     string
	color    uint8
	commands uint64
	at       time.Time
}

// DB is the sqlite session store. Writes go through a batched
// background writer so the tick loop never blocks on disk. All
// methods tolerate a nil receiver: the server runs fine without
// persistence.
type DB struct {
	conn   *sql.DB
	events chan sessionEvent
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// SessionRow is one recorded player session.
type SessionRow struct {
	ID       string `json:"id"`
	Addr     string `json:"addr"`
	Color    int    `json:"color"`
	JoinedAt string `json:"joined_at"`
	LastSeen string `json:"last_seen"`
	Commands int64  `json:"commands"`
}

// OpenDB opens (or creates) the sqlite database and starts the
// background writer.
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for better concurrency between writer and admin queries
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{
		conn:   conn,
		events: make(chan sessionEvent, 1024),
		stopCh: make(chan struct{}),
	}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	db.wg.Add(1)
	go db.writer()
	return db, nil
}

// Close flushes pending events and closes the connection.
func (d *DB) Close() error {
	if d == nil {
		return nil
	}
	close(d.stopCh)
	d.wg.Wait()
	return d.conn.Close()
}

func (d *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		addr TEXT NOT NULL,
		color INTEGER NOT NULL DEFAULT 0,
		joined_at TEXT NOT NULL,
		last_seen TEXT NOT NULL,
		commands INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_joined ON sessions(joined_at);
	`
	_, err := d.conn.Exec(schema)
	return err
}

// TrackJoin records a join event, non-blocking.
func (d *DB) TrackJoin(p *Player) {
	if d == nil {
		return
	}
	select {
	case d.events <- sessionEvent{
		kind:  sessionEvtJoin,
		id:    p.ID,
		addr:  p.Addr.String(),
		color: p.Color,
		at:    p.LastSeen,
	}:
	default:
		// channel full, drop rather than blocking the tick
	}
}

// TrackLeave closes a session record, non-blocking.
func (d *DB) TrackLeave(p *Player) {
	if d == nil {
		return
	}
	select {
	case d.events <- sessionEvent{
		kind:     sessionEvtLeave,
		id:       p.ID,
		commands: p.Commands,
		at:       p.LastSeen,
	}:
	default:
	}
}

// writer batches session events to the database.
func (d *DB) writer() {
	defer d.wg.Done()

	batch := make([]sessionEvent, 0, 64)
	ticker := time.NewTicker(sessionFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case evt := <-d.events:
			batch = append(batch, evt)
			if len(batch) >= sessionFlushBatch {
				d.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				d.flush(batch)
				batch = batch[:0]
			}
		case <-d.stopCh:
			// drain whatever is still queued
			close(d.events)
			for evt := range d.events {
				batch = append(batch, evt)
			}
			if len(batch) > 0 {
				d.flush(batch)
			}
			return
		}
	}
}

func (d *DB) flush(events []sessionEvent) {
	tx, err := d.conn.Begin()
	if err != nil {
		Log.Errorf("session store: begin tx: %v", err)
		return
	}
	defer tx.Rollback()

	for _, evt := range events {
		at := evt.at.UTC().Format(time.RFC3339)
		switch evt.kind {
		case sessionEvtJoin:
			_, err = tx.Exec(
				`INSERT OR REPLACE INTO sessions (id, addr, color, joined_at, last_seen) VALUES (?, ?, ?, ?, ?)`,
				evt.id, evt.addr, evt.color, at, at,
			)
		case sessionEvtLeave:
			_, err = tx.Exec(
				`UPDATE sessions SET last_seen = ?, commands = ? WHERE id = ?`,
				at, evt.commands, evt.id,
			)
		}
		if err != nil {
			Log.Errorf("session store: write: %v", err)
		}
	}
	tx.Commit()
}

// RecentSessions returns the most recently joined sessions.
func (d *DB) RecentSessions(limit int) ([]SessionRow, error) {
	if d == nil {
		return nil, nil
	}
	rows, err := d.conn.Query(`
		SELECT id, addr, color, joined_at, last_seen, commands
		FROM sessions ORDER BY joined_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SessionRow
	for rows.Next() {
		var s SessionRow
		if err := rows.Scan(&s.ID, &s.Addr, &s.Color, &s.JoinedAt, &s.LastSeen, &s.Commands); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SessionCount returns the total number of recorded sessions.
func (d *DB) SessionCount() (int, error) {
	if d == nil {
		return 0, nil
	}
	var count int
	err := d.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}

// GetSetting returns a settings value, or "" when absent.
func (d *DB) GetSetting(key string) string {
	if d == nil {
		return ""
	}
	var value string
	err := d.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

// SetSetting stores a settings value.
func (d *DB) SetSetting(key, value string) error {
	if d == nil {
		return nil
	}
	_, err := d.conn.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	return err
}
