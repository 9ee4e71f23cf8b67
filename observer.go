package main

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	observerSendBuf   = 16
	observerWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// ObserverHub fans each tick's encoded snapshot out to WebSocket
// spectators. Observers are read-only; a slow observer drops frames
// rather than backpressuring the tick.
type ObserverHub struct {
	mu        sync.Mutex
	observers map[*Observer]bool
}

// Observer is one connected spectator.
type Observer struct {
	conn *websocket.Conn
	send chan []byte
}

// NewObserverHub creates an empty hub.
func NewObserverHub() *ObserverHub {
	return &ObserverHub{observers: make(map[*Observer]bool)}
}

// Count returns the number of connected observers.
func (h *ObserverHub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}

// Publish sends the snapshot bytes to every observer, non-blocking.
func (h *ObserverHub) Publish(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for o := range h.observers {
		select {
		case o.send <- data:
		default:
			// observer is behind, drop this frame
		}
	}
}

// HandleWatch upgrades the connection and streams snapshots to it.
func (h *ObserverHub) HandleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("observer upgrade: %v", err)
		return
	}
	o := &Observer{conn: conn, send: make(chan []byte, observerSendBuf)}

	h.mu.Lock()
	h.observers[o] = true
	h.mu.Unlock()
	Log.Infof("observer connected: %s", conn.RemoteAddr())

	go o.writePump()
	go o.readPump(h)
}

// remove unregisters an observer; safe to call more than once.
func (h *ObserverHub) remove(o *Observer) {
	h.mu.Lock()
	if _, ok := h.observers[o]; ok {
		delete(h.observers, o)
		close(o.send)
	}
	h.mu.Unlock()
}

// writePump pushes queued snapshots until the send channel closes or
// a write fails.
func (o *Observer) writePump() {
	defer o.conn.Close()
	for data := range o.send {
		o.conn.SetWriteDeadline(time.Now().Add(observerWriteWait))
		if err := o.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			return
		}
	}
}

// readPump discards inbound messages and detects disconnect.
func (o *Observer) readPump(h *ObserverHub) {
	defer func() {
		h.remove(o)
		o.conn.Close()
	}()
	for {
		if _, _, err := o.conn.ReadMessage(); err != nil {
			return
		}
	}
}
