package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// handleMetrics reports run-time counters.
// GET /metrics
func (g *Game) handleMetrics(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"players":   g.PlayerCount(),
		"observers": g.observers.Count(),
		"metrics":   g.metrics.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

// handleAdminConfig returns the live configuration.
// GET /admin/config
func (g *Game) handleAdminConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(g.cfg)
}

// handleAdminSessions returns recent session records.
// GET /admin/sessions
func (g *Game) handleAdminSessions(w http.ResponseWriter, r *http.Request) {
	if g.db == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}
	sessions, err := g.db.RecentSessions(50)
	if err != nil {
		Log.Errorf("session query: %v", err)
		http.Error(w, "query failed", http.StatusInternalServerError)
		return
	}
	total, _ := g.db.SessionCount()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"total":    total,
		"sessions": sessions,
	})
}

// HandleLogin issues a JWT for the admin API.
// POST /admin/login {"password": "..."}
func (a *Auth) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	token, err := a.Login(body.Password, extractIP(r))
	switch {
	case errors.Is(err, ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
		return
	case err != nil:
		http.Error(w, "invalid password", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Require wraps a handler with Bearer-token verification.
func (a *Auth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || a.VerifyToken(token) != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
