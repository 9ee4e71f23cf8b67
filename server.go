package main

import "net/http"

// SetupRoutes configures the HTTP side surface: health, metrics, the
// observer feed and, when auth is configured, the admin API.
func SetupRoutes(g *Game, auth *Auth) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", g.handleMetrics)
	mux.HandleFunc("/watch", g.observers.HandleWatch)

	if auth != nil {
		mux.HandleFunc("/admin/login", auth.HandleLogin)
		mux.HandleFunc("/admin/config", auth.Require(g.handleAdminConfig))
		mux.HandleFunc("/admin/sessions", auth.Require(g.handleAdminSessions))
	}

	return mux
}
