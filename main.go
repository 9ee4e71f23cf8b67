package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := DefaultConfig()
	flag.StringVar(&cfg.UDPAddr, "addr", cfg.UDPAddr, "UDP listen address")
	flag.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "HTTP listen address (metrics/admin/observer), empty disables")
	flag.IntVar(&cfg.MaxPlayers, "max-players", cfg.MaxPlayers, "maximum simultaneous players")
	flag.Float64Var(&cfg.WorldWidth, "width", cfg.WorldWidth, "world width")
	flag.Float64Var(&cfg.WorldHeight, "height", cfg.WorldHeight, "world height")
	flag.Float64Var(&cfg.Gravity, "gravity", cfg.Gravity, "gravity per tick")
	flag.Float64Var(&cfg.Friction, "friction", cfg.Friction, "horizontal velocity damping per tick")
	flag.Float64Var(&cfg.Accel, "accel", cfg.Accel, "horizontal acceleration per move command")
	flag.Float64Var(&cfg.JumpImpulse, "jump", cfg.JumpImpulse, "jump impulse")
	flag.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "simulation tick period")
	flag.DurationVar(&cfg.PlayerTimeout, "player-timeout", cfg.PlayerTimeout, "idle time before a player is dropped, 0 disables")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite session store path, empty disables persistence")
	flag.StringVar(&cfg.LogFile, "log", "server.log", "log file path, empty logs to stdout only")
	flag.StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "password for the /admin endpoints, empty disables them")
	flag.Parse()

	if err := InitLogger(cfg.LogFile); err != nil {
		panic(err)
	}
	defer SyncLogger()

	var db *DB
	if cfg.DBPath != "" {
		var err error
		db, err = OpenDB(cfg.DBPath)
		if err != nil {
			Log.Fatalf("open session store: %v", err)
		}
		defer db.Close()
	}

	transport, err := ListenUDP(cfg.UDPAddr)
	if err != nil {
		Log.Fatalf("listen: %v", err)
	}

	game := NewGame(cfg, transport, NewCodec(cfg.MaxDatagramSize), db)
	go game.Run()
	Log.Infof("UDP running on %s...", transport.LocalAddr())

	var httpSrv *http.Server
	if cfg.HTTPAddr != "" {
		var auth *Auth
		if cfg.AdminPassword != "" {
			auth, err = NewAuth(cfg.AdminPassword, db)
			if err != nil {
				Log.Fatalf("auth setup: %v", err)
			}
		}
		httpSrv = &http.Server{Addr: cfg.HTTPAddr, Handler: SetupRoutes(game, auth)}
		go func() {
			Log.Infof("HTTP listening on %s", cfg.HTTPAddr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				Log.Errorf("http listen: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- game.RunIngest() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		Log.Info("shutting down...")
	case err := <-errCh:
		if err != nil {
			Log.Errorf("receive loop failed: %v", err)
		}
	}

	game.Stop()
	transport.Close()
	if httpSrv != nil {
		httpSrv.Close()
	}
}
