package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vladimirvolkov/hoopshot/internal/config"
	"github.com/vladimirvolkov/hoopshot/internal/game"
	"github.com/vladimirvolkov/hoopshot/internal/middleware"
	"github.com/vladimirvolkov/hoopshot/internal/records"
	"github.com/vladimirvolkov/hoopshot/internal/ws"
)

const shutdownGrace = 5 * time.Second

// GameManager gives every accepted connection its own room.
type GameManager struct {
	ctx      context.Context
	tuning   game.Tuning
	tickRate int
	records  *records.Store
}

func (gm *GameManager) CreateSession(conn *ws.Conn) <-chan struct{} {
	room, err := game.NewRoom(conn, gm.tuning, game.SystemClock{}, gm.records, gm.tickRate)
	if err != nil {
		log.Printf("%s: create room: %v", conn.ID, err)
		conn.Close()
		done := make(chan struct{})
		close(done)
		return done
	}
	room.Start(gm.ctx)
	go func() {
		<-room.Done()
		conn.Close()
	}()
	return room.Done()
}

func main() {
	configPath := flag.String("config", "", "config file (.yaml or .toml); defaults to $"+config.EnvConfigPath)
	flag.Parse()

	// Write logs to stdout so hosting platforms don't mark them as errors
	log.SetOutput(os.Stdout)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	codec, err := ws.CodecByName(cfg.Codec)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	limiter := middleware.NewIPRateLimiter(middleware.Options{
		MaxConnsPerIP: cfg.MaxConnsPerIP,
		MsgRate:       cfg.MsgRate,
		MsgWindow:     time.Second,
		TrustProxy:    cfg.TrustProxy,
	})
	defer limiter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := &GameManager{
		ctx:      ctx,
		tuning:   cfg.Tuning(),
		tickRate: cfg.TickRate,
		records:  records.Open(cfg.RecordsApp),
	}
	hub := ws.NewHub(manager, limiter, ws.HubOptions{
		OriginPatterns: cfg.AllowedOrigins,
		MaxSessions:    cfg.MaxSessions,
		DefaultCodec:   codec,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes(hub, manager.records.Best, cfg.StaticDir),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	go func() {
		<-ctx.Done()
		log.Println("shutting down...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(sctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Hoopshot server starting on :%s (codec=%s, tick=%dHz)", cfg.Port, codec.Name(), cfg.TickRate)
	log.Printf("serving static files from %s", cfg.StaticDir)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	// Rooms stop with ctx; give them a moment to flush their connections.
	waited := make(chan struct{})
	go func() {
		hub.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(shutdownGrace):
		log.Println("timed out waiting for sessions")
	}
	log.Println("server stopped")
}
