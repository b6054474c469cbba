package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/vladimirvolkov/hoopshot/internal/audio"
	"github.com/vladimirvolkov/hoopshot/internal/config"
	"github.com/vladimirvolkov/hoopshot/internal/game"
	"github.com/vladimirvolkov/hoopshot/internal/records"
	"github.com/vladimirvolkov/hoopshot/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (.yaml or .toml)")
	name := flag.String("name", "Player", "name shown on the best score")
	volume := flag.Float64("volume", 0.6, "sound volume 0..1")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// The screen owns the terminal; logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("config: %v", err)
	}
	session, err := game.NewSession(cfg.Tuning(), game.SystemClock{})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("session: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()

	sound := audio.NewPlayer(*volume)
	if err := sound.Init(); err != nil {
		log.Printf("audio init failed: %v", err)
	}
	defer sound.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := tui.New(screen, session, sound, records.Open(cfg.RecordsApp), *name)
	if err := app.Run(ctx); err != nil {
		log.Printf("tui: %v", err)
	}
}
