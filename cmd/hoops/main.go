package main

import (
	"flag"
	"log"

	"github.com/vladimirvolkov/hoopshot/internal/audio"
	"github.com/vladimirvolkov/hoopshot/internal/config"
	"github.com/vladimirvolkov/hoopshot/internal/desktop"
	"github.com/vladimirvolkov/hoopshot/internal/game"
	"github.com/vladimirvolkov/hoopshot/internal/records"
)

func main() {
	configPath := flag.String("config", "", "config file (.yaml or .toml)")
	name := flag.String("name", "Player", "name shown on the best score")
	scale := flag.Int("scale", 2, "window scale")
	volume := flag.Float64("volume", 0.6, "sound volume 0..1")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	session, err := game.NewSession(cfg.Tuning(), game.SystemClock{})
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	sound := audio.NewPlayer(*volume)
	if err := sound.Init(); err != nil {
		// Non-fatal, the game runs without sound
		log.Printf("audio init failed: %v", err)
	}
	defer sound.Close()

	g := desktop.New(session, sound, records.Open(cfg.RecordsApp), *name)
	if err := desktop.Run(g, "Hoopshot", *scale); err != nil {
		log.Fatal(err)
	}
}
