package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gunplay/config"
	"github.com/milk9111/gunplay/logging"
	"github.com/milk9111/gunplay/prefabs"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml)")
	weaponName := flag.String("weapon", "", "prefab to equip at startup, overrides the config")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *weaponName != "" {
		cfg.Weapon.Prefab = *weaponName
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger, closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	prefabs.Dir = cfg.Prefabs.Dir

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game := NewGame(logger, cfg, *debug)
	defer game.Close()

	// the crosshair replaces the OS cursor
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error().Err(err).Msg("game exited")
	}
}
