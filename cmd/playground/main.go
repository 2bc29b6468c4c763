package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/locomotion/logger"
)

func main() {
	debug := flag.Bool("debug", false, "draw probe strips and motion state")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "level.yaml", "level prefab under prefabs/")
	scriptName := flag.String("script", "", "drive input from a tengo script instead of the keyboard")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	noReload := flag.Bool("no-reload", false, "do not watch prefabs/ for tunable edits")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console"})

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("locomotion playground")

	game, err := NewGame(Options{
		Level:  *levelName,
		Script: *scriptName,
		Debug:  *debug,
		Reload: !*noReload,
	})
	if err != nil {
		logger.L().Error("playground failed to start", "err", err)
		os.Exit(1)
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		logger.L().Error("playground stopped", "err", err)
		os.Exit(1)
	}
}
