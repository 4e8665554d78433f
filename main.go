package main

import (
	"errors"
	"flag"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tileshooter/entity"
	"github.com/milk9111/tileshooter/logger"
	"github.com/milk9111/tileshooter/prefabs"
	"github.com/milk9111/tileshooter/system"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "arena", "level name in levels/ (basename, .json optional) or a path to a level file")
	firstPerson := flag.Bool("fps", false, "start in the first-person view")
	watch := flag.Bool("watch", true, "reload prefab specs and scripts when they change on disk")
	flag.Parse()

	logger.Init()
	log := logger.For("main")

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("tileshooter")

	opts, err := system.LoadOptions()
	if err != nil {
		log.WithError(err).Fatal("loading prefabs")
	}
	if *firstPerson {
		opts.Mode = entity.ModeFirstPerson
	}

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher(prefabs.OverrideDir, filepath.Join(prefabs.OverrideDir, "scripts"))
		if err != nil {
			log.WithError(err).Warn("prefab hot reload disabled")
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	game, err := NewGame(*levelName, opts, watcher, *debug)
	if err != nil {
		log.WithError(err).Fatal("starting game")
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		log.WithError(err).Fatal("game exited")
	}
}
