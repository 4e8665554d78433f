// Command gridview runs the simulation headless and shows the collision grid,
// entities and enemy paths in a terminal.
package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/tileshooter/logger"
	"github.com/milk9111/tileshooter/system"
	"github.com/milk9111/tileshooter/termview"
)

const tick = 16 * time.Millisecond

func main() {
	levelName := flag.String("level", "arena", "level name in levels/ or a path to a level file")
	logPath := flag.String("log", "", "write logs to this file (discarded when empty)")
	flag.Parse()

	logger.Init()
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger.Log.SetOutput(out)

	opts, err := system.LoadOptions()
	if err != nil {
		logger.Log.Fatal(err)
	}
	world := system.NewWorld(opts)
	if err := world.LoadNamed(*levelName); err != nil {
		logger.Log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		logger.Log.Fatal(err)
	}
	defer screen.Fini()

	run(screen, termview.New(screen, world))
}

func run(screen tcell.Screen, view *termview.Viewer) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !view.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			view.Advance(tick.Seconds())
			view.Draw()
		}
	}
}
