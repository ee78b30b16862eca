package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Drop-Siege/internal/game"
	"github.com/Garsondee/Drop-Siege/internal/render"
	"github.com/Garsondee/Drop-Siege/internal/tuning"
)

func main() {
	var tuningPath string
	var seed int64
	var biome int
	flag.StringVar(&tuningPath, "tuning", "tuning.toml", "render tuning file, reloaded on change")
	flag.Int64Var(&seed, "seed", 42, "world RNG seed")
	flag.IntVar(&biome, "biome", 0, "planet biome (0=barren 1=ice 2=volcanic 3=jungle)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	font, err := render.LoadFont()
	if err != nil {
		log.Fatal(err)
	}

	table, err := tuning.Load(tuningPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("no tuning file, using defaults", "path", tuningPath)
		table = tuning.Default()
	case err != nil:
		logger.Warn("tuning file rejected, using defaults", "err", err)
		table = tuning.Default()
	}

	watcher, err := tuning.Watch(tuningPath, logger)
	if err != nil {
		logger.Warn("tuning hot reload disabled", "err", err)
		watcher = nil
	} else {
		defer watcher.Close()
	}

	g := game.New(game.Config{
		Seed:    seed,
		Biome:   game.Biome(biome),
		Font:    font,
		Tuning:  table,
		Watcher: watcher,
		Logger:  logger,
	})
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Drop Siege")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
