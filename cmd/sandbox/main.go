package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/game"
)

func main() {
	debug := flag.Bool("debug", false, "draw probes and controller state")
	watch := flag.Bool("watch", false, "hot reload prefabs/ and prefabs/scripts/ from disk")
	levelName := flag.String("level", "level.yaml", "level prefab")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	g, err := game.New(game.Options{
		LevelPrefab: *levelName,
		Input:       ebitenInput{},
		Logger:      logger,
		Watch:       *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformer sandbox")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(newSandbox(g, *debug)); err != nil {
		log.Fatal(err)
	}
}
