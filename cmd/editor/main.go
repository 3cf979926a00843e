package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bevatsal1122/agentverse-sub000/levels"
)

func main() {
	name := flag.String("level", "", "level to edit (basename in levels/); created if missing")
	width := flag.Int("w", 24, "width in tiles for a new level")
	height := flag.Int("h", 16, "height in tiles for a new level")
	cell := flag.Int("cell", 32, "cell size in pixels")
	flag.Parse()

	if *name == "" || *name == levels.Metro {
		log.Fatal("editor: -level must name a json level")
	}

	canvas, err := openCanvas(*name, *width, *height)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("agentverse editor: " + *name)
	if err := ebiten.RunGame(NewEditor(canvas, *name, *cell)); err != nil {
		log.Fatal(err)
	}
}

// openCanvas loads an existing level or starts a blank one.
func openCanvas(name string, w, h int) (*Canvas, error) {
	lvl, err := levels.LoadLevel(name)
	if errors.Is(err, levels.ErrUnknownLevel) {
		if w <= 0 || h <= 0 {
			return nil, errors.New("editor: level size must be positive")
		}
		return NewCanvas(name, w, h), nil
	}
	if err != nil {
		return nil, err
	}
	return CanvasFromLevel(lvl), nil
}
