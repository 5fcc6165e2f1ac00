package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/scenes"
	"github.com/automoto/bladelock/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Game struct {
	bounds image.Rectangle
	scene  scenes.Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene scenes.Scene) {
	g.scene = scene
}

func NewGame(arena string) *Game {
	g := &Game{
		bounds: image.Rectangle{},
	}
	g.scene = scenes.NewArenaScene(g, arena)
	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	arena := flag.String("arena", config.Arena.DefaultArena, "arena to load from assets/arenas")
	flag.Parse()

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("bladelock")
	ebiten.SetTPS(config.C.TickRate)

	// Initialize persistence; scenes load saved settings when they start
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	if err := ebiten.RunGame(NewGame(*arena)); err != nil {
		log.Fatal(err)
	}
}
