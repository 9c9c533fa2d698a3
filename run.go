package guish

import "github.com/hajimehoshi/ebiten/v2"

// game adapts a Scene to ebiten.Game.
type game struct {
	scene         *Scene
	width, height int
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run applies cfg to scene, opens a window and runs the ebiten game loop
// until the window is closed or Update returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if err := cfg.Apply(scene); err != nil {
		return err
	}
	cfg = cfg.withDefaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height})
}
