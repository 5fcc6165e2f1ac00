package scenes

import "github.com/hajimehoshi/ebiten/v2"

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

// SceneChanger swaps the running scene.
type SceneChanger interface {
	ChangeScene(scene Scene)
}
