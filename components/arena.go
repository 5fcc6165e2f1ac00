package components

import (
	"github.com/automoto/bladelock/assets"
	"github.com/yohamta/donburi"
)

// ArenaData is the loaded arena the scene was built from. Respawns read the
// spawn points from it.
type ArenaData struct {
	Arena *assets.Arena
}

var Arena = donburi.NewComponentType[ArenaData]()
