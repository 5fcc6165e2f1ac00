package factory

import (
	"github.com/automoto/bladelock/archetypes"
	"github.com/automoto/bladelock/assets"
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateArena builds the collision space, geometry and actors of arena and
// returns the player. The floor is a solid whose top is at height zero.
func CreateArena(ecs *ecs.ECS, arena *assets.Arena) *donburi.Entry {
	level := archetypes.Arena.Spawn(ecs)
	components.Arena.SetValue(level, components.ArenaData{Arena: arena})

	CreateSpace(ecs, arena.Width, arena.Depth, cfg.Arena.CellSize)

	CreateSolid(ecs, assets.SolidSpawn{
		Name:   "floor",
		Width:  arena.Width,
		Depth:  arena.Depth,
		Bottom: -cfg.Arena.FloorThickness,
		Top:    0,
	}, tags.ResolvGround)
	for _, s := range arena.Solids {
		CreateSolid(ecs, s)
	}

	rig := CreateCamera(ecs)
	player := CreatePlayer(ecs, arena.PlayerSpawn, rig)
	for _, spawn := range arena.Enemies {
		CreateEnemy(ecs, spawn)
	}
	return player
}
