package factory

import (
	"math"

	"github.com/automoto/bladelock/archetypes"
	"github.com/automoto/bladelock/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace spawns the resolv space covering width x depth world units.
// The space's Y axis is world Z.
func CreateSpace(ecs *ecs.ECS, width, depth float64, cellSize int) *donburi.Entry {
	if cellSize <= 0 {
		cellSize = 1
	}
	space := archetypes.Space.Spawn(ecs)
	spaceData := resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(depth)), cellSize, cellSize)
	components.Space.Set(space, spaceData)
	return space
}

func addToSpace(ecs *ecs.ECS, obj *resolv.Object) {
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}
