package factory

import (
	"github.com/automoto/bladelock/archetypes"
	"github.com/automoto/bladelock/assets"
	"github.com/automoto/bladelock/components"
	"github.com/automoto/bladelock/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSolid adds a block of arena geometry. Extra resolv tags are added
// after "solid".
func CreateSolid(ecs *ecs.ECS, s assets.SolidSpawn, extraTags ...string) *donburi.Entry {
	solid := archetypes.Solid.Spawn(ecs)

	// Create collision object
	obj := resolv.NewObject(s.X, s.Z, s.Width, s.Depth, append([]string{tags.ResolvSolid}, extraTags...)...)
	obj.SetShape(resolv.NewRectangle(0, 0, s.Width, s.Depth))
	obj.Shape.SetPosition(obj.X, obj.Y)
	obj.Data = solid // Link for O(1) lookup

	components.Object.SetValue(solid, components.ObjectData{
		Object:    obj,
		HalfWidth: s.Width / 2,
		HalfDepth: s.Depth / 2,
	})
	components.Solid.SetValue(solid, components.SolidData{
		Name:   s.Name,
		Bottom: s.Bottom,
		Top:    s.Top,
	})

	addToSpace(ecs, obj)
	return solid
}
