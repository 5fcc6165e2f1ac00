package factory

import (
	"math"

	"github.com/automoto/bladelock/archetypes"
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateHitbox spawns an inactive hitbox bound to owner and registers it in
// the owner's hitbox set. The collider only joins the space while active.
func CreateHitbox(ecs *ecs.ECS, owner *donburi.Entry, shape cfg.HitboxShape, mask []string) *donburi.Entry {
	hitbox := archetypes.Hitbox.Spawn(ecs)

	offset := mgl64.Vec3(shape.Offset)
	size := mgl64.Vec3(shape.Size)
	// The footprint is square so it covers the volume at any yaw.
	side := math.Max(size.X(), size.Z())
	if side <= 0 {
		side = 1
	}

	obj := resolv.NewObject(0, 0, side, side, tags.ResolvHitbox)
	obj.SetShape(resolv.NewRectangle(0, 0, side, side))
	obj.Data = hitbox

	components.Object.SetValue(hitbox, components.ObjectData{
		Object:    obj,
		HalfWidth: side / 2,
		HalfDepth: side / 2,
	})
	components.Hitbox.SetValue(hitbox, components.HitboxData{
		ID:            shape.ID,
		Owner:         owner,
		Mask:          mask,
		Offset:        offset,
		Size:          size,
		MinForwardDot: shape.ForwardDot(),
	})

	ownerTransform := components.Transform.Get(owner)
	components.Transform.SetValue(hitbox, components.TransformData{
		Position: ownerTransform.Local(offset),
		Yaw:      ownerTransform.Yaw,
	})
	pos := components.Transform.Get(hitbox).Position
	obj.X = pos.X() - side/2
	obj.Y = pos.Z() - side/2
	obj.Shape.SetPosition(obj.X, obj.Y)

	components.HitboxSet.Get(owner).Add(shape.ID, hitbox)
	return hitbox
}

// createHitboxes spawns every hitbox declared by the owner's combo graph.
func createHitboxes(ecs *ecs.ECS, owner *donburi.Entry, graph *cfg.ComboGraph, mask []string) {
	if graph == nil {
		return
	}
	for _, shape := range graph.Hitboxes {
		CreateHitbox(ecs, owner, shape, mask)
	}
}

// targetMask is the resolv tag an actor's hitboxes damage.
func targetMask(owner *donburi.Entry) []string {
	if owner.HasComponent(tags.Player) {
		return []string{tags.ResolvEnemy}
	}
	return []string{tags.ResolvPlayer}
}

// SyncHitboxes spawns the hitboxes a reloaded graph declares that its actors
// do not have yet. Ids dropped from the graph keep their entities, closed.
func SyncHitboxes(ecs *ecs.ECS, name string) int {
	var actors []*donburi.Entry
	components.Combat.Each(ecs.World, func(e *donburi.Entry) {
		graph := components.Combat.Get(e).Graph
		if graph != nil && graph.Name == name && e.HasComponent(components.HitboxSet) {
			actors = append(actors, e)
		}
	})

	n := 0
	for _, e := range actors {
		for _, shape := range components.Combat.Get(e).Graph.Hitboxes {
			if components.HitboxSet.Get(e).Lookup(shape.ID) != nil {
				continue
			}
			CreateHitbox(ecs, e, shape, targetMask(e))
			n++
		}
	}
	return n
}
