package archetypes

import (
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Transform,
		components.Object,
		components.Physics,
		components.Health,
		components.DamageReceiver,
		components.Combat,
		components.Animation,
		components.HitboxSet,
		components.Stance,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Enemy,
		components.Transform,
		components.Object,
		components.Physics,
		components.Health,
		components.DamageReceiver,
		components.Combat,
		components.Animation,
		components.HitboxSet,
	)
	Hitbox = newArchetype(
		tags.Hitbox,
		components.Hitbox,
		components.Transform,
		components.Object,
	)
	Solid = newArchetype(
		tags.Solid,
		components.Solid,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Arena = newArchetype(
		components.Arena,
	)
	Camera = newArchetype(
		tags.Camera,
		components.Camera,
		components.LockOn,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
