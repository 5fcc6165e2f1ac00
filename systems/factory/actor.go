package factory

import (
	"log"

	"github.com/automoto/bladelock/archetypes"
	"github.com/automoto/bladelock/assets"
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// attachBody gives an actor its transform, footprint and physics.
func attachBody(ecs *ecs.ECS, e *donburi.Entry, spawn assets.Spawn, c cfg.CharacterConfig, resolvTags ...string) {
	components.Transform.SetValue(e, components.TransformData{
		Position: spawn.Position,
		Yaw:      spawn.Yaw,
	})

	side := c.Radius * 2
	obj := resolv.NewObject(spawn.Position.X()-c.Radius, spawn.Position.Z()-c.Radius, side, side, resolvTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, side, side))
	obj.Shape.SetPosition(obj.X, obj.Y)
	obj.Data = e
	components.Object.SetValue(e, components.ObjectData{
		Object:    obj,
		HalfWidth: c.Radius,
		HalfDepth: c.Radius,
	})

	components.Physics.SetValue(e, components.PhysicsData{
		Gravity:    c.Gravity,
		Friction:   c.Friction,
		StepHeight: c.StepHeight,
		Radius:     c.Radius,
		Height:     c.Height,
	})

	addToSpace(ecs, obj)
}

// attachCombat binds the named combo graph. Without one the actor keeps
// moving but never attacks.
func attachCombat(e *donburi.Entry, name string) *cfg.ComboGraph {
	graph := ComboGraph(name)
	combat := components.CombatData{Graph: graph}
	if graph == nil {
		log.Printf("Warning: entity %v has no combo graph, combat disabled", e.Entity())
		combat.Disabled = true
	}
	components.Combat.SetValue(e, combat)
	return graph
}

// CreatePlayer spawns the player and attaches rig to follow it. rig may be
// nil, in which case lock-on is unavailable.
func CreatePlayer(ecs *ecs.ECS, spawn assets.Spawn, rig *donburi.Entry) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	attachBody(ecs, player, spawn, cfg.Player, tags.ResolvCharacter, tags.ResolvPlayer)
	components.Health.SetValue(player, components.HealthData{
		Current: cfg.Health.PlayerHealth,
		Max:     cfg.Health.PlayerHealth,
	})

	graph := attachCombat(player, "player")
	createHitboxes(ecs, player, graph, targetMask(player))

	components.Stance.SetValue(player, components.StanceData{Rig: rig})
	components.Player.SetValue(player, components.PlayerData{Rig: rig})

	if rig != nil && rig.HasComponent(components.Camera) {
		cam := components.Camera.Get(rig)
		cam.Follow = player
		cam.Yaw = spawn.Yaw
		cam.Initialized = false
	}
	return player
}

// CreateEnemy spawns an enemy whose combo graph is named after its type.
func CreateEnemy(ecs *ecs.ECS, spawn assets.EnemySpawn) *donburi.Entry {
	enemy := archetypes.Enemy.Spawn(ecs)

	attachBody(ecs, enemy, spawn.Spawn, cfg.Enemy, tags.ResolvCharacter, tags.ResolvEnemy)
	components.Health.SetValue(enemy, components.HealthData{
		Current: cfg.Health.EnemyHealth,
		Max:     cfg.Health.EnemyHealth,
	})
	components.Enemy.SetValue(enemy, components.EnemyData{
		TypeName:    spawn.EnemyType,
		AttackTimer: cfg.Enemy.AttackPeriod,
	})

	graph := attachCombat(enemy, spawn.EnemyType)
	createHitboxes(ecs, enemy, graph, targetMask(enemy))
	return enemy
}
