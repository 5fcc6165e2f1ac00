package systems

import (
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/gamemath"
	"github.com/automoto/bladelock/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateEnemies walks enemies toward the player and buffers an attack
// whenever one is in range and its attack timer has run out.
func UpdateEnemies(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()

	// Get player position for AI decisions
	playerEntry, _ := components.Player.First(ecs.World)
	if playerEntry != nil && components.Health.Get(playerEntry).Dead {
		playerEntry = nil
	}

	tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		physics.MoveDelta = mgl64.Vec3{}
		if components.Health.Get(e).Dead {
			return
		}

		enemy := components.Enemy.Get(e)
		if enemy.AttackTimer > 0 {
			enemy.AttackTimer -= dt
		}

		if playerEntry == nil {
			return
		}
		updateEnemyAI(e, enemy, physics, playerEntry, dt)
	})
}

func updateEnemyAI(e *donburi.Entry, enemy *components.EnemyData, physics *components.PhysicsData, playerEntry *donburi.Entry, dt float64) {
	combat := combatOf(e)
	if combat == nil || combat.Disabled || combat.MovementLocked() || physics.Kinematic {
		return
	}

	transform := components.Transform.Get(e)
	toPlayer := gamemath.Flatten(components.Transform.Get(playerEntry).Position.Sub(transform.Position))
	dir, ok := gamemath.SafeNormalize(toPlayer)
	if !ok {
		return
	}
	transform.Yaw = gamemath.ExpDecayAngle(transform.Yaw, gamemath.YawOf(dir), cfg.Enemy.TurnSpeed, dt)

	if toPlayer.Len() > cfg.Enemy.AttackRange {
		physics.MoveDelta = dir.Mul(cfg.Enemy.MoveSpeed * dt)
		return
	}

	if enemy.AttackTimer <= 0 && combat.State == components.CombatIdle {
		combat.BufferInput(cfg.InputLight, 0)
		enemy.AttackTimer = cfg.Enemy.AttackPeriod
	}
}
