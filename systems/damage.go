package systems

import (
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// TakeDamage is the only place health is reduced. The target's interceptor
// chain runs first; a consumed hit has no side effects. It reports whether
// the damage was applied.
func TakeDamage(ecs *ecs.ECS, target *donburi.Entry, ctx components.DamageContext) bool {
	if target == nil || !target.Valid() || !target.HasComponent(components.Health) {
		return false
	}

	if target.HasComponent(components.DamageReceiver) {
		if _, consumed := components.DamageReceiver.Get(target).Intercept(ctx); consumed {
			return false
		}
	}

	source := donburi.Null
	if ctx.Source != nil && ctx.Source.Valid() {
		source = ctx.Source.Entity()
	}

	hp := components.Health.Get(target)
	if hp.Dead || hp.Blocks(source) {
		return false
	}

	hp.Current -= ctx.Amount
	if hp.Current < 0 {
		hp.Current = 0
	}
	hp.ArmIFrames(cfg.Health.IFrameDuration, source)

	// Knockback along the hit direction plus a fixed upward bias.
	if target.HasComponent(components.Physics) {
		physics := components.Physics.Get(target)
		if !physics.Kinematic {
			impulse := gamemath.Flatten(ctx.HitDirection).Mul(ctx.Launch).Add(gamemath.Up.Mul(cfg.Health.KnockbackUpBias))
			physics.Velocity = physics.Velocity.Add(impulse)
		}
	}

	// Hurt reaction
	if target.HasComponent(components.Combat) {
		if components.Combat.Get(target).Stun(ctx.Stun) {
			interruptAttack(ecs, target)
		}
	}
	components.Hurt.Publish(ecs.World, components.HurtEvent{Entry: target, Context: ctx})
	components.HealthChanged.Publish(ecs.World, components.HealthChangedEvent{
		Entry:   target,
		Current: hp.Current,
		Max:     hp.Max,
	})

	if hp.Current <= 0 && !hp.Dead {
		hp.Dead = true
		components.Died.Publish(ecs.World, components.DiedEvent{Entry: target, Source: ctx.Source})
		startDeath(target)
	}
	return true
}

// interruptAttack stops the actor's clip and closes its hitboxes.
func interruptAttack(ecs *ecs.ECS, e *donburi.Entry) {
	if e.HasComponent(components.Animation) {
		components.Animation.Get(e).Stop()
	}
	deactivateAllHitboxes(ecs, e)
}

// UpdateHealth counts down invulnerability. It runs after hitboxes, so it
// also closes the window in which one attacker's hits stack.
func UpdateHealth(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	components.Health.Each(ecs.World, func(e *donburi.Entry) {
		hp := components.Health.Get(e)
		hp.ArmedThis = false
		if hp.IFrames > 0 {
			hp.IFrames -= dt
			if hp.IFrames < 0 {
				hp.IFrames = 0
			}
		}
	})
}
