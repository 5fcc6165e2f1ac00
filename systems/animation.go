package systems

import (
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateAnimation advances attack clips and routes their authored events to
// the combat callbacks.
func UpdateAnimation(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	components.Animation.Each(ecs.World, func(e *donburi.Entry) {
		anim := components.Animation.Get(e)
		if !anim.Playing {
			return
		}
		finished := anim.Advance(dt, func(evt cfg.ClipEvent) {
			dispatchClipEvent(ecs, e, evt)
		})
		// Clips without an authored end still close the attack.
		if finished {
			AttackEnd(ecs, e)
		}
	})
}

func dispatchClipEvent(ecs *ecs.ECS, e *donburi.Entry, evt cfg.ClipEvent) {
	switch evt.Type {
	case cfg.ClipAttackBegin:
		AttackBegin(ecs, e)
	case cfg.ClipHitboxOn:
		HitboxOn(ecs, e, evt.Hitbox)
	case cfg.ClipHitboxOff:
		HitboxOff(ecs, e, evt.Hitbox)
	case cfg.ClipCancelOpen:
		CancelWindowOpen(ecs, e)
	case cfg.ClipCancelClose:
		CancelWindowClose(ecs, e)
	case cfg.ClipAttackEnd:
		AttackEnd(ecs, e)
	}
}
