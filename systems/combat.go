package systems

import (
	"log"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCombat advances combo timers, buffers player attack input and starts
// attacks whose buffered input can be consumed.
func UpdateCombat(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	input := currentInput(ecs)

	components.Combat.Each(ecs.World, func(e *donburi.Entry) {
		combat := components.Combat.Get(e)
		if combat.Disabled {
			return
		}
		if combat.Graph == nil {
			log.Printf("Warning: entity %v has no combo graph, combat disabled", e.Entity())
			combat.Disabled = true
			return
		}
		if e.HasComponent(components.Health) && components.Health.Get(e).Dead {
			return
		}

		combat.Tick(dt)

		if e.HasComponent(components.Player) && !guarding(e) {
			if input.JustPressed(cfg.ActionLightAttack) {
				combat.BufferInput(cfg.InputLight, 0)
			}
			if input.JustPressed(cfg.ActionMediumAttack) {
				combat.BufferInput(cfg.InputMedium, 0)
			}
		}

		if m := combat.TryAdvance(ClassifyAttackDirection(ecs, e)); m != nil {
			startAttack(ecs, e, m)
		}
	})
}

func guarding(e *donburi.Entry) bool {
	return e.HasComponent(components.Stance) && components.Stance.Get(e).Held
}

// startAttack plays the clip of a step the state machine just entered.
func startAttack(ecs *ecs.ECS, e *donburi.Entry, m *cfg.Move) {
	deactivateAllHitboxes(ecs, e)
	FaceLockTarget(ecs, e)
	if e.HasComponent(components.Animation) {
		components.Animation.Get(e).Play(m.Clip)
	}
}

// --------------------------------------------------------------------
// Animation lifecycle callbacks. Each tolerates being called in any
// order; calls that do not fit the current state are no-ops.
// --------------------------------------------------------------------

func combatOf(e *donburi.Entry) *components.CombatData {
	if e == nil || !e.Valid() || !e.HasComponent(components.Combat) {
		return nil
	}
	return components.Combat.Get(e)
}

// AttackBegin marks the start of the actionable frames.
func AttackBegin(ecs *ecs.ECS, e *donburi.Entry) {
	if combat := combatOf(e); combat != nil {
		combat.OnAttackBegin()
	}
}

// HitboxOn activates the named hitbox of e.
func HitboxOn(ecs *ecs.ECS, e *donburi.Entry, id string) {
	SetHitboxByID(ecs, e, id, true)
}

// HitboxOff deactivates the named hitbox of e.
func HitboxOff(ecs *ecs.ECS, e *donburi.Entry, id string) {
	SetHitboxByID(ecs, e, id, false)
}

func CancelWindowOpen(ecs *ecs.ECS, e *donburi.Entry) {
	if combat := combatOf(e); combat != nil {
		combat.OnCancelWindowOpen()
	}
}

func CancelWindowClose(ecs *ecs.ECS, e *donburi.Entry) {
	if combat := combatOf(e); combat != nil {
		combat.OnCancelWindowClose()
	}
}

// AttackEnd closes the current attack and chains into the next step when a
// valid buffered input is waiting.
func AttackEnd(ecs *ecs.ECS, e *donburi.Entry) {
	combat := combatOf(e)
	if combat == nil || combat.State != components.CombatAttacking {
		return
	}
	deactivateAllHitboxes(ecs, e)
	if next := combat.OnAttackEnd(ClassifyAttackDirection(ecs, e)); next != nil {
		startAttack(ecs, e, next)
	}
}

// SetHitboxByID toggles a hitbox registered on owner. Unknown ids are
// ignored. It reports whether the hitbox changed state.
func SetHitboxByID(ecs *ecs.ECS, owner *donburi.Entry, id string, active bool) bool {
	if owner == nil || !owner.Valid() || !owner.HasComponent(components.HitboxSet) {
		return false
	}
	hb := components.HitboxSet.Get(owner).Lookup(id)
	if hb == nil {
		return false
	}
	return ActivateHitbox(ecs, hb, active)
}

func deactivateAllHitboxes(ecs *ecs.ECS, owner *donburi.Entry) {
	if !owner.HasComponent(components.HitboxSet) {
		return
	}
	set := components.HitboxSet.Get(owner)
	for _, id := range set.Order {
		if hb := set.Lookup(id); hb != nil {
			ActivateHitbox(ecs, hb, false)
		}
	}
}

// ReloadCombo swaps the combo graph of every actor using name. Actors keep
// their current step; branches resolve through the new graph from the next
// lookup on.
func ReloadCombo(ecs *ecs.ECS, name string, graph *cfg.ComboGraph) int {
	n := 0
	components.Combat.Each(ecs.World, func(e *donburi.Entry) {
		combat := components.Combat.Get(e)
		if combat.Graph == nil || combat.Graph.Name != name {
			return
		}
		combat.Graph = graph
		if combat.Current != nil {
			if m := graph.Move(combat.Current.ID); m != nil {
				combat.Current = m
			}
		}
		n++
	})
	return n
}
