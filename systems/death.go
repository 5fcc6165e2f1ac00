package systems

import (
	"log"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	// corpseLinger is how long a dead enemy stays in the world before removal.
	corpseLinger = 1.0
	respawnDelay = 2.0
)

func startDeath(e *donburi.Entry) {
	if e.HasComponent(components.Death) {
		return
	}
	timer := corpseLinger
	if e.HasComponent(components.Player) {
		timer = respawnDelay
	}
	donburi.Add(e, components.Death, &components.DeathData{Timer: timer})
}

// UpdateDeaths removes dead enemies and respawns the player once their
// death timers run out.
func UpdateDeaths(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	var expired []*donburi.Entry

	components.Death.Each(ecs.World, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		death.Timer -= dt
		if death.Timer <= 0 {
			expired = append(expired, e)
		}
	})

	for _, e := range expired {
		if e.HasComponent(components.Player) {
			RespawnPlayer(ecs, e)
			continue
		}
		DestroyActor(ecs, e)
	}
}

// RespawnPlayer resets the player to the arena spawn with full health.
func RespawnPlayer(ecs *ecs.ECS, e *donburi.Entry) {
	donburi.Remove[components.DeathData](e, components.Death)

	hp := components.Health.Get(e)
	hp.Current = hp.Max
	hp.Dead = false
	hp.GrantInvulnerability(cfg.Health.IFrameDuration)

	if combat := combatOf(e); combat != nil {
		combat.Reset()
	}
	if e.HasComponent(components.Animation) {
		components.Animation.Get(e).Stop()
	}
	deactivateAllHitboxes(ecs, e)

	if arenaEntry, ok := components.Arena.First(ecs.World); ok {
		if arena := components.Arena.Get(arenaEntry).Arena; arena != nil {
			transform := components.Transform.Get(e)
			transform.Position = arena.PlayerSpawn.Position
			transform.Yaw = arena.PlayerSpawn.Yaw
		}
	} else {
		log.Printf("Warning: no arena loaded, respawning player in place")
	}
	if e.HasComponent(components.Physics) {
		components.Physics.Get(e).Velocity = mgl64.Vec3{}
	}
	syncObject(e)
	Depenetrate(getSpace(ecs), e)

	components.HealthChanged.Publish(ecs.World, components.HealthChangedEvent{
		Entry:   e,
		Current: hp.Current,
		Max:     hp.Max,
	})
}

// DestroyActor removes an actor, its hitboxes and colliders from the world.
// Interceptors are unregistered and rigs locked onto it are unlocked.
func DestroyActor(ecs *ecs.ECS, e *donburi.Entry) {
	if e == nil || !e.Valid() {
		return
	}
	space := getSpace(ecs)

	if e.HasComponent(components.HitboxSet) {
		set := components.HitboxSet.Get(e)
		for _, id := range set.Order {
			if hb := set.Lookup(id); hb != nil {
				removeObject(space, hb)
				ecs.World.Remove(hb.Entity())
			}
		}
		set.Hitboxes = nil
		set.Order = nil
	}

	if e.HasComponent(components.Stance) {
		stance := components.Stance.Get(e)
		if stance.Interceptor != 0 && e.HasComponent(components.DamageReceiver) {
			components.DamageReceiver.Get(e).RemoveInterceptor(stance.Interceptor)
			stance.Interceptor = 0
		}
		stance.Slide = nil
		releaseStanceLock(stance)
	}

	var rigs []*donburi.Entry
	components.LockOn.Each(ecs.World, func(rig *donburi.Entry) {
		if sameEntry(components.LockOn.Get(rig).Target, e) {
			rigs = append(rigs, rig)
		}
	})
	for _, rig := range rigs {
		Unlock(ecs, rig)
	}

	removeObject(space, e)
	ecs.World.Remove(e.Entity())
}

func removeObject(space *resolv.Space, e *donburi.Entry) {
	if space == nil || !e.HasComponent(components.Object) {
		return
	}
	if obj := components.Object.Get(e); obj.Object != nil && obj.Space != nil {
		space.Remove(obj.Object)
	}
}
