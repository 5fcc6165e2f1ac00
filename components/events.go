package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type HealthChangedEvent struct {
	Entry   *donburi.Entry
	Current int
	Max     int
}

type HurtEvent struct {
	Entry   *donburi.Entry
	Context DamageContext
}

type DiedEvent struct {
	Entry  *donburi.Entry
	Source *donburi.Entry
}

type HitboxToggledEvent struct {
	Hitbox *donburi.Entry
	ID     string
	Active bool
}

type HitContactEvent struct {
	Hitbox *donburi.Entry
	Target *donburi.Entry
	Point  mgl64.Vec3
}

type LockTargetChangedEvent struct {
	Rig      *donburi.Entry
	Previous *donburi.Entry
	Target   *donburi.Entry // nil when unlocked
}

var (
	HealthChanged     = events.NewEventType[HealthChangedEvent]()
	Hurt              = events.NewEventType[HurtEvent]()
	Died              = events.NewEventType[DiedEvent]()
	HitboxToggled     = events.NewEventType[HitboxToggledEvent]()
	HitContact        = events.NewEventType[HitContactEvent]()
	LockTargetChanged = events.NewEventType[LockTargetChangedEvent]()
)
