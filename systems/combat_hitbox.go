package systems

import (
	"github.com/automoto/bladelock/components"
	"github.com/automoto/bladelock/gamemath"
	"github.com/automoto/bladelock/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type hitboxContact struct {
	hitbox *donburi.Entry
	target *donburi.Entry
	point  mgl64.Vec3
}

// UpdateHitboxes moves hitboxes with their owners, then resolves contacts of
// the active ones.
func UpdateHitboxes(ecs *ecs.ECS) {
	var contacts []hitboxContact

	tags.Hitbox.Each(ecs.World, func(hitboxEntry *donburi.Entry) {
		hitbox := components.Hitbox.Get(hitboxEntry)
		if hitbox.Owner == nil || !hitbox.Owner.Valid() {
			return
		}

		// Update hitbox position to follow owner
		placeHitbox(hitboxEntry)
		if !hitbox.Active {
			return
		}
		contacts = append(contacts, findContacts(hitboxEntry)...)
	})

	// Damage is applied after the scan: a hit can stun the victim and close
	// its own hitboxes.
	for _, c := range contacts {
		applyContact(ecs, c.hitbox, c.target, c.point)
	}
}

// placeHitbox puts the hitbox center at its owner-space offset.
func placeHitbox(hitboxEntry *donburi.Entry) {
	hitbox := components.Hitbox.Get(hitboxEntry)
	owner := components.Transform.Get(hitbox.Owner)
	transform := components.Transform.Get(hitboxEntry)
	transform.Position = owner.Local(hitbox.Offset)
	transform.Yaw = owner.Yaw
	syncObject(hitboxEntry)
}

// findContacts lists the eligible colliders overlapping an active hitbox.
func findContacts(hitboxEntry *donburi.Entry) []hitboxContact {
	hitbox := components.Hitbox.Get(hitboxEntry)
	obj := components.Object.Get(hitboxEntry)
	center := components.Transform.Get(hitboxEntry).Position
	ownerTransform := components.Transform.Get(hitbox.Owner)

	check := obj.Check(0, 0, hitbox.Mask...)
	if check == nil {
		return nil
	}

	var found []hitboxContact
	for _, o := range check.ObjectsByTags(hitbox.Mask...) {
		// Other hitboxes are triggers and never take damage.
		if o.HasTags(tags.ResolvHitbox) {
			continue
		}
		target := entryOf(o)
		if target == nil || target.Entity() == hitbox.Owner.Entity() {
			continue
		}
		if !hitbox.Eligible(o.Tags()) {
			continue
		}

		bottom, top, ok := verticalExtent(o)
		if !ok || center.Y()+hitbox.Size.Y()/2 < bottom || center.Y()-hitbox.Size.Y()/2 > top {
			continue
		}

		if hitbox.MinForwardDot > -1 {
			targetPos := components.Transform.Get(target).Position
			dir, ok := gamemath.SafeNormalize(gamemath.Flatten(targetPos.Sub(ownerTransform.Position)))
			if ok && dir.Dot(ownerTransform.Forward()) < hitbox.MinForwardDot {
				continue
			}
		}

		contact := obj.Shape.Intersection(0, 0, o.Shape)
		if contact == nil {
			continue
		}
		found = append(found, hitboxContact{
			hitbox: hitboxEntry,
			target: target,
			point:  mgl64.Vec3{contact.Center.X(), center.Y(), contact.Center.Y()},
		})
	}
	return found
}

// applyContact reports the first contact of an activation with target and
// delivers the owner's current attack to it.
func applyContact(ecs *ecs.ECS, hitboxEntry, target *donburi.Entry, point mgl64.Vec3) bool {
	if !hitboxEntry.Valid() || !target.Valid() {
		return false
	}
	hitbox := components.Hitbox.Get(hitboxEntry)
	if !hitbox.Active || hitbox.Owner == nil || !hitbox.Owner.Valid() {
		return false
	}
	if !hitbox.MarkHit(target.Entity()) {
		return false
	}
	components.HitContact.Publish(ecs.World, components.HitContactEvent{
		Hitbox: hitboxEntry,
		Target: target,
		Point:  point,
	})

	// The contact is reported either way; damage needs a current attack.
	combat := combatOf(hitbox.Owner)
	if combat == nil || combat.Current == nil {
		return false
	}

	owner := components.Transform.Get(hitbox.Owner)
	dir, ok := gamemath.SafeNormalize(gamemath.Flatten(components.Transform.Get(target).Position.Sub(owner.Position)))
	if !ok {
		dir = owner.Forward()
	}

	move := combat.Current
	return TakeDamage(ecs, target, components.DamageContext{
		Amount:       move.Damage,
		Stun:         move.Stun,
		Launch:       move.Launch,
		Source:       hitbox.Owner,
		HitPoint:     point,
		HitDirection: dir,
	})
}

// ActivateHitbox toggles a hitbox and its collider. Turning it on clears the
// targets it already hit. It reports whether the state changed.
func ActivateHitbox(ecs *ecs.ECS, hitboxEntry *donburi.Entry, active bool) bool {
	hitbox := components.Hitbox.Get(hitboxEntry)
	if !hitbox.SetActive(active) {
		return false
	}

	if space := getSpace(ecs); space != nil {
		obj := components.Object.Get(hitboxEntry).Object
		if active {
			if hitbox.Owner != nil && hitbox.Owner.Valid() {
				placeHitbox(hitboxEntry)
			}
			space.Add(obj)
		} else {
			space.Remove(obj)
		}
	}

	components.HitboxToggled.Publish(ecs.World, components.HitboxToggledEvent{
		Hitbox: hitboxEntry,
		ID:     hitbox.ID,
		Active: active,
	})
	return true
}
