package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type HitboxData struct {
	ID     string
	Owner  *donburi.Entry // The actor this hitbox is bound to
	Active bool
	Mask   []string   // resolv tags of colliders eligible for damage
	Offset mgl64.Vec3 // center in owner space (X right, Y up, Z forward)
	Size   mgl64.Vec3 // width, height, depth

	// MinForwardDot rejects targets whose direction from the owner is less
	// aligned with the owner's facing. -1 accepts everything.
	MinForwardDot float64

	// HitEntities holds the targets already hit during this activation.
	HitEntities map[donburi.Entity]bool
}

// SetActive toggles the hitbox and reports whether the state changed. The
// hit registry is cleared on every inactive to active transition.
func (h *HitboxData) SetActive(active bool) bool {
	if h.Active == active {
		return false
	}
	if active {
		h.HitEntities = make(map[donburi.Entity]bool)
	}
	h.Active = active
	return true
}

// MarkHit records target and reports false if it was already hit during
// this activation.
func (h *HitboxData) MarkHit(target donburi.Entity) bool {
	if h.HitEntities == nil {
		h.HitEntities = make(map[donburi.Entity]bool)
	}
	if h.HitEntities[target] {
		return false
	}
	h.HitEntities[target] = true
	return true
}

// Eligible reports whether any of the collider tags match the damage mask.
func (h *HitboxData) Eligible(colliderTags []string) bool {
	for _, m := range h.Mask {
		for _, t := range colliderTags {
			if m == t {
				return true
			}
		}
	}
	return false
}

// HitboxSetData is the registered set of hitboxes of an actor, keyed by id.
type HitboxSetData struct {
	Hitboxes map[string]*donburi.Entry
	Order    []string
}

// Add registers a hitbox entry under id.
func (s *HitboxSetData) Add(id string, e *donburi.Entry) {
	if s.Hitboxes == nil {
		s.Hitboxes = make(map[string]*donburi.Entry)
	}
	if _, ok := s.Hitboxes[id]; !ok {
		s.Order = append(s.Order, id)
	}
	s.Hitboxes[id] = e
}

// Lookup returns the hitbox registered under id, or nil.
func (s *HitboxSetData) Lookup(id string) *donburi.Entry {
	e, ok := s.Hitboxes[id]
	if !ok || e == nil || !e.Valid() {
		return nil
	}
	return e
}

var Hitbox = donburi.NewComponentType[HitboxData]()
var HitboxSet = donburi.NewComponentType[HitboxSetData]()
