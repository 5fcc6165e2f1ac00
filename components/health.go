package components

import "github.com/yohamta/donburi"

type HealthData struct {
	Current int
	Max     int
	IFrames float64 // seconds of invulnerability left
	Dead    bool

	// The attacker whose hit armed IFrames on the current tick. Its other
	// hitboxes still land until UpdateHealth ends the tick.
	ArmedBy   donburi.Entity
	ArmedThis bool
}

// Invulnerable reports whether incoming damage is currently dropped.
func (h *HealthData) Invulnerable() bool {
	return h.IFrames > 0
}

// Blocks reports whether a hit from source is dropped by i-frames. Contacts
// from the attacker that armed them on this tick stack instead.
func (h *HealthData) Blocks(source donburi.Entity) bool {
	if !h.Invulnerable() {
		return false
	}
	return !h.ArmedThis || source == donburi.Null || source != h.ArmedBy
}

// ArmIFrames restarts invulnerability after a hit from source.
func (h *HealthData) ArmIFrames(d float64, source donburi.Entity) {
	h.IFrames = d
	h.ArmedBy = source
	h.ArmedThis = true
}

// GrantInvulnerability extends the i-frame timer to at least d seconds.
// Granted time blocks every source.
func (h *HealthData) GrantInvulnerability(d float64) {
	if d > h.IFrames {
		h.IFrames = d
	}
	h.ArmedThis = false
}

var Health = donburi.NewComponentType[HealthData]()
