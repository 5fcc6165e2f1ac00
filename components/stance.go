package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// SlideManeuver is an in-progress repositioning around an attacker. It is
// advanced once per tick by the stance system.
type SlideManeuver struct {
	Attacker *donburi.Entry // nil for a backstep
	Tween    *gween.Tween   // eased progress 0..1
	Progress float64

	// Arc slide
	StartDir mgl64.Vec3 // unit planar direction from attacker to defender
	Sweep    float64    // signed radians
	Radius   float64

	// Backstep
	Origin mgl64.Vec3
	Offset mgl64.Vec3
}

// StanceData is the defensive guard state of an actor.
type StanceData struct {
	Held        bool
	Interceptor InterceptorHandle // zero while not registered
	Slide       *SlideManeuver

	// PendingInvulnerability is granted on the next stance tick, after the
	// hit that triggered it has been applied.
	PendingInvulnerability float64

	// Rig is the lock-on rig held stable while sliding.
	Rig         *donburi.Entry
	HoldingLock bool

	Slides int // slides started, shown by the debug HUD
}

// Sliding reports whether a maneuver is in progress.
func (s *StanceData) Sliding() bool {
	return s.Slide != nil
}

var Stance = donburi.NewComponentType[StanceData]()
