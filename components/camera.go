package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FOVPulse widens the field of view and eases it back. Offset is in degrees.
type FOVPulse struct {
	Amount float64
	Out    *gween.Tween
	Back   *gween.Tween
	Offset float64
}

// Advance steps the pulse and reports whether it has finished.
func (p *FOVPulse) Advance(dt float64) bool {
	if p.Out != nil {
		v, done := p.Out.Update(float32(dt))
		p.Offset = float64(v) * p.Amount
		if done {
			p.Out = nil
		}
		return false
	}
	if p.Back != nil {
		v, done := p.Back.Update(float32(dt))
		p.Offset = float64(v) * p.Amount
		if done {
			p.Back = nil
			p.Offset = 0
			return true
		}
		return false
	}
	return true
}

type CameraData struct {
	Follow *donburi.Entry // entity the rig orbits

	Yaw             float64 // radians
	Pitch           float64 // radians, positive looks down
	DesiredDistance float64
	Distance        float64 // after collision clamping

	Position mgl64.Vec3
	Velocity mgl64.Vec3 // smoothing state
	Rotation mgl64.Quat
	Pivot    mgl64.Vec3

	FOV       float64 // degrees, current
	TargetFOV float64
	Wide      bool
	Pulse     *FOVPulse

	Initialized bool
}

var Camera = donburi.NewComponentType[CameraData]()
