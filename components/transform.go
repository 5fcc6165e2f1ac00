package components

import (
	"github.com/automoto/bladelock/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TransformData is the world placement of an entity. Position is at the
// entity's feet; Yaw 0 faces +Z.
type TransformData struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Forward returns the horizontal facing direction.
func (t *TransformData) Forward() mgl64.Vec3 {
	return gamemath.Forward(t.Yaw, 0)
}

// Local converts an owner-space offset (X right, Y up, Z forward) to world space.
func (t *TransformData) Local(offset mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(gamemath.RotateY(offset, t.Yaw))
}

var Transform = donburi.NewComponentType[TransformData]()
