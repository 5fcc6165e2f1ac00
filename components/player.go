package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	// MoveInput is the camera-relative planar move direction of this tick,
	// with magnitude up to 1.
	MoveInput mgl64.Vec3
	Rig       *donburi.Entry
}

var Player = donburi.NewComponentType[PlayerData]()
