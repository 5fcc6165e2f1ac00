package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	Velocity   mgl64.Vec3
	Gravity    float64
	Friction   float64 // horizontal decay per second
	StepHeight float64
	Radius     float64
	Height     float64
	OnGround   bool

	// MoveDelta is the displacement requested by locomotion this tick.
	MoveDelta mgl64.Vec3

	// Kinematic bodies are placed directly by a maneuver and skip integration.
	Kinematic bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
