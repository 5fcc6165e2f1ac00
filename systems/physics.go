package systems

import (
	"math"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// groundProbeDepth is how far below the feet the ground snap looks.
const groundProbeDepth = 50.0

func UpdatePhysics(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	space := getSpace(ecs)

	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(components.Transform) {
			return
		}
		physics := components.Physics.Get(e)
		transform := components.Transform.Get(e)

		if physics.Kinematic {
			physics.MoveDelta = mgl64.Vec3{}
			physics.Velocity = mgl64.Vec3{}
			syncObject(e)
			return
		}

		// Horizontal velocity decays; knockback fades out the same way.
		decay := math.Exp(-physics.Friction * dt)
		physics.Velocity[0] *= decay
		physics.Velocity[2] *= decay

		// Apply gravity
		physics.Velocity[1] -= physics.Gravity * dt

		delta := physics.MoveDelta.Add(physics.Velocity.Mul(dt))
		physics.MoveDelta = mgl64.Vec3{}
		MoveBody(space, e, delta)

		feet := transform.Position.Y()
		next := feet + delta.Y()
		physics.OnGround = false
		if ground, ok := ProbeGround(space, transform.Position.X(), feet+physics.StepHeight, transform.Position.Z(), groundProbeDepth); ok && next <= ground {
			next = ground
			if physics.Velocity[1] < 0 {
				physics.Velocity[1] = 0
			}
			physics.OnGround = true
		}
		transform.Position[1] = next

		Depenetrate(space, e)
	})
}
