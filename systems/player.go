package systems

import (
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePlayer turns move axes into camera-relative locomotion.
func UpdatePlayer(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	input := currentInput(ecs)

	components.Player.Each(ecs.World, func(playerEntry *donburi.Entry) {
		player := components.Player.Get(playerEntry)
		physics := components.Physics.Get(playerEntry)

		player.MoveInput = CameraRelativeMove(CameraYaw(playerEntry),
			input.Axis(cfg.AxisMoveX), input.Axis(cfg.AxisMoveY))

		if components.Health.Get(playerEntry).Dead || physics.Kinematic {
			physics.MoveDelta = mgl64.Vec3{}
			return
		}
		if combat := combatOf(playerEntry); combat != nil && combat.MovementLocked() {
			physics.MoveDelta = mgl64.Vec3{}
			return
		}

		physics.MoveDelta = player.MoveInput.Mul(cfg.Player.MoveSpeed * dt)
		steerActor(playerEntry, player.MoveInput, cfg.Player.TurnSpeed, dt)
	})
}

// steerActor turns e toward its lock target, or toward move when it is not
// locked and moving.
func steerActor(e *donburi.Entry, move mgl64.Vec3, turnSpeed, dt float64) {
	transform := components.Transform.Get(e)
	var desired float64
	if target := lockTargetOf(e); target != nil {
		dir, ok := gamemath.SafeNormalize(gamemath.Flatten(components.Transform.Get(target).Position.Sub(transform.Position)))
		if !ok {
			return
		}
		desired = gamemath.YawOf(dir)
	} else {
		dir, ok := gamemath.SafeNormalize(gamemath.Flatten(move))
		if !ok {
			return
		}
		desired = gamemath.YawOf(dir)
	}
	transform.Yaw = gamemath.ExpDecayAngle(transform.Yaw, desired, turnSpeed, dt)
}
