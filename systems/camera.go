package systems

import (
	"math"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera orbits every rig around its follow entity. Unlocked rigs
// turn with look input; locked rigs steer toward the target.
func UpdateCamera(e *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	input := currentInput(e)

	components.Camera.Each(e.World, func(rig *donburi.Entry) {
		cam := components.Camera.Get(rig)
		if cam.Follow == nil || !cam.Follow.Valid() {
			return
		}

		if input.JustPressed(cfg.ActionWideFOV) {
			SetWideFOV(rig, !cam.Wide)
		}

		followPos := components.Transform.Get(cam.Follow).Position
		pivotBase := followPos.Add(gamemath.Up.Mul(cfg.Camera.PivotHeight))
		lookPoint := pivotBase

		lookX := input.Axis(cfg.AxisLookX)
		lookY := input.Axis(cfg.AxisLookY)
		if cfg.Camera.InvertY {
			lookY = -lookY
		}

		var target *donburi.Entry
		if rig.HasComponent(components.LockOn) {
			if lock := components.LockOn.Get(rig); lock.HasTarget() {
				target = lock.Target
			}
		}

		if target != nil {
			aim := aimPoint(target)
			lookPoint = gamemath.LerpVec3(pivotBase, aim, cfg.Camera.LockLookBlend)

			if toTarget, ok := gamemath.SafeNormalize(gamemath.Flatten(aim.Sub(followPos))); ok {
				cam.Yaw = gamemath.ExpDecayAngle(cam.Yaw, gamemath.YawOf(toTarget), cfg.Camera.LockTurnSharpness, dt)
			}
			pitch := gamemath.PitchOf(lookPoint.Sub(pivotBase)) + mgl64.DegToRad(cfg.Camera.LockPitchBias)
			cam.Pitch = gamemath.ExpDecayAngle(cam.Pitch, pitch, cfg.Camera.LockTurnSharpness, dt)

			nudge := mgl64.DegToRad(cfg.Camera.NudgeSensitivity) * dt
			cam.Yaw += lookX * nudge
			cam.Pitch += lookY * nudge
		} else {
			turn := mgl64.DegToRad(cfg.Camera.LookSensitivity) * dt
			cam.Yaw += lookX * turn
			cam.Pitch += lookY * turn
		}
		cam.Yaw = gamemath.WrapAngle(cam.Yaw)
		cam.Pitch = mgl64.Clamp(cam.Pitch, mgl64.DegToRad(cfg.Camera.MinPitch), mgl64.DegToRad(cfg.Camera.MaxPitch))

		if zoom := input.Axis(cfg.AxisZoom); zoom != 0 {
			cam.DesiredDistance -= zoom * cfg.Camera.ZoomSpeed
			markSettingsDirty()
		}
		if cam.DesiredDistance <= 0 {
			cam.DesiredDistance = cfg.Camera.DefaultDistance
		}
		cam.DesiredDistance = mgl64.Clamp(cam.DesiredDistance, cfg.Camera.MinDistance, cfg.Camera.MaxDistance)

		cam.Pivot = pivotBase.Add(gamemath.Right(cam.Yaw).Mul(cfg.Camera.ShoulderOffset))
		forward := gamemath.Forward(cam.Yaw, cam.Pitch)
		desired := cam.Pivot.Sub(forward.Mul(cam.DesiredDistance))

		// Pull in ahead of geometry between the pivot and the camera.
		cam.Distance = cam.DesiredDistance
		if hit, ok := SphereCast(getSpace(e), cam.Pivot, desired, cfg.Camera.CollisionRadius); ok {
			cam.Distance = math.Max(hit.Distance-cfg.Camera.CollisionBuffer, cfg.Camera.MinDistance)
		}
		goal := cam.Pivot.Sub(forward.Mul(cam.Distance))
		if target == nil {
			lookPoint = cam.Pivot
		}

		if !cam.Initialized {
			cam.Position = goal
			cam.Velocity = mgl64.Vec3{}
			cam.Rotation = gamemath.LookRotation(lookPoint.Sub(goal))
			cam.FOV = cfg.Camera.DefaultFOV
			cam.Initialized = true
		} else {
			cam.Position = gamemath.SmoothDampVec3(cam.Position, goal, &cam.Velocity, cfg.Camera.PositionSmoothTime, dt)
			desiredRot := gamemath.LookRotation(lookPoint.Sub(cam.Position))
			cam.Rotation = gamemath.SlerpToward(cam.Rotation, desiredRot, cfg.Camera.RotationSharpness, dt)
		}

		updateFOV(cam, dt)
	})
}

func updateFOV(cam *components.CameraData, dt float64) {
	base := cfg.Camera.DefaultFOV
	if cam.Wide {
		base = cfg.Camera.WideFOV
	}
	offset := 0.0
	if cam.Pulse != nil {
		finished := cam.Pulse.Advance(dt)
		offset = cam.Pulse.Offset
		if finished {
			cam.Pulse = nil
		}
	}
	cam.TargetFOV = base + offset
	cam.FOV = gamemath.ExpDecay(cam.FOV, cam.TargetFOV, cfg.Camera.FOVSharpness, dt)
}

// PulseFOV briefly widens the rig's field of view by amount degrees. A new
// pulse replaces a running one.
func PulseFOV(rig *donburi.Entry, amount float64) {
	if rig == nil || !rig.Valid() || !rig.HasComponent(components.Camera) || amount == 0 {
		return
	}
	components.Camera.Get(rig).Pulse = &components.FOVPulse{
		Amount: amount,
		Out:    gween.New(0, 1, float32(cfg.Camera.PulseOutDuration), ease.OutQuad),
		Back:   gween.New(1, 0, float32(cfg.Camera.PulseBackDuration), ease.InOutQuad),
	}
}

// SetWideFOV switches the rig between its default and wide field of view.
func SetWideFOV(rig *donburi.Entry, wide bool) {
	if rig == nil || !rig.Valid() || !rig.HasComponent(components.Camera) {
		return
	}
	cam := components.Camera.Get(rig)
	if cam.Wide == wide {
		return
	}
	cam.Wide = wide
	markSettingsDirty()
}

// CameraYaw returns the yaw of the rig following e, or e's own facing.
func CameraYaw(e *donburi.Entry) float64 {
	if e.HasComponent(components.Player) {
		if rig := components.Player.Get(e).Rig; rig != nil && rig.Valid() && rig.HasComponent(components.Camera) {
			return components.Camera.Get(rig).Yaw
		}
	}
	return components.Transform.Get(e).Yaw
}
