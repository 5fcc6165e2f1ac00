package systems

import (
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ClassifyAttackDirection reads the actor's planar move input against its
// attack reference: the direction to the lock target when locked, otherwise
// its facing.
func ClassifyAttackDirection(ecs *ecs.ECS, e *donburi.Entry) cfg.Direction {
	if !e.HasComponent(components.Player) || !e.HasComponent(components.Transform) {
		return cfg.DirectionNeutral
	}
	transform := components.Transform.Get(e)
	reference := transform.Forward()
	if target := lockTargetOf(e); target != nil {
		reference = components.Transform.Get(target).Position.Sub(transform.Position)
	}
	return ClassifyDirection(components.Player.Get(e).MoveInput, reference)
}

// ClassifyDirection buckets move by its angle to reference. Inputs inside
// the deadzone, and angles between the forward and backward thresholds,
// are neutral.
func ClassifyDirection(move, reference mgl64.Vec3) cfg.Direction {
	m := gamemath.Flatten(move)
	if m.Dot(m) < cfg.Combat.DirectionDeadzone {
		return cfg.DirectionNeutral
	}
	ref := gamemath.Flatten(reference)
	if _, ok := gamemath.SafeNormalize(ref); !ok {
		return cfg.DirectionNeutral
	}

	angle := mgl64.RadToDeg(gamemath.AngleBetween(m, ref))
	switch {
	case angle <= cfg.Combat.ForwardAngle:
		return cfg.DirectionForward
	case angle >= cfg.Combat.BackwardAngle:
		return cfg.DirectionBackward
	}
	return cfg.DirectionNeutral
}

// CameraRelativeMove turns stick/key axes into a planar world direction
// relative to the camera yaw. The result is at most unit length.
func CameraRelativeMove(yaw, x, y float64) mgl64.Vec3 {
	forward := gamemath.Forward(yaw, 0)
	right := gamemath.Right(yaw)
	move := right.Mul(x).Add(forward.Mul(y))
	if move.Len() > 1 {
		move = move.Normalize()
	}
	return move
}

// lockTargetOf returns the live lock target of the actor's camera rig.
func lockTargetOf(e *donburi.Entry) *donburi.Entry {
	if !e.HasComponent(components.Player) {
		return nil
	}
	rig := components.Player.Get(e).Rig
	if rig == nil || !rig.Valid() || !rig.HasComponent(components.LockOn) {
		return nil
	}
	lock := components.LockOn.Get(rig)
	if !lock.HasTarget() {
		return nil
	}
	return lock.Target
}

// FaceLockTarget turns the actor toward its lock target and reports whether
// it had one.
func FaceLockTarget(ecs *ecs.ECS, e *donburi.Entry) bool {
	target := lockTargetOf(e)
	if target == nil {
		return false
	}
	FacePoint(e, components.Transform.Get(target).Position)
	return true
}

// FacePoint sets the actor's yaw toward p on the horizontal plane.
func FacePoint(e *donburi.Entry, p mgl64.Vec3) {
	transform := components.Transform.Get(e)
	if dir, ok := gamemath.SafeNormalize(gamemath.Flatten(p.Sub(transform.Position))); ok {
		transform.Yaw = gamemath.YawOf(dir)
	}
}
