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

const stanceInterceptorName = "stance"

// UpdateStance samples the guard, keeps the stance interceptor registered
// only while guarding and not sliding, and advances an active slide.
func UpdateStance(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	input := currentInput(ecs)

	components.Stance.Each(ecs.World, func(e *donburi.Entry) {
		stance := components.Stance.Get(e)

		if stance.PendingInvulnerability > 0 && e.HasComponent(components.Health) {
			components.Health.Get(e).GrantInvulnerability(stance.PendingInvulnerability)
			stance.PendingInvulnerability = 0
		}

		if e.HasComponent(components.Player) {
			stance.Held = input.Pressed(cfg.ActionGuard)
		}
		if e.HasComponent(components.Health) && components.Health.Get(e).Dead {
			stance.Held = false
		}

		syncStanceInterceptor(ecs, e)

		if stance.Sliding() {
			advanceSlide(ecs, e, dt)
		}
	})
}

// syncStanceInterceptor registers or removes the guard interceptor so it is
// present exactly while the guard is held and no slide is running.
func syncStanceInterceptor(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.HasComponent(components.DamageReceiver) {
		return
	}
	stance := components.Stance.Get(e)
	receiver := components.DamageReceiver.Get(e)
	want := stance.Held && !stance.Sliding()

	switch {
	case want && stance.Interceptor == 0:
		stance.Interceptor = receiver.AddInterceptor(stanceInterceptorName, stanceInterceptor(ecs, e))
	case !want && stance.Interceptor != 0:
		receiver.RemoveInterceptor(stance.Interceptor)
		stance.Interceptor = 0
	}
}

func stanceInterceptor(ecs *ecs.ECS, e *donburi.Entry) components.Interceptor {
	return func(ctx components.DamageContext) bool {
		if !e.Valid() {
			return false
		}
		stance := components.Stance.Get(e)
		if !stance.Held || stance.Sliding() {
			return false
		}

		if cfg.Stance.IgnoreDamageInStance {
			if e.HasComponent(components.Health) {
				components.Health.Get(e).GrantInvulnerability(cfg.Stance.InvulnerabilityWindow)
			}
		} else {
			// Granting now would drop the hit this interceptor lets through.
			stance.PendingInvulnerability = cfg.Stance.InvulnerabilityWindow
		}

		StartSlide(ecs, e, ctx.Source)
		return cfg.Stance.IgnoreDamageInStance
	}
}

// StartSlide begins a repositioning maneuver around attacker, or a short
// backstep when there is no attacker. A running slide is restarted.
func StartSlide(ecs *ecs.ECS, e *donburi.Entry, attacker *donburi.Entry) {
	stance := components.Stance.Get(e)
	transform := components.Transform.Get(e)

	m := &components.SlideManeuver{}
	if attacker != nil && attacker.Valid() && attacker.Entity() != e.Entity() && attacker.HasComponent(components.Transform) {
		a := components.Transform.Get(attacker)
		offset := gamemath.Flatten(transform.Position.Sub(a.Position))
		if _, ok := gamemath.SafeNormalize(offset); !ok {
			offset = a.Forward()
		}
		offset = gamemath.ClampLength(offset, cfg.Stance.MinDistance, cfg.Stance.MaxDistance)
		start, _ := gamemath.SafeNormalize(offset)

		delta := gamemath.SignedAngleY(start, behind(a))
		arc := mgl64.DegToRad(cfg.Stance.ArcDegrees)
		sweep := math.Copysign(math.Min(math.Abs(delta), arc), delta)

		m.Attacker = attacker
		m.StartDir = start
		m.Sweep = sweep
		m.Radius = offset.Len()
		m.Tween = gween.New(0, 1, float32(cfg.Stance.Duration), ease.OutCubic)
	} else {
		m.Origin = transform.Position
		m.Offset = transform.Forward().Mul(-cfg.Stance.BackstepDistance)
		m.Tween = gween.New(0, 1, float32(cfg.Stance.BackstepDuration), ease.OutCubic)
	}

	stance.Slide = m
	stance.Slides++
	if e.HasComponent(components.Physics) {
		physics := components.Physics.Get(e)
		physics.Kinematic = true
		physics.Velocity = mgl64.Vec3{}
	}

	syncStanceInterceptor(ecs, e)

	if rig := stance.Rig; rig != nil && rig.Valid() {
		if !stance.HoldingLock && rig.HasComponent(components.LockOn) {
			components.LockOn.Get(rig).Hold()
			stance.HoldingLock = true
		}
		PulseFOV(rig, cfg.Stance.FOVPulseAmount)
	}
}

// behind returns the planar unit vector pointing out of the attacker's back.
func behind(a *components.TransformData) mgl64.Vec3 {
	return a.Forward().Mul(-1)
}

// SlideEndPoint is where a slide around attacker finishes.
func SlideEndPoint(m *components.SlideManeuver) (mgl64.Vec3, bool) {
	if m.Attacker == nil || !m.Attacker.Valid() {
		return m.Origin.Add(m.Offset), m.Attacker == nil
	}
	a := components.Transform.Get(m.Attacker)
	return a.Position.Add(behind(a).Mul(m.Radius)), true
}

func advanceSlide(ecs *ecs.ECS, e *donburi.Entry, dt float64) {
	stance := components.Stance.Get(e)
	m := stance.Slide
	transform := components.Transform.Get(e)
	space := getSpace(ecs)

	v, done := m.Tween.Update(float32(dt))
	m.Progress = float64(v)

	var point mgl64.Vec3
	switch {
	case m.Attacker == nil:
		point = m.Origin.Add(m.Offset.Mul(m.Progress))
	case !m.Attacker.Valid():
		// Attacker vanished mid-slide: stop where we are.
		endSlide(ecs, e)
		return
	default:
		a := components.Transform.Get(m.Attacker)
		dir := gamemath.RotateY(m.StartDir, m.Sweep*m.Progress)
		point = a.Position.Add(dir.Mul(m.Radius))
		if cfg.Stance.FaceAttackerDuringSlide {
			FacePoint(e, a.Position)
		}
	}

	if done {
		point, _ = SlideEndPoint(m)
	}

	current := transform.Position
	point[1] = current.Y()
	probeTop := current.Y() + cfg.Stance.GroundProbeUp
	if ground, ok := ProbeGround(space, point.X(), probeTop, point.Z(), cfg.Stance.GroundProbeUp+cfg.Stance.GroundProbeDown); ok {
		point[1] = ground
	}

	if done {
		transform.Position = point
		syncObject(e)
		Depenetrate(space, e)
		endSlide(ecs, e)
		return
	}

	MoveBody(space, e, point.Sub(current))
	transform.Position[1] = point.Y()
	syncObject(e)
}

func endSlide(ecs *ecs.ECS, e *donburi.Entry) {
	stance := components.Stance.Get(e)
	stance.Slide = nil
	if e.HasComponent(components.Physics) {
		components.Physics.Get(e).Kinematic = false
	}
	releaseStanceLock(stance)
	syncStanceInterceptor(ecs, e)
}

func releaseStanceLock(stance *components.StanceData) {
	if !stance.HoldingLock {
		return
	}
	stance.HoldingLock = false
	if rig := stance.Rig; rig != nil && rig.Valid() && rig.HasComponent(components.LockOn) {
		components.LockOn.Get(rig).Release()
	}
}
