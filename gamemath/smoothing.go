package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ExpDecay moves current toward target with framerate-independent
// exponential convergence.
func ExpDecay(current, target, sharpness, dt float64) float64 {
	if sharpness <= 0 {
		return target
	}
	return target + (current-target)*math.Exp(-sharpness*dt)
}

// ExpDecayAngle is ExpDecay along the shortest arc between two angles.
func ExpDecayAngle(current, target, sharpness, dt float64) float64 {
	delta := WrapAngle(target - current)
	return WrapAngle(target - ExpDecay(delta, 0, sharpness, dt))
}

// ExpBlend returns the interpolation factor ExpDecay uses for one step.
func ExpBlend(sharpness, dt float64) float64 {
	if sharpness <= 0 {
		return 1
	}
	return 1 - math.Exp(-sharpness*dt)
}

// SmoothDamp is a critically damped spring toward target. velocity is
// updated in place.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp

	// Prevent overshoot
	if (target-current > 0) == (out > target) {
		out = target
		*velocity = (out - target) / dt
	}
	return out
}

// SmoothDampVec3 applies SmoothDamp per axis.
func SmoothDampVec3(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, dt float64) mgl64.Vec3 {
	var out mgl64.Vec3
	for i := 0; i < 3; i++ {
		v := velocity[i]
		out[i] = SmoothDamp(current[i], target[i], &v, smoothTime, dt)
		velocity[i] = v
	}
	return out
}

// QuatFromYawPitch builds the camera rotation for yaw about Y followed by
// pitch about the local X axis.
func QuatFromYawPitch(yaw, pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, Up).Mul(mgl64.QuatRotate(pitch, WorldX))
}

// LookRotation returns the rotation whose forward axis points along dir.
func LookRotation(dir mgl64.Vec3) mgl64.Quat {
	return QuatFromYawPitch(YawOf(dir), PitchOf(dir))
}

// SlerpToward rotates current toward target with exponential sharpness.
func SlerpToward(current, target mgl64.Quat, sharpness, dt float64) mgl64.Quat {
	if current.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return mgl64.QuatSlerp(current, target, ExpBlend(sharpness, dt)).Normalize()
}

// QuatForward returns the +Z axis rotated by q.
func QuatForward(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(WorldZ)
}
