package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// World axes. Y is up; yaw 0 faces +Z and grows toward +X.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	WorldZ  = mgl64.Vec3{0, 0, 1}
	WorldX  = mgl64.Vec3{1, 0, 0}
	epsilon = 1e-9
)

// Forward returns the unit direction for yaw/pitch in radians. Positive pitch
// looks down.
func Forward(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{cp * math.Sin(yaw), -math.Sin(pitch), cp * math.Cos(yaw)}
}

// Right returns the horizontal right vector for a yaw.
func Right(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// CameraUp returns the up vector of a camera oriented by yaw/pitch.
func CameraUp(yaw, pitch float64) mgl64.Vec3 {
	sp := math.Sin(pitch)
	return mgl64.Vec3{sp * math.Sin(yaw), math.Cos(pitch), sp * math.Cos(yaw)}
}

// Flatten projects v onto the horizontal plane.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// SafeNormalize returns the unit vector of v and false when v is too short.
func SafeNormalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < epsilon {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// YawOf returns the yaw angle of a direction.
func YawOf(dir mgl64.Vec3) float64 {
	return math.Atan2(dir.X(), dir.Z())
}

// PitchOf returns the pitch angle of a direction (positive = down).
func PitchOf(dir mgl64.Vec3) float64 {
	planar := math.Hypot(dir.X(), dir.Z())
	return -math.Atan2(dir.Y(), planar)
}

// WrapAngle wraps a radian angle into [-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// SignedAngleY returns the signed horizontal angle that rotates from onto to.
func SignedAngleY(from, to mgl64.Vec3) float64 {
	return WrapAngle(YawOf(to) - YawOf(from))
}

// AngleBetween returns the unsigned angle between a and b in radians.
func AngleBetween(a, b mgl64.Vec3) float64 {
	la, lb := a.Len(), b.Len()
	if la < epsilon || lb < epsilon {
		return 0
	}
	c := mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(c)
}

// RotateY rotates v about the vertical axis by angle radians.
func RotateY(v mgl64.Vec3, angle float64) mgl64.Vec3 {
	s, c := math.Sincos(angle)
	return mgl64.Vec3{v.X()*c + v.Z()*s, v.Y(), -v.X()*s + v.Z()*c}
}

// ClampLength scales v so its length lies in [min, max]. Zero vectors are returned unchanged.
func ClampLength(v mgl64.Vec3, min, max float64) mgl64.Vec3 {
	l := v.Len()
	if l < epsilon {
		return v
	}
	return v.Mul(mgl64.Clamp(l, min, max) / l)
}

// LerpVec3 linearly interpolates between a and b.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// PlanarDistance returns the horizontal distance between a and b.
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return math.Hypot(b.X()-a.X(), b.Z()-a.Z())
}
