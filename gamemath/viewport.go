package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport projects world points into a camera's normalized viewport.
// Coordinates are centered: (0,0) is the middle of the screen and the
// visible range is [-0.5, 0.5] on both axes.
type Viewport struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
	FOV      float64 // vertical, degrees
	Aspect   float64
}

// Forward returns the viewing direction.
func (v Viewport) Forward() mgl64.Vec3 {
	return Forward(v.Yaw, v.Pitch)
}

// Project returns the centered viewport coordinates of p and whether p lies
// in front of the camera.
func (v Viewport) Project(p mgl64.Vec3) (x, y float64, inFront bool) {
	rel := p.Sub(v.Position)
	fwd := Forward(v.Yaw, v.Pitch)
	depth := rel.Dot(fwd)
	if depth <= epsilon {
		return 0, 0, false
	}

	halfH := math.Tan(mgl64.DegToRad(v.FOV) / 2)
	aspect := v.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	halfW := halfH * aspect

	x = rel.Dot(Right(v.Yaw)) / (depth * halfW) * 0.5
	y = rel.Dot(CameraUp(v.Yaw, v.Pitch)) / (depth * halfH) * 0.5
	return x, y, true
}
