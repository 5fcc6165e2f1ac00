package factory

import (
	"github.com/automoto/bladelock/archetypes"
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateCamera spawns a lock-on camera rig. It starts following nothing;
// CreatePlayer attaches it.
func CreateCamera(ecs *ecs.ECS) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{
		DesiredDistance: cfg.Camera.DefaultDistance,
		Distance:        cfg.Camera.DefaultDistance,
		Pitch:           mgl64.DegToRad(15),
		Rotation:        mgl64.QuatIdent(),
		FOV:             cfg.Camera.DefaultFOV,
		TargetFOV:       cfg.Camera.DefaultFOV,
	})
	return camera
}
