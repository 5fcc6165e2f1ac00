package systems

import (
	cfg "github.com/automoto/bladelock/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDebugToggle flips the debug overlay.
func UpdateDebugToggle(ecs *ecs.ECS) {
	if currentInput(ecs).JustPressed(cfg.ActionDebug) {
		cfg.Debug.Draw = !cfg.Debug.Draw
	}
}

// RestartRequested reports whether the arena should be rebuilt this tick.
func RestartRequested(ecs *ecs.ECS) bool {
	return currentInput(ecs).JustPressed(cfg.ActionRestart)
}
