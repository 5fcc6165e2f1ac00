package systems

import (
	"math"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateInput polls raw input and updates the Input component.
// Must run BEFORE every gameplay system in the tick.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}
	input.Axes = [cfg.AxisCount]float64{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var keyboardUsed, gamepadUsed bool

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}
		for _, btn := range binding.MouseButtons {
			if ebiten.IsMouseButtonPressed(btn) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
				}
			}
		}
	}

	for axisID, binding := range cfg.Input.Axes {
		value := 0.0
		for _, key := range binding.Negative {
			if ebiten.IsKeyPressed(key) {
				value--
				keyboardUsed = true
				break
			}
		}
		for _, key := range binding.Positive {
			if ebiten.IsKeyPressed(key) {
				value++
				keyboardUsed = true
				break
			}
		}
		if binding.HasGamepad {
			if v, ok := readGamepadAxis(binding.GamepadAxis); ok {
				if binding.InvertGamepad {
					v = -v
				}
				value += v
				gamepadUsed = true
			}
		}
		input.Axes[axisID] = clampAxis(value)
	}

	readMouse(input)

	// Update last input method - gamepad takes priority if both used
	if gamepadUsed {
		input.LastInputMethod = components.InputGamepad
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

var lastCursorX, lastCursorY int
var cursorSeen bool

// readMouse adds cursor motion to the look axes and the wheel to zoom.
func readMouse(input *components.InputData) {
	x, y := ebiten.CursorPosition()
	if cursorSeen {
		dx := float64(x-lastCursorX) * cfg.Input.MouseLookScale
		dy := float64(y-lastCursorY) * cfg.Input.MouseLookScale
		input.Axes[cfg.AxisLookX] = clampAxis(input.Axes[cfg.AxisLookX] + dx)
		input.Axes[cfg.AxisLookY] = clampAxis(input.Axes[cfg.AxisLookY] + dy)
	}
	lastCursorX, lastCursorY, cursorSeen = x, y, true

	_, wheel := ebiten.Wheel()
	input.Axes[cfg.AxisZoom] = clampAxis(input.Axes[cfg.AxisZoom] + wheel)
}

// readGamepadAxis returns the strongest deflection of axis over all
// connected gamepads. Values inside the deadzone do not count.
func readGamepadAxis(axis ebiten.StandardGamepadAxis) (float64, bool) {
	best, found := 0.0, false
	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		v := ebiten.StandardGamepadAxisValue(gpID, axis)
		if math.Abs(v) < cfg.Input.AnalogDeadzone {
			continue
		}
		if math.Abs(v) > math.Abs(best) {
			best, found = v, true
		}
	}
	return best, found
}

func clampAxis(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}

// currentInput returns the sampled input, or an empty sample when no input
// entity exists (tests, headless runs).
func currentInput(ecs *ecs.ECS) *components.InputData {
	if entry, ok := components.Input.First(ecs.World); ok {
		return components.Input.Get(entry)
	}
	return &components.InputData{}
}
