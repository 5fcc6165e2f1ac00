package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionLightAttack
	ActionMediumAttack
	ActionGuard
	ActionLockOn
	ActionCycleLeft
	ActionCycleRight
	ActionWideFOV
	ActionDebug
	ActionRestart
	ActionCount // Must be last - used for array sizing
)

// AxisID represents a continuous input axis
type AxisID int

const (
	AxisMoveX AxisID = iota
	AxisMoveY
	AxisLookX
	AxisLookY
	AxisZoom
	AxisCycle
	AxisCount
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	MouseButtons           []ebiten.MouseButton
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// AxisBinding maps a pair of keys and a gamepad axis onto a normalized axis
type AxisBinding struct {
	Negative      []ebiten.Key
	Positive      []ebiten.Key
	GamepadAxis   ebiten.StandardGamepadAxis
	HasGamepad    bool
	InvertGamepad bool // stick up reads negative
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	Axes     map[AxisID]AxisBinding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
	// MouseLookScale converts cursor pixels per tick into look axis units
	MouseLookScale float64
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.2,
		MouseLookScale: 0.15,
		Bindings: map[ActionID]InputBinding{
			ActionLightAttack: {
				Keys:         []ebiten.Key{ebiten.KeyJ},
				MouseButtons: []ebiten.MouseButton{ebiten.MouseButtonLeft},
				// X / Square button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightLeft,
				},
			},
			ActionMediumAttack: {
				Keys:         []ebiten.Key{ebiten.KeyK},
				MouseButtons: []ebiten.MouseButton{ebiten.MouseButtonRight},
				// Y / Triangle button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightTop,
				},
			},
			ActionGuard: {
				Keys: []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyL},
				// Left bumper
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonFrontTopLeft,
				},
			},
			ActionLockOn: {
				Keys:         []ebiten.Key{ebiten.KeyTab},
				MouseButtons: []ebiten.MouseButton{ebiten.MouseButtonMiddle},
				// Right stick click
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightStick,
				},
			},
			ActionCycleLeft: {
				Keys: []ebiten.Key{ebiten.KeyQ},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftLeft,
				},
			},
			ActionCycleRight: {
				Keys: []ebiten.Key{ebiten.KeyE},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftRight,
				},
			},
			ActionWideFOV: {
				Keys: []ebiten.Key{ebiten.KeyV},
			},
			ActionDebug: {
				Keys: []ebiten.Key{ebiten.KeyF1},
			},
			ActionRestart: {
				Keys: []ebiten.Key{ebiten.KeyF5},
				// Select / Back button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterLeft,
				},
			},
		},
		Axes: map[AxisID]AxisBinding{
			AxisMoveX: {
				Negative:    []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft},
				Positive:    []ebiten.Key{ebiten.KeyD, ebiten.KeyRight},
				GamepadAxis: ebiten.StandardGamepadAxisLeftStickHorizontal,
				HasGamepad:  true,
			},
			AxisMoveY: {
				Negative:      []ebiten.Key{ebiten.KeyS, ebiten.KeyDown},
				Positive:      []ebiten.Key{ebiten.KeyW, ebiten.KeyUp},
				GamepadAxis:   ebiten.StandardGamepadAxisLeftStickVertical,
				HasGamepad:    true,
				InvertGamepad: true,
			},
			AxisLookX: {
				GamepadAxis: ebiten.StandardGamepadAxisRightStickHorizontal,
				HasGamepad:  true,
			},
			AxisLookY: {
				GamepadAxis: ebiten.StandardGamepadAxisRightStickVertical,
				HasGamepad:  true,
			},
			AxisZoom: {
				Negative: []ebiten.Key{ebiten.KeyMinus},
				Positive: []ebiten.Key{ebiten.KeyEqual},
			},
			AxisCycle: {
				GamepadAxis: ebiten.StandardGamepadAxisRightStickHorizontal,
				HasGamepad:  true,
			},
		},
	}
}
