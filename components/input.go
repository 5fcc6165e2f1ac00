package components

import (
	cfg "github.com/automoto/bladelock/config"
	"github.com/yohamta/donburi"
)

// InputMethod represents the type of input device being used
type InputMethod int

const (
	InputKeyboard InputMethod = iota
	InputGamepad
)

// InputData stores the current and previous frame's pressed state for all
// actions plus the sampled axes. JustPressed/JustReleased are computed on
// demand by comparing frames.
type InputData struct {
	Current         [cfg.ActionCount]bool
	Previous        [cfg.ActionCount]bool
	Axes            [cfg.AxisCount]float64
	LastInputMethod InputMethod
}

func (i *InputData) Pressed(a cfg.ActionID) bool {
	return i.Current[a]
}

func (i *InputData) JustPressed(a cfg.ActionID) bool {
	return i.Current[a] && !i.Previous[a]
}

func (i *InputData) JustReleased(a cfg.ActionID) bool {
	return !i.Current[a] && i.Previous[a]
}

func (i *InputData) Axis(a cfg.AxisID) float64 {
	return i.Axes[a]
}

var Input = donburi.NewComponentType[InputData]()
