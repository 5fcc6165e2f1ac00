package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// ObjectData is the footprint of an entity in the resolv space. The resolv
// plane maps world X to X and world Z to Y.
type ObjectData struct {
	*resolv.Object
	HalfWidth float64 // along world X
	HalfDepth float64 // along world Z
}

// SolidData is the vertical extent of a piece of arena geometry.
type SolidData struct {
	Name   string
	Bottom float64
	Top    float64
}

var Object = donburi.NewComponentType[ObjectData]()
var Solid = donburi.NewComponentType[SolidData]()
var Space = donburi.NewComponentType[resolv.Space]()
