package components

import "github.com/yohamta/donburi"

// DeathData marks an actor whose health reached zero. Timer counts down in
// seconds; enemies are removed and the player respawns when it runs out.
type DeathData struct {
	Timer float64
}

var Death = donburi.NewComponentType[DeathData]()
