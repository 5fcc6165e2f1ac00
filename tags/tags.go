package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Enemy  = donburi.NewTag().SetName("Enemy")
	Hitbox = donburi.NewTag().SetName("Hitbox")
	Solid  = donburi.NewTag().SetName("Solid")
	Camera = donburi.NewTag().SetName("Camera")
)

// Resolv tags for collision queries
const (
	ResolvSolid     = "solid"
	ResolvGround    = "ground"
	ResolvCharacter = "character"
	ResolvPlayer    = "Player"
	ResolvEnemy     = "Enemy"
	ResolvHitbox    = "hitbox"
	ResolvProbe     = "probe"
)
