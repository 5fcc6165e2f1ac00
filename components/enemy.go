package components

import "github.com/yohamta/donburi"

type EnemyData struct {
	TypeName    string // combo graph name, e.g. "grunt"
	AttackTimer float64 // seconds until the next attack attempt
}

var Enemy = donburi.NewComponentType[EnemyData]()
