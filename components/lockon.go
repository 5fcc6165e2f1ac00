package components

import "github.com/yohamta/donburi"

// LockOnData is the targeting state of a camera rig.
type LockOnData struct {
	Target *donburi.Entry // weak reference, cleared when invalid
	Locked bool

	CycleCooldown float64
	// CycleLatched is set after an axis flick and cleared when the axis
	// returns near zero.
	CycleLatched bool

	holds int
}

// Hold suspends automatic re-acquisition and cycling. Holds are counted.
func (l *LockOnData) Hold() {
	l.holds++
}

// Release drops one hold. Extra releases are ignored.
func (l *LockOnData) Release() {
	if l.holds > 0 {
		l.holds--
	}
}

func (l *LockOnData) Held() bool {
	return l.holds > 0
}

// HasTarget reports whether the rig is locked onto a live entity.
func (l *LockOnData) HasTarget() bool {
	return l.Locked && l.Target != nil && l.Target.Valid()
}

var LockOn = donburi.NewComponentType[LockOnData]()
