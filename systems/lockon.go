package systems

import (
	"math"
	"sort"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/gamemath"
	"github.com/automoto/bladelock/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	CycleLeft  = -1
	CycleRight = 1
)

// LockCandidate is an enemy that passed every acquisition test.
type LockCandidate struct {
	Entry     *donburi.Entry
	Score     float64
	Angle     float64 // radians from the viewport center
	Distance  float64 // from the follow entity
	ViewportX float64
	ViewportY float64
}

// UpdateLockOn handles lock input, re-checks the current target and cycles.
func UpdateLockOn(ecs *ecs.ECS) {
	dt := cfg.C.DeltaTime()
	input := currentInput(ecs)

	components.LockOn.Each(ecs.World, func(rig *donburi.Entry) {
		if !rig.HasComponent(components.Camera) {
			return
		}
		lock := components.LockOn.Get(rig)
		cam := components.Camera.Get(rig)
		if cam.Follow == nil || !cam.Follow.Valid() {
			if lock.Locked {
				Unlock(ecs, rig)
			}
			return
		}

		if lock.CycleCooldown > 0 {
			lock.CycleCooldown -= dt
		}

		// Lock input
		if cfg.LockOn.HoldToLock {
			held := input.Pressed(cfg.ActionLockOn)
			if held && !lock.Locked {
				TryLock(ecs, rig)
			} else if !held && lock.Locked {
				Unlock(ecs, rig)
			}
		} else if input.JustPressed(cfg.ActionLockOn) {
			if lock.Locked {
				Unlock(ecs, rig)
			} else {
				TryLock(ecs, rig)
			}
		}

		if !lock.Locked {
			return
		}

		// Validity re-check
		if !TargetValid(ecs, rig, lock.Target) {
			if lock.Held() && lock.Target != nil && lock.Target.Valid() && !isDead(lock.Target) {
				// Held targets only drop when they die or disappear.
			} else if lock.Held() {
				Unlock(ecs, rig)
				return
			} else if next := AcquireTarget(ecs, rig); next != nil {
				SetLockTarget(ecs, rig, next)
			} else {
				Unlock(ecs, rig)
				return
			}
		}

		if lock.Held() {
			return
		}
		if dir := cycleRequest(input, lock); dir != 0 && lock.CycleCooldown <= 0 {
			CycleTarget(ecs, rig, dir)
			lock.CycleCooldown = cfg.LockOn.CycleCooldown
		}
	})
}

// cycleRequest turns cycle buttons and axis flicks into a direction. An
// axis flick fires once until the axis returns near zero.
func cycleRequest(input *components.InputData, lock *components.LockOnData) int {
	axis := input.Axis(cfg.AxisCycle)
	if math.Abs(axis) < cfg.LockOn.CycleAxisRelease {
		lock.CycleLatched = false
	}

	switch {
	case input.JustPressed(cfg.ActionCycleLeft):
		return CycleLeft
	case input.JustPressed(cfg.ActionCycleRight):
		return CycleRight
	}

	if !lock.CycleLatched && math.Abs(axis) >= cfg.LockOn.CycleAxisThreshold {
		lock.CycleLatched = true
		if axis < 0 {
			return CycleLeft
		}
		return CycleRight
	}
	return 0
}

// TryLock acquires the best target and locks onto it. The rig stays
// unlocked when nothing qualifies.
func TryLock(ecs *ecs.ECS, rig *donburi.Entry) bool {
	target := AcquireTarget(ecs, rig)
	if target == nil {
		return false
	}
	SetLockTarget(ecs, rig, target)
	return true
}

// Unlock clears the lock and its target.
func Unlock(ecs *ecs.ECS, rig *donburi.Entry) {
	lock := components.LockOn.Get(rig)
	lock.Locked = false
	setTarget(ecs, rig, nil)
}

// SetLockTarget locks the rig onto target.
func SetLockTarget(ecs *ecs.ECS, rig *donburi.Entry, target *donburi.Entry) {
	components.LockOn.Get(rig).Locked = true
	setTarget(ecs, rig, target)
}

func setTarget(ecs *ecs.ECS, rig *donburi.Entry, target *donburi.Entry) {
	lock := components.LockOn.Get(rig)
	prev := lock.Target
	if sameEntry(prev, target) {
		return
	}
	lock.Target = target
	components.LockTargetChanged.Publish(ecs.World, components.LockTargetChangedEvent{
		Rig:      rig,
		Previous: prev,
		Target:   target,
	})
}

func sameEntry(a, b *donburi.Entry) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Entity() == b.Entity()
}

func isDead(e *donburi.Entry) bool {
	return e.HasComponent(components.Health) && components.Health.Get(e).Dead
}

// viewportOf is the projection the rig currently renders with.
func viewportOf(cam *components.CameraData) gamemath.Viewport {
	fov := cam.FOV
	if fov <= 0 {
		fov = cfg.Camera.DefaultFOV
	}
	return gamemath.Viewport{
		Position: cam.Position,
		Yaw:      cam.Yaw,
		Pitch:    cam.Pitch,
		FOV:      fov,
		Aspect:   cfg.Camera.Aspect,
	}
}

// aimPoint is the point on an actor the camera aims at.
func aimPoint(e *donburi.Entry) mgl64.Vec3 {
	pos := components.Transform.Get(e).Position
	if e.HasComponent(components.Physics) {
		return pos.Add(gamemath.Up.Mul(components.Physics.Get(e).Height / 2))
	}
	return pos
}

// nearbyEnemies returns live enemies whose footprint lies in the square
// around center, sorted by entity id.
func nearbyEnemies(ecs *ecs.ECS, center mgl64.Vec3, radius float64) []*donburi.Entry {
	var found []*donburi.Entry
	space := getSpace(ecs)
	if space == nil {
		tags.Enemy.Each(ecs.World, func(e *donburi.Entry) {
			found = append(found, e)
		})
	} else {
		withProbe(space, center.X()-radius, center.Z()-radius, 2*radius, 2*radius, func(probe *resolv.Object) {
			check := probe.Check(0, 0, tags.ResolvEnemy)
			if check == nil {
				return
			}
			seen := make(map[donburi.Entity]bool)
			for _, o := range check.ObjectsByTags(tags.ResolvEnemy) {
				if e := entryOf(o); e != nil && e.HasComponent(tags.Enemy) && !seen[e.Entity()] {
					seen[e.Entity()] = true
					found = append(found, e)
				}
			}
		})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Entity() < found[j].Entity() })
	return found
}

// LockCandidates evaluates every enemy around the follow entity and returns
// those that pass the range, cone and line-of-sight tests, best first.
func LockCandidates(ecs *ecs.ECS, rig *donburi.Entry) []LockCandidate {
	cam := components.Camera.Get(rig)
	if cam.Follow == nil || !cam.Follow.Valid() {
		return nil
	}
	origin := components.Transform.Get(cam.Follow).Position
	view := viewportOf(cam)
	forward := view.Forward()
	limit := cfg.LockOn.Radius + cfg.LockOn.RangeTolerance

	var out []LockCandidate
	for _, e := range nearbyEnemies(ecs, origin, limit) {
		if c, ok := evaluateCandidate(ecs, cam, view, forward, origin, e); ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

func evaluateCandidate(ecs *ecs.ECS, cam *components.CameraData, view gamemath.Viewport, forward, origin mgl64.Vec3, e *donburi.Entry) (LockCandidate, bool) {
	if !e.Valid() || !e.HasComponent(components.Transform) || isDead(e) {
		return LockCandidate{}, false
	}
	aim := aimPoint(e)
	dist := components.Transform.Get(e).Position.Sub(origin).Len()
	if dist > cfg.LockOn.Radius+cfg.LockOn.RangeTolerance {
		return LockCandidate{}, false
	}

	angle := gamemath.AngleBetween(forward, aim.Sub(view.Position))
	if mgl64.RadToDeg(angle) > cfg.LockOn.MaxAngle {
		return LockCandidate{}, false
	}

	if hit, blocked := Linecast(getSpace(ecs), view.Position, aim, cam.Follow, e); blocked && hit.Entry != nil {
		return LockCandidate{}, false
	}

	x, y, _ := view.Project(aim)
	return LockCandidate{
		Entry:     e,
		Score:     angle*cfg.LockOn.AngleWeight + dist*cfg.LockOn.DistanceWeight,
		Angle:     angle,
		Distance:  dist,
		ViewportX: x,
		ViewportY: y,
	}, true
}

// AcquireTarget returns the lowest scoring candidate, or nil.
func AcquireTarget(ecs *ecs.ECS, rig *donburi.Entry) *donburi.Entry {
	cands := LockCandidates(ecs, rig)
	if len(cands) == 0 {
		return nil
	}
	return cands[0].Entry
}

// TargetValid re-runs the acquisition tests for the current target.
func TargetValid(ecs *ecs.ECS, rig *donburi.Entry, target *donburi.Entry) bool {
	if target == nil || !target.Valid() || !target.HasComponent(tags.Enemy) {
		return false
	}
	cam := components.Camera.Get(rig)
	if cam.Follow == nil || !cam.Follow.Valid() {
		return false
	}
	view := viewportOf(cam)
	_, ok := evaluateCandidate(ecs, cam, view, view.Forward(), components.Transform.Get(cam.Follow).Position, target)
	return ok
}

// CycleTarget moves the lock to the next candidate on the requested side of
// the current target and returns it. Without a candidate the lock stays.
func CycleTarget(ecs *ecs.ECS, rig *donburi.Entry, dir int) *donburi.Entry {
	lock := components.LockOn.Get(rig)
	if !lock.HasTarget() {
		return nil
	}
	cam := components.Camera.Get(rig)
	view := viewportOf(cam)
	cx, cy, _ := view.Project(aimPoint(lock.Target))

	var others []LockCandidate
	for _, c := range LockCandidates(ecs, rig) {
		if !sameEntry(c.Entry, lock.Target) {
			others = append(others, c)
		}
	}
	sort.SliceStable(others, func(i, j int) bool { return others[i].Entry.Entity() < others[j].Entry.Entity() })

	i := PickCycleCandidate(cx, cy, others, dir)
	if i < 0 {
		return nil
	}
	SetLockTarget(ecs, rig, others[i].Entry)
	return others[i].Entry
}

// PickCycleCandidate chooses the candidate strictly on side dir of the
// current viewport X with the smallest horizontal offset; offsets within
// TieEpsilon prefer the smaller vertical offset. With nothing on that side
// it wraps to the closest candidate on the other side. It returns -1 when
// there are no candidates.
func PickCycleCandidate(currentX, currentY float64, cands []LockCandidate, dir int) int {
	if i := closestOnSide(currentX, currentY, cands, float64(dir)); i >= 0 {
		return i
	}
	return closestOnSide(currentX, currentY, cands, -float64(dir))
}

func closestOnSide(cx, cy float64, cands []LockCandidate, side float64) int {
	best := -1
	var bestDX, bestDY float64
	for i, c := range cands {
		dx := (c.ViewportX - cx) * side
		if dx <= 0 {
			continue
		}
		dy := math.Abs(c.ViewportY - cy)
		switch {
		case best < 0, dx < bestDX-cfg.LockOn.TieEpsilon:
		case math.Abs(dx-bestDX) <= cfg.LockOn.TieEpsilon && dy < bestDY:
		default:
			continue
		}
		best, bestDX, bestDY = i, dx, dy
	}
	return best
}
