package systems

import (
	"math"

	"github.com/automoto/bladelock/components"
	"github.com/automoto/bladelock/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// The resolv space is the horizontal plane: resolv X is world X and resolv Y
// is world Z. Vertical extents live on SolidData and PhysicsData.

const (
	maxDepenetrationIterations = 4
	minProbeSize               = 0.05
)

// RayHit is the first obstruction found by a cast.
type RayHit struct {
	Entry    *donburi.Entry
	Distance float64
	Point    mgl64.Vec3
}

type box3 struct {
	min, max mgl64.Vec3
}

func getSpace(ecs *ecs.ECS) *resolv.Space {
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		return components.Space.Get(spaceEntry)
	}
	return nil
}

// syncObject moves an entity's resolv footprint to its transform.
func syncObject(e *donburi.Entry) {
	if !e.HasComponent(components.Object) || !e.HasComponent(components.Transform) {
		return
	}
	obj := components.Object.Get(e)
	if obj.Object == nil {
		return
	}
	pos := components.Transform.Get(e).Position
	obj.X = pos.X() - obj.HalfWidth
	obj.Y = pos.Z() - obj.HalfDepth
	obj.Update()
	if obj.Shape != nil {
		obj.Shape.SetPosition(obj.X, obj.Y)
	}
}

func entryOf(obj *resolv.Object) *donburi.Entry {
	e, ok := obj.Data.(*donburi.Entry)
	if !ok || e == nil || !e.Valid() {
		return nil
	}
	return e
}

// verticalExtent returns the [bottom, top] range an object occupies.
func verticalExtent(obj *resolv.Object) (float64, float64, bool) {
	e := entryOf(obj)
	if e == nil {
		return 0, 0, false
	}
	if e.HasComponent(components.Solid) {
		s := components.Solid.Get(e)
		return s.Bottom, s.Top, true
	}
	if e.HasComponent(components.Transform) && e.HasComponent(components.Physics) {
		feet := components.Transform.Get(e).Position.Y()
		return feet, feet + components.Physics.Get(e).Height, true
	}
	return 0, 0, false
}

func boundsOf(obj *resolv.Object) (box3, bool) {
	bottom, top, ok := verticalExtent(obj)
	if !ok {
		return box3{}, false
	}
	return box3{
		min: mgl64.Vec3{obj.X, bottom, obj.Y},
		max: mgl64.Vec3{obj.X + obj.W, top, obj.Y + obj.H},
	}, true
}

// withProbe adds a temporary footprint covering the rectangle to the space,
// runs fn, and removes it again.
func withProbe(space *resolv.Space, x, z, w, d float64, fn func(probe *resolv.Object)) {
	w = math.Max(w, minProbeSize)
	d = math.Max(d, minProbeSize)
	probe := resolv.NewObject(x, z, w, d, tags.ResolvProbe)
	probe.SetShape(resolv.NewRectangle(0, 0, w, d))
	space.Add(probe)
	defer space.Remove(probe)
	fn(probe)
}

// ProbeGround returns the height of the highest solid surface below origin
// within down units at (x, z).
func ProbeGround(space *resolv.Space, x, originY, z, down float64) (float64, bool) {
	if space == nil {
		return 0, false
	}
	best, found := math.Inf(-1), false
	half := minProbeSize / 2
	withProbe(space, x-half, z-half, minProbeSize, minProbeSize, func(probe *resolv.Object) {
		check := probe.Check(0, 0, tags.ResolvSolid)
		if check == nil {
			return
		}
		for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
			if x < o.X || x > o.X+o.W || z < o.Y || z > o.Y+o.H {
				continue
			}
			_, top, ok := verticalExtent(o)
			if !ok || top > originY || top < originY-down {
				continue
			}
			if top > best {
				best, found = top, true
			}
		}
	})
	return best, found
}

// Linecast returns the first solid or character crossed by the segment.
// Entries in ignore, and hitboxes of those entries, never block.
func Linecast(space *resolv.Space, from, to mgl64.Vec3, ignore ...*donburi.Entry) (RayHit, bool) {
	return castSegment(space, from, to, 0, []string{tags.ResolvSolid, tags.ResolvCharacter}, ignore)
}

// SphereCast sweeps a sphere of radius along the segment against solid
// geometry only.
func SphereCast(space *resolv.Space, from, to mgl64.Vec3, radius float64) (RayHit, bool) {
	return castSegment(space, from, to, radius, []string{tags.ResolvSolid}, nil)
}

func castSegment(space *resolv.Space, from, to mgl64.Vec3, radius float64, with []string, ignore []*donburi.Entry) (RayHit, bool) {
	if space == nil {
		return RayHit{}, false
	}
	dir := to.Sub(from)
	length := dir.Len()
	if length < 1e-9 {
		return RayHit{}, false
	}

	minX := math.Min(from.X(), to.X()) - radius
	minZ := math.Min(from.Z(), to.Z()) - radius
	maxX := math.Max(from.X(), to.X()) + radius
	maxZ := math.Max(from.Z(), to.Z()) + radius

	var hit RayHit
	found := false
	withProbe(space, minX, minZ, maxX-minX, maxZ-minZ, func(probe *resolv.Object) {
		check := probe.Check(0, 0, with...)
		if check == nil {
			return
		}
		for _, o := range check.ObjectsByTags(with...) {
			e := entryOf(o)
			if e == nil || ignored(e, ignore) {
				continue
			}
			b, ok := boundsOf(o)
			if !ok {
				continue
			}
			pad := mgl64.Vec3{radius, radius, radius}
			b.min, b.max = b.min.Sub(pad), b.max.Add(pad)
			t, ok := segmentBox(from, dir, b)
			if !ok {
				continue
			}
			if d := t * length; !found || d < hit.Distance {
				hit = RayHit{Entry: e, Distance: d, Point: from.Add(dir.Mul(t))}
				found = true
			}
		}
	})
	return hit, found
}

func ignored(e *donburi.Entry, ignore []*donburi.Entry) bool {
	for _, i := range ignore {
		if i == nil {
			continue
		}
		if i.Entity() == e.Entity() {
			return true
		}
		if e.HasComponent(components.Hitbox) {
			if owner := components.Hitbox.Get(e).Owner; owner != nil && owner.Entity() == i.Entity() {
				return true
			}
		}
	}
	return false
}

// segmentBox intersects from + dir*t, t in [0,1], with b using the slab
// method and returns the entry parameter.
func segmentBox(from, dir mgl64.Vec3, b box3) (float64, bool) {
	tMin, tMax := 0.0, 1.0
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if from[i] < b.min[i] || from[i] > b.max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.min[i] - from[i]) * inv
		t2 := (b.max[i] - from[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// blocksBody reports whether a solid obstructs a body standing at feet, i.e.
// it reaches above the step height and below the head.
func blocksBody(o *resolv.Object, feet float64, body *components.PhysicsData) bool {
	bottom, top, ok := verticalExtent(o)
	if !ok {
		return false
	}
	return top > feet+body.StepHeight && bottom < feet+body.Height
}

// Depenetrate pushes the entity out of overlapping solids along the minimum
// translation vector and reports whether it moved.
func Depenetrate(space *resolv.Space, e *donburi.Entry) bool {
	if space == nil || !e.HasComponent(components.Object) || !e.HasComponent(components.Physics) {
		return false
	}
	transform := components.Transform.Get(e)
	body := components.Physics.Get(e)
	obj := components.Object.Get(e)

	moved := false
	for i := 0; i < maxDepenetrationIterations; i++ {
		syncObject(e)
		check := obj.Check(0, 0, tags.ResolvSolid)
		if check == nil {
			break
		}
		pushed := false
		for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
			if !blocksBody(o, transform.Position.Y(), body) {
				continue
			}
			contact := obj.Shape.Intersection(0, 0, o.Shape)
			if contact == nil {
				continue
			}
			transform.Position = transform.Position.Add(mgl64.Vec3{contact.MTV.X(), 0, contact.MTV.Y()})
			pushed = true
			moved = true
			break
		}
		if !pushed {
			break
		}
	}
	syncObject(e)
	return moved
}

// MoveBody moves the entity horizontally by delta, stopping against solids
// one axis at a time.
func MoveBody(space *resolv.Space, e *donburi.Entry, delta mgl64.Vec3) {
	transform := components.Transform.Get(e)
	if space == nil || !e.HasComponent(components.Object) || !e.HasComponent(components.Physics) {
		transform.Position = transform.Position.Add(mgl64.Vec3{delta.X(), 0, delta.Z()})
		return
	}
	body := components.Physics.Get(e)
	obj := components.Object.Get(e)
	feet := transform.Position.Y()

	syncObject(e)
	dx := resolveAxis(obj.Object, delta.X(), 0, feet, body)
	transform.Position[0] += dx
	syncObject(e)
	dz := resolveAxis(obj.Object, 0, delta.Z(), feet, body)
	transform.Position[2] += dz
	syncObject(e)
}

func resolveAxis(obj *resolv.Object, dx, dz float64, feet float64, body *components.PhysicsData) float64 {
	move := dx + dz
	if move == 0 {
		return 0
	}
	check := obj.Check(dx, dz, tags.ResolvSolid)
	if check == nil {
		return move
	}
	for _, o := range check.ObjectsByTags(tags.ResolvSolid) {
		if !blocksBody(o, feet, body) {
			continue
		}
		// Only solids lined up on the other axis are in the way.
		if dx != 0 && (obj.Y >= o.Y+o.H || obj.Y+obj.H <= o.Y) {
			continue
		}
		if dz != 0 && (obj.X >= o.X+o.W || obj.X+obj.W <= o.X) {
			continue
		}
		contact := check.ContactWithObject(o)
		limit := contact.X()
		if dz != 0 {
			limit = contact.Y()
		}
		if (move > 0 && limit >= 0 && limit < move) || (move < 0 && limit <= 0 && limit > move) {
			move = limit
		}
	}
	return move
}
