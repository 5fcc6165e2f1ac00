package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/gamemath"
	"github.com/automoto/bladelock/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/colornames"
)

const (
	hitFlashDuration = 0.25
	reticlePopTime   = 0.2
	reticleRadius    = 14
	facingLength     = 1.2
)

type hitFlash struct {
	point mgl64.Vec3
	ttl   float64
}

// DebugOverlay draws a top-down view of the arena around the player. It
// learns about hits and lock changes through events.
type DebugOverlay struct {
	flashes    []hitFlash
	toggles    int
	lockTarget *donburi.Entry
	reticleAge float64
	subscribed bool
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{reticleAge: reticlePopTime}
}

func (o *DebugOverlay) onHitboxToggled(w donburi.World, e components.HitboxToggledEvent) {
	if e.Active {
		o.toggles++
	}
}

func (o *DebugOverlay) onHitContact(w donburi.World, e components.HitContactEvent) {
	o.flashes = append(o.flashes, hitFlash{point: e.Point, ttl: hitFlashDuration})
}

func (o *DebugOverlay) onLockTargetChanged(w donburi.World, e components.LockTargetChangedEvent) {
	o.lockTarget = e.Target
	o.reticleAge = 0
}

// Subscribe registers the overlay with the world's event buses.
func (o *DebugOverlay) Subscribe(w donburi.World) {
	if o.subscribed {
		return
	}
	components.HitboxToggled.Subscribe(w, o.onHitboxToggled)
	components.HitContact.Subscribe(w, o.onHitContact)
	components.LockTargetChanged.Subscribe(w, o.onLockTargetChanged)
	o.subscribed = true
}

func (o *DebugOverlay) Unsubscribe(w donburi.World) {
	if !o.subscribed {
		return
	}
	components.HitboxToggled.Unsubscribe(w, o.onHitboxToggled)
	components.HitContact.Unsubscribe(w, o.onHitContact)
	components.LockTargetChanged.Unsubscribe(w, o.onLockTargetChanged)
	o.subscribed = false
}

// Update ages hit flashes and the reticle animation.
func (o *DebugOverlay) Update(dt float64) {
	live := o.flashes[:0]
	for _, f := range o.flashes {
		f.ttl -= dt
		if f.ttl > 0 {
			live = append(live, f)
		}
	}
	o.flashes = live
	if o.reticleAge < reticlePopTime {
		o.reticleAge += dt
	}
	if o.lockTarget != nil && !o.lockTarget.Valid() {
		o.lockTarget = nil
	}
}

// topDown maps world X/Z onto the screen around a center point. World +Z
// points up the screen.
type topDown struct {
	center mgl64.Vec3
	scale  float64
	cx, cy float64
}

func (v topDown) toScreen(p mgl64.Vec3) (float32, float32) {
	x := v.cx + (p.X()-v.center.X())*v.scale
	y := v.cy - (p.Z()-v.center.Z())*v.scale
	return float32(x), float32(y)
}

func (v topDown) rect(screen *ebiten.Image, obj *resolv.Object, clr color.Color, filled bool) {
	x, y := v.toScreen(mgl64.Vec3{obj.X, 0, obj.Y + obj.H})
	w := float32(obj.W * v.scale)
	h := float32(obj.H * v.scale)
	if filled {
		vector.DrawFilledRect(screen, x, y, w, h, clr, false)
		return
	}
	vector.StrokeRect(screen, x, y, w, h, 1, clr, false)
}

// Draw renders colliders, facings, active hitboxes, hit flashes, the camera
// and the lock reticle.
func (o *DebugOverlay) Draw(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.Draw {
		return
	}
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	view := topDown{scale: cfg.Debug.PixelsPerUnit, cx: float64(width) / 2, cy: float64(height) / 2}
	if playerEntry, ok := components.Player.First(ecs.World); ok {
		view.center = components.Transform.Get(playerEntry).Position
	}

	space := getSpace(ecs)
	if space == nil {
		return
	}

	for _, obj := range space.Objects() {
		switch {
		case obj.HasTags(tags.ResolvHitbox):
			view.rect(screen, obj, colornames.Yellow, false)
		case obj.HasTags(tags.ResolvSolid):
			if obj.HasTags(tags.ResolvGround) {
				continue
			}
			view.rect(screen, obj, colornames.Dimgray, true)
		}
	}

	components.Object.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(components.Physics) {
			return
		}
		c := color.Color(colornames.Cornflowerblue)
		if e.HasComponent(tags.Enemy) {
			c = colornames.Crimson
		}
		if isDead(e) {
			c = colornames.Gray
		} else if components.Health.Get(e).Invulnerable() {
			c = colornames.White
		}
		transform := components.Transform.Get(e)
		x, y := view.toScreen(transform.Position)
		r := float32(components.Physics.Get(e).Radius * view.scale)
		vector.DrawFilledCircle(screen, x, y, r, c, true)

		fx, fy := view.toScreen(transform.Position.Add(transform.Forward().Mul(facingLength)))
		vector.StrokeLine(screen, x, y, fx, fy, 1, colornames.White, false)

		if e.HasComponent(components.Stance) {
			if stance := components.Stance.Get(e); stance.Held {
				vector.StrokeCircle(screen, x, y, r+3, 1, colornames.Aqua, true)
			}
		}
	})

	for _, f := range o.flashes {
		x, y := view.toScreen(f.point)
		a := f.ttl / hitFlashDuration
		vector.DrawFilledCircle(screen, x, y, float32(2+4*(1-a)), colornames.Orange, true)
	}

	o.drawCamera(ecs, screen, view)

	if o.lockTarget != nil && o.lockTarget.Valid() {
		x, y := view.toScreen(components.Transform.Get(o.lockTarget).Position)
		pop := 1 + (1-math.Min(o.reticleAge/reticlePopTime, 1))*0.5
		vector.StrokeCircle(screen, x, y, float32(reticleRadius*pop), 2, colornames.Gold, true)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("hitboxes opened: %d  hits: %d", o.toggles, len(o.flashes)), 10, height-20)
}

func (o *DebugOverlay) drawCamera(ecs *ecs.ECS, screen *ebiten.Image, view topDown) {
	rig, ok := components.Camera.First(ecs.World)
	if !ok {
		return
	}
	cam := components.Camera.Get(rig)
	if !cam.Initialized {
		return
	}
	x, y := view.toScreen(cam.Position)
	px, py := view.toScreen(cam.Pivot)
	vector.StrokeLine(screen, x, y, px, py, 1, colornames.Lightgreen, false)

	half := mgl64.DegToRad(cam.FOV*cfg.Camera.Aspect) / 2
	for _, side := range []float64{-half, half} {
		dir := gamemath.RotateY(gamemath.Flatten(gamemath.QuatForward(cam.Rotation)), side)
		ex, ey := view.toScreen(cam.Position.Add(dir.Mul(cam.Distance + 2)))
		vector.StrokeLine(screen, x, y, ex, ey, 1, colornames.Darkgreen, false)
	}
	vector.DrawFilledCircle(screen, x, y, 3, colornames.Lightgreen, true)
}
