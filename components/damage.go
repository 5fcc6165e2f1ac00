package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// DamageContext describes one hit delivered from an attacker to a target.
type DamageContext struct {
	Amount       int
	Stun         float64 // seconds
	Launch       float64 // knockback force along HitDirection
	Source       *donburi.Entry
	HitPoint     mgl64.Vec3
	HitDirection mgl64.Vec3 // unit vector from attacker to target
}

// Interceptor runs before damage is applied. Returning true consumes the hit.
type Interceptor func(ctx DamageContext) bool

// InterceptorHandle identifies a registered interceptor. The zero value is
// never issued.
type InterceptorHandle int

type interceptorSlot struct {
	handle InterceptorHandle
	name   string
	fn     Interceptor
}

// DamageReceiverData holds the ordered before-damage chain of an entity.
type DamageReceiverData struct {
	slots []interceptorSlot
	next  InterceptorHandle
}

// AddInterceptor appends fn to the chain and returns its handle.
func (d *DamageReceiverData) AddInterceptor(name string, fn Interceptor) InterceptorHandle {
	d.next++
	d.slots = append(d.slots, interceptorSlot{handle: d.next, name: name, fn: fn})
	return d.next
}

// RemoveInterceptor unregisters the interceptor. Unknown handles are ignored.
func (d *DamageReceiverData) RemoveInterceptor(h InterceptorHandle) bool {
	for i, s := range d.slots {
		if s.handle == h {
			d.slots = append(d.slots[:i:i], d.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Intercept runs the chain in registration order and reports the name of the
// interceptor that consumed the hit. Interceptors may unregister themselves
// while running.
func (d *DamageReceiverData) Intercept(ctx DamageContext) (string, bool) {
	chain := make([]interceptorSlot, len(d.slots))
	copy(chain, d.slots)
	for _, s := range chain {
		if s.fn(ctx) {
			return s.name, true
		}
	}
	return "", false
}

// Len returns the number of registered interceptors.
func (d *DamageReceiverData) Len() int {
	return len(d.slots)
}

var DamageReceiver = donburi.NewComponentType[DamageReceiverData]()
