package components

import (
	"reflect"
	"testing"

	"github.com/yohamta/donburi"
)

func TestInterceptorChainOrder(t *testing.T) {
	var d DamageReceiverData
	var calls []string
	record := func(name string, consume bool) Interceptor {
		return func(DamageContext) bool {
			calls = append(calls, name)
			return consume
		}
	}

	d.AddInterceptor("first", record("first", false))
	guard := d.AddInterceptor("guard", record("guard", true))
	d.AddInterceptor("last", record("last", false))

	name, consumed := d.Intercept(DamageContext{Amount: 5})
	if !consumed || name != "guard" {
		t.Fatalf("Intercept = %q %v, want guard true", name, consumed)
	}
	if want := []string{"first", "guard"}; !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}

	calls = nil
	if !d.RemoveInterceptor(guard) {
		t.Fatal("RemoveInterceptor(guard) = false")
	}
	if d.RemoveInterceptor(guard) {
		t.Fatal("second remove reported success")
	}
	if _, consumed := d.Intercept(DamageContext{}); consumed {
		t.Fatal("hit consumed after the guard was removed")
	}
	if want := []string{"first", "last"}; !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestInterceptorMayRemoveItself(t *testing.T) {
	var d DamageReceiverData
	var h InterceptorHandle
	h = d.AddInterceptor("once", func(DamageContext) bool {
		d.RemoveInterceptor(h)
		return true
	})

	if _, ok := d.Intercept(DamageContext{}); !ok {
		t.Fatal("first hit not consumed")
	}
	if _, ok := d.Intercept(DamageContext{}); ok {
		t.Fatal("removed interceptor ran again")
	}
	if d.Len() != 0 {
		t.Fatalf("Len = %d, want 0", d.Len())
	}
}

func TestHitboxActivationClearsRegistry(t *testing.T) {
	var h HitboxData
	if !h.SetActive(true) {
		t.Fatal("first activation reported no change")
	}
	if h.SetActive(true) {
		t.Fatal("repeated activation reported a change")
	}

	target := donburi.Entity(7)
	if !h.MarkHit(target) {
		t.Fatal("first hit rejected")
	}
	if h.MarkHit(target) {
		t.Fatal("same target hit twice in one activation")
	}

	h.SetActive(false)
	h.SetActive(true)
	if !h.MarkHit(target) {
		t.Fatal("registry survived reactivation")
	}
}

func TestHitboxToggleWithoutContactLeavesRegistryEmpty(t *testing.T) {
	var h HitboxData
	h.SetActive(true)
	h.SetActive(false)
	if len(h.HitEntities) != 0 {
		t.Fatalf("registry = %v, want empty", h.HitEntities)
	}
}

func TestHitboxEligible(t *testing.T) {
	h := HitboxData{Mask: []string{"Enemy"}}
	tests := []struct {
		tags []string
		want bool
	}{
		{[]string{"character", "Enemy"}, true},
		{[]string{"character", "Player"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := h.Eligible(tt.tags); got != tt.want {
			t.Errorf("Eligible(%v) = %v, want %v", tt.tags, got, tt.want)
		}
	}
}

func TestLockHoldsAreCounted(t *testing.T) {
	var l LockOnData
	l.Release()
	if l.Held() {
		t.Fatal("release without hold left the rig held")
	}

	l.Hold()
	l.Hold()
	l.Release()
	if !l.Held() {
		t.Fatal("one release dropped two holds")
	}
	l.Release()
	if l.Held() {
		t.Fatal("rig still held after matching releases")
	}
}

func TestGrantInvulnerabilityExtendsOnly(t *testing.T) {
	h := HealthData{IFrames: 0.4}
	h.GrantInvulnerability(0.2)
	if h.IFrames != 0.4 {
		t.Fatalf("IFrames = %v, want 0.4", h.IFrames)
	}
	h.GrantInvulnerability(0.5)
	if h.IFrames != 0.5 || !h.Invulnerable() {
		t.Fatalf("IFrames = %v, want 0.5", h.IFrames)
	}
}

func TestIFramesLetTheArmingAttackerStack(t *testing.T) {
	attacker, other := donburi.Entity(3), donburi.Entity(4)
	tests := []struct {
		name   string
		arm    func(h *HealthData)
		source donburi.Entity
		want   bool
	}{
		{"no i-frames", func(h *HealthData) {}, other, false},
		{"same attacker same tick", func(h *HealthData) { h.ArmIFrames(0.3, attacker) }, attacker, false},
		{"other attacker same tick", func(h *HealthData) { h.ArmIFrames(0.3, attacker) }, other, true},
		{"unknown source", func(h *HealthData) { h.ArmIFrames(0.3, donburi.Null) }, donburi.Null, true},
		{"later tick", func(h *HealthData) {
			h.ArmIFrames(0.3, attacker)
			h.ArmedThis = false
		}, attacker, true},
		{"granted after the hit", func(h *HealthData) {
			h.ArmIFrames(0.3, attacker)
			h.GrantInvulnerability(0.5)
		}, attacker, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h HealthData
			tt.arm(&h)
			if got := h.Blocks(tt.source); got != tt.want {
				t.Fatalf("Blocks = %v, want %v", got, tt.want)
			}
		})
	}
}
