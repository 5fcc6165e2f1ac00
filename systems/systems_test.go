package systems

import (
	"math"
	"testing"

	"github.com/automoto/bladelock/assets"
	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/systems/factory"
	"github.com/automoto/bladelock/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

const tol = 1e-6

type testArena struct {
	ecs    *ecs.ECS
	rig    *donburi.Entry
	player *donburi.Entry
}

// newTestArena builds a 20x20 floor with a camera rig and a player at pos
// facing +Z.
func newTestArena(t *testing.T, pos mgl64.Vec3) *testArena {
	t.Helper()
	e := ecs.NewECS(donburi.NewWorld())
	factory.CreateSpace(e, 20, 20, 1)
	factory.CreateSolid(e, assets.SolidSpawn{
		Name:   "floor",
		Width:  20,
		Depth:  20,
		Bottom: -1,
		Top:    0,
	}, tags.ResolvGround)
	rig := factory.CreateCamera(e)
	player := factory.CreatePlayer(e, assets.Spawn{Position: pos}, rig)
	return &testArena{ecs: e, rig: rig, player: player}
}

func (a *testArena) enemy(pos mgl64.Vec3, yaw float64) *donburi.Entry {
	return factory.CreateEnemy(a.ecs, assets.EnemySpawn{
		Spawn:     assets.Spawn{Position: pos, Yaw: yaw},
		EnemyType: "grunt",
	})
}

// aim points the rig camera from pos along yaw with no pitch.
func (a *testArena) aim(pos mgl64.Vec3, yaw float64) {
	cam := components.Camera.Get(a.rig)
	cam.Position = pos
	cam.Yaw = yaw
	cam.Pitch = 0
	cam.Initialized = true
}

func nearVec(a, b mgl64.Vec3) bool {
	return a.Sub(b).Len() < tol
}

func TestLightAttackDamagesEnemyOnce(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	enemy := a.enemy(mgl64.Vec3{10, 0, 11.5}, math.Pi)

	components.Combat.Get(a.player).BufferInput(cfg.InputLight, 0)
	for i := 0; i < 90; i++ {
		UpdateCombat(a.ecs)
		UpdateAnimation(a.ecs)
		UpdateHitboxes(a.ecs)
		UpdateHealth(a.ecs)
		if i == 0 {
			if cur := components.Combat.Get(a.player).Current; cur == nil || cur.ID != "L1" {
				t.Fatalf("player started %v, want L1", cur)
			}
		}
	}

	hp := components.Health.Get(enemy)
	if hp.Current != 48 {
		t.Fatalf("enemy HP = %d, want 48", hp.Current)
	}
	if combat := components.Combat.Get(a.player); combat.State != components.CombatIdle {
		t.Fatalf("player state = %v after the chain reset, want idle", combat.State)
	}
}

func TestHitStunsTarget(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	enemy := a.enemy(mgl64.Vec3{10, 0, 11.5}, math.Pi)

	combat := components.Combat.Get(a.player)
	combat.BufferInput(cfg.InputLight, 0)
	UpdateCombat(a.ecs)
	HitboxOn(a.ecs, a.player, "Slash_R1")
	UpdateHitboxes(a.ecs)

	if got := components.Health.Get(enemy).Current; got != 48 {
		t.Fatalf("enemy HP = %d, want 48", got)
	}
	ec := components.Combat.Get(enemy)
	if ec.State != components.CombatStunned || math.Abs(ec.StunRemaining-0.2) > tol {
		t.Fatalf("enemy combat = %v stun %v, want stunned 0.2", ec.State, ec.StunRemaining)
	}

	// The same activation never hits twice.
	components.Health.Get(enemy).IFrames = 0
	UpdateHitboxes(a.ecs)
	if got := components.Health.Get(enemy).Current; got != 48 {
		t.Fatalf("enemy hit twice in one activation, HP = %d", got)
	}
}

func TestAttackEndWhileIdleTogglesNothing(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	toggles := 0
	components.HitboxToggled.Subscribe(a.ecs.World, func(w donburi.World, e components.HitboxToggledEvent) {
		toggles++
	})

	AttackEnd(a.ecs, a.player)
	events.ProcessAllEvents(a.ecs.World)

	if toggles != 0 {
		t.Fatalf("%d hitbox toggles from an idle attack end", toggles)
	}
	if state := components.Combat.Get(a.player).State; state != components.CombatIdle {
		t.Fatalf("state = %v, want idle", state)
	}
}

func TestHitboxRespectsFacing(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	// Overlaps the slash footprint but stands square to the player's side.
	enemy := a.enemy(mgl64.Vec3{11.2, 0, 10}, 0)

	components.Combat.Get(a.player).BufferInput(cfg.InputLight, 0)
	UpdateCombat(a.ecs)
	HitboxOn(a.ecs, a.player, "Slash_R1")
	UpdateHitboxes(a.ecs)

	if got := components.Health.Get(enemy).Current; got != cfg.Health.EnemyHealth {
		t.Fatalf("enemy beside the player took damage, HP = %d", got)
	}
}

func guardHeld(a *testArena) {
	getOrCreateInput(a.ecs).Current[cfg.ActionGuard] = true
}

func TestGuardSlidesBehindAttacker(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	enemy := a.enemy(mgl64.Vec3{10, 0, 12}, math.Pi)
	guardHeld(a)
	UpdateStance(a.ecs)

	applied := TakeDamage(a.ecs, a.player, components.DamageContext{
		Amount:       15,
		Source:       enemy,
		HitDirection: mgl64.Vec3{0, 0, -1},
	})
	if applied {
		t.Fatal("guarded hit was applied")
	}
	hp := components.Health.Get(a.player)
	if hp.Current != cfg.Health.PlayerHealth || !hp.Invulnerable() {
		t.Fatalf("player health = %+v, want full and invulnerable", hp)
	}
	stance := components.Stance.Get(a.player)
	if !stance.Sliding() || stance.Slides != 1 {
		t.Fatalf("slide not started: %+v", stance)
	}
	if !components.LockOn.Get(a.rig).Held() {
		t.Fatal("rig lock not held during the slide")
	}
	if components.DamageReceiver.Get(a.player).Len() != 0 {
		t.Fatal("stance interceptor stayed registered while sliding")
	}

	for i := 0; i < 40; i++ {
		UpdateStance(a.ecs)
	}

	if stance.Sliding() {
		t.Fatal("slide never finished")
	}
	want := mgl64.Vec3{10, 0, 14}
	if got := components.Transform.Get(a.player).Position; !nearVec(got, want) {
		t.Fatalf("slide ended at %v, want %v", got, want)
	}
	if components.LockOn.Get(a.rig).Held() {
		t.Fatal("rig lock still held after the slide")
	}
	if components.DamageReceiver.Get(a.player).Len() != 1 {
		t.Fatal("stance interceptor not restored after the slide")
	}
}

func TestGuardWithDamageGrantsInvulnerabilityAfterHit(t *testing.T) {
	prev := cfg.Stance.IgnoreDamageInStance
	cfg.Stance.IgnoreDamageInStance = false
	defer func() { cfg.Stance.IgnoreDamageInStance = prev }()

	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	enemy := a.enemy(mgl64.Vec3{10, 0, 12}, math.Pi)
	guardHeld(a)
	UpdateStance(a.ecs)

	if !TakeDamage(a.ecs, a.player, components.DamageContext{Amount: 15, Source: enemy}) {
		t.Fatal("hit was consumed with IgnoreDamageInStance off")
	}
	hp := components.Health.Get(a.player)
	if hp.Current != cfg.Health.PlayerHealth-15 {
		t.Fatalf("HP = %d, want %d", hp.Current, cfg.Health.PlayerHealth-15)
	}
	if !components.Stance.Get(a.player).Sliding() {
		t.Fatal("slide not started")
	}

	UpdateStance(a.ecs)
	if hp.IFrames != cfg.Stance.InvulnerabilityWindow {
		t.Fatalf("IFrames = %v, want %v", hp.IFrames, cfg.Stance.InvulnerabilityWindow)
	}
}

func TestBackstepWithoutAttacker(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	guardHeld(a)
	UpdateStance(a.ecs)

	TakeDamage(a.ecs, a.player, components.DamageContext{Amount: 5})
	for i := 0; i < 30; i++ {
		UpdateStance(a.ecs)
	}
	want := mgl64.Vec3{10, 0, 10 - cfg.Stance.BackstepDistance}
	if got := components.Transform.Get(a.player).Position; !nearVec(got, want) {
		t.Fatalf("backstep ended at %v, want %v", got, want)
	}
}

func TestTakeDamage(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	enemy := a.enemy(mgl64.Vec3{10, 0, 14}, 0)

	var died int
	components.Died.Subscribe(a.ecs.World, func(w donburi.World, e components.DiedEvent) {
		died++
	})

	hp := components.Health.Get(enemy)
	if !TakeDamage(a.ecs, enemy, components.DamageContext{Amount: 20, Source: a.player}) {
		t.Fatal("first hit not applied")
	}
	if TakeDamage(a.ecs, enemy, components.DamageContext{Amount: 20, Source: a.player}) {
		t.Fatal("hit applied during invulnerability")
	}

	hp.IFrames = 0
	TakeDamage(a.ecs, enemy, components.DamageContext{Amount: 500, Source: a.player})
	// Dying adds a component, so the old pointer is stale.
	hp = components.Health.Get(enemy)
	if hp.Current != 0 || !hp.Dead {
		t.Fatalf("health = %+v, want dead at 0", hp)
	}
	hp.IFrames = 0
	if TakeDamage(a.ecs, enemy, components.DamageContext{Amount: 1}) {
		t.Fatal("dead actor took damage")
	}

	events.ProcessAllEvents(a.ecs.World)
	if died != 1 {
		t.Fatalf("Died published %d times, want 1", died)
	}
	if !enemy.HasComponent(components.Death) {
		t.Fatal("dead enemy has no death timer")
	}
}

func TestDeadEnemyIsRemovedAndUnlocked(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 5})
	enemy := a.enemy(mgl64.Vec3{10, 0, 8}, math.Pi)
	SetLockTarget(a.ecs, a.rig, enemy)

	TakeDamage(a.ecs, enemy, components.DamageContext{Amount: 1000})
	ticks := int(math.Ceil(corpseLinger*float64(cfg.C.TickRate))) + 1
	for i := 0; i < ticks; i++ {
		UpdateDeaths(a.ecs)
	}

	if enemy.Valid() {
		t.Fatal("dead enemy still in the world")
	}
	lock := components.LockOn.Get(a.rig)
	if lock.Locked || lock.Target != nil {
		t.Fatalf("rig still locked: %+v", lock)
	}
	n := 0
	tags.Hitbox.Each(a.ecs.World, func(*donburi.Entry) { n++ })
	if n != len(factory.ComboGraph("player").Hitboxes) {
		t.Fatalf("hitbox entities = %d, want only the player's", n)
	}
}

func TestPlayerRespawnsAtSpawn(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	arena := &assets.Arena{PlayerSpawn: assets.Spawn{Position: mgl64.Vec3{4, 0, 4}}}
	arenaEntry := a.ecs.World.Entry(a.ecs.World.Create(components.Arena))
	components.Arena.SetValue(arenaEntry, components.ArenaData{Arena: arena})

	TakeDamage(a.ecs, a.player, components.DamageContext{Amount: 1000})
	for i := 0; i < int(respawnDelay*float64(cfg.C.TickRate))+2; i++ {
		UpdateDeaths(a.ecs)
	}

	hp := components.Health.Get(a.player)
	if hp.Dead || hp.Current != hp.Max {
		t.Fatalf("player not respawned: %+v", hp)
	}
	if got := components.Transform.Get(a.player).Position; !nearVec(got, arena.PlayerSpawn.Position) {
		t.Fatalf("respawned at %v, want %v", got, arena.PlayerSpawn.Position)
	}
}

func TestAcquireTargetPrefersCenterThenDistance(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 5})
	aimHeight := cfg.Enemy.Height / 2
	a.aim(mgl64.Vec3{10, aimHeight, 2}, 0)

	far := a.enemy(mgl64.Vec3{10, 0, 15}, math.Pi)
	side := a.enemy(mgl64.Vec3{13, 0, 12}, math.Pi)
	near := a.enemy(mgl64.Vec3{10, 0, 8}, math.Pi)

	for i := 0; i < 3; i++ {
		if got := AcquireTarget(a.ecs, a.rig); !sameEntry(got, near) {
			t.Fatalf("run %d: acquired %v, want the nearest centered enemy", i, got)
		}
	}

	// The near enemy blocks the far one; once it is gone the far one wins
	// over the off-center enemy.
	DestroyActor(a.ecs, near)
	if got := AcquireTarget(a.ecs, a.rig); !sameEntry(got, far) {
		t.Fatalf("acquired %v, want far", got)
	}

	components.Health.Get(far).Dead = true
	if got := AcquireTarget(a.ecs, a.rig); !sameEntry(got, side) {
		t.Fatalf("acquired %v, want side", got)
	}
}

func TestAcquireTargetRespectsConeAndWalls(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	a.aim(mgl64.Vec3{10, cfg.Enemy.Height / 2, 7}, 0)

	a.enemy(mgl64.Vec3{10, 0, 3}, 0) // behind the camera
	walled := a.enemy(mgl64.Vec3{10, 0, 17}, math.Pi)
	factory.CreateSolid(a.ecs, assets.SolidSpawn{Name: "wall", X: 8, Z: 14, Width: 4, Depth: 1, Top: 3})

	if got := AcquireTarget(a.ecs, a.rig); got != nil {
		t.Fatalf("acquired %v through a wall or behind the camera", got)
	}
	if TargetValid(a.ecs, a.rig, walled) {
		t.Fatal("walled enemy reported valid")
	}
	if TryLock(a.ecs, a.rig) || components.LockOn.Get(a.rig).Locked {
		t.Fatal("rig locked with no candidate")
	}
}

func TestPickCycleCandidate(t *testing.T) {
	at := func(xs ...float64) []LockCandidate {
		out := make([]LockCandidate, len(xs))
		for i, x := range xs {
			out[i] = LockCandidate{ViewportX: x}
		}
		return out
	}
	tests := []struct {
		name    string
		current float64
		cands   []LockCandidate
		dir     int
		want    int
	}{
		{"nearest right", 0, at(-0.3, 0.1, 0.4), CycleRight, 1},
		{"nearest left", 0, at(-0.3, 0.1, 0.4), CycleLeft, 0},
		{"from the left target", -0.3, at(0.1, 0.4), CycleRight, 0},
		{"wraps to closest other side", 0, at(-0.6, -0.2), CycleRight, 1},
		{"same column is not a side", 0, at(0), CycleRight, -1},
		{"empty", 0, nil, CycleLeft, -1},
		{
			"tie prefers smaller vertical offset",
			0,
			[]LockCandidate{{ViewportX: 0.2, ViewportY: 0.3}, {ViewportX: 0.205, ViewportY: 0.05}},
			CycleRight,
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickCycleCandidate(tt.current, 0, tt.cands, tt.dir); got != tt.want {
				t.Fatalf("PickCycleCandidate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCycleTargetKeepsLockWithoutCandidates(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 5})
	a.aim(mgl64.Vec3{10, cfg.Enemy.Height / 2, 2}, 0)
	only := a.enemy(mgl64.Vec3{10, 0, 10}, math.Pi)

	if !TryLock(a.ecs, a.rig) {
		t.Fatal("TryLock failed")
	}
	if got := CycleTarget(a.ecs, a.rig, CycleRight); got != nil {
		t.Fatalf("cycled to %v with a single enemy", got)
	}
	if lock := components.LockOn.Get(a.rig); !sameEntry(lock.Target, only) || !lock.Locked {
		t.Fatalf("lock changed: %+v", lock)
	}

	right := a.enemy(mgl64.Vec3{12, 0, 10}, math.Pi)
	if got := CycleTarget(a.ecs, a.rig, CycleRight); !sameEntry(got, right) {
		t.Fatalf("cycled to %v, want the enemy on the right", got)
	}
}

func TestClassifyDirection(t *testing.T) {
	ref := mgl64.Vec3{0, 0, 1}
	tests := []struct {
		name string
		move mgl64.Vec3
		ref  mgl64.Vec3
		want cfg.Direction
	}{
		{"forward", mgl64.Vec3{0, 0, 1}, ref, cfg.DirectionForward},
		{"forward diagonal", mgl64.Vec3{0.5, 0, 1}, ref, cfg.DirectionForward},
		{"backward", mgl64.Vec3{0.3, 0, -1}, ref, cfg.DirectionBackward},
		{"sideways", mgl64.Vec3{1, 0, 0}, ref, cfg.DirectionNeutral},
		{"deadzone", mgl64.Vec3{0.05, 0, 0.05}, ref, cfg.DirectionNeutral},
		{"vertical ignored", mgl64.Vec3{0, 5, 0}, ref, cfg.DirectionNeutral},
		{"no reference", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{}, cfg.DirectionNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDirection(tt.move, tt.ref); got != tt.want {
				t.Fatalf("ClassifyDirection(%v, %v) = %v, want %v", tt.move, tt.ref, got, tt.want)
			}
		})
	}
}

func TestClassifyAttackDirectionUsesLockTarget(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	enemy := a.enemy(mgl64.Vec3{14, 0, 10}, 0)
	components.Player.Get(a.player).MoveInput = mgl64.Vec3{1, 0, 0}

	if got := ClassifyAttackDirection(a.ecs, a.player); got != cfg.DirectionNeutral {
		t.Fatalf("unlocked = %v, want neutral", got)
	}
	SetLockTarget(a.ecs, a.rig, enemy)
	if got := ClassifyAttackDirection(a.ecs, a.player); got != cfg.DirectionForward {
		t.Fatalf("locked = %v, want forward", got)
	}
}

func TestCameraRelativeMove(t *testing.T) {
	tests := []struct {
		yaw, x, y float64
		want      mgl64.Vec3
	}{
		{0, 0, 1, mgl64.Vec3{0, 0, 1}},
		{0, 1, 0, mgl64.Vec3{1, 0, 0}},
		{math.Pi / 2, 0, 1, mgl64.Vec3{1, 0, 0}},
		{0, 1, 1, mgl64.Vec3{1, 0, 1}.Normalize()},
	}
	for _, tt := range tests {
		if got := CameraRelativeMove(tt.yaw, tt.x, tt.y); !nearVec(got, tt.want) {
			t.Errorf("CameraRelativeMove(%v, %v, %v) = %v, want %v", tt.yaw, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestReloadComboSwapsGraph(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	combat := components.Combat.Get(a.player)
	combat.BufferInput(cfg.InputLight, 0)
	UpdateCombat(a.ecs)

	g, err := cfg.LoadComboGraph("player")
	if err != nil {
		t.Fatal(err)
	}
	if n := ReloadCombo(a.ecs, "player", g); n != 1 {
		t.Fatalf("ReloadCombo updated %d actors, want 1", n)
	}
	if combat.Graph != g || combat.Current != g.Move("L1") {
		t.Fatal("player still uses the old graph")
	}
}

func TestSpinHitsStackFromBothBlades(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	// Both blade footprints overlap an enemy straight ahead.
	enemy := a.enemy(mgl64.Vec3{10, 0, 11.3}, math.Pi)

	combat := components.Combat.Get(a.player)
	combat.Current = combat.Graph.Move("L3")
	combat.State = components.CombatAttacking
	startAttack(a.ecs, a.player, combat.Current)

	hit := false
	for i := 0; i < 30 && !hit; i++ {
		UpdateAnimation(a.ecs)
		UpdateHitboxes(a.ecs)
		hit = components.Health.Get(enemy).Current != cfg.Health.EnemyHealth
		UpdateHealth(a.ecs)
	}
	if !hit {
		t.Fatal("spin never connected")
	}
	if got := components.Health.Get(enemy).Current; got != 20 {
		t.Fatalf("enemy HP = %d, want 20 from two stacked blades", got)
	}

	// A later tick is covered by the i-frames the spin armed.
	HitboxOff(a.ecs, a.player, "Slash_R1")
	HitboxOn(a.ecs, a.player, "Slash_R1")
	UpdateHitboxes(a.ecs)
	if got := components.Health.Get(enemy).Current; got != 20 {
		t.Fatalf("hit landed through i-frames, HP = %d", got)
	}
}

func TestIFramesBlockOtherAttackersOnTheSameTick(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	first := a.enemy(mgl64.Vec3{10, 0, 12}, math.Pi)
	second := a.enemy(mgl64.Vec3{12, 0, 10}, -math.Pi/2)

	hit := func(src *donburi.Entry) bool {
		return TakeDamage(a.ecs, a.player, components.DamageContext{Amount: 10, Source: src})
	}
	if !hit(first) {
		t.Fatal("first hit dropped")
	}
	if hit(second) {
		t.Fatal("another attacker hit through fresh i-frames")
	}
	if !hit(first) {
		t.Fatal("same attacker's second contact on the tick was dropped")
	}
	UpdateHealth(a.ecs)
	if hit(first) {
		t.Fatal("same attacker hit through i-frames on the next tick")
	}
	if got := components.Health.Get(a.player).Current; got != cfg.Health.PlayerHealth-20 {
		t.Fatalf("player HP = %d, want %d", got, cfg.Health.PlayerHealth-20)
	}
}

func TestContactReportedWithoutCurrentAttack(t *testing.T) {
	a := newTestArena(t, mgl64.Vec3{10, 0, 10})
	enemy := a.enemy(mgl64.Vec3{10, 0, 11.5}, math.Pi)

	contacts := 0
	components.HitContact.Subscribe(a.ecs.World, func(w donburi.World, e components.HitContactEvent) {
		if sameEntry(e.Target, enemy) {
			contacts++
		}
	})

	HitboxOn(a.ecs, a.player, "Slash_R1")
	UpdateHitboxes(a.ecs)
	UpdateHitboxes(a.ecs)
	events.ProcessAllEvents(a.ecs.World)

	if contacts != 1 {
		t.Fatalf("contacts = %d, want 1", contacts)
	}
	if got := components.Health.Get(enemy).Current; got != cfg.Health.EnemyHealth {
		t.Fatalf("idle hitbox dealt damage, HP = %d", got)
	}
}

// lockArena puts the player at (10,0,5) looking down +Z with three enemies
// in a row at z 10 and the rig locked onto the middle one.
func lockArena(t *testing.T) (a *testArena, left, middle, right *donburi.Entry) {
	t.Helper()
	a = newTestArena(t, mgl64.Vec3{10, 0, 5})
	a.aim(mgl64.Vec3{10, cfg.Enemy.Height / 2, 2}, 0)
	left = a.enemy(mgl64.Vec3{8, 0, 10}, math.Pi)
	middle = a.enemy(mgl64.Vec3{10, 0, 10}, math.Pi)
	right = a.enemy(mgl64.Vec3{12, 0, 10}, math.Pi)
	if !TryLock(a.ecs, a.rig) {
		t.Fatal("TryLock failed")
	}
	if got := components.LockOn.Get(a.rig).Target; !sameEntry(got, middle) {
		t.Fatalf("locked %v, want the middle enemy", got)
	}
	return a, left, middle, right
}

// moveTo teleports an actor and its collider.
func moveTo(e *donburi.Entry, pos mgl64.Vec3) {
	components.Transform.Get(e).Position = pos
	syncObject(e)
}

func TestHeldCycleAxisCyclesOnce(t *testing.T) {
	a, _, middle, right := lockArena(t)
	input := getOrCreateInput(a.ecs)
	lock := components.LockOn.Get(a.rig)

	changes := 0
	prev := lock.Target
	tick := func() {
		UpdateLockOn(a.ecs)
		if !sameEntry(lock.Target, prev) {
			changes++
			prev = lock.Target
		}
	}

	input.Axes[cfg.AxisCycle] = 1
	for i := 0; i < 60; i++ {
		tick()
	}
	if changes != 1 || !sameEntry(lock.Target, right) {
		t.Fatalf("changes = %d target %v, want one cycle to the right", changes, lock.Target)
	}

	// Releasing the stick re-arms the flick.
	input.Axes[cfg.AxisCycle] = 0
	tick()
	input.Axes[cfg.AxisCycle] = 1
	for i := 0; i < 60; i++ {
		tick()
	}
	if changes != 2 {
		t.Fatalf("changes = %d after a second flick, want 2", changes)
	}
	// Nothing lies right of the right enemy, so the cycle wraps to the
	// closest one on the other side.
	if !sameEntry(lock.Target, middle) {
		t.Fatalf("wrapped to %v, want the middle enemy", lock.Target)
	}
}

func TestCycleCooldownSwallowsQuickFlicks(t *testing.T) {
	a, _, _, right := lockArena(t)
	input := getOrCreateInput(a.ecs)
	lock := components.LockOn.Get(a.rig)

	input.Axes[cfg.AxisCycle] = 1
	UpdateLockOn(a.ecs)
	input.Axes[cfg.AxisCycle] = 0
	UpdateLockOn(a.ecs)
	input.Axes[cfg.AxisCycle] = 1
	UpdateLockOn(a.ecs)

	if !sameEntry(lock.Target, right) {
		t.Fatalf("target = %v, want a single cycle to the right", lock.Target)
	}
	if lock.CycleCooldown <= 0 {
		t.Fatal("cooldown not running")
	}
}

func TestLockReacquiresWhenTargetLeavesView(t *testing.T) {
	a, left, middle, right := lockArena(t)
	lock := components.LockOn.Get(a.rig)

	DestroyActor(a.ecs, left)
	moveTo(middle, mgl64.Vec3{10, 0, 1}) // behind the camera
	UpdateLockOn(a.ecs)
	if !lock.Locked || !sameEntry(lock.Target, right) {
		t.Fatalf("lock = %v target %v, want re-acquired right enemy", lock.Locked, lock.Target)
	}

	moveTo(right, mgl64.Vec3{12, 0, 1})
	UpdateLockOn(a.ecs)
	if lock.Locked || lock.Target != nil {
		t.Fatalf("lock = %v target %v, want unlocked with nothing in view", lock.Locked, lock.Target)
	}
}

func TestLockHoldSuppressesReacquireAndCycle(t *testing.T) {
	a, _, middle, _ := lockArena(t)
	input := getOrCreateInput(a.ecs)
	lock := components.LockOn.Get(a.rig)

	lock.Hold()
	moveTo(middle, mgl64.Vec3{10, 0, 1})
	input.Axes[cfg.AxisCycle] = 1
	for i := 0; i < 30; i++ {
		UpdateLockOn(a.ecs)
	}
	if !lock.Locked || !sameEntry(lock.Target, middle) {
		t.Fatalf("held lock moved to %v", lock.Target)
	}

	lock.Release()
	input.Axes[cfg.AxisCycle] = 0
	UpdateLockOn(a.ecs)
	if !lock.Locked || sameEntry(lock.Target, middle) {
		t.Fatalf("target %v after release, want a visible enemy", lock.Target)
	}

	// A held lock still lets go of a dead target.
	lock.Hold()
	components.Health.Get(lock.Target).Dead = true
	UpdateLockOn(a.ecs)
	if lock.Locked {
		t.Fatal("held lock kept a dead target")
	}
}
