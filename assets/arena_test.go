package assets

import (
	"math"
	"strings"
	"testing"
)

const smallArena = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="10" height="10" tilewidth="16" tileheight="16" infinite="0">
 <objectgroup id="1" name="Solids">
  <object id="1" name="pillar" x="32" y="32" width="16" height="32">
   <properties>
    <property name="top" type="float" value="2.5"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="2" x="80" y="144">
   <properties>
    <property name="yaw" type="float" value="90"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="3" name="Enemies">
  <object id="3" x="16" y="96"/>
  <object id="4" x="48" y="16">
   <properties>
    <property name="enemyType" value="brute"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

func TestParseArena(t *testing.T) {
	a, err := LoadArenaReader("small", strings.NewReader(smallArena))
	if err != nil {
		t.Fatalf("LoadArenaReader: %v", err)
	}

	if a.Width != 10 || a.Depth != 10 {
		t.Fatalf("size = %vx%v, want 10x10", a.Width, a.Depth)
	}

	if len(a.Solids) != 1 {
		t.Fatalf("solids = %d, want 1", len(a.Solids))
	}
	s := a.Solids[0]
	if s.X != 2 || s.Z != 6 || s.Width != 1 || s.Depth != 2 || s.Top != 2.5 || s.Bottom != 0 {
		t.Fatalf("solid = %+v", s)
	}

	p := a.PlayerSpawn
	if p.Position.X() != 5 || p.Position.Z() != 1 {
		t.Fatalf("player spawn = %v", p.Position)
	}
	if math.Abs(p.Yaw-math.Pi/2) > 1e-9 {
		t.Fatalf("player yaw = %v, want pi/2", p.Yaw)
	}

	if len(a.Enemies) != 2 {
		t.Fatalf("enemies = %d, want 2", len(a.Enemies))
	}
	// Farthest up the map spawns first.
	if a.Enemies[0].EnemyType != "brute" || a.Enemies[0].Position.Z() != 9 {
		t.Fatalf("first enemy = %+v", a.Enemies[0])
	}
	if a.Enemies[1].EnemyType != "grunt" {
		t.Fatalf("default enemy type = %q, want grunt", a.Enemies[1].EnemyType)
	}
	if math.Abs(a.Enemies[1].Yaw-math.Pi) > 1e-9 {
		t.Fatalf("default enemy yaw = %v, want pi", a.Enemies[1].Yaw)
	}
}

func TestParseArenaNeedsPlayerSpawn(t *testing.T) {
	tmx := strings.Replace(smallArena, `name="PlayerSpawn"`, `name="Unused"`, 1)
	if _, err := LoadArenaReader("broken", strings.NewReader(tmx)); err == nil {
		t.Fatal("arena without a player spawn loaded")
	}
}

func TestEmbeddedTrainingArena(t *testing.T) {
	a, err := LoadArena("training")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if len(a.Enemies) != 3 {
		t.Fatalf("enemies = %d, want 3", len(a.Enemies))
	}
	if len(a.Solids) == 0 {
		t.Fatal("training arena has no solids")
	}
	for _, e := range a.Enemies {
		if e.Position.X() <= 0 || e.Position.X() >= a.Width || e.Position.Z() <= 0 || e.Position.Z() >= a.Depth {
			t.Fatalf("enemy outside the arena: %v", e.Position)
		}
	}
}
