package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadEmbeddedCombos(t *testing.T) {
	for _, name := range []string{"player", "grunt"} {
		g, err := LoadComboGraph(name)
		if err != nil {
			t.Fatalf("LoadComboGraph(%s): %v", name, err)
		}
		if g.Name != name {
			t.Fatalf("Name = %q, want %q", g.Name, name)
		}
		if len(g.MoveIDs()) == 0 {
			t.Fatalf("%s compiled no moves", name)
		}
	}
}

func TestPlayerGraphBranches(t *testing.T) {
	g, err := LoadComboGraph("player")
	if err != nil {
		t.Fatal(err)
	}
	l1 := g.Start(InputLight)
	if l1 == nil || l1.ID != "L1" || l1.Damage != 12 || l1.Stun != 0.2 {
		t.Fatalf("Start(light) = %+v", l1)
	}

	tests := []struct {
		name  string
		from  string
		class InputClass
		dir   Direction
		want  string
	}{
		{"plain light", "L1", InputLight, DirectionNeutral, "L2"},
		{"directional before plain", "L1", InputMedium, DirectionForward, "LUNGE"},
		{"plain medium", "L1", InputMedium, DirectionBackward, "M1"},
		{"self loop", "M1", InputMedium, DirectionNeutral, "M1"},
		{"backward light", "M1", InputLight, DirectionBackward, "L1"},
		{"finisher", "L3", InputLight, DirectionNeutral, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ""
			if m := g.Branch(g.Move(tt.from), tt.class, tt.dir); m != nil {
				got = m.ID
			}
			if got != tt.want {
				t.Fatalf("Branch(%s, %s, %s) = %q, want %q", tt.from, tt.class, tt.dir, got, tt.want)
			}
		})
	}
}

func TestFlatGraphDerivesClip(t *testing.T) {
	g, err := LoadComboGraph("grunt")
	if err != nil {
		t.Fatal(err)
	}
	swipe := g.Start(InputMedium)
	if swipe == nil || swipe.ID != "swipe" {
		t.Fatalf("Start = %+v, want swipe", swipe)
	}
	if got := swipe.Clip.Frames; got != 29 {
		t.Fatalf("Frames = %d, want 29", got)
	}
	for i := 1; i < len(swipe.Clip.Events); i++ {
		if swipe.Clip.Events[i].Frame < swipe.Clip.Events[i-1].Frame {
			t.Fatalf("events out of order: %+v", swipe.Clip.Events)
		}
	}
	if next := g.Branch(swipe, InputLight, DirectionBackward); next == nil || next.ID != "slam" {
		t.Fatalf("any follow-up = %v, want slam", next)
	}
}

func TestCompileRejectsBadGraphs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			"unknown branch",
			"steps: [{id: A, trigger: a, branches: {light: B}}]\nclips: [{name: a, frames: 4}]",
			"unknown step",
		},
		{
			"unknown clip",
			"steps: [{id: A, trigger: missing}]",
			"unknown clip",
		},
		{
			"undeclared hitbox",
			"hitboxes: [{id: H}]\nsteps: [{id: A, trigger: a}]\nclips: [{name: a, frames: 4, events: [{frame: 1, type: hitbox_on, hitbox: X}]}]",
			"undeclared hitbox",
		},
		{
			"bad direction",
			"kind: flat\nattacks: [{id: A, follow_ups: [{direction: up, next: A}]}]",
			"unknown direction",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseComboGraph([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestCompileEmptyGraph(t *testing.T) {
	_, err := ParseComboGraph([]byte("name: empty"))
	if !errors.Is(err, ErrEmptyGraph) {
		t.Fatalf("err = %v, want ErrEmptyGraph", err)
	}
}

func TestComboName(t *testing.T) {
	for path, want := range map[string]string{
		"config/combos/player.yaml": "player",
		"grunt.yml":                 "grunt",
		"boss":                      "boss",
	} {
		if got := ComboName(path); got != want {
			t.Errorf("ComboName(%q) = %q, want %q", path, got, want)
		}
	}
}
