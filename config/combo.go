package config

import (
	"errors"
	"fmt"
	"sort"
)

// InputClass identifies the discrete attack button that started or continues a combo.
type InputClass string

const (
	InputLight  InputClass = "light"
	InputMedium InputClass = "medium"
)

// Direction classifies move input relative to the actor's attack reference.
type Direction int

const (
	DirectionNeutral Direction = iota
	DirectionForward
	DirectionBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "neutral"
	}
}

// ParseDirection converts a YAML direction name. "any" is reported with ok=false.
func ParseDirection(s string) (d Direction, ok bool, err error) {
	switch s {
	case "neutral", "":
		return DirectionNeutral, true, nil
	case "forward":
		return DirectionForward, true, nil
	case "backward":
		return DirectionBackward, true, nil
	case "any":
		return DirectionNeutral, false, nil
	}
	return DirectionNeutral, false, fmt.Errorf("unknown direction %q", s)
}

// ComboKind tags which authored shape a ComboGraph uses.
type ComboKind string

const (
	// ComboKindGraph uses AttackSteps with input-class branches.
	ComboKindGraph ComboKind = "graph"
	// ComboKindFlat uses an AttackData list with direction follow-ups.
	ComboKindFlat ComboKind = "flat"
)

// ClipEventType identifies an authored animation lifecycle signal.
type ClipEventType string

const (
	ClipAttackBegin ClipEventType = "begin"
	ClipHitboxOn    ClipEventType = "hitbox_on"
	ClipHitboxOff   ClipEventType = "hitbox_off"
	ClipCancelOpen  ClipEventType = "cancel_open"
	ClipCancelClose ClipEventType = "cancel_close"
	ClipAttackEnd   ClipEventType = "end"
)

// ClipEvent is a lifecycle signal fired when the clip reaches Frame.
type ClipEvent struct {
	Frame  int           `yaml:"frame"`
	Type   ClipEventType `yaml:"type"`
	Hitbox string        `yaml:"hitbox,omitempty"`
}

// AttackClip is the timeline of one attack animation.
type AttackClip struct {
	Name   string      `yaml:"name"`
	FPS    float64     `yaml:"fps"`
	Frames int         `yaml:"frames"`
	Events []ClipEvent `yaml:"events"`
}

// Duration returns the clip length in seconds.
func (c *AttackClip) Duration() float64 {
	if c == nil || c.FPS <= 0 {
		return 0
	}
	return float64(c.Frames) / c.FPS
}

// HitboxShape is the authored volume of a named hitbox, in owner space
// (X right, Y up, Z forward).
type HitboxShape struct {
	ID            string     `yaml:"id"`
	Offset        [3]float64 `yaml:"offset"`
	Size          [3]float64 `yaml:"size"`
	MinForwardDot *float64   `yaml:"min_forward_dot,omitempty"`
}

// ForwardDot returns the minimum facing alignment, -1 when unset.
func (h HitboxShape) ForwardDot() float64 {
	if h.MinForwardDot == nil {
		return -1
	}
	return *h.MinForwardDot
}

// AttackStep is one node of a branching combo graph.
type AttackStep struct {
	ID         string            `yaml:"id"`
	Trigger    string            `yaml:"trigger"`
	Damage     int               `yaml:"damage"`
	Stun       float64           `yaml:"stun"`
	Launch     float64           `yaml:"launch"`
	Branches   map[string]string `yaml:"branches"`
	CanLoop    bool              `yaml:"can_loop"`
	BufferTTL  float64           `yaml:"buffer_ttl"`
	ChainReset float64           `yaml:"chain_reset"`
}

// HitboxWindow enables a hitbox between two frames of a flat attack.
type HitboxWindow struct {
	Hitbox string `yaml:"hitbox"`
	On     int    `yaml:"on"`
	Off    int    `yaml:"off"`
}

// FollowUp chains a flat attack into Next when the input direction matches.
type FollowUp struct {
	Direction string `yaml:"direction"`
	Next      string `yaml:"next"`
}

// AttackData is one entry of a flat attack list with frame-indexed timing.
type AttackData struct {
	ID               string         `yaml:"id"`
	Trigger          string         `yaml:"trigger"`
	Damage           int            `yaml:"damage"`
	Stun             float64        `yaml:"stun"`
	Launch           float64        `yaml:"launch"`
	ComboWindowStart int            `yaml:"combo_window_start"`
	ComboWindowEnd   int            `yaml:"combo_window_end"`
	RecoveryFrames   int            `yaml:"recovery_frames"`
	Hitboxes         []HitboxWindow `yaml:"hitboxes"`
	FollowUps        []FollowUp     `yaml:"follow_ups"`
}

// Move is the runtime view of an attack, shared by both combo kinds.
type Move struct {
	ID         string
	Trigger    string
	Damage     int
	Stun       float64
	Launch     float64
	CanLoop    bool
	BufferTTL  float64
	ChainReset float64
	Clip       *AttackClip

	branches  map[string]string
	followUps map[Direction]string
	anyFollow string
}

// ComboGraph is the static attack configuration of one actor type.
type ComboGraph struct {
	Name     string            `yaml:"name"`
	Kind     ComboKind         `yaml:"kind"`
	FPS      float64           `yaml:"fps"`
	Entries  map[string]string `yaml:"entries"`
	Steps    []AttackStep      `yaml:"steps"`
	Attacks  []AttackData      `yaml:"attacks"`
	Clips    []AttackClip      `yaml:"clips"`
	Hitboxes []HitboxShape     `yaml:"hitboxes"`

	moves map[string]*Move
	first string
}

var ErrEmptyGraph = errors.New("combo graph has no attacks")

// Compile validates the authored data and builds the runtime moves.
func (g *ComboGraph) Compile() error {
	if g.FPS <= 0 {
		g.FPS = Combat.DefaultClipFPS
	}
	g.moves = make(map[string]*Move)

	switch g.Kind {
	case ComboKindGraph, "":
		g.Kind = ComboKindGraph
		if err := g.compileSteps(); err != nil {
			return err
		}
	case ComboKindFlat:
		if err := g.compileAttacks(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("combo %s: unknown kind %q", g.Name, g.Kind)
	}

	if len(g.moves) == 0 {
		return fmt.Errorf("combo %s: %w", g.Name, ErrEmptyGraph)
	}
	for class, id := range g.Entries {
		if _, ok := g.moves[id]; !ok {
			return fmt.Errorf("combo %s: entry %s points at unknown attack %q", g.Name, class, id)
		}
	}
	return g.checkHitboxes()
}

// checkHitboxes rejects clips that toggle hitboxes the graph never declares.
// Graphs without hitbox declarations are not checked.
func (g *ComboGraph) checkHitboxes() error {
	if len(g.Hitboxes) == 0 {
		return nil
	}
	declared := make(map[string]bool, len(g.Hitboxes))
	for _, h := range g.Hitboxes {
		if h.ID == "" {
			return fmt.Errorf("combo %s: hitbox without id", g.Name)
		}
		declared[h.ID] = true
	}
	for _, m := range g.moves {
		for _, evt := range m.Clip.Events {
			if evt.Hitbox != "" && !declared[evt.Hitbox] {
				return fmt.Errorf("combo %s: attack %s toggles undeclared hitbox %q", g.Name, m.ID, evt.Hitbox)
			}
		}
	}
	return nil
}

func (g *ComboGraph) compileSteps() error {
	clips := make(map[string]*AttackClip, len(g.Clips))
	for i := range g.Clips {
		clip := &g.Clips[i]
		if clip.FPS <= 0 {
			clip.FPS = g.FPS
		}
		sortClipEvents(clip)
		clips[clip.Name] = clip
	}

	for i := range g.Steps {
		step := &g.Steps[i]
		if step.ID == "" {
			return fmt.Errorf("combo %s: step %d has no id", g.Name, i)
		}
		if _, dup := g.moves[step.ID]; dup {
			return fmt.Errorf("combo %s: duplicate step %q", g.Name, step.ID)
		}
		clip, ok := clips[step.Trigger]
		if !ok {
			return fmt.Errorf("combo %s: step %s uses unknown clip %q", g.Name, step.ID, step.Trigger)
		}
		branches := make(map[string]string, len(step.Branches))
		for k, v := range step.Branches {
			branches[k] = v
		}
		g.moves[step.ID] = &Move{
			ID:         step.ID,
			Trigger:    step.Trigger,
			Damage:     step.Damage,
			Stun:       step.Stun,
			Launch:     step.Launch,
			CanLoop:    step.CanLoop,
			BufferTTL:  step.BufferTTL,
			ChainReset: step.ChainReset,
			Clip:       clip,
			branches:   branches,
		}
		if g.first == "" {
			g.first = step.ID
		}
	}

	for _, m := range g.moves {
		for key, target := range m.branches {
			if _, ok := g.moves[target]; !ok {
				return fmt.Errorf("combo %s: step %s branch %s points at unknown step %q", g.Name, m.ID, key, target)
			}
		}
	}
	return nil
}

func (g *ComboGraph) compileAttacks() error {
	for i := range g.Attacks {
		a := &g.Attacks[i]
		if a.ID == "" {
			return fmt.Errorf("combo %s: attack %d has no id", g.Name, i)
		}
		if _, dup := g.moves[a.ID]; dup {
			return fmt.Errorf("combo %s: duplicate attack %q", g.Name, a.ID)
		}
		if a.ComboWindowEnd < a.ComboWindowStart {
			return fmt.Errorf("combo %s: attack %s combo window ends before it starts", g.Name, a.ID)
		}

		m := &Move{
			ID:        a.ID,
			Trigger:   a.Trigger,
			Damage:    a.Damage,
			Stun:      a.Stun,
			Launch:    a.Launch,
			Clip:      flatClip(a, g.FPS),
			followUps: make(map[Direction]string),
		}
		for _, f := range a.FollowUps {
			dir, ok, err := ParseDirection(f.Direction)
			if err != nil {
				return fmt.Errorf("combo %s: attack %s: %w", g.Name, a.ID, err)
			}
			if !ok {
				m.anyFollow = f.Next
				continue
			}
			m.followUps[dir] = f.Next
		}
		g.moves[a.ID] = m
		if g.first == "" {
			g.first = a.ID
		}
	}

	for _, m := range g.moves {
		for dir, next := range m.followUps {
			if _, ok := g.moves[next]; !ok {
				return fmt.Errorf("combo %s: attack %s follow-up %s points at unknown attack %q", g.Name, m.ID, dir, next)
			}
		}
		if m.anyFollow != "" {
			if _, ok := g.moves[m.anyFollow]; !ok {
				return fmt.Errorf("combo %s: attack %s follow-up points at unknown attack %q", g.Name, m.ID, m.anyFollow)
			}
		}
	}
	return nil
}

// flatClip derives a timeline from frame-indexed attack data.
func flatClip(a *AttackData, fps float64) *AttackClip {
	end := a.ComboWindowEnd + a.RecoveryFrames
	clip := &AttackClip{
		Name:   a.ID,
		FPS:    fps,
		Frames: end + 1,
		Events: []ClipEvent{
			{Frame: 0, Type: ClipAttackBegin},
			{Frame: a.ComboWindowStart, Type: ClipCancelOpen},
			{Frame: a.ComboWindowEnd, Type: ClipCancelClose},
			{Frame: end, Type: ClipAttackEnd},
		},
	}
	for _, hb := range a.Hitboxes {
		clip.Events = append(clip.Events,
			ClipEvent{Frame: hb.On, Type: ClipHitboxOn, Hitbox: hb.Hitbox},
			ClipEvent{Frame: hb.Off, Type: ClipHitboxOff, Hitbox: hb.Hitbox},
		)
	}
	sortClipEvents(clip)
	return clip
}

func sortClipEvents(clip *AttackClip) {
	sort.SliceStable(clip.Events, func(i, j int) bool {
		return clip.Events[i].Frame < clip.Events[j].Frame
	})
	for _, evt := range clip.Events {
		if evt.Frame >= clip.Frames {
			clip.Frames = evt.Frame + 1
		}
	}
}

// Move returns the compiled move with the given id, or nil.
func (g *ComboGraph) Move(id string) *Move {
	if g == nil {
		return nil
	}
	return g.moves[id]
}

// Start returns the first move for a fresh combo started with class.
func (g *ComboGraph) Start(class InputClass) *Move {
	if g == nil {
		return nil
	}
	if id, ok := g.Entries[string(class)]; ok {
		return g.moves[id]
	}
	if len(g.Entries) > 0 {
		// Classes without an entry do not start combos when entries are authored.
		return nil
	}
	return g.moves[g.first]
}

// Branch returns the move that follows cur for the given input, or nil when
// the input does not continue the combo. Self-loops are returned for moves
// that allow them.
func (g *ComboGraph) Branch(cur *Move, class InputClass, dir Direction) *Move {
	if g == nil || cur == nil {
		return nil
	}
	// Look the move up again so hot-reloaded graphs use their own branches.
	m := g.moves[cur.ID]
	if m == nil {
		return nil
	}

	switch g.Kind {
	case ComboKindFlat:
		if next, ok := m.followUps[dir]; ok {
			return g.moves[next]
		}
		if m.anyFollow != "" {
			return g.moves[m.anyFollow]
		}
	default:
		if next, ok := m.branches[string(class)+":"+dir.String()]; ok {
			return g.moves[next]
		}
		if next, ok := m.branches[string(class)]; ok {
			return g.moves[next]
		}
	}

	if m.CanLoop {
		return m
	}
	return nil
}

// MoveIDs returns the compiled move ids in sorted order.
func (g *ComboGraph) MoveIDs() []string {
	ids := make([]string, 0, len(g.moves))
	for id := range g.moves {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
