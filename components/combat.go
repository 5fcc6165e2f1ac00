package components

import (
	"github.com/automoto/bladelock/config"
	"github.com/yohamta/donburi"
)

// CombatState is the high level phase of an actor's combo state machine.
type CombatState int

const (
	CombatIdle CombatState = iota
	CombatAttacking
	CombatRecovery
	CombatStunned
)

func (s CombatState) String() string {
	switch s {
	case CombatAttacking:
		return "attacking"
	case CombatRecovery:
		return "recovery"
	case CombatStunned:
		return "stunned"
	default:
		return "idle"
	}
}

// InputBuffer holds the single most recent discrete attack action.
type InputBuffer struct {
	Class     config.InputClass
	Remaining float64 // seconds until the action expires
	Pending   bool
}

// Valid reports whether the buffered action may still be consumed.
func (b *InputBuffer) Valid() bool {
	return b.Pending && b.Remaining > 0
}

func (b *InputBuffer) Clear() {
	*b = InputBuffer{}
}

// CombatData is the combo state machine of one actor. It holds no ECS
// references so it can be driven directly by the animation callbacks.
type CombatData struct {
	Graph      *config.ComboGraph
	State      CombatState
	Current    *config.Move // nil when no step is set
	InAttack   bool         // between attack begin and attack end
	CancelOpen bool
	Buffer     InputBuffer

	ChainResetRemaining float64
	StunRemaining       float64

	// Disabled is set when the actor has no usable combo graph.
	Disabled bool
}

// BufferInput records class as the pending action, replacing any earlier one.
// A non-positive ttl falls back to the current step's ttl or the default.
func (c *CombatData) BufferInput(class config.InputClass, ttl float64) {
	if ttl <= 0 && c.Current != nil {
		ttl = c.Current.BufferTTL
	}
	if ttl <= 0 {
		ttl = config.Combat.InputBufferTTL
	}
	c.Buffer = InputBuffer{Class: class, Remaining: ttl, Pending: true}
}

// Tick advances every countdown by dt seconds.
func (c *CombatData) Tick(dt float64) {
	if c.Buffer.Pending {
		c.Buffer.Remaining -= dt
		if c.Buffer.Remaining <= 0 {
			c.Buffer.Clear()
		}
	}

	switch c.State {
	case CombatStunned:
		c.StunRemaining -= dt
		if c.StunRemaining <= 0 {
			c.StunRemaining = 0
			c.reset()
		}
	case CombatRecovery:
		c.ChainResetRemaining -= dt
		if c.ChainResetRemaining <= 0 {
			c.reset()
		}
	}
}

// TryAdvance consumes the buffered action if the current state allows it and
// returns the step that started, or nil.
func (c *CombatData) TryAdvance(dir config.Direction) *config.Move {
	if c.Disabled || c.Graph == nil || !c.Buffer.Valid() {
		return nil
	}
	class := c.Buffer.Class

	switch c.State {
	case CombatIdle:
		return c.start(c.Graph.Start(class))
	case CombatRecovery:
		next := c.Graph.Branch(c.Current, class, dir)
		if next == nil {
			next = c.Graph.Start(class)
		}
		return c.start(next)
	case CombatAttacking:
		if !c.CancelOpen {
			return nil
		}
		next := c.Graph.Branch(c.Current, class, dir)
		if next == nil {
			// No branch: drop the action and let the step play out.
			c.Buffer.Clear()
			return nil
		}
		return c.start(next)
	}
	return nil
}

// OnAttackBegin marks the current attack as having actionable frames.
func (c *CombatData) OnAttackBegin() {
	if c.State == CombatAttacking {
		c.InAttack = true
	}
}

func (c *CombatData) OnCancelWindowOpen() {
	if c.State == CombatAttacking {
		c.CancelOpen = true
	}
}

func (c *CombatData) OnCancelWindowClose() {
	c.CancelOpen = false
}

// OnAttackEnd closes the current attack. A valid buffered action resolves
// the next step immediately; otherwise the step stays set until the chain
// reset timeout. Calls outside an attack are ignored.
func (c *CombatData) OnAttackEnd(dir config.Direction) *config.Move {
	if c.State != CombatAttacking {
		return nil
	}
	c.InAttack = false
	c.CancelOpen = false
	c.State = CombatRecovery
	c.ChainResetRemaining = config.Combat.ChainResetTimeout
	if c.Current != nil && c.Current.ChainReset > 0 {
		c.ChainResetRemaining = c.Current.ChainReset
	}
	return c.TryAdvance(dir)
}

// Stun interrupts any attack for d seconds and reports whether an attack
// was in progress.
func (c *CombatData) Stun(d float64) bool {
	if d <= 0 {
		return false
	}
	interrupted := c.State == CombatAttacking
	c.Current = nil
	c.InAttack = false
	c.CancelOpen = false
	c.Buffer.Clear()
	c.State = CombatStunned
	if d > c.StunRemaining {
		c.StunRemaining = d
	}
	return interrupted
}

// MovementLocked reports whether locomotion should be suppressed.
func (c *CombatData) MovementLocked() bool {
	return (c.State == CombatAttacking && c.InAttack) || c.State == CombatStunned
}

func (c *CombatData) start(m *config.Move) *config.Move {
	if m == nil {
		return nil
	}
	c.Current = m
	c.State = CombatAttacking
	c.InAttack = false
	c.CancelOpen = false
	c.ChainResetRemaining = 0
	c.Buffer.Clear()
	return m
}

// Reset returns the machine to Idle and drops any buffered input or stun.
func (c *CombatData) Reset() {
	c.reset()
	c.Buffer.Clear()
	c.StunRemaining = 0
}

func (c *CombatData) reset() {
	c.State = CombatIdle
	c.Current = nil
	c.InAttack = false
	c.CancelOpen = false
	c.ChainResetRemaining = 0
}

var Combat = donburi.NewComponentType[CombatData]()
