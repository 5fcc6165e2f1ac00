package config

// Config holds general game configuration
type Config struct {
	Width    int
	Height   int
	TickRate int // updates per second, matches ebiten TPS
}

// DeltaTime returns the fixed simulation step in seconds.
func (c *Config) DeltaTime() float64 {
	if c == nil || c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// CombatConfig contains combo state machine configuration values
type CombatConfig struct {
	InputBufferTTL    float64 // seconds a buffered action stays consumable when the step has no TTL
	ChainResetTimeout float64 // seconds after an attack ends before the combo resets to Idle
	DirectionDeadzone float64 // minimum squared magnitude of move input for direction classification
	ForwardAngle      float64 // degrees; input within this angle of the reference is Forward
	BackwardAngle     float64 // degrees; input beyond this angle of the reference is Backward
	DefaultClipFPS    float64 // frames per second for attack clips without their own rate
}

// HealthConfig contains damage receiving configuration values
type HealthConfig struct {
	IFrameDuration  float64 // seconds of invulnerability after taking damage
	KnockbackUpBias float64 // upward velocity added to every knockback
	PlayerHealth    int
	EnemyHealth     int
}

// StanceConfig contains defensive stance configuration values
type StanceConfig struct {
	IgnoreDamageInStance    bool    // intercepted hits deal no damage
	FaceAttackerDuringSlide bool    // turn toward the attacker while sliding
	InvulnerabilityWindow   float64 // seconds of invulnerability granted on intercept
	MinDistance             float64 // slide radius lower bound
	MaxDistance             float64 // slide radius upper bound
	ArcDegrees              float64 // angular sweep of the slide
	Duration                float64 // seconds
	BackstepDistance        float64 // fallback when no attacker is known
	BackstepDuration        float64 // seconds
	GroundProbeUp           float64 // probe origin above the current height
	GroundProbeDown         float64 // probe length below the origin
	FOVPulseAmount          float64 // degrees added to the FOV when a slide starts
}

// LockOnConfig contains target acquisition configuration values
type LockOnConfig struct {
	Radius             float64 // search radius around the player
	RangeTolerance     float64 // extra distance allowed before a target is dropped
	MaxAngle           float64 // degrees from camera forward a target may be
	AngleWeight        float64 // score weight for angular distance (radians)
	DistanceWeight     float64 // score weight for world distance
	CycleCooldown      float64 // seconds between cycles
	CycleAxisThreshold float64 // axis magnitude that counts as a flick
	CycleAxisRelease   float64 // axis magnitude below which a new flick is accepted
	TieEpsilon         float64 // viewport-X difference treated as a tie
	HoldToLock         bool    // lock while the button is held instead of toggling
}

// CameraConfig contains third-person camera rig configuration
type CameraConfig struct {
	PivotHeight        float64 // pivot height above the follow target's feet
	ShoulderOffset     float64 // lateral pivot offset (positive = right shoulder)
	DefaultDistance    float64
	MinDistance        float64
	MaxDistance        float64
	ZoomSpeed          float64 // distance per scroll unit
	MinPitch           float64 // degrees
	MaxPitch           float64 // degrees
	LookSensitivity    float64 // degrees per second per unit of look axis
	NudgeSensitivity   float64 // degrees per second while locked
	InvertY            bool
	LockLookBlend      float64 // 0 = look at player, 1 = look at target
	LockPitchBias      float64 // degrees added to the lock pitch
	LockTurnSharpness  float64 // exponential steering rate while locked
	CollisionRadius    float64 // sphere cast radius
	CollisionBuffer    float64 // distance kept from occluding geometry
	PositionSmoothTime float64 // seconds; critically damped follow
	RotationSharpness  float64 // exponential slerp rate
	DefaultFOV         float64 // degrees, vertical
	WideFOV            float64 // degrees, vertical
	FOVSharpness       float64 // exponential FOV convergence rate
	PulseOutDuration   float64 // seconds
	PulseBackDuration  float64 // seconds
	Aspect             float64
}

// ArenaConfig contains arena loading configuration
type ArenaConfig struct {
	PixelsPerUnit  float64 // Tiled pixels per world unit
	CellSize       int     // resolv cell size in world units
	DefaultArena   string
	DefaultTop     float64 // height of solids without a "top" property
	FloorThickness float64
}

// CharacterConfig contains body dimensions and movement values
type CharacterConfig struct {
	Radius       float64
	Height       float64
	MoveSpeed    float64
	TurnSpeed    float64 // radians per second
	Gravity      float64
	Friction     float64 // horizontal velocity decay per second
	StepHeight   float64 // geometry lower than this is walked over
	AttackRange  float64 // enemy AI only
	AttackPeriod float64 // enemy AI only, seconds between attack attempts
}

// DebugConfig contains debug drawing options
type DebugConfig struct {
	Draw          bool
	PixelsPerUnit float64
}

// Global configuration instances
var C *Config
var Combat CombatConfig
var Health HealthConfig
var Stance StanceConfig
var LockOn LockOnConfig
var Camera CameraConfig
var Arena ArenaConfig
var Player CharacterConfig
var Enemy CharacterConfig
var Debug DebugConfig

func init() {
	C = &Config{
		Width:    640,
		Height:   360,
		TickRate: 60,
	}

	Combat = CombatConfig{
		InputBufferTTL:    0.25,
		ChainResetTimeout: 0.6,
		DirectionDeadzone: 0.1,
		ForwardAngle:      45,
		BackwardAngle:     135,
		DefaultClipFPS:    30,
	}

	Health = HealthConfig{
		IFrameDuration:  0.3,
		KnockbackUpBias: 2.0,
		PlayerHealth:    100,
		EnemyHealth:     60,
	}

	Stance = StanceConfig{
		IgnoreDamageInStance:    true,
		FaceAttackerDuringSlide: true,
		InvulnerabilityWindow:   0.5,
		MinDistance:             1.5,
		MaxDistance:             3.0,
		ArcDegrees:              180,
		Duration:                0.35,
		BackstepDistance:        1.5,
		BackstepDuration:        0.2,
		GroundProbeUp:           1.0,
		GroundProbeDown:         4.0,
		FOVPulseAmount:          8,
	}

	LockOn = LockOnConfig{
		Radius:             20,
		RangeTolerance:     1.5,
		MaxAngle:           60,
		AngleWeight:        100,
		DistanceWeight:     0.1,
		CycleCooldown:      0.25,
		CycleAxisThreshold: 0.7,
		CycleAxisRelease:   0.3,
		TieEpsilon:         0.01,
		HoldToLock:         false,
	}

	Camera = CameraConfig{
		PivotHeight:        1.6,
		ShoulderOffset:     0.5,
		DefaultDistance:    5,
		MinDistance:        1,
		MaxDistance:        9,
		ZoomSpeed:          0.5,
		MinPitch:           -30,
		MaxPitch:           70,
		LookSensitivity:    180,
		NudgeSensitivity:   45,
		LockLookBlend:      0.5,
		LockPitchBias:      10,
		LockTurnSharpness:  10,
		CollisionRadius:    0.3,
		CollisionBuffer:    0.2,
		PositionSmoothTime: 0.08,
		RotationSharpness:  15,
		DefaultFOV:         60,
		WideFOV:            70,
		FOVSharpness:       8,
		PulseOutDuration:   0.1,
		PulseBackDuration:  0.35,
		Aspect:             16.0 / 9.0,
	}

	Arena = ArenaConfig{
		PixelsPerUnit:  16,
		CellSize:       2,
		DefaultArena:   "training",
		DefaultTop:     3,
		FloorThickness: 1,
	}

	Player = CharacterConfig{
		Radius:     0.4,
		Height:     1.8,
		MoveSpeed:  6,
		TurnSpeed:  12,
		Gravity:    25,
		Friction:   10,
		StepHeight: 0.3,
	}

	Enemy = CharacterConfig{
		Radius:       0.5,
		Height:       1.9,
		MoveSpeed:    3,
		TurnSpeed:    6,
		Gravity:      25,
		Friction:     10,
		StepHeight:   0.3,
		AttackRange:  2.0,
		AttackPeriod: 2.5,
	}

	Debug = DebugConfig{
		Draw:          true,
		PixelsPerUnit: 8,
	}
}
