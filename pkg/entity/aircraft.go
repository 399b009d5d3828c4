// pkg/entity/aircraft.go
package entity

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/damage"
	"github.com/opd-ai/go-dogfight/pkg/flight"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// Status is the integrity state of an aircraft
type Status int

const (
	Flying Status = iota
	Crashed
)

func (s Status) String() string {
	if s == Crashed {
		return "crashed"
	}
	return "flying"
}

// AircraftState is the kinematic and status record of one aircraft.
// Health and Fuel are percentages in [0, 100]. Angles are radians.
type AircraftState struct {
	Position        mgl64.Vec3    `json:"position"`
	Orientation     mgl64.Quat    `json:"orientation"`
	Rotation        physics.Euler `json:"rotation"`
	Velocity        mgl64.Vec3    `json:"velocity"`
	AngularVelocity mgl64.Vec3    `json:"angularVelocity"` // body rates about X (pitch), Y (yaw), Z (roll)
	Airspeed        float64       `json:"airspeed"`
	Altitude        float64       `json:"altitude"`
	Heading         float64       `json:"heading"`
	AngleOfAttack   float64       `json:"angleOfAttack"`
	SlipAngle       float64       `json:"slipAngle"`
	Throttle        float64       `json:"throttle"`
	Health          float64       `json:"health"`
	Fuel            float64       `json:"fuel"`
	Ammunition      int           `json:"ammunition"`
}

// DamageState is the aircraft-side record of what damage effects are active
type DamageState struct {
	EngineDamage  float64 `json:"engineDamage"` // fraction of thrust lost
	PitchDamage   float64 `json:"pitchDamage"`
	RollDamage    float64 `json:"rollDamage"`
	YawDamage     float64 `json:"yawDamage"`
	RollBias      float64 `json:"rollBias"` // signed, negative toward the left wing
	FuelLeak      float64 `json:"fuelLeak"` // burn multiplier, 1 when intact
	OnFire        bool    `json:"onFire"`
	Spinning      bool    `json:"spinning"`
	SpinDirection float64 `json:"spinDirection"`
	Destroyed     bool    `json:"destroyed"`
}

func healthyDamageState() DamageState {
	return DamageState{FuelLeak: 1}
}

// Spawn is where an aircraft starts and returns to on reset
type Spawn struct {
	Position mgl64.Vec3
	Heading  float64
}

// Aircraft is a flyable airframe. It owns its force model and damage model
// exclusively; nothing else holds references to them.
type Aircraft struct {
	BaseEntity
	Type   config.AircraftType
	Config config.AircraftConfig

	state    AircraftState
	damage   DamageState
	status   Status
	dynamics *flight.Dynamics
	model    *damage.Model
	world    config.WorldConfig
	spawn    Spawn

	pendingReset time.Duration
	resetPending bool
}

// NewAircraft creates an aircraft of the given type at spawn, flying level
// at cruise speed.
func NewAircraft(cfg config.AircraftConfig, world config.WorldConfig, spawn Spawn) *Aircraft {
	return NewAircraftWithModel(cfg, world, spawn, damage.NewModel())
}

// NewAircraftWithModel is NewAircraft with a caller-supplied damage model,
// letting a damage.Manager index the model by the aircraft's id. The model is
// reset before use.
func NewAircraftWithModel(cfg config.AircraftConfig, world config.WorldConfig, spawn Spawn, model *damage.Model) *Aircraft {
	a := &Aircraft{
		BaseEntity: NewBaseEntity(hitBoxExtents(cfg).Len()),
		Type:       cfg.Type,
		Config:     cfg,
		dynamics:   flight.NewDynamics(cfg, world.DefaultThrottle),
		model:      model,
		world:      world,
		spawn:      spawn,
	}
	a.restore(spawn.Position)
	return a
}

// restore puts the aircraft in canonical flight at position
func (a *Aircraft) restore(position mgl64.Vec3) {
	q := physics.Euler{Yaw: a.spawn.Heading}.Quat()
	a.state = AircraftState{
		Position:    position,
		Orientation: q,
		Velocity:    physics.ToWorld(q, physics.Forward).Mul(a.Config.CruiseSpeed),
		Throttle:    a.world.DefaultThrottle,
		Health:      100,
		Fuel:        100,
		Ammunition:  a.state.Ammunition,
	}
	a.damage = healthyDamageState()
	a.status = Flying
	a.Active = true
	a.dynamics.Reset(a.world.DefaultThrottle)
	a.model.Reset()
	a.resetPending = false
	a.pendingReset = 0
	a.updateDerived()
}

// Reset restores full health, fuel and canonical flight at the reset
// altitude above the spawn point. Any scheduled auto-reset is cancelled.
func (a *Aircraft) Reset() {
	pos := a.spawn.Position
	pos[1] = a.world.ResetAltitude
	a.restore(pos)
}

// State returns a copy of the kinematic state
func (a *Aircraft) State() AircraftState {
	return a.state
}

// DamageState returns a copy of the damage record
func (a *Aircraft) DamageState() DamageState {
	return a.damage
}

// Status returns whether the aircraft is flying or crashed
func (a *Aircraft) Status() Status {
	return a.status
}

// Engine returns the current engine state
func (a *Aircraft) Engine() flight.EngineState {
	return a.dynamics.Engine()
}

// Forces returns the forces from the last integration step
func (a *Aircraft) Forces() flight.Forces {
	return a.dynamics.Last()
}

// EffectiveMaxThrust is the thrust ceiling after engine damage
func (a *Aircraft) EffectiveMaxThrust() float64 {
	return a.dynamics.EffectiveMaxThrust()
}

// Components returns a copy of the damage component table
func (a *Aircraft) Components() []damage.ComponentHealth {
	return a.model.Components()
}

// PendingReset returns the simulation time of a scheduled auto-reset
func (a *Aircraft) PendingReset() (time.Duration, bool) {
	return a.pendingReset, a.resetPending
}

// SetAmmunition records the remaining rounds across all mounts
func (a *Aircraft) SetAmmunition(rounds int) {
	a.state.Ammunition = rounds
}

// SetPose places the aircraft, for tests and scripted scenarios
func (a *Aircraft) SetPose(position mgl64.Vec3, orientation mgl64.Quat, velocity mgl64.Vec3) {
	a.state.Position = position
	a.state.Orientation = orientation.Normalize()
	a.state.Velocity = velocity
	a.updateDerived()
}

// Position implements damage.Pose and Entity
func (a *Aircraft) Position() mgl64.Vec3 {
	return a.state.Position
}

// Orientation implements damage.Pose
func (a *Aircraft) Orientation() mgl64.Quat {
	return a.state.Orientation
}

// Forward returns the nose direction in world space
func (a *Aircraft) Forward() mgl64.Vec3 {
	return physics.ToWorld(a.state.Orientation, physics.Forward)
}

// TargetID implements physics.Target
func (a *Aircraft) TargetID() uint64 {
	return a.BasicEntity.ID()
}

// Bounds implements physics.Target. The sphere encloses every corner of the
// hit box whatever the orientation.
func (a *Aircraft) Bounds() physics.Sphere {
	return physics.Sphere{Center: a.state.Position, Radius: a.Radius}
}

// hitBoxExtents returns the local-frame half extents of the airframe: half
// span across, a fixed height, and a length derived from the span.
func hitBoxExtents(cfg config.AircraftConfig) mgl64.Vec3 {
	return mgl64.Vec3{cfg.WingSpan / 2, 1.5, cfg.WingSpan * 0.42}
}

func (a *Aircraft) hitBox() mgl64.Vec3 {
	return hitBoxExtents(a.Config)
}

// Raycast implements physics.Target. The ray is tested against an oriented
// box around the airframe. Crashed aircraft cannot be hit.
func (a *Aircraft) Raycast(r physics.Ray, maxDist float64) (physics.RayHit, bool) {
	if a.status == Crashed {
		return physics.RayHit{}, false
	}
	q := a.state.Orientation
	local := physics.Ray{
		Origin:    physics.ToLocal(q, r.Origin.Sub(a.state.Position)),
		Direction: physics.ToLocal(q, r.Direction),
	}
	hit, ok := physics.RayAABB(local, physics.AABB{HalfExtents: a.hitBox()}, maxDist)
	if !ok {
		return physics.RayHit{}, false
	}
	hit.Point = physics.ToWorld(q, hit.Point).Add(a.state.Position)
	hit.Normal = physics.ToWorld(q, hit.Normal)
	return hit, true
}

func (a *Aircraft) updateDerived() {
	s := &a.state
	s.Rotation = physics.EulerFromQuat(s.Orientation)
	s.Airspeed = s.Velocity.Len()
	s.Altitude = s.Position.Y()

	forward := physics.ToWorld(s.Orientation, physics.Forward)
	s.Heading = math.Atan2(-forward.X(), -forward.Z())

	if s.Airspeed < physics.Epsilon {
		s.AngleOfAttack = 0
		s.SlipAngle = 0
		return
	}
	local := physics.ToLocal(s.Orientation, s.Velocity)
	along := -local.Z()
	s.AngleOfAttack = math.Atan2(-local.Y(), along)
	s.SlipAngle = math.Atan2(local.X(), along)
}
