// pkg/entity/flight.go
package entity

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/flight"
	"github.com/opd-ai/go-dogfight/pkg/input"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// Integration constants
const (
	AngularDamping = 0.92 // per tick
	SpinRollRate   = 2.5
	SpinPitchRate  = 0.8
	RollBiasRate   = 0.15 // fraction of RollRate drifting toward a damaged wing
	FireFuelFactor = 3.0
)

// ResetReason says why an aircraft was returned to its spawn state
type ResetReason int

const (
	NoReset ResetReason = iota
	ResetManual
	ResetAfterCrash
	ResetStuck
	ResetOutOfBounds
)

func (r ResetReason) String() string {
	switch r {
	case ResetManual:
		return "manual"
	case ResetAfterCrash:
		return "crash"
	case ResetStuck:
		return "stuck"
	case ResetOutOfBounds:
		return "out_of_bounds"
	}
	return "none"
}

// StepResult reports the discrete transitions of one Update
type StepResult struct {
	Crashed      bool
	Reset        ResetReason
	SoftBoundary bool
	// WreckDown is set when a wreck with no health left reaches the ground.
	// It is grounded and scheduled for reset like a crash but is not one.
	WreckDown bool
}

// Update advances the aircraft by dt seconds of simulation time. now is the
// simulation clock after this step and is compared against any pending
// auto-reset deadline.
func (a *Aircraft) Update(ctrl input.Controls, now time.Duration, dt float64) StepResult {
	var res StepResult

	if a.resetPending && now >= a.pendingReset {
		a.Reset()
		res.Reset = ResetAfterCrash
		return res
	}
	if a.status == Crashed || dt <= 0 {
		return res
	}

	ctrl = ctrl.Sanitize()
	if a.damage.Destroyed {
		ctrl = input.Controls{Throttle: a.state.Throttle}
	}

	a.state.Throttle = ctrl.EffectiveThrottle()
	if a.state.Fuel <= 0 {
		a.state.Throttle = 0
	}

	forces := a.dynamics.Update(flight.Input{
		Orientation:   a.state.Orientation,
		Velocity:      a.state.Velocity,
		Altitude:      a.state.Altitude,
		AngleOfAttack: a.state.AngleOfAttack,
		Pitch:         a.state.Rotation.Pitch,
		Throttle:      a.state.Throttle,
		Brake:         ctrl.Brake,
	}, dt)

	a.integrateLinear(forces.Total, dt)
	a.integrateAngular(ctrl, forces.ControlEffectiveness, dt)
	a.updateDerived()
	a.burnFuel(dt)

	return a.checkBounds(now, res)
}

func (a *Aircraft) integrateLinear(total mgl64.Vec3, dt float64) {
	accel := total.Mul(1 / a.Config.Mass)
	a.state.Velocity = a.state.Velocity.Add(accel.Mul(dt))
	a.state.Position = a.state.Position.Add(a.state.Velocity.Mul(dt))
}

// integrateAngular applies pilot rates scaled by effectiveness and control
// damage. Positive pitch input raises the nose; positive roll and yaw inputs
// go right.
func (a *Aircraft) integrateAngular(ctrl input.Controls, effectiveness float64, dt float64) {
	d := a.damage
	cfg := a.Config

	pitch := ctrl.Pitch * cfg.PitchRate * effectiveness * (1 - math.Abs(d.PitchDamage))
	yaw := -ctrl.Yaw * cfg.YawRate * effectiveness * (1 - math.Abs(d.YawDamage))
	roll := -ctrl.Roll * cfg.RollRate * effectiveness * (1 - math.Abs(d.RollDamage))
	roll -= d.RollBias * cfg.RollRate * RollBiasRate

	if d.Spinning {
		roll = -d.SpinDirection * SpinRollRate
		pitch = -SpinPitchRate
	}

	w := a.state.AngularVelocity.Add(mgl64.Vec3{pitch, yaw, roll}.Mul(dt))
	a.state.AngularVelocity = w.Mul(AngularDamping)
	a.state.Orientation = physics.IntegrateBodyRate(a.state.Orientation, a.state.AngularVelocity, dt)
}

func (a *Aircraft) burnFuel(dt float64) {
	rate := a.state.Throttle * a.Config.FuelBurnRate * a.damage.FuelLeak
	if a.damage.OnFire {
		rate *= FireFuelFactor
	}
	a.state.Fuel = mgl64.Clamp(a.state.Fuel-rate*dt, 0, 100)
	if a.state.Fuel <= 0 {
		a.state.Throttle = 0
	}
}

// checkBounds runs the ground and boundary policy: ground contact crashes an
// aircraft with health left, a slow aircraft hovering near the ground is
// reset, and leaving the arena either resets a slow aircraft or turns a fast
// one back toward the origin.
func (a *Aircraft) checkBounds(now time.Duration, res StepResult) StepResult {
	s := &a.state
	w := a.world

	if s.Altitude <= 0 {
		if s.Health > 0 {
			res.Crashed = true
		} else {
			res.WreckDown = true
		}
		a.crash(now)
		return res
	}

	if s.Airspeed < w.StuckSpeed && s.Altitude > w.StuckMinAltitude && s.Altitude < w.StuckMaxAltitude && s.Health > 0 {
		a.Reset()
		res.Reset = ResetStuck
		return res
	}

	if w.BoundaryRadius > 0 && physics.HorizontalDistance(s.Position, mgl64.Vec3{}) > w.BoundaryRadius {
		if s.Airspeed < w.SoftBoundarySpeed {
			a.Reset()
			res.Reset = ResetOutOfBounds
			return res
		}
		a.turnTowardOrigin()
		res.SoftBoundary = true
	}
	return res
}

// crash pins the aircraft to the ground and schedules an auto-reset. A newer
// schedule replaces any older one.
func (a *Aircraft) crash(now time.Duration) {
	s := &a.state
	s.Position[1] = 0
	s.Altitude = 0
	s.Velocity = mgl64.Vec3{}
	s.AngularVelocity = mgl64.Vec3{}
	s.Airspeed = 0
	s.Health = 0
	a.status = Crashed
	a.ScheduleReset(now + a.world.CrashResetDelay)
}

// ScheduleReset sets the single pending auto-reset deadline
func (a *Aircraft) ScheduleReset(at time.Duration) {
	a.pendingReset = at
	a.resetPending = true
}

// turnTowardOrigin yaws the aircraft and its velocity about world up so the
// nose points at the arena centre.
func (a *Aircraft) turnTowardOrigin() {
	s := &a.state
	toOrigin := physics.Horizontal(s.Position.Mul(-1))
	if physics.IsZero(toOrigin) {
		return
	}
	want := math.Atan2(-toOrigin.X(), -toOrigin.Z())
	delta := physics.WrapAngle(want - s.Heading)

	turn := mgl64.QuatRotate(delta, physics.Up)
	s.Orientation = turn.Mul(s.Orientation).Normalize()
	s.Velocity = turn.Rotate(s.Velocity)
	a.updateDerived()
}
