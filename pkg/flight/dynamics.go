// Package flight computes the aerodynamic and propulsive forces acting on an
// aircraft. It is a force model only; integrating the forces into motion is
// the aircraft entity's job.
package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// Atmosphere and model constants
const (
	AirDensity        = 1.225
	Gravity           = 9.81
	OswaldEfficiency  = 0.8
	ServiceCeiling    = 15000.0
	MinAltitudeThrust = 0.3
	LiftFloorFraction = 0.2
	LiftFloorSpeed    = 5.0
	BrakeDragFactor   = 2.0
)

// Input is the flight condition Dynamics needs for one tick
type Input struct {
	Orientation   mgl64.Quat
	Velocity      mgl64.Vec3
	Altitude      float64
	AngleOfAttack float64 // radians
	Pitch         float64 // radians
	Throttle      float64
	Brake         bool
}

// Forces is the result of one Update. All vectors are in world space, N.
type Forces struct {
	Thrust               mgl64.Vec3
	Lift                 mgl64.Vec3
	Drag                 mgl64.Vec3
	Weight               mgl64.Vec3
	Total                mgl64.Vec3
	ControlEffectiveness float64
	Stall                Stall
}

// Dynamics owns the engine state of one aircraft and turns flight conditions
// into forces.
type Dynamics struct {
	cfg         config.AircraftConfig
	engine      EngineState
	thrustLimit float64
	last        Forces
}

// NewDynamics creates a force model for cfg with the engine settled at throttle
func NewDynamics(cfg config.AircraftConfig, throttle float64) *Dynamics {
	return &Dynamics{
		cfg:         cfg,
		engine:      NewEngineState(throttle),
		thrustLimit: 1,
		last:        Forces{ControlEffectiveness: 1, Stall: Stall{LiftFactor: 1, DragFactor: 1}},
	}
}

// Config returns the aircraft constants the model was built with
func (d *Dynamics) Config() config.AircraftConfig {
	return d.cfg
}

// Engine returns a copy of the current engine state
func (d *Dynamics) Engine() EngineState {
	return d.engine
}

// Last returns the forces computed by the most recent Update
func (d *Dynamics) Last() Forces {
	return d.last
}

// SetThrustLimit caps available thrust to a fraction of MaxThrust
func (d *Dynamics) SetThrustLimit(fraction float64) {
	d.thrustLimit = clamp01(fraction)
}

// EffectiveMaxThrust is MaxThrust after damage limits
func (d *Dynamics) EffectiveMaxThrust() float64 {
	return d.cfg.MaxThrust * d.thrustLimit
}

// Reset restores a healthy engine settled at throttle
func (d *Dynamics) Reset(throttle float64) {
	d.engine = NewEngineState(throttle)
	d.thrustLimit = 1
	d.last = Forces{ControlEffectiveness: 1, Stall: Stall{LiftFactor: 1, DragFactor: 1}}
}

// Update advances the engine by dt and returns the forces for the given
// flight condition.
func (d *Dynamics) Update(in Input, dt float64) Forces {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	d.engine.advance(in.Throttle, dt)

	q := in.Orientation
	if q.Len() < physics.Epsilon {
		q = mgl64.QuatIdent()
	}
	forward := physics.ToWorld(q, physics.Forward)
	up := physics.ToWorld(q, physics.Up)

	airspeed := in.Velocity.Len()
	aoaDeg := mgl64.RadToDeg(in.AngleOfAttack)
	dynamicPressure := 0.5 * AirDensity * airspeed * airspeed
	weight := d.cfg.Mass * Gravity

	var f Forces
	f.Stall = StallModel(aoaDeg, airspeed, d.cfg.StallSpeed)

	thrust := d.engine.ActualThrottle * d.EffectiveMaxThrust() *
		AltitudeFactor(in.Altitude) * ThrottleEfficiency(d.engine.ActualThrottle)
	f.Thrust = forward.Mul(thrust)

	cl := LiftCoefficient(aoaDeg, d.cfg.LiftCoefficient)
	lift := dynamicPressure * d.cfg.WingArea * cl * f.Stall.LiftFactor
	if airspeed > LiftFloorSpeed {
		lift = math.Max(lift, LiftFloorFraction*weight)
	}
	f.Lift = up.Mul(lift)

	parasitic := dynamicPressure * d.cfg.DragCoefficient * d.cfg.WingArea
	induced := 0.0
	if d.cfg.AspectRatio > 0 {
		induced = dynamicPressure * d.cfg.WingArea * cl * cl / (math.Pi * d.cfg.AspectRatio * OswaldEfficiency)
	}
	drag := (parasitic + induced) * f.Stall.DragFactor
	if in.Brake {
		drag *= BrakeDragFactor
	}
	f.Drag = physics.SafeNormalize(in.Velocity, mgl64.Vec3{}).Mul(-drag)

	f.Weight = mgl64.Vec3{0, -weight, 0}
	if airspeed > LiftFloorSpeed {
		f.Weight = f.Weight.Add(forward.Mul(-math.Sin(in.Pitch) * weight))
	}

	f.Total = f.Thrust.Add(f.Lift).Add(f.Drag).Add(f.Weight)
	f.ControlEffectiveness = ControlEffectiveness(airspeed, d.cfg.StallSpeed, d.cfg.CruiseSpeed)

	d.last = f
	return f
}

// AltitudeFactor reduces thrust linearly with altitude down to 30%
func AltitudeFactor(altitude float64) float64 {
	return math.Max(MinAltitudeThrust, 1-altitude/ServiceCeiling)
}

// ThrottleEfficiency is the propeller efficiency curve. Very low throttle is
// inefficient, the mid range is best, and sustained full power loses a little
// to overheating.
func ThrottleEfficiency(throttle float64) float64 {
	t := clamp01(throttle)
	switch {
	case t < 0.1:
		return 0.3
	case t < 0.3:
		return 0.5 + (t-0.1)/0.2*0.5
	case t <= 0.8:
		return 0.85 + (t-0.3)/0.5*0.15
	default:
		return 1.0 - (t-0.8)/0.2*0.05
	}
}

// ControlEffectiveness scales control authority with airspeed
func ControlEffectiveness(airspeed, stallSpeed, cruiseSpeed float64) float64 {
	low := 0.5 * stallSpeed
	switch {
	case airspeed >= cruiseSpeed:
		return 1
	case airspeed < low:
		return 0.1
	case cruiseSpeed <= low:
		return 1
	}
	return clamp01(0.1 + 0.9*(airspeed-low)/(cruiseSpeed-low))
}
