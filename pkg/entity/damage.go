// pkg/entity/damage.go
package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/damage"
)

// ApplyDamage runs a hit through the damage model, applies the resulting
// effects and writes the aggregate health back onto the aircraft.
func (a *Aircraft) ApplyDamage(amount float64, hitWorld mgl64.Vec3, kind damage.Type) damage.Result {
	res := a.model.ApplyDamage(amount, hitWorld, a, kind)
	a.ApplyEffects(res.Effects)
	a.state.Health = res.AggregateHealth
	if a.damage.Destroyed || a.status == Crashed {
		a.state.Health = 0
	}
	return res
}

// ApplyEffects folds damage effects into the damage record. Effects only make
// things worse; repeated effects are no-ops.
func (a *Aircraft) ApplyEffects(effects []damage.Effect) {
	d := &a.damage
	for _, e := range effects {
		switch e.Kind {
		case damage.ThrustLimit:
			d.EngineDamage = math.Max(d.EngineDamage, 1-e.Value)
			a.dynamics.SetThrustLimit(1 - d.EngineDamage)
		case damage.ControlDamage:
			switch e.Axis {
			case damage.AxisPitch:
				d.PitchDamage = math.Max(d.PitchDamage, e.Value)
			case damage.AxisRoll:
				d.RollDamage = math.Max(d.RollDamage, e.Value)
				if e.Direction != 0 {
					d.RollBias += e.Direction * e.Value
				}
			case damage.AxisYaw:
				d.YawDamage = math.Max(d.YawDamage, e.Value)
			}
		case damage.FuelLeak:
			d.FuelLeak = math.Max(d.FuelLeak, e.Value)
		case damage.Fire:
			d.OnFire = true
		case damage.Spin:
			if !d.Spinning {
				d.Spinning = true
				d.SpinDirection = e.Direction
			}
		case damage.Destroyed:
			d.Destroyed = true
			a.state.Health = 0
		}
	}
}

// Destroyed reports whether the aircraft no longer responds to controls
func (a *Aircraft) Destroyed() bool {
	return a.damage.Destroyed
}
