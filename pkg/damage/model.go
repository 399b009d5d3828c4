// pkg/damage/model.go
package damage

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// Type is the kind of damage a hit delivers
type Type int

const (
	Kinetic Type = iota
	Explosive
)

func (t Type) String() string {
	if t == Explosive {
		return "explosive"
	}
	return "kinetic"
}

// Damage modifiers
const (
	ExplosiveMultiplier = 1.5
	SplashFraction      = 0.3
)

// Hit regions in the aircraft's local frame, metres
const (
	wingLateral     = 2.0
	tailLongitude   = -3.0
	cockpitLateral  = 1.0
	cockpitVertical = 0.5
	engineLongitude = 2.0
)

// Pose is anything with a world transform a hit can be localized against
type Pose interface {
	Position() mgl64.Vec3
	Orientation() mgl64.Quat
}

// ComponentHit is the outcome of damage to a single component
type ComponentHit struct {
	Component       ComponentID `json:"component"`
	EffectiveDamage float64     `json:"effectiveDamage"`
	Critical        bool        `json:"critical"`
	BecameCritical  bool        `json:"becameCritical"`
	Destroyed       bool        `json:"destroyed"`
	BecameDestroyed bool        `json:"becameDestroyed"`
}

// Result describes one ApplyDamage call. Effects holds every effect newly
// triggered by the hit, including those caused by splash.
type Result struct {
	ComponentHit
	Splash          []ComponentHit `json:"splash,omitempty"`
	AggregateHealth float64        `json:"aggregateHealth"`
	Effects         []Effect       `json:"effects,omitempty"`
}

// Model tracks the six components of one aircraft
type Model struct {
	components [componentCount]ComponentHealth
}

// NewModel creates a model with every component at full health
func NewModel() *Model {
	m := &Model{}
	m.Reset()
	return m
}

// Reset restores every component and clears all flags and effects
func (m *Model) Reset() {
	for _, id := range Components() {
		m.components[id] = newComponent(id)
	}
}

// Component returns a copy of one component's state
func (m *Model) Component(id ComponentID) ComponentHealth {
	c := m.components[id]
	c.Effects = append([]Effect(nil), c.Effects...)
	return c
}

// Components returns a copy of the component table
func (m *Model) Components() []ComponentHealth {
	out := make([]ComponentHealth, 0, componentCount)
	for _, id := range Components() {
		out = append(out, m.Component(id))
	}
	return out
}

// AggregateHealth is total current health over total max health, in percent
func (m *Model) AggregateHealth() float64 {
	var current, total float64
	for i := range m.components {
		current += m.components[i].CurrentHealth
		total += m.components[i].MaxHealth
	}
	if total <= 0 {
		return 0
	}
	return current / total * 100
}

// ActiveEffects returns the effects of every component in table order
func (m *Model) ActiveEffects() []Effect {
	var effects []Effect
	for i := range m.components {
		effects = append(effects, m.components[i].Effects...)
	}
	return effects
}

// Localize maps a world-space hit point onto a component using fixed regions
// of the aircraft's local frame.
func Localize(hitWorld mgl64.Vec3, pose Pose) ComponentID {
	local := physics.ToLocal(pose.Orientation(), hitWorld.Sub(pose.Position()))
	return LocalizeLocal(local)
}

// LocalizeLocal classifies a point already in the aircraft's local frame
func LocalizeLocal(local mgl64.Vec3) ComponentID {
	lateral := local.X()
	longitudinal := -local.Z()
	vertical := local.Y()

	switch {
	case math.Abs(lateral) > wingLateral:
		if lateral < 0 {
			return LeftWing
		}
		return RightWing
	case longitudinal < tailLongitude:
		return Tail
	case math.Abs(lateral) < cockpitLateral && vertical > cockpitVertical:
		return Cockpit
	case longitudinal > engineLongitude:
		return Engine
	default:
		return Fuselage
	}
}

// ApplyDamage localizes the hit on pose, applies armor and records threshold
// crossings. Explosive hits are multiplied and splash onto adjacent
// components; splash never spreads further.
func (m *Model) ApplyDamage(amount float64, hitWorld mgl64.Vec3, pose Pose, kind Type) Result {
	return m.ApplyToComponent(Localize(hitWorld, pose), amount, kind)
}

// ApplyToComponent applies damage to a known component
func (m *Model) ApplyToComponent(id ComponentID, amount float64, kind Type) Result {
	if id < 0 || id >= componentCount {
		id = Fuselage
	}
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}

	var res Result
	multiplier := 1.0
	if kind == Explosive {
		multiplier = ExplosiveMultiplier
	}

	var effects []Effect
	res.ComponentHit, effects = m.damageComponent(id, amount, multiplier)
	res.Effects = append(res.Effects, effects...)

	if kind == Explosive {
		splash := amount * SplashFraction
		for _, n := range splashTable[id] {
			hit, fx := m.damageComponent(n, splash, 1)
			res.Splash = append(res.Splash, hit)
			res.Effects = append(res.Effects, fx...)
		}
	}

	res.AggregateHealth = m.AggregateHealth()
	return res
}

func (m *Model) damageComponent(id ComponentID, raw, multiplier float64) (ComponentHit, []Effect) {
	c := &m.components[id]
	effective := raw * (1 - c.Armor) * multiplier

	hit := ComponentHit{Component: id, EffectiveDamage: effective}
	c.CurrentHealth = math.Max(0, math.Min(c.MaxHealth, c.CurrentHealth-effective))

	var fx []Effect
	if !c.IsCritical && c.CurrentHealth < c.CriticalThreshold {
		c.IsCritical = true
		hit.BecameCritical = true
		fx = append(fx, criticalEffects(id)...)
	}
	if !c.IsDestroyed && c.CurrentHealth <= 0 {
		c.IsDestroyed = true
		hit.BecameDestroyed = true
		fx = append(fx, destroyedEffects(id)...)
	}
	c.Effects = append(c.Effects, fx...)

	hit.Critical = c.IsCritical
	hit.Destroyed = c.IsDestroyed
	return hit, fx
}
