package damage

// EffectKind classifies what a damage effect does to the aircraft
type EffectKind int

const (
	// ThrustLimit caps engine thrust to Value of maximum.
	ThrustLimit EffectKind = iota
	// ControlDamage reduces authority on Axis by Value. Direction biases roll.
	ControlDamage
	// FuelLeak multiplies fuel burn by Value.
	FuelLeak
	// Fire sets the aircraft burning.
	Fire
	// Spin forces an uncontrollable spin toward Direction.
	Spin
	// Destroyed marks the aircraft as destroyed.
	Destroyed
)

func (k EffectKind) String() string {
	switch k {
	case ThrustLimit:
		return "thrustLimit"
	case ControlDamage:
		return "controlDamage"
	case FuelLeak:
		return "fuelLeak"
	case Fire:
		return "fire"
	case Spin:
		return "spin"
	case Destroyed:
		return "destroyed"
	}
	return "unknown"
}

// Axis is a control axis
type Axis int

const (
	AxisPitch Axis = iota
	AxisRoll
	AxisYaw
)

// Effect is a change the aircraft must apply after a hit. The model never
// touches the aircraft directly; the caller applies the effect list.
type Effect struct {
	Kind      EffectKind  `json:"kind"`
	Component ComponentID `json:"component"`
	Axis      Axis        `json:"axis,omitempty"`
	Value     float64     `json:"value,omitempty"`
	Direction float64     `json:"direction,omitempty"`
}

// Effect magnitudes
const (
	EngineCriticalThrust = 0.5
	WingCriticalRoll     = 0.3
	TailCriticalControl  = 0.4
	CockpitCriticalAll   = 0.5
	FuselageLeakFactor   = 2.0
)

// wingSide is -1 for the left wing and +1 for the right
func wingSide(c ComponentID) float64 {
	if c == LeftWing {
		return -1
	}
	return 1
}

func criticalEffects(c ComponentID) []Effect {
	switch c {
	case Engine:
		return []Effect{{Kind: ThrustLimit, Component: c, Value: EngineCriticalThrust}}
	case LeftWing, RightWing:
		return []Effect{{Kind: ControlDamage, Component: c, Axis: AxisRoll, Value: WingCriticalRoll, Direction: wingSide(c)}}
	case Tail:
		return []Effect{
			{Kind: ControlDamage, Component: c, Axis: AxisPitch, Value: TailCriticalControl},
			{Kind: ControlDamage, Component: c, Axis: AxisYaw, Value: TailCriticalControl},
		}
	case Fuselage:
		return []Effect{{Kind: FuelLeak, Component: c, Value: FuselageLeakFactor}}
	case Cockpit:
		return []Effect{
			{Kind: ControlDamage, Component: c, Axis: AxisPitch, Value: CockpitCriticalAll},
			{Kind: ControlDamage, Component: c, Axis: AxisRoll, Value: CockpitCriticalAll},
			{Kind: ControlDamage, Component: c, Axis: AxisYaw, Value: CockpitCriticalAll},
		}
	}
	return nil
}

func destroyedEffects(c ComponentID) []Effect {
	switch c {
	case Engine:
		return []Effect{
			{Kind: ThrustLimit, Component: c, Value: 0},
			{Kind: Fire, Component: c},
		}
	case LeftWing, RightWing:
		return []Effect{{Kind: Spin, Component: c, Direction: wingSide(c)}}
	case Tail:
		return []Effect{
			{Kind: ControlDamage, Component: c, Axis: AxisPitch, Value: 1},
			{Kind: ControlDamage, Component: c, Axis: AxisYaw, Value: 1},
		}
	case Cockpit:
		return []Effect{{Kind: Destroyed, Component: c}}
	}
	return nil
}
