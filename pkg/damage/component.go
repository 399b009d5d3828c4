// pkg/damage/component.go
package damage

import "fmt"

// ComponentID names one of the six structural zones of an airframe
type ComponentID int

const (
	Engine ComponentID = iota
	LeftWing
	RightWing
	Tail
	Fuselage
	Cockpit
	componentCount
)

var componentNames = [...]string{
	Engine:    "engine",
	LeftWing:  "leftWing",
	RightWing: "rightWing",
	Tail:      "tail",
	Fuselage:  "fuselage",
	Cockpit:   "cockpit",
}

// String returns the component name
func (c ComponentID) String() string {
	if c >= 0 && c < componentCount {
		return componentNames[c]
	}
	return fmt.Sprintf("ComponentID(%d)", int(c))
}

// Components lists every component in table order
func Components() []ComponentID {
	return []ComponentID{Engine, LeftWing, RightWing, Tail, Fuselage, Cockpit}
}

// ComponentHealth tracks the state of one component. IsCritical and
// IsDestroyed only ever go from false to true; Reset clears them.
type ComponentHealth struct {
	ID                ComponentID `json:"id"`
	Name              string      `json:"name"`
	MaxHealth         float64     `json:"maxHealth"`
	CurrentHealth     float64     `json:"currentHealth"`
	Armor             float64     `json:"armor"`
	CriticalThreshold float64     `json:"criticalThreshold"`
	IsCritical        bool        `json:"isCritical"`
	IsDestroyed       bool        `json:"isDestroyed"`
	Effects           []Effect    `json:"effects,omitempty"`
}

type componentSpec struct {
	maxHealth, armor, critical float64
}

var componentTable = [componentCount]componentSpec{
	Engine:    {maxHealth: 100, armor: 0.2, critical: 30},
	LeftWing:  {maxHealth: 80, armor: 0.1, critical: 25},
	RightWing: {maxHealth: 80, armor: 0.1, critical: 25},
	Tail:      {maxHealth: 60, armor: 0.1, critical: 20},
	Fuselage:  {maxHealth: 150, armor: 0.15, critical: 40},
	Cockpit:   {maxHealth: 50, armor: 0.3, critical: 15},
}

// splashTable lists the neighbours an explosive hit on a component also damages
var splashTable = [componentCount][]ComponentID{
	Engine:    {Fuselage, Cockpit},
	LeftWing:  {Fuselage, Engine},
	RightWing: {Fuselage, Engine},
	Tail:      {Fuselage},
	Fuselage:  {Engine, LeftWing, RightWing, Tail, Cockpit},
	Cockpit:   {Fuselage, Engine},
}

func newComponent(id ComponentID) ComponentHealth {
	spec := componentTable[id]
	return ComponentHealth{
		ID:                id,
		Name:              id.String(),
		MaxHealth:         spec.maxHealth,
		CurrentHealth:     spec.maxHealth,
		Armor:             spec.armor,
		CriticalThreshold: spec.critical,
	}
}

// HealthFraction is current health over max health
func (c ComponentHealth) HealthFraction() float64 {
	if c.MaxHealth <= 0 {
		return 0
	}
	return c.CurrentHealth / c.MaxHealth
}
