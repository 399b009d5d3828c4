// Package autopilot flies aircraft from simulation snapshots. It produces
// the same control snapshot a human pilot would.
package autopilot

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/engine"
	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/input"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// ErrUnknownBehavior is returned by ParseBehavior
var ErrUnknownBehavior = errors.New("unknown autopilot behavior")

// Behavior defines different autopilot behaviors
type Behavior int

const (
	BehaviorExplorer  Behavior = iota // Wanders around home
	BehaviorAggressor                 // Seeks and attacks the nearest aircraft
	BehaviorDefender                  // Patrols home and attacks intruders
)

var behaviorNames = []string{"explorer", "aggressor", "defender"}

func (b Behavior) String() string {
	if b >= 0 && int(b) < len(behaviorNames) {
		return behaviorNames[b]
	}
	return fmt.Sprintf("Behavior(%d)", int(b))
}

// ParseBehavior resolves a behavior name
func ParseBehavior(name string) (Behavior, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range behaviorNames {
		if n == key {
			return Behavior(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBehavior, name)
}

// Steering gains and limits
const (
	headingGain   = 1.5
	pitchGain     = 2.0
	rollGain      = 2.0
	climbGain     = 0.01 // rad of pitch per metre of altitude error
	maxClimbAngle = 0.35
	turnChance    = 0.01 // per call, explorer picks a new heading
)

// Pilot flies one aircraft
type Pilot struct {
	ID       entity.ID
	Behavior Behavior
	Home     mgl64.Vec3

	Throttle       float64
	CruiseAltitude float64
	FireRange      float64
	FireCone       float64 // rad off the nose
	PatrolRadius   float64 // leash around Home
	DefendRadius   float64 // defender engages targets this close to Home

	random        *rand.Rand
	wanderHeading float64
}

// NewPilot creates a pilot for aircraft id. seed makes the explorer's
// wandering reproducible.
func NewPilot(id entity.ID, behavior Behavior, home mgl64.Vec3, seed uint64) *Pilot {
	return &Pilot{
		ID:             id,
		Behavior:       behavior,
		Home:           home,
		Throttle:       0.8,
		CruiseAltitude: math.Max(home.Y(), 500),
		FireRange:      600,
		FireCone:       0.08,
		PatrolRadius:   2500,
		DefendRadius:   1500,
		random:         rand.New(rand.NewPCG(seed, uint64(id))),
	}
}

// Controls decides the controls for the pilot's aircraft. An aircraft that
// is missing, crashed or destroyed gets neutral controls.
func (p *Pilot) Controls(state engine.State) input.Controls {
	self, ok := state.Aircraft[p.ID]
	if !ok || self.Status != entity.Flying || self.Damage.Destroyed {
		return input.Neutral(p.Throttle)
	}

	switch p.Behavior {
	case BehaviorAggressor:
		if target, ok := p.nearestEnemy(self, state, math.Inf(1)); ok {
			return p.attack(self, target)
		}
		return p.explore(self)
	case BehaviorDefender:
		if target, ok := p.nearestEnemy(self, state, p.DefendRadius); ok {
			return p.attack(self, target)
		}
		return p.patrol(self)
	default:
		return p.explore(self)
	}
}

// explore holds altitude and occasionally picks a new heading
func (p *Pilot) explore(self engine.AircraftView) input.Controls {
	if p.outsideLeash(self) {
		return p.steerTo(self, p.homePoint())
	}
	if p.random.Float64() < turnChance {
		p.wanderHeading = (p.random.Float64()*2 - 1) * math.Pi
	}
	return p.steerHeading(self, p.wanderHeading, p.CruiseAltitude)
}

// patrol returns home when outside the leash and otherwise circles gently
func (p *Pilot) patrol(self engine.AircraftView) input.Controls {
	if p.outsideLeash(self) {
		return p.steerTo(self, p.homePoint())
	}
	return p.steerHeading(self, self.State.Heading+0.3, p.CruiseAltitude)
}

// attack points the nose at target and fires once it is inside the cone
func (p *Pilot) attack(self, target engine.AircraftView) input.Controls {
	ctrl := p.steerTo(self, target.State.Position)

	toTarget := target.State.Position.Sub(self.State.Position)
	distance := toTarget.Len()
	forward := physics.ToWorld(self.State.Orientation, physics.Forward)
	offNose := math.Acos(mgl64.Clamp(forward.Dot(physics.SafeNormalize(toTarget, forward)), -1, 1))

	ctrl.Fire = distance < p.FireRange && offNose < p.FireCone && self.State.Ammunition > 0
	ctrl.Throttle = 1
	return ctrl
}

func (p *Pilot) nearestEnemy(self engine.AircraftView, state engine.State, radius float64) (engine.AircraftView, bool) {
	var nearest engine.AircraftView
	nearestDistance := math.Inf(1)

	for id, other := range state.Aircraft {
		if id == p.ID || other.Status != entity.Flying || other.Damage.Destroyed {
			continue
		}
		if other.State.Position.Sub(p.Home).Len() > radius {
			continue
		}
		distance := other.State.Position.Sub(self.State.Position).Len()
		if distance < nearestDistance || (distance == nearestDistance && id < nearest.ID) {
			nearest = other
			nearestDistance = distance
		}
	}
	return nearest, !math.IsInf(nearestDistance, 1)
}

func (p *Pilot) outsideLeash(self engine.AircraftView) bool {
	return physics.HorizontalDistance(self.State.Position, p.Home) > p.PatrolRadius
}

func (p *Pilot) homePoint() mgl64.Vec3 {
	return mgl64.Vec3{p.Home.X(), p.CruiseAltitude, p.Home.Z()}
}

// steerTo turns toward a world point, climbing or diving to meet it
func (p *Pilot) steerTo(self engine.AircraftView, point mgl64.Vec3) input.Controls {
	d := point.Sub(self.State.Position)
	heading := math.Atan2(-d.X(), -d.Z())
	return p.steerHeading(self, heading, point.Y())
}

// steerHeading yaws toward heading, levels the wings and pitches toward the
// climb angle that closes the altitude error. Positive heading error means
// the target is to the left, which needs negative (left) yaw input.
func (p *Pilot) steerHeading(self engine.AircraftView, heading, altitude float64) input.Controls {
	s := self.State
	headingError := physics.WrapAngle(heading - s.Heading)
	climb := mgl64.Clamp((altitude-s.Altitude)*climbGain, -maxClimbAngle, maxClimbAngle)

	return input.Controls{
		Yaw:      clampUnit(-headingError * headingGain),
		Pitch:    clampUnit((climb - s.Rotation.Pitch) * pitchGain),
		Roll:     clampUnit(s.Rotation.Roll * rollGain),
		Throttle: p.Throttle,
	}
}

func clampUnit(v float64) float64 {
	return mgl64.Clamp(v, -1, 1)
}
