// pkg/engine/state.go
package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/damage"
	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/flight"
	"github.com/opd-ai/go-dogfight/pkg/weapon"
)

// State represents a snapshot of the simulation. It shares no memory with
// the live simulation.
type State struct {
	RunID       string
	Tick        uint64
	Time        time.Duration
	Paused      bool
	Aircraft    map[entity.ID]AircraftView
	Projectiles []ProjectileView
	Bodies      []BodyView
}

// AircraftView represents a snapshot of one aircraft for presentation
type AircraftView struct {
	ID           entity.ID
	Type         string
	Name         string
	Status       entity.Status
	State        entity.AircraftState
	Engine       flight.EngineState
	Stall        flight.Stall
	MaxThrust    float64
	Damage       entity.DamageState
	Components   []damage.ComponentHealth
	Weapons      []weapon.MountStatus
	ResetPending bool
	ResetAt      time.Duration
}

// ProjectileView represents a snapshot of a projectile in flight
type ProjectileView struct {
	ID       uint64
	OwnerID  uint64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Weapon   string
	Tracer   bool
}

// BodyView represents a snapshot of a rigid body
type BodyView struct {
	ID       uint64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool
}

// Snapshot returns a copy of the current simulation state
func (s *Simulation) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		RunID:       s.RunID,
		Tick:        s.tick,
		Time:        s.now,
		Paused:      s.pausedLocked(),
		Aircraft:    s.aircraftViews(),
		Projectiles: s.projectileViews(),
		Bodies:      s.bodyViews(),
	}
}

// Aircraft returns the snapshot of a single aircraft
func (s *Simulation) Aircraft(id entity.ID) (AircraftView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.aircraft[id]
	if !ok {
		return AircraftView{}, unknownAircraft(id)
	}
	return s.aircraftView(a), nil
}

func (s *Simulation) aircraftViews() map[entity.ID]AircraftView {
	views := make(map[entity.ID]AircraftView, len(s.aircraft))
	for id, a := range s.aircraft {
		views[id] = s.aircraftView(a)
	}
	return views
}

func (s *Simulation) aircraftView(a *entity.Aircraft) AircraftView {
	id := a.GetID()
	view := AircraftView{
		ID:        id,
		Type:      a.Type.String(),
		Name:      a.Config.Name,
		Status:    a.Status(),
		State:     a.State(),
		Engine:    a.Engine(),
		Stall:     a.Forces().Stall,
		MaxThrust: a.EffectiveMaxThrust(),
		Damage:    a.DamageState(),
	}
	if model, ok := s.damage.Get(uint64(id)); ok {
		view.Components = model.Components()
	}
	if g, ok := s.weapons.Group(uint64(id)); ok {
		view.Weapons = g.Status()
	}
	view.ResetAt, view.ResetPending = a.PendingReset()
	return view
}

func (s *Simulation) projectileViews() []ProjectileView {
	active := s.weapons.ActiveProjectiles()
	views := make([]ProjectileView, len(active))
	for i, p := range active {
		views[i] = ProjectileView{
			ID:       p.ID,
			OwnerID:  p.OwnerID,
			Position: p.Position,
			Velocity: p.Velocity,
			Weapon:   p.Weapon,
			Tracer:   p.Tracer,
		}
	}
	return views
}

func (s *Simulation) bodyViews() []BodyView {
	bodies := s.bodies.Bodies()
	views := make([]BodyView, len(bodies))
	for i, b := range bodies {
		views[i] = BodyView{
			ID:       b.ID,
			Position: b.Position,
			Velocity: b.Velocity,
			Grounded: b.Grounded,
		}
	}
	return views
}
