// pkg/engine/systems.go
package engine

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/weapon"
)

// System priorities. The ecs world runs higher priorities first, which fixes
// the tick order: flight, bodies, gunnery, ballistics.
const (
	priorityFlight     = 40
	priorityBodies     = 30
	priorityGunnery    = 20
	priorityBallistics = 10
)

// The systems read the tick's float64 dt from the simulation rather than the
// float32 the ecs world passes in.

func removeAircraft(list []*entity.Aircraft, basic ecs.BasicEntity) []*entity.Aircraft {
	for i, a := range list {
		if a.ID() == basic.ID() {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// flightSystem runs force computation and integration for every aircraft
type flightSystem struct {
	sim      *Simulation
	aircraft []*entity.Aircraft
}

func (fs *flightSystem) Add(a *entity.Aircraft) {
	fs.aircraft = append(fs.aircraft, a)
}

func (fs *flightSystem) Remove(basic ecs.BasicEntity) {
	fs.aircraft = removeAircraft(fs.aircraft, basic)
}

func (fs *flightSystem) Priority() int { return priorityFlight }

func (fs *flightSystem) Update(float32) {
	s := fs.sim
	for _, a := range fs.aircraft {
		res := a.Update(s.controls[a.GetID()], s.now, s.dt)
		s.onStep(a, res)
	}
}

// bodySystem steps the fixed-timestep rigid-body engine
type bodySystem struct {
	sim *Simulation
}

func (bs *bodySystem) Remove(ecs.BasicEntity) {}

func (bs *bodySystem) Priority() int { return priorityBodies }

func (bs *bodySystem) Update(float32) {
	bs.sim.bodies.Step(bs.sim.dt)
}

// gunnerySystem turns the fire control into projectiles
type gunnerySystem struct {
	sim      *Simulation
	aircraft []*entity.Aircraft
}

func (gs *gunnerySystem) Add(a *entity.Aircraft) {
	gs.aircraft = append(gs.aircraft, a)
}

func (gs *gunnerySystem) Remove(basic ecs.BasicEntity) {
	gs.aircraft = removeAircraft(gs.aircraft, basic)
	gs.sim.weapons.RemoveAircraft(basic.ID())
}

func (gs *gunnerySystem) Priority() int { return priorityGunnery }

func (gs *gunnerySystem) Update(float32) {
	s := gs.sim
	for _, a := range gs.aircraft {
		id := uint64(a.GetID())
		firing := s.controls[a.GetID()].Fire && a.Status() == entity.Flying && !a.Destroyed()
		s.weapons.SetFiring(id, firing)
		if !firing {
			continue
		}

		fired := s.weapons.Fire(id, s.now, weapon.Aim{
			Position:    a.Position(),
			Orientation: a.Orientation(),
		})
		if len(fired) == 0 {
			continue
		}
		if g, ok := s.weapons.Group(id); ok {
			a.SetAmmunition(g.Ammunition())
		}
		for _, p := range fired {
			s.metrics.projectilesFired.Add(context.Background(), 1, weaponAttr(p.Weapon))
			s.EventBus.Publish(event.NewProjectileEvent(event.ProjectileFired, s, p.ID, id, 0, p.Weapon, p.Damage))
		}
	}
}

// ballisticsSystem advances projectiles and applies their hits
type ballisticsSystem struct {
	sim *Simulation
}

func (bs *ballisticsSystem) Remove(ecs.BasicEntity) {}

func (bs *ballisticsSystem) Priority() int { return priorityBallistics }

func (bs *ballisticsSystem) Update(float32) {
	s := bs.sim
	for _, h := range s.weapons.Update(s.dt, s.targets()) {
		s.applyHit(h)
	}
}
