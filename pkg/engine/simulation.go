// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/damage"
	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/input"
	"github.com/opd-ai/go-dogfight/pkg/logging"
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
	"github.com/opd-ai/go-dogfight/pkg/weapon"
)

// ErrUnknownAircraftID is returned for operations on an aircraft that is not
// part of the simulation
var ErrUnknownAircraftID = errors.New("unknown aircraft id")

// Simulation runs the per-tick pipeline over every aircraft, projectile and
// physics body. Exported methods are safe for concurrent use and the tick
// itself is single-threaded. Event handlers run while the simulation lock is
// held and must not call back into the Simulation.
type Simulation struct {
	Config   *config.SimConfig
	EventBus *event.Bus
	RunID    string

	mu       sync.RWMutex
	world    *ecs.World
	flight   *flightSystem
	gunnery  *gunnerySystem
	aircraft map[entity.ID]*entity.Aircraft
	controls map[entity.ID]input.Controls
	weapons  *weapon.Manager
	damage   *damage.Manager
	bodies   *physics.Engine
	logger   *logging.Logger
	metrics  *metrics
	now      time.Duration
	dt       float64
	tick     uint64
	paused   bool
}

// NewSimulation validates cfg and builds an empty simulation. A nil cfg uses
// config.DefaultConfig and a nil logger discards output.
func NewSimulation(cfg *config.SimConfig, logger *logging.Logger) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := validation.ValidateSimConfig(cfg); err != nil {
		return nil, logging.WrapError(err, "invalid simulation config")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Simulation{
		Config:   cfg,
		EventBus: event.NewEventBus(),
		RunID:    uuid.NewString(),
		world:    &ecs.World{},
		aircraft: make(map[entity.ID]*entity.Aircraft),
		controls: make(map[entity.ID]input.Controls),
		weapons:  weapon.NewManager(cfg.Weapons, cfg.Physics.Gravity, cfg.Simulation.Seed),
		damage:   damage.NewManager(),
		bodies: physics.NewEngine(physics.EngineConfig{
			FixedStep:   cfg.Physics.FixedStep,
			MaxSubSteps: cfg.Physics.MaxSubSteps,
			Gravity:     cfg.Physics.Gravity,
		}),
		logger: logger,
	}

	m, err := newMetrics(s.weapons.Pool().ActiveCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	s.metrics = m

	s.flight = &flightSystem{sim: s}
	s.gunnery = &gunnerySystem{sim: s}
	s.world.AddSystem(s.flight)
	s.world.AddSystem(&bodySystem{sim: s})
	s.world.AddSystem(s.gunnery)
	s.world.AddSystem(&ballisticsSystem{sim: s})

	return s, nil
}

// Close releases the metric callback
func (s *Simulation) Close() error {
	return s.metrics.close()
}

func unknownAircraft(id entity.ID) error {
	return fmt.Errorf("%w: %d", ErrUnknownAircraftID, id)
}

func (s *Simulation) logContext() context.Context {
	return logging.WithCorrelationID(context.Background(), s.RunID)
}

// AddAircraft spawns an aircraft of type t and arms it. Unknown types fail
// with config.ErrUnknownAircraft.
func (s *Simulation) AddAircraft(t config.AircraftType, spawn entity.Spawn) (entity.ID, error) {
	cfg, err := config.LookupAircraft(t)
	if err != nil {
		return 0, err
	}
	if err := validation.ValidateAircraftConfig(cfg); err != nil {
		return 0, logging.WrapError(err, "invalid %s config", t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	model := damage.NewModel()
	a := entity.NewAircraftWithModel(cfg, s.Config.World, spawn, model)
	id := a.GetID()

	group, err := s.weapons.AddAircraft(uint64(id), cfg)
	if err != nil {
		return 0, logging.WrapError(err, "failed to arm aircraft %d", uint64(id))
	}
	a.SetAmmunition(group.Ammunition())

	s.damage.Register(uint64(id), model)
	s.aircraft[id] = a
	s.controls[id] = input.Neutral(s.Config.World.DefaultThrottle)
	s.flight.Add(a)
	s.gunnery.Add(a)

	s.EventBus.Publish(event.NewAircraftEvent(event.AircraftSpawned, s, uint64(id), t.String(), ""))
	s.logger.Info(s.logContext(), "aircraft spawned",
		"aircraft_id", uint64(id), "aircraft", t.String(), "altitude", spawn.Position.Y())

	return id, nil
}

// RemoveAircraft takes an aircraft out of every system. Projectiles it fired
// stay in flight.
func (s *Simulation) RemoveAircraft(id entity.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.aircraft[id]
	if !ok {
		return unknownAircraft(id)
	}
	s.world.RemoveEntity(a.BasicEntity)
	s.damage.Remove(uint64(id))
	delete(s.aircraft, id)
	delete(s.controls, id)
	return nil
}

// SetControls stores the control snapshot used for id on the next tick
func (s *Simulation) SetControls(id entity.ID, ctrl input.Controls) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.aircraft[id]; !ok {
		return unknownAircraft(id)
	}
	s.controls[id] = ctrl.Sanitize()
	return nil
}

// ResetAircraft returns an aircraft to its spawn state immediately. A pending
// auto-reset is cancelled.
func (s *Simulation) ResetAircraft(id entity.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.aircraft[id]
	if !ok {
		return unknownAircraft(id)
	}
	a.Reset()
	s.onReset(a, entity.ResetManual)
	return nil
}

// AddBody registers a generic rigid body. A zero ID is replaced with a fresh
// entity id, which is returned.
func (s *Simulation) AddBody(b *physics.Body) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == 0 {
		b.ID = ecs.NewBasic().ID()
	}
	s.bodies.AddBody(b)
	return b.ID
}

// RemoveBody unregisters a rigid body
func (s *Simulation) RemoveBody(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies.RemoveBody(id)
}

// SetPaused freezes or resumes the simulation clock
func (s *Simulation) SetPaused(paused bool) {
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
}

// Paused reports whether Step is currently a no-op, either because of
// SetPaused or because any pilot is holding pause.
func (s *Simulation) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pausedLocked()
}

func (s *Simulation) pausedLocked() bool {
	if s.paused {
		return true
	}
	for _, c := range s.controls {
		if c.Pause {
			return true
		}
	}
	return false
}

// Time returns the simulation clock
func (s *Simulation) Time() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// Tick returns the number of completed ticks
func (s *Simulation) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// Step advances the simulation by frameDelta seconds, capped at
// MaxFrameDelta. It reports whether a tick ran; paused simulations and
// non-positive deltas do nothing.
func (s *Simulation) Step(frameDelta float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pausedLocked() || !(frameDelta > 0) || math.IsInf(frameDelta, 0) {
		return false
	}
	dt := math.Min(frameDelta, s.Config.Simulation.MaxFrameDelta)

	s.dt = dt
	s.now += time.Duration(math.Round(dt * float64(time.Second)))
	s.world.Update(float32(dt))
	s.tick++
	s.metrics.ticks.Add(context.Background(), 1)
	return true
}

// StepFixed advances the simulation by the configured time step
func (s *Simulation) StepFixed() bool {
	return s.Step(s.Config.Simulation.TimeStep)
}

// targets lists every aircraft and body projectiles can hit, in a stable order
func (s *Simulation) targets() []physics.Target {
	targets := make([]physics.Target, 0, len(s.flight.aircraft)+len(s.bodies.Bodies()))
	for _, a := range s.flight.aircraft {
		targets = append(targets, a)
	}
	return append(targets, s.bodies.Targets()...)
}

func (s *Simulation) onStep(a *entity.Aircraft, res entity.StepResult) {
	id := uint64(a.GetID())
	if res.Crashed {
		s.metrics.crashes.Add(context.Background(), 1, aircraftAttr(a.Type.String()))
		s.EventBus.Publish(event.NewAircraftEvent(event.AircraftCrashed, s, id, a.Type.String(), "ground"))
		s.logger.Info(s.logContext(), "aircraft crashed", "aircraft_id", id, "aircraft", a.Type.String(), "sim_time", s.now)
	}
	if res.WreckDown {
		s.logger.Debug(s.logContext(), "wreck hit the ground", "aircraft_id", id, "sim_time", s.now)
	}
	if res.Reset != entity.NoReset {
		s.onReset(a, res.Reset)
	}
	if res.SoftBoundary {
		s.logger.Debug(s.logContext(), "aircraft turned at boundary", "aircraft_id", id)
	}
}

// onReset rearms an aircraft that has just been reset
func (s *Simulation) onReset(a *entity.Aircraft, reason entity.ResetReason) {
	id := uint64(a.GetID())
	if g, ok := s.weapons.Group(id); ok {
		g.Reload()
		a.SetAmmunition(g.Ammunition())
	}
	s.EventBus.Publish(event.NewAircraftEvent(event.AircraftReset, s, id, a.Type.String(), reason.String()))
	s.logger.Info(s.logContext(), "aircraft reset", "aircraft_id", id, "reason", reason.String())
}

// applyHit routes a projectile hit to the damage model of an aircraft or to
// the momentum of a rigid body
func (s *Simulation) applyHit(h weapon.Hit) {
	s.metrics.projectileHits.Add(context.Background(), 1, weaponAttr(h.Weapon))
	s.EventBus.Publish(event.NewProjectileEvent(event.ProjectileHit, s, h.ProjectileID, h.OwnerID, h.TargetID, h.Weapon, h.Damage))

	switch target := h.Target.(type) {
	case *entity.Aircraft:
		kind := damage.Kinetic
		if h.Class.Explosive() {
			kind = damage.Explosive
		}
		wasDestroyed := target.Destroyed()
		res := target.ApplyDamage(h.Damage, h.Point, kind)

		s.publishComponent(target, res.ComponentHit)
		for _, splash := range res.Splash {
			s.publishComponent(target, splash)
		}
		if !wasDestroyed && target.Destroyed() {
			id := uint64(target.GetID())
			s.EventBus.Publish(event.NewAircraftEvent(event.AircraftDestroyed, s, id, target.Type.String(), "damage"))
			s.logger.Info(s.logContext(), "aircraft destroyed", "aircraft_id", id, "by", h.OwnerID, "weapon", h.Weapon)
		}
	case *physics.Body:
		dir := physics.SafeNormalize(h.Velocity, mgl64.Vec3{})
		if !s.bodies.ApplyImpulse(target.ID, dir.Mul(h.Damage*s.Config.Weapons.ImpulsePerDamage)) {
			s.logger.Debug(s.logContext(), "hit on static body", "body_id", target.ID, "weapon", h.Weapon)
		}
	}
}

func (s *Simulation) publishComponent(a *entity.Aircraft, hit damage.ComponentHit) {
	if !hit.BecameCritical && !hit.BecameDestroyed {
		return
	}
	id := uint64(a.GetID())
	health := 0.0
	if model, ok := s.damage.Get(id); ok {
		health = model.Component(hit.Component).CurrentHealth
	}
	if hit.BecameCritical {
		s.EventBus.Publish(event.NewComponentEvent(event.ComponentCritical, s, id, hit.Component.String(), health))
		s.logger.Debug(s.logContext(), "component critical", "aircraft_id", id, "component", hit.Component.String())
	}
	if hit.BecameDestroyed {
		s.EventBus.Publish(event.NewComponentEvent(event.ComponentDestroyed, s, id, hit.Component.String(), health))
		s.logger.Info(s.logContext(), "component destroyed", "aircraft_id", id, "component", hit.Component.String())
	}
}
