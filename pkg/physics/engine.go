package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ShapeKind selects the collision shape of a Body
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

const (
	// restingSpeed is the bounce speed below which a body settles on the ground.
	restingSpeed = 0.5
	// accumulatorSlack absorbs float drift when frame time is an exact multiple of the step.
	accumulatorSlack = 1e-9
)

// Body is a generic rigid body for non-aircraft objects (crates, balloons,
// ground targets). A zero Mass makes the body static.
type Body struct {
	ID            uint64
	Position      mgl64.Vec3
	Velocity      mgl64.Vec3
	Mass          float64
	Shape         ShapeKind
	Radius        float64    // ShapeSphere
	HalfExtents   mgl64.Vec3 // ShapeBox
	GravityScale  float64
	LinearDamping float64
	Restitution   float64
	Grounded      bool
}

// IsStatic reports whether the body ignores forces and impulses
func (b *Body) IsStatic() bool {
	return b.Mass <= 0
}

// ApplyImpulse changes the body's velocity by impulse/mass
func (b *Body) ApplyImpulse(impulse mgl64.Vec3) {
	if b.IsStatic() {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Mul(1 / b.Mass))
	b.Grounded = false
}

// TargetID implements Target
func (b *Body) TargetID() uint64 {
	return b.ID
}

// Bounds implements Target
func (b *Body) Bounds() Sphere {
	if b.Shape == ShapeBox {
		return b.box().BoundingSphere()
	}
	return Sphere{Center: b.Position, Radius: b.Radius}
}

// Raycast implements Target
func (b *Body) Raycast(r Ray, maxDist float64) (RayHit, bool) {
	if b.Shape == ShapeBox {
		return RayAABB(r, b.box(), maxDist)
	}
	return RaySphere(r, Sphere{Center: b.Position, Radius: b.Radius}, maxDist)
}

func (b *Body) box() AABB {
	return AABB{Center: b.Position, HalfExtents: b.HalfExtents}
}

func (b *Body) halfHeight() float64 {
	if b.Shape == ShapeBox {
		return b.HalfExtents.Y()
	}
	return b.Radius
}

// EngineConfig tunes the fixed-step integrator
type EngineConfig struct {
	FixedStep   float64
	MaxSubSteps int
	Gravity     float64
}

// DefaultEngineConfig returns 120 Hz stepping with at most 8 sub-steps per frame
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		FixedStep:   1.0 / 120.0,
		MaxSubSteps: 8,
		Gravity:     9.81,
	}
}

// BodyHit pairs a raycast hit with the body it struck
type BodyHit struct {
	Body *Body
	Hit  RayHit
}

// Engine integrates Bodies with a fixed timestep. Frame time is collected in
// an accumulator and consumed in whole steps so that results do not depend
// on frame-rate jitter.
type Engine struct {
	config      EngineConfig
	bodies      []*Body
	accumulator float64
	stepCount   uint64
}

// NewEngine creates an engine. Non-positive settings fall back to defaults.
func NewEngine(config EngineConfig) *Engine {
	defaults := DefaultEngineConfig()
	if config.FixedStep <= 0 {
		config.FixedStep = defaults.FixedStep
	}
	if config.MaxSubSteps <= 0 {
		config.MaxSubSteps = defaults.MaxSubSteps
	}
	return &Engine{config: config}
}

// AddBody registers a body. Bodies are stepped in insertion order.
func (e *Engine) AddBody(b *Body) {
	e.bodies = append(e.bodies, b)
}

// RemoveBody unregisters the body with the given id
func (e *Engine) RemoveBody(id uint64) bool {
	for i, b := range e.bodies {
		if b.ID == id {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Body looks up a body by id
func (e *Engine) Body(id uint64) (*Body, bool) {
	for _, b := range e.bodies {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Bodies returns the registered bodies
func (e *Engine) Bodies() []*Body {
	return e.bodies
}

// Targets returns the bodies as projectile targets
func (e *Engine) Targets() []Target {
	targets := make([]Target, len(e.bodies))
	for i, b := range e.bodies {
		targets[i] = b
	}
	return targets
}

// StepCount returns the number of fixed steps run so far
func (e *Engine) StepCount() uint64 {
	return e.stepCount
}

// Alpha returns how far the accumulator is into the next step, in [0,1)
func (e *Engine) Alpha() float64 {
	return e.accumulator / e.config.FixedStep
}

// Step adds frameDelta to the accumulator and runs as many fixed steps as it
// covers, up to MaxSubSteps. Time beyond the sub-step budget is dropped.
// It returns the number of steps run.
func (e *Engine) Step(frameDelta float64) int {
	if frameDelta <= 0 || math.IsNaN(frameDelta) {
		return 0
	}

	e.accumulator += frameDelta
	budget := float64(e.config.MaxSubSteps) * e.config.FixedStep
	if e.accumulator > budget {
		e.accumulator = budget
	}

	steps := 0
	for steps < e.config.MaxSubSteps && e.accumulator >= e.config.FixedStep-accumulatorSlack {
		e.integrate(e.config.FixedStep)
		e.accumulator -= e.config.FixedStep
		steps++
	}
	if e.accumulator < 0 {
		e.accumulator = 0
	}
	e.stepCount += uint64(steps)
	return steps
}

func (e *Engine) integrate(dt float64) {
	gravity := mgl64.Vec3{0, -e.config.Gravity, 0}

	for _, b := range e.bodies {
		if b.IsStatic() {
			continue
		}

		if !b.Grounded {
			b.Velocity = b.Velocity.Add(gravity.Mul(b.GravityScale * dt))
		}
		if b.LinearDamping > 0 {
			b.Velocity = b.Velocity.Mul(1 / (1 + b.LinearDamping*dt))
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))

		e.resolveGround(b)
	}
}

func (e *Engine) resolveGround(b *Body) {
	half := b.halfHeight()
	if b.Position.Y()-half > 0 {
		b.Grounded = false
		return
	}

	b.Position[1] = half
	if b.Velocity.Y() < 0 {
		b.Velocity[1] = -b.Velocity.Y() * b.Restitution
	}
	if b.Velocity.Y() < restingSpeed {
		b.Velocity[1] = 0
		b.Grounded = true
	}
}

// Raycast returns the nearest body hit by r within maxDist
func (e *Engine) Raycast(r Ray, maxDist float64) (BodyHit, bool) {
	var best BodyHit
	found := false
	for _, b := range e.bodies {
		hit, ok := b.Raycast(r, maxDist)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Hit.Distance {
			best = BodyHit{Body: b, Hit: hit}
			found = true
		}
	}
	return best, found
}

// ApplyImpulse applies impulse to the body with the given id
func (e *Engine) ApplyImpulse(id uint64, impulse mgl64.Vec3) bool {
	b, ok := e.Body(id)
	if !ok || b.IsStatic() {
		return false
	}
	b.ApplyImpulse(impulse)
	return true
}
