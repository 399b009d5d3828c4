// pkg/weapon/projectile.go
package weapon

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// Projectile is a pooled ballistic round. Instances are reused via Init and
// never reallocated.
type Projectile struct {
	ID           uint64
	Position     mgl64.Vec3
	PrevPosition mgl64.Vec3
	Velocity     mgl64.Vec3
	OwnerID      uint64
	Damage       float64
	MaxRange     float64
	Traveled     float64
	Active       bool
	Class        config.WeaponClass
	Tracer       bool
	Weapon       string

	index   int
	expired bool
}

// Init activates the projectile from a spawn descriptor
func (p *Projectile) Init(s Spawn) {
	p.Position = s.Position
	p.PrevPosition = s.Position
	p.Velocity = s.Velocity
	p.OwnerID = s.OwnerID
	p.Damage = s.Damage
	p.MaxRange = s.MaxRange
	p.Traveled = 0
	p.Active = true
	p.Class = s.Class
	p.Tracer = s.Tracer
	p.Weapon = s.Weapon
	p.expired = false
}

// Update moves the projectile. Ballistic classes accelerate downward by
// gravity. It returns false once the projectile has flown past its range.
func (p *Projectile) Update(dt, gravity float64) bool {
	if !p.Active {
		return false
	}
	p.PrevPosition = p.Position
	if p.Class.Ballistic() {
		p.Velocity[1] -= gravity * dt
	}
	step := p.Velocity.Mul(dt)
	p.Position = p.Position.Add(step)
	p.Traveled += step.Len()
	if p.MaxRange > 0 && p.Traveled > p.MaxRange {
		p.expired = true
	}
	return !p.expired
}

// Expired reports whether the projectile exceeded its range on the last Update
func (p *Projectile) Expired() bool {
	return p.expired
}

// Segment returns the ray swept during the last Update and its length
func (p *Projectile) Segment() (physics.Ray, float64) {
	return physics.NewSegmentRay(p.PrevPosition, p.Position)
}

// Direction is the unit velocity, or forward for a stationary round
func (p *Projectile) Direction() mgl64.Vec3 {
	return physics.SafeNormalize(p.Velocity, physics.Forward)
}
