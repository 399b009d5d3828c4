// pkg/weapon/manager.go
package weapon

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// broadphaseCapacity is the quadtree node capacity used for targets
const broadphaseCapacity = 4

// Hit is a resolved projectile impact. The projectile has already been
// returned to the pool, so the hit carries copies of what callers need.
type Hit struct {
	ProjectileID uint64
	OwnerID      uint64
	Target       physics.Target
	TargetID     uint64
	Point        mgl64.Vec3
	Normal       mgl64.Vec3
	Velocity     mgl64.Vec3
	Damage       float64
	Class        config.WeaponClass
	Weapon       string
}

// Manager owns the shared projectile pool and the weapon group of every
// aircraft. It does not own aircraft.
type Manager struct {
	pool        *Pool
	groups      map[uint64]*Group
	rng         *rand.Rand
	convergence float64
	gravity     float64
	broadphase  *physics.QuadTree
}

// NewManager creates a manager with a pool sized from cfg. seed drives the
// spread sampling so runs are reproducible.
func NewManager(cfg config.WeaponsConfig, gravity float64, seed uint64) *Manager {
	return &Manager{
		pool:        NewPool(cfg.PoolCapacity),
		groups:      make(map[uint64]*Group),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		convergence: cfg.ConvergenceDistance,
		gravity:     gravity,
	}
}

// Pool returns the shared projectile pool
func (m *Manager) Pool() *Pool {
	return m.pool
}

// AddAircraft builds the loadout for owner
func (m *Manager) AddAircraft(owner uint64, cfg config.AircraftConfig) (*Group, error) {
	g, err := NewGroup(owner, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to arm %s: %w", cfg.Type, err)
	}
	m.groups[owner] = g
	return g, nil
}

// RemoveAircraft drops owner's group. Its projectiles stay in flight.
func (m *Manager) RemoveAircraft(owner uint64) {
	delete(m.groups, owner)
}

// Group returns owner's weapon group
func (m *Manager) Group(owner uint64) (*Group, bool) {
	g, ok := m.groups[owner]
	return g, ok
}

// SetFiring sets owner's trigger
func (m *Manager) SetFiring(owner uint64, firing bool) bool {
	g, ok := m.groups[owner]
	if ok {
		g.SetFiring(firing)
	}
	return ok
}

// Fire fires every ready mount of owner and returns the projectiles created.
// When the pool runs dry the remaining mounts hold their rounds.
func (m *Manager) Fire(owner uint64, now time.Duration, aim Aim) []*Projectile {
	g, ok := m.groups[owner]
	if !ok {
		return nil
	}
	aim.OwnerID = owner
	if aim.Convergence == 0 {
		aim.Convergence = m.convergence
	}

	var fired []*Projectile
	for _, w := range g.Weapons {
		if !w.CanFire(now) {
			continue
		}
		proj, ok := m.pool.Acquire()
		if !ok {
			break
		}
		spawn, ok := w.Fire(now, aim, m.rng)
		if !ok {
			m.pool.Release(proj)
			continue
		}
		proj.Init(spawn)
		fired = append(fired, proj)
	}
	return fired
}

// Update advances every active projectile by dt and resolves hits against
// targets. A projectile never hits its owner and is released on its first
// hit or once it exceeds its range.
func (m *Manager) Update(dt float64, targets []physics.Target) []Hit {
	m.buildBroadphase(targets)
	margin := maxRadius(targets)

	var hits []Hit
	m.pool.ForEachActive(func(p *Projectile) {
		p.Update(dt, m.gravity)

		if hit, ok := m.resolve(p, margin); ok {
			hits = append(hits, hit)
			m.pool.Release(p)
			return
		}
		if p.Expired() {
			m.pool.Release(p)
		}
	})
	return hits
}

func (m *Manager) resolve(p *Projectile, margin float64) (Hit, bool) {
	if m.broadphase == nil {
		return Hit{}, false
	}
	ray, length := p.Segment()
	if length < physics.Epsilon {
		return Hit{}, false
	}

	var best Hit
	bestDist := math.Inf(1)
	for _, obj := range m.broadphase.Query(physics.RectAround(p.PrevPosition, p.Position, margin)) {
		target := obj.(physics.Target)
		if target.TargetID() == p.OwnerID {
			continue
		}
		rh, ok := target.Raycast(ray, length)
		if !ok {
			continue
		}
		if rh.Distance < bestDist {
			bestDist = rh.Distance
			best = Hit{
				ProjectileID: p.ID,
				OwnerID:      p.OwnerID,
				Target:       target,
				TargetID:     target.TargetID(),
				Point:        rh.Point,
				Normal:       rh.Normal,
				Velocity:     p.Velocity,
				Damage:       p.Damage,
				Class:        p.Class,
				Weapon:       p.Weapon,
			}
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// buildBroadphase indexes target centres on the XZ plane
func (m *Manager) buildBroadphase(targets []physics.Target) {
	if len(targets) == 0 {
		m.broadphase = nil
		return
	}
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, t := range targets {
		c := t.Bounds().Center
		minX, maxX = math.Min(minX, c.X()), math.Max(maxX, c.X())
		minZ, maxZ = math.Min(minZ, c.Z()), math.Max(maxZ, c.Z())
	}
	bounds := physics.RectAround(mgl64.Vec3{minX, 0, minZ}, mgl64.Vec3{maxX, 0, maxZ}, 1)

	m.broadphase = physics.NewQuadTree(bounds, broadphaseCapacity)
	for _, t := range targets {
		m.broadphase.Insert(t.Bounds().Center, t)
	}
}

func maxRadius(targets []physics.Target) float64 {
	r := 0.0
	for _, t := range targets {
		r = math.Max(r, t.Bounds().Radius)
	}
	return r
}

// ActiveProjectiles returns copies of every projectile in flight
func (m *Manager) ActiveProjectiles() []Projectile {
	var out []Projectile
	m.pool.ForEachActive(func(p *Projectile) {
		out = append(out, *p)
	})
	return out
}

// ReloadAll refills every group
func (m *Manager) ReloadAll() {
	for _, g := range m.groups {
		g.Reload()
	}
}
