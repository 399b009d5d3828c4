// pkg/weapon/weapon.go
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

// ConvergenceBlend is how far a mount's aim is pulled toward the convergence point
const ConvergenceBlend = 0.5

// fireIntervalSlack absorbs nanosecond rounding when a fire interval is a
// whole number of ticks, e.g. four 60 Hz ticks against a 15 rps gun.
const fireIntervalSlack = time.Microsecond

// Spawn describes a projectile to create. Weapons produce spawns; the manager
// turns them into pooled projectiles.
type Spawn struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Damage   float64
	OwnerID  uint64
	MaxRange float64
	Tracer   bool
	Class    config.WeaponClass
	Weapon   string
}

// Aim is the shooter's transform at the moment of firing
type Aim struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	OwnerID     uint64
	// Convergence is the distance ahead of the nose where mounts aim. Zero
	// disables harmonization.
	Convergence float64
}

// Weapon is one mounted gun or launcher
type Weapon struct {
	Stats        config.WeaponStats
	Mount        config.MountConfig
	CurrentAmmo  int
	LastFireTime time.Duration
	RoundsFired  int
	IsFiring     bool
	hasFired     bool
}

// New creates a weapon for a mount, failing on unknown weapon names
func New(mount config.MountConfig) (*Weapon, error) {
	stats, err := config.LookupWeapon(mount.Weapon)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", mount.Name, err)
	}
	return &Weapon{
		Stats:       stats,
		Mount:       mount,
		CurrentAmmo: stats.Ammunition,
	}, nil
}

// CanFire reports whether the weapon has ammunition, is triggered and has
// cooled down since the last round.
func (w *Weapon) CanFire(now time.Duration) bool {
	if w.CurrentAmmo <= 0 || !w.IsFiring {
		return false
	}
	if !w.hasFired {
		return true
	}
	return now-w.LastFireTime >= w.Stats.FireInterval()-fireIntervalSlack
}

// Fire releases one round if CanFire allows it. The direction is the mount
// direction, pulled toward the convergence point and jittered uniformly
// inside the spread cone.
func (w *Weapon) Fire(now time.Duration, aim Aim, rng *rand.Rand) (Spawn, bool) {
	if !w.CanFire(now) {
		return Spawn{}, false
	}
	w.CurrentAmmo--
	w.LastFireTime = now
	w.hasFired = true
	w.RoundsFired++

	q := aim.Orientation
	muzzle := aim.Position.Add(physics.ToWorld(q, w.Mount.Position))
	dir := physics.ToWorld(q, physics.SafeNormalize(w.Mount.Direction, physics.Forward))

	if aim.Convergence > 0 {
		point := aim.Position.Add(physics.ToWorld(q, physics.Forward).Mul(aim.Convergence))
		toPoint := physics.SafeNormalize(point.Sub(muzzle), dir)
		dir = physics.SafeNormalize(dir.Mul(1-ConvergenceBlend).Add(toPoint.Mul(ConvergenceBlend)), dir)
	}
	if rng != nil {
		dir = spreadCone(dir, w.Stats.Spread, rng)
	}

	interval := w.Stats.TracerInterval
	return Spawn{
		Position: muzzle,
		Velocity: dir.Mul(w.Stats.MuzzleVelocity),
		Damage:   w.Stats.Damage,
		OwnerID:  aim.OwnerID,
		MaxRange: w.Stats.Range,
		Tracer:   interval > 0 && w.RoundsFired%interval == 0,
		Class:    w.Stats.Class,
		Weapon:   w.Stats.Name,
	}, true
}

// Reload refills the magazine and clears the fire timer
func (w *Weapon) Reload() {
	w.CurrentAmmo = w.Stats.Ammunition
	w.RoundsFired = 0
	w.hasFired = false
	w.LastFireTime = 0
}

// spreadCone returns a unit vector uniformly distributed over the spherical
// cap of half-angle spread around dir.
func spreadCone(dir mgl64.Vec3, spread float64, rng *rand.Rand) mgl64.Vec3 {
	if spread <= 0 {
		return dir
	}
	cosMax := math.Cos(spread)
	cosTheta := 1 - rng.Float64()*(1-cosMax)
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := rng.Float64() * 2 * math.Pi

	u, v := physics.Orthonormal(dir)
	offset := u.Mul(math.Cos(phi)).Add(v.Mul(math.Sin(phi))).Mul(sinTheta)
	return dir.Mul(cosTheta).Add(offset).Normalize()
}
