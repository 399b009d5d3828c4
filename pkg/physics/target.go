package physics

//go:generate go tool mockgen -destination=./mocks/target_mock.go -package=mocks . Target

// Target is anything a projectile can hit. Scene management hands the
// simulation a fresh set of targets every tick.
type Target interface {
	// TargetID identifies the owner of the target. Projectiles never hit the
	// target whose id matches their own owner id.
	TargetID() uint64
	// Bounds returns a sphere enclosing the target for broadphase culling.
	Bounds() Sphere
	// Raycast returns the first intersection of r with the target within maxDist.
	Raycast(r Ray, maxDist float64) (RayHit, bool)
}
