// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

// Axes of the body frame. The aircraft looks down -Z with +Y up and +X to the right.
var (
	Forward = mgl64.Vec3{0, 0, -1}
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
)

// SafeNormalize returns a unit vector in the direction of v, or fallback when
// v is too short to have a direction.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length < Epsilon {
		return fallback
	}
	return v.Mul(1 / length)
}

// IsZero reports whether v is shorter than Epsilon.
func IsZero(v mgl64.Vec3) bool {
	return v.Len() < Epsilon
}

// Horizontal projects v onto the XZ plane.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// HorizontalDistance returns the distance between a and b ignoring altitude.
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	return Horizontal(a.Sub(b)).Len()
}

// ClampLength scales v down so that its length does not exceed limit.
func ClampLength(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	if limit <= 0 {
		return v
	}
	length := v.Len()
	if length <= limit || length < Epsilon {
		return v
	}
	return v.Mul(limit / length)
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Orthonormal returns two unit vectors perpendicular to dir and to each other.
// dir must be a unit vector.
func Orthonormal(dir mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	ref := Up
	if math.Abs(dir.Dot(ref)) > 0.99 {
		ref = Right
	}
	u := dir.Cross(ref).Normalize()
	v := dir.Cross(u)
	return u, v
}

// WrapAngle normalizes an angle in radians to [-pi, pi).
func WrapAngle(angle float64) float64 {
	wrapped := math.Mod(angle+math.Pi, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}
