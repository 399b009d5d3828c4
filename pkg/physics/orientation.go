package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler holds aircraft attitude in radians. Pitch is about the body X axis
// (positive nose up), Yaw about world Y (positive nose left), Roll about the
// body Z axis. Rotations compose in yaw, pitch, roll order.
type Euler struct {
	Pitch float64
	Yaw   float64
	Roll  float64
}

// Quat converts the angles to a unit quaternion.
func (e Euler) Quat() mgl64.Quat {
	yaw := mgl64.QuatRotate(e.Yaw, Up)
	pitch := mgl64.QuatRotate(e.Pitch, Right)
	roll := mgl64.QuatRotate(e.Roll, mgl64.Vec3{0, 0, 1})
	return yaw.Mul(pitch).Mul(roll).Normalize()
}

// EulerFromQuat decomposes q into yaw, pitch, roll angles.
func EulerFromQuat(q mgl64.Quat) Euler {
	m := q.Normalize().Mat4().Mat3()
	m12 := mgl64.Clamp(m.At(1, 2), -1, 1)

	var e Euler
	e.Pitch = math.Asin(-m12)
	if math.Abs(m12) < 0.9999999 {
		e.Yaw = math.Atan2(m.At(0, 2), m.At(2, 2))
		e.Roll = math.Atan2(m.At(1, 0), m.At(1, 1))
	} else {
		e.Yaw = math.Atan2(-m.At(2, 0), m.At(0, 0))
		e.Roll = 0
	}
	return e
}

// IntegrateBodyRate rotates q by the body-frame angular velocity omega
// (rad/s, components about body X, Y, Z) over dt seconds.
func IntegrateBodyRate(q mgl64.Quat, omega mgl64.Vec3, dt float64) mgl64.Quat {
	angle := omega.Len() * dt
	if math.Abs(angle) < Epsilon {
		return q
	}
	delta := mgl64.QuatRotate(angle, omega.Normalize())
	return q.Mul(delta).Normalize()
}

// ToLocal expresses the world vector v in the frame described by q.
func ToLocal(q mgl64.Quat, v mgl64.Vec3) mgl64.Vec3 {
	return q.Conjugate().Rotate(v)
}

// ToWorld expresses the body-frame vector v in world space.
func ToWorld(q mgl64.Quat, v mgl64.Vec3) mgl64.Vec3 {
	return q.Rotate(v)
}
