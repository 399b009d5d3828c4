package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func vec3AlmostEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return a.Sub(b).Len() <= tolerance
}

func TestSafeNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    mgl64.Vec3
		fallback mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"unit x", mgl64.Vec3{3, 0, 0}, Forward, mgl64.Vec3{1, 0, 0}},
		{"diagonal", mgl64.Vec3{0, 3, 4}, Forward, mgl64.Vec3{0, 0.6, 0.8}},
		{"zero uses fallback", mgl64.Vec3{}, Forward, Forward},
		{"tiny uses fallback", mgl64.Vec3{1e-12, 0, 0}, Up, Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeNormalize(tt.input, tt.fallback)
			assert.True(t, vec3AlmostEqual(got, tt.expected, 1e-12), "got %v want %v", got, tt.expected)
		})
	}
}

func TestHorizontalDistance_IgnoresAltitude(t *testing.T) {
	a := mgl64.Vec3{3, 1000, 0}
	b := mgl64.Vec3{0, -50, 4}
	assert.InDelta(t, 5.0, HorizontalDistance(a, b), 1e-12)
}

func TestClampLength(t *testing.T) {
	v := mgl64.Vec3{30, 40, 0}
	assert.InDelta(t, 10.0, ClampLength(v, 10).Len(), 1e-12)
	assert.Equal(t, v, ClampLength(v, 100))
	assert.Equal(t, v, ClampLength(v, 0), "non-positive limit disables clamping")
	assert.Equal(t, mgl64.Vec3{}, ClampLength(mgl64.Vec3{}, 1))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(mgl64.Vec3{1, 2, 3}))
	assert.False(t, IsFinite(mgl64.Vec3{math.NaN(), 0, 0}))
	assert.False(t, IsFinite(mgl64.Vec3{0, math.Inf(1), 0}))
}

func TestOrthonormal(t *testing.T) {
	for _, dir := range []mgl64.Vec3{Forward, Up, Right, mgl64.Vec3{1, 1, 1}.Normalize()} {
		u, v := Orthonormal(dir)
		assert.InDelta(t, 1.0, u.Len(), 1e-12)
		assert.InDelta(t, 1.0, v.Len(), 1e-12)
		assert.InDelta(t, 0.0, u.Dot(dir), 1e-12)
		assert.InDelta(t, 0.0, v.Dot(dir), 1e-12)
		assert.InDelta(t, 0.0, u.Dot(v), 1e-12)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4 * math.Pi, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-9, "WrapAngle(%v)", tt.in)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	tests := []Euler{
		{},
		{Pitch: 0.3},
		{Yaw: 1.2},
		{Roll: -0.7},
		{Pitch: -0.4, Yaw: 2.5, Roll: 0.9},
	}

	for _, e := range tests {
		got := EulerFromQuat(e.Quat())
		assert.InDelta(t, e.Pitch, got.Pitch, 1e-9)
		assert.InDelta(t, e.Yaw, got.Yaw, 1e-9)
		assert.InDelta(t, e.Roll, got.Roll, 1e-9)
	}
}

func TestEuler_AxisConventions(t *testing.T) {
	noseUp := Euler{Pitch: 0.5}.Quat()
	assert.Greater(t, ToWorld(noseUp, Forward).Y(), 0.0, "positive pitch raises the nose")

	noseLeft := Euler{Yaw: 0.5}.Quat()
	assert.Less(t, ToWorld(noseLeft, Forward).X(), 0.0, "positive yaw turns the nose left")
}

func TestIntegrateBodyRate(t *testing.T) {
	q := mgl64.QuatIdent()
	for i := 0; i < 100; i++ {
		q = IntegrateBodyRate(q, mgl64.Vec3{0.5, 0, 0}, 0.01)
	}
	assert.InDelta(t, 0.5, EulerFromQuat(q).Pitch, 1e-9)

	same := IntegrateBodyRate(q, mgl64.Vec3{}, 1)
	assert.Equal(t, q, same)
}

func TestToLocalToWorld(t *testing.T) {
	q := Euler{Pitch: 0.2, Yaw: -1.1, Roll: 0.4}.Quat()
	v := mgl64.Vec3{12, -3, 40}
	assert.True(t, vec3AlmostEqual(v, ToWorld(q, ToLocal(q, v)), 1e-9))
}
