package weapon

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-dogfight/pkg/config"
)

func TestPool_ExhaustionDoesNotGrow(t *testing.T) {
	p := NewPool(10)
	var got []*Projectile
	for i := 0; i < 15; i++ {
		proj, ok := p.Acquire()
		if i < 10 {
			require.True(t, ok)
			got = append(got, proj)
		} else {
			assert.False(t, ok)
			assert.Nil(t, proj)
		}
		assert.Equal(t, 10, p.ActiveCount()+p.Available(), "active plus pooled is invariant")
	}
	assert.Equal(t, 10, p.Capacity())

	require.True(t, p.Release(got[3]))
	assert.False(t, p.Release(got[3]), "double release is a no-op")
	assert.Equal(t, 1, p.Available())

	again, ok := p.Acquire()
	require.True(t, ok)
	assert.Same(t, got[3], again, "instances are reused, not reallocated")
}

func TestPool_ReleaseForeign(t *testing.T) {
	p := NewPool(2)
	assert.False(t, p.Release(&Projectile{Active: true}))
	assert.False(t, p.Release(nil))
	assert.Equal(t, 2, p.Available())
}

func TestPool_DefaultCapacityAndReset(t *testing.T) {
	p := NewPool(0)
	assert.Equal(t, DefaultPoolCapacity, p.Capacity())
	for i := 0; i < 5; i++ {
		_, ok := p.Acquire()
		require.True(t, ok)
	}
	p.Reset()
	assert.Equal(t, DefaultPoolCapacity, p.Available())
	count := 0
	p.ForEachActive(func(*Projectile) { count++ })
	assert.Zero(t, count)
}

func TestProjectile_RangeExpiry(t *testing.T) {
	p := NewPool(4)
	proj, ok := p.Acquire()
	require.True(t, ok)
	proj.Init(Spawn{Velocity: mgl64.Vec3{0, 0, -100}, MaxRange: 50, Class: config.MachineGun})

	alive := true
	ticks := 0
	for ; ticks < 60 && alive; ticks++ {
		alive = proj.Update(0.01, 9.81)
	}
	assert.False(t, alive)
	assert.True(t, proj.Expired())
	assert.Greater(t, proj.Traveled, 50.0)
	assert.LessOrEqual(t, ticks, 51)
}

func TestProjectile_Gravity(t *testing.T) {
	bullet := &Projectile{}
	bullet.Init(Spawn{Velocity: mgl64.Vec3{0, 0, -800}, Class: config.MachineGun})
	shell := &Projectile{}
	shell.Init(Spawn{Velocity: mgl64.Vec3{0, 0, -800}, Class: config.Cannon})

	for i := 0; i < 60; i++ {
		bullet.Update(1.0/60, 9.81)
		shell.Update(1.0/60, 9.81)
	}
	assert.Zero(t, bullet.Velocity.Y(), "bullets fly straight")
	assert.InDelta(t, -9.81, shell.Velocity.Y(), 1e-9, "one second of gravity")
	assert.Less(t, shell.Position.Y(), 0.0)
}

func TestProjectile_InactiveDoesNotMove(t *testing.T) {
	proj := &Projectile{Velocity: mgl64.Vec3{1, 0, 0}}
	assert.False(t, proj.Update(1, 9.81))
	assert.Equal(t, mgl64.Vec3{}, proj.Position)
}
