package autopilot

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-dogfight/pkg/engine"
	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/input"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

func view(id entity.ID, pos mgl64.Vec3, heading float64) engine.AircraftView {
	rot := physics.Euler{Yaw: heading}
	return engine.AircraftView{
		ID:     id,
		Status: entity.Flying,
		State: entity.AircraftState{
			Position:    pos,
			Orientation: rot.Quat(),
			Rotation:    rot,
			Altitude:    pos.Y(),
			Heading:     heading,
			Ammunition:  100,
		},
	}
}

func snapshot(views ...engine.AircraftView) engine.State {
	state := engine.State{Aircraft: make(map[entity.ID]engine.AircraftView)}
	for _, v := range views {
		state.Aircraft[v.ID] = v
	}
	return state
}

func TestParseBehavior(t *testing.T) {
	for _, b := range []Behavior{BehaviorExplorer, BehaviorAggressor, BehaviorDefender} {
		got, err := ParseBehavior(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	got, err := ParseBehavior(" Aggressor ")
	require.NoError(t, err)
	assert.Equal(t, BehaviorAggressor, got)

	_, err = ParseBehavior("bomber")
	assert.ErrorIs(t, err, ErrUnknownBehavior)
	assert.Equal(t, "Behavior(7)", Behavior(7).String())
}

func TestControls_MissingOrDownedAircraftIsNeutral(t *testing.T) {
	p := NewPilot(1, BehaviorAggressor, mgl64.Vec3{0, 500, 0}, 1)

	assert.Equal(t, input.Neutral(p.Throttle), p.Controls(snapshot()))

	wreck := view(1, mgl64.Vec3{0, 500, 0}, 0)
	wreck.Damage.Destroyed = true
	enemy := view(2, mgl64.Vec3{0, 500, -200}, 0)
	assert.Equal(t, input.Neutral(p.Throttle), p.Controls(snapshot(wreck, enemy)))

	crashed := view(1, mgl64.Vec3{0, 0, 0}, 0)
	crashed.Status = entity.Crashed
	assert.Equal(t, input.Neutral(p.Throttle), p.Controls(snapshot(crashed, enemy)))
}

func TestAggressor_FiresAtTargetDeadAhead(t *testing.T) {
	p := NewPilot(1, BehaviorAggressor, mgl64.Vec3{0, 500, 0}, 1)
	state := snapshot(
		view(1, mgl64.Vec3{0, 500, 0}, 0),
		view(2, mgl64.Vec3{0, 500, -300}, 0),
	)

	ctrl := p.Controls(state)
	assert.True(t, ctrl.Fire)
	assert.InDelta(t, 0, ctrl.Yaw, 1e-9)
	assert.InDelta(t, 0, ctrl.Pitch, 1e-9)
	assert.Equal(t, 1.0, ctrl.Throttle)
}

func TestAggressor_HoldsFire(t *testing.T) {
	tests := []struct {
		name   string
		target mgl64.Vec3
		ammo   int
	}{
		{"out of range", mgl64.Vec3{0, 500, -2000}, 100},
		{"off the nose", mgl64.Vec3{-300, 500, -300}, 100},
		{"no ammunition", mgl64.Vec3{0, 500, -300}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPilot(1, BehaviorAggressor, mgl64.Vec3{0, 500, 0}, 1)
			self := view(1, mgl64.Vec3{0, 500, 0}, 0)
			self.State.Ammunition = tt.ammo

			ctrl := p.Controls(snapshot(self, view(2, tt.target, 0)))
			assert.False(t, ctrl.Fire)
		})
	}
}

func TestAggressor_TurnsTowardTarget(t *testing.T) {
	p := NewPilot(1, BehaviorAggressor, mgl64.Vec3{0, 500, 0}, 1)

	left := p.Controls(snapshot(view(1, mgl64.Vec3{0, 500, 0}, 0), view(2, mgl64.Vec3{-400, 500, 0}, 0)))
	assert.Less(t, left.Yaw, 0.0)

	right := p.Controls(snapshot(view(1, mgl64.Vec3{0, 500, 0}, 0), view(2, mgl64.Vec3{400, 500, 0}, 0)))
	assert.Greater(t, right.Yaw, 0.0)

	above := p.Controls(snapshot(view(1, mgl64.Vec3{0, 500, 0}, 0), view(2, mgl64.Vec3{0, 900, -300}, 0)))
	assert.Greater(t, above.Pitch, 0.0)
}

func TestAggressor_PicksNearestLiveTarget(t *testing.T) {
	p := NewPilot(1, BehaviorAggressor, mgl64.Vec3{0, 500, 0}, 1)

	downed := view(2, mgl64.Vec3{0, 500, -100}, 0)
	downed.Damage.Destroyed = true
	far := view(3, mgl64.Vec3{-800, 500, 0}, 0)
	near := view(4, mgl64.Vec3{600, 500, 0}, 0)

	ctrl := p.Controls(snapshot(view(1, mgl64.Vec3{0, 500, 0}, 0), downed, far, near))
	assert.Greater(t, ctrl.Yaw, 0.0, "should turn right toward the nearest live aircraft")
	assert.False(t, ctrl.Fire)
}

func TestAggressor_WithoutTargetsCruises(t *testing.T) {
	p := NewPilot(1, BehaviorAggressor, mgl64.Vec3{0, 500, 0}, 1)
	ctrl := p.Controls(snapshot(view(1, mgl64.Vec3{0, 500, 0}, 0)))
	assert.False(t, ctrl.Fire)
	assert.Equal(t, p.Throttle, ctrl.Throttle)
}

func TestDefender_ReturnsHome(t *testing.T) {
	p := NewPilot(1, BehaviorDefender, mgl64.Vec3{0, 500, 0}, 1)
	intruder := view(2, mgl64.Vec3{6000, 500, 0}, 0)

	// home lies to the left of an aircraft at +X facing -Z
	ctrl := p.Controls(snapshot(view(1, mgl64.Vec3{4000, 500, 0}, 0), intruder))
	assert.Equal(t, -1.0, ctrl.Yaw)
	assert.False(t, ctrl.Fire)
}

func TestDefender_EngagesIntruderNearHome(t *testing.T) {
	p := NewPilot(1, BehaviorDefender, mgl64.Vec3{0, 500, 0}, 1)
	ctrl := p.Controls(snapshot(
		view(1, mgl64.Vec3{0, 500, 0}, 0),
		view(2, mgl64.Vec3{0, 500, -250}, 0),
	))
	assert.True(t, ctrl.Fire)
}

func TestSteering_LevelsWings(t *testing.T) {
	p := NewPilot(1, BehaviorExplorer, mgl64.Vec3{0, 500, 0}, 1)

	self := view(1, mgl64.Vec3{0, 500, 0}, 0)
	self.State.Rotation.Roll = 0.3 // banked left
	ctrl := p.Controls(snapshot(self))
	assert.Greater(t, ctrl.Roll, 0.0)

	self.State.Rotation.Roll = -0.3
	ctrl = p.Controls(snapshot(self))
	assert.Less(t, ctrl.Roll, 0.0)
}

func TestSteering_HoldsCruiseAltitude(t *testing.T) {
	p := NewPilot(1, BehaviorExplorer, mgl64.Vec3{0, 800, 0}, 1)

	low := p.Controls(snapshot(view(1, mgl64.Vec3{0, 300, 0}, 0)))
	assert.Greater(t, low.Pitch, 0.0)

	high := p.Controls(snapshot(view(1, mgl64.Vec3{0, 1500, 0}, 0)))
	assert.Less(t, high.Pitch, 0.0)
}

func TestExplorer_SeededWanderIsReproducible(t *testing.T) {
	a := NewPilot(1, BehaviorExplorer, mgl64.Vec3{0, 500, 0}, 7)
	b := NewPilot(1, BehaviorExplorer, mgl64.Vec3{0, 500, 0}, 7)
	state := snapshot(view(1, mgl64.Vec3{0, 500, 0}, 0))

	for i := 0; i < 500; i++ {
		ca, cb := a.Controls(state), b.Controls(state)
		require.Equal(t, ca, cb, "call %d", i)
		assert.False(t, math.IsNaN(ca.Yaw))
		assert.LessOrEqual(t, math.Abs(ca.Yaw), 1.0)
	}
}
