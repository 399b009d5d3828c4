package flight

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

func spitfire(t *testing.T) config.AircraftConfig {
	t.Helper()
	cfg, err := config.LookupAircraft(config.Spitfire)
	require.NoError(t, err)
	return cfg
}

func levelInput(speed, throttle float64) Input {
	return Input{
		Orientation: mgl64.QuatIdent(),
		Velocity:    physics.Forward.Mul(speed),
		Altitude:    1000,
		Throttle:    throttle,
	}
}

func TestEngine_ThrottleConvergesWithoutOvershoot(t *testing.T) {
	for _, target := range []float64{0, 0.35, 1} {
		d := NewDynamics(spitfire(t), 0.7)
		prev := d.Engine().ActualThrottle
		rising := target > prev

		converged := -1
		for tick := 0; tick < 600; tick++ {
			d.Update(levelInput(150, target), 1.0/60)
			cur := d.Engine().ActualThrottle
			if rising {
				require.GreaterOrEqual(t, cur, prev)
				require.LessOrEqual(t, cur, target)
			} else {
				require.LessOrEqual(t, cur, prev)
				require.GreaterOrEqual(t, cur, target)
			}
			if cur == target && converged < 0 {
				converged = tick
			}
			prev = cur
		}
		assert.GreaterOrEqual(t, converged, 0, "target %v never reached", target)
		assert.Less(t, converged, 120, "within two seconds")
	}
}

func TestEngine_RPMAndTemperatureFollowThrottle(t *testing.T) {
	d := NewDynamics(spitfire(t), 0.2)
	startRPM := d.Engine().RPM
	startTemp := d.Engine().Temperature

	for i := 0; i < 600; i++ {
		d.Update(levelInput(150, 1), 1.0/60)
	}
	e := d.Engine()
	assert.InDelta(t, MaxRPM, e.RPM, 1e-9)
	assert.Greater(t, e.RPM, startRPM)
	assert.Greater(t, e.Temperature, startTemp)
	assert.Less(t, e.Temperature, MaxTemp)
}

func TestEngine_ClampsTarget(t *testing.T) {
	d := NewDynamics(spitfire(t), 0.5)
	d.Update(levelInput(150, 7), 10)
	assert.Equal(t, 1.0, d.Engine().ActualThrottle)
	d.Update(levelInput(150, math.NaN()), 10)
	assert.Equal(t, 0.0, d.Engine().ActualThrottle)
}

func TestStallModel_Thresholds(t *testing.T) {
	const stallSpeed = 45.0
	for aoa := -60.0; aoa <= 60; aoa += 0.5 {
		s := StallModel(aoa, 150, stallSpeed)
		if math.Abs(aoa) > StallOnsetAngle {
			assert.True(t, s.Stalled, "aoa %v", aoa)
		} else {
			assert.False(t, s.Stalled, "aoa %v", aoa)
			assert.Zero(t, s.Severity)
		}
	}

	assert.True(t, StallModel(2, 0.85*stallSpeed, stallSpeed).Stalled, "slow flight stalls")
	assert.False(t, StallModel(2, 0.9*stallSpeed, stallSpeed).Stalled)
}

func TestStallModel_SeverityMonotonic(t *testing.T) {
	for _, speed := range []float64{20, 45, 150} {
		prev := -1.0
		for aoa := 0.0; aoa <= 90; aoa += 0.25 {
			s := StallModel(aoa, speed, 45)
			assert.GreaterOrEqual(t, s.Severity, prev, "speed %v aoa %v", speed, aoa)
			assert.GreaterOrEqual(t, s.Severity, 0.0)
			assert.LessOrEqual(t, s.Severity, 1.0)
			prev = s.Severity
		}
	}
}

func TestStallModel_DeepExceedsProgressive(t *testing.T) {
	maxProgressive := 0.0
	for aoa := 15.25; aoa <= DeepStallAngle; aoa += 0.25 {
		s := StallModel(aoa, 150, 45)
		assert.False(t, s.Deep)
		assert.LessOrEqual(t, s.Severity, 0.5)
		maxProgressive = math.Max(maxProgressive, s.Severity)
	}
	for aoa := 35.25; aoa <= 80; aoa += 0.25 {
		s := StallModel(aoa, 150, 45)
		assert.True(t, s.Deep)
		assert.Greater(t, s.Severity, maxProgressive)
	}
}

func TestStallModel_Factors(t *testing.T) {
	tests := []struct {
		aoa        float64
		lift, drag float64
	}{
		{10, 1, 1},
		{20, 0.7, 2},
		{25, 0.4, 3},
		{30, 0.3, 4},
		{45, 0.2, 5},
	}
	for _, tt := range tests {
		s := StallModel(tt.aoa, 150, 45)
		assert.InDelta(t, tt.lift, s.LiftFactor, 1e-9, "lift at %v", tt.aoa)
		assert.InDelta(t, tt.drag, s.DragFactor, 1e-9, "drag at %v", tt.aoa)
	}
}

func TestLiftCoefficient(t *testing.T) {
	assert.InDelta(t, 0.5, LiftCoefficient(5, 1), 1e-12)
	assert.InDelta(t, -1.5, LiftCoefficient(-15, 1), 1e-12)
	assert.InDelta(t, 1.5, LiftCoefficient(15.0000001, 1), 1e-6, "continuous at the onset")
	assert.InDelta(t, 0.45, LiftCoefficient(500, 1), 1e-6, "decays to 30% of peak")
	assert.Less(t, LiftCoefficient(30, 1), LiftCoefficient(20, 1))
}

func TestThrottleEfficiency(t *testing.T) {
	tests := []struct {
		throttle, want float64
	}{
		{0, 0.3},
		{0.05, 0.3},
		{0.1, 0.5},
		{0.2, 0.75},
		{0.3, 0.85},
		{0.55, 0.925},
		{0.8, 1.0},
		{1.0, 0.95},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ThrottleEfficiency(tt.throttle), 1e-9, "throttle %v", tt.throttle)
	}
}

func TestAltitudeFactor(t *testing.T) {
	assert.Equal(t, 1.0, AltitudeFactor(0))
	assert.InDelta(t, 0.5, AltitudeFactor(7500), 1e-12)
	assert.Equal(t, MinAltitudeThrust, AltitudeFactor(14000))
}

func TestControlEffectiveness(t *testing.T) {
	assert.Equal(t, 0.1, ControlEffectiveness(10, 45, 150))
	assert.InDelta(t, 0.1, ControlEffectiveness(22.5, 45, 150), 1e-12)
	assert.Equal(t, 1.0, ControlEffectiveness(150, 45, 150))
	assert.Equal(t, 1.0, ControlEffectiveness(300, 45, 150))

	mid := ControlEffectiveness(86.25, 45, 150)
	assert.InDelta(t, 0.55, mid, 1e-9)
}

func TestDynamics_ForceDirections(t *testing.T) {
	d := NewDynamics(spitfire(t), 0.7)
	in := levelInput(150, 0.7)
	in.AngleOfAttack = mgl64.DegToRad(3)
	f := d.Update(in, 1.0/60)

	assert.Less(t, f.Thrust.Z(), 0.0, "thrust along the nose")
	assert.Greater(t, f.Lift.Y(), 0.0)
	assert.Greater(t, f.Drag.Z(), 0.0, "drag opposes motion")
	assert.InDelta(t, -3000*Gravity, f.Weight.Y(), 1e-9)
	assert.True(t, physics.IsFinite(f.Total))
	assert.InDelta(t, 0, f.Total.Sub(f.Thrust.Add(f.Lift).Add(f.Drag).Add(f.Weight)).Len(), 1e-9)
	assert.Equal(t, 1.0, f.ControlEffectiveness)
}

func TestDynamics_LiftFloor(t *testing.T) {
	d := NewDynamics(spitfire(t), 0.7)
	weight := 3000 * Gravity

	f := d.Update(levelInput(100, 0.7), 1.0/60)
	assert.InDelta(t, LiftFloorFraction*weight, f.Lift.Len(), 1e-6, "zero aoa still carries the floor")

	f = d.Update(levelInput(4, 0.7), 1.0/60)
	assert.InDelta(t, 0, f.Lift.Len(), 1e-9, "no floor when nearly stationary")
}

func TestDynamics_StationaryIsFinite(t *testing.T) {
	d := NewDynamics(spitfire(t), 0)
	f := d.Update(Input{}, 1.0/60)
	assert.True(t, physics.IsFinite(f.Total))
	assert.Equal(t, mgl64.Vec3{}, f.Drag)
}

func TestDynamics_BrakeDoublesDrag(t *testing.T) {
	d := NewDynamics(spitfire(t), 0.7)
	plain := d.Update(levelInput(150, 0.7), 1.0/60)

	braked := levelInput(150, 0.7)
	braked.Brake = true
	f := d.Update(braked, 1.0/60)
	assert.InDelta(t, 2*plain.Drag.Len(), f.Drag.Len(), 1e-6)
}

func TestDynamics_ThrustLimit(t *testing.T) {
	d := NewDynamics(spitfire(t), 1)
	full := d.Update(levelInput(150, 1), 1.0/60).Thrust.Len()

	d.SetThrustLimit(0.5)
	assert.InDelta(t, 5900, d.EffectiveMaxThrust(), 1e-9)
	half := d.Update(levelInput(150, 1), 1.0/60).Thrust.Len()
	assert.InDelta(t, full/2, half, 1e-6)

	d.Reset(0.7)
	assert.Equal(t, 11800.0, d.EffectiveMaxThrust())
	assert.Equal(t, 0.7, d.Engine().ActualThrottle)
}

func TestDynamics_DiveAddsForwardWeight(t *testing.T) {
	d := NewDynamics(spitfire(t), 0.7)
	dive := levelInput(150, 0.7)
	dive.Pitch = -0.5
	f := d.Update(dive, 1.0/60)
	forward := physics.Forward
	assert.Greater(t, f.Weight.Dot(forward), 0.0)
}

func TestDynamics_CruiseBalance(t *testing.T) {
	for _, typ := range config.AircraftTypes() {
		cfg, err := config.LookupAircraft(typ)
		require.NoError(t, err)
		d := NewDynamics(cfg, 0.7)

		in := levelInput(cfg.CruiseSpeed, 0.7)
		in.Altitude = 100
		f := d.Update(in, 1.0/60)
		along := f.Thrust.Add(f.Drag).Dot(physics.Forward)
		assert.Less(t, math.Abs(along)/cfg.Mass, 0.5, "%s thrust and drag roughly balance at cruise", typ)
	}
}
