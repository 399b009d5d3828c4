package flight

import "math"

// Engine response constants
const (
	ThrottleRate    = 0.5 // throttle units per second
	IdleRPM         = 600.0
	MaxRPM          = 2700.0
	RPMResponseRate = 1.5
	AmbientTemp     = 15.0
	IdleTemp        = 70.0
	MaxTemp         = 110.0
	TempResponse    = 0.2 // 1/s
)

// EngineState is the lagged engine model. Only Dynamics mutates it.
type EngineState struct {
	TargetThrottle float64 `json:"targetThrottle"`
	ActualThrottle float64 `json:"actualThrottle"`
	RPM            float64 `json:"rpm"`
	Temperature    float64 `json:"temperature"`
}

// NewEngineState returns an engine already settled at throttle
func NewEngineState(throttle float64) EngineState {
	throttle = clamp01(throttle)
	return EngineState{
		TargetThrottle: throttle,
		ActualThrottle: throttle,
		RPM:            targetRPM(throttle),
		Temperature:    targetTemp(throttle),
	}
}

// advance moves the engine toward target over dt. Throttle and RPM approach
// at a bounded rate and never overshoot; temperature decays exponentially.
func (e *EngineState) advance(target, dt float64) {
	e.TargetThrottle = clamp01(target)
	e.ActualThrottle = approach(e.ActualThrottle, e.TargetThrottle, ThrottleRate*dt)
	e.ActualThrottle = clamp01(e.ActualThrottle)

	e.RPM = approach(e.RPM, targetRPM(e.ActualThrottle), (MaxRPM-IdleRPM)*RPMResponseRate*dt)

	k := 1 - math.Exp(-TempResponse*dt)
	e.Temperature += (targetTemp(e.ActualThrottle) - e.Temperature) * k
}

func targetRPM(throttle float64) float64 {
	return IdleRPM + (MaxRPM-IdleRPM)*throttle
}

func targetTemp(throttle float64) float64 {
	return IdleTemp + (MaxTemp-IdleTemp)*throttle
}

func approach(current, target, maxStep float64) float64 {
	if maxStep <= 0 {
		return current
	}
	delta := target - current
	if math.Abs(delta) <= maxStep {
		return target
	}
	return current + math.Copysign(maxStep, delta)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
