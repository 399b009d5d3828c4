// Package input defines the per-tick control snapshot consumed by the simulation.
package input

import "math"

// Controls is one tick of pilot input. Axes are in [-1, 1], Throttle in [0, 1].
type Controls struct {
	Pitch    float64 `json:"pitch"`
	Roll     float64 `json:"roll"`
	Yaw      float64 `json:"yaw"`
	Throttle float64 `json:"throttle"`
	Fire     bool    `json:"fire"`
	Brake    bool    `json:"brake"`
	Boost    bool    `json:"boost"`
	LookBack bool    `json:"lookBack"`
	Pause    bool    `json:"pause"`
}

// Neutral returns centred sticks at the given throttle
func Neutral(throttle float64) Controls {
	return Controls{Throttle: throttle}.Sanitize()
}

// Sanitize clamps every axis into range. NaN becomes zero.
func (c Controls) Sanitize() Controls {
	c.Pitch = clamp(c.Pitch, -1, 1)
	c.Roll = clamp(c.Roll, -1, 1)
	c.Yaw = clamp(c.Yaw, -1, 1)
	c.Throttle = clamp(c.Throttle, 0, 1)
	return c
}

// EffectiveThrottle is the throttle the engine should target. Boost overrides
// the lever to full power.
func (c Controls) EffectiveThrottle() float64 {
	if c.Boost {
		return 1
	}
	return clamp(c.Throttle, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
