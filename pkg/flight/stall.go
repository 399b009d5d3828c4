package flight

import "math"

// Stall thresholds in degrees of angle of attack
const (
	StallOnsetAngle = 15.0
	DeepStallAngle  = 25.0
	FullStallAngle  = 35.0
)

// Stall describes the aerodynamic penalty at the current flight condition.
// LiftFactor multiplies lift, DragFactor multiplies drag.
type Stall struct {
	LiftFactor float64 `json:"liftFactor"`
	DragFactor float64 `json:"dragFactor"`
	Severity   float64 `json:"severity"`
	Stalled    bool    `json:"stalled"`
	Deep       bool    `json:"deep"`
}

// StallModel evaluates the stall state for an angle of attack in degrees.
//
// Up to 15 degrees there is no penalty. Between 15 and 25 degrees lift falls
// linearly to 40% and drag rises to 3x, with severity in (0, 0.5]. Past 25
// degrees lift retention slides from 40% to 20% and drag from 3x to 5x,
// saturating at 35 degrees, with severity in (0.5, 1].
func StallModel(aoaDeg, airspeed, stallSpeed float64) Stall {
	a := math.Abs(aoaDeg)
	if math.IsNaN(a) {
		a = 0
	}

	s := Stall{LiftFactor: 1, DragFactor: 1}
	switch {
	case a <= StallOnsetAngle:
	case a <= DeepStallAngle:
		p := (a - StallOnsetAngle) / (DeepStallAngle - StallOnsetAngle)
		s.LiftFactor = 1 - 0.6*p
		s.DragFactor = 1 + 2*p
		s.Severity = 0.5 * p
	default:
		d := math.Min(1, (a-DeepStallAngle)/(FullStallAngle-DeepStallAngle))
		s.LiftFactor = 0.4 - 0.2*d
		s.DragFactor = 3 + 2*d
		s.Severity = 0.5 + 0.5*d
		s.Deep = true
	}

	lowSpeed := 0.9 * stallSpeed
	if stallSpeed > 0 && airspeed < lowSpeed {
		s.Severity = math.Max(s.Severity, 0.5*(1-airspeed/lowSpeed))
	}

	s.Stalled = a > StallOnsetAngle || (stallSpeed > 0 && airspeed < lowSpeed) || s.LiftFactor < 0.8
	return s
}

// LiftCoefficient returns the lift coefficient for an angle of attack in
// degrees. It is linear up to the stall onset and then decays toward 30% of
// the peak value.
func LiftCoefficient(aoaDeg, base float64) float64 {
	a := math.Abs(aoaDeg)
	if a <= StallOnsetAngle {
		return aoaDeg * 0.1 * base
	}
	peak := StallOnsetAngle * 0.1 * base
	cl := peak * (0.3 + 0.7*math.Exp(-(a-StallOnsetAngle)/10))
	return math.Copysign(cl, aoaDeg)
}
