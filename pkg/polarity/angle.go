package polarity

import (
	"math"
)

// AngleConvention describes how a format stores ray angles.
type AngleConvention struct {
	// TakeoffInverted is true when the stored takeoff angle is measured
	// from upward vertical and has to be converted with 180 - t.
	TakeoffInverted bool
}

// Takeoff converts a stored takeoff angle to degrees from downward
// vertical.
func (a AngleConvention) Takeoff(v float64) float64 {
	if a.TakeoffInverted {
		return 180 - v
	}
	return v
}

// NormalizeAzimuth wraps an azimuth into [0, 360).
func NormalizeAzimuth(v float64) float64 {
	res := math.Mod(v, 360)
	if res < 0 {
		res += 360
	}
	if res == 360 {
		return 0
	}
	// adding 0 turns -0 into 0
	return res + 0
}

// ValidTakeoff returns true if a takeoff angle lies in [0, 180].
func ValidTakeoff(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 180
}
