package polarity

import (
	"math"
	"strings"
)

// DM2DD converts degrees and decimal minutes into signed decimal
// degrees. Southern and western hemispheres are negative.
func DM2DD(deg, minutes float64, hemisphere string) float64 {
	res := deg + minutes/60
	switch strings.ToUpper(hemisphere) {
	case "S", "W":
		return -res
	default:
		return res
	}
}

// LatHemisphere normalizes a latitude hemisphere flag. Only 'S' marks
// the southern hemisphere, anything else (including blank) is north.
func LatHemisphere(flag string) string {
	if strings.EqualFold(strings.TrimSpace(flag), "S") {
		return "S"
	}
	return "N"
}

// LonHemisphere normalizes a longitude hemisphere flag. Only 'E' marks
// the eastern hemisphere, anything else (including blank) is west.
func LonHemisphere(flag string) string {
	if strings.EqualFold(strings.TrimSpace(flag), "E") {
		return "E"
	}
	return "W"
}

// Rescale converts a packed integer field with implied decimals into a
// float, e.g. Rescale(1234, 100) == 12.34.
func Rescale(v, divisor float64) float64 {
	return v / divisor
}

// Round rounds v to the given number of decimal digits.
func Round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
