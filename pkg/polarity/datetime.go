package polarity

import (
	"fmt"
	"math"
	"time"
)

// CenturyCutoff separates 2-digit years of the last century from the
// current one. Years above it belong to 19xx.
const CenturyCutoff = 50

// InferCentury expands a 2-digit year: 51..99 become 1951..1999,
// 0..50 become 2000..2050.
func InferCentury(yy int) int {
	if yy > CenturyCutoff {
		return 1900 + yy
	}
	return 2000 + yy
}

// AssembleTime builds a UTC timestamp from separate calendar fields.
// Fractional seconds are kept to nanosecond precision. Out-of-range
// fields return an error instead of being normalized into another date.
func AssembleTime(
	year, month, day, hour, minute int,
	second float64,
) (time.Time, error) {
	var zero time.Time
	if month < 1 || month > 12 {
		return zero, fmt.Errorf("month %d out of range", month)
	}
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > lastDay {
		return zero, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	if hour < 0 || hour > 23 {
		return zero, fmt.Errorf("hour %d out of range", hour)
	}
	if minute < 0 || minute > 59 {
		return zero, fmt.Errorf("minute %d out of range", minute)
	}
	if math.IsNaN(second) || second < 0 || second >= 61 {
		return zero, fmt.Errorf("second %v out of range", second)
	}

	whole := math.Floor(second)
	nsec := int(math.Round((second - whole) * 1e9))
	res := time.Date(year, time.Month(month), day, hour, minute,
		int(whole), nsec, time.UTC)
	return res, nil
}
