package polarity

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names used in offset tables.
const (
	FieldYear         = "year"
	FieldMonth        = "month"
	FieldDay          = "day"
	FieldHour         = "hour"
	FieldMinute       = "minute"
	FieldSecond       = "second"
	FieldLatDeg       = "lat_deg"
	FieldLatHemi      = "lat_hemisphere"
	FieldLatMin       = "lat_min"
	FieldLonDeg       = "lon_deg"
	FieldLonHemi      = "lon_hemisphere"
	FieldLonMin       = "lon_min"
	FieldDepth        = "depth"
	FieldHorzErr      = "horz_uncert"
	FieldVertErr      = "vert_uncert"
	FieldMagnitude    = "magnitude"
	FieldEventID      = "event_id"
	FieldStation      = "station"
	FieldNetwork      = "network"
	FieldLocation     = "location"
	FieldChannel      = "channel"
	FieldOnset        = "onset"
	FieldFirstMotion  = "first_motion"
	FieldWeightCode   = "weight_code"
	FieldDistance     = "distance"
	FieldTakeoff      = "takeoff"
	FieldAzimuth      = "azimuth"
	FieldTakeoffUncer = "takeoff_uncert"
	FieldAzimuthUncer = "azimuth_uncert"
)

// Field is a named column of a fixed-width line. Start and End are
// 0-based character positions, End is exclusive.
type Field struct {
	Name  string
	Start int
	End   int
}

// OffsetTable lists the columns of one kind of fixed-width line.
type OffsetTable []Field

// HeaderOffsets are the hypocenter line layouts of fixed-width formats.
var HeaderOffsets = map[Format]OffsetTable{
	NCSN: {
		{FieldYear, 0, 4},
		{FieldMonth, 4, 6},
		{FieldDay, 6, 8},
		{FieldHour, 8, 10},
		{FieldMinute, 10, 12},
		{FieldSecond, 12, 16},
		{FieldLatDeg, 16, 18},
		{FieldLatHemi, 18, 19},
		{FieldLatMin, 19, 23},
		{FieldLonDeg, 23, 26},
		{FieldLonHemi, 26, 27},
		{FieldLonMin, 27, 31},
		{FieldDepth, 31, 36},
		{FieldHorzErr, 85, 89},
		{FieldVertErr, 89, 93},
		{FieldEventID, 136, 146},
		{FieldMagnitude, 147, 150},
	},
	HASH1: {
		{FieldYear, 0, 2},
		{FieldMonth, 2, 4},
		{FieldDay, 4, 6},
		{FieldHour, 6, 8},
		{FieldMinute, 8, 10},
		{FieldSecond, 10, 14},
		{FieldLatDeg, 14, 16},
		{FieldLatHemi, 16, 17},
		{FieldLatMin, 17, 21},
		{FieldLonDeg, 21, 24},
		{FieldLonHemi, 24, 25},
		{FieldLonMin, 25, 29},
		{FieldDepth, 29, 34},
		{FieldMagnitude, 34, 36},
		{FieldHorzErr, 80, 84},
		{FieldVertErr, 84, 88},
		{FieldEventID, 122, 138},
	},
	HASH3: {
		{FieldYear, 0, 4},
		{FieldMonth, 4, 6},
		{FieldDay, 6, 8},
		{FieldHour, 8, 10},
		{FieldMinute, 10, 12},
		{FieldSecond, 12, 17},
		{FieldLatDeg, 17, 19},
		{FieldLatHemi, 19, 20},
		{FieldLatMin, 20, 25},
		{FieldLonDeg, 25, 28},
		{FieldLonHemi, 28, 29},
		{FieldLonMin, 29, 34},
		{FieldDepth, 34, 39},
		{FieldHorzErr, 88, 93},
		{FieldVertErr, 94, 99},
		{FieldMagnitude, 139, 143},
		{FieldEventID, 149, 165},
	},
	HASH4: {
		{FieldYear, 0, 4},
		{FieldMonth, 4, 6},
		{FieldDay, 6, 8},
		{FieldHour, 8, 10},
		{FieldMinute, 10, 12},
		{FieldSecond, 12, 16},
		{FieldLatDeg, 16, 18},
		{FieldLatHemi, 18, 19},
		{FieldLatMin, 19, 23},
		{FieldLonDeg, 23, 26},
		{FieldLonHemi, 26, 27},
		{FieldLonMin, 27, 31},
		{FieldDepth, 31, 36},
		{FieldEventID, 130, 146},
		{FieldMagnitude, 147, 150},
	},
}

var pickOffsets = map[Format]OffsetTable{
	NCSN: {
		{FieldStation, 0, 5},
		{FieldNetwork, 5, 7},
		{FieldChannel, 9, 12},
		{FieldOnset, 13, 14},
		{FieldFirstMotion, 15, 16},
		{FieldWeightCode, 16, 17},
		{FieldDistance, 74, 78},
		{FieldTakeoff, 78, 81},
		{FieldAzimuth, 91, 94},
		{FieldLocation, 111, 113},
	},
	HASH1: {
		{FieldStation, 0, 4},
		{FieldFirstMotion, 6, 7},
		{FieldWeightCode, 7, 8},
		{FieldDistance, 58, 62},
		{FieldTakeoff, 62, 66},
		{FieldAzimuth, 75, 78},
		{FieldTakeoffUncer, 79, 82},
		{FieldAzimuthUncer, 83, 86},
		{FieldChannel, 95, 98},
	},
	HASH4: {
		{FieldStation, 0, 4},
		{FieldNetwork, 5, 7},
		{FieldChannel, 9, 12},
		{FieldOnset, 13, 14},
		{FieldFirstMotion, 15, 16},
	},
}

// PickOffsets returns the pick line layout of a fixed-width format.
// HASH driver 3/5 columns shift with the width of the station name.
func PickOffsets(f Format, staNameLength int) OffsetTable {
	if f == HASH3 {
		l := staNameLength
		return OffsetTable{
			{FieldStation, 0, l},
			{FieldNetwork, l + 1, l + 3},
			{FieldChannel, l + 5, l + 8},
			{FieldOnset, l + 9, l + 10},
			{FieldFirstMotion, l + 11, l + 12},
		}
	}
	return pickOffsets[f]
}

// Slice cuts a line into the fields of the table. Lines shorter than a
// field produce a truncated or empty value, never an error.
func (t OffsetTable) Slice(line string) Record {
	res := make(Record, len(t))
	for _, f := range t {
		res[f.Name] = Cut(line, f.Start, f.End)
	}
	return res
}

// Cut returns line[start:end] clamped to the length of the line.
func Cut(line string, start, end int) string {
	if start >= len(line) || start >= end {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

// Record holds raw field values of one fixed-width line.
type Record map[string]string

// Raw returns the value as it appears in the line.
func (r Record) Raw(name string) string {
	return r[name]
}

// Text returns the value without surrounding spaces.
func (r Record) Text(name string) string {
	return strings.TrimSpace(r[name])
}

// IsBlank returns true if the value consists of spaces only.
func (r Record) IsBlank(name string) bool {
	return r.Text(name) == ""
}

// Int parses the value as an integer.
func (r Record) Int(name string) (int, error) {
	s := r.Text(name)
	res, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("field %s: cannot parse '%s' as integer", name, r[name])
	}
	return res, nil
}

// IntOr parses the value as an integer, returning def for blank values.
func (r Record) IntOr(name string, def int) (int, error) {
	if r.IsBlank(name) {
		return def, nil
	}
	return r.Int(name)
}

// Float parses the value as a float.
func (r Record) Float(name string) (float64, error) {
	s := r.Text(name)
	res, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: cannot parse '%s' as number", name, r[name])
	}
	return res, nil
}

// FloatOr parses the value as a float, returning def for blank values.
func (r Record) FloatOr(name string, def float64) (float64, error) {
	if r.IsBlank(name) {
		return def, nil
	}
	return r.Float(name)
}
