package polarity

import (
	"slices"
)

// DropReason tells why a record did not make it into the output.
type DropReason int

const (
	// DropNoFirstMotion is a pick with a blank first-motion column.
	DropNoFirstMotion DropReason = iota
	// DropZeroWeight is a pick whose weight computed to zero.
	DropZeroWeight
	// DropUnknownToken is a pick with an onset, weight or polarity token
	// outside the vocabulary.
	DropUnknownToken
	// DropMalformed is a line that could not be decoded.
	DropMalformed
	// DropOrphan is a pick without a decodable event.
	DropOrphan
	// DropOnset is a QuakeML pick that is neither impulsive nor emergent.
	DropOnset
	// DropMissingAngles is a QuakeML pick without takeoff or azimuth.
	DropMissingAngles
	// DropAngleRange is a pick with a takeoff angle outside [0, 180].
	DropAngleRange
)

var dropReasonNames = map[DropReason]string{
	DropNoFirstMotion: "no_first_motion",
	DropZeroWeight:    "zero_weight",
	DropUnknownToken:  "unknown_token",
	DropMalformed:     "malformed",
	DropOrphan:        "orphan",
	DropOnset:         "onset_filter",
	DropMissingAngles: "missing_angles",
	DropAngleRange:    "angle_range",
}

func (d DropReason) String() string {
	if res, ok := dropReasonNames[d]; ok {
		return res
	}
	return "unknown"
}

// Report collects counts of dropped records of one file.
type Report struct {
	// Dropped counts dropped records by reason.
	Dropped map[DropReason]int

	// SkippedEvents counts event headers that could not be decoded.
	SkippedEvents int
}

// Drop registers a dropped record.
func (r *Report) Drop(reason DropReason) {
	if r.Dropped == nil {
		r.Dropped = make(map[DropReason]int)
	}
	r.Dropped[reason]++
}

// Count returns the number of records dropped for a reason.
func (r *Report) Count(reason DropReason) int {
	return r.Dropped[reason]
}

// Total returns the number of all dropped records.
func (r *Report) Total() int {
	var res int
	for _, v := range r.Dropped {
		res += v
	}
	return res
}

// Reasons returns reasons with non-zero counts in a stable order.
func (r *Report) Reasons() []DropReason {
	var res []DropReason
	for k, v := range r.Dropped {
		if v > 0 {
			res = append(res, k)
		}
	}
	slices.Sort(res)
	return res
}
