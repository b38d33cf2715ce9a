package polarity

import (
	"strings"
)

// KeyField is a station identifier component.
type KeyField string

const (
	KeyNetwork  KeyField = "network"
	KeyStation  KeyField = "station"
	KeyLocation KeyField = "location"
	KeyChannel  KeyField = "channel"
)

// StationKeySeparator joins key components of a station key.
const StationKeySeparator = "."

// AllKeyFields returns every station identifier component in canonical
// order.
func AllKeyFields() []KeyField {
	return []KeyField{KeyNetwork, KeyStation, KeyLocation, KeyChannel}
}

// NewKeyField converts a name into a KeyField. The second value is false
// for unknown names.
func NewKeyField(s string) (KeyField, bool) {
	k := KeyField(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KeyNetwork, KeyStation, KeyLocation, KeyChannel:
		return k, true
	default:
		return "", false
	}
}

// StationKey joins the requested components of a pick in the given
// order. The same pick and fields always produce the same key.
func StationKey(p *PolarityPick, fields []KeyField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = p.Component(f)
	}
	return strings.Join(parts, StationKeySeparator)
}
