package polarity

import (
	"slices"
	"strings"
)

// Format is a closed set of supported input formats.
type Format int

const (
	UnknownFormat Format = iota
	// SKHASH is the modern delimited tabular format.
	SKHASH
	// NCSN is the hypoinverse archive format of the Northern California
	// Seismic Network.
	NCSN
	// HASH1 is the legacy HASH driver 1 format.
	HASH1
	// HASH3 is the legacy HASH driver 2, 3 and 5 format.
	HASH3
	// HASH4 is the legacy HASH driver 4 format.
	HASH4
	// QuakeML is the QuakeML XML event format.
	QuakeML
)

var formatNames = map[string]Format{
	"skhash":      SKHASH,
	"ncsn":        NCSN,
	"hypoinverse": NCSN,
	"hash1":       HASH1,
	"hash2":       HASH3,
	"hash3":       HASH3,
	"hash5":       HASH3,
	"hash4":       HASH4,
	"quakeml":     QuakeML,
}

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{SKHASH, NCSN, HASH1, HASH3, HASH4, QuakeML}
}

// NewFormat converts a format name or alias into a Format.
// Names are case-insensitive. Unknown names return UnknownFormat.
func NewFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))
	if f, ok := formatNames[s]; ok {
		return f
	}
	return UnknownFormat
}

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case SKHASH:
		return "skhash"
	case NCSN:
		return "ncsn"
	case HASH1:
		return "hash1"
	case HASH3:
		return "hash3"
	case HASH4:
		return "hash4"
	case QuakeML:
		return "quakeml"
	default:
		return "unknown"
	}
}

// Aliases returns all names that select the format, sorted.
func (f Format) Aliases() []string {
	var res []string
	for k, v := range formatNames {
		if v == f {
			res = append(res, k)
		}
	}
	slices.Sort(res)
	return res
}

// KeyFields returns station identifier components the format supplies.
// The tabular format supplies whatever columns the file has, so it
// returns all fields and the decoder checks the header instead.
func (f Format) KeyFields() []KeyField {
	switch f {
	case HASH1:
		return []KeyField{KeyStation, KeyChannel}
	case HASH4:
		return []KeyField{KeyNetwork, KeyStation, KeyChannel}
	case SKHASH, NCSN, HASH3, QuakeML:
		return AllKeyFields()
	default:
		return nil
	}
}

// Supports returns true if the format supplies the key field.
func (f Format) Supports(k KeyField) bool {
	return slices.Contains(f.KeyFields(), k)
}

// HasCatalog returns true if the format embeds earthquake events.
func (f Format) HasCatalog() bool {
	switch f {
	case NCSN, HASH1, HASH3, HASH4, QuakeML:
		return true
	default:
		return false
	}
}

// Angles returns the takeoff angle convention of the format.
func (f Format) Angles() AngleConvention {
	switch f {
	case NCSN, HASH1, QuakeML:
		return AngleConvention{TakeoffInverted: true}
	default:
		return AngleConvention{}
	}
}
