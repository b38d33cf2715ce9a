// Package polarity defines the canonical data model for P-wave
// first-motion polarities and their earthquake catalogs, together with
// the pure conversion rules shared by all supported input formats.
//
// This package has no I/O dependencies. Decoders that read files live in
// internal/iopolarity and implement the Reader interface.
//
// # Canonical Tables
//
// Every input format is normalized into two tables:
//   - CatalogEvent: one row per earthquake (origin time, hypocenter,
//     uncertainties, magnitude).
//   - PolarityPick: one row per station observation, with a signed and
//     weighted polarity and optional ray geometry.
//
// Optional measurements use sql.NullFloat64. A null value means the format
// did not report the measurement; it is never replaced by a made-up value.
//
// # Conventions
//
//   - Latitude and longitude are signed decimal degrees, south and west
//     negative.
//   - Depth is in km, positive down.
//   - Takeoff angle is measured from downward vertical, in [0, 180].
//   - Azimuth is clockwise from north, in [0, 360).
//   - PPolarity sign is the first motion (+1 up, -1 down), its magnitude
//     is the pick weight.
package polarity

import (
	"database/sql"
	"time"
)

// UnknownMagnitude marks an event without a reported magnitude.
const UnknownMagnitude = -999.0

// CatalogEvent is one earthquake hypocenter with origin time.
type CatalogEvent struct {
	// EventID identifies the event within a batch. It is stable across
	// re-parses of the same file.
	EventID string

	// OriginTime is the origin time in UTC.
	OriginTime time.Time

	// Latitude in signed decimal degrees.
	Latitude float64

	// Longitude in signed decimal degrees.
	Longitude float64

	// DepthKm is the hypocenter depth, positive down.
	DepthKm float64

	// HorizontalUncertaintyKm is 0 when the format does not report it.
	HorizontalUncertaintyKm float64

	// VerticalUncertaintyKm is 0 when the format does not report it.
	VerticalUncertaintyKm float64

	// Magnitude is UnknownMagnitude when absent.
	Magnitude float64
}

// PolarityPick is one first-motion observation at a station.
type PolarityPick struct {
	// EventID refers to CatalogEvent.EventID of the same batch.
	EventID string

	// StationKey joins the requested station identifier components
	// with '.'.
	StationKey string

	// Station identifier components. Empty when a format does not carry
	// the component.
	Network  string
	Station  string
	Location string
	Channel  string

	// PPolarity is the signed weight in [-1, 1].
	PPolarity float64

	SourceReceiverDistanceKm sql.NullFloat64
	TakeoffDeg               sql.NullFloat64
	AzimuthDeg               sql.NullFloat64
	TakeoffUncertaintyDeg    sql.NullFloat64
	AzimuthUncertaintyDeg    sql.NullFloat64

	// Secondary-location fields, only present in tabular inputs that
	// embed their own origin per pick.
	AltEventID      sql.NullString
	OriginLatitude  sql.NullFloat64
	OriginLongitude sql.NullFloat64
	OriginDepthKm   sql.NullFloat64
}

// Component returns the value of a station identifier component.
func (p *PolarityPick) Component(f KeyField) string {
	switch f {
	case KeyNetwork:
		return p.Network
	case KeyStation:
		return p.Station
	case KeyLocation:
		return p.Location
	case KeyChannel:
		return p.Channel
	default:
		return ""
	}
}

// HasSecondaryLocation returns true if any secondary-location field of
// the pick is set.
func (p *PolarityPick) HasSecondaryLocation() bool {
	return p.AltEventID.Valid || p.OriginLatitude.Valid ||
		p.OriginLongitude.Valid || p.OriginDepthKm.Valid
}

// Catalog is the result of decoding one input file.
type Catalog struct {
	// Path of the decoded file.
	Path string

	// Format the file was decoded with.
	Format Format

	// Events are in file order. Tabular inputs produce an empty slice.
	Events []CatalogEvent

	// Picks are in source line order within the file.
	Picks []PolarityPick

	// Report counts records that were dropped during decoding.
	Report Report
}

// Params configure decoding of one file.
type Params struct {
	// Format is the declared format name, aliases are accepted.
	Format string

	// KeyFields are station identifier component names, in the order
	// they are joined into a station key.
	KeyFields []string

	// PWeightI is the weight of impulsive onsets.
	PWeightI float64

	// PWeightE is the weight of emergent onsets.
	PWeightE float64

	// UseWeightCode selects NCSN weighting by numeric quality code.
	UseWeightCode bool

	// StationNameLength is the station column width in HASH driver 3/5
	// pick lines.
	StationNameLength int
}

// DefaultStationNameLength is the station column width of HASH driver
// 3/5 files.
const DefaultStationNameLength = 5

// DefaultParams returns parameters for skhash input with station name
// keys, onset weights 1.0/0.5 and NCSN weight codes.
func DefaultParams() Params {
	w := DefaultWeightPolicy()
	return Params{
		Format:            SKHASH.String(),
		KeyFields:         []string{string(KeyStation)},
		PWeightI:          w.Impulsive,
		PWeightE:          w.Emergent,
		UseWeightCode:     true,
		StationNameLength: DefaultStationNameLength,
	}
}

// WithDefaults returns a copy of p where zero onset weights and a zero
// station name length are taken from DefaultParams.
func (p Params) WithDefaults() Params {
	def := DefaultParams()
	if p.PWeightI == 0 {
		p.PWeightI = def.PWeightI
	}
	if p.PWeightE == 0 {
		p.PWeightE = def.PWeightE
	}
	if p.StationNameLength <= 0 {
		p.StationNameLength = def.StationNameLength
	}
	return p
}

// Weights returns the weight policy described by the parameters.
func (p Params) Weights() WeightPolicy {
	return WeightPolicy{Impulsive: p.PWeightI, Emergent: p.PWeightE}
}

// Reader decodes a polarity file into canonical tables.
type Reader interface {
	// Read decodes a file. Configuration and schema problems are fatal
	// and return no partial result. Problems with individual records are
	// counted in Catalog.Report.
	Read(path string) (*Catalog, error)
}
