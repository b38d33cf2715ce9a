// Package iopolarity implements polarity.Reader for all supported input
// formats. It opens files, dispatches them to a format decoder and
// applies the rules shared by all formats to the decoded picks.
package iopolarity

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/gnames/gn"
	"github.com/toc2me/polcat/pkg/polarity"
)

type reader struct {
	params polarity.Params
}

// decoder reads a file of one format into the catalog it was created
// with.
type decoder interface {
	decode(r io.Reader) error
}

// New creates a Reader for the given decoding parameters. Zero weights
// and a zero station name length are replaced with defaults.
func New(params polarity.Params) polarity.Reader {
	return &reader{params: params.WithDefaults()}
}

// CheckParams reports configuration problems of params the same way Read
// does, without opening a file. The source names where params came
// from.
func CheckParams(source string, params polarity.Params) error {
	f := polarity.NewFormat(params.Format)
	if f == polarity.UnknownFormat {
		return UnknownFormatError(source, params.Format)
	}
	_, err := keyFields(source, f, params.KeyFields)
	return err
}

// Read decodes a file according to the declared format.
func (r *reader) Read(path string) (*polarity.Catalog, error) {
	if err := CheckParams(path, r.params); err != nil {
		return nil, err
	}
	f := polarity.NewFormat(r.params.Format)
	keys, _ := keyFields(path, f, r.params.KeyFields)

	fh, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	defer fh.Close()

	cat := &polarity.Catalog{
		Path:   path,
		Format: f,
		Events: []polarity.CatalogEvent{},
		Picks:  []polarity.PolarityPick{},
	}

	err = r.decoder(f, path, keys, cat).decode(fh)
	if err != nil {
		var gnErr *gn.Error
		if !errors.As(err, &gnErr) {
			err = ReadFileError(path, err)
		}
		return nil, err
	}

	finalize(cat, keys)
	logReport(cat)
	return cat, nil
}

func (r *reader) decoder(
	f polarity.Format,
	path string,
	keys []polarity.KeyField,
	cat *polarity.Catalog,
) decoder {
	b := newBlockDecoder(path, r.params, cat)
	switch f {
	case polarity.NCSN:
		return &ncsnDecoder{blockDecoder: b}
	case polarity.HASH1:
		return &hash1Decoder{blockDecoder: b}
	case polarity.HASH3:
		return &hash3Decoder{blockDecoder: b}
	case polarity.HASH4:
		return &hash4Decoder{blockDecoder: b}
	case polarity.QuakeML:
		return &quakemlDecoder{blockDecoder: b}
	default:
		return &tabularDecoder{path: path, keys: keys, cat: cat}
	}
}

// keyFields validates requested station key fields. An empty request
// selects the station name alone.
func keyFields(
	path string,
	f polarity.Format,
	names []string,
) ([]polarity.KeyField, error) {
	if len(names) == 0 {
		return []polarity.KeyField{polarity.KeyStation}, nil
	}

	res := make([]polarity.KeyField, 0, len(names))
	for _, v := range names {
		k, ok := polarity.NewKeyField(v)
		if !ok || !f.Supports(k) {
			return nil, KeyFieldError(path, f, v)
		}
		res = append(res, k)
	}
	return res, nil
}

// finalize applies angle rules and builds station keys. Picks with a
// takeoff angle outside [0, 180] are dropped. A non-finite azimuth
// becomes null.
func finalize(cat *polarity.Catalog, keys []polarity.KeyField) {
	picks := cat.Picks[:0]
	for _, v := range cat.Picks {
		if v.TakeoffDeg.Valid && !polarity.ValidTakeoff(v.TakeoffDeg.Float64) {
			cat.Report.Drop(polarity.DropAngleRange)
			continue
		}
		if v.AzimuthDeg.Valid {
			az := v.AzimuthDeg.Float64
			if math.IsNaN(az) || math.IsInf(az, 0) {
				v.AzimuthDeg.Valid = false
				v.AzimuthDeg.Float64 = 0
			} else {
				v.AzimuthDeg.Float64 = polarity.NormalizeAzimuth(az)
			}
		}
		v.StationKey = polarity.StationKey(&v, keys)
		picks = append(picks, v)
	}
	cat.Picks = picks
}

func logReport(cat *polarity.Catalog) {
	slog.Info("Decoded file",
		"path", cat.Path,
		"format", cat.Format.String(),
		"events", len(cat.Events),
		"picks", len(cat.Picks),
		"dropped", cat.Report.Total(),
	)

	if cat.Report.SkippedEvents > 0 {
		slog.Warn("Skipped events with malformed headers",
			"path", cat.Path, "count", cat.Report.SkippedEvents)
	}

	for _, v := range cat.Report.Reasons() {
		if v == polarity.DropNoFirstMotion {
			continue
		}
		if v == polarity.DropMissingAngles {
			err := ReferentialWarning(cat.Path, cat.Report.Count(v))
			slog.Warn("Dropped picks", "reason", v.String(), "error", err)
			continue
		}
		slog.Warn("Dropped picks",
			"path", cat.Path, "reason", v.String(), "count", cat.Report.Count(v))
	}
}
