package iopolarity

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/toc2me/polcat/pkg/polarity"
)

const maxLineSize = 1024 * 1024

// lineScanner reads a text file line by line, keeping line numbers.
// Trailing carriage returns are removed, other whitespace is kept
// because fixed-width formats depend on it.
type lineScanner struct {
	sc   *bufio.Scanner
	num  int
	line string
}

func newLineScanner(r io.Reader) *lineScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineScanner{sc: sc}
}

func (s *lineScanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.num++
	s.line = strings.TrimRight(s.sc.Text(), "\r")
	return true
}

func (s *lineScanner) Err() error {
	return s.sc.Err()
}

// headerSpec describes how numbers are packed into a fixed-width
// hypocenter line.
type headerSpec struct {
	// twoDigitYear requires century inference.
	twoDigitYear bool
	// blankTimeIsZero treats blank hour and minute as 0.
	blankTimeIsZero bool
	// divisors of implied decimals
	secondDiv, minuteDiv, depthDiv, errDiv, magDiv float64
	// latLonDigits rounds coordinates if positive
	latLonDigits int
}

var headerSpecs = map[polarity.Format]headerSpec{
	polarity.NCSN: {
		secondDiv: 100, minuteDiv: 100, depthDiv: 100, errDiv: 100,
		magDiv: 100, latLonDigits: 6,
	},
	polarity.HASH1: {
		twoDigitYear: true, blankTimeIsZero: true,
		secondDiv: 100, minuteDiv: 100, depthDiv: 100, errDiv: 100,
		magDiv: 10,
	},
	polarity.HASH3: {
		secondDiv: 1, minuteDiv: 1, depthDiv: 1, errDiv: 1, magDiv: 1,
	},
	polarity.HASH4: {
		secondDiv: 100, minuteDiv: 100, depthDiv: 100, errDiv: 100,
		magDiv: 100,
	},
}

// decodeHeader converts a sliced hypocenter line into an event.
// Blank uncertainties become 0 and a blank magnitude becomes
// polarity.UnknownMagnitude.
func decodeHeader(
	rec polarity.Record,
	spec headerSpec,
) (polarity.CatalogEvent, error) {
	var res polarity.CatalogEvent
	var err error

	res.EventID = rec.Text(polarity.FieldEventID)
	if res.EventID == "" {
		return res, errors.New("empty event id")
	}

	year, err := rec.Int(polarity.FieldYear)
	if err != nil {
		return res, err
	}
	if spec.twoDigitYear {
		year = polarity.InferCentury(year)
	}
	month, err := rec.Int(polarity.FieldMonth)
	if err != nil {
		return res, err
	}
	day, err := rec.Int(polarity.FieldDay)
	if err != nil {
		return res, err
	}

	var hour, minute int
	if spec.blankTimeIsZero {
		hour, err = rec.IntOr(polarity.FieldHour, 0)
		if err == nil {
			minute, err = rec.IntOr(polarity.FieldMinute, 0)
		}
	} else {
		hour, err = rec.Int(polarity.FieldHour)
		if err == nil {
			minute, err = rec.Int(polarity.FieldMinute)
		}
	}
	if err != nil {
		return res, err
	}

	second, err := rec.FloatOr(polarity.FieldSecond, 0)
	if err != nil {
		return res, err
	}
	res.OriginTime, err = polarity.AssembleTime(
		year, month, day, hour, minute, polarity.Rescale(second, spec.secondDiv),
	)
	if err != nil {
		return res, err
	}

	res.Latitude, err = coordinate(rec, polarity.FieldLatDeg,
		polarity.FieldLatMin, spec.minuteDiv,
		polarity.LatHemisphere(rec.Raw(polarity.FieldLatHemi)))
	if err != nil {
		return res, err
	}
	res.Longitude, err = coordinate(rec, polarity.FieldLonDeg,
		polarity.FieldLonMin, spec.minuteDiv,
		polarity.LonHemisphere(rec.Raw(polarity.FieldLonHemi)))
	if err != nil {
		return res, err
	}
	if spec.latLonDigits > 0 {
		res.Latitude = polarity.Round(res.Latitude, spec.latLonDigits)
		res.Longitude = polarity.Round(res.Longitude, spec.latLonDigits)
	}

	depth, err := rec.Float(polarity.FieldDepth)
	if err != nil {
		return res, err
	}
	res.DepthKm = polarity.Rescale(depth, spec.depthDiv)

	horz, err := rec.FloatOr(polarity.FieldHorzErr, 0)
	if err != nil {
		return res, err
	}
	vert, err := rec.FloatOr(polarity.FieldVertErr, 0)
	if err != nil {
		return res, err
	}
	res.HorizontalUncertaintyKm = polarity.Rescale(horz, spec.errDiv)
	res.VerticalUncertaintyKm = polarity.Rescale(vert, spec.errDiv)

	res.Magnitude = polarity.UnknownMagnitude
	if !rec.IsBlank(polarity.FieldMagnitude) {
		mag, err := rec.Float(polarity.FieldMagnitude)
		if err != nil {
			return res, err
		}
		res.Magnitude = polarity.Rescale(mag, spec.magDiv)
	}

	return res, nil
}

func coordinate(
	rec polarity.Record,
	degField, minField string,
	minuteDiv float64,
	hemisphere string,
) (float64, error) {
	deg, err := rec.Float(degField)
	if err != nil {
		return 0, err
	}
	minutes, err := rec.FloatOr(minField, 0)
	if err != nil {
		return 0, err
	}
	return polarity.DM2DD(deg, polarity.Rescale(minutes, minuteDiv), hemisphere), nil
}

// nullFloat parses an optional numeric field. Blank values are null.
func nullFloat(
	rec polarity.Record,
	field string,
	divisor float64,
) (sql.NullFloat64, error) {
	var res sql.NullFloat64
	if rec.IsBlank(field) {
		return res, nil
	}
	v, err := rec.Float(field)
	if err != nil {
		return res, err
	}
	res.Float64 = polarity.Rescale(v, divisor)
	res.Valid = true
	return res, nil
}

// blockDecoder holds state shared by the fixed-width decoders: the
// event that owns following pick lines, and bookkeeping of dropped
// records.
type blockDecoder struct {
	path    string
	params  polarity.Params
	weights polarity.WeightPolicy
	cat     *polarity.Catalog

	// eventID of the open block. Empty when no block is open or the
	// header of the block could not be decoded.
	eventID string
	// open is true between a header and its terminator.
	open bool
	seen map[string]struct{}
}

func newBlockDecoder(
	path string,
	params polarity.Params,
	cat *polarity.Catalog,
) blockDecoder {
	return blockDecoder{
		path:    path,
		params:  params,
		weights: params.Weights(),
		cat:     cat,
		seen:    make(map[string]struct{}),
	}
}

// openBlock decodes a header line and starts a new block. A header that
// cannot be decoded opens a block whose picks are dropped.
func (b *blockDecoder) openBlock(line string, lineNum int, spec headerSpec) {
	b.open = true
	b.eventID = ""
	rec := polarity.HeaderOffsets[b.cat.Format].Slice(line)
	ev, err := decodeHeader(rec, spec)
	if err == nil {
		if _, ok := b.seen[ev.EventID]; ok {
			err = fmt.Errorf("duplicate event id '%s'", ev.EventID)
		}
	}
	if err != nil {
		b.cat.Report.SkippedEvents++
		b.logSkip(lineNum, err)
		return
	}
	b.seen[ev.EventID] = struct{}{}
	b.eventID = ev.EventID
	b.cat.Events = append(b.cat.Events, ev)
}

func (b *blockDecoder) closeBlock() {
	b.open = false
	b.eventID = ""
}

// finish reports a block left open at the end of file. Its picks are
// already kept.
func (b *blockDecoder) finish() {
	if b.open {
		slog.Debug("Last block is not terminated",
			"path", b.path, "event_id", b.eventID)
	}
}

// drop registers a dropped pick. Blank first motions are expected and
// not logged.
func (b *blockDecoder) drop(lineNum int, reason polarity.DropReason, err error) {
	b.cat.Report.Drop(reason)
	if reason != polarity.DropNoFirstMotion {
		b.logSkip(lineNum, err)
	}
}

func (b *blockDecoder) logSkip(lineNum int, err error) {
	slog.Debug("Skipped record",
		"format", b.cat.Format.String(),
		"error", RecordDecodeError(b.path, lineNum, err),
	)
}

// addPick attaches a pick to the open block. It returns false when the
// pick has no event.
func (b *blockDecoder) addPick(lineNum int, p polarity.PolarityPick) bool {
	if b.eventID == "" {
		b.drop(lineNum, polarity.DropOrphan,
			errors.New("pick without a decoded event header"))
		return false
	}
	p.EventID = b.eventID
	b.cat.Picks = append(b.cat.Picks, p)
	return true
}

// sign converts a first-motion token, registering dropped picks.
func (b *blockDecoder) sign(lineNum int, token string) (float64, bool) {
	res, err := polarity.FirstMotionSign(token)
	switch {
	case errors.Is(err, polarity.ErrBlankToken):
		b.drop(lineNum, polarity.DropNoFirstMotion, err)
		return 0, false
	case err != nil:
		b.drop(lineNum, polarity.DropUnknownToken,
			fmt.Errorf("first motion '%s': %w", token, err))
		return 0, false
	}
	return res, true
}

// weight checks a computed weight, registering dropped picks.
func (b *blockDecoder) weight(lineNum int, w float64, token string, err error) (float64, bool) {
	if err != nil {
		b.drop(lineNum, polarity.DropUnknownToken,
			fmt.Errorf("weight token '%s': %w", token, err))
		return 0, false
	}
	if w == 0 {
		b.drop(lineNum, polarity.DropZeroWeight,
			fmt.Errorf("weight token '%s' gives zero weight", token))
		return 0, false
	}
	return w, true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
