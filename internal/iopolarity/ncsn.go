package iopolarity

import (
	"errors"
	"io"
	"strings"

	"github.com/toc2me/polcat/pkg/polarity"
)

// ncsnDecoder reads hypoinverse archive files: a hypocenter line,
// its phase lines, and a terminator line that starts with three spaces.
// A phase line has a space within its first 10 characters.
type ncsnDecoder struct {
	blockDecoder
}

func (d *ncsnDecoder) decode(r io.Reader) error {
	spec := headerSpecs[polarity.NCSN]
	offsets := polarity.PickOffsets(polarity.NCSN, 0)
	sc := newLineScanner(r)
	for sc.Scan() {
		line := sc.line
		switch {
		// '$' starts hypoinverse shadow records
		case line == "" || strings.HasPrefix(line, "$"):
			continue
		case strings.HasPrefix(line, "   ") || isBlank(line):
			d.closeBlock()
		case strings.Contains(polarity.Cut(line, 0, 10), " "):
			d.decodePick(sc.num, offsets.Slice(line))
		default:
			d.openBlock(line, sc.num, spec)
		}
	}
	d.finish()
	return sc.Err()
}

func (d *ncsnDecoder) decodePick(lineNum int, rec polarity.Record) {
	sign, ok := d.sign(lineNum, rec.Raw(polarity.FieldFirstMotion))
	if !ok {
		return
	}

	var w float64
	var err error
	var token string
	if d.params.UseWeightCode {
		token = rec.Raw(polarity.FieldWeightCode)
		w, err = polarity.WeightCode(token)
	} else {
		token = rec.Raw(polarity.FieldOnset)
		w, err = d.weights.Onset(token)
		// a blank onset counts as emergent
		if errors.Is(err, polarity.ErrBlankToken) {
			w, err = d.weights.Emergent, nil
		}
	}
	if w, ok = d.weight(lineNum, w, token, err); !ok {
		return
	}

	pick := polarity.PolarityPick{
		Network:   rec.Text(polarity.FieldNetwork),
		Station:   rec.Text(polarity.FieldStation),
		Location:  rec.Text(polarity.FieldLocation),
		Channel:   rec.Text(polarity.FieldChannel),
		PPolarity: sign * w,
	}

	pick.SourceReceiverDistanceKm, err = nullFloat(rec, polarity.FieldDistance, 10)
	if err == nil {
		pick.TakeoffDeg, err = nullFloat(rec, polarity.FieldTakeoff, 1)
	}
	if err == nil {
		pick.AzimuthDeg, err = nullFloat(rec, polarity.FieldAzimuth, 1)
	}
	if err != nil {
		d.drop(lineNum, polarity.DropMalformed, err)
		return
	}
	if pick.TakeoffDeg.Valid {
		conv := polarity.NCSN.Angles()
		pick.TakeoffDeg.Float64 = conv.Takeoff(pick.TakeoffDeg.Float64)
	}

	d.addPick(lineNum, pick)
}
