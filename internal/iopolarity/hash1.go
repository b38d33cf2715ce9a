package iopolarity

import (
	"database/sql"
	"io"
	"strings"

	"github.com/toc2me/polcat/pkg/polarity"
)

// hash1Decoder reads HASH driver 1 files. Lines strictly alternate
// between one hypocenter line, its pick lines, and a terminator line
// that starts with three spaces.
type hash1Decoder struct {
	blockDecoder
}

func (d *hash1Decoder) decode(r io.Reader) error {
	spec := headerSpecs[polarity.HASH1]
	offsets := polarity.PickOffsets(polarity.HASH1, 0)
	sc := newLineScanner(r)
	for sc.Scan() {
		line := sc.line
		switch {
		case !d.open:
			if isBlank(line) {
				continue
			}
			d.openBlock(line, sc.num, spec)
		case strings.HasPrefix(line, "   ") || isBlank(line):
			d.closeBlock()
		default:
			d.decodePick(sc.num, offsets.Slice(line))
		}
	}
	d.finish()
	return sc.Err()
}

func (d *hash1Decoder) decodePick(lineNum int, rec polarity.Record) {
	sign, ok := d.sign(lineNum, rec.Raw(polarity.FieldFirstMotion))
	if !ok {
		return
	}

	token := rec.Raw(polarity.FieldWeightCode)
	w, err := polarity.WeightCode(token)
	if w, ok = d.weight(lineNum, w, token, err); !ok {
		return
	}

	pick := polarity.PolarityPick{
		Station:   rec.Text(polarity.FieldStation),
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
	if err == nil {
		pick.TakeoffUncertaintyDeg, err = implicitZero(rec, polarity.FieldTakeoffUncer)
	}
	if err == nil {
		pick.AzimuthUncertaintyDeg, err = implicitZero(rec, polarity.FieldAzimuthUncer)
	}
	if err != nil {
		d.drop(lineNum, polarity.DropMalformed, err)
		return
	}
	if pick.TakeoffDeg.Valid {
		conv := polarity.HASH1.Angles()
		pick.TakeoffDeg.Float64 = conv.Takeoff(pick.TakeoffDeg.Float64)
	}

	d.addPick(lineNum, pick)
}

// implicitZero parses an uncertainty column where blank means 0.
func implicitZero(rec polarity.Record, field string) (sql.NullFloat64, error) {
	v, err := rec.FloatOr(field, 0)
	if err != nil {
		return sql.NullFloat64{}, err
	}
	return sql.NullFloat64{Float64: v, Valid: true}, nil
}
