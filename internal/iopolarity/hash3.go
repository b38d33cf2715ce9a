package iopolarity

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/toc2me/polcat/pkg/polarity"
)

// hashLocation is the location code of HASH driver 3/5 picks, which
// have no location column.
const hashLocation = "--"

// hash3Decoder reads HASH driver 2, 3 and 5 files: a hypocenter line
// with free-precision numbers, its pick lines, and a terminator line that
// starts with four spaces.
type hash3Decoder struct {
	blockDecoder
}

func (d *hash3Decoder) decode(r io.Reader) error {
	spec := headerSpecs[polarity.HASH3]
	offsets := polarity.PickOffsets(polarity.HASH3, d.params.StationNameLength)
	sc := newLineScanner(r)
	for sc.Scan() {
		line := sc.line
		switch {
		case !d.open:
			if isBlank(line) {
				continue
			}
			d.openBlock(line, sc.num, spec)
		case strings.HasPrefix(line, "    ") || isBlank(line):
			d.closeBlock()
		default:
			d.decodePick(sc.num, offsets.Slice(line))
		}
	}
	d.finish()
	return sc.Err()
}

func (d *hash3Decoder) decodePick(lineNum int, rec polarity.Record) {
	sign, ok := d.sign(lineNum, rec.Raw(polarity.FieldFirstMotion))
	if !ok {
		return
	}

	token := rec.Raw(polarity.FieldOnset)
	w, err := d.weights.Onset(token)
	if errors.Is(err, polarity.ErrBlankToken) {
		err = fmt.Errorf("blank onset: %w", polarity.ErrUnknownToken)
	}
	if w, ok = d.weight(lineNum, w, token, err); !ok {
		return
	}

	pick := polarity.PolarityPick{
		Network:   rec.Text(polarity.FieldNetwork),
		Station:   rec.Text(polarity.FieldStation),
		Location:  hashLocation,
		Channel:   rec.Text(polarity.FieldChannel),
		PPolarity: sign * w,
	}
	d.addPick(lineNum, pick)
}
