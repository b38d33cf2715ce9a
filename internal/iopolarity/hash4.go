package iopolarity

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/toc2me/polcat/pkg/polarity"
)

// pickMarkers are the characters at position 14 that identify a HASH
// driver 4 pick line.
const pickMarkers = "PS+- "

// hash4Decoder reads HASH driver 4 files. There are no terminator lines,
// a hypocenter line closes the previous block and starts a new one.
type hash4Decoder struct {
	blockDecoder
}

func (d *hash4Decoder) decode(r io.Reader) error {
	spec := headerSpecs[polarity.HASH4]
	offsets := polarity.PickOffsets(polarity.HASH4, 0)
	sc := newLineScanner(r)
	for sc.Scan() {
		line := sc.line
		if isBlank(line) {
			continue
		}
		if len(line) < 15 {
			d.drop(sc.num, polarity.DropMalformed,
				fmt.Errorf("line is too short (%d characters)", len(line)))
			continue
		}
		marker := strings.ToUpper(line[14:15])
		if strings.Contains(pickMarkers, marker) {
			d.decodePick(sc.num, offsets.Slice(line))
			continue
		}
		d.closeBlock()
		d.openBlock(line, sc.num, spec)
	}
	d.closeBlock()
	return sc.Err()
}

func (d *hash4Decoder) decodePick(lineNum int, rec polarity.Record) {
	sign, ok := d.sign(lineNum, rec.Raw(polarity.FieldFirstMotion))
	if !ok {
		return
	}

	token := rec.Raw(polarity.FieldOnset)
	w, err := d.weights.Onset(token)
	if errors.Is(err, polarity.ErrBlankToken) {
		w, err = 0, nil
	}
	if w, ok = d.weight(lineNum, w, token, err); !ok {
		return
	}

	pick := polarity.PolarityPick{
		Network:   rec.Text(polarity.FieldNetwork),
		Station:   rec.Text(polarity.FieldStation),
		Channel:   rec.Text(polarity.FieldChannel),
		PPolarity: sign * w,
	}
	d.addPick(lineNum, pick)
}
