package iopolarity

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/toc2me/polcat/pkg/polarity"
)

// tabularDecoder reads the SKHASH delimited polarity format. Values are
// taken as they are, the format is already normalized.
type tabularDecoder struct {
	path string
	keys []polarity.KeyField
	cat  *polarity.Catalog
	cols map[string]int
}

func (d *tabularDecoder) decode(r io.Reader) error {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return SchemaError(d.path, "header row", errors.New("file is empty"))
	}
	if err != nil {
		return SchemaError(d.path, "header row", err)
	}
	if err = d.readHeader(header); err != nil {
		return err
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				d.drop(perr.Line, polarity.DropMalformed, err)
				continue
			}
			return err
		}
		line, _ := cr.FieldPos(0)
		pick, err := d.decodeRow(row)
		if err != nil {
			d.drop(line, polarity.DropMalformed, err)
			continue
		}
		d.cat.Picks = append(d.cat.Picks, pick)
	}
	return nil
}

func (d *tabularDecoder) readHeader(header []string) error {
	d.cols = make(map[string]int)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i, v := range header {
		name := strings.TrimSpace(v)
		if !slices.Contains(polarity.TabularColumns, name) {
			continue
		}
		if _, ok := d.cols[name]; !ok {
			d.cols[name] = i
		}
	}

	for _, v := range polarity.RequiredTabularColumns {
		if _, ok := d.cols[v]; !ok {
			return SchemaError(d.path, "column "+v,
				fmt.Errorf("column '%s' not found in header", v))
		}
	}
	for _, v := range d.keys {
		if _, ok := d.cols[string(v)]; !ok {
			return SchemaError(d.path, "column "+string(v),
				fmt.Errorf("station key column '%s' not found in header", v))
		}
	}
	return nil
}

func (d *tabularDecoder) decodeRow(row []string) (polarity.PolarityPick, error) {
	var res polarity.PolarityPick
	var err error

	res.EventID = d.text(row, polarity.ColEventID)
	if res.EventID == "" {
		return res, errors.New("empty event_id")
	}

	pol, err := d.float(row, polarity.ColPPolarity)
	if err != nil {
		return res, err
	}
	if !pol.Valid {
		return res, errors.New("empty p_polarity")
	}
	if pol.Float64 < -1 || pol.Float64 > 1 {
		return res, fmt.Errorf("p_polarity %v is outside [-1, 1]", pol.Float64)
	}
	res.PPolarity = pol.Float64

	res.Network = d.text(row, polarity.ColNetwork)
	res.Station = d.text(row, polarity.ColStation)
	res.Location = d.text(row, polarity.ColLocation)
	res.Channel = d.text(row, polarity.ColChannel)

	if id2 := d.text(row, polarity.ColEventID2); id2 != "" {
		res.AltEventID = sql.NullString{String: id2, Valid: true}
	}

	floats := []struct {
		col string
		dst *sql.NullFloat64
	}{
		{polarity.ColDistance, &res.SourceReceiverDistanceKm},
		{polarity.ColTakeoff, &res.TakeoffDeg},
		{polarity.ColAzimuth, &res.AzimuthDeg},
		{polarity.ColTakeoffUncertainty, &res.TakeoffUncertaintyDeg},
		{polarity.ColAzimuthUncertainty, &res.AzimuthUncertaintyDeg},
		{polarity.ColOriginLatitude, &res.OriginLatitude},
		{polarity.ColOriginLongitude, &res.OriginLongitude},
		{polarity.ColOriginDepth, &res.OriginDepthKm},
	}
	for _, v := range floats {
		if *v.dst, err = d.float(row, v.col); err != nil {
			return res, err
		}
	}
	return res, nil
}

// text returns a trimmed value, or an empty string when the column is
// absent.
func (d *tabularDecoder) text(row []string, col string) string {
	i, ok := d.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// float parses an optional number. Absent columns, empty values and NaN
// are null.
func (d *tabularDecoder) float(row []string, col string) (sql.NullFloat64, error) {
	var res sql.NullFloat64
	s := d.text(row, col)
	if s == "" {
		return res, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return res, fmt.Errorf("column %s: cannot parse '%s' as number", col, s)
	}
	if math.IsNaN(f) {
		return res, nil
	}
	res.Float64 = f
	res.Valid = true
	return res, nil
}

func (d *tabularDecoder) drop(line int, reason polarity.DropReason, err error) {
	d.cat.Report.Drop(reason)
	slog.Debug("Skipped record",
		"format", polarity.SKHASH.String(),
		"error", RecordDecodeError(d.path, line, err),
	)
}
