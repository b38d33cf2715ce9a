package iopolarity

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/toc2me/polcat/pkg/polarity"
)

var quakemlTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// quakemlDecoder reads QuakeML event parameters. The namespace of the
// document is taken from the first child of the root element.
type quakemlDecoder struct {
	blockDecoder
	q *xmlPaths
}

func (d *quakemlDecoder) decode(r io.Reader) error {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return SchemaError(d.path, "XML document", err)
	}
	root := firstElement(doc)
	if root == nil {
		return SchemaError(d.path, "XML document",
			errors.New("document has no root element"))
	}
	first := firstElement(root)
	if first == nil {
		return SchemaError(d.path, "eventParameters",
			errors.New("root element has no children"))
	}
	d.q = newXMLPaths(first.NamespaceURI)
	if _, err = d.q.compile("eventParameters"); err != nil {
		return SchemaError(d.path, "eventParameters", err)
	}

	params := d.q.find(root, "eventParameters")
	if params == nil {
		return SchemaError(d.path, "eventParameters",
			errors.New("eventParameters element not found"))
	}

	for i, ev := range d.q.all(params, "event") {
		d.decodeEvent(i+1, ev)
	}
	return nil
}

// decodeEvent adds an event and its picks. The record number is the
// position of the event in the document.
func (d *quakemlDecoder) decodeEvent(num int, el *xmlquery.Node) {
	d.eventID = ""
	ev, origin, err := d.event(el)
	if err == nil {
		if _, ok := d.seen[ev.EventID]; ok {
			err = fmt.Errorf("duplicate event id '%s'", ev.EventID)
		}
	}
	if err != nil {
		d.cat.Report.SkippedEvents++
		d.logSkip(num, err)
		for range d.q.all(el, "pick") {
			d.cat.Report.Drop(polarity.DropOrphan)
		}
		return
	}
	d.seen[ev.EventID] = struct{}{}
	d.eventID = ev.EventID
	d.cat.Events = append(d.cat.Events, ev)

	// Arrivals are matched to picks by position, not by pickID.
	arrivals := d.q.all(origin, "arrival")
	for i, pel := range d.q.all(el, "pick") {
		var arr *xmlquery.Node
		if i < len(arrivals) {
			arr = arrivals[i]
		}
		d.decodePick(num, pel, arr)
	}
}

func (d *quakemlDecoder) event(
	el *xmlquery.Node,
) (polarity.CatalogEvent, *xmlquery.Node, error) {
	var res polarity.CatalogEvent
	var err error

	publicID := attr(el, "publicID")
	if publicID == "" {
		return res, nil, errors.New("event has no publicID")
	}
	res.EventID = eventIDFromResource(publicID)

	origin := d.q.find(el, "origin")
	if origin == nil {
		return res, nil, errors.New("event has no origin")
	}

	ts, ok := d.q.text(origin, "time", "value")
	if !ok {
		return res, nil, errors.New("origin has no time")
	}
	if res.OriginTime, err = parseQuakemlTime(ts); err != nil {
		return res, nil, err
	}

	values := []struct {
		name string
		dst  *float64
	}{
		{"latitude", &res.Latitude},
		{"longitude", &res.Longitude},
		{"depth", &res.DepthKm},
	}
	for _, v := range values {
		s, ok := d.q.text(origin, v.name, "value")
		if !ok {
			return res, nil, fmt.Errorf("origin has no %s", v.name)
		}
		if *v.dst, err = strconv.ParseFloat(s, 64); err != nil {
			return res, nil, fmt.Errorf("origin %s '%s': %w", v.name, s, err)
		}
	}
	res.DepthKm /= 1000

	res.Magnitude = polarity.UnknownMagnitude
	if s, ok := d.q.text(el, "magnitude", "mag", "value"); ok {
		if res.Magnitude, err = strconv.ParseFloat(s, 64); err != nil {
			return res, nil, fmt.Errorf("magnitude '%s': %w", s, err)
		}
	}

	return res, origin, nil
}

func (d *quakemlDecoder) decodePick(num int, el, arrival *xmlquery.Node) {
	onset, _ := d.q.text(el, "onset")
	switch strings.ToLower(onset) {
	case "impulsive", "emergent":
	default:
		d.cat.Report.Drop(polarity.DropOnset)
		return
	}

	azimuth, okAz := d.q.text(arrival, "azimuth")
	takeoff, okTo := d.q.text(arrival, "takeoffAngle", "value")
	if !okTo {
		takeoff, okTo = d.q.text(arrival, "takeoffAngle")
	}
	if !okAz || !okTo {
		// counted and reported once per file
		d.cat.Report.Drop(polarity.DropMissingAngles)
		return
	}

	pol, _ := d.q.text(el, "polarity")
	sign, ok := d.sign(num, pol)
	if !ok {
		return
	}
	w, err := d.weights.Onset(onset)
	if w, ok = d.weight(num, w, onset, err); !ok {
		return
	}

	pick := polarity.PolarityPick{PPolarity: sign * w}
	if wf := d.q.find(el, "waveformID"); wf != nil {
		pick.Network = attr(wf, "networkCode")
		pick.Station = attr(wf, "stationCode")
		pick.Location = attr(wf, "locationCode")
		pick.Channel = attr(wf, "channelCode")
	}

	to, err := strconv.ParseFloat(takeoff, 64)
	if err != nil {
		d.drop(num, polarity.DropMalformed, fmt.Errorf("takeoff '%s': %w", takeoff, err))
		return
	}
	az, err := strconv.ParseFloat(azimuth, 64)
	if err != nil {
		d.drop(num, polarity.DropMalformed, fmt.Errorf("azimuth '%s': %w", azimuth, err))
		return
	}
	conv := polarity.QuakeML.Angles()
	pick.TakeoffDeg = sql.NullFloat64{Float64: conv.Takeoff(to), Valid: true}
	pick.AzimuthDeg = sql.NullFloat64{Float64: az, Valid: true}

	// distance is kept in the units of the document
	if s, ok := d.q.text(arrival, "distance"); ok {
		dist, err := strconv.ParseFloat(s, 64)
		if err != nil {
			d.drop(num, polarity.DropMalformed, fmt.Errorf("distance '%s': %w", s, err))
			return
		}
		pick.SourceReceiverDistanceKm = sql.NullFloat64{Float64: dist, Valid: true}
	}

	d.addPick(num, pick)
}

// eventIDFromResource joins the last two path segments of a resource
// identifier and lower-cases the result, e.g.
// "smi:local/Event/ABC123" becomes "eventabc123".
func eventIDFromResource(publicID string) string {
	parts := strings.Split(publicID, "/")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	return strings.ToLower(strings.Join(parts, ""))
}

func parseQuakemlTime(s string) (time.Time, error) {
	for _, v := range quakemlTimeLayouts {
		if t, err := time.Parse(v, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse origin time '%s'", s)
}
