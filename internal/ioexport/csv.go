// Package ioexport writes canonical polarity tables to delimited text
// files and to a SQLite database.
package ioexport

import (
	"database/sql"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/toc2me/polcat/pkg/config"
	"github.com/toc2me/polcat/pkg/polarity"
)

// CatalogTimeLayout is the time format of exported catalogs.
const CatalogTimeLayout = "2006-01-02 15:04:05.000000"

// File name suffixes of exported tables.
const (
	PicksSuffix   = "_pol.csv"
	CatalogSuffix = "_eq_catalog.csv"
)

// CSV writes pick and catalog tables of decoded files into a directory.
type CSV struct {
	dir   string
	delim rune
}

// Files are paths of the tables written for one input.
type Files struct {
	Picks   string
	Catalog string
}

// NewCSV creates a CSV exporter from export settings.
func NewCSV(cfg config.ExportConfig) *CSV {
	return &CSV{dir: cfg.Dir, delim: Delimiter(cfg.Delimiter)}
}

// Delimiter returns the first character of s, or a comma if s is empty.
func Delimiter(s string) rune {
	res, _ := utf8.DecodeRuneInString(s)
	if res == utf8.RuneError {
		return ','
	}
	return res
}

// Export writes the pick table of a catalog, and its event table when
// the format embeds events. Table names derive from the input file name.
func (c *CSV) Export(cat *polarity.Catalog) (Files, error) {
	var res Files
	stem := Stem(cat.Path)

	res.Picks = filepath.Join(c.dir, stem+PicksSuffix)
	err := writeFile(res.Picks, func(w io.Writer) error {
		return WritePicks(w, cat.Picks, c.delim)
	})
	if err != nil {
		return res, err
	}

	if !cat.Format.HasCatalog() {
		return res, nil
	}
	res.Catalog = filepath.Join(c.dir, stem+CatalogSuffix)
	err = writeFile(res.Catalog, func(w io.Writer) error {
		return WriteCatalog(w, cat.Events, c.delim, "")
	})
	return res, err
}

// Stem returns the file name without directory and last extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ExportCSVError(path, err)
	}
	if err = fn(f); err != nil {
		f.Close()
		return ExportCSVError(path, err)
	}
	if err = f.Close(); err != nil {
		return ExportCSVError(path, err)
	}
	return nil
}

// WritePicks writes picks with SKHASH column names. Secondary-location
// columns are added only if some pick has them. Null values are empty.
func WritePicks(w io.Writer, picks []polarity.PolarityPick, delim rune) error {
	var secondary bool
	for i := range picks {
		if picks[i].HasSecondaryLocation() {
			secondary = true
			break
		}
	}

	header := []string{polarity.ColEventID}
	if secondary {
		header = append(header, polarity.ColEventID2)
	}
	header = append(header,
		polarity.ColNetwork, polarity.ColStation, polarity.ColLocation,
		polarity.ColChannel, polarity.ColStaCode, polarity.ColPPolarity,
		polarity.ColDistance, polarity.ColTakeoff, polarity.ColAzimuth,
		polarity.ColTakeoffUncertainty, polarity.ColAzimuthUncertainty,
	)
	if secondary {
		header = append(header, polarity.ColOriginLatitude,
			polarity.ColOriginLongitude, polarity.ColOriginDepth)
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, 0, len(header))
	for _, p := range picks {
		row = append(row[:0], p.EventID)
		if secondary {
			row = append(row, nullString(p.AltEventID))
		}
		row = append(row,
			p.Network, p.Station, p.Location, p.Channel, p.StationKey,
			formatFloat(p.PPolarity),
			nullFloat(p.SourceReceiverDistanceKm),
			nullFloat(p.TakeoffDeg),
			nullFloat(p.AzimuthDeg),
			nullFloat(p.TakeoffUncertaintyDeg),
			nullFloat(p.AzimuthUncertaintyDeg),
		)
		if secondary {
			row = append(row,
				nullFloat(p.OriginLatitude),
				nullFloat(p.OriginLongitude),
				nullFloat(p.OriginDepthKm),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCatalog writes events in SKHASH eq_catalog layout. If unknownMag
// is not empty it replaces polarity.UnknownMagnitude in the output.
func WriteCatalog(
	w io.Writer,
	events []polarity.CatalogEvent,
	delim rune,
	unknownMag string,
) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(polarity.CatalogColumns); err != nil {
		return err
	}

	for _, v := range events {
		mag := formatFloat(v.Magnitude)
		if unknownMag != "" && v.Magnitude == polarity.UnknownMagnitude {
			mag = unknownMag
		}
		row := []string{
			v.OriginTime.UTC().Format(CatalogTimeLayout),
			formatFloat(v.Latitude),
			formatFloat(v.Longitude),
			formatFloat(v.DepthKm),
			formatFloat(v.HorizontalUncertaintyKm),
			formatFloat(v.VerticalUncertaintyKm),
			mag,
			v.EventID,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatFloat uses the shortest representation that parses back to the
// same value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(v.Float64)
}

func nullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
