package ioexport_test

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/internal/ioexport"
	"github.com/toc2me/polcat/internal/iopolarity"
	"github.com/toc2me/polcat/pkg/config"
	"github.com/toc2me/polcat/pkg/polarity"
)

func nf(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func testCatalog(path string) *polarity.Catalog {
	return &polarity.Catalog{
		Path:   path,
		Format: polarity.NCSN,
		Events: []polarity.CatalogEvent{
			{
				EventID:                 "71234567",
				OriginTime:              time.Date(2019, 5, 12, 3, 14, 12, 340_000_000, time.UTC),
				Latitude:                38.5,
				Longitude:               -122.25,
				DepthKm:                 8,
				HorizontalUncertaintyKm: 0.5,
				VerticalUncertaintyKm:   1,
				Magnitude:               polarity.UnknownMagnitude,
			},
		},
		Picks: []polarity.PolarityPick{
			{
				EventID: "71234567", StationKey: "ABC",
				Network: "NC", Station: "ABC", Location: "01", Channel: "EHZ",
				PPolarity:                1,
				SourceReceiverDistanceKm: nf(123.4),
				TakeoffDeg:               nf(120),
				AzimuthDeg:               nf(200),
			},
			{
				EventID: "71234567", StationKey: "DEF",
				Network: "NC", Station: "DEF", Channel: "EHZ",
				PPolarity: -0.1,
			},
		},
	}
}

func TestWritePicks(t *testing.T) {
	var buf bytes.Buffer
	err := ioexport.WritePicks(&buf, testCatalog("a.arc").Picks, ',')
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		"event_id,network,station,location,channel,sta_code,p_polarity,"+
			"sr_dist_km,takeoff,azimuth,takeoff_uncertainty,azimuth_uncertainty",
		lines[0])
	assert.Equal(t, "71234567,NC,ABC,01,EHZ,ABC,1,123.4,120,200,,", lines[1])
	assert.Equal(t, "71234567,NC,DEF,,EHZ,DEF,-0.1,,,,,", lines[2])
}

func TestWritePicksSecondary(t *testing.T) {
	picks := testCatalog("a.arc").Picks
	picks[1].AltEventID = sql.NullString{String: "x1", Valid: true}
	picks[1].OriginDepthKm = nf(3.25)

	var buf bytes.Buffer
	err := ioexport.WritePicks(&buf, picks, '\t')
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	header := strings.Split(lines[0], "\t")
	assert.Equal(t, "event_id2", header[1])
	assert.Equal(t, "origin_depth_km", header[len(header)-1])
	row := strings.Split(lines[2], "\t")
	require.Len(t, row, len(header))
	assert.Equal(t, "x1", row[1])
	assert.Equal(t, "3.25", row[len(row)-1])
	assert.Equal(t, "", strings.Split(lines[1], "\t")[1])
}

func TestWriteCatalog(t *testing.T) {
	tests := []struct {
		msg, unknown, want string
	}{
		{"numeric", "",
			"2019-05-12 03:14:12.340000,38.5,-122.25,8,0.5,1,-999,71234567"},
		{"placeholder", "--",
			"2019-05-12 03:14:12.340000,38.5,-122.25,8,0.5,1,--,71234567"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var buf bytes.Buffer
			err := ioexport.WriteCatalog(&buf, testCatalog("a.arc").Events,
				',', v.unknown)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, 2)
			assert.Equal(t,
				"time,latitude,longitude,depth,horz_uncert_km,vert_uncert_km,mag,event_id",
				lines[0])
			assert.Equal(t, v.want, lines[1])
		})
	}
}

func TestCSVExport(t *testing.T) {
	dir := t.TempDir()
	exp := ioexport.NewCSV(config.ExportConfig{Dir: dir, Delimiter: ","})

	files, err := exp.Export(testCatalog("/data/north.arc"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "north_pol.csv"), files.Picks)
	assert.Equal(t, filepath.Join(dir, "north_eq_catalog.csv"), files.Catalog)
	assert.FileExists(t, files.Picks)
	assert.FileExists(t, files.Catalog)

	cat := testCatalog("/data/pol.csv")
	cat.Format = polarity.SKHASH
	files, err = exp.Export(cat)
	require.NoError(t, err)
	assert.Empty(t, files.Catalog)
	assert.NoFileExists(t, filepath.Join(dir, "pol_eq_catalog.csv"))
}

func TestCSVExportBadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	exp := ioexport.NewCSV(config.ExportConfig{Dir: dir, Delimiter: ","})
	_, err := exp.Export(testCatalog("a.arc"))
	require.Error(t, err)
}

// Exported pick tables read back as skhash input give the same picks.
func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "input.csv")
	input := `event_id,event_id2,network,station,location,channel,p_polarity,sr_dist_km,takeoff,azimuth,takeoff_uncertainty,azimuth_uncertainty,origin_latitude,origin_longitude,origin_depth_km
1,a,NC,ABC,--,EHZ,0.1,12.345678901234,97.3,359.99,5,,38.123456789,-122.1,
1,,NC,DEF,--,EHZ,-0.3333333333333333,,,,,,,,
2,b,CI,GHI,00,HHZ,1,1e-3,0,0,,7.5,,,4.25
`
	require.NoError(t, os.WriteFile(src, []byte(input), 0644))

	params := polarity.Params{
		Format:    "skhash",
		KeyFields: []string{"network", "station", "location"},
		PWeightI:  1, PWeightE: 0.5,
	}
	first, err := iopolarity.New(params).Read(src)
	require.NoError(t, err)
	require.Len(t, first.Picks, 3)

	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0755))
	exp := ioexport.NewCSV(config.ExportConfig{Dir: outDir, Delimiter: ","})
	files, err := exp.Export(first)
	require.NoError(t, err)

	second, err := iopolarity.New(params).Read(files.Picks)
	require.NoError(t, err)
	assert.Equal(t, first.Picks, second.Picks)
}

func TestSQLiteIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "polcat.db")
	db, err := ioexport.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	cat := testCatalog("a.arc")
	stored, err := db.Export(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, ioexport.Stored{Events: 1, Picks: 2}, stored)

	stored, err = db.Export(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, ioexport.Stored{}, stored)

	cat.Path = "b.arc"
	stored, err = db.Export(ctx, cat)
	require.NoError(t, err)
	assert.Equal(t, ioexport.Stored{Events: 1, Picks: 2}, stored)
}

func TestPickID(t *testing.T) {
	id := ioexport.PickID("a.arc", "1", 0)
	assert.Equal(t, id, ioexport.PickID("a.arc", "1", 0))
	assert.NotEqual(t, id, ioexport.PickID("a.arc", "1", 1))
	assert.NotEqual(t, id, ioexport.PickID("b.arc", "1", 0))
	assert.Len(t, id, 36)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "north", ioexport.Stem("/data/north.arc"))
	assert.Equal(t, "ev1.pol", ioexport.Stem("ev1.pol.hash"))
	assert.Equal(t, "plain", ioexport.Stem("plain"))
}
