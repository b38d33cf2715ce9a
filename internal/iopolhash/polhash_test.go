package iopolhash_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/internal/iopolhash"
	"github.com/toc2me/polcat/pkg/errcode"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for k, v := range files {
		path := filepath.Join(dir, k)
		require.NoError(t, os.WriteFile(path, []byte(v), 0644))
	}
	return dir
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestConvert(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.pol.hash": `2021 7 4 10 30 5.25 35.1 -117.6 4.5
STA3 -
`,
		"a.pol.hash": `2021 7 3 1 2 3.5 35 -117.5 7
STA1 +
STA2 -

STA9 ?
`,
		"notes.txt": "ignored",
	})
	outDir := t.TempDir()

	res, err := iopolhash.New().Convert(dir, outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 2, res.Events)
	assert.Equal(t, 3, res.Picks)
	assert.Equal(t, 1, res.Skipped)

	picks := readLines(t, res.PicksPath)
	require.Len(t, picks, 4)
	assert.Equal(t,
		"event_id,network,station,location,channel,sta_code,p_polarity,"+
			"sr_dist_km,takeoff,azimuth,takeoff_uncertainty,azimuth_uncertainty",
		picks[0])
	assert.Equal(t, "1,5B,STA1,--,DHZ,STA1,1,,,,,", picks[1])
	assert.Equal(t, "1,5B,STA2,--,DHZ,STA2,-1,,,,,", picks[2])
	assert.Equal(t, "2,5B,STA3,--,DHZ,STA3,-1,,,,,", picks[3])

	catalog := readLines(t, res.CatalogPath)
	require.Len(t, catalog, 3)
	assert.Equal(t,
		"time,latitude,longitude,depth,horz_uncert_km,vert_uncert_km,mag,event_id",
		catalog[0])
	assert.Equal(t,
		"2021-07-03 01:02:03.500000,35,-117.5,7,0,0,--,1", catalog[1])
	assert.Equal(t,
		"2021-07-04 10:30:05.250000,35.1,-117.6,4.5,0,0,--,2", catalog[2])
}

func TestConvertOptions(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"e.pol.hash": "2020 1 1 0 0 0 10 20 5\nXYZ +\n",
	})
	outDir := t.TempDir()

	c := iopolhash.New(
		iopolhash.OptNetwork("XX"),
		iopolhash.OptLocation("00"),
		iopolhash.OptChannel("HHZ"),
		iopolhash.OptDelimiter(';'),
	)
	res, err := c.Convert(dir, outDir)
	require.NoError(t, err)

	picks := readLines(t, res.PicksPath)
	assert.Equal(t, "1;XX;XYZ;00;HHZ;XYZ;1;;;;;", picks[1])
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		msg   string
		files map[string]string
		code  gn.ErrorCode
		err   string
	}{
		{
			"no files",
			map[string]string{"a.txt": "x"},
			errcode.PolHashNoFilesError,
			"no .pol.hash files",
		},
		{
			"short header",
			map[string]string{"a.pol.hash": "2020 1 1 0 0 0 10 20\n"},
			errcode.PolHashParseError,
			"expected 9 header fields, got 8",
		},
		{
			"bad number",
			map[string]string{"a.pol.hash": "2020 1 1 0 0 0 ten 20 5\n"},
			errcode.PolHashParseError,
			"cannot parse 'ten' as number",
		},
		{
			"bad date",
			map[string]string{"a.pol.hash": "2020 2 30 0 0 0 10 20 5\n"},
			errcode.PolHashParseError,
			"day 30 out of range",
		},
		{
			"empty",
			map[string]string{"a.pol.hash": ""},
			errcode.PolHashParseError,
			"file is empty",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			dir := writeFiles(t, v.files)
			_, err := iopolhash.New().Convert(dir, t.TempDir())
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Err.Error(), v.err)
		})
	}
}
