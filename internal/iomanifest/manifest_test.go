package iomanifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/pkg/errcode"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `
inputs:
  - path: north/2019.arc
    format: ncsn
    key_fields: [network, station]
    use_weight_code: false
  - path: /data/toc2me.hash3
    format: hash3
    station_name_length: 4
    p_weight_e: 0.25
`)

	m, err := New().Load(path)
	require.NoError(t, err)
	require.Len(t, m.Inputs, 2)

	in := m.Inputs[0]
	assert.Equal(t, filepath.Join(filepath.Dir(path), "north", "2019.arc"), in.Path)
	assert.Equal(t, "ncsn", in.Format)
	assert.Equal(t, []string{"network", "station"}, in.KeyFields)
	require.NotNil(t, in.UseWeightCode)
	assert.False(t, *in.UseWeightCode)
	assert.Nil(t, in.PWeightI)

	in = m.Inputs[1]
	assert.Equal(t, "/data/toc2me.hash3", in.Path)
	require.NotNil(t, in.StationNameLength)
	assert.Equal(t, 4, *in.StationNameLength)
	require.NotNil(t, in.PWeightE)
	assert.Equal(t, 0.25, *in.PWeightE)
	assert.Empty(t, m.Warnings)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		msg, content string
	}{
		{"empty", ""},
		{"no inputs", "inputs: []\n"},
		{"bad yaml", "inputs: [\n"},
		{"unknown field", "inputs:\n  - path: a\n    format: ncsn\n    colour: red\n"},
		{"no format", "inputs:\n  - path: a\n"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			path := writeManifest(t, v.content)
			m, err := New().Load(path)
			require.Error(t, err)
			assert.Nil(t, m)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.ManifestConfigError, gnErr.Code)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.yaml")
	_, err := New().Load(path)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Contains(t, gnErr.Err.Error(), "failed to read manifest file")
}
