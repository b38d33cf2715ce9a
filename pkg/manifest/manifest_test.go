package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/pkg/config"
	"github.com/toc2me/polcat/pkg/manifest"
)

func ptr[T any](v T) *T {
	return &v
}

func TestValidate(t *testing.T) {
	tests := []struct {
		msg      string
		input    manifest.Input
		err      string
		warnings int
	}{
		{"ok", manifest.Input{Path: "a.arc", Format: "ncsn"}, "", 0},
		{"no path", manifest.Input{Format: "ncsn"}, "path is required", 0},
		{"no format", manifest.Input{Path: "a"}, "format is required", 0},
		{"bad format", manifest.Input{Path: "a", Format: "hash9"},
			"unknown format", 0},
		{"bad key", manifest.Input{Path: "a", Format: "ncsn",
			KeyFields: []string{"sensor"}}, "unknown key field", 0},
		{"unsupported key", manifest.Input{Path: "a", Format: "hash1",
			KeyFields: []string{"network"}}, "not supplied", 0},
		{"bad weight", manifest.Input{Path: "a", Format: "ncsn",
			PWeightE: ptr(1.5)}, "p_weight_e", 0},
		{"bad length", manifest.Input{Path: "a", Format: "hash3",
			StationNameLength: ptr(0)}, "station_name_length", 0},
		{"weight code on hash3", manifest.Input{Path: "a", Format: "hash3",
			UseWeightCode: ptr(false)}, "", 1},
		{"station length on ncsn", manifest.Input{Path: "a", Format: "ncsn",
			StationNameLength: ptr(4)}, "", 1},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			m := manifest.Manifest{Inputs: []manifest.Input{v.input}}
			err := m.Validate()
			if v.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), v.err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, m.Warnings, v.warnings)
		})
	}
}

func TestValidateEmpty(t *testing.T) {
	m := manifest.Manifest{}
	assert.Error(t, m.Validate())
}

func TestValidateDuplicate(t *testing.T) {
	m := manifest.Manifest{Inputs: []manifest.Input{
		{Path: "a.arc", Format: "ncsn"},
		{Path: "a.arc", Format: "ncsn"},
	}}
	require.NoError(t, m.Validate())
	require.Len(t, m.Warnings, 1)
	assert.Equal(t, 2, m.Warnings[0].Input)
	assert.Equal(t, "path", m.Warnings[0].Field)
}

func TestParams(t *testing.T) {
	base := config.New().Ingest

	in := manifest.Input{Path: "a", Format: "hash3"}
	p := in.Params(base)
	assert.Equal(t, "hash3", p.Format)
	assert.Equal(t, []string{"station"}, p.KeyFields)
	assert.Equal(t, 1.0, p.PWeightI)
	assert.Equal(t, 0.5, p.PWeightE)
	assert.True(t, p.UseWeightCode)
	assert.Equal(t, 5, p.StationNameLength)

	in = manifest.Input{
		Path: "a", Format: "ncsn",
		KeyFields:         []string{"network", "station"},
		PWeightI:          ptr(0.8),
		PWeightE:          ptr(0.2),
		UseWeightCode:     ptr(false),
		StationNameLength: ptr(4),
	}
	p = in.Params(base)
	assert.Equal(t, []string{"network", "station"}, p.KeyFields)
	assert.Equal(t, 0.8, p.PWeightI)
	assert.Equal(t, 0.2, p.PWeightE)
	assert.False(t, p.UseWeightCode)
	assert.Equal(t, 4, p.StationNameLength)

	// base settings are not changed
	assert.Equal(t, []string{"station"}, base.KeyFields)
}
