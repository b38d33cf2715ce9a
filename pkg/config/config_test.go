package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/pkg/config"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "polcat"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "polcat"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "polcat", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "polcat", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "skhash", cfg.Ingest.Format)
	assert.Equal(t, []string{"station"}, cfg.Ingest.KeyFields)
	assert.Equal(t, 1.0, cfg.Ingest.PWeightI)
	assert.Equal(t, 0.5, cfg.Ingest.PWeightE)
	assert.True(t, cfg.Ingest.UseWeightCode)
	assert.Equal(t, 5, cfg.Ingest.StationNameLength)

	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, ",", cfg.Export.Delimiter)
	assert.Empty(t, cfg.Export.SQLitePath)
	assert.Empty(t, cfg.Export.MetricsFile)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptIngestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets ncsn", "ncsn", "ncsn"},
		{"sets alias", "hypoinverse", "hypoinverse"},
		{"normalizes case", " QuakeML ", "quakeml"},
		{"ignores unknown", "hash9", "skhash"},
		{"ignores empty", "", "skhash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptIngestFormat(tt.input)})
			assert.Equal(t, tt.expected, cfg.Ingest.Format)
		})
	}
}

func TestOptIngestKeyFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "keeps order",
			input:    []string{"network", "station", "channel"},
			expected: []string{"network", "station", "channel"},
		},
		{
			name:     "normalizes values",
			input:    []string{" Network", "STATION "},
			expected: []string{"network", "station"},
		},
		{
			name:     "rejects unknown field",
			input:    []string{"network", "sensor"},
			expected: []string{"station"},
		},
		{
			name:     "ignores empty",
			input:    nil,
			expected: []string{"station"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptIngestKeyFields(tt.input)})
			assert.Equal(t, tt.expected, cfg.Ingest.KeyFields)
		})
	}
}

func TestOptIngestWeights(t *testing.T) {
	tests := []struct {
		name      string
		impulsive float64
		emergent  float64
		expI      float64
		expE      float64
	}{
		{"sets valid weights", 0.9, 0.3, 0.9, 0.3},
		{"accepts one", 1, 1, 1, 1},
		{"ignores zero", 0, 0, 1.0, 0.5},
		{"ignores above one", 1.5, 2, 1.0, 0.5},
		{"ignores negative", -0.5, -1, 1.0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{
				config.OptIngestPWeightI(tt.impulsive),
				config.OptIngestPWeightE(tt.emergent),
			})
			assert.Equal(t, tt.expI, cfg.Ingest.PWeightI)
			assert.Equal(t, tt.expE, cfg.Ingest.PWeightE)
		})
	}
}

func TestOptIngestStationNameLength(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets legacy width", 4, 4},
		{"ignores zero", 0, 5},
		{"ignores negative", -4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptIngestStationNameLength(tt.input)})
			assert.Equal(t, tt.expected, cfg.Ingest.StationNameLength)
		})
	}
}

func TestOptExportDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets semicolon", ";", ";"},
		{"converts escaped tab", `\t`, "\t"},
		{"ignores multi-char", "||", ","},
		{"ignores empty", "", ","},
		{"ignores quote", `"`, ","},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptExportDelimiter(tt.input)})
			assert.Equal(t, tt.expected, cfg.Export.Delimiter)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"sets error", "error", "error"},
		{"normalizes to lowercase", "WARN", "warn"},
		{"ignores invalid value", "trace", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionLogDestination(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets stderr", "stderr", "stderr"},
		{"sets stdout", "STDOUT", "stdout"},
		{"ignores invalid value", "syslog", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogDestination(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Destination)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid jobs number", 8, 8},
		{"ignores zero", 0, runtime.NumCPU()},
		{"ignores negative", -5, runtime.NumCPU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptJobsNumber(tt.input)})
			assert.Equal(t, tt.expected, cfg.JobsNumber)
		})
	}
}

func TestToOptionsRoundTrip(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptIngestFormat("hash3"),
		config.OptIngestKeyFields([]string{"network", "station"}),
		config.OptIngestPWeightI(0.8),
		config.OptIngestPWeightE(0.2),
		config.OptIngestUseWeightCode(false),
		config.OptIngestStationNameLength(4),
		config.OptExportDir("/tmp/out"),
		config.OptExportDelimiter(";"),
		config.OptExportSQLitePath("/tmp/out/pol.db"),
		config.OptExportMetricsFile("/tmp/out/polcat.prom"),
		config.OptLogLevel("debug"),
		config.OptJobsNumber(3),
		config.OptHomeDir("/home/seismo"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, src.Ingest, dst.Ingest)
	assert.Equal(t, src.Export, dst.Export)
	assert.Equal(t, src.Log, dst.Log)
	assert.Equal(t, src.JobsNumber, dst.JobsNumber)
	assert.Empty(t, dst.HomeDir, "HomeDir is runtime-only")
}
