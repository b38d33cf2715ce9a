// Package config provides configuration management for polcat.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Ingest: format, key_fields, p_weight_i, p_weight_e, use_weight_code,
//     station_name_length
//   - Export: dir, delimiter, sqlite_path, metrics_file
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use POLCAT_ prefix with underscores for nesting:
//
//	POLCAT_INGEST_FORMAT=ncsn
//	POLCAT_INGEST_P_WEIGHT_E=0.5
//	POLCAT_LOG_LEVEL=info
//	POLCAT_JOBS_NUMBER=8
package config

import (
	"runtime"
	"slices"

	"github.com/toc2me/polcat/pkg/polarity"
)

// Config represents the complete polcat configuration.
type Config struct {
	// Ingest contains settings for decoding polarity files.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	// Export contains settings for writing normalized tables.
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of files decoded concurrently during
	// batch ingestion. Default value is set according to the number of
	// available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// IngestConfig contains the decoding parameters shared by all inputs
// unless a manifest entry overrides them.
type IngestConfig struct {
	// Format is the declared format of input files.
	// Valid values: skhash, ncsn, hypoinverse, hash1, hash2, hash3,
	// hash4, hash5, quakeml.
	Format string `mapstructure:"format" yaml:"format"`

	// KeyFields are the station identifier components joined with '.'
	// into a station key. Valid values: network, station, location,
	// channel.
	KeyFields []string `mapstructure:"key_fields" yaml:"key_fields"`

	// PWeightI is the weight of impulsive onsets, in (0, 1].
	PWeightI float64 `mapstructure:"p_weight_i" yaml:"p_weight_i"`

	// PWeightE is the weight of emergent onsets, in (0, 1].
	PWeightE float64 `mapstructure:"p_weight_e" yaml:"p_weight_e"`

	// UseWeightCode makes NCSN picks weighted by their numeric quality
	// code instead of the onset letter.
	UseWeightCode bool `mapstructure:"use_weight_code" yaml:"use_weight_code"`

	// StationNameLength is the width of the station column in HASH
	// driver 3/5 pick lines. Older files use 4.
	StationNameLength int `mapstructure:"station_name_length" yaml:"station_name_length"`
}

// Params converts ingest settings into decoding parameters.
func (i IngestConfig) Params() polarity.Params {
	return polarity.Params{
		Format:            i.Format,
		KeyFields:         slices.Clone(i.KeyFields),
		PWeightI:          i.PWeightI,
		PWeightE:          i.PWeightE,
		UseWeightCode:     i.UseWeightCode,
		StationNameLength: i.StationNameLength,
	}
}

// ExportConfig determines where and how normalized tables are written.
type ExportConfig struct {
	// Dir is the directory for CSV outputs.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Delimiter separates fields of CSV outputs.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`

	// SQLitePath, if not empty, is a SQLite database that receives
	// events and picks in addition to CSV files.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	// MetricsFile, if not empty, receives ingestion counters in
	// Prometheus text format.
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	def := polarity.DefaultParams()
	res := &Config{
		Ingest: IngestConfig{
			Format:            def.Format,
			KeyFields:         def.KeyFields,
			PWeightI:          def.PWeightI,
			PWeightE:          def.PWeightE,
			UseWeightCode:     def.UseWeightCode,
			StationNameLength: def.StationNameLength,
		},
		Export: ExportConfig{
			Dir:       ".",
			Delimiter: ",",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
