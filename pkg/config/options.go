package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptIngestFormat sets the declared format of input files.
// Valid values: skhash, ncsn, hypoinverse, hash1..hash5, quakeml.
func OptIngestFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Ingest.Format", s) {
			c.Ingest.Format = s
		}
	}
}

// OptIngestKeyFields sets the station identifier components used to
// build station keys. The order of fields is preserved.
func OptIngestKeyFields(ss []string) Option {
	var fields []string
	for _, v := range ss {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			fields = append(fields, v)
		}
	}
	return func(c *Config) {
		if len(fields) == 0 {
			return
		}
		for _, v := range fields {
			if !isValidEnum("Ingest.KeyFields", v) {
				return
			}
		}
		c.Ingest.KeyFields = fields
	}
}

// OptIngestPWeightI sets the weight of impulsive onsets.
func OptIngestPWeightI(f float64) Option {
	return func(c *Config) {
		if isValidWeight("Ingest PWeightI", f) {
			c.Ingest.PWeightI = f
		}
	}
}

// OptIngestPWeightE sets the weight of emergent onsets.
func OptIngestPWeightE(f float64) Option {
	return func(c *Config) {
		if isValidWeight("Ingest PWeightE", f) {
			c.Ingest.PWeightE = f
		}
	}
}

// OptIngestUseWeightCode switches NCSN weighting between numeric
// quality codes (true) and onset letters (false).
func OptIngestUseWeightCode(b bool) Option {
	return func(c *Config) {
		c.Ingest.UseWeightCode = b
	}
}

// OptIngestStationNameLength sets the station column width of HASH
// driver 3/5 pick lines.
func OptIngestStationNameLength(i int) Option {
	return func(c *Config) {
		if isValidInt("Ingest StationNameLength", i) {
			c.Ingest.StationNameLength = i
		}
	}
}

// OptExportDir sets the directory for CSV outputs.
func OptExportDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Export Dir", s) {
			c.Export.Dir = s
		}
	}
}

// OptExportDelimiter sets the field delimiter of CSV outputs.
// It has to be a single character.
func OptExportDelimiter(s string) Option {
	if s == `\t` {
		s = "\t"
	}
	return func(c *Config) {
		if isValidDelimiter(s) {
			c.Export.Delimiter = s
		}
	}
}

// OptExportSQLitePath sets the SQLite database for exported tables.
// An empty string disables the SQLite output.
func OptExportSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Export.SQLitePath = s
	}
}

// OptExportMetricsFile sets the file for Prometheus text metrics.
// An empty string disables metrics output.
func OptExportMetricsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Export.MetricsFile = s
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of files decoded concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
