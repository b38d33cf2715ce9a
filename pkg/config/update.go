package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes the runtime-only HomeDir.
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var f float64

	s = c.Ingest.Format
	if s != "" {
		res = append(res, OptIngestFormat(s))
	}
	if len(c.Ingest.KeyFields) > 0 {
		res = append(res, OptIngestKeyFields(c.Ingest.KeyFields))
	}
	f = c.Ingest.PWeightI
	if f > 0 {
		res = append(res, OptIngestPWeightI(f))
	}
	f = c.Ingest.PWeightE
	if f > 0 {
		res = append(res, OptIngestPWeightE(f))
	}
	res = append(res, OptIngestUseWeightCode(c.Ingest.UseWeightCode))
	i = c.Ingest.StationNameLength
	if i > 0 {
		res = append(res, OptIngestStationNameLength(i))
	}

	s = c.Export.Dir
	if s != "" {
		res = append(res, OptExportDir(s))
	}
	s = c.Export.Delimiter
	if s != "" {
		res = append(res, OptExportDelimiter(s))
	}
	s = c.Export.SQLitePath
	if s != "" {
		res = append(res, OptExportSQLitePath(s))
	}
	s = c.Export.MetricsFile
	if s != "" {
		res = append(res, OptExportMetricsFile(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidWeight(name string, f float64) bool {
	res := f > 0 && f <= 1
	if !res {
		gn.Warn("<em>%s</em> has to be in (0, 1] range, ignoring %v", name, f)
	}
	return res
}

func isValidDelimiter(s string) bool {
	res := utf8.RuneCountInString(s) == 1 && s != "\n" && s != "\r" && s != `"`
	if !res {
		gn.Warn("<em>Export Delimiter</em> has to be one character, ignoring '%s'", s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Ingest.Format": {"skhash": s, "ncsn": s, "hypoinverse": s,
			"hash1": s, "hash2": s, "hash3": s, "hash4": s, "hash5": s,
			"quakeml": s},
		"Ingest.KeyFields": {"network": s, "station": s, "location": s,
			"channel": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
