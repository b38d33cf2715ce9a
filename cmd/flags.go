package cmd

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toc2me/polcat/internal/iopolarity"
	"github.com/toc2me/polcat/pkg/config"
	"github.com/toc2me/polcat/pkg/polarity"
)

// addIngestFlags attaches decoding and export flags shared by the
// ingest and batch commands.
func addIngestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("format", "f", "",
		"format of input files (see 'polcat formats')")
	f.StringSliceP("key-fields", "k", nil,
		"station key components, e.g. network,station")
	f.Float64("weight-impulsive", 0, "weight of impulsive onsets, (0, 1]")
	f.Float64("weight-emergent", 0, "weight of emergent onsets, (0, 1]")
	f.Bool("no-weight-code", false,
		"weight ncsn picks by onset instead of quality code")
	f.Int("station-length", 0, "station name width of hash3 pick lines")
	addExportFlags(cmd)
	f.IntP("jobs", "j", 0, "number of files decoded concurrently")
	f.BoolP("quiet", "q", false, "do not show progress bar")
}

func addExportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output-dir", "o", "", "directory for output tables")
	f.StringP("delimiter", "d", "", `field delimiter of output tables, '\t' for tab`)
	f.String("sqlite", "", "also store events and picks in a SQLite file")
	f.String("metrics", "", "write Prometheus metrics to a file")
}

// checkIngest fails on a format or key field value that config options
// would drop with a warning. Values of changed flags take precedence
// over src, the ingest settings read from config.yaml and environment.
func checkIngest(cmd *cobra.Command, src config.IngestConfig) error {
	const cfgSource = "config.yaml or POLCAT_INGEST_* variables"
	f := cmd.Flags()
	changed := func(name string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed
	}

	format, source := src.Format, cfgSource
	if changed("format") {
		format, _ = f.GetString("format")
		source = "--format flag"
	}
	if strings.TrimSpace(format) == "" {
		format = config.New().Ingest.Format
	}
	err := iopolarity.CheckParams(source, polarity.Params{Format: format})
	if err != nil {
		return err
	}

	keys, source := src.KeyFields, cfgSource
	if changed("key-fields") {
		keys, _ = f.GetStringSlice("key-fields")
		source = "--key-fields flag"
	}
	keys = slices.DeleteFunc(slices.Clone(keys), func(s string) bool {
		return strings.TrimSpace(s) == ""
	})
	return iopolarity.CheckParams(
		source, polarity.Params{Format: format, KeyFields: keys},
	)
}

// flagOptions converts flags that were set on the command line into
// config options. Flags left at their defaults do not override the
// configuration.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	f := cmd.Flags()
	changed := func(name string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("format") {
		s, _ := f.GetString("format")
		res = append(res, config.OptIngestFormat(s))
	}
	if changed("key-fields") {
		ss, _ := f.GetStringSlice("key-fields")
		res = append(res, config.OptIngestKeyFields(ss))
	}
	if changed("weight-impulsive") {
		w, _ := f.GetFloat64("weight-impulsive")
		res = append(res, config.OptIngestPWeightI(w))
	}
	if changed("weight-emergent") {
		w, _ := f.GetFloat64("weight-emergent")
		res = append(res, config.OptIngestPWeightE(w))
	}
	if changed("no-weight-code") {
		b, _ := f.GetBool("no-weight-code")
		res = append(res, config.OptIngestUseWeightCode(!b))
	}
	if changed("station-length") {
		i, _ := f.GetInt("station-length")
		res = append(res, config.OptIngestStationNameLength(i))
	}
	if changed("output-dir") {
		s, _ := f.GetString("output-dir")
		res = append(res, config.OptExportDir(s))
	}
	if changed("delimiter") {
		s, _ := f.GetString("delimiter")
		res = append(res, config.OptExportDelimiter(s))
	}
	if changed("sqlite") {
		s, _ := f.GetString("sqlite")
		res = append(res, config.OptExportSQLitePath(s))
	}
	if changed("metrics") {
		s, _ := f.GetString("metrics")
		res = append(res, config.OptExportMetricsFile(s))
	}
	if changed("jobs") {
		i, _ := f.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}
	return res
}

func showProgress(cmd *cobra.Command) bool {
	quiet, _ := cmd.Flags().GetBool("quiet")
	return !quiet
}
