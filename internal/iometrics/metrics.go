// Package iometrics collects ingestion counters and writes them in the
// Prometheus text format for node_exporter's textfile collector.
package iometrics

import (
	"fmt"
	"runtime"
	"time"

	"github.com/gnames/gn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/toc2me/polcat/pkg/errcode"
	"github.com/toc2me/polcat/pkg/polarity"
)

const namespace = "polcat"

// File statuses of the files_total counter.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Metrics holds ingestion counters registered in a private registry.
type Metrics struct {
	Files         *prometheus.CounterVec // labels: format, status={ok,failed}
	Events        *prometheus.CounterVec // labels: format
	Picks         *prometheus.CounterVec // labels: format
	Dropped       *prometheus.CounterVec // labels: format, reason
	BatchDuration prometheus.Histogram

	reg *prometheus.Registry
}

// New creates and registers all ingestion metrics.
func New() *Metrics {
	m := &Metrics{
		Files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Input files by format and outcome.",
		}, []string{"format", "status"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Decoded catalog events.",
		}, []string{"format"}),
		Picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "picks_total",
			Help:      "Decoded polarity picks.",
		}, []string{"format"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_records_total",
			Help:      "Records dropped during decoding, by reason.",
		}, []string{"format", "reason"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Duration of a complete ingestion run.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
		reg: prometheus.NewRegistry(),
	}

	m.reg.MustRegister(
		m.Files,
		m.Events,
		m.Picks,
		m.Dropped,
		m.BatchDuration,
	)
	return m
}

// Registry returns the registry that holds the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// ObserveCatalog counts a successfully decoded file.
func (m *Metrics) ObserveCatalog(cat *polarity.Catalog) {
	f := cat.Format.String()
	m.Files.WithLabelValues(f, StatusOK).Inc()
	m.Events.WithLabelValues(f).Add(float64(len(cat.Events)))
	m.Picks.WithLabelValues(f).Add(float64(len(cat.Picks)))
	for _, v := range cat.Report.Reasons() {
		m.Dropped.WithLabelValues(f, v.String()).
			Add(float64(cat.Report.Count(v)))
	}
}

// ObserveFailure counts a file that could not be decoded.
func (m *Metrics) ObserveFailure(format string) {
	m.Files.WithLabelValues(polarity.NewFormat(format).String(), StatusFailed).Inc()
}

// ObserveDuration records the duration of an ingestion run.
func (m *Metrics) ObserveDuration(d time.Duration) {
	m.BatchDuration.Observe(d.Seconds())
}

// WriteTextfile writes all metrics to a file in the Prometheus text
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return ExportMetricsError(path, err)
	}
	return nil
}

// ExportMetricsError is returned when the metrics file cannot be
// written.
func ExportMetricsError(path string, err error) error {
	msg := "Cannot write metrics to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportMetricsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write metrics %s: %w",
			fn.Name(), path, err),
	}
}
