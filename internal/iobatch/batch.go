// Package iobatch ingests many polarity files at once. Files are decoded
// concurrently, while exports happen in a single collector goroutine so
// that outputs are written one file at a time.
package iobatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/jonboulle/clockwork"
	"github.com/toc2me/polcat/internal/ioexport"
	"github.com/toc2me/polcat/internal/iometrics"
	"github.com/toc2me/polcat/internal/iopolarity"
	"github.com/toc2me/polcat/pkg/config"
	"github.com/toc2me/polcat/pkg/manifest"
	"github.com/toc2me/polcat/pkg/polarity"
	"golang.org/x/sync/errgroup"
)

// Job is one file to ingest with its decoding parameters.
type Job struct {
	Path   string
	Params polarity.Params
}

// FileResult describes the outcome of one job.
type FileResult struct {
	Path    string
	Format  string
	Events  int
	Picks   int
	Dropped int
	Outputs ioexport.Files
	Err     error
}

// Summary describes a finished batch. Files are in job order.
type Summary struct {
	Files     []FileResult
	Succeeded int
	Failed    int
	Events    int
	Picks     int
	Duration  time.Duration
}

// Batch runs ingestion jobs.
type Batch struct {
	cfg       *config.Config
	clock     clockwork.Clock
	metrics   *iometrics.Metrics
	progress  bool
	newReader func(polarity.Params) polarity.Reader
}

// Option changes settings of a Batch.
type Option func(*Batch)

// OptClock sets the clock used for timing.
func OptClock(c clockwork.Clock) Option {
	return func(b *Batch) {
		b.clock = c
	}
}

// OptProgress turns the progress bar on or off.
func OptProgress(show bool) Option {
	return func(b *Batch) {
		b.progress = show
	}
}

// New creates a Batch with the given configuration.
func New(cfg *config.Config, opts ...Option) *Batch {
	res := &Batch{
		cfg:       cfg,
		clock:     clockwork.NewRealClock(),
		metrics:   iometrics.New(),
		newReader: iopolarity.New,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Metrics returns counters collected by the batch.
func (b *Batch) Metrics() *iometrics.Metrics {
	return b.metrics
}

// JobsFromFiles creates jobs that share the ingest configuration.
func JobsFromFiles(paths []string, cfg config.IngestConfig) []Job {
	res := make([]Job, len(paths))
	for i, v := range paths {
		res[i] = Job{Path: v, Params: cfg.Params()}
	}
	return res
}

// JobsFromManifest creates jobs from manifest inputs, filling missing
// settings from the ingest configuration.
func JobsFromManifest(m *manifest.Manifest, cfg config.IngestConfig) []Job {
	res := make([]Job, len(m.Inputs))
	for i, v := range m.Inputs {
		res[i] = Job{Path: v.Path, Params: v.Params(cfg)}
	}
	return res
}

type task struct {
	index int
	job   Job
}

type decoded struct {
	index int
	job   Job
	cat   *polarity.Catalog
	err   error
}

// Run decodes and exports all jobs. A failing file does not stop the
// batch. Run returns AllInputsFailedError if no file succeeded.
func (b *Batch) Run(ctx context.Context, jobs []Job) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}
	start := b.clock.Now()
	slog.Info("Starting ingestion", "files", len(jobs))

	exp := ioexport.NewCSV(b.cfg.Export)
	var db *ioexport.SQLite
	var err error
	if path := b.cfg.Export.SQLitePath; path != "" {
		db, err = ioexport.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
	}

	var bar *pb.ProgressBar
	if b.progress {
		bar = pb.Full.Start(len(jobs))
		bar.Set("prefix", "Ingesting files: ")
		bar.Set(pb.CleanOnFinish, true)
	}

	chIn := make(chan task)
	chOut := make(chan decoded)
	g, ctx := errgroup.WithContext(ctx)
	var wg sync.WaitGroup

	for range max(b.cfg.JobsNumber, 1) {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return b.worker(ctx, chIn, chOut)
		})
	}

	res := &Summary{Files: make([]FileResult, len(jobs))}
	g.Go(func() error {
		return b.collect(ctx, chOut, exp, db, bar, res)
	})

	go func() {
		wg.Wait()
		close(chOut)
	}()

	err = feed(ctx, jobs, chIn)
	close(chIn)

	werr := g.Wait()
	if bar != nil {
		bar.Finish()
	}
	if err == nil {
		err = werr
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, CancelledError(err)
		}
		return nil, err
	}

	res.Duration = b.clock.Since(start)
	b.metrics.ObserveDuration(res.Duration)
	if path := b.cfg.Export.MetricsFile; path != "" {
		if err = b.metrics.WriteTextfile(path); err != nil {
			return res, err
		}
	}

	b.report(res)
	if res.Failed > 0 && res.Succeeded == 0 {
		return res, AllInputsFailedError(res.Failed)
	}
	return res, nil
}

func feed(ctx context.Context, jobs []Job, chIn chan<- task) error {
	for i, v := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chIn <- task{index: i, job: v}:
		}
	}
	return nil
}

// worker decodes files. Decoding errors are results, not worker
// failures.
func (b *Batch) worker(
	ctx context.Context,
	chIn <-chan task,
	chOut chan<- decoded,
) error {
	for t := range chIn {
		cat, err := b.newReader(t.job.Params).Read(t.job.Path)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- decoded{index: t.index, job: t.job, cat: cat, err: err}:
		}
	}
	return nil
}

// collect exports decoded files one at a time.
func (b *Batch) collect(
	ctx context.Context,
	chOut <-chan decoded,
	exp *ioexport.CSV,
	db *ioexport.SQLite,
	bar *pb.ProgressBar,
	res *Summary,
) error {
	for d := range chOut {
		fr := b.export(ctx, d, exp, db)
		res.Files[d.index] = fr
		if fr.Err != nil {
			res.Failed++
			b.metrics.ObserveFailure(fr.Format)
			slog.Error("Failed to ingest file", "path", fr.Path, "error", fr.Err)
		} else {
			res.Succeeded++
			res.Events += fr.Events
			res.Picks += fr.Picks
			b.metrics.ObserveCatalog(d.cat)
		}
		if bar != nil {
			bar.Increment()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

func (b *Batch) export(
	ctx context.Context,
	d decoded,
	exp *ioexport.CSV,
	db *ioexport.SQLite,
) FileResult {
	res := FileResult{Path: d.job.Path, Format: d.job.Params.Format, Err: d.err}
	if d.err != nil {
		return res
	}

	res.Format = d.cat.Format.String()
	res.Events = len(d.cat.Events)
	res.Picks = len(d.cat.Picks)
	res.Dropped = d.cat.Report.Total()

	res.Outputs, res.Err = exp.Export(d.cat)
	if res.Err != nil || db == nil {
		return res
	}

	stored, err := db.Export(ctx, d.cat)
	if err != nil {
		res.Err = err
		return res
	}
	slog.Info("Stored in SQLite",
		"path", d.job.Path,
		"events", stored.Events,
		"picks", stored.Picks,
	)
	return res
}

func (b *Batch) report(res *Summary) {
	if res.Failed > 0 {
		slog.Warn("Some inputs failed to process",
			"failed", res.Failed,
			"succeeded", res.Succeeded)
	}

	slog.Info("Ingestion complete",
		"success", res.Succeeded,
		"errors", res.Failed,
		"events", res.Events,
		"picks", res.Picks,
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	gn.Info(`Ingestion complete
Files succeeded: %d, failed %d, total %d.
Events: <em>%s</em>, picks: <em>%s</em>.
Elapsed time: <em>%s</em>
`,
		res.Succeeded,
		res.Failed,
		len(res.Files),
		humanize.Comma(int64(res.Events)),
		humanize.Comma(int64(res.Picks)),
		gnfmt.TimeString(res.Duration.Seconds()),
	)
}
