/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/toc2me/polcat/internal/iobatch"
	"github.com/toc2me/polcat/internal/iofs"
	"github.com/toc2me/polcat/pkg/config"
)

// getIngestCmd returns the ingest command.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest FILE...",
		Short: "Convert polarity files into SKHASH tables",
		Long: `Decode polarity files of one format and write SKHASH tables.

For every input FILE the command writes FILE_pol.csv with polarity
picks, and FILE_eq_catalog.csv with events if the format embeds them.
Files are decoded concurrently. A file that cannot be decoded is
reported and skipped.

Examples:
  # NCSN archive with network.station keys
  polcat ingest -f ncsn -k network,station -o out 2019.arc

  # several QuakeML files into SQLite as well
  polcat ingest -f quakeml --sqlite polarity.db events/*.xml

  # HASH driver 3 files with 4-letter station names
  polcat ingest -f hash3 --station-length 4 north1.phase`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkIngest(cmd, cfgIngest); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			cfg.Update(flagOptions(cmd))
			jobs := iobatch.JobsFromFiles(args, cfg.Ingest)
			err := runJobs(cfg, jobs, showProgress(cmd))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addIngestFlags(ingestCmd)
	return ingestCmd
}

// runJobs ingests jobs and reports files that failed.
func runJobs(cfg *config.Config, jobs []iobatch.Job, progress bool) error {
	if err := iofs.EnsureOutputDir(cfg.Export.Dir); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := iobatch.New(cfg, iobatch.OptProgress(progress))
	res, err := b.Run(ctx, jobs)
	if res != nil {
		for _, v := range res.Files {
			if v.Err != nil {
				gn.Warn("Skipped <em>%s</em>", v.Path)
				gn.PrintErrorMessage(v.Err)
			}
		}
	}
	return err
}
