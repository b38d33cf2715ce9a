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
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/toc2me/polcat/internal/iobatch"
	"github.com/toc2me/polcat/internal/iomanifest"
)

// getBatchCmd returns the batch command.
func getBatchCmd() *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch MANIFEST.yaml",
		Short: "Ingest files listed in a manifest",
		Long: `Ingest inputs of different formats listed in a YAML manifest.

Each manifest input names a path and a format, and may override
key fields, onset weights, the NCSN weight-code switch and the HASH
driver 3 station name width. Settings an input does not give come
from flags, environment and config.yaml. Relative paths are resolved
against the manifest directory.

Example manifest:

  inputs:
    - path: north.arc
      format: ncsn
      key_fields: [network, station]
    - path: events.xml
      format: quakeml
      p_weight_e: 0.3

Examples:
  polcat batch manifest.yaml -o out --sqlite polarity.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkIngest(cmd, cfgIngest); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			cfg.Update(flagOptions(cmd))
			m, err := iomanifest.New().Load(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}

			jobs := iobatch.JobsFromManifest(m, cfg.Ingest)
			err = runJobs(cfg, jobs, showProgress(cmd))
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addIngestFlags(batchCmd)
	return batchCmd
}
