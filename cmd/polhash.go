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
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/toc2me/polcat/internal/ioexport"
	"github.com/toc2me/polcat/internal/iofs"
	"github.com/toc2me/polcat/internal/iopolhash"
	"github.com/toc2me/polcat/pkg/config"
)

// getPolhashCmd returns the polhash command.
func getPolhashCmd() *cobra.Command {
	var network, location, channel string

	polhashCmd := &cobra.Command{
		Use:   "polhash DIR",
		Short: "Convert a directory of .pol.hash files into SKHASH tables",
		Long: `Convert .pol.hash files of automatic pickers into SKHASH tables.

Every .pol.hash file holds one event: a header line

  year month day hour minute second latitude longitude depth

followed by 'station +' or 'station -' lines. Events get integer ids
1, 2, 3... in file name order. The command writes SKHASH.pol.csv and
SKHASH.eq_catalog.csv, with '--' as the unknown magnitude.

Examples:
  polcat polhash picks/ -o skhash_in
  polcat polhash picks/ --network XX --channel HHZ`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(flagOptions(cmd))
			err := runPolhash(cfg, args[0], network, location, channel)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addExportFlags(polhashCmd)
	f := polhashCmd.Flags()
	f.StringVar(&network, "network", "5B", "network code of all picks")
	f.StringVar(&location, "location", "--", "location code of all picks")
	f.StringVar(&channel, "channel", "DHZ", "channel code of all picks")
	return polhashCmd
}

func runPolhash(
	cfg *config.Config,
	dir, network, location, channel string,
) error {
	if err := iofs.EnsureOutputDir(cfg.Export.Dir); err != nil {
		return err
	}

	c := iopolhash.New(
		iopolhash.OptNetwork(network),
		iopolhash.OptLocation(location),
		iopolhash.OptChannel(channel),
		iopolhash.OptDelimiter(ioexport.Delimiter(cfg.Export.Delimiter)),
	)
	res, err := c.Convert(dir, cfg.Export.Dir)
	if err != nil {
		return err
	}

	gn.Info(`Converted <em>%s</em> pol.hash files
Events: <em>%s</em>, picks: <em>%s</em>, skipped lines: %d.
Picks: %s
Catalog: %s
`,
		humanize.Comma(int64(res.Files)),
		humanize.Comma(int64(res.Events)),
		humanize.Comma(int64(res.Picks)),
		res.Skipped,
		res.PicksPath,
		res.CatalogPath,
	)
	return nil
}
