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
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/toc2me/polcat/pkg/polarity"
)

// getFormatsCmd returns the formats command.
func getFormatsCmd() *cobra.Command {
	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported input formats",
		Long: `List supported input formats with their aliases, the station key
components each format supplies, and whether it embeds an earthquake
catalog.`,
		Args: cobra.NoArgs,
		// formats needs no configuration
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeFormats(cmd.OutOrStdout())
		},
	}
	return formatsCmd
}

func writeFormats(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tALIASES\tKEY FIELDS\tCATALOG")
	for _, f := range polarity.Formats() {
		keys := make([]string, 0, 4)
		for _, k := range f.KeyFields() {
			keys = append(keys, string(k))
		}
		catalog := "no"
		if f.HasCatalog() {
			catalog = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			f,
			strings.Join(f.Aliases(), ","),
			strings.Join(keys, ","),
			catalog,
		)
	}
	return tw.Flush()
}
