// Package iopolhash converts directories of .pol.hash files, produced by
// automatic polarity pickers, into SKHASH polarity and catalog tables.
//
// A .pol.hash file describes one event. The first line is
//
//	year month day hour minute second latitude longitude depth
//
// and every following line is a station name and a '+' or '-' first
// motion. Events get sequential integer ids in file name order.
package iopolhash

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/toc2me/polcat/internal/ioexport"
	"github.com/toc2me/polcat/internal/iofs"
	"github.com/toc2me/polcat/pkg/polarity"
)

// Ext is the extension of converted files.
const Ext = ".pol.hash"

// Names of produced tables.
const (
	PicksFile   = "SKHASH.pol.csv"
	CatalogFile = "SKHASH.eq_catalog.csv"
)

// Converter turns .pol.hash files into SKHASH tables.
type Converter struct {
	network    string
	location   string
	channel    string
	unknownMag string
	delim      rune
}

// Option changes settings of a Converter.
type Option func(*Converter)

// OptNetwork sets the network code of all picks.
func OptNetwork(s string) Option {
	return func(c *Converter) {
		c.network = s
	}
}

// OptLocation sets the location code of all picks.
func OptLocation(s string) Option {
	return func(c *Converter) {
		c.location = s
	}
}

// OptChannel sets the channel code of all picks.
func OptChannel(s string) Option {
	return func(c *Converter) {
		c.channel = s
	}
}

// OptDelimiter sets the field delimiter of produced tables.
func OptDelimiter(r rune) Option {
	return func(c *Converter) {
		c.delim = r
	}
}

// New creates a Converter. Picks get network 5B, location -- and channel
// DHZ unless options say otherwise.
func New(opts ...Option) *Converter {
	res := &Converter{
		network:    "5B",
		location:   "--",
		channel:    "DHZ",
		unknownMag: "--",
		delim:      ',',
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Result describes a finished conversion.
type Result struct {
	Files       int
	Events      int
	Picks       int
	Skipped     int
	PicksPath   string
	CatalogPath string
}

// Convert reads all .pol.hash files of dir and writes both tables into
// outDir.
func (c *Converter) Convert(dir, outDir string) (*Result, error) {
	files, err := listFiles(dir)
	if err != nil {
		return nil, err
	}

	res := &Result{Files: len(files)}
	var events []polarity.CatalogEvent
	var picks []polarity.PolarityPick
	for i, v := range files {
		eventID := strconv.Itoa(i + 1)
		ev, pp, skipped, err := c.parseFile(v, eventID)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		picks = append(picks, pp...)
		res.Skipped += skipped
	}
	res.Events = len(events)
	res.Picks = len(picks)

	res.PicksPath = filepath.Join(outDir, PicksFile)
	err = write(res.PicksPath, func(w io.Writer) error {
		return ioexport.WritePicks(w, picks, c.delim)
	})
	if err != nil {
		return nil, err
	}

	res.CatalogPath = filepath.Join(outDir, CatalogFile)
	err = write(res.CatalogPath, func(w io.Writer) error {
		return ioexport.WriteCatalog(w, events, c.delim, c.unknownMag)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Converted pol.hash files",
		"dir", dir,
		"files", res.Files,
		"picks", res.Picks,
		"skipped", res.Skipped,
	)
	return res, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, iofs.ReadFileError(dir, err)
	}

	var res []string
	for _, v := range entries {
		if v.IsDir() || !strings.HasSuffix(v.Name(), Ext) {
			continue
		}
		res = append(res, filepath.Join(dir, v.Name()))
	}
	if len(res) == 0 {
		return nil, NoFilesError(dir)
	}
	slices.Sort(res)
	return res, nil
}

func (c *Converter) parseFile(
	path, eventID string,
) (polarity.CatalogEvent, []polarity.PolarityPick, int, error) {
	var ev polarity.CatalogEvent
	var picks []polarity.PolarityPick
	var skipped int

	f, err := os.Open(path)
	if err != nil {
		return ev, nil, 0, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var num int
	for sc.Scan() {
		num++
		line := strings.TrimSpace(sc.Text())
		if num == 1 {
			ev, err = parseHeader(line)
			if err != nil {
				return ev, nil, 0, ParseError(path, num, err)
			}
			ev.EventID = eventID
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			skipped++
			slog.Debug("Skipped pick line", "path", path, "line", num)
			continue
		}
		sign, err := polarity.FirstMotionSign(fields[1])
		if err != nil {
			skipped++
			slog.Debug("Skipped pick line", "path", path, "line", num,
				"error", err)
			continue
		}
		picks = append(picks, polarity.PolarityPick{
			EventID:    eventID,
			StationKey: fields[0],
			Network:    c.network,
			Station:    fields[0],
			Location:   c.location,
			Channel:    c.channel,
			PPolarity:  sign,
		})
	}
	if err = sc.Err(); err != nil {
		return ev, nil, 0, ParseError(path, num, err)
	}
	if num == 0 {
		return ev, nil, 0, ParseError(path, 1, errors.New("file is empty"))
	}
	return ev, picks, skipped, nil
}

func parseHeader(line string) (polarity.CatalogEvent, error) {
	var res polarity.CatalogEvent
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return res, fmt.Errorf("expected 9 header fields, got %d", len(fields))
	}

	ints := make([]int, 5)
	for i := range ints {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return res, fmt.Errorf("cannot parse '%s' as integer", fields[i])
		}
		ints[i] = v
	}
	floats := make([]float64, 4)
	for i := range floats {
		v, err := strconv.ParseFloat(fields[i+5], 64)
		if err != nil {
			return res, fmt.Errorf("cannot parse '%s' as number", fields[i+5])
		}
		floats[i] = v
	}

	t, err := polarity.AssembleTime(
		ints[0], ints[1], ints[2], ints[3], ints[4], floats[0],
	)
	if err != nil {
		return res, err
	}
	res.OriginTime = t
	res.Latitude = floats[1]
	res.Longitude = floats[2]
	res.DepthKm = floats[3]
	res.Magnitude = polarity.UnknownMagnitude
	return res, nil
}

func write(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ioexport.ExportCSVError(path, err)
	}
	if err = fn(f); err != nil {
		f.Close()
		return ioexport.ExportCSVError(path, err)
	}
	if err = f.Close(); err != nil {
		return ioexport.ExportCSVError(path, err)
	}
	return nil
}
