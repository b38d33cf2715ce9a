package iomanifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/toc2me/polcat/pkg/manifest"
	"gopkg.in/yaml.v3"
)

type iomanifest struct{}

// New creates a manifest loader.
func New() manifest.Loader {
	return &iomanifest{}
}

// Load reads, validates and resolves a manifest. Input paths relative
// to the manifest become relative to its directory.
func (l *iomanifest) Load(path string) (*manifest.Manifest, error) {
	res, err := loadManifest(path)
	if err != nil {
		return nil, ManifestConfigError(path, err)
	}

	for _, w := range res.Warnings {
		gn.Warn("Manifest input %d, <em>%s</em>: %s", w.Input, w.Field, w.Message)
		slog.Warn("Manifest validation",
			"input", w.Input,
			"field", w.Field,
			"message", w.Message,
			"suggestion", w.Suggestion,
		)
	}
	return res, nil
}

func loadManifest(path string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var res manifest.Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err = dec.Decode(&res)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if err = res.Validate(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i := range res.Inputs {
		p := res.Inputs[i].Path
		if !filepath.IsAbs(p) {
			res.Inputs[i].Path = filepath.Join(dir, p)
		}
	}
	return &res, nil
}
