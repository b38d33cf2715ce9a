// Package manifest provides the schema and validation of batch manifests.
//
// A manifest is a YAML file that lists polarity files to ingest in one
// run. Every input declares its format and may override decoding
// settings of the configuration:
//
//	inputs:
//	  - path: north/2019.arc
//	    format: ncsn
//	    key_fields: [network, station]
//	    use_weight_code: false
//	  - path: toc2me.hash3
//	    format: hash3
//	    station_name_length: 4
//
// Relative paths are resolved against the directory of the manifest by
// the loader in internal/iomanifest.
package manifest

import (
	"slices"

	"github.com/toc2me/polcat/pkg/config"
	"github.com/toc2me/polcat/pkg/polarity"
)

// Loader reads and validates a manifest file.
type Loader interface {
	Load(path string) (*Manifest, error)
}

// Manifest represents the complete manifest file.
type Manifest struct {
	// Inputs are files to ingest, in the order of the manifest.
	Inputs []Input `yaml:"inputs"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []ValidationWarning `yaml:"-"`
}

// ValidationWarning represents a non-fatal manifest issue.
type ValidationWarning struct {
	Input      int    // 1-based position of the input
	Field      string // Field name that has the issue
	Message    string // Description of the issue
	Suggestion string // How to fix it
}

// Input is one file of a batch. Unset optional fields inherit values
// from the ingest configuration.
type Input struct {
	// Path to the file (required).
	Path string `yaml:"path"`

	// Format name or alias (required).
	Format string `yaml:"format"`

	KeyFields         []string `yaml:"key_fields,omitempty"`
	PWeightI          *float64 `yaml:"p_weight_i,omitempty"`
	PWeightE          *float64 `yaml:"p_weight_e,omitempty"`
	UseWeightCode     *bool    `yaml:"use_weight_code,omitempty"`
	StationNameLength *int     `yaml:"station_name_length,omitempty"`
}

// Params merges input settings over the ingest configuration.
func (in Input) Params(base config.IngestConfig) polarity.Params {
	res := base.Params()
	res.Format = in.Format
	if len(in.KeyFields) > 0 {
		res.KeyFields = slices.Clone(in.KeyFields)
	}
	if in.PWeightI != nil {
		res.PWeightI = *in.PWeightI
	}
	if in.PWeightE != nil {
		res.PWeightE = *in.PWeightE
	}
	if in.UseWeightCode != nil {
		res.UseWeightCode = *in.UseWeightCode
	}
	if in.StationNameLength != nil {
		res.StationNameLength = *in.StationNameLength
	}
	return res
}
