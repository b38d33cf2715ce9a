package manifest

import (
	"fmt"

	"github.com/toc2me/polcat/pkg/polarity"
)

// Validate checks the manifest for errors and collects warnings.
func (m *Manifest) Validate() error {
	if len(m.Inputs) == 0 {
		return fmt.Errorf("no inputs specified in manifest")
	}

	seen := make(map[string]int)
	for i := range m.Inputs {
		warnings, err := m.Inputs[i].Validate(i + 1)
		if err != nil {
			return fmt.Errorf("input %d: %w", i+1, err)
		}
		m.Warnings = append(m.Warnings, warnings...)

		path := m.Inputs[i].Path
		if j, ok := seen[path]; ok {
			m.Warnings = append(m.Warnings, ValidationWarning{
				Input:      i + 1,
				Field:      "path",
				Message:    fmt.Sprintf("file '%s' is already listed as input %d", path, j),
				Suggestion: "Remove the duplicate entry",
			})
			continue
		}
		seen[path] = i + 1
	}
	return nil
}

// Validate checks a single input. File system checks are left to the
// I/O layer. Returns warnings (non-fatal issues) and an error (fatal
// issues).
func (in *Input) Validate(index int) ([]ValidationWarning, error) {
	var warnings []ValidationWarning

	if in.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if in.Format == "" {
		return nil, fmt.Errorf("format is required")
	}
	f := polarity.NewFormat(in.Format)
	if f == polarity.UnknownFormat {
		return nil, fmt.Errorf("unknown format '%s'", in.Format)
	}

	for _, v := range in.KeyFields {
		k, ok := polarity.NewKeyField(v)
		if !ok {
			return nil, fmt.Errorf("unknown key field '%s'", v)
		}
		if !f.Supports(k) {
			return nil, fmt.Errorf("key field '%s' is not supplied by %s", v, f)
		}
	}

	weights := []struct {
		name string
		val  *float64
	}{
		{"p_weight_i", in.PWeightI},
		{"p_weight_e", in.PWeightE},
	}
	for _, v := range weights {
		if v.val != nil && (*v.val <= 0 || *v.val > 1) {
			return nil, fmt.Errorf("%s has to be in (0, 1], got %v", v.name, *v.val)
		}
	}

	if in.StationNameLength != nil && *in.StationNameLength <= 0 {
		return nil, fmt.Errorf("station_name_length has to be positive")
	}

	if in.UseWeightCode != nil && f != polarity.NCSN {
		warnings = append(warnings, ValidationWarning{
			Input:      index,
			Field:      "use_weight_code",
			Message:    fmt.Sprintf("use_weight_code has no effect on %s files", f),
			Suggestion: "Remove 'use_weight_code' from this input",
		})
	}
	if in.StationNameLength != nil && f != polarity.HASH3 {
		warnings = append(warnings, ValidationWarning{
			Input:      index,
			Field:      "station_name_length",
			Message:    fmt.Sprintf("station_name_length has no effect on %s files", f),
			Suggestion: "Remove 'station_name_length' from this input",
		})
	}
	return warnings, nil
}
