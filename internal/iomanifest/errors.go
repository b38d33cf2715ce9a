package iomanifest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/toc2me/polcat/pkg/errcode"
)

// ManifestConfigError creates an error for when a batch manifest
// cannot be loaded.
func ManifestConfigError(path string, err error) error {
	msg := `Cannot load batch manifest

<em>Manifest file:</em> %s
<em>Problem:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - An input misses its path or format

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. List supported formats: <em>polcat formats</em>`

	vars := []any{path, err.Error(), path}

	return &gn.Error{
		Code: errcode.ManifestConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load manifest %s: %w", path, err),
	}
}
