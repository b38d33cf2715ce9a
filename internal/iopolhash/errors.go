package iopolhash

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/toc2me/polcat/pkg/errcode"
)

// NoFilesError is returned when a directory has no .pol.hash files.
func NoFilesError(dir string) error {
	msg := `No <em>*%s</em> files found in %s`
	vars := []any{Ext, dir}

	return &gn.Error{
		Code: errcode.PolHashNoFilesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no %s files in %s", Ext, dir),
	}
}

// ParseError is returned when a .pol.hash file cannot be parsed.
func ParseError(path string, line int, err error) error {
	msg := "Cannot parse <em>%s:%d</em>"
	vars := []any{path, line}

	return &gn.Error{
		Code: errcode.PolHashParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse %s line %d: %w", path, line, err),
	}
}
