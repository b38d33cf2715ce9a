package iopolarity

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/toc2me/polcat/pkg/errcode"
	"github.com/toc2me/polcat/pkg/polarity"
)

// UnknownFormatError is returned when the declared format is not one of
// the supported formats.
func UnknownFormatError(path, format string) error {
	var names []string
	for _, v := range polarity.Formats() {
		names = append(names, v.Aliases()...)
	}
	msg := `Unknown polarity format <em>%s</em> for %s

<em>Supported formats:</em> %s`
	vars := []any{format, path, strings.Join(names, ", ")}

	return &gn.Error{
		Code: errcode.ConfigurationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown format '%s' for %s", format, path),
	}
}

// KeyFieldError is returned when a requested station key field is not a
// valid name or is not supplied by the format.
func KeyFieldError(path string, f polarity.Format, field string) error {
	var supported []string
	for _, v := range f.KeyFields() {
		supported = append(supported, string(v))
	}
	msg := `Station key field <em>%s</em> is not available in %s format

<em>File:</em> %s
<em>Available fields:</em> %s`
	vars := []any{field, f.String(), path, strings.Join(supported, ", ")}

	return &gn.Error{
		Code: errcode.ConfigurationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("key field '%s' is not supplied by %s for %s",
			field, f, path),
	}
}

// SchemaError is returned when a file misses a required structural
// element, such as a mandatory column or XML element.
func SchemaError(path, element string, err error) error {
	msg := "File <em>%s</em> misses required <em>%s</em>"
	vars := []any{path, element}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: schema error in %s (%s): %w",
			fn.Name(), path, element, err),
	}
}

// ReadFileError is returned when a file cannot be opened or read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

// RecordDecodeError describes a record that was skipped. It is logged,
// not returned to callers of Read.
func RecordDecodeError(path string, line int, err error) error {
	msg := "Skipped record at <em>%s:%d</em>"
	vars := []any{path, line}
	return &gn.Error{
		Code: errcode.RecordDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode %s line %d: %w", path, line, err),
	}
}

// ReferentialWarning describes picks dropped because they lack the
// arrival data needed to place them on the focal sphere.
func ReferentialWarning(path string, count int) error {
	msg := "Dropped <em>%d</em> picks without takeoff or azimuth in %s"
	vars := []any{count, path}
	return &gn.Error{
		Code: errcode.ReferentialWarning,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%d picks of %s have no takeoff or azimuth",
			count, path),
	}
}
