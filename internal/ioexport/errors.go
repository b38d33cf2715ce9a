package ioexport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/toc2me/polcat/pkg/errcode"
)

// ExportCSVError is returned when a delimited table cannot be written.
func ExportCSVError(path string, err error) error {
	msg := "Cannot write table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportCSVError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}

// ExportSQLiteError is returned when the SQLite sink fails.
func ExportSQLiteError(path string, err error) error {
	msg := "Cannot store results in SQLite database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportSQLiteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: sqlite export to %s failed: %w",
			fn.Name(), path, err),
	}
}
