package iobatch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/toc2me/polcat/pkg/errcode"
)

// AllInputsFailedError is returned when no input of a batch could be
// ingested.
func AllInputsFailedError(count int) error {
	msg := `Failed number of inputs: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.BatchAllInputsFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d input%s failed to process", count, plural),
	}
}

// CancelledError is returned when the batch context is cancelled.
func CancelledError(err error) error {
	msg := "Ingestion was cancelled"

	return &gn.Error{
		Code: errcode.BatchCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("ingestion cancelled: %w", err),
	}
}
