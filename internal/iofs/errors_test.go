package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/pkg/errcode"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		path string
		text string
	}{
		{"create dir", CreateDirError("/test/dir", cause),
			errcode.CreateDirError, "/test/dir", "cannot create directory"},
		{"copy file", CopyFileError("/test/config.yaml", cause),
			errcode.CopyFileError, "/test/config.yaml", "cannot copy file"},
		{"read file", ReadFileError("/test/data", cause),
			errcode.ReadFileError, "/test/data", "cannot read /test/data"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, v.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, cause)
			assert.Contains(t, gnErr.Err.Error(), v.text)
			assert.Contains(t, gnErr.Err.Error(), "from ")
			assert.Contains(t, gnErr.Err.Error(), "iofs.TestErrors")
		})
	}
}
