package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "polcat", cmd.Use)
	assert.NotNil(t, cmd.PersistentPreRunE)
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
	assert.NotSame(t, cmd, getRootCmd())

	var names []string
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	for _, v := range []string{"ingest", "batch", "polhash", "formats"} {
		assert.Contains(t, names, v)
	}
}

func TestGetRootCmdVersion(t *testing.T) {
	tests := []struct {
		msg  string
		flag string
	}{
		{"long", "--version"},
		{"short", "-V"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{v.flag})
			require.NoError(t, cmd.Execute())

			out := buf.String()
			assert.Contains(t, out, "v1.2.3")
			assert.Contains(t, out, "abc123")
			assert.NotContains(t, out, "polcat version")
		})
	}
}

func TestGetRootCmdHelp(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	help := buf.String()
	assert.Contains(t, help, "polcat")
	assert.Contains(t, help, "POLCAT_INGEST_FORMAT")
	assert.Contains(t, help, "quakeml")
	assert.Contains(t, help, "Available Commands")
}

func TestGetRootCmdInvalidCommand(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestSubcommandArgs(t *testing.T) {
	tests := []struct {
		msg  string
		args []string
	}{
		{"ingest needs files", []string{"ingest"}},
		{"batch needs manifest", []string{"batch"}},
		{"batch takes one manifest", []string{"batch", "a.yaml", "b.yaml"}},
		{"polhash needs dir", []string{"polhash"}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cmd := getRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(v.args)
			assert.Error(t, cmd.Execute())
		})
	}
}
