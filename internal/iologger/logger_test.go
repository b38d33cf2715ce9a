package iologger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toc2me/polcat/pkg/config"
	"github.com/toc2me/polcat/pkg/errcode"
)

func TestNewHandler(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(NewHandler(&buf, config.LogConfig{
			Format: "json", Level: "info",
		}))
		log.Debug("hidden")
		log.Info("ingested", "picks", 3)

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "ingested", rec["msg"])
		assert.Equal(t, "INFO", rec["level"])
		assert.Equal(t, 3.0, rec["picks"])
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(NewHandler(&buf, config.LogConfig{
			Format: "text", Level: "debug",
		}))
		log.Debug("decoded", "path", "a.arc")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "path=a.arc")
	})

	t.Run("tint", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(NewHandler(&buf, config.LogConfig{
			Format: "tint", Level: "warn",
		}))
		log.Info("hidden")
		log.With("path", "a.xml").WithGroup("report").
			Warn("skipped event", "reason", "orphan")
		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "WRN skipped event")
		assert.Contains(t, out, "path=a.xml")
		assert.Contains(t, out, "report.reason=orphan")
		// buffers are not terminals
		assert.NotContains(t, out, "\x1b[")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		res   slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.level), v.level)
	}
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.New().Log

	require.NoError(t, Init(dir, cfg))
	slog.Info("first run")
	require.NoError(t, Init(dir, cfg))
	slog.Info("second run")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first run")
	assert.Contains(t, string(data), "second run")
}

func TestInitError(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	cfg := config.New().Log
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg)
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "cannot create log file")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))

	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
