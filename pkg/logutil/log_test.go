package logutil

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pingcap/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &log.Config{Level: "info", Format: "text", DisableTimestamp: true}
	require.Nil(t, initLogger(cfg, zapcore.AddSync(&buf)))

	log.Info("connected", zap.String("host", "10.0.0.1"))
	log.Debug("hidden")
	require.Contains(t, buf.String(), "[INFO]")
	require.Contains(t, buf.String(), "connected")
	require.Contains(t, buf.String(), "10.0.0.1")
	require.NotContains(t, buf.String(), "hidden")
	require.True(t, strings.HasPrefix(buf.String(), "[INFO]"))
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "workshop.log")
	cfg := &log.Config{Level: "debug", Format: "text", File: log.FileLogConfig{Filename: path}}
	require.Nil(t, initLogger(cfg, zapcore.AddSync(&buf)))

	log.Debug("reading data file")
	require.Nil(t, log.L().Sync())
	require.Empty(t, buf.String())

	data, err := ioutil.ReadFile(path)
	require.Nil(t, err)
	require.Contains(t, string(data), "reading data file")
}

func TestInvalidLevel(t *testing.T) {
	require.NotNil(t, initLogger(&log.Config{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{})))
}
