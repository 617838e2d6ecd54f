package logger

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/testforge/pkg/shared/config"
)

func TestDetermineLogLevel(t *testing.T) {
	t.Setenv(LogLevelEnv, "")

	cfg := config.Default()
	assert.Equal(t, hclog.Info, determineLogLevel(cfg))

	cfg.Logger.Level = "debug"
	assert.Equal(t, hclog.Debug, determineLogLevel(cfg))

	t.Setenv(LogLevelEnv, "error")
	assert.Equal(t, hclog.Error, determineLogLevel(cfg))
}

func TestParseLogLevelUnknownDefaultsToInfo(t *testing.T) {
	assert.Equal(t, hclog.Info, parseLogLevel("CHATTY"))
	assert.Equal(t, hclog.Trace, parseLogLevel("TRACE"))
	assert.Equal(t, hclog.Warn, parseLogLevel("WARN"))
}

func TestNewLoggerWithOutput(t *testing.T) {
	t.Setenv(LogLevelEnv, "")

	var buf bytes.Buffer
	log := NewLoggerWithOutput(config.Default(), "core-scan", &buf)
	log.Info("scan finished", "findings", 3)
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "core-scan")
	assert.Contains(t, out, "scan finished")
	assert.Contains(t, out, "findings=3")
	assert.NotContains(t, out, "hidden")
}
