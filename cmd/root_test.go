package cmd

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/cmd/scan"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

func TestInitConfig(t *testing.T) {
	defer func() { cfgFile = "" }()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  level: deep\nstubs:\n  dialect: mocha\n"), 0644))

	cfgFile = path
	require.NoError(t, initConfig())
	require.NotNil(t, AppConfig)
	assert.Equal(t, "deep", AppConfig.Scan.Level)
	assert.Equal(t, "mocha", AppConfig.Stubs.Dialect)
	assert.Equal(t, "high", AppConfig.Stubs.Coverage)
	assert.Same(t, AppConfig, scan.AppConfig)
}

func TestInitConfigMissingExplicitFile(t *testing.T) {
	defer func() { cfgFile = "" }()

	cfgFile = filepath.Join(t.TempDir(), "missing.yml")
	err := initConfig()
	require.Error(t, err)

	var cmdErr *errors.CommandError
	require.True(t, stderrors.As(err, &cmdErr))
	assert.Equal(t, 1, cmdErr.ExitCode)
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"symbols", "scan", "stubs", "run", "analyse", "ask", "version"}, names)
}
