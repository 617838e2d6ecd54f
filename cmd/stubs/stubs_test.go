package stubs

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

func TestValidate(t *testing.T) {
	AppConfig = config.Default()
	AppConfig.Stubs.Dialect = "jasmine"
	defer func() { AppConfig = nil }()

	tests := []struct {
		name        string
		options     RunOptions
		args        []string
		wantDialect stubgen.Dialect
		wantTier    stubgen.Tier
		wantErr     bool
	}{
		{
			name:        "Defaults from config",
			options:     RunOptions{Format: formatCode},
			args:        []string{"app.js"},
			wantDialect: stubgen.Jasmine,
			wantTier:    stubgen.TierHigh,
		},
		{
			name:        "Flags override config",
			options:     RunOptions{Format: render.FormatJSON, Dialect: "mocha", Coverage: "comprehensive"},
			args:        []string{"-"},
			wantDialect: stubgen.Mocha,
			wantTier:    stubgen.TierComprehensive,
		},
		{
			name:    "Unknown dialect",
			options: RunOptions{Format: formatCode, Dialect: "tape"},
			args:    []string{"app.js"},
			wantErr: true,
		},
		{
			name:    "Unknown tier",
			options: RunOptions{Format: formatCode, Coverage: "total"},
			args:    []string{"app.js"},
			wantErr: true,
		},
		{
			name:    "Text is not a stubs format",
			options: RunOptions{Format: render.FormatText},
			args:    []string{"app.js"},
			wantErr: true,
		},
		{
			name:    "No input",
			options: RunOptions{Format: formatCode},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialect, tier, err := validate(&tt.options, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDialect, dialect)
			assert.Equal(t, tt.wantTier, tier)
		})
	}

	_, _, err := validate(&RunOptions{Format: formatCode, Dialect: "tape"}, []string{"app.js"})
	assert.ErrorIs(t, err, errors.ErrUnsupportedOption)
}

func TestValidateWithoutConfig(t *testing.T) {
	AppConfig = nil

	dialect, tier, err := validate(&RunOptions{Format: formatCode}, []string{"app.js"})
	require.NoError(t, err)
	assert.Equal(t, stubgen.Jest, dialect)
	assert.Equal(t, stubgen.TierHigh, tier)
}

func TestStubsCommand(t *testing.T) {
	AppConfig = config.Default()
	defer func() {
		AppConfig = nil
		opts = RunOptions{}
	}()

	var out bytes.Buffer
	StubsCmd.SetOut(&out)
	StubsCmd.SetIn(bytes.NewBufferString("function add(a,b){return a+b;} class Calc{}"))
	defer StubsCmd.SetOut(nil)
	defer StubsCmd.SetIn(nil)

	opts = RunOptions{Format: render.FormatJSON}
	require.NoError(t, runStubsCommand(StubsCmd, []string{"-"}))

	var got stubsOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, stubgen.Jest, got.Dialect)
	require.Len(t, got.Suites, 2)
	assert.Equal(t, "add", got.Suites[0].Name)
	assert.Equal(t, "Calc", got.Suites[1].Name)
	assert.Equal(t, stubgen.Measure(got.Code), got.Stats)
	assert.Equal(t, 2, got.Stats.TestSuites)
}
