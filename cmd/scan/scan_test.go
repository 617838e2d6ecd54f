package scan

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/input"
	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

const sampleSource = `function getUser(id) {
  return db.query("SELECT * FROM t WHERE id=" + id);
}
el.innerHTML = input;
`

func runScan(t *testing.T, options RunOptions, args ...string) (string, error) {
	t.Helper()
	AppConfig = config.Default()
	opts = options
	defer func() {
		AppConfig = nil
		opts = RunOptions{}
	}()

	var out bytes.Buffer
	ScanCmd.SetOut(&out)
	ScanCmd.SetIn(bytes.NewBufferString(sampleSource))
	defer ScanCmd.SetOut(nil)
	defer ScanCmd.SetIn(nil)

	err := runScanCommand(ScanCmd, args)
	return out.String(), err
}

func TestScanCommandJSON(t *testing.T) {
	out, err := runScan(t, RunOptions{Format: render.FormatJSON, Level: "basic"}, "-")
	require.NoError(t, err)

	var got scanOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "stdin", got.Input)
	require.NotEmpty(t, got.Findings)
	assert.Equal(t, "injection.query-concat", got.Findings[0].RuleID)
	assert.Equal(t, 2, got.Findings[0].Line)
	assert.Equal(t, len(got.Findings), got.Summary.Total)
	assert.Nil(t, got.Baseline)
}

func TestScanCommandFailOn(t *testing.T) {
	_, err := runScan(t, RunOptions{Format: render.FormatText, Level: "basic", FailOn: "high"}, "-")
	require.Error(t, err)

	var cmdErr *errors.CommandError
	require.True(t, stderrors.As(err, &cmdErr))
	assert.Equal(t, ExitCodeFindings, cmdErr.ExitCode)

	_, err = runScan(t, RunOptions{Format: render.FormatText, Level: "basic", FailOn: "critical"}, "-")
	assert.NoError(t, err)
}

func TestScanCommandBaseline(t *testing.T) {
	previous, err := runScan(t, RunOptions{Format: render.FormatJSON, Level: "basic"}, "-")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "previous.json")
	require.NoError(t, os.WriteFile(path, []byte(previous), 0644))

	out, err := runScan(t, RunOptions{Format: render.FormatJSON, Level: "basic", FailOn: "low", Baseline: path}, "-")
	require.NoError(t, err)

	var got scanOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Baseline)
	assert.Equal(t, 0, got.Baseline.New)
	assert.Equal(t, 0, got.Baseline.Fixed)
	assert.Equal(t, len(got.Findings), got.Baseline.Existing)
}

func TestScanCommandSARIFToFile(t *testing.T) {
	dir := t.TempDir()
	out, err := runScan(t, RunOptions{Format: render.FormatSARIF, Level: "basic", Output: dir}, "-")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dir, "testforge-scan.sarif"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "2.1.0"`)
	assert.Contains(t, string(data), "injection.query-concat")
}

func TestWriteSarifSortsByLevel(t *testing.T) {
	list := []findings.Finding{
		{RuleID: "randomness.math-random", Title: "Insecure Randomness Vulnerability", Severity: rules.Low, Line: 1},
		{RuleID: "command.exec", Title: "Command Injection Vulnerability", Severity: rules.Critical, Line: 2},
		{RuleID: "xss.inner-html", Title: "XSS Vulnerability", Severity: rules.Medium, Line: 3},
	}

	levels := func(sortByLevel bool) []string {
		var buf bytes.Buffer
		require.NoError(t, writeSarif(&buf, list, input.Request{Path: "app.js"}, sortByLevel, hclog.NewNullLogger()))

		var doc struct {
			Runs []struct {
				Results []struct {
					Level string `json:"level"`
				} `json:"results"`
			} `json:"runs"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		require.Len(t, doc.Runs, 1)

		var out []string
		for _, r := range doc.Runs[0].Results {
			out = append(out, r.Level)
		}
		return out
	}

	assert.Equal(t, []string{"note", "error", "warning"}, levels(false))
	assert.Equal(t, []string{"error", "warning", "note"}, levels(true))
}
