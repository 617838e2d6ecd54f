package testreport

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/internal/randsrc"
	"github.com/scan-io-git/testforge/internal/symbols"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func fixedOptions(rng randsrc.Source) Options {
	return Options{
		Rand:  rng,
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { return "report-1" },
	}
}

func makeSymbols(functions, classes int) []symbols.Symbol {
	var out []symbols.Symbol
	for i := 0; i < functions; i++ {
		out = append(out, symbols.Symbol{Name: fmt.Sprintf("fn%d", i), Kind: symbols.Function})
	}
	for i := 0; i < classes; i++ {
		out = append(out, symbols.Symbol{Name: fmt.Sprintf("Cls%d", i), Kind: symbols.Class})
	}
	return out
}

func TestBuildTotals(t *testing.T) {
	rng := randsrc.NewSeeded(99)
	for f := 0; f <= 6; f++ {
		for c := 0; c <= 6; c++ {
			report := Build(makeSymbols(f, c), 40, "node", fixedOptions(rng))

			assert.Equal(t, 3*f+2*c, report.TotalTests)
			assert.Equal(t, report.TotalTests, report.PassedTests+report.FailedTests)
			assert.Equal(t, int(float64(report.TotalTests)*0.85), report.PassedTests)
			assert.Equal(t, int(float64(f+c)*0.82), report.BranchesCovered)
			assert.Len(t, report.Suites, f+c)

			passed, failed := report.CaseCounts()
			assert.Equal(t, report.TotalTests, passed+failed)
			assert.Len(t, report.Errors, failed)
		}
	}
}

func TestBuildCoverageBounds(t *testing.T) {
	for _, lines := range []int{0, 1, 2, 5, 100, 1001} {
		report := Build(nil, lines, "", fixedOptions(randsrc.Fixed{}))
		assert.LessOrEqual(t, report.LinesCovered, report.LinesTotal)
		assert.GreaterOrEqual(t, report.LinesTotal, 1)
	}
}

func TestBuildFromEmptySource(t *testing.T) {
	report := BuildFromSource("", "", "", fixedOptions(randsrc.Fixed{}))

	assert.Equal(t, 1, report.LinesTotal)
	assert.Equal(t, 0, report.LinesCovered)
	assert.Zero(t, report.TotalTests)
	assert.Empty(t, report.Suites)
	assert.Empty(t, report.Errors)
	assert.Equal(t, DefaultEnvironment, report.Environment)
	assert.Nil(t, report.Scaffold)
}

func TestBuildAllPass(t *testing.T) {
	report := BuildFromSource("function add(a,b){return a+b;} class Calc{}", "", "browser", fixedOptions(randsrc.Fixed{Int: 10, Float: 0.5}))

	require.Len(t, report.Suites, 2)
	assert.Equal(t, "add function tests", report.Suites[0].Name)
	assert.Equal(t, "Calc class tests", report.Suites[1].Name)
	assert.Equal(t, []CaseResult{
		{Name: "should create Calc instance correctly", Status: StatusPassed, DurationMs: 60},
		{Name: "should have required methods for Calc", Status: StatusPassed, DurationMs: 60},
	}, report.Suites[1].Tests)
	assert.Empty(t, report.Errors)

	assert.Equal(t, 5, report.TotalTests)
	assert.Equal(t, 4, report.PassedTests)
	assert.Equal(t, 1, report.FailedTests)
	assert.Equal(t, 1010, report.ExecutionTimeMs)
	assert.Equal(t, "browser", report.Environment)
	assert.Equal(t, fixedNow, report.Timestamp)
	assert.Equal(t, "report-1", report.ID)
}

func TestBuildFailureRecords(t *testing.T) {
	report := Build(makeSymbols(1, 1), 10, "node", fixedOptions(randsrc.Fixed{Int: 4, Float: 0.95}))

	require.Len(t, report.Errors, 2)
	edge := report.Errors[0]
	assert.Equal(t, "should handle edge cases for fn0", edge.TestName)
	assert.Equal(t, "Expected should handle edge cases for fn0 to pass but it failed", edge.Message)
	assert.Equal(t, "Error: should handle edge cases for fn0 failed\n"+
		"    at Object.<anonymous> (test.js:5:5)\n"+
		"    at processTicksAndRejections (internal/process/task_queues.js:95:5)", edge.Stack)
	assert.Equal(t, "should have required methods for Cls0", report.Errors[1].TestName)

	assert.Equal(t, StatusPassed, report.Suites[0].Tests[0].Status)
	assert.Equal(t, StatusPassed, report.Suites[0].Tests[1].Status)
}

func TestFailureThresholds(t *testing.T) {
	// 0.85 fails an edge case but not a required-members case
	report := Build(makeSymbols(1, 1), 10, "node", fixedOptions(randsrc.Fixed{Float: 0.85}))
	assert.Equal(t, StatusFailed, report.Suites[0].Tests[2].Status)
	assert.Equal(t, StatusPassed, report.Suites[1].Tests[1].Status)
}

func TestRandomBounds(t *testing.T) {
	rng := randsrc.NewSeeded(3)
	for i := 0; i < 100; i++ {
		report := Build(makeSymbols(3, 2), 10, "node", fixedOptions(rng))
		assert.GreaterOrEqual(t, report.ExecutionTimeMs, 1000)
		assert.Less(t, report.ExecutionTimeMs, 3000)
		for _, suite := range report.Suites {
			for _, tc := range suite.Tests {
				assert.GreaterOrEqual(t, tc.DurationMs, 50)
				assert.Less(t, tc.DurationMs, 150)
			}
		}
	}
}

func TestSameSeedSameReport(t *testing.T) {
	text := "function a(){}\nconst b = (x) => x;\nclass C {}\n"
	first := BuildFromSource(text, "", "node", fixedOptions(randsrc.NewSeeded(11)))
	second := BuildFromSource(text, "", "node", fixedOptions(randsrc.NewSeeded(11)))
	assert.Equal(t, first, second)
}

func TestBuildFromSourceScaffold(t *testing.T) {
	stub := "describe('a', () => {\n  test('x', () => {});\n  it('y', () => {});\n});\n"
	report := BuildFromSource("function a(){}", stub, "node", fixedOptions(randsrc.Fixed{}))

	require.NotNil(t, report.Scaffold)
	assert.Equal(t, 2, report.Scaffold.TestCases)
	assert.Equal(t, 1, report.Scaffold.TestSuites)
}

func TestReportJSON(t *testing.T) {
	report := BuildFromSource("function a(){}", "", "node", fixedOptions(randsrc.Fixed{}))
	data, err := json.Marshal(report)
	require.NoError(t, err)

	out := string(data)
	for _, key := range []string{`"totalTests":3`, `"linesTotal":1`, `"environment":"node"`, `"timestamp":"2026-03-14T09:26:53Z"`, `"errors":[]`} {
		assert.True(t, strings.Contains(out, key), key)
	}
	assert.InDelta(t, 0.0, report.LineCoverage(), 0.001)
}
