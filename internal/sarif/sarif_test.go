package sarif

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/rules"
)

type sarifDoc struct {
	Version string `json:"version"`
	Runs    []struct {
		Tool struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID    string `json:"ruleId"`
			Level     string `json:"level"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine int `json:"startLine"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func sampleFindings() []findings.Finding {
	return []findings.Finding{
		{RuleID: "deprecated.string-timeout", Title: "String-based setTimeout Vulnerability", Severity: rules.Low, Line: 1},
		{RuleID: "xss.inner-html", Title: "XSS Vulnerability", Severity: rules.High, Line: 4},
		{RuleID: "deprecated.inner-html", Title: "Dangerous Assignment Vulnerability", Severity: rules.Medium, Line: 4},
		{RuleID: "xss.inner-html", Title: "XSS Vulnerability", Severity: rules.High, Line: 9},
	}
}

func TestFromFindings(t *testing.T) {
	version := "1.2.3"
	report, err := FromFindings(sampleFindings(), ToolMetadata{Name: "testforge", Version: &version}, "app.js", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf))

	var doc sarifDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, "testforge", run.Tool.Driver.Name)
	assert.Len(t, run.Tool.Driver.Rules, 3, "one descriptor per rule id")
	require.Len(t, run.Results, 4)

	assert.Equal(t, "note", run.Results[0].Level)
	assert.Equal(t, "error", run.Results[1].Level)
	assert.Equal(t, "warning", run.Results[2].Level)
	assert.Equal(t, 9, run.Results[3].Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "app.js", run.Results[3].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestCollectSeverityInfo(t *testing.T) {
	report, err := FromFindings(sampleFindings(), ToolMetadata{Name: "testforge"}, "app.js", nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"error": 2, "warning": 1, "note": 1, "total": 4}, report.CollectSeverityInfo())
}

func TestSortResultsByLevel(t *testing.T) {
	report, err := FromFindings(sampleFindings(), ToolMetadata{Name: "testforge"}, "app.js", nil)
	require.NoError(t, err)

	report.SortResultsByLevel()

	var order []string
	for _, result := range report.Runs[0].Results {
		order = append(order, *result.Level)
	}
	assert.Equal(t, []string{"error", "error", "warning", "note"}, order)
}

func TestToSarifErrorLevel(t *testing.T) {
	assert.Equal(t, "error", toSarifErrorLevel(rules.Critical))
	assert.Equal(t, "error", toSarifErrorLevel(rules.High))
	assert.Equal(t, "warning", toSarifErrorLevel(rules.Medium))
	assert.Equal(t, "note", toSarifErrorLevel(rules.Low))
	assert.Equal(t, "none", toSarifErrorLevel(rules.Severity(0)))
}
