package findings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/testforge/internal/rules"
)

func sample() []Finding {
	return []Finding{
		{RuleID: "a", Category: "XSS", Severity: rules.Medium, Line: 1},
		{RuleID: "b", Category: "Code Injection", Severity: rules.Critical, Line: 2},
		{RuleID: "c", Category: "XSS", Severity: rules.Medium, Line: 3},
		{RuleID: "d", Category: "Code Quality", Severity: rules.Low, Line: 4, Synthetic: true},
		{RuleID: "e", Category: "XSS", Severity: rules.High, Line: 5},
	}
}

func TestFromRule(t *testing.T) {
	r := rules.Default().Rules()[0]
	f := FromRule(r, 7, rules.Default().Advice(r.Category))

	assert.Equal(t, "SQL Injection Vulnerability", f.Title)
	assert.Equal(t, 7, f.Line)
	assert.Equal(t, r.ID, f.RuleID)
	assert.NotEmpty(t, f.Description)
	assert.False(t, f.Synthetic)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Synthetic)
	assert.Equal(t, map[rules.Severity]int{rules.Low: 1, rules.Medium: 2, rules.High: 1, rules.Critical: 1}, s.BySeverity)
	assert.Equal(t, 3, s.ByCategory["XSS"])
	assert.Equal(t, []string{"Code Injection", "Code Quality", "XSS"}, s.Categories())
	assert.Equal(t, rules.Critical, s.Highest())
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Len(t, s.BySeverity, 4)
	assert.Equal(t, rules.Severity(0), s.Highest())
}

func TestSortBySeverityIsStable(t *testing.T) {
	in := sample()
	sorted := SortBySeverity(in)

	var ids []string
	for _, f := range sorted {
		ids = append(ids, f.RuleID)
	}
	assert.Equal(t, []string{"b", "e", "a", "c", "d"}, ids)
	assert.Equal(t, "a", in[0].RuleID, "input is not reordered")
}

func TestAtLeast(t *testing.T) {
	got := AtLeast(sample(), rules.High)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].RuleID)
	assert.Equal(t, "e", got[1].RuleID)
}

func TestJSONUsesSeverityNames(t *testing.T) {
	data, err := json.Marshal(Summarize(sample()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"critical":1`)

	data, err = json.Marshal(sample()[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"medium"`)
}

func TestFingerprintIgnoresIndentation(t *testing.T) {
	a := Fingerprint(`el.innerHTML = input;`)
	b := Fingerprint("\t\t  el.innerHTML = input;  ")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, Fingerprint(`el.outerHTML = input;`))
}
