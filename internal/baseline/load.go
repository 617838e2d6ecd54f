package baseline

import (
	"encoding/json"
	"fmt"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/pkg/shared/files"
)

// Load reads the findings from a JSON scan result written by the scan command.
func Load(path string) ([]findings.Finding, error) {
	data, err := files.ReadSource(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}
	return Parse(data)
}

// Parse decodes the findings of a JSON scan result.
func Parse(data []byte) ([]findings.Finding, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse baseline: %w", err)
	}
	raw, ok := doc["findings"]
	if !ok {
		return nil, fmt.Errorf("failed to parse baseline: no findings list")
	}

	var list []findings.Finding
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse baseline findings: %w", err)
	}
	return list, nil
}

// Summary counts the outcome of a comparison.
type Summary struct {
	New           int                `json:"new"`
	Existing      int                `json:"existing"`
	Fixed         int                `json:"fixed"`
	FixedFindings []findings.Finding `json:"fixed_findings"`
}

// Summarize runs the correlator and counts the outcome.
func (c *Correlator) Summarize() Summary {
	fixed := c.Fixed()
	if fixed == nil {
		fixed = []findings.Finding{}
	}
	return Summary{
		New:           len(c.New()),
		Existing:      len(c.Existing()),
		Fixed:         len(fixed),
		FixedFindings: fixed,
	}
}
