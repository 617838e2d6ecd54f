package sarif

import (
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/rules"
)

const informationURI = "https://github.com/scan-io-git/testforge"

// Report wraps a go-sarif report built from scan findings.
type Report struct {
	*sarif.Report
	logger hclog.Logger
}

type ToolMetadata struct {
	Name    string
	Version *string
}

// FromFindings builds a single-run SARIF 2.1.0 report. Every distinct rule id
// becomes one reporting descriptor; every finding becomes one result located at
// its line in artifactURI.
func FromFindings(list []findings.Finding, tool ToolMetadata, artifactURI string, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(tool.Name, informationURI)
	if tool.Version != nil {
		run.Tool.Driver.Version = tool.Version
	}

	for _, f := range list {
		level := toSarifErrorLevel(f.Severity)
		rule := run.AddRule(f.RuleID).
			WithName(f.Title).
			WithDescription(f.Description).
			WithHelp(sarif.NewMultiformatMessageString(f.Recommendation)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level}).
			WithProperties(sarif.Properties{
				"category": f.Category,
				"severity": f.Severity.String(),
			})

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(artifactURI)).
				WithRegion(sarif.NewRegion().WithStartLine(f.Line)),
		)

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(f.Title + ": " + f.Description)).
			WithLevel(level).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}
	report.AddRun(run)

	logger.Debug("SARIF report built", "rules", len(run.Tool.Driver.Rules), "results", len(run.Results))
	return &Report{Report: report, logger: logger}, nil
}

// CollectSeverityInfo counts results per SARIF level, plus a total.
func (r Report) CollectSeverityInfo() map[string]int {
	severityInfo := map[string]int{
		"error":   0,
		"warning": 0,
		"note":    0,
		"total":   0,
	}

	for _, run := range r.Runs {
		for _, result := range run.Results {
			if result.Level != nil {
				severityInfo[*result.Level]++
			}
			severityInfo["total"]++
		}
	}

	return severityInfo
}

// SortResultsByLevel orders results error, warning, note, none. Equal levels keep their order.
func (r Report) SortResultsByLevel() {
	levelOrder := map[string]int{
		"error":   0,
		"warning": 1,
		"note":    2,
		"none":    3,
	}

	for _, run := range r.Runs {
		sort.SliceStable(run.Results, func(i, j int) bool {
			return levelRank(levelOrder, run.Results[i]) < levelRank(levelOrder, run.Results[j])
		})
	}
}

func levelRank(order map[string]int, result *sarif.Result) int {
	if result.Level == nil {
		return len(order)
	}
	if rank, ok := order[*result.Level]; ok {
		return rank
	}
	return len(order)
}

// Write encodes the report as indented JSON.
func (r Report) Write(w io.Writer) error {
	if err := r.Report.PrettyWrite(w); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

func toSarifErrorLevel(severity rules.Severity) string {
	switch severity {
	case rules.Critical, rules.High:
		return "error"
	case rules.Medium:
		return "warning"
	case rules.Low:
		return "note"
	default:
		return "none"
	}
}
