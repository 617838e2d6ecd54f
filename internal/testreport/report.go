// Package testreport builds synthetic test-execution reports from symbol counts.
// Nothing is executed: totals and coverage follow fixed ratios and per-case
// outcomes are drawn from an injected randomness source.
package testreport

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scan-io-git/testforge/internal/randsrc"
	"github.com/scan-io-git/testforge/internal/source"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/internal/symbols"
)

const (
	passRatio          = 0.85
	lineCoverageRatio  = 0.78
	branchCoverageRate = 0.82

	edgeCaseFailAbove        = 0.8
	requiredMembersFailAbove = 0.9

	// DefaultEnvironment is used when no environment label is given.
	DefaultEnvironment = "node"
)

// Status of a single synthetic case.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// CaseResult is one synthetic test case.
type CaseResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	DurationMs int    `json:"durationMs"`
}

// SuiteResult groups the cases generated for one symbol.
type SuiteResult struct {
	Name  string       `json:"name"`
	Kind  symbols.Kind `json:"kind"`
	Tests []CaseResult `json:"tests"`
}

// ErrorRecord describes a failing case with a fabricated stack.
type ErrorRecord struct {
	TestName string `json:"testName"`
	Message  string `json:"message"`
	Stack    string `json:"stack"`
}

// ExecutionReport is the synthetic run result.
type ExecutionReport struct {
	ID              string         `json:"id"`
	TotalTests      int            `json:"totalTests"`
	PassedTests     int            `json:"passedTests"`
	FailedTests     int            `json:"failedTests"`
	ExecutionTimeMs int            `json:"executionTimeMs"`
	Suites          []SuiteResult  `json:"suites"`
	Errors          []ErrorRecord  `json:"errors"`
	LinesCovered    int            `json:"linesCovered"`
	LinesTotal      int            `json:"linesTotal"`
	BranchesCovered int            `json:"branchesCovered"`
	Environment     string         `json:"environment"`
	Timestamp       time.Time      `json:"timestamp"`
	Scaffold        *stubgen.Stats `json:"scaffold,omitempty"`
}

// Options carries the injected collaborators. Zero values select a
// time-seeded source, the wall clock and random UUIDs.
type Options struct {
	Rand  randsrc.Source
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = randsrc.NewTimeSeeded()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	return o
}

// Build derives a report from syms and the number of source lines.
// Aggregate counters depend only on the symbol counts; per-case statuses,
// durations and stacks are drawn from opts.Rand.
func Build(syms []symbols.Symbol, lineCount int, environment string, opts Options) ExecutionReport {
	opts = opts.withDefaults()
	if environment == "" {
		environment = DefaultEnvironment
	}
	if lineCount < 1 {
		lineCount = 1
	}

	functions, classes := symbols.Count(syms)
	total := 3*functions + 2*classes
	passed := int(float64(total) * passRatio)

	report := ExecutionReport{
		ID:              opts.NewID(),
		TotalTests:      total,
		PassedTests:     passed,
		FailedTests:     total - passed,
		ExecutionTimeMs: 1000 + opts.Rand.Intn(2000),
		Suites:          make([]SuiteResult, 0, len(syms)),
		Errors:          make([]ErrorRecord, 0),
		LinesCovered:    int(float64(lineCount) * lineCoverageRatio),
		LinesTotal:      lineCount,
		BranchesCovered: int(float64(functions+classes) * branchCoverageRate),
		Environment:     environment,
		Timestamp:       opts.Now().UTC(),
	}

	for _, fn := range symbols.Functions(syms) {
		report.Suites = append(report.Suites, functionSuite(fn.Name, opts.Rand))
	}
	for _, cls := range symbols.Classes(syms) {
		report.Suites = append(report.Suites, classSuite(cls.Name, opts.Rand))
	}

	for _, suite := range report.Suites {
		for _, tc := range suite.Tests {
			if tc.Status == StatusFailed {
				report.Errors = append(report.Errors, errorRecord(tc.Name, opts.Rand))
			}
		}
	}

	return report
}

// BuildFromSource extracts symbols from text, builds the report and attaches
// statistics of the generated scaffold stubText when it is not empty.
func BuildFromSource(text, stubText, environment string, opts Options) ExecutionReport {
	doc := source.New(text)
	report := Build(symbols.Extract(text), doc.LineCount(), environment, opts)
	if stubText != "" {
		stats := stubgen.Measure(stubText)
		report.Scaffold = &stats
	}
	return report
}

func functionSuite(name string, rng randsrc.Source) SuiteResult {
	return SuiteResult{
		Name: name + " function tests",
		Kind: symbols.Function,
		Tests: []CaseResult{
			newCase("should handle valid input for "+name, StatusPassed, rng),
			newCase("should handle invalid input for "+name, StatusPassed, rng),
			newCase("should handle edge cases for "+name, draw(rng, edgeCaseFailAbove), rng),
		},
	}
}

func classSuite(name string, rng randsrc.Source) SuiteResult {
	return SuiteResult{
		Name: name + " class tests",
		Kind: symbols.Class,
		Tests: []CaseResult{
			newCase("should create "+name+" instance correctly", StatusPassed, rng),
			newCase("should have required methods for "+name, draw(rng, requiredMembersFailAbove), rng),
		},
	}
}

func draw(rng randsrc.Source, failAbove float64) Status {
	if rng.Float64() > failAbove {
		return StatusFailed
	}
	return StatusPassed
}

func newCase(name string, status Status, rng randsrc.Source) CaseResult {
	return CaseResult{Name: name, Status: status, DurationMs: 50 + rng.Intn(100)}
}

func errorRecord(testName string, rng randsrc.Source) ErrorRecord {
	line := rng.Intn(50) + 1
	column := rng.Intn(20) + 1
	return ErrorRecord{
		TestName: testName,
		Message:  fmt.Sprintf("Expected %s to pass but it failed", testName),
		Stack: fmt.Sprintf("Error: %s failed\n    at Object.<anonymous> (test.js:%d:%d)\n"+
			"    at processTicksAndRejections (internal/process/task_queues.js:95:5)", testName, line, column),
	}
}

// CaseCounts tallies the sampled per-case outcomes, which may differ from the
// ratio-derived PassedTests and FailedTests.
func (r ExecutionReport) CaseCounts() (passed, failed int) {
	for _, suite := range r.Suites {
		for _, tc := range suite.Tests {
			if tc.Status == StatusFailed {
				failed++
			} else {
				passed++
			}
		}
	}
	return passed, failed
}

// LineCoverage returns linesCovered/linesTotal as a percentage.
func (r ExecutionReport) LineCoverage() float64 {
	if r.LinesTotal == 0 {
		return 0
	}
	return float64(r.LinesCovered) / float64(r.LinesTotal) * 100
}
