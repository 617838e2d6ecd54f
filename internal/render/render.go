// Package render writes analysis results as text tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/internal/symbols"
	"github.com/scan-io-git/testforge/internal/testreport"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatSARIF = "sarif"
)

// JSON writes v indented by two spaces.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func table(w io.Writer, header []string, rows [][]string) error {
	t := tablewriter.NewWriter(w)
	t.Header(header)
	for _, row := range rows {
		if err := t.Append(row); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}
	if err := t.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// Symbols writes one row per symbol in extraction order.
func Symbols(w io.Writer, syms []symbols.Symbol) error {
	if len(syms) == 0 {
		_, err := fmt.Fprintln(w, "No functions or classes found.")
		return err
	}

	rows := make([][]string, 0, len(syms))
	for i, s := range syms {
		rows = append(rows, []string{strconv.Itoa(i + 1), string(s.Kind), s.Name})
	}
	if err := table(w, []string{"#", "Kind", "Name"}, rows); err != nil {
		return err
	}

	functions, classes := symbols.Count(syms)
	_, err := fmt.Fprintf(w, "%d functions, %d classes\n", functions, classes)
	return err
}

// Findings writes the findings in the given order followed by a severity summary.
func Findings(w io.Writer, list []findings.Finding) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No findings.")
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, f := range list {
		title := f.Title
		if f.Synthetic {
			title += " *"
		}
		rows = append(rows, []string{strconv.Itoa(f.Line), f.Severity.String(), f.Category, title, f.Recommendation})
	}
	if err := table(w, []string{"Line", "Severity", "Category", "Title", "Recommendation"}, rows); err != nil {
		return err
	}

	summary := findings.Summarize(list)
	if err := summaryLine(w, summary); err != nil {
		return err
	}
	return categoryLine(w, summary)
}

func categoryLine(w io.Writer, s findings.Summary) error {
	if _, err := fmt.Fprint(w, "By category:"); err != nil {
		return err
	}
	for i, c := range s.Categories() {
		sep := ","
		if i == 0 {
			sep = ""
		}
		if _, err := fmt.Fprintf(w, "%s %s %d", sep, c, s.ByCategory[c]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func summaryLine(w io.Writer, s findings.Summary) error {
	sevs := rules.Severities()
	_, err := fmt.Fprintf(w, "%d findings: %d critical, %d high, %d medium, %d low",
		s.Total, s.BySeverity[sevs[3]], s.BySeverity[sevs[2]], s.BySeverity[sevs[1]], s.BySeverity[sevs[0]])
	if err != nil {
		return err
	}
	if s.Synthetic > 0 {
		_, err = fmt.Fprintf(w, " (* %d illustrative)", s.Synthetic)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

// Report writes the totals, the per-case table and the failure messages.
func Report(w io.Writer, r testreport.ExecutionReport) error {
	if _, err := fmt.Fprintf(w, "Tests: %d total, %d passed, %d failed (%d ms, %s)\n",
		r.TotalTests, r.PassedTests, r.FailedTests, r.ExecutionTimeMs, r.Environment); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Coverage: lines %d/%d (%.1f%%), branches %d\n",
		r.LinesCovered, r.LinesTotal, r.LineCoverage(), r.BranchesCovered); err != nil {
		return err
	}
	if r.Scaffold != nil {
		if err := Stats(w, *r.Scaffold); err != nil {
			return err
		}
	}

	if len(r.Suites) > 0 {
		var rows [][]string
		for _, suite := range r.Suites {
			for _, tc := range suite.Tests {
				rows = append(rows, []string{suite.Name, tc.Name, string(tc.Status), strconv.Itoa(tc.DurationMs)})
			}
		}
		if err := table(w, []string{"Suite", "Test", "Status", "ms"}, rows); err != nil {
			return err
		}
		passed, failed := r.CaseCounts()
		if _, err := fmt.Fprintf(w, "Sampled cases: %d passed, %d failed\n", passed, failed); err != nil {
			return err
		}
	}

	for _, e := range r.Errors {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", e.Message, e.Stack); err != nil {
			return err
		}
	}
	return nil
}

// Stats writes scaffold statistics on one line.
func Stats(w io.Writer, s stubgen.Stats) error {
	_, err := fmt.Fprintf(w, "Scaffold: %d test cases, %d suites, %d lines, %.2f KB\n",
		s.TestCases, s.TestSuites, s.Lines, s.SizeKB)
	return err
}
