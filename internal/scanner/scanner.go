// Package scanner applies a rule catalog to every line of a source document.
package scanner

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/testforge/internal/findings"
	"github.com/scan-io-git/testforge/internal/randsrc"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/internal/source"
	errors "github.com/scan-io-git/testforge/pkg/shared/errors"
)

// Level controls whether synthetic cautions are appended to the line matches.
type Level string

const (
	LevelBasic         Level = "basic"
	LevelComprehensive Level = "comprehensive"
	LevelDeep          Level = "deep"
)

// Levels lists the accepted scan levels.
func Levels() []Level {
	return []Level{LevelBasic, LevelComprehensive, LevelDeep}
}

// ParseLevel accepts a level name, case-insensitively.
func ParseLevel(value string) (Level, error) {
	normalized := Level(strings.ToLower(strings.TrimSpace(value)))
	for _, l := range Levels() {
		if l == normalized {
			return l, nil
		}
	}

	allowed := make([]string, 0, 3)
	for _, l := range Levels() {
		allowed = append(allowed, string(l))
	}
	return "", errors.NewUnsupportedOptionError("scan level", value, allowed)
}

// IncludesSynthetic reports whether the level appends synthetic cautions.
func (l Level) IncludesSynthetic() bool {
	return l == LevelComprehensive || l == LevelDeep
}

// synthetic describes a caution appended at comprehensive and deep levels.
type synthetic struct {
	id             string
	title          string
	category       string
	severity       rules.Severity
	description    string
	recommendation string
}

var syntheticFindings = []synthetic{
	{
		id:             "synthetic.memory-leak",
		title:          "Potential Memory Leak",
		category:       rules.CategoryMemoryManagement,
		severity:       rules.Medium,
		description:    "Function creates closures that may hold references to large objects.",
		recommendation: "Review closure usage and ensure proper cleanup of references.",
	},
	{
		id:             "synthetic.async-await",
		title:          "Async/Await Best Practice",
		category:       rules.CategoryCodeQuality,
		severity:       rules.Low,
		description:    "Consider using try-catch blocks for better error handling in async functions.",
		recommendation: "Wrap async operations in try-catch blocks for proper error handling.",
	},
}

// Scanner holds an immutable catalog and the randomness for synthetic line numbers.
// A Scanner may be shared between goroutines when its Source is.
type Scanner struct {
	catalog *rules.Catalog
	rng     randsrc.Source
	logger  hclog.Logger
}

// New creates a Scanner. Nil arguments fall back to the built-in catalog,
// a time-seeded source and a null logger.
func New(catalog *rules.Catalog, rng randsrc.Source, logger hclog.Logger) *Scanner {
	if catalog == nil {
		catalog = rules.Default()
	}
	if rng == nil {
		rng = randsrc.NewTimeSeeded()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Scanner{catalog: catalog, rng: rng, logger: logger}
}

// Catalog returns the catalog the scanner applies.
func (s *Scanner) Catalog() *rules.Catalog {
	return s.catalog
}

// Scan applies every rule to every line. Findings are ordered by line, then by
// catalog order within a line; synthetic cautions follow at the end.
func (s *Scanner) Scan(doc source.Document, level Level) []findings.Finding {
	ruleList := s.catalog.Rules()
	lines := doc.Lines()

	var out []findings.Finding
	for i, line := range lines {
		var fingerprint string
		for _, r := range ruleList {
			if !r.Matches(line) {
				continue
			}
			if fingerprint == "" {
				fingerprint = findings.Fingerprint(line)
			}
			f := findings.FromRule(r, i+1, s.catalog.Advice(r.Category))
			f.Fingerprint = fingerprint
			out = append(out, f)
		}
	}
	matched := len(out)

	if level.IncludesSynthetic() {
		for _, syn := range syntheticFindings {
			out = append(out, findings.Finding{
				RuleID:         syn.id,
				Title:          syn.title,
				Category:       syn.category,
				Severity:       syn.severity,
				Line:           s.rng.Intn(len(lines)) + 1,
				Description:    syn.description,
				Recommendation: syn.recommendation,
				Synthetic:      true,
			})
		}
	}

	s.logger.Debug("scan completed",
		"level", level,
		"lines", len(lines),
		"rules", len(ruleList),
		"matches", matched,
		"findings", len(out),
	)
	return out
}

// ScanText scans text with the built-in catalog and a time-seeded source.
func ScanText(text string, level Level) []findings.Finding {
	return New(nil, nil, nil).Scan(source.New(text), level)
}
