package findings

import (
	"sort"

	"github.com/scan-io-git/testforge/internal/rules"
)

// Finding is one match of a rule against one line, or a level-gated synthetic caution.
type Finding struct {
	RuleID         string         `json:"rule_id"`
	Title          string         `json:"title"`
	Category       string         `json:"category"`
	Severity       rules.Severity `json:"severity"`
	Line           int            `json:"line"`
	Description    string         `json:"description"`
	Recommendation string         `json:"recommendation"`
	Fingerprint    string         `json:"fingerprint,omitempty"`
	Synthetic      bool           `json:"synthetic,omitempty"`
}

// FromRule builds the finding for rule r matching line, with advice looked up by category.
func FromRule(r rules.Rule, line int, advice rules.Advice) Finding {
	return Finding{
		RuleID:         r.ID,
		Title:          Title(r.Category),
		Category:       r.Category,
		Severity:       r.Severity,
		Line:           line,
		Description:    advice.Description,
		Recommendation: advice.Recommendation,
	}
}

// Title is the display title for a category.
func Title(category string) string {
	return category + " Vulnerability"
}

// Summary aggregates a list of findings.
type Summary struct {
	Total      int                    `json:"total"`
	BySeverity map[rules.Severity]int `json:"by_severity"`
	ByCategory map[string]int         `json:"by_category"`
	Synthetic  int                    `json:"synthetic"`
}

// Summarize counts findings by severity and category. Every severity has an entry, possibly zero.
func Summarize(list []Finding) Summary {
	s := Summary{
		BySeverity: make(map[rules.Severity]int, 4),
		ByCategory: make(map[string]int),
	}
	for _, sev := range rules.Severities() {
		s.BySeverity[sev] = 0
	}

	for _, f := range list {
		s.Total++
		s.BySeverity[f.Severity]++
		s.ByCategory[f.Category]++
		if f.Synthetic {
			s.Synthetic++
		}
	}
	return s
}

// Highest returns the most severe level present, or 0 when there are no findings.
func (s Summary) Highest() rules.Severity {
	sevs := rules.Severities()
	for i := len(sevs) - 1; i >= 0; i-- {
		if s.BySeverity[sevs[i]] > 0 {
			return sevs[i]
		}
	}
	return 0
}

// Categories returns the summarized categories sorted by name.
func (s Summary) Categories() []string {
	out := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// SortBySeverity returns a copy ordered from critical to low. Equal severities keep their input order.
func SortBySeverity(list []Finding) []Finding {
	out := append([]Finding(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity > out[j].Severity
	})
	return out
}

// AtLeast returns the findings whose severity is min or higher, in input order.
func AtLeast(list []Finding, min rules.Severity) []Finding {
	var out []Finding
	for _, f := range list {
		if f.Severity >= min {
			out = append(out, f)
		}
	}
	return out
}
