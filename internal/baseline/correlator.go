// Package baseline compares the findings of a scan against those of an earlier scan.
package baseline

import (
	"github.com/scan-io-git/testforge/internal/findings"
)

// Match groups a known finding with the current findings correlated to it.
// A current finding may appear under several known findings.
type Match struct {
	Known   findings.Finding
	Current []findings.Finding
}

// Correlator computes correlations between current and known findings.
// Synthetic findings carry no stable location and never take part.
// The correlator is inert until Process is called; the accessors call it on demand.
type Correlator struct {
	Current []findings.Finding
	Known   []findings.Finding

	knownToCurrent map[int][]int
	currentToKnown map[int][]int

	processed bool
}

// NewCorrelator constructs a Correlator for the current and known findings.
func NewCorrelator(current, known []findings.Finding) *Correlator {
	return &Correlator{
		Current: current,
		Known:   known,
	}
}

// Process correlates every known finding with every current one in three
// ordered stages. A finding matched in one stage is excluded from later stages,
// while several matches within the same stage are allowed:
// 1) rule id + line + fingerprint
// 2) rule id + fingerprint (the line moved)
// 3) rule id + line (the line was edited in place)
// Process is idempotent.
func (c *Correlator) Process() {
	if c.processed {
		return
	}
	c.knownToCurrent = make(map[int][]int)
	c.currentToKnown = make(map[int][]int)

	matchedKnown := make(map[int]bool)
	matchedCurrent := make(map[int]bool)

	for stage := 1; stage <= 3; stage++ {
		matchedKnownThis := make(map[int]bool)
		matchedCurrentThis := make(map[int]bool)

		for ki, k := range c.Known {
			if matchedKnown[ki] || k.Synthetic {
				continue
			}
			for ci, cur := range c.Current {
				if matchedCurrent[ci] || cur.Synthetic {
					continue
				}
				if matchStage(k, cur, stage) {
					c.knownToCurrent[ki] = append(c.knownToCurrent[ki], ci)
					c.currentToKnown[ci] = append(c.currentToKnown[ci], ki)
					matchedKnownThis[ki] = true
					matchedCurrentThis[ci] = true
				}
			}
		}

		for ki := range matchedKnownThis {
			matchedKnown[ki] = true
		}
		for ci := range matchedCurrentThis {
			matchedCurrent[ci] = true
		}
	}

	c.processed = true
}

func matchStage(a, b findings.Finding, stage int) bool {
	if a.RuleID == "" || a.RuleID != b.RuleID {
		return false
	}

	switch stage {
	case 1:
		return a.Line == b.Line && a.Fingerprint != "" && a.Fingerprint == b.Fingerprint
	case 2:
		return a.Fingerprint != "" && a.Fingerprint == b.Fingerprint
	case 3:
		return a.Line == b.Line
	default:
		return false
	}
}

// New returns the current non-synthetic findings with no known counterpart, in scan order.
func (c *Correlator) New() []findings.Finding {
	c.Process()

	var out []findings.Finding
	for ci, cur := range c.Current {
		if !cur.Synthetic && len(c.currentToKnown[ci]) == 0 {
			out = append(out, cur)
		}
	}
	return out
}

// Existing returns the current findings that correlate to at least one known finding.
func (c *Correlator) Existing() []findings.Finding {
	c.Process()

	var out []findings.Finding
	for ci, cur := range c.Current {
		if len(c.currentToKnown[ci]) > 0 {
			out = append(out, cur)
		}
	}
	return out
}

// Fixed returns the known non-synthetic findings that no current finding correlates to.
func (c *Correlator) Fixed() []findings.Finding {
	c.Process()

	var out []findings.Finding
	for ki, k := range c.Known {
		if !k.Synthetic && len(c.knownToCurrent[ki]) == 0 {
			out = append(out, k)
		}
	}
	return out
}

// Matches returns one entry per known finding with at least one correlated
// current finding, in known order.
func (c *Correlator) Matches() []Match {
	c.Process()

	var out []Match
	for ki, k := range c.Known {
		idxs := c.knownToCurrent[ki]
		if len(idxs) == 0 {
			continue
		}
		m := Match{Known: k, Current: make([]findings.Finding, 0, len(idxs))}
		for _, ci := range idxs {
			m.Current = append(m.Current, c.Current[ci])
		}
		out = append(out, m)
	}
	return out
}
