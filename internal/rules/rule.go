// Package rules declares the static detection rules the scanner applies line by line.
package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one line pattern with its severity and category.
type Rule struct {
	ID       string
	Set      string
	Category string
	Severity Severity
	Pattern  *regexp.Regexp
}

// Matches reports whether the rule fires on line.
func (r Rule) Matches(line string) bool {
	return r.Pattern != nil && r.Pattern.MatchString(line)
}

// Set is a named, ordered group of alternative patterns for one kind of risk.
type Set struct {
	Name  string
	Rules []Rule
}

// Catalog is an ordered collection of sets plus the advice table for their
// categories. A Catalog is never mutated after construction; accessors
// return copies, so one Catalog can back any number of concurrent scans.
type Catalog struct {
	sets   []Set
	advice map[string]Advice
}

// NewCatalog validates sets and builds a Catalog with the built-in advice table.
func NewCatalog(sets ...Set) (*Catalog, error) {
	c := &Catalog{advice: copyAdvice(builtinAdvice, nil)}
	if err := c.addSets(sets); err != nil {
		return nil, err
	}
	return c, nil
}

// With returns a new Catalog holding c's sets followed by sets, with extra advice merged in.
func (c *Catalog) With(sets []Set, advice map[string]Advice) (*Catalog, error) {
	next := &Catalog{advice: copyAdvice(c.advice, advice)}
	if err := next.addSets(c.sets); err != nil {
		return nil, err
	}
	if err := next.addSets(sets); err != nil {
		return nil, err
	}
	return next, nil
}

func (c *Catalog) addSets(sets []Set) error {
	seen := make(map[string]struct{}, c.Len())
	for _, r := range c.Rules() {
		seen[r.ID] = struct{}{}
	}

	for _, set := range sets {
		name := strings.TrimSpace(set.Name)
		if name == "" {
			return fmt.Errorf("rule set name is empty")
		}
		cp := Set{Name: name, Rules: make([]Rule, 0, len(set.Rules))}
		for _, r := range set.Rules {
			if err := validateRule(r); err != nil {
				return fmt.Errorf("rule set %q: %w", name, err)
			}
			if _, dup := seen[r.ID]; dup {
				return fmt.Errorf("rule set %q: duplicate rule id %q", name, r.ID)
			}
			seen[r.ID] = struct{}{}
			r.Set = name
			cp.Rules = append(cp.Rules, r)
		}
		c.sets = append(c.sets, cp)
	}
	return nil
}

func validateRule(r Rule) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("rule id is empty")
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("rule %q has no category", r.ID)
	}
	if !r.Severity.Valid() {
		return fmt.Errorf("rule %q has invalid severity %s", r.ID, r.Severity)
	}
	if r.Pattern == nil {
		return fmt.Errorf("rule %q has no pattern", r.ID)
	}
	return nil
}

func copyAdvice(base, extra map[string]Advice) map[string]Advice {
	out := make(map[string]Advice, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Sets returns a copy of the catalog's sets in order.
func (c *Catalog) Sets() []Set {
	out := make([]Set, len(c.sets))
	for i, set := range c.sets {
		out[i] = Set{Name: set.Name, Rules: append([]Rule(nil), set.Rules...)}
	}
	return out
}

// Rules returns every rule, set by set, in catalog order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, 0, c.Len())
	for _, set := range c.sets {
		out = append(out, set.Rules...)
	}
	return out
}

// Len returns the total number of rules.
func (c *Catalog) Len() int {
	n := 0
	for _, set := range c.sets {
		n += len(set.Rules)
	}
	return n
}

// Advice returns the explanation for category, falling back to DefaultAdvice.
// The same category always yields the same text.
func (c *Catalog) Advice(category string) Advice {
	if a, ok := c.advice[category]; ok {
		return a
	}
	return DefaultAdvice()
}
