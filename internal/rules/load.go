package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

// File is the YAML layout of a custom rule file.
type File struct {
	Sets   []SetSpec         `yaml:"sets"`
	Advice map[string]Advice `yaml:"advice"`
}

// SetSpec is one custom rule set as written in YAML.
type SetSpec struct {
	Name  string     `yaml:"name"`
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is one custom rule as written in YAML.
type RuleSpec struct {
	ID       string `yaml:"id"`
	Category string `yaml:"category"`
	Severity string `yaml:"severity"`
	Pattern  string `yaml:"pattern"`
}

// LoadFile reads a custom rule file and returns base extended with its sets and advice.
func LoadFile(base *Catalog, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %q: %w", path, err)
	}

	c, err := Load(base, data)
	if err != nil {
		return nil, fmt.Errorf("rule file %q: %w", path, err)
	}
	return c, nil
}

// Load parses YAML rule data and merges it into a new catalog derived from base.
func Load(base *Catalog, data []byte) (*Catalog, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	sets, err := f.compile()
	if err != nil {
		return nil, err
	}

	if base == nil {
		base = Default()
	}
	return base.With(sets, f.Advice)
}

func (f File) compile() ([]Set, error) {
	sets := make([]Set, 0, len(f.Sets))
	for _, spec := range f.Sets {
		set := Set{Name: spec.Name, Rules: make([]Rule, 0, len(spec.Rules))}
		for i, rs := range spec.Rules {
			id := strings.TrimSpace(rs.ID)
			if id == "" {
				id = fmt.Sprintf("%s.%d", spec.Name, i+1)
			}

			sev, err := ParseSeverity(rs.Severity)
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", id, err)
			}

			if rs.Pattern == "" {
				return nil, fmt.Errorf("rule %q: pattern is empty", id)
			}
			re, err := regexp.Compile(rs.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %q: invalid pattern: %w", id, err)
			}

			set.Rules = append(set.Rules, Rule{
				ID:       id,
				Category: strings.TrimSpace(rs.Category),
				Severity: sev,
				Pattern:  re,
			})
		}
		sets = append(sets, set)
	}
	return sets, nil
}
