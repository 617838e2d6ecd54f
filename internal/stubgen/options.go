package stubgen

import (
	"strings"

	errors "github.com/scan-io-git/testforge/pkg/shared/errors"
)

// Dialect is the test framework syntax used to format scaffolding.
type Dialect string

const (
	Jest    Dialect = "jest"
	Mocha   Dialect = "mocha"
	Jasmine Dialect = "jasmine"
)

// Tier is the requested coverage tier. Only Comprehensive changes the output.
type Tier string

const (
	TierBasic         Tier = "basic"
	TierMedium        Tier = "medium"
	TierHigh          Tier = "high"
	TierComprehensive Tier = "comprehensive"
)

// syntax holds everything that differs between dialects.
type syntax struct {
	label             string
	keyword           string
	preamble          string
	passAssertion     string
	instanceAssertion string
	definedAssertion  string
}

var dialects = map[Dialect]syntax{
	Jest: {
		label:             "Jest",
		keyword:           "test",
		passAssertion:     "expect(true).toBe(true)",
		instanceAssertion: "expect(instance).toBeInstanceOf(%s)",
		definedAssertion:  "expect(instance).toBeDefined()",
	},
	Mocha: {
		label:             "Mocha",
		keyword:           "it",
		preamble:          "const { expect } = require('chai');",
		passAssertion:     "expect(true).to.be.true",
		instanceAssertion: "expect(instance).to.be.instanceOf(%s)",
		definedAssertion:  "expect(instance).to.exist",
	},
	Jasmine: {
		label:             "Jasmine",
		keyword:           "it",
		passAssertion:     "expect(true).toBe(true)",
		instanceAssertion: "expect(instance).toBeInstanceOf(%s)",
		definedAssertion:  "expect(instance).toBeDefined()",
	},
}

// Dialects lists the supported dialects.
func Dialects() []Dialect {
	return []Dialect{Jest, Mocha, Jasmine}
}

// Tiers lists the coverage tiers from least to most thorough.
func Tiers() []Tier {
	return []Tier{TierBasic, TierMedium, TierHigh, TierComprehensive}
}

// ParseDialect accepts a dialect name, case-insensitively.
func ParseDialect(value string) (Dialect, error) {
	d := Dialect(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := dialects[d]; ok {
		return d, nil
	}
	return "", errors.NewUnsupportedOptionError("dialect", value, []string{string(Jest), string(Mocha), string(Jasmine)})
}

// ParseTier accepts a coverage tier name, case-insensitively.
func ParseTier(value string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(value)))
	allowed := make([]string, 0, 4)
	for _, known := range Tiers() {
		if t == known {
			return t, nil
		}
		allowed = append(allowed, string(known))
	}
	return "", errors.NewUnsupportedOptionError("coverage tier", value, allowed)
}
