package stubgen

import (
	"math"
	"strings"
)

// Stats summarizes a scaffold the way the report view shows it.
// TestCases counts every "test(" and "it(" substring, so identifiers ending in
// "it" or "test" followed by a call are counted too.
type Stats struct {
	TestCases  int     `json:"testCases"`
	TestSuites int     `json:"testSuites"`
	Lines      int     `json:"lines"`
	SizeKB     float64 `json:"sizeKB"`
}

// Measure computes Stats for scaffold text.
func Measure(text string) Stats {
	return Stats{
		TestCases:  strings.Count(text, "test(") + strings.Count(text, "it("),
		TestSuites: strings.Count(text, "describe("),
		Lines:      strings.Count(text, "\n") + 1,
		SizeKB:     math.Round(float64(len(text))/1024*100) / 100,
	}
}
