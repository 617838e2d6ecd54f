package assistant

import (
	"context"
	"regexp"
	"strings"
)

var greeting = regexp.MustCompile(`(?i)^\s*(hi|hello|hey)\s*$`)

type cannedAnswer struct {
	keywords []string
	text     string
}

var cannedAnswers = []cannedAnswer{
	{
		keywords: []string{"what is unit testing", "why"},
		text: "In testforge, unit testing means checking the functions and classes found by `testforge symbols`.\n" +
			"Benefits:\n" +
			"- Fast feedback and easier debugging\n" +
			"- Prevents regressions and enables refactoring\n" +
			"- Documents intended behavior\n" +
			"`testforge stubs` turns the extracted symbols into Jest, Mocha or Jasmine scaffolding you can fill in.",
	},
	{
		keywords: []string{"jest", "mocha", "jasmine"},
		text: "Supported dialects:\n" +
			"- jest: batteries-included (runner, assertions, mocking).\n" +
			"- mocha: flexible runner, scaffolding pulls in chai's expect.\n" +
			"- jasmine: all-in-one, similar to Jest.\n" +
			"Pick one with `testforge stubs --dialect <name>` or `stubs.dialect` in config.yml.",
	},
	{
		keywords: []string{"best practice", "maintain"},
		text: "Best practices for the generated scaffolding:\n" +
			"- Name tests by behavior; use Arrange-Act-Assert.\n" +
			"- Isolate external effects with mocks/stubs.\n" +
			"- Cover edge cases and failure paths.\n" +
			"- Keep tests fast and independent.\n" +
			"Tip: `--coverage comprehensive` adds integration and performance suites.",
	},
	{
		keywords: []string{"coverage"},
		text: "Coverage in testforge:\n" +
			"- `--coverage` selects basic, medium, high or comprehensive scaffolding.\n" +
			"- `testforge run` reports line and branch coverage derived from fixed ratios (simulated).\n" +
			"- Focus on critical paths of the code you analyse.",
	},
}

const greetingAnswer = "This assistant only discusses testforge. Try asking:\n" +
	"- How does `testforge stubs` create Jest tests?\n" +
	"- What does `testforge run` report?\n" +
	"- How can I change coverage to comprehensive?\n" +
	"- What does `testforge scan` check?"

const defaultAnswer = "I can only answer questions about testforge. Try:\n" +
	"- How are symbols extracted?\n" +
	"- What do the scaffold statistics mean?\n" +
	"- How do I scan my code for vulnerabilities?"

// Canned answers from a fixed keyword table. It never fails.
type Canned struct{}

func (Canned) Name() string { return ProviderCanned }

func (Canned) Complete(_ context.Context, question string) (string, error) {
	return CannedAnswer(question), nil
}

// CannedAnswer picks the first entry whose keyword occurs in question.
func CannedAnswer(question string) string {
	if greeting.MatchString(question) {
		return greetingAnswer
	}

	q := strings.ToLower(question)
	for _, a := range cannedAnswers {
		for _, kw := range a.keywords {
			if strings.Contains(q, kw) {
				return a.text
			}
		}
	}
	return defaultAnswer
}
