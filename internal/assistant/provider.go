// Package assistant answers questions about testforge through an optional
// remote completion provider, falling back to built-in answers.
package assistant

import "context"

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderCanned = "canned"
)

// systemPrompt scopes remote providers to this tool.
const systemPrompt = "You are the assistant for testforge, a command-line tool that extracts functions and classes " +
	"from source text, scans it for risky patterns, generates Jest/Mocha/Jasmine test scaffolding and builds " +
	"synthetic test reports. Answer ONLY about this tool (symbols, scan, stubs, run, analyse commands) and the code " +
	"it is given. If out of scope, politely refuse and suggest an in-scope question. Be concise and practical with " +
	"bullet points when helpful."

// Provider produces an answer for a question.
type Provider interface {
	Name() string
	Complete(ctx context.Context, question string) (string, error)
}
