// Package symbols lexically extracts declared functions and classes from source text.
package symbols

import "regexp"

// Kind tags a Symbol as a function or a class.
type Kind string

const (
	Function Kind = "function"
	Class    Kind = "class"
)

// Symbol is one declaration found in the text. Re-declared names produce
// separate entries; no scope is resolved.
type Symbol struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

var (
	functionDecl = regexp.MustCompile(`function\s+(\w+)\s*\([^)]*\)`)
	arrowBinding = regexp.MustCompile(`const\s+(\w+)\s*=\s*\([^)]*\)\s*=>`)
	classDecl    = regexp.MustCompile(`class\s+(\w+)`)
)

// Extract returns the declarations in text. The sequence is every
// `function name(...)` in offset order, then every `const name = (...) =>` in
// offset order, then every `class name` in offset order. Downstream suite
// order follows this sequence.
func Extract(text string) []Symbol {
	out := make([]Symbol, 0)
	out = appendMatches(out, functionDecl, text, Function)
	out = appendMatches(out, arrowBinding, text, Function)
	out = appendMatches(out, classDecl, text, Class)
	return out
}

func appendMatches(out []Symbol, re *regexp.Regexp, text string, kind Kind) []Symbol {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, Symbol{Name: m[1], Kind: kind})
	}
	return out
}

// Functions returns the function symbols, keeping order.
func Functions(symbols []Symbol) []Symbol {
	return filter(symbols, Function)
}

// Classes returns the class symbols, keeping order.
func Classes(symbols []Symbol) []Symbol {
	return filter(symbols, Class)
}

// Count returns the number of functions and classes.
func Count(symbols []Symbol) (functions, classes int) {
	for _, s := range symbols {
		switch s.Kind {
		case Function:
			functions++
		case Class:
			classes++
		}
	}
	return functions, classes
}

func filter(symbols []Symbol, kind Kind) []Symbol {
	out := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
