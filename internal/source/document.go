// Package source holds the immutable text document every analysis consumes.
package source

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	sharederrors "github.com/scan-io-git/testforge/pkg/shared/errors"
)

// Document is raw text plus its lines. Line numbers reported against a
// Document are 1-indexed. An empty text has exactly one empty line.
type Document struct {
	text  string
	lines []string
}

// New derives a Document from text.
func New(text string) Document {
	return Document{
		text:  text,
		lines: strings.Split(text, "\n"),
	}
}

// FromBytes rejects input that is not text (invalid UTF-8 or NUL bytes)
// before building a Document.
func FromBytes(data []byte) (Document, error) {
	if !utf8.Valid(data) {
		return Document{}, fmt.Errorf("%w: invalid UTF-8", sharederrors.ErrInvalidInput)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return Document{}, fmt.Errorf("%w: contains NUL bytes", sharederrors.ErrInvalidInput)
	}
	return New(string(data)), nil
}

// Text returns the raw text.
func (d Document) Text() string {
	return d.text
}

func (d Document) all() []string {
	if d.lines == nil {
		return []string{""}
	}
	return d.lines
}

// LineCount returns the number of lines, which is at least 1.
func (d Document) LineCount() int {
	return len(d.all())
}

// Lines returns a copy of the document lines.
func (d Document) Lines() []string {
	lines := d.all()
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Line returns the 1-indexed line n, or false when n is out of range.
func (d Document) Line(n int) (string, bool) {
	lines := d.all()
	if n < 1 || n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}

// IsBlank reports whether the document holds only whitespace.
func (d Document) IsBlank() bool {
	return strings.TrimSpace(d.text) == ""
}
