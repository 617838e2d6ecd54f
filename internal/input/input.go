// Package input loads the source document a command analyses.
package input

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/testforge/internal/git"
	"github.com/scan-io-git/testforge/internal/source"
	"github.com/scan-io-git/testforge/pkg/shared/files"
)

// StdinPath selects standard input.
const StdinPath = "-"

// Request names where the text comes from.
type Request struct {
	Path     string
	Revision string
}

// Describe returns a short label for logs and SARIF artifact locations.
func (r Request) Describe() string {
	switch {
	case r.Path == StdinPath:
		return "stdin"
	case r.Revision != "":
		return r.Path + "@" + r.Revision
	default:
		return r.Path
	}
}

// Load reads the requested text and rejects non-text input.
func Load(req Request, stdin io.Reader, logger hclog.Logger) (source.Document, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var (
		data []byte
		err  error
	)
	switch {
	case req.Path == "":
		return source.Document{}, fmt.Errorf("no input path given")
	case req.Revision != "":
		if req.Path == StdinPath {
			return source.Document{}, fmt.Errorf("a revision cannot be combined with stdin input")
		}
		data, err = git.New(logger).ReadFile(req.Path, req.Revision)
	default:
		data, err = files.ReadSource(req.Path, stdin)
	}
	if err != nil {
		return source.Document{}, err
	}

	doc, err := source.FromBytes(data)
	if err != nil {
		return source.Document{}, fmt.Errorf("%s: %w", req.Describe(), err)
	}

	if doc.IsBlank() {
		logger.Warn("input holds only whitespace", "input", req.Describe())
	}
	logger.Debug("source loaded", "input", req.Describe(), "bytes", len(data), "lines", doc.LineCount())
	return doc, nil
}
