package analyse

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/scan-io-git/testforge/internal/input"
	"github.com/scan-io-git/testforge/internal/randsrc"
	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/pkg/shared/files"
)

// Mode constants
const (
	ModeSinglePath = "single-path"
	ModeInputFile  = "input-file"
)

// determineMode determines the mode based on the provided arguments.
func determineMode(args []string) string {
	if len(args) > 0 {
		return ModeSinglePath
	}
	return ModeInputFile
}

// prepareTargets turns the validated arguments into load requests.
func prepareTargets(options *RunOptionsAnalyse, args []string, mode string) ([]input.Request, error) {
	switch mode {
	case ModeSinglePath:
		return []input.Request{{Path: args[0]}}, nil
	case ModeInputFile:
		data, err := files.ReadSource(options.InputFile, nil)
		if err != nil {
			return nil, fmt.Errorf("error reading the input file %s: %w", options.InputFile, err)
		}
		paths, err := readTargetList(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("error parsing the input file %s: %w", options.InputFile, err)
		}
		targets := make([]input.Request, 0, len(paths))
		for _, p := range paths {
			targets = append(targets, input.Request{Path: p})
		}
		return targets, nil
	default:
		return nil, fmt.Errorf("invalid analysing mode: %s", mode)
	}
}

// readTargetList returns one path per non-blank line, skipping '#' comments.
func readTargetList(r io.Reader) ([]string, error) {
	var paths []string
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == input.StdinPath {
			return nil, fmt.Errorf("line %d: stdin cannot be listed as a target", n)
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no targets listed")
	}
	return paths, nil
}

// sources returns independent sources for the scan and report branches so
// that a fixed seed reproduces both regardless of scheduling.
func sources(seed *int64) (scan, report randsrc.Source) {
	if seed == nil {
		return randsrc.NewTimeSeeded(), randsrc.NewTimeSeeded()
	}
	return randsrc.NewSeeded(*seed), randsrc.NewSeeded(*seed + 1)
}

func writeText(w io.Writer, results []Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "== %s ==\n\n", res.Input); err != nil {
			return err
		}
		if err := render.Symbols(w, res.Symbols); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := render.Findings(w, res.Findings); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := render.Report(w, res.Report); err != nil {
			return err
		}
	}
	return nil
}

func extension(format string) string {
	if format == render.FormatJSON {
		return "json"
	}
	return "txt"
}
