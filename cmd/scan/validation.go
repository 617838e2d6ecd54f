package scan

import (
	"fmt"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/rules"
	"github.com/scan-io-git/testforge/internal/scanner"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
	"github.com/scan-io-git/testforge/pkg/shared/files"
)

// validate checks the scan arguments and fills defaults from the config.
func validate(options *RunOptions, args []string) (scanner.Level, rules.Severity, error) {
	if len(args) != 1 {
		return "", 0, fmt.Errorf("exactly one input path (or '-' for stdin) must be specified")
	}

	switch options.Format {
	case render.FormatText, render.FormatJSON, render.FormatSARIF:
	default:
		return "", 0, errors.NewUnsupportedOptionError("format", options.Format,
			[]string{render.FormatText, render.FormatJSON, render.FormatSARIF})
	}

	if options.Level == "" && AppConfig != nil {
		options.Level = AppConfig.Scan.Level
	}
	level, err := scanner.ParseLevel(options.Level)
	if err != nil {
		return "", 0, err
	}

	if options.RulesFile == "" && AppConfig != nil {
		options.RulesFile = AppConfig.Scan.RulesFile
	}
	if options.RulesFile != "" {
		expanded, err := files.ExpandPath(options.RulesFile)
		if err != nil {
			return "", 0, err
		}
		if err := files.ValidatePath(expanded); err != nil {
			return "", 0, fmt.Errorf("rules file: %w", err)
		}
		options.RulesFile = expanded
	}

	if options.Baseline != "" {
		expanded, err := files.ExpandPath(options.Baseline)
		if err != nil {
			return "", 0, err
		}
		if err := files.ValidatePath(expanded); err != nil {
			return "", 0, fmt.Errorf("baseline: %w", err)
		}
		options.Baseline = expanded
	}

	var failOn rules.Severity
	if options.FailOn != "" {
		failOn, err = rules.ParseSeverity(options.FailOn)
		if err != nil {
			return "", 0, fmt.Errorf("fail-on: %w", err)
		}
	}

	if options.Revision != "" && args[0] == "-" {
		return "", 0, fmt.Errorf("the 'rev' flag cannot be used with stdin input")
	}

	return level, failOn, nil
}
