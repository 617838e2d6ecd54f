package stubs

import (
	"fmt"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/stubgen"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

// formatCode prints the generated scaffold as is.
const formatCode = "code"

// validate checks the stubs arguments and fills defaults from the config.
func validate(options *RunOptions, args []string) (stubgen.Dialect, stubgen.Tier, error) {
	if len(args) != 1 {
		return "", "", fmt.Errorf("exactly one input path (or '-' for stdin) must be specified")
	}
	if options.Format != formatCode && options.Format != render.FormatJSON {
		return "", "", errors.NewUnsupportedOptionError("format", options.Format, []string{formatCode, render.FormatJSON})
	}

	if AppConfig != nil {
		options.Dialect = config.SetThen(options.Dialect, AppConfig.Stubs.Dialect)
		options.Coverage = config.SetThen(options.Coverage, AppConfig.Stubs.Coverage)
	}

	dialect, err := stubgen.ParseDialect(config.SetThen(options.Dialect, string(stubgen.Jest)))
	if err != nil {
		return "", "", err
	}
	tier, err := stubgen.ParseTier(config.SetThen(options.Coverage, string(stubgen.TierHigh)))
	if err != nil {
		return "", "", err
	}

	if options.Revision != "" && args[0] == "-" {
		return "", "", fmt.Errorf("the 'rev' flag cannot be used with stdin input")
	}
	return dialect, tier, nil
}

