package run

import (
	"fmt"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/internal/testreport"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

// validate checks the run arguments and fills defaults from the config.
func validate(options *RunOptions, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one input path (or '-' for stdin) must be specified")
	}
	if options.Format != render.FormatText && options.Format != render.FormatJSON {
		return errors.NewUnsupportedOptionError("format", options.Format, []string{render.FormatText, render.FormatJSON})
	}

	if options.Environment == "" && AppConfig != nil {
		options.Environment = AppConfig.Report.Environment
	}
	if options.Environment == "" {
		options.Environment = testreport.DefaultEnvironment
	}

	if options.StubsFile == "-" {
		return fmt.Errorf("the 'stubs' flag expects a file path, stdin is reserved for the source")
	}
	if options.Revision != "" && args[0] == "-" {
		return fmt.Errorf("the 'rev' flag cannot be used with stdin input")
	}
	return nil
}
