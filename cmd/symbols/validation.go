package symbols

import (
	"fmt"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

// validate checks the symbols arguments.
func validate(options *RunOptions, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one input path (or '-' for stdin) must be specified")
	}
	if options.Format != render.FormatText && options.Format != render.FormatJSON {
		return errors.NewUnsupportedOptionError("format", options.Format, []string{render.FormatText, render.FormatJSON})
	}
	if options.Revision != "" && args[0] == "-" {
		return fmt.Errorf("the 'rev' flag cannot be used with stdin input")
	}
	return nil
}
