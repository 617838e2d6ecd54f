package ask

import (
	"fmt"
	"strings"

	"github.com/scan-io-git/testforge/internal/render"
	"github.com/scan-io-git/testforge/pkg/shared/config"
	"github.com/scan-io-git/testforge/pkg/shared/errors"
)

// validate joins the question and layers the flag overrides on top of the
// assistant section of the config.
func validate(options *RunOptions, args []string) (string, config.Assistant, error) {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return "", config.Assistant{}, fmt.Errorf("a question must be specified")
	}
	if options.Format != render.FormatText && options.Format != render.FormatJSON {
		return "", config.Assistant{}, errors.NewUnsupportedOptionError("format", options.Format, []string{render.FormatText, render.FormatJSON})
	}

	var explicit config.Assistant
	if AppConfig != nil {
		explicit = AppConfig.Assistant
	}
	explicit.Provider = config.SetThen(options.Provider, explicit.Provider)
	explicit.Model = config.SetThen(options.Model, explicit.Model)
	explicit.BaseURL = config.SetThen(options.BaseURL, explicit.BaseURL)

	return question, explicit, nil
}
